package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates the record changed since it was read.
	ErrConflict = errors.New("record was modified concurrently")
	// ErrDuplicate indicates a record with the same key already exists.
	ErrDuplicate = errors.New("record already exists")
)

// IndentRepository persists indents.
type IndentRepository interface {
	CreateIndent(ctx context.Context, indent models.Indent) error
	GetIndent(ctx context.Context, id string) (models.Indent, error)
	ListIndents(ctx context.Context, filter models.IndentFilter) ([]models.Indent, error)
	// UpdateIndent stores indent only if the stored copy still has status
	// expected and the same version; the stored version is incremented.
	UpdateIndent(ctx context.Context, indent models.Indent, expected models.Status) error
	NextIndentID(ctx context.Context) (string, error)
}

// VendorRepository reads the vendor directory.
type VendorRepository interface {
	GetVendor(ctx context.Context, id string) (models.Vendor, error)
	ListVendors(ctx context.Context, filter models.VendorFilter) ([]models.Vendor, error)
}

// EnquiryRepository persists enquiries.
type EnquiryRepository interface {
	CreateEnquiry(ctx context.Context, enquiry models.Enquiry) error
	GetEnquiry(ctx context.Context, id string) (models.Enquiry, error)
	ListEnquiries(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, error)
	UpdateEnquiryStatus(ctx context.Context, id string, from, to models.EnquiryStatus) error
	// ExpireEnquiries marks pending enquiries whose deadline is before now as
	// expired and returns how many changed.
	ExpireEnquiries(ctx context.Context, now time.Time) (int, error)
	NextEnquiryID(ctx context.Context) (string, error)
}

// QuoteRepository persists vendor quotes.
type QuoteRepository interface {
	SaveQuote(ctx context.Context, quote models.Quote) error
	ListQuotes(ctx context.Context, enquiryID string) ([]models.Quote, error)
	ListQuotesByIndent(ctx context.Context, indentID string) ([]models.Quote, error)
}

// PurchaseOrderRepository persists issued purchase orders.
type PurchaseOrderRepository interface {
	// SavePurchaseOrder rejects a second order for the same indent with ErrDuplicate.
	SavePurchaseOrder(ctx context.Context, po models.PurchaseOrder) error
	FindPurchaseOrderByIndent(ctx context.Context, indentID string) (models.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, start, end time.Time) ([]models.PurchaseOrder, error)
}

// AuditRepository appends and reads the immutable transition log.
type AuditRepository interface {
	AppendAudit(ctx context.Context, entry models.AuditEntry) error
	ListAudit(ctx context.Context, indentID string) ([]models.AuditEntry, error)
}

// Store groups every repository behind one backend.
type Store interface {
	IndentRepository
	VendorRepository
	EnquiryRepository
	QuoteRepository
	PurchaseOrderRepository
	AuditRepository
	Close(ctx context.Context) error
}

// Dataset is the initial content loaded into an empty store.
type Dataset struct {
	Indents   []models.Indent
	Vendors   []models.Vendor
	Enquiries []models.Enquiry
	Quotes    []models.Quote
}
