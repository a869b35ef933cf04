package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
)

// Store keeps every collection in process memory.
type Store struct {
	mu sync.RWMutex

	indents   map[string]models.Indent
	vendors   map[string]models.Vendor
	enquiries map[string]models.Enquiry
	quotes    map[string]models.Quote
	orders    map[string]models.PurchaseOrder
	audit     []models.AuditEntry

	indentSeq  int
	enquirySeq int
}

var _ repository.Store = (*Store)(nil)

// New creates a store preloaded with the dataset.
func New(data repository.Dataset) *Store {
	s := &Store{
		indents:   make(map[string]models.Indent),
		vendors:   make(map[string]models.Vendor),
		enquiries: make(map[string]models.Enquiry),
		quotes:    make(map[string]models.Quote),
		orders:    make(map[string]models.PurchaseOrder),
	}

	for _, indent := range data.Indents {
		s.indents[indent.ID] = indent.Clone()
		s.indentSeq = maxSeq(s.indentSeq, indent.ID, "IND")
	}
	for _, vendor := range data.Vendors {
		s.vendors[vendor.ID] = vendor
	}
	for _, enquiry := range data.Enquiries {
		s.enquiries[enquiry.ID] = cloneEnquiry(enquiry)
		s.enquirySeq = maxSeq(s.enquirySeq, enquiry.ID, "ENQ")
	}
	for _, quote := range data.Quotes {
		s.quotes[quote.ID] = quote
	}

	return s
}

// CreateIndent stores a new indent.
func (s *Store) CreateIndent(_ context.Context, indent models.Indent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.indents[indent.ID]; exists {
		return fmt.Errorf("indent %s: %w", indent.ID, repository.ErrDuplicate)
	}
	s.indents[indent.ID] = indent.Clone()
	return nil
}

// GetIndent returns a copy of the indent.
func (s *Store) GetIndent(_ context.Context, id string) (models.Indent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	indent, ok := s.indents[id]
	if !ok {
		return models.Indent{}, fmt.Errorf("indent %s: %w", id, repository.ErrNotFound)
	}
	return indent.Clone(), nil
}

// ListIndents returns matching indents in the filter's order.
func (s *Store) ListIndents(_ context.Context, filter models.IndentFilter) ([]models.Indent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Indent, 0, len(s.indents))
	for _, indent := range s.indents {
		if filter.Match(indent) {
			out = append(out, indent.Clone())
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	models.SortIndents(out, filter.Sort)
	return out, nil
}

// UpdateIndent performs a compare-and-set on status and version.
func (s *Store) UpdateIndent(_ context.Context, indent models.Indent, expected models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.indents[indent.ID]
	if !ok {
		return fmt.Errorf("indent %s: %w", indent.ID, repository.ErrNotFound)
	}
	if stored.Status != expected || stored.Version != indent.Version {
		return fmt.Errorf("indent %s: %w", indent.ID, repository.ErrConflict)
	}

	next := indent.Clone()
	next.Version = stored.Version + 1
	s.indents[indent.ID] = next
	return nil
}

// NextIndentID allocates the next sequential indent id.
func (s *Store) NextIndentID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.indentSeq++
	return fmt.Sprintf("IND%03d", s.indentSeq), nil
}

// GetVendor returns a vendor by id.
func (s *Store) GetVendor(_ context.Context, id string) (models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vendor, ok := s.vendors[id]
	if !ok {
		return models.Vendor{}, fmt.Errorf("vendor %s: %w", id, repository.ErrNotFound)
	}
	return vendor, nil
}

// ListVendors returns matching vendors ordered by id.
func (s *Store) ListVendors(_ context.Context, filter models.VendorFilter) ([]models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vendor, 0, len(s.vendors))
	for _, vendor := range s.vendors {
		if filter.Match(vendor) {
			out = append(out, vendor)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

// CreateEnquiry stores a new enquiry.
func (s *Store) CreateEnquiry(_ context.Context, enquiry models.Enquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.enquiries[enquiry.ID]; exists {
		return fmt.Errorf("enquiry %s: %w", enquiry.ID, repository.ErrDuplicate)
	}
	s.enquiries[enquiry.ID] = cloneEnquiry(enquiry)
	return nil
}

// GetEnquiry returns an enquiry by id.
func (s *Store) GetEnquiry(_ context.Context, id string) (models.Enquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enquiry, ok := s.enquiries[id]
	if !ok {
		return models.Enquiry{}, fmt.Errorf("enquiry %s: %w", id, repository.ErrNotFound)
	}
	return cloneEnquiry(enquiry), nil
}

// ListEnquiries returns matching enquiries, newest first.
func (s *Store) ListEnquiries(_ context.Context, filter models.EnquiryFilter) ([]models.Enquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Enquiry, 0, len(s.enquiries))
	for _, enquiry := range s.enquiries {
		if filter.Match(enquiry) {
			out = append(out, cloneEnquiry(enquiry))
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].ID > out[b].ID
		}
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

// UpdateEnquiryStatus moves an enquiry from one status to another.
func (s *Store) UpdateEnquiryStatus(_ context.Context, id string, from, to models.EnquiryStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enquiry, ok := s.enquiries[id]
	if !ok {
		return fmt.Errorf("enquiry %s: %w", id, repository.ErrNotFound)
	}
	if enquiry.Status != from {
		return fmt.Errorf("enquiry %s: %w", id, repository.ErrConflict)
	}
	enquiry.Status = to
	s.enquiries[id] = enquiry
	return nil
}

// ExpireEnquiries marks overdue pending enquiries as expired.
func (s *Store) ExpireEnquiries(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int
	for id, enquiry := range s.enquiries {
		if enquiry.Status == models.EnquiryPending && enquiry.Deadline.Before(now) {
			enquiry.Status = models.EnquiryExpired
			s.enquiries[id] = enquiry
			changed++
		}
	}
	return changed, nil
}

// NextEnquiryID allocates the next sequential enquiry id.
func (s *Store) NextEnquiryID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enquirySeq++
	return fmt.Sprintf("ENQ%03d", s.enquirySeq), nil
}

// SaveQuote stores a quote, replacing an earlier one with the same id.
func (s *Store) SaveQuote(_ context.Context, quote models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes[quote.ID] = quote
	return nil
}

// ListQuotes returns the quotes for an enquiry, cheapest first.
func (s *Store) ListQuotes(_ context.Context, enquiryID string) ([]models.Quote, error) {
	return s.collectQuotes(func(q models.Quote) bool { return q.EnquiryID == enquiryID }), nil
}

// ListQuotesByIndent returns every quote received for an indent, cheapest first.
func (s *Store) ListQuotesByIndent(_ context.Context, indentID string) ([]models.Quote, error) {
	return s.collectQuotes(func(q models.Quote) bool { return q.IndentID == indentID }), nil
}

func (s *Store) collectQuotes(keep func(models.Quote) bool) []models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Quote
	for _, quote := range s.quotes {
		if keep(quote) {
			out = append(out, quote)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].DiscountedPrice.Equal(out[b].DiscountedPrice) {
			return out[a].ID < out[b].ID
		}
		return out[a].DiscountedPrice.LessThan(out[b].DiscountedPrice)
	})
	return out
}

// SavePurchaseOrder stores an issued purchase order.
func (s *Store) SavePurchaseOrder(_ context.Context, po models.PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[po.PONumber]; exists {
		return fmt.Errorf("purchase order %s: %w", po.PONumber, repository.ErrDuplicate)
	}
	for _, other := range s.orders {
		if other.IndentID == po.IndentID {
			return fmt.Errorf("indent %s already has purchase order %s: %w", po.IndentID, other.PONumber, repository.ErrDuplicate)
		}
	}
	s.orders[po.PONumber] = po
	return nil
}

// FindPurchaseOrderByIndent returns the order issued against the indent.
func (s *Store) FindPurchaseOrderByIndent(_ context.Context, indentID string) (models.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, po := range s.orders {
		if po.IndentID == indentID {
			return po, nil
		}
	}
	return models.PurchaseOrder{}, fmt.Errorf("purchase order for indent %s: %w", indentID, repository.ErrNotFound)
}

// ListPurchaseOrders returns orders issued within [start, end].
func (s *Store) ListPurchaseOrders(_ context.Context, start, end time.Time) ([]models.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.PurchaseOrder
	for _, po := range s.orders {
		if po.IssuedAt.Before(start) || po.IssuedAt.After(end) {
			continue
		}
		out = append(out, po)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].IssuedAt.Before(out[b].IssuedAt) })
	return out, nil
}

// AppendAudit adds an entry to the log.
func (s *Store) AppendAudit(_ context.Context, entry models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audit = append(s.audit, entry)
	return nil
}

// ListAudit returns the entries for an indent in insertion order.
func (s *Store) ListAudit(_ context.Context, indentID string) ([]models.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AuditEntry
	for _, entry := range s.audit {
		if entry.IndentID == indentID {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Close is a no-op for the memory store.
func (s *Store) Close(_ context.Context) error {
	return nil
}

func cloneEnquiry(e models.Enquiry) models.Enquiry {
	out := e
	out.VendorIDs = append([]string(nil), e.VendorIDs...)
	return out
}

func maxSeq(current int, id, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil || n <= current {
		return current
	}
	return n
}
