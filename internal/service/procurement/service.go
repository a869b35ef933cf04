package procurement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/document"
	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
	"github.com/mamadbah2/procurement/internal/service/notify"
)

var (
	// ErrForbidden indicates the actor's role may not perform the operation.
	ErrForbidden = errors.New("not permitted for this role")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIndentNotReady is returned when the indent is not at a purchasable stage.
	ErrIndentNotReady = errors.New("indent is not ready for this step")
	// ErrEnquiryClosed is returned for quotes on expired or overdue enquiries.
	ErrEnquiryClosed = errors.New("enquiry is closed for quotations")
	// ErrNoQuote is returned when the chosen vendor never quoted for the indent.
	ErrNoQuote = errors.New("vendor has not quoted for this indent")
	// ErrQuoteExpired is returned when every quote from the vendor has lapsed.
	ErrQuoteExpired = errors.New("quote has expired")
)

// Store is the persistence the procurement desk needs.
type Store interface {
	repository.IndentRepository
	repository.VendorRepository
	repository.EnquiryRepository
	repository.QuoteRepository
	repository.PurchaseOrderRepository
}

// Register mirrors issued orders into an external register.
type Register interface {
	AppendPurchaseOrder(ctx context.Context, po models.PurchaseOrder, vendorName string) error
}

// People resolves user IDs to accounts.
type People interface {
	Lookup(id string) (models.User, bool)
}

// Option adjusts a Service.
type Option func(*Service)

// WithPeople lets enquiry letters name the requester instead of leaving the line out.
func WithPeople(people People) Option {
	return func(s *Service) {
		s.people = people
	}
}

// Service runs enquiries, quotations and purchase orders.
type Service struct {
	store     Store
	docs      *document.Generator
	register  Register
	publisher notify.Publisher
	people    People
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the procurement desk. register and publisher may be nil.
func NewService(store Store, docs *document.Generator, register Register, publisher notify.Publisher, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = notify.NewService(nil, logger)
	}
	s := &Service{
		store:     store,
		docs:      docs,
		register:  register,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// requesterName is the display name of the user who raised the indent, or "" when unknown.
func (s *Service) requesterName(indent models.Indent) string {
	if s.people == nil {
		return ""
	}
	user, ok := s.people.Lookup(indent.RequestedBy)
	if !ok {
		return ""
	}
	return user.Name
}

// ListVendors returns the vendor directory.
func (s *Service) ListVendors(ctx context.Context, actor models.User, filter models.VendorFilter) ([]models.Vendor, error) {
	switch actor.Role {
	case models.RoleCPD, models.RoleAdmin, models.RoleManagement:
	default:
		return nil, ErrForbidden
	}
	return s.store.ListVendors(ctx, filter)
}

// ListEnquiries returns enquiries visible to the actor. Vendors see only their own.
func (s *Service) ListEnquiries(ctx context.Context, actor models.User, filter models.EnquiryFilter) ([]models.Enquiry, error) {
	switch actor.Role {
	case models.RoleCPD, models.RoleAdmin, models.RoleManagement:
	case models.RoleVendor:
		if actor.VendorID == "" {
			return []models.Enquiry{}, nil
		}
		filter.VendorID = actor.VendorID
	default:
		return nil, ErrForbidden
	}
	return s.store.ListEnquiries(ctx, filter)
}

// GetEnquiry returns one enquiry if the actor may see it.
func (s *Service) GetEnquiry(ctx context.Context, actor models.User, id string) (models.Enquiry, error) {
	enquiry, err := s.store.GetEnquiry(ctx, id)
	if err != nil {
		return models.Enquiry{}, err
	}
	switch actor.Role {
	case models.RoleCPD, models.RoleAdmin, models.RoleManagement:
		return enquiry, nil
	case models.RoleVendor:
		if enquiry.HasVendor(actor.VendorID) {
			return enquiry, nil
		}
	}
	return models.Enquiry{}, ErrForbidden
}

// SendEnquiry records an enquiry for the selected vendors and renders the letter.
func (s *Service) SendEnquiry(ctx context.Context, actor models.User, indentID string, req models.SendEnquiryRequest) (models.Enquiry, document.Document, error) {
	if actor.Role != models.RoleCPD {
		return models.Enquiry{}, document.Document{}, ErrForbidden
	}

	vendorIDs := dedupe(req.VendorIDs)
	if len(vendorIDs) == 0 {
		return models.Enquiry{}, document.Document{}, document.ErrNoVendorsSelected
	}

	indent, err := s.store.GetIndent(ctx, indentID)
	if err != nil {
		return models.Enquiry{}, document.Document{}, err
	}
	if indent.Status != models.StatusPendingCPD && indent.Status != models.StatusApproved {
		return models.Enquiry{}, document.Document{}, fmt.Errorf("%w: indent %s is %s", ErrIndentNotReady, indent.ID, indent.Status)
	}

	now := s.now()
	if !req.Deadline.After(now) {
		return models.Enquiry{}, document.Document{}, fmt.Errorf("%w: deadline must be in the future", ErrInvalidInput)
	}

	addressees := make([]document.Addressee, 0, len(vendorIDs))
	for _, id := range vendorIDs {
		vendor, err := s.store.GetVendor(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return models.Enquiry{}, document.Document{}, fmt.Errorf("%w: unknown vendor %s", ErrInvalidInput, id)
		}
		if err != nil {
			return models.Enquiry{}, document.Document{}, err
		}
		addressees = append(addressees, document.Addressee{
			Name:          vendor.Name,
			ContactPerson: vendor.ContactPerson,
			Email:         vendor.Email,
			Location:      vendor.Location,
		})
	}

	id, err := s.store.NextEnquiryID(ctx)
	if err != nil {
		return models.Enquiry{}, document.Document{}, fmt.Errorf("allocate enquiry id: %w", err)
	}

	enquiry := models.Enquiry{
		ID:               id,
		IndentID:         indent.ID,
		Title:            indent.Title,
		Department:       indent.Department,
		Quantity:         indent.Quantity,
		Specification:    indent.Specification(),
		VendorCategory:   strings.TrimSpace(req.VendorCategory),
		VendorIDs:        vendorIDs,
		DeliveryTimeline: strings.TrimSpace(req.DeliveryTimeline),
		Deadline:         req.Deadline,
		Status:           models.EnquiryPending,
		SentBy:           actor.ID,
		CreatedAt:        now.UTC(),
	}

	doc, err := s.docs.EnquiryLetter(document.EnquiryInput{
		EnquiryID:        enquiry.ID,
		IndentID:         indent.ID,
		Title:            indent.Title,
		Department:       indent.Department,
		Quantity:         indent.Quantity,
		Specification:    enquiry.Specification,
		VendorCategory:   enquiry.VendorCategory,
		Vendors:          addressees,
		DeliveryTimeline: enquiry.DeliveryTimeline,
		Deadline:         enquiry.Deadline,
		RequestedBy:      s.requesterName(indent),
		Date:             now,
	})
	if err != nil {
		return models.Enquiry{}, document.Document{}, err
	}

	if err := s.store.CreateEnquiry(ctx, enquiry); err != nil {
		return models.Enquiry{}, document.Document{}, fmt.Errorf("save enquiry: %w", err)
	}

	s.logger.Info("enquiry sent",
		zap.String("enquiry_id", enquiry.ID),
		zap.String("indent_id", indent.ID),
		zap.Strings("vendor_ids", vendorIDs),
		zap.String("filename", doc.Filename))
	s.publisher.Publish(ctx, notify.EnquirySent(enquiry, actor))

	return enquiry, doc, nil
}

// SubmitQuote records a vendor's quotation. Resubmitting replaces the vendor's earlier quote.
func (s *Service) SubmitQuote(ctx context.Context, actor models.User, enquiryID string, req models.QuoteRequest) (models.Quote, error) {
	vendorID, err := quotingVendor(actor, req.VendorID)
	if err != nil {
		return models.Quote{}, err
	}

	enquiry, err := s.store.GetEnquiry(ctx, enquiryID)
	if err != nil {
		return models.Quote{}, err
	}
	if !enquiry.HasVendor(vendorID) {
		return models.Quote{}, fmt.Errorf("%w: vendor %s was not invited to %s", ErrForbidden, vendorID, enquiry.ID)
	}

	now := s.now()
	if enquiry.Status == models.EnquiryExpired || now.After(enquiry.Deadline) {
		return models.Quote{}, fmt.Errorf("%w: %s closed on %s", ErrEnquiryClosed, enquiry.ID, document.FormatDate(enquiry.Deadline))
	}

	if err := validateQuote(req, now); err != nil {
		return models.Quote{}, err
	}

	quote := models.Quote{
		ID:              enquiry.ID + "-" + vendorID,
		EnquiryID:       enquiry.ID,
		IndentID:        enquiry.IndentID,
		VendorID:        vendorID,
		OriginalPrice:   req.OriginalPrice,
		DiscountedPrice: req.DiscountedPrice,
		DeliveryTime:    strings.TrimSpace(req.DeliveryTime),
		Warranty:        strings.TrimSpace(req.Warranty),
		Terms:           strings.TrimSpace(req.Terms),
		ValidFrom:       now.UTC(),
		ValidUntil:      req.ValidUntil,
		SubmittedDate:   now.UTC(),
	}
	if err := s.store.SaveQuote(ctx, quote); err != nil {
		return models.Quote{}, fmt.Errorf("save quote: %w", err)
	}

	if enquiry.Status == models.EnquiryPending {
		err := s.store.UpdateEnquiryStatus(ctx, enquiry.ID, models.EnquiryPending, models.EnquiryResponded)
		if err != nil && !errors.Is(err, repository.ErrConflict) {
			return models.Quote{}, fmt.Errorf("mark enquiry responded: %w", err)
		}
	}

	s.logger.Info("quote received",
		zap.String("enquiry_id", enquiry.ID),
		zap.String("vendor_id", vendorID),
		zap.String("discounted_price", quote.DiscountedPrice.String()))
	return quote, nil
}

// ListQuotes returns the quotes on an enquiry, cheapest first. Vendors see only their own.
func (s *Service) ListQuotes(ctx context.Context, actor models.User, enquiryID string) ([]models.Quote, error) {
	enquiry, err := s.store.GetEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleCPD, models.RoleAdmin, models.RoleManagement:
	case models.RoleVendor:
		if !enquiry.HasVendor(actor.VendorID) {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	quotes, err := s.store.ListQuotes(ctx, enquiryID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if actor.Role == models.RoleVendor && q.VendorID != actor.VendorID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// IssuePurchaseOrder raises the indent's only PO against the vendor's cheapest unexpired quote.
func (s *Service) IssuePurchaseOrder(ctx context.Context, actor models.User, indentID, vendorID string) (models.PurchaseOrder, document.Document, error) {
	if actor.Role != models.RoleCPD {
		return models.PurchaseOrder{}, document.Document{}, ErrForbidden
	}

	indent, err := s.store.GetIndent(ctx, indentID)
	if err != nil {
		return models.PurchaseOrder{}, document.Document{}, err
	}
	if indent.Status != models.StatusApproved {
		return models.PurchaseOrder{}, document.Document{}, fmt.Errorf("%w: indent %s is %s", ErrIndentNotReady, indent.ID, indent.Status)
	}

	existing, err := s.store.FindPurchaseOrderByIndent(ctx, indent.ID)
	switch {
	case err == nil:
		return models.PurchaseOrder{}, document.Document{}, fmt.Errorf("%w: purchase order %s already issued for %s", repository.ErrDuplicate, existing.PONumber, indent.ID)
	case !errors.Is(err, repository.ErrNotFound):
		return models.PurchaseOrder{}, document.Document{}, err
	}

	now := s.now()
	quotes, err := s.store.ListQuotesByIndent(ctx, indent.ID)
	if err != nil {
		return models.PurchaseOrder{}, document.Document{}, err
	}
	var quote *models.Quote
	lapsed := false
	for i := range quotes {
		if quotes[i].VendorID != vendorID {
			continue
		}
		if now.After(quotes[i].ValidUntil) {
			lapsed = true
			continue
		}
		quote = &quotes[i]
		break
	}
	if quote == nil {
		if lapsed {
			return models.PurchaseOrder{}, document.Document{}, fmt.Errorf("%w: %s on %s", ErrQuoteExpired, vendorID, indent.ID)
		}
		return models.PurchaseOrder{}, document.Document{}, fmt.Errorf("%w: %s on %s", ErrNoQuote, vendorID, indent.ID)
	}

	vendor, err := s.store.GetVendor(ctx, vendorID)
	if err != nil {
		return models.PurchaseOrder{}, document.Document{}, err
	}

	po := models.PurchaseOrder{
		PONumber:    models.NewPONumber(indent.ID, now),
		IndentID:    indent.ID,
		VendorID:    vendor.ID,
		QuoteID:     quote.ID,
		Description: indent.Title,
		Quantity:    indent.Quantity,
		UnitPrice:   unitPrice(quote.DiscountedPrice, indent.Quantity),
		Total:       quote.DiscountedPrice,
		IssuedBy:    actor.ID,
		IssuedAt:    now.UTC(),
	}

	doc, err := s.docs.PurchaseOrder(document.PurchaseOrderInput{
		PONumber: po.PONumber,
		IndentID: indent.ID,
		Date:     now,
		Vendor: document.Supplier{
			Name:          vendor.Name,
			ContactPerson: vendor.ContactPerson,
			Email:         vendor.Email,
			Phone:         vendor.Phone,
			Location:      vendor.Location,
		},
		Description:  po.Description,
		Quantity:     po.Quantity,
		UnitPrice:    po.UnitPrice,
		Total:        po.Total,
		DeliveryTime: quote.DeliveryTime,
		Warranty:     quote.Warranty,
		ValidUntil:   quote.ValidUntil,
		Terms:        quote.Terms,
		IssuedBy:     actor.Name,
	})
	if err != nil {
		return models.PurchaseOrder{}, document.Document{}, err
	}

	if err := s.store.SavePurchaseOrder(ctx, po); err != nil {
		return models.PurchaseOrder{}, document.Document{}, fmt.Errorf("save purchase order: %w", err)
	}

	if s.register != nil {
		if err := s.register.AppendPurchaseOrder(ctx, po, vendor.Name); err != nil {
			s.logger.Error("failed to register purchase order", zap.Error(err), zap.String("po_number", po.PONumber))
		}
	}

	s.logger.Info("purchase order issued",
		zap.String("po_number", po.PONumber),
		zap.String("indent_id", indent.ID),
		zap.String("vendor_id", vendor.ID),
		zap.String("total", po.Total.String()))
	s.publisher.Publish(ctx, notify.PurchaseOrderIssued(po, actor, s.docs.Money().Format(po.Total)))

	return po, doc, nil
}

// ListPurchaseOrders returns orders issued within [start, end].
func (s *Service) ListPurchaseOrders(ctx context.Context, actor models.User, start, end time.Time) ([]models.PurchaseOrder, error) {
	switch actor.Role {
	case models.RoleCPD, models.RoleAdmin, models.RoleManagement:
	default:
		return nil, ErrForbidden
	}
	orders, err := s.store.ListPurchaseOrders(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.PurchaseOrder{}
	}
	return orders, nil
}

// ExpireEnquiries closes pending enquiries whose deadline is before now.
func (s *Service) ExpireEnquiries(ctx context.Context, now time.Time) (int, error) {
	changed, err := s.store.ExpireEnquiries(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expire enquiries: %w", err)
	}
	if changed > 0 {
		s.logger.Info("enquiries expired", zap.Int("count", changed))
	}
	return changed, nil
}

func quotingVendor(actor models.User, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	switch actor.Role {
	case models.RoleVendor:
		if actor.VendorID == "" || (requested != "" && requested != actor.VendorID) {
			return "", ErrForbidden
		}
		return actor.VendorID, nil
	case models.RoleCPD:
		if requested == "" {
			return "", fmt.Errorf("%w: vendor_id is required", ErrInvalidInput)
		}
		return requested, nil
	default:
		return "", ErrForbidden
	}
}

func validateQuote(req models.QuoteRequest, now time.Time) error {
	switch {
	case !req.OriginalPrice.IsPositive():
		return fmt.Errorf("%w: original price must be positive", ErrInvalidInput)
	case !req.DiscountedPrice.IsPositive():
		return fmt.Errorf("%w: discounted price must be positive", ErrInvalidInput)
	case req.DiscountedPrice.GreaterThan(req.OriginalPrice):
		return fmt.Errorf("%w: discounted price exceeds original price", ErrInvalidInput)
	case strings.TrimSpace(req.DeliveryTime) == "":
		return fmt.Errorf("%w: delivery time is required", ErrInvalidInput)
	case !req.ValidUntil.After(now):
		return fmt.Errorf("%w: quote validity must end in the future", ErrInvalidInput)
	}
	return nil
}

func unitPrice(total decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return total
	}
	return total.DivRound(decimal.NewFromInt(int64(quantity)), 2)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
