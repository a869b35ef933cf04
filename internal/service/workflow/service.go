package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
	"github.com/mamadbah2/procurement/internal/service/notify"
)

var (
	// ErrForbidden indicates the actor may not touch the indent at all.
	ErrForbidden = errors.New("not permitted for this role")
	// ErrRemarksRequired is returned when a rejection has no remarks.
	ErrRemarksRequired = errors.New("remarks are required to reject an indent")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Store is the persistence the workflow needs.
type Store interface {
	repository.IndentRepository
	repository.AuditRepository
}

// Service owns the indent approval state machine.
type Service struct {
	store     Store
	publisher notify.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the workflow. A nil publisher disables notifications.
func NewService(store Store, publisher notify.Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = notify.NewService(nil, logger)
	}
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ListQuery carries the caller's listing filters.
type ListQuery struct {
	Query    string
	Status   string
	Priority string
	Sort     string
}

// List returns the indents visible to the actor that match the query.
func (s *Service) List(ctx context.Context, actor models.User, q ListQuery) ([]models.Indent, error) {
	filter := models.IndentFilter{Query: q.Query}

	if q.Status != "" {
		status, err := models.ParseStatus(q.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Statuses = []models.Status{status}
	}
	if q.Priority != "" {
		priority, err := models.ParsePriority(q.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Priority = priority
	}
	switch sort := models.IndentSort(strings.ToLower(q.Sort)); sort {
	case "", models.SortNewest, models.SortAmount, models.SortPriority:
		filter.Sort = sort
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, q.Sort)
	}

	filter, ok := scopeFor(actor).narrow(filter)
	if !ok {
		return []models.Indent{}, nil
	}
	return s.store.ListIndents(ctx, filter)
}

// Counts returns the number of visible indents per status.
func (s *Service) Counts(ctx context.Context, actor models.User) (map[models.Status]int, error) {
	indents, err := s.List(ctx, actor, ListQuery{})
	if err != nil {
		return nil, err
	}
	counts := make(map[models.Status]int)
	for _, indent := range indents {
		counts[indent.Status]++
	}
	return counts, nil
}

// Get returns one indent if the actor may see it.
func (s *Service) Get(ctx context.Context, actor models.User, id string) (models.Indent, error) {
	indent, err := s.store.GetIndent(ctx, id)
	if err != nil {
		return models.Indent{}, err
	}
	if !scopeFor(actor).allows(indent) {
		return models.Indent{}, ErrForbidden
	}
	return indent, nil
}

// Create stores a new draft raised by an indenter for their department.
func (s *Service) Create(ctx context.Context, actor models.User, req models.NewIndentRequest) (models.Indent, error) {
	if actor.Role != models.RoleIndenter {
		return models.Indent{}, ErrForbidden
	}
	if actor.Department == "" {
		return models.Indent{}, fmt.Errorf("%w: indenter has no department", ErrForbidden)
	}

	priority, err := models.ParsePriority(req.Priority)
	if err != nil {
		return models.Indent{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Indent{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return models.Indent{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	amount := req.Amount
	if amount.IsZero() {
		for _, item := range req.Items {
			amount = amount.Add(item.ApproximateValue.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	if amount.IsNegative() {
		return models.Indent{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	id, err := s.store.NextIndentID(ctx)
	if err != nil {
		return models.Indent{}, fmt.Errorf("allocate indent id: %w", err)
	}

	now := s.now().UTC()
	indent := models.Indent{
		ID:            id,
		Title:         title,
		Department:    actor.Department,
		Quantity:      req.Quantity,
		Amount:        amount,
		Priority:      priority,
		Status:        models.StatusDraft,
		RequestedBy:   actor.ID,
		BudgetHead:    strings.TrimSpace(req.BudgetHead),
		Justification: strings.TrimSpace(req.Justification),
		Items:         append([]models.IndentItem(nil), req.Items...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.CreateIndent(ctx, indent); err != nil {
		return models.Indent{}, fmt.Errorf("create indent: %w", err)
	}

	s.logger.Info("indent drafted", zap.String("indent_id", id), zap.String("user_id", actor.ID))
	return indent, nil
}

// Submit moves a draft into the approval pipeline.
func (s *Service) Submit(ctx context.Context, actor models.User, id string) (models.Indent, error) {
	return s.transition(ctx, actor, id, models.ActionSubmit, "")
}

// Approve advances the indent one stage.
func (s *Service) Approve(ctx context.Context, actor models.User, id string) (models.Indent, error) {
	return s.transition(ctx, actor, id, models.ActionApprove, "")
}

// Reject ends the indent with mandatory remarks.
func (s *Service) Reject(ctx context.Context, actor models.User, id, remarks string) (models.Indent, error) {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return models.Indent{}, ErrRemarksRequired
	}
	return s.transition(ctx, actor, id, models.ActionReject, remarks)
}

// History returns the audit trail of an indent, oldest first.
func (s *Service) History(ctx context.Context, actor models.User, id string) ([]models.AuditEntry, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	entries, err := s.store.ListAudit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load audit trail: %w", err)
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return entries, nil
}

func (s *Service) transition(ctx context.Context, actor models.User, id string, action models.Action, remarks string) (models.Indent, error) {
	current, err := s.store.GetIndent(ctx, id)
	if err != nil {
		return models.Indent{}, err
	}

	if err := checkDepartment(actor, current); err != nil {
		return models.Indent{}, err
	}

	next, err := models.NextStatus(current.Status, actor.Role, action)
	if err != nil {
		return models.Indent{}, err
	}

	updated := current.Clone()
	updated.Status = next
	updated.UpdatedAt = s.now().UTC()
	switch action {
	case models.ActionApprove:
		updated.ApprovalTrail = append(updated.ApprovalTrail, actor.Role)
	case models.ActionReject:
		updated.Remarks = remarks
	}

	if err := s.store.UpdateIndent(ctx, updated, current.Status); err != nil {
		return models.Indent{}, fmt.Errorf("%s indent %s: %w", action, id, err)
	}
	updated.Version = current.Version + 1

	s.logger.Info("indent transitioned",
		zap.String("indent_id", id),
		zap.String("action", string(action)),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)),
		zap.String("user_id", actor.ID))

	entry := models.AuditEntry{
		ID:           uuid.NewString(),
		IndentID:     id,
		Action:       action,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		StatusBefore: current.Status,
		StatusAfter:  next,
		Remarks:      remarks,
		PerformedAt:  updated.UpdatedAt,
	}
	if err := s.store.AppendAudit(ctx, entry); err != nil {
		s.logger.Error("failed to append audit entry", zap.Error(err), zap.String("indent_id", id))
	}

	s.publisher.Publish(ctx, notify.IndentTransition(updated, actor, action))
	return updated, nil
}

// checkDepartment applies the department guard on the indenter and HOD steps.
func checkDepartment(actor models.User, indent models.Indent) error {
	switch actor.Role {
	case models.RoleIndenter, models.RoleHOD:
		if !strings.EqualFold(actor.Department, indent.Department) {
			return ErrForbidden
		}
	}
	return nil
}
