package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
)

const dateLayout = "2006-01-02"

// Money formats amounts for summaries.
type Money interface {
	Format(amount decimal.Decimal) string
}

// Service exposes lightweight analytics over the indent register and issued orders.
type Service struct {
	indents repository.IndentRepository
	orders  repository.PurchaseOrderRepository
	money   Money
	logger  *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(indents repository.IndentRepository, orders repository.PurchaseOrderRepository, money Money, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{indents: indents, orders: orders, money: money, logger: logger}
}

// PendingDigest counts indents waiting at each approval stage.
func (s *Service) PendingDigest(ctx context.Context, now time.Time) (models.PendingDigest, error) {
	var pending []models.Status
	for _, st := range models.Statuses {
		if st.IsPending() {
			pending = append(pending, st)
		}
	}

	indents, err := s.indents.ListIndents(ctx, models.IndentFilter{Statuses: pending})
	if err != nil {
		return models.PendingDigest{}, fmt.Errorf("load pending indents: %w", err)
	}

	digest := models.PendingDigest{GeneratedAt: now, PerStage: make(map[models.Status]int, len(pending))}
	for _, st := range pending {
		digest.PerStage[st] = 0
	}
	for _, indent := range indents {
		digest.PerStage[indent.Status]++
		digest.Total++
	}
	return digest, nil
}

// DigestText renders a digest as a short message.
func DigestText(d models.PendingDigest) string {
	if d.Total == 0 {
		return fmt.Sprintf("Pending approvals (%s): none.", d.GeneratedAt.Format(dateLayout))
	}

	var parts []string
	for _, st := range models.Statuses {
		count, ok := d.PerStage[st]
		if !ok || count == 0 {
			continue
		}
		owner, _ := st.Owner()
		parts = append(parts, fmt.Sprintf("%s %d", owner, count))
	}
	return fmt.Sprintf("Pending approvals (%s): %d indents. %s.", d.GeneratedAt.Format(dateLayout), d.Total, strings.Join(parts, ", "))
}

// SpendSummary totals purchase orders issued within [start, end].
func (s *Service) SpendSummary(ctx context.Context, start, end time.Time) (models.SpendSummary, error) {
	if end.Before(start) {
		return models.SpendSummary{}, fmt.Errorf("summary end %s is before start %s", end.Format(dateLayout), start.Format(dateLayout))
	}

	orders, err := s.orders.ListPurchaseOrders(ctx, start, end)
	if err != nil {
		return models.SpendSummary{}, fmt.Errorf("load purchase orders: %w", err)
	}

	summary := models.SpendSummary{Start: start, End: end, TotalSpend: decimal.Zero}
	for _, po := range orders {
		summary.TotalSpend = summary.TotalSpend.Add(po.Total)
		summary.Orders++
	}
	return summary, nil
}

// SpendText renders a spend summary as a short message.
func (s *Service) SpendText(sum models.SpendSummary) string {
	if sum.Orders == 0 {
		return fmt.Sprintf("Spend (%s-%s): no purchase orders issued.", sum.Start.Format(dateLayout), sum.End.Format(dateLayout))
	}
	return fmt.Sprintf("Spend (%s-%s): %s across %d purchase orders.",
		sum.Start.Format(dateLayout), sum.End.Format(dateLayout), s.money.Format(sum.TotalSpend), sum.Orders)
}

// DailyReport combines the pending digest with the last seven days of spend.
func (s *Service) DailyReport(ctx context.Context, now time.Time) (string, error) {
	digest, err := s.PendingDigest(ctx, now)
	if err != nil {
		return "", err
	}

	spend, err := s.SpendSummary(ctx, now.AddDate(0, 0, -7), now)
	if err != nil {
		s.logger.Warn("spend summary unavailable", zap.Error(err))
		return DigestText(digest), nil
	}

	return DigestText(digest) + "\n" + s.SpendText(spend), nil
}
