package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
)

func newTestStore() *Store {
	return New(repository.Dataset{
		Indents: []models.Indent{
			{ID: "IND001", Title: "Microscope", Department: "Biology", Status: models.StatusPendingHOD},
			{ID: "IND007", Title: "Fume hood", Department: "Chemistry", Status: models.StatusDraft},
		},
		Enquiries: []models.Enquiry{
			{ID: "ENQ002", IndentID: "IND001", Status: models.EnquiryPending, Deadline: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "ENQ003", IndentID: "IND001", Status: models.EnquiryResponded, Deadline: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "ENQ004", IndentID: "IND001", Status: models.EnquiryPending, Deadline: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	})
}

func TestNextIDsContinueAfterSeed(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	id, err := s.NextIndentID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "IND008", id)

	enq, err := s.NextEnquiryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ENQ005", enq)
}

func TestUpdateIndentCompareAndSet(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	indent, err := s.GetIndent(ctx, "IND001")
	require.NoError(t, err)

	stale := indent.Clone()

	indent.Status = models.StatusPendingStore
	indent.ApprovalTrail = append(indent.ApprovalTrail, models.RoleHOD)
	require.NoError(t, s.UpdateIndent(ctx, indent, models.StatusPendingHOD))

	stale.Status = models.StatusRejected
	err = s.UpdateIndent(ctx, stale, models.StatusPendingHOD)
	assert.ErrorIs(t, err, repository.ErrConflict)

	stored, err := s.GetIndent(ctx, "IND001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingStore, stored.Status)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, []models.Role{models.RoleHOD}, stored.ApprovalTrail)
}

func TestUpdateIndentConcurrentWritersOnlyOneWins(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	indent, err := s.GetIndent(ctx, "IND001")
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := indent.Clone()
			next.Status = models.StatusPendingStore
			if err := s.UpdateIndent(ctx, next, models.StatusPendingHOD); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestGetIndentReturnsCopy(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	indent, err := s.GetIndent(ctx, "IND001")
	require.NoError(t, err)
	indent.ApprovalTrail = append(indent.ApprovalTrail, models.RoleAdmin)

	again, err := s.GetIndent(ctx, "IND001")
	require.NoError(t, err)
	assert.Empty(t, again.ApprovalTrail)
}

func TestGetMissingIndent(t *testing.T) {
	_, err := newTestStore().GetIndent(context.Background(), "IND999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExpireEnquiries(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	changed, err := s.ExpireEnquiries(ctx, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	enq, err := s.GetEnquiry(ctx, "ENQ002")
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryExpired, enq.Status)

	enq, err = s.GetEnquiry(ctx, "ENQ003")
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryResponded, enq.Status)
}

func TestListQuotesCheapestFirst(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.SaveQuote(ctx, models.Quote{ID: "Q1", EnquiryID: "ENQ002", IndentID: "IND001", DiscountedPrice: decimal.NewFromInt(30000)}))
	require.NoError(t, s.SaveQuote(ctx, models.Quote{ID: "Q2", EnquiryID: "ENQ002", IndentID: "IND001", DiscountedPrice: decimal.NewFromInt(25000)}))
	require.NoError(t, s.SaveQuote(ctx, models.Quote{ID: "Q3", EnquiryID: "ENQ004", IndentID: "IND001", DiscountedPrice: decimal.NewFromInt(1000)}))

	quotes, err := s.ListQuotes(ctx, "ENQ002")
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "Q2", quotes[0].ID)

	byIndent, err := s.ListQuotesByIndent(ctx, "IND001")
	require.NoError(t, err)
	require.Len(t, byIndent, 3)
	assert.Equal(t, "Q3", byIndent[0].ID)
}

func TestPurchaseOrderDuplicate(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	po := models.PurchaseOrder{PONumber: "PO-IND001-1", IndentID: "IND001", IssuedAt: time.Now()}

	_, err := s.FindPurchaseOrderByIndent(ctx, "IND001")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, s.SavePurchaseOrder(ctx, po))
	assert.ErrorIs(t, s.SavePurchaseOrder(ctx, po), repository.ErrDuplicate)

	// a second number for the same indent is still a duplicate
	again := po
	again.PONumber = "PO-IND001-2"
	assert.ErrorIs(t, s.SavePurchaseOrder(ctx, again), repository.ErrDuplicate)

	found, err := s.FindPurchaseOrderByIndent(ctx, "IND001")
	require.NoError(t, err)
	assert.Equal(t, "PO-IND001-1", found.PONumber)

	orders, err := s.ListPurchaseOrders(ctx, time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
