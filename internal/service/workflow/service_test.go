package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
	"github.com/mamadbah2/procurement/internal/repository/memory"
	"github.com/mamadbah2/procurement/internal/seed"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.OutboundNotification
}

func (p *recordingPublisher) Publish(_ context.Context, n models.OutboundNotification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, n)
}

type failingAudit struct {
	*memory.Store
}

func (failingAudit) AppendAudit(context.Context, models.AuditEntry) error {
	return errors.New("audit store offline")
}

func users() map[string]models.User {
	out := map[string]models.User{}
	for _, u := range seed.Users() {
		out[u.Email] = u
	}
	return out
}

var (
	indenter     = users()["indenter@university.edu"]
	hod          = users()["hod@university.edu"]
	chemHOD      = users()["chem.hod@university.edu"]
	chemIndenter = users()["chem.indenter@university.edu"]
	store        = users()["store@university.edu"]
	registrar    = users()["registrar@university.edu"]
	cpd          = users()["cpd@university.edu"]
	management   = users()["management@university.edu"]
	vendor       = users()["vendor@labtech.example"]
	admin        = users()["admin@university.edu"]
)

func newTestService(t *testing.T) (*Service, *memory.Store, *recordingPublisher) {
	t.Helper()
	st := memory.New(seed.Dataset(time.Now()))
	pub := &recordingPublisher{}
	return NewService(st, pub, nil), st, pub
}

func TestFullApprovalPipeline(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	indent, err := svc.Create(ctx, indenter, models.NewIndentRequest{
		Title: "Autoclave", Quantity: 1, Priority: "High", BudgetHead: "Lab Equipment", Justification: "Sterilisation",
		Items: []models.IndentItem{{Name: "Autoclave", Quantity: 1, ApproximateValue: decimal.NewFromInt(90000)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "IND009", indent.ID)
	assert.Equal(t, models.StatusDraft, indent.Status)
	assert.Equal(t, "Biology", indent.Department)
	assert.True(t, decimal.NewFromInt(90000).Equal(indent.Amount))

	indent, err = svc.Submit(ctx, indenter, indent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingHOD, indent.Status)

	for _, approver := range []models.User{hod, store, registrar, cpd, management} {
		indent, err = svc.Approve(ctx, approver, indent.ID)
		require.NoError(t, err, approver.Role)
	}
	assert.Equal(t, models.StatusApproved, indent.Status)
	assert.Equal(t, []models.Role{models.RoleHOD, models.RoleStore, models.RoleRegistrar, models.RoleCPD, models.RoleManagement}, indent.ApprovalTrail)

	history, err := svc.History(ctx, admin, indent.ID)
	require.NoError(t, err)
	require.Len(t, history, 6)
	assert.Equal(t, models.ActionSubmit, history[0].Action)
	assert.Equal(t, models.StatusApproved, history[5].StatusAfter)

	require.Len(t, pub.events, 6)
	assert.Equal(t, models.EventIndentApprovedFinal, pub.events[5].Event)
}

func TestRejectRequiresRemarks(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Reject(ctx, hod, "IND001", "   ")
	assert.ErrorIs(t, err, ErrRemarksRequired)

	indent, err := svc.Reject(ctx, hod, "IND001", " Duplicate of IND005 ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, indent.Status)
	assert.Equal(t, "Duplicate of IND005", indent.Remarks)

	stored, err := st.GetIndent(ctx, "IND001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, stored.Status)

	_, err = svc.Approve(ctx, hod, "IND001")
	assert.ErrorIs(t, err, models.ErrTransitionNotAllowed)
}

func TestOnlyStageOwnerMayAct(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		actor models.User
		id    string
		want  error
	}{
		{"store on hod stage", store, "IND001", models.ErrTransitionNotAllowed},
		{"admin cannot approve", admin, "IND004", models.ErrTransitionNotAllowed},
		{"vendor cannot approve", vendor, "IND005", models.ErrTransitionNotAllowed},
		{"other department hod", chemHOD, "IND001", ErrForbidden},
		{"already approved", management, "IND006", models.ErrTransitionNotAllowed},
		{"missing indent", hod, "IND999", repository.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Approve(ctx, tt.actor, tt.id)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmitGuards(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, indenter, "IND007")
	assert.ErrorIs(t, err, ErrForbidden, "Biology indenter submitting a Chemistry draft")

	indent, err := svc.Submit(ctx, chemIndenter, "IND007")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingHOD, indent.Status)

	_, err = svc.Submit(ctx, chemIndenter, "IND007")
	assert.ErrorIs(t, err, models.ErrTransitionNotAllowed)
}

func TestConcurrentApprovalsPersistOnce(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Approve(ctx, hod, "IND001")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	for _, err := range failures {
		assert.True(t, errors.Is(err, repository.ErrConflict) || errors.Is(err, models.ErrTransitionNotAllowed), err)
	}

	indent, err := svc.Get(ctx, admin, "IND001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingStore, indent.Status)
	assert.Equal(t, []models.Role{models.RoleHOD}, indent.ApprovalTrail)
}

func TestAuditFailureDoesNotFailTransition(t *testing.T) {
	st := failingAudit{memory.New(seed.Dataset(time.Now()))}
	svc := NewService(st, nil, nil)

	indent, err := svc.Approve(context.Background(), hod, "IND001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingStore, indent.Status)
}

func TestRoleScopedListing(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	ids := func(actor models.User, q ListQuery) []string {
		list, err := svc.List(ctx, actor, q)
		require.NoError(t, err)
		out := []string{}
		for _, i := range list {
			out = append(out, i.ID)
		}
		return out
	}

	assert.Len(t, ids(admin, ListQuery{}), 8)
	assert.ElementsMatch(t, []string{"IND001", "IND005"}, ids(indenter, ListQuery{}))
	assert.Equal(t, []string{"IND001"}, ids(hod, ListQuery{}))
	assert.Empty(t, ids(chemHOD, ListQuery{}))
	assert.Equal(t, []string{"IND002"}, ids(store, ListQuery{}))
	assert.Equal(t, []string{"IND003"}, ids(registrar, ListQuery{}))
	assert.ElementsMatch(t, []string{"IND004", "IND006"}, ids(cpd, ListQuery{}))
	assert.Equal(t, []string{"IND005"}, ids(management, ListQuery{}))
	assert.Empty(t, ids(vendor, ListQuery{}))

	assert.Equal(t, []string{"IND006"}, ids(cpd, ListQuery{Status: "approved"}))
	assert.Empty(t, ids(cpd, ListQuery{Status: "pending_hod"}))
	assert.Equal(t, []string{"IND004"}, ids(admin, ListQuery{Query: "laptop"}))
	assert.Equal(t, []string{"IND004", "IND001"}, ids(admin, ListQuery{Priority: "high", Sort: "amount"}))

	_, err := svc.List(ctx, admin, ListQuery{Status: "pending_dean"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.List(ctx, admin, ListQuery{Sort: "alphabetical"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetRespectsScope(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, store, "IND001")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.History(ctx, vendor, "IND001")
	assert.ErrorIs(t, err, ErrForbidden)

	counts, err := svc.Counts(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.StatusPendingHOD])
	assert.Equal(t, 1, counts[models.StatusApproved])
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, hod, models.NewIndentRequest{Title: "x", Quantity: 1, Priority: "low"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, indenter, models.NewIndentRequest{Title: "x", Quantity: 1, Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, indenter, models.NewIndentRequest{Title: "x", Quantity: 1, Priority: "low", Amount: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
