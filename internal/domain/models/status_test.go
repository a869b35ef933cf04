package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		actor   Role
		action  Action
		want    Status
		wantErr bool
	}{
		{"indenter submits draft", StatusDraft, RoleIndenter, ActionSubmit, StatusPendingHOD, false},
		{"hod approves", StatusPendingHOD, RoleHOD, ActionApprove, StatusPendingStore, false},
		{"store approves", StatusPendingStore, RoleStore, ActionApprove, StatusPendingRegistrar, false},
		{"registrar approves", StatusPendingRegistrar, RoleRegistrar, ActionApprove, StatusPendingCPD, false},
		{"cpd approves", StatusPendingCPD, RoleCPD, ActionApprove, StatusPendingManagement, false},
		{"management approves", StatusPendingManagement, RoleManagement, ActionApprove, StatusApproved, false},
		{"store rejects", StatusPendingStore, RoleStore, ActionReject, StatusRejected, false},
		{"wrong role approves", StatusPendingHOD, RoleStore, ActionApprove, "", true},
		{"admin cannot approve", StatusPendingCPD, RoleAdmin, ActionApprove, "", true},
		{"hod cannot submit", StatusDraft, RoleHOD, ActionSubmit, "", true},
		{"resubmit pending", StatusPendingHOD, RoleIndenter, ActionSubmit, "", true},
		{"approved is terminal", StatusApproved, RoleManagement, ActionApprove, "", true},
		{"rejected is absorbing", StatusRejected, RoleHOD, ActionReject, "", true},
		{"draft cannot be rejected", StatusDraft, RoleHOD, ActionReject, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.actor, tt.action)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrTransitionNotAllowed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRejectReachableFromEveryPendingStage(t *testing.T) {
	for _, s := range Statuses {
		owner, ok := s.Owner()
		if !ok {
			continue
		}
		next, err := NextStatus(s, owner, ActionReject)
		require.NoError(t, err, s)
		assert.Equal(t, StatusRejected, next)
	}
}

func TestFinishedIndentsRefuseEveryAction(t *testing.T) {
	for _, s := range Statuses {
		if !s.IsTerminal() {
			continue
		}
		for _, action := range []Action{ActionSubmit, ActionApprove, ActionReject} {
			for _, role := range []Role{RoleIndenter, RoleHOD, RoleManagement, RoleAdmin} {
				_, err := NextStatus(s, role, action)
				require.ErrorIs(t, err, ErrTransitionNotAllowed)
				assert.Contains(t, err.Error(), "already "+string(s))
			}
		}
	}
	assert.False(t, StatusPendingCPD.IsTerminal())
	assert.False(t, StatusDraft.IsTerminal())
}

func TestRoleStageRoundTrip(t *testing.T) {
	for _, r := range Roles {
		stage, ok := r.Stage()
		if !ok {
			continue
		}
		owner, ok := stage.Owner()
		require.True(t, ok)
		assert.Equal(t, r, owner)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Pending_HOD ")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingHOD, s)

	_, err = ParseStatus("pending_dean")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	assert.Len(t, Roles, 8)
	for _, r := range Roles {
		parsed, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseRole("dean")
	assert.Error(t, err)
}

func TestIndentFilterMatch(t *testing.T) {
	indent := Indent{ID: "IND001", Title: "Microscope", Department: "Biology", Status: StatusPendingHOD, Priority: PriorityHigh}

	assert.True(t, IndentFilter{}.Match(indent))
	assert.True(t, IndentFilter{Query: "micro"}.Match(indent))
	assert.True(t, IndentFilter{Query: "ind0"}.Match(indent))
	assert.True(t, IndentFilter{Department: "biology"}.Match(indent))
	assert.False(t, IndentFilter{Query: "chemistry"}.Match(indent))
	assert.False(t, IndentFilter{Statuses: []Status{StatusApproved}}.Match(indent))
	assert.False(t, IndentFilter{Priority: PriorityLow}.Match(indent))
}

func TestVendorFilterMatch(t *testing.T) {
	v := Vendor{ID: "V001", Name: "LabTech Supplies", Category: "Lab Equipment"}

	assert.True(t, VendorFilter{Query: "labtech"}.Match(v))
	assert.True(t, VendorFilter{Category: "lab equipment"}.Match(v))
	assert.False(t, VendorFilter{Category: "Furniture"}.Match(v))
}
