package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTransitionNotAllowed indicates the actor cannot move the indent from its current status.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

// Status enumerates the indent lifecycle.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusPendingHOD        Status = "pending_hod"
	StatusPendingStore      Status = "pending_store"
	StatusPendingRegistrar  Status = "pending_registrar"
	StatusPendingCPD        Status = "pending_cpd"
	StatusPendingManagement Status = "pending_management"
	StatusApproved          Status = "approved"
	StatusRejected          Status = "rejected"
)

// Statuses lists every lifecycle value in pipeline order.
var Statuses = []Status{
	StatusDraft,
	StatusPendingHOD,
	StatusPendingStore,
	StatusPendingRegistrar,
	StatusPendingCPD,
	StatusPendingManagement,
	StatusApproved,
	StatusRejected,
}

// ParseStatus converts raw input into a Status, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(strings.ToLower(raw)))
	switch s {
	case StatusDraft, StatusPendingHOD, StatusPendingStore, StatusPendingRegistrar,
		StatusPendingCPD, StatusPendingManagement, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", fmt.Errorf("unknown indent status %q", raw)
	}
}

// Owner returns the role that acts on a pending stage.
func (s Status) Owner() (Role, bool) {
	switch s {
	case StatusPendingHOD:
		return RoleHOD, true
	case StatusPendingStore:
		return RoleStore, true
	case StatusPendingRegistrar:
		return RoleRegistrar, true
	case StatusPendingCPD:
		return RoleCPD, true
	case StatusPendingManagement:
		return RoleManagement, true
	default:
		return "", false
	}
}

// IsPending reports whether the status is awaiting a role's decision.
func (s Status) IsPending() bool {
	_, ok := s.Owner()
	return ok
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// next returns the stage following an approval of s.
func (s Status) next() (Status, bool) {
	switch s {
	case StatusPendingHOD:
		return StatusPendingStore, true
	case StatusPendingStore:
		return StatusPendingRegistrar, true
	case StatusPendingRegistrar:
		return StatusPendingCPD, true
	case StatusPendingCPD:
		return StatusPendingManagement, true
	case StatusPendingManagement:
		return StatusApproved, true
	default:
		return "", false
	}
}

// Role enumerates the fixed user roles.
type Role string

const (
	RoleIndenter   Role = "indenter"
	RoleHOD        Role = "hod"
	RoleStore      Role = "store"
	RoleRegistrar  Role = "registrar"
	RoleCPD        Role = "cpd"
	RoleManagement Role = "management"
	RoleVendor     Role = "vendor"
	RoleAdmin      Role = "admin"
)

// Roles lists every role.
var Roles = []Role{
	RoleIndenter,
	RoleHOD,
	RoleStore,
	RoleRegistrar,
	RoleCPD,
	RoleManagement,
	RoleVendor,
	RoleAdmin,
}

// ParseRole converts raw input into a Role, rejecting unknown values.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.TrimSpace(strings.ToLower(raw)))
	switch r {
	case RoleIndenter, RoleHOD, RoleStore, RoleRegistrar, RoleCPD, RoleManagement, RoleVendor, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Stage returns the pending status owned by the role.
func (r Role) Stage() (Status, bool) {
	switch r {
	case RoleHOD:
		return StatusPendingHOD, true
	case RoleStore:
		return StatusPendingStore, true
	case RoleRegistrar:
		return StatusPendingRegistrar, true
	case RoleCPD:
		return StatusPendingCPD, true
	case RoleManagement:
		return StatusPendingManagement, true
	default:
		return "", false
	}
}

// Action enumerates what an actor can do to an indent.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// NextStatus resolves the guard (current status, actor role, action) to the
// resulting status.
func NextStatus(current Status, actor Role, action Action) (Status, error) {
	if current.IsTerminal() {
		return "", fmt.Errorf("%w: indent is already %s", ErrTransitionNotAllowed, current)
	}

	switch action {
	case ActionSubmit:
		if current == StatusDraft && actor == RoleIndenter {
			return StatusPendingHOD, nil
		}
	case ActionApprove:
		if owner, ok := current.Owner(); ok && owner == actor {
			if next, ok := current.next(); ok {
				return next, nil
			}
		}
	case ActionReject:
		if owner, ok := current.Owner(); ok && owner == actor {
			return StatusRejected, nil
		}
	}

	return "", fmt.Errorf("%w: %s cannot %s an indent in %s", ErrTransitionNotAllowed, actor, action, current)
}

// Priority ranks indent urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority converts raw input into a Priority.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.TrimSpace(strings.ToLower(raw)))
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", raw)
	}
}

// Rank orders priorities high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// EnquiryStatus tracks vendor response state.
type EnquiryStatus string

const (
	EnquiryPending   EnquiryStatus = "pending"
	EnquiryResponded EnquiryStatus = "responded"
	EnquiryExpired   EnquiryStatus = "expired"
)

// ParseEnquiryStatus converts raw input into an EnquiryStatus.
func ParseEnquiryStatus(raw string) (EnquiryStatus, error) {
	s := EnquiryStatus(strings.TrimSpace(strings.ToLower(raw)))
	switch s {
	case EnquiryPending, EnquiryResponded, EnquiryExpired:
		return s, nil
	default:
		return "", fmt.Errorf("unknown enquiry status %q", raw)
	}
}
