package workflow

import (
	"strings"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

// scope is what a role may see of the indent register.
type scope struct {
	statuses   []models.Status // nil means every status
	department string
	none       bool
}

func scopeFor(actor models.User) scope {
	switch actor.Role {
	case models.RoleAdmin:
		return scope{}
	case models.RoleIndenter:
		return scope{department: actor.Department}
	case models.RoleHOD:
		return scope{statuses: []models.Status{models.StatusPendingHOD}, department: actor.Department}
	case models.RoleCPD:
		return scope{statuses: []models.Status{models.StatusPendingCPD, models.StatusApproved}}
	case models.RoleStore, models.RoleRegistrar, models.RoleManagement:
		stage, _ := actor.Role.Stage()
		return scope{statuses: []models.Status{stage}}
	default:
		return scope{none: true}
	}
}

func (s scope) allows(indent models.Indent) bool {
	if s.none {
		return false
	}
	if s.department != "" && !strings.EqualFold(s.department, indent.Department) {
		return false
	}
	if s.statuses == nil {
		return true
	}
	for _, st := range s.statuses {
		if st == indent.Status {
			return true
		}
	}
	return false
}

// narrow intersects the caller's filter with the scope. ok is false when nothing can match.
func (s scope) narrow(f models.IndentFilter) (models.IndentFilter, bool) {
	if s.none {
		return f, false
	}
	if s.department != "" {
		if f.Department != "" && !strings.EqualFold(f.Department, s.department) {
			return f, false
		}
		f.Department = s.department
	}
	if s.statuses == nil {
		return f, true
	}
	if len(f.Statuses) == 0 {
		f.Statuses = append([]models.Status(nil), s.statuses...)
		return f, true
	}

	var kept []models.Status
	for _, want := range f.Statuses {
		for _, st := range s.statuses {
			if want == st {
				kept = append(kept, want)
			}
		}
	}
	f.Statuses = kept
	return f, len(kept) > 0
}
