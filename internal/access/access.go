// Package access maps roles to their landing pages and guards role-scoped routes.
package access

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

const routeModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

var landing = map[models.Role]string{
	models.RoleIndenter:   "/indenter/dashboard",
	models.RoleHOD:        "/hod/dashboard",
	models.RoleStore:      "/store/dashboard",
	models.RoleRegistrar:  "/registrar/dashboard",
	models.RoleCPD:        "/cpd/dashboard",
	models.RoleManagement: "/management/dashboard",
	models.RoleVendor:     "/vendor/dashboard",
	models.RoleAdmin:      "/admin/dashboard",
}

// Landing returns the page a role is sent to after login.
func Landing(role models.Role) (string, bool) {
	path, ok := landing[role]
	return path, ok
}

// Prefix returns the route prefix owned by a role.
func Prefix(role models.Role) string {
	return "/" + string(role)
}

// Enforcer decides whether a role may open a page.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

// NewEnforcer builds the route policy: every role may read its own prefix only.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(routeModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse route model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize route enforcer: %w", err)
	}

	for _, role := range models.Roles {
		if _, err := e.AddPolicy(string(role), Prefix(role)+"/*", "^(GET|HEAD)$"); err != nil {
			return nil, fmt.Errorf("failed to add policy for %s: %w", role, err)
		}
	}

	return &Enforcer{enforcer: e}, nil
}

// Allowed reports whether role may perform method on path.
func (e *Enforcer) Allowed(role models.Role, path, method string) (bool, error) {
	ok, err := e.enforcer.Enforce(string(role), path, method)
	if err != nil {
		return false, fmt.Errorf("route permission check failed: %w", err)
	}
	return ok, nil
}
