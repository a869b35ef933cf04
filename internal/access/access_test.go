package access

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

func TestLandingTableIsTotalAndInjective(t *testing.T) {
	seen := map[string]models.Role{}
	for _, role := range models.Roles {
		path, ok := Landing(role)
		require.True(t, ok, role)
		if prev, dup := seen[path]; dup {
			t.Fatalf("%s and %s share landing path %s", prev, role, path)
		}
		seen[path] = role
	}

	_, ok := Landing("dean")
	assert.False(t, ok)
}

func TestEveryRoleReachesOnlyItsOwnPages(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	for _, role := range models.Roles {
		for _, other := range models.Roles {
			path, _ := Landing(other)
			allowed, err := e.Allowed(role, path, http.MethodGet)
			require.NoError(t, err)
			assert.Equal(t, role == other, allowed, "%s -> %s", role, path)
		}
	}
}

func TestEnforcerRejectsWritesAndOutsidePaths(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	tests := []struct {
		role   models.Role
		path   string
		method string
		want   bool
	}{
		{models.RoleHOD, "/hod/indents/IND001", http.MethodGet, true},
		{models.RoleHOD, "/hod/dashboard", http.MethodPost, false},
		{models.RoleAdmin, "/cpd/dashboard", http.MethodGet, false},
		{models.RoleCPD, "/cpdx/dashboard", http.MethodGet, false},
		{models.RoleVendor, "/login", http.MethodGet, false},
	}
	for _, tt := range tests {
		got, err := e.Allowed(tt.role, tt.path, tt.method)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.role, tt.method, tt.path)
	}
}
