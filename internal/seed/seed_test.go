package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

func TestEveryRoleHasADemoUser(t *testing.T) {
	seen := map[models.Role]bool{}
	emails := map[string]bool{}
	for _, u := range Users() {
		seen[u.Role] = true
		key := strings.ToLower(u.Email)
		assert.False(t, emails[key], "duplicate email %s", u.Email)
		emails[key] = true
	}
	for _, r := range models.Roles {
		assert.True(t, seen[r], "no demo user for %s", r)
	}
}

func TestDatasetIsConsistent(t *testing.T) {
	data := Dataset(time.Now())

	vendors := map[string]bool{}
	for _, v := range data.Vendors {
		vendors[v.ID] = true
	}
	indents := map[string]models.Indent{}
	for _, i := range data.Indents {
		indents[i.ID] = i
		if owner, ok := i.Status.Owner(); ok {
			stage, _ := owner.Stage()
			assert.Equal(t, i.Status, stage)
		}
	}

	for _, e := range data.Enquiries {
		_, ok := indents[e.IndentID]
		assert.True(t, ok, e.ID)
		for _, id := range e.VendorIDs {
			assert.True(t, vendors[id], "%s references unknown vendor %s", e.ID, id)
		}
	}
	for _, q := range data.Quotes {
		assert.True(t, vendors[q.VendorID])
	}

	assert.Equal(t, 2, indents["IND001"].Quantity)
	assert.Equal(t, "Biology", indents["IND001"].Department)
}
