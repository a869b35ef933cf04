package auth

import (
	"errors"
	"strings"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

// ErrInvalidCredentials is returned for unknown emails or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Directory is the fixed demo credential list. Every listed account shares one password.
type Directory struct {
	byEmail  map[string]models.User
	byID     map[string]models.User
	ordered  []models.User
	password string
}

// NewDirectory indexes users by normalized email.
func NewDirectory(users []models.User, sharedPassword string) *Directory {
	d := &Directory{
		byEmail:  make(map[string]models.User, len(users)),
		byID:     make(map[string]models.User, len(users)),
		password: sharedPassword,
	}
	for _, u := range users {
		d.byEmail[normalizeEmail(u.Email)] = u
		d.byID[u.ID] = u
		d.ordered = append(d.ordered, u)
	}
	return d
}

// Authenticate checks the pair against the list.
func (d *Directory) Authenticate(email, password string) (models.User, error) {
	user, ok := d.byEmail[normalizeEmail(email)]
	if !ok || d.password == "" || password != d.password {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Lookup finds an account by user ID.
func (d *Directory) Lookup(id string) (models.User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

// Accounts lists the demo accounts in declaration order.
func (d *Directory) Accounts() []models.User {
	return append([]models.User(nil), d.ordered...)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
