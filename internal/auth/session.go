package auth

import (
	"context"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

// Session is the per-request application context holding the restored identity.
type Session struct {
	user   models.User
	claims *Claims
}

// Anonymous is the session of a request without a valid token.
var Anonymous = Session{}

// NewSession wraps a restored identity.
func NewSession(user models.User, claims *Claims) Session {
	return Session{user: user, claims: claims}
}

// Current returns the authenticated user, if any.
func (s Session) Current() (models.User, bool) {
	return s.user, s.claims != nil
}

// Claims returns the token claims backing the session, or nil.
func (s Session) Claims() *Claims {
	return s.claims
}

type sessionKey struct{}

// WithSession stores the session on ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored on ctx or Anonymous.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey{}).(Session); ok {
		return s
	}
	return Anonymous
}
