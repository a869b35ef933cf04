package auth

import (
	"sync"
	"time"
)

// Revocations remembers logged-out token ids until they would have expired anyway.
type Revocations struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

// NewRevocations creates an empty registry.
func NewRevocations() *Revocations {
	return &Revocations{
		revoked: make(map[string]time.Time),
	}
}

// Revoke marks the token id as unusable.
func (r *Revocations) Revoke(id string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[id] = expiresAt
}

// IsRevoked reports whether the token id was revoked.
func (r *Revocations) IsRevoked(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[id]
	return ok
}

// Prune drops entries whose token has expired and returns how many were removed.
func (r *Revocations) Prune(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked revocations.
func (r *Revocations) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.revoked)
}
