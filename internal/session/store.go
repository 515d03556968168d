// Package session owns the authentication credential for the lifetime of
// the running process. Nothing is persisted; a restart starts anonymous.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrNotAuthenticated is returned by operations that need an active session
var ErrNotAuthenticated = errors.New("authentication required")

// Credential identifies an authenticated session
type Credential struct {
	Token  string
	UserID string

	// ExpiresAt is decoded from the token's exp claim when the token is a
	// JWT. It is informational only; zero when unknown.
	ExpiresAt time.Time
}

// Expired reports whether the credential carries a known expiry before now
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Store holds either exactly one Credential or none
type Store struct {
	mu   sync.RWMutex
	cred *Credential
}

// NewStore returns an anonymous store
func NewStore() *Store {
	return &Store{}
}

// Login replaces any prior credential unconditionally
func (s *Store) Login(token, userID string) Credential {
	cred := Credential{
		Token:     token,
		UserID:    userID,
		ExpiresAt: tokenExpiry(token),
	}

	s.mu.Lock()
	s.cred = &cred
	s.mu.Unlock()

	return cred
}

// Logout returns the store to the anonymous state
func (s *Store) Logout() {
	s.mu.Lock()
	s.cred = nil
	s.mu.Unlock()
}

// Current returns a copy of the active credential
func (s *Store) Current() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cred == nil {
		return Credential{}, false
	}
	return *s.cred, true
}

// CredentialRef returns a pointer to a copy of the active credential, or
// nil when anonymous. Suited for passing to remote operations.
func (s *Store) CredentialRef() *Credential {
	cred, ok := s.Current()
	if !ok {
		return nil
	}
	return &cred
}

// Authenticated reports whether a credential is active
func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0)
	default:
		return time.Time{}
	}
}
