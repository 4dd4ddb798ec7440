// Package session holds the authenticated identity and credential for
// the current app usage period. The Store is the single source of
// truth for "is a user logged in"; it is injected into controllers
// rather than reached through a package-level singleton.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated identity. The zero value is the
// logged-out state.
type Session struct {
	Token    string
	UserID   string
	Username string
	Email    string
}

// Authenticated reports whether both the credential and the user
// identifier are present. Partial sessions never satisfy this.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.UserID != ""
}

// Store guards the current session. Writes replace the whole session
// atomically; readers never observe a half-populated session.
type Store struct {
	mu      sync.RWMutex
	current Session
	epoch   uint64
}

// Current returns a copy of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the session and advances the epoch.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
	s.epoch++
}

// Clear resets the session to logged out and advances the epoch.
// Idempotent; clearing an empty session still bumps the epoch so any
// in-flight completion is discarded.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
	s.epoch++
}

// Authenticated reports the invariant on the current session.
func (s *Store) Authenticated() bool {
	return s.Current().Authenticated()
}

// UserID returns the current user identifier, empty when logged out.
func (s *Store) UserID() string {
	return s.Current().UserID
}

// Token returns the current credential. Satisfies api.TokenSource so
// the transport can attach the Authorization header.
func (s *Store) Token() string {
	return s.Current().Token
}

// Epoch returns a counter that advances on every Set or Clear. An
// operation records the epoch when it starts and discards its
// completion effects if the epoch has moved, so a response that
// arrives after logout (or after login as a different user) cannot
// mutate the wrong session's collections.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// TokenExpiry decodes the exp claim from a JWT credential without
// verifying the signature; verification is the server's job, the
// client only wants an expiry hint for display. Returns false for
// opaque or claimless tokens.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
