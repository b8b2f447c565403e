// Package session owns the client's authentication state: the Credential
// Store and the startup Bootstrap that revives a stored token.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

var ErrEmptyToken = errors.New("empty session token")

// Store is the single writer of the active Session. The durable token and
// the in-memory session are updated under one lock, and the in-memory side
// only changes after the durable write succeeded, so the two never diverge.
type Store struct {
	mu      sync.RWMutex
	storage TokenStorage
	current *models.Session
	ready   bool
}

func NewStore(storage TokenStorage) *Store {
	return &Store{storage: storage}
}

// SetSession persists token and makes (user, token) the active Session.
func (s *Store) SetSession(ctx context.Context, user models.User, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.current = &models.Session{Token: token, User: user}
	return nil
}

// ClearSession removes the durable token and then the in-memory Session.
// If the removal fails the Session stays as it was.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(ctx); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	s.current = nil
	return nil
}

// restoreSession activates (user, token) only if no Session was set in the
// meantime and token is still the stored one. It reports whether it did.
func (s *Store) restoreSession(ctx context.Context, user models.User, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok, err := s.holdsOnly(ctx, token); !ok || err != nil {
		return false, err
	}
	s.current = &models.Session{Token: token, User: user}
	return true, nil
}

// discardStored removes token from durable storage unless a Session was set
// in the meantime or the stored token changed. It reports whether it did.
func (s *Store) discardStored(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok, err := s.holdsOnly(ctx, token); !ok || err != nil {
		return false, err
	}
	if err := s.storage.Remove(ctx); err != nil {
		return false, fmt.Errorf("remove token: %w", err)
	}
	return true, nil
}

// holdsOnly reports whether there is no active Session and token is the
// durable one. Callers hold mu.
func (s *Store) holdsOnly(ctx context.Context, token string) (bool, error) {
	if s.current != nil {
		return false, nil
	}
	stored, err := s.storage.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("read stored token: %w", err)
	}
	return stored == token, nil
}

// CurrentUser returns the user of the active Session.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.User{}, false
	}
	return s.current.User, true
}

// Token returns the active bearer token or "". It makes Store usable as the
// gateway's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// LoggedIn reports whether a Session is active.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// UpdateUser merges a profile update into the active Session. It returns
// false when nobody is logged in.
func (s *Store) UpdateUser(patch models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	s.current.User = s.current.User.Merge(patch)
	return true
}

// StoredToken reads the durable token without touching the Session.
func (s *Store) StoredToken(ctx context.Context) (string, error) {
	return s.storage.Load(ctx)
}

// Ready reports whether Bootstrap has finished. Until then ownership cannot
// be evaluated and mutation commands stay hidden.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Store) markReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}
