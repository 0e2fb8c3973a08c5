package services

import (
	"errors"
	"sync"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// session holds at most one provider session.
type session[T any] struct {
	mu     sync.RWMutex
	api    T
	active bool
}

// get returns the session or domain.ErrNotInitialized.
func (s *session[T]) get() (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		var zero T
		return zero, domain.ErrNotInitialized
	}
	return s.api, nil
}

func (s *session[T]) set(api T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = api
	s.active = true
}

func (s *session[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.api = zero
	s.active = false
}

func (s *session[T]) isActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// isAuthFailure reports whether err means the provider rejected the credentials.
func isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrAuthInvalid)
}
