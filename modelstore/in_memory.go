package modelstore

import (
	"sync"

	"github.com/google/uuid"

	"github.com/hupe1980/fitmesh/internal/util"
	"github.com/hupe1980/fitmesh/spec"
)

// Store is the contract for fitted model persistence.
type Store interface {
	// Save stores (or overwrites) a fitted model under its model name and
	// fit id.
	Save(fitted *spec.Fitted) error
	// Get returns the fitted model for the given model / fit id pair or
	// ErrNotFound.
	Get(model string, id uuid.UUID) (*spec.Fitted, error)
	// List returns the fit ids stored for a model.
	List(model string) ([]string, error)
	// Delete removes the fitted model if present or returns ErrNotFound.
	Delete(model string, id uuid.UUID) error
}

// InMemoryStore is a trivial in-process Store implementation useful for
// tests, examples and single-process prototypes. It keeps all fits in a
// nested map guarded by an RWMutex. Fitted values are immutable, so the
// shared pointers are handed out directly.
//
// Layout: model -> fit id -> fitted
//
// This implementation is intentionally minimal; it does not enforce
// retention limits or eviction. For long-lived deployments, prefer a durable
// implementation that survives process restarts.
type InMemoryStore struct {
	mu   sync.RWMutex
	fits map[string]map[uuid.UUID]*spec.Fitted
}

// Compile-time check.
var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore returns an empty in-memory fitted model store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{fits: make(map[string]map[uuid.UUID]*spec.Fitted)}
}

// Save stores (or overwrites) the fitted model under its model name and id.
func (s *InMemoryStore) Save(fitted *spec.Fitted) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.fits[fitted.Model()]; !exists {
		s.fits[fitted.Model()] = make(map[uuid.UUID]*spec.Fitted)
	}
	s.fits[fitted.Model()][fitted.ID()] = fitted
	return nil
}

// Get returns the stored fitted model or ErrNotFound.
func (s *InMemoryStore) Get(model string, id uuid.UUID) (*spec.Fitted, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.fits[model]
	if !ok {
		return nil, ErrNotFound
	}
	fitted, ok := m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return fitted, nil
}

// List returns the fit ids stored for the model, sorted. The slice is a
// snapshot and safe for caller mutation.
func (s *InMemoryStore) List(model string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.fits[model]
	if !ok {
		return []string{}, nil
	}
	byID := make(map[string]struct{}, len(m))
	for id := range m {
		byID[id.String()] = struct{}{}
	}
	return util.SortedKeys(byID), nil
}

// Delete removes the fitted model if present or returns ErrNotFound.
func (s *InMemoryStore) Delete(model string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.fits[model]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[id]; !ok {
		return ErrNotFound
	}
	delete(m, id)
	return nil
}
