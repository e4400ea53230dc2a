package store

import (
	"sync"

	"github.com/efreitasn/minimarket/internal/domain"
)

// SecurityStore is a thread-safe in-memory store for securities.
type SecurityStore struct {
	mu         sync.RWMutex
	securities map[string]*domain.Security
	order      []string
}

// NewSecurityStore creates an empty SecurityStore.
func NewSecurityStore() *SecurityStore {
	return &SecurityStore{
		securities: make(map[string]*domain.Security),
	}
}

// Create adds a security to the store.
func (s *SecurityStore) Create(sec *domain.Security) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *sec
	s.securities[sec.SecurityID] = &c
	s.order = append(s.order, sec.SecurityID)
}

// Get retrieves a copy of a security by ID. It returns
// domain.ErrSecurityNotFound if the security does not exist.
func (s *SecurityStore) Get(id string) (*domain.Security, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sec, ok := s.securities[id]
	if !ok {
		return nil, domain.ErrSecurityNotFound
	}
	c := *sec
	return &c, nil
}

// All returns every security in creation order.
func (s *SecurityStore) All() []*domain.Security {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Security, 0, len(s.order))
	for _, id := range s.order {
		c := *s.securities[id]
		out = append(out, &c)
	}
	return out
}

// Exists reports whether a security with the given ID exists.
func (s *SecurityStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.securities[id]
	return ok
}
