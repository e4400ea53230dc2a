package store

import (
	"sync"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
)

// RoundStore is a thread-safe in-memory store for rounds.
type RoundStore struct {
	mu     sync.RWMutex
	rounds map[string]*domain.Round
	order  []string // round ids in creation order
}

// NewRoundStore creates an empty RoundStore.
func NewRoundStore() *RoundStore {
	return &RoundStore{
		rounds: make(map[string]*domain.Round),
	}
}

// Create adds a round to the store.
func (s *RoundStore) Create(r *domain.Round) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *r
	s.rounds[r.RoundID] = &c
	s.order = append(s.order, r.RoundID)
}

// Get retrieves a copy of a round by ID. It returns
// domain.ErrRoundNotFound if the round does not exist.
func (s *RoundStore) Get(id string) (*domain.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rounds[id]
	if !ok {
		return nil, domain.ErrRoundNotFound
	}
	c := *r
	return &c, nil
}

// All returns every round in creation order.
func (s *RoundStore) All() []*domain.Round {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Round, 0, len(s.order))
	for _, id := range s.order {
		c := *s.rounds[id]
		out = append(out, &c)
	}
	return out
}

// ActiveAt returns every round that is active at the given instant.
// A correct system has at most one; callers treat more as an integrity
// violation.
func (s *RoundStore) ActiveAt(now time.Time) []*domain.Round {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Round{}
	for _, id := range s.order {
		r := s.rounds[id]
		if r.ActiveAt(now) {
			c := *r
			out = append(out, &c)
		}
	}
	return out
}

// PastDue returns rounds whose end time has passed and that have not
// been concluded yet, in creation order.
func (s *RoundStore) PastDue(now time.Time) []*domain.Round {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Round{}
	for _, id := range s.order {
		r := s.rounds[id]
		if !r.Concluded && !r.EndTime.After(now) {
			c := *r
			out = append(out, &c)
		}
	}
	return out
}

// Conclude sets the round's concluded flag. The transition is terminal:
// concluding an already-concluded round returns domain.ErrRoundConcluded.
func (s *RoundStore) Conclude(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rounds[id]
	if !ok {
		return domain.ErrRoundNotFound
	}
	if r.Concluded {
		return domain.ErrRoundConcluded
	}
	r.Concluded = true
	return nil
}
