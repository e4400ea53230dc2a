package store

import (
	"sync"

	"github.com/efreitasn/minimarket/internal/domain"
)

// MatchStore is a thread-safe in-memory store for matches. Matches are
// append-only and immutable.
type MatchStore struct {
	mu      sync.RWMutex
	matches map[string]*domain.Match
	order   []string            // match ids in creation order
	byOrder map[string]string   // buy/sell order_id → match_id
	byRound map[string][]string // round_id → match ids
}

// NewMatchStore creates an empty MatchStore.
func NewMatchStore() *MatchStore {
	return &MatchStore{
		matches: make(map[string]*domain.Match),
		byOrder: make(map[string]string),
		byRound: make(map[string][]string),
	}
}

// CreateAll inserts a batch of matches all-or-nothing. If any match
// references an order already consumed by an existing match, or the
// batch itself reuses an order id, nothing is inserted and
// domain.ErrOrderAlreadyMatched is returned.
func (s *MatchStore) CreateAll(ms []*domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(ms)*2)
	for _, m := range ms {
		for _, oid := range []string{m.BuyOrderID, m.SellOrderID} {
			if seen[oid] {
				return domain.ErrOrderAlreadyMatched
			}
			if _, taken := s.byOrder[oid]; taken {
				return domain.ErrOrderAlreadyMatched
			}
			seen[oid] = true
		}
	}

	for _, m := range ms {
		c := *m
		s.matches[m.MatchID] = &c
		s.order = append(s.order, m.MatchID)
		s.byOrder[m.BuyOrderID] = m.MatchID
		s.byOrder[m.SellOrderID] = m.MatchID
		s.byRound[m.RoundID] = append(s.byRound[m.RoundID], m.MatchID)
	}
	return nil
}

// ByRound returns the matches created for a round in creation order.
func (s *MatchStore) ByRound(roundID string) []*domain.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Match{}
	for _, id := range s.byRound[roundID] {
		c := *s.matches[id]
		out = append(out, &c)
	}
	return out
}

// All returns every match in creation order.
func (s *MatchStore) All() []*domain.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Match, 0, len(s.order))
	for _, id := range s.order {
		c := *s.matches[id]
		out = append(out, &c)
	}
	return out
}

// HasOrder reports whether the given order has been consumed by a match.
func (s *MatchStore) HasOrder(orderID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byOrder[orderID]
	return ok
}
