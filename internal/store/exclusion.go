package store

import (
	"sync"

	"github.com/efreitasn/minimarket/internal/domain"
)

// ExclusionStore is a thread-safe registry of forbidden (buyer, seller)
// pairs. A ban always inserts both directions under one lock
// acquisition, so a half-written ban is never observable.
type ExclusionStore struct {
	mu    sync.RWMutex
	pairs map[string]map[string]bool // buyer_id → seller_id → true
}

// NewExclusionStore creates an empty ExclusionStore.
func NewExclusionStore() *ExclusionStore {
	return &ExclusionStore{
		pairs: make(map[string]map[string]bool),
	}
}

// Ban forbids the two users from trading with each other, regardless of
// who ends up on which side of a future order. There is no unban.
func (s *ExclusionStore) Ban(userA, userB string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insert(userA, userB)
	s.insert(userB, userA)
}

func (s *ExclusionStore) insert(buyerID, sellerID string) {
	sellers := s.pairs[buyerID]
	if sellers == nil {
		sellers = make(map[string]bool)
		s.pairs[buyerID] = sellers
	}
	sellers[sellerID] = true
}

// Forbidden reports whether the buyer/seller combination is banned.
func (s *ExclusionStore) Forbidden(buyerID, sellerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pairs[buyerID][sellerID]
}

// Snapshot returns an immutable view of the registry for a matching
// pass.
func (s *ExclusionStore) Snapshot() *domain.ExclusionSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pairs := []domain.ExclusionPair{}
	for buyer, sellers := range s.pairs {
		for seller := range sellers {
			pairs = append(pairs, domain.ExclusionPair{BuyerID: buyer, SellerID: seller})
		}
	}
	return domain.NewExclusionSet(pairs)
}
