package domain

// ExclusionPair is one stored direction of a ban. A logical ban between
// two users is always persisted as both directions so that lookup is
// O(1) regardless of who ends up on which side of a future order.
type ExclusionPair struct {
	BuyerID  string
	SellerID string
}

// ExclusionSet is an immutable snapshot of all forbidden
// (buyer, seller) combinations, indexed for O(1) lookup.
type ExclusionSet struct {
	pairs map[string]map[string]bool // buyer_id → seller_id → true
}

// NewExclusionSet builds a set from stored directional pairs.
func NewExclusionSet(pairs []ExclusionPair) *ExclusionSet {
	s := &ExclusionSet{pairs: make(map[string]map[string]bool, len(pairs))}
	for _, p := range pairs {
		sellers := s.pairs[p.BuyerID]
		if sellers == nil {
			sellers = make(map[string]bool)
			s.pairs[p.BuyerID] = sellers
		}
		sellers[p.SellerID] = true
	}
	return s
}

// Forbidden reports whether the given buyer/seller combination is
// banned from trading.
func (s *ExclusionSet) Forbidden(buyerID, sellerID string) bool {
	return s.pairs[buyerID][sellerID]
}

// Pairs returns the stored directional pairs. Order is unspecified.
func (s *ExclusionSet) Pairs() []ExclusionPair {
	out := make([]ExclusionPair, 0, len(s.pairs))
	for buyer, sellers := range s.pairs {
		for seller := range sellers {
			out = append(out, ExclusionPair{BuyerID: buyer, SellerID: seller})
		}
	}
	return out
}

// Len returns the number of stored directional pairs.
func (s *ExclusionSet) Len() int {
	n := 0
	for _, sellers := range s.pairs {
		n += len(sellers)
	}
	return n
}
