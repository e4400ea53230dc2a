package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/minimarket/internal/domain"
)

// SettlementOrders is the order persistence settlement needs.
type SettlementOrders interface {
	ByRound(roundID string) (buys, sells []*domain.Order)
	MarkMatched(ids []string)
}

// MatchSink persists a batch of matches all-or-nothing.
type MatchSink interface {
	CreateAll(ms []*domain.Match) error
}

// RoundConcluder marks a round concluded. The RoundManager satisfies
// it, so conclusion serializes with round opening and order binding.
type RoundConcluder interface {
	Conclude(roundID string) error
}

// ExclusionSource provides a snapshot of the exclusion registry.
type ExclusionSource interface {
	Snapshot() *domain.ExclusionSet
}

// UserSource provides the set of known user ids.
type UserSource interface {
	IDs() map[string]bool
}

// MatchListener is notified once a settlement has fully committed.
// Used to open chat rooms between matched counterparties.
type MatchListener interface {
	MatchesCreated(ms []*domain.Match)
}

// Settler turns engine output into persistent state: it runs one
// matching pass over a round's orders, records the resulting matches,
// and concludes the round.
type Settler struct {
	orders     SettlementOrders
	matches    MatchSink
	rounds     RoundConcluder
	exclusions ExclusionSource
	users      UserSource
	listener   MatchListener // may be nil
}

// NewSettler creates a Settler with the given dependencies.
func NewSettler(
	orders SettlementOrders,
	matches MatchSink,
	rounds RoundConcluder,
	exclusions ExclusionSource,
	users UserSource,
	listener MatchListener,
) *Settler {
	return &Settler{
		orders:     orders,
		matches:    matches,
		rounds:     rounds,
		exclusions: exclusions,
		users:      users,
		listener:   listener,
	}
}

// SettleRound runs the matching engine over the round's orders and
// commits the result: all match records are persisted together, the
// paired orders are marked consumed, and the round is concluded. If
// anything fails before conclusion, no matches are kept and the round
// stays un-concluded, so the whole settlement can be retried from the
// same input. Unmatched orders remain bound to the round.
//
// Orders are grouped by security and the engine runs once per group;
// a buy is never paired with a sell of a different instrument.
func (s *Settler) SettleRound(roundID string) ([]*domain.Match, error) {
	buys, sells := s.orders.ByRound(roundID)
	exclusions := s.exclusions.Snapshot()
	users := s.users.IDs()

	groups := map[string]bool{}
	for _, o := range buys {
		groups[o.SecurityID] = true
	}
	for _, o := range sells {
		groups[o.SecurityID] = true
	}
	securityIDs := make([]string, 0, len(groups))
	for id := range groups {
		securityIDs = append(securityIDs, id)
	}
	sort.Strings(securityIDs)

	var pairs []Pair
	for _, secID := range securityIDs {
		res, err := Match(Input{
			Buys:       filterSecurity(buys, secID),
			Sells:      filterSecurity(sells, secID),
			Exclusions: exclusions,
			Users:      users,
		})
		if err != nil {
			return nil, fmt.Errorf("settle round %s: %w", roundID, err)
		}
		pairs = append(pairs, res.Pairs...)
	}

	now := time.Now()
	ms := make([]*domain.Match, 0, len(pairs))
	orderIDs := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		ms = append(ms, &domain.Match{
			MatchID:     uuid.New().String(),
			BuyOrderID:  p.BuyOrderID,
			SellOrderID: p.SellOrderID,
			RoundID:     roundID,
			CreatedAt:   now,
		})
		orderIDs = append(orderIDs, p.BuyOrderID, p.SellOrderID)
	}

	if err := s.matches.CreateAll(ms); err != nil {
		return nil, fmt.Errorf("settle round %s: %w", roundID, err)
	}
	s.orders.MarkMatched(orderIDs)

	if err := s.rounds.Conclude(roundID); err != nil {
		return nil, fmt.Errorf("settle round %s: %w", roundID, err)
	}

	if s.listener != nil {
		s.listener.MatchesCreated(ms)
	}
	return ms, nil
}

func filterSecurity(orders []*domain.Order, securityID string) []*domain.Order {
	out := []*domain.Order{}
	for _, o := range orders {
		if o.SecurityID == securityID {
			out = append(out, o)
		}
	}
	return out
}
