package engine

import (
	"fmt"
	"time"

	"github.com/google/btree"

	"github.com/efreitasn/minimarket/internal/domain"
)

// Input is one round's worth of orders plus the constraints a matching
// pass must respect. The matcher never touches persistent state; it
// works entirely on this snapshot.
type Input struct {
	Buys  []*domain.Order
	Sells []*domain.Order
	// Exclusions holds the forbidden (buyer, seller) combinations.
	// nil means no exclusions.
	Exclusions *domain.ExclusionSet
	// Users is the set of known user ids, used to reject exclusion
	// pairs referencing unknown identities. nil disables the check.
	Users map[string]bool
}

// Pair links one whole buy order with one whole sell order. Quantity
// and price reconciliation beyond pairing is a settlement concern.
type Pair struct {
	BuyOrderID  string
	SellOrderID string
}

// Result is the outcome of a matching pass. Unmatched orders are
// reported, never dropped; they stay bound to their round.
type Result struct {
	Pairs          []Pair
	UnmatchedBuys  []*domain.Order
	UnmatchedSells []*domain.Order
}

// priorityEntry is one order in a price-time priority tree.
type priorityEntry struct {
	Price     int64
	CreatedAt time.Time
	OrderID   string
	Order     *domain.Order
}

// buyLess defines ordering for the buy side: price descending, then
// created_at ascending, then order_id ascending. Ascending over the
// tree visits the highest-priority buy first.
func buyLess(a, b priorityEntry) bool {
	if a.Price != b.Price {
		return a.Price > b.Price
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.OrderID < b.OrderID
}

// sellLess defines ordering for the sell side: price ascending, then
// created_at ascending, then order_id ascending.
func sellLess(a, b priorityEntry) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.OrderID < b.OrderID
}

// byPriority returns the orders sorted by the given comparator.
func byPriority(orders []*domain.Order, less btree.LessFunc[priorityEntry]) []*domain.Order {
	const degree = 32
	tree := btree.NewG(degree, less)
	for _, o := range orders {
		tree.ReplaceOrInsert(priorityEntry{
			Price:     o.Price,
			CreatedAt: o.CreatedAt,
			OrderID:   o.OrderID,
			Order:     o,
		})
	}
	out := make([]*domain.Order, 0, tree.Len())
	tree.Ascend(func(e priorityEntry) bool {
		out = append(out, e.Order)
		return true
	})
	return out
}

// Match computes the trade pairs for one round's buy and sell orders.
//
// The result is a maximum-cardinality bipartite matching over the edges
// left after removing forbidden pairs: an edge between a buy and a sell
// exists unless the two orders share an owner or the owners are banned
// from trading with each other. Augmenting paths (Kuhn's algorithm) are
// searched with buys in bid priority order (price descending, time
// ascending) and sells scanned in ask priority order (price ascending,
// time ascending); each buy prefers the highest-priority sell still
// free and earlier assignments are only displaced when that grows the
// matching. For a fixed input the output is identical across runs.
//
// Match fails closed on integrity problems: a duplicate or
// already-matched order, an order in the wrong side slice, or an
// exclusion referencing an unknown user id. An empty result is not an
// error.
func Match(in Input) (*Result, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	buys := byPriority(in.Buys, buyLess)
	sells := byPriority(in.Sells, sellLess)

	eligible := func(b, s *domain.Order) bool {
		if b.UserID == s.UserID {
			return false
		}
		if in.Exclusions != nil && in.Exclusions.Forbidden(b.UserID, s.UserID) {
			return false
		}
		return true
	}

	buyOfSell := make([]int, len(sells))
	sellOfBuy := make([]int, len(buys))
	for i := range buyOfSell {
		buyOfSell[i] = -1
	}
	for i := range sellOfBuy {
		sellOfBuy[i] = -1
	}

	// augment tries to find an augmenting path starting at buy b. A
	// buy first takes the highest-priority sell that is still free;
	// already-assigned sells are only stolen (reassigning the earlier
	// buy elsewhere) when that grows the matching.
	var augment func(b int, seen []bool) bool
	augment = func(b int, seen []bool) bool {
		for s := range sells {
			if seen[s] || buyOfSell[s] != -1 || !eligible(buys[b], sells[s]) {
				continue
			}
			seen[s] = true
			buyOfSell[s] = b
			sellOfBuy[b] = s
			return true
		}
		for s := range sells {
			if seen[s] || !eligible(buys[b], sells[s]) {
				continue
			}
			seen[s] = true
			if augment(buyOfSell[s], seen) {
				buyOfSell[s] = b
				sellOfBuy[b] = s
				return true
			}
		}
		return false
	}

	for b := range buys {
		augment(b, make([]bool, len(sells)))
	}

	res := &Result{
		Pairs:          []Pair{},
		UnmatchedBuys:  []*domain.Order{},
		UnmatchedSells: []*domain.Order{},
	}
	for b, s := range sellOfBuy {
		if s == -1 {
			res.UnmatchedBuys = append(res.UnmatchedBuys, buys[b])
			continue
		}
		res.Pairs = append(res.Pairs, Pair{
			BuyOrderID:  buys[b].OrderID,
			SellOrderID: sells[s].OrderID,
		})
	}
	for s, b := range buyOfSell {
		if b == -1 {
			res.UnmatchedSells = append(res.UnmatchedSells, sells[s])
		}
	}
	return res, nil
}

func validateInput(in Input) error {
	seen := make(map[string]bool, len(in.Buys)+len(in.Sells))

	check := func(orders []*domain.Order, side domain.OrderSide) error {
		for _, o := range orders {
			if o.Side != side {
				return fmt.Errorf("%w: order %s is %s, expected %s", domain.ErrWrongOrderSide, o.OrderID, o.Side, side)
			}
			if seen[o.OrderID] {
				return fmt.Errorf("%w: order %s", domain.ErrDuplicateOrder, o.OrderID)
			}
			if o.Matched {
				return fmt.Errorf("%w: order %s", domain.ErrOrderAlreadyMatched, o.OrderID)
			}
			seen[o.OrderID] = true
		}
		return nil
	}

	if err := check(in.Buys, domain.OrderSideBuy); err != nil {
		return err
	}
	if err := check(in.Sells, domain.OrderSideSell); err != nil {
		return err
	}

	if in.Users != nil && in.Exclusions != nil {
		for _, p := range in.Exclusions.Pairs() {
			if !in.Users[p.BuyerID] || !in.Users[p.SellerID] {
				return fmt.Errorf("%w: (%s, %s)", domain.ErrUnknownBanIdentity, p.BuyerID, p.SellerID)
			}
		}
	}
	return nil
}
