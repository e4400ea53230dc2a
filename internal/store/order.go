package store

import (
	"sync"

	"github.com/efreitasn/minimarket/internal/domain"
)

// OrderStore is a thread-safe in-memory store for orders, with a
// primary index by order_id and a secondary index by user_id.
//
// All read methods return copies so that callers (in particular the
// matching engine) operate on stable snapshots.
type OrderStore struct {
	mu         sync.RWMutex
	orders     map[string]*domain.Order
	userOrders map[string][]string // user_id → order ids (append-only)
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:     make(map[string]*domain.Order),
		userOrders: make(map[string][]string),
	}
}

// Create adds an order to the store and appends it to the owner's
// secondary index.
func (s *OrderStore) Create(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *o
	s.orders[o.OrderID] = &c
	s.userOrders[o.UserID] = append(s.userOrders[o.UserID], o.OrderID)
}

// Get retrieves a copy of an order by ID. It returns
// domain.ErrOrderNotFound if the order does not exist.
func (s *OrderStore) Get(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	c := *o
	return &c, nil
}

// ListByUser returns the user's orders on the given side in creation
// order.
func (s *OrderStore) ListByUser(userID string, side domain.OrderSide) []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Order{}
	for _, id := range s.userOrders[userID] {
		o, ok := s.orders[id]
		if !ok || o.Side != side {
			continue
		}
		c := *o
		out = append(out, &c)
	}
	return out
}

// Unassigned returns all orders on the given side that are not yet
// bound to a round.
func (s *OrderStore) Unassigned(side domain.OrderSide) []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Order{}
	for _, o := range s.orders {
		if o.Side != side || o.RoundID != nil {
			continue
		}
		c := *o
		out = append(out, &c)
	}
	return out
}

// BindUnassigned binds every currently-unassigned order of both sides
// to the given round and returns how many were bound.
func (s *OrderStore) BindUnassigned(roundID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, o := range s.orders {
		if o.RoundID != nil {
			continue
		}
		id := roundID
		o.RoundID = &id
		n++
	}
	return n
}

// ByRound returns all orders bound to the round, split by side.
func (s *OrderStore) ByRound(roundID string) (buys, sells []*domain.Order) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buys, sells = []*domain.Order{}, []*domain.Order{}
	for _, o := range s.orders {
		if o.RoundID == nil || *o.RoundID != roundID {
			continue
		}
		c := *o
		if o.Side == domain.OrderSideBuy {
			buys = append(buys, &c)
		} else {
			sells = append(sells, &c)
		}
	}
	return buys, sells
}

// Update applies mutate to the stored order under the write lock.
// It returns domain.ErrOrderNotFound if the order does not exist, and
// any error returned by mutate (in which case no change is kept).
func (s *OrderStore) Update(id string, mutate func(*domain.Order) error) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	c := *o
	if err := mutate(&c); err != nil {
		return nil, err
	}
	*o = c
	out := c
	return &out, nil
}

// Delete removes an order from the store. It returns
// domain.ErrOrderNotFound if the order does not exist.
func (s *OrderStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	delete(s.orders, id)
	ids := s.userOrders[o.UserID]
	for i, oid := range ids {
		if oid == id {
			s.userOrders[o.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// MarkMatched flags the given orders as consumed by a match. Matched
// orders are immutable from then on.
func (s *OrderStore) MarkMatched(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if o, ok := s.orders[id]; ok {
			o.Matched = true
		}
	}
}
