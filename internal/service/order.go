package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/engine"
	"github.com/efreitasn/minimarket/internal/store"
)

// CreateOrderRequest represents the input for order submission.
type CreateOrderRequest struct {
	UserID     string
	SecurityID string
	Shares     int64
	Price      float64 // dollars
}

// EditOrderRequest represents the input for editing an order's terms.
// nil fields are left unchanged.
type EditOrderRequest struct {
	Shares *int64
	Price  *float64 // dollars
}

// OrderService handles creation, retrieval, editing, and deletion of
// buy and sell orders. Creation runs through the RoundManager so that
// round binding and round opening stay serialized.
type OrderService struct {
	orders     *store.OrderStore
	users      *store.UserStore
	securities *store.SecurityStore
	roundStore *store.RoundStore
	rounds     *engine.RoundManager
}

// NewOrderService creates a new OrderService with the given dependencies.
func NewOrderService(
	orders *store.OrderStore,
	users *store.UserStore,
	securities *store.SecurityStore,
	roundStore *store.RoundStore,
	rounds *engine.RoundManager,
) *OrderService {
	return &OrderService{
		orders:     orders,
		users:      users,
		securities: securities,
		roundStore: roundStore,
		rounds:     rounds,
	}
}

// Create validates the request and places a new order on the given
// side. Sellers need sell privileges and buyers need buy privileges.
// The order binds to the active round if one exists; otherwise it is
// stored unassigned, and a new sell order may trigger a round opening.
func (s *OrderService) Create(side domain.OrderSide, req CreateOrderRequest) (*domain.Order, error) {
	if side != domain.OrderSideBuy && side != domain.OrderSideSell {
		return nil, &domain.ValidationError{Message: "side must be 'buy' or 'sell'"}
	}
	if req.Shares <= 0 {
		return nil, &domain.ValidationError{Message: "number_of_shares must be a positive integer"}
	}
	if req.Price <= 0 {
		return nil, &domain.ValidationError{Message: "price must be greater than 0"}
	}
	priceCents, err := domain.DollarsToCents(req.Price)
	if err != nil {
		return nil, &domain.ValidationError{Message: "price must have at most 2 decimal places"}
	}

	user, err := s.users.Get(req.UserID)
	if err != nil {
		return nil, err
	}
	if side == domain.OrderSideBuy && !user.CanBuy {
		return nil, domain.ErrNotAuthorized
	}
	if side == domain.OrderSideSell && !user.CanSell {
		return nil, domain.ErrNotAuthorized
	}

	if !s.securities.Exists(req.SecurityID) {
		return nil, domain.ErrSecurityNotFound
	}

	now := time.Now()
	order := &domain.Order{
		OrderID:    uuid.New().String(),
		Side:       side,
		UserID:     req.UserID,
		SecurityID: req.SecurityID,
		Shares:     req.Shares,
		Price:      priceCents,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.rounds.Place(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get retrieves an order. Only the owner may read it.
func (s *OrderService) Get(orderID, userID string) (*domain.Order, error) {
	o, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return o, nil
}

// ListByUser returns the user's orders on the given side.
func (s *OrderService) ListByUser(userID string, side domain.OrderSide) []*domain.Order {
	return s.orders.ListByUser(userID, side)
}

// Edit updates the shares and/or price of an order. Only the owner may
// edit, and only while the order is unmatched and its round (if bound)
// has not concluded.
func (s *OrderService) Edit(orderID, userID string, req EditOrderRequest) (*domain.Order, error) {
	if req.Shares != nil && *req.Shares <= 0 {
		return nil, &domain.ValidationError{Message: "new_number_of_shares must be a positive integer"}
	}
	var newPrice *int64
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, &domain.ValidationError{Message: "new_price must be greater than 0"}
		}
		cents, err := domain.DollarsToCents(*req.Price)
		if err != nil {
			return nil, &domain.ValidationError{Message: "new_price must have at most 2 decimal places"}
		}
		newPrice = &cents
	}

	return s.orders.Update(orderID, func(o *domain.Order) error {
		if err := s.editableBy(o, userID); err != nil {
			return err
		}
		if req.Shares != nil {
			o.Shares = *req.Shares
		}
		if newPrice != nil {
			o.Price = *newPrice
		}
		o.UpdatedAt = time.Now()
		return nil
	})
}

// Delete removes an order under the same conditions as Edit.
func (s *OrderService) Delete(orderID, userID string) error {
	o, err := s.orders.Get(orderID)
	if err != nil {
		return err
	}
	if err := s.editableBy(o, userID); err != nil {
		return err
	}
	return s.orders.Delete(orderID)
}

// editableBy checks ownership and the mutability window: unmatched,
// and round-unbound or bound to a still-open round.
func (s *OrderService) editableBy(o *domain.Order, userID string) error {
	if o.UserID != userID {
		return domain.ErrNotOwner
	}
	var boundRound *domain.Round
	if o.RoundID != nil {
		r, err := s.roundStore.Get(*o.RoundID)
		if err != nil {
			return err
		}
		boundRound = r
	}
	if !o.Editable(boundRound) {
		return domain.ErrOrderNotEditable
	}
	return nil
}
