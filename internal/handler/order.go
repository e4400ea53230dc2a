package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/service"
)

// OrderHandler handles HTTP requests for buy- and sell-order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// createOrderRequest is the JSON request body for order creation.
type createOrderRequest struct {
	SecurityID     string  `json:"security_id"`
	NumberOfShares int64   `json:"number_of_shares"`
	Price          float64 `json:"price"`
}

// editOrderRequest is the JSON request body for PATCH on an order.
type editOrderRequest struct {
	NewNumberOfShares *int64   `json:"new_number_of_shares"`
	NewPrice          *float64 `json:"new_price"`
}

// orderResponse is the JSON representation of an order.
type orderResponse struct {
	OrderID        string  `json:"order_id"`
	Side           string  `json:"side"`
	UserID         string  `json:"user_id"`
	SecurityID     string  `json:"security_id"`
	NumberOfShares int64   `json:"number_of_shares"`
	Price          float64 `json:"price"`
	RoundID        *string `json:"round_id"`
	Matched        bool    `json:"matched"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func buildOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		OrderID:        o.OrderID,
		Side:           string(o.Side),
		UserID:         o.UserID,
		SecurityID:     o.SecurityID,
		NumberOfShares: o.Shares,
		Price:          domain.CentsToDollars(o.Price),
		RoundID:        o.RoundID,
		Matched:        o.Matched,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      o.UpdatedAt.Format(time.RFC3339),
	}
}

func buildOrderResponses(orders []*domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, buildOrderResponse(o))
	}
	return out
}

// CreateSell handles POST /sell-orders.
func (h *OrderHandler) CreateSell(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, domain.OrderSideSell)
}

// CreateBuy handles POST /buy-orders.
func (h *OrderHandler) CreateBuy(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, domain.OrderSideBuy)
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request, side domain.OrderSide) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	order, err := h.orderSvc.Create(side, service.CreateOrderRequest{
		UserID:     userID,
		SecurityID: req.SecurityID,
		Shares:     req.NumberOfShares,
		Price:      req.Price,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildOrderResponse(order))
}

// ListSell handles GET /sell-orders.
func (h *OrderHandler) ListSell(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.OrderSideSell)
}

// ListBuy handles GET /buy-orders.
func (h *OrderHandler) ListBuy(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.OrderSideBuy)
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request, side domain.OrderSide) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, buildOrderResponses(h.orderSvc.ListByUser(userID, side)))
}

// Get handles GET /sell-orders/{order_id} and GET /buy-orders/{order_id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	order, err := h.orderSvc.Get(chi.URLParam(r, "order_id"), userID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildOrderResponse(order))
}

// Edit handles PATCH /sell-orders/{order_id} and PATCH /buy-orders/{order_id}.
func (h *OrderHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req editOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	order, err := h.orderSvc.Edit(chi.URLParam(r, "order_id"), userID, service.EditOrderRequest{
		Shares: req.NewNumberOfShares,
		Price:  req.NewPrice,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildOrderResponse(order))
}

// Delete handles DELETE /sell-orders/{order_id} and DELETE /buy-orders/{order_id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	if err := h.orderSvc.Delete(chi.URLParam(r, "order_id"), userID); err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{})
}
