package domain

import "time"

// OrderSide indicates whether an order buys or sells shares.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// Order represents a whole-lot buy or sell instruction submitted by a
// user for one security. Orders are matched whole against whole; there
// is no partial filling.
type Order struct {
	OrderID    string
	Side       OrderSide
	UserID     string
	SecurityID string
	Shares     int64
	Price      int64 // cents per share
	RoundID    *string
	Matched    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Editable reports whether the owner may still change or delete the
// order: it must not have been consumed by a match, and it must be
// either unassigned or bound to a round that is still open.
func (o *Order) Editable(boundRound *Round) bool {
	if o.Matched {
		return false
	}
	if o.RoundID == nil {
		return true
	}
	return boundRound != nil && !boundRound.Concluded
}
