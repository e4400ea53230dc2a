package domain

import "time"

// Match pairs one buy order with one sell order. Matches are created
// only by settlement and are immutable once created.
type Match struct {
	MatchID     string
	BuyOrderID  string
	SellOrderID string
	RoundID     string
	CreatedAt   time.Time
}
