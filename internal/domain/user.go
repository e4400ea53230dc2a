package domain

import "time"

// User represents a registered marketplace participant. Buy and sell
// privileges are off by default: selling is invite-only and buying
// requires explicit activation.
type User struct {
	UserID         string
	Email          string
	FullName       string
	HashedPassword string
	CanBuy         bool
	CanSell        bool
	CreatedAt      time.Time
}
