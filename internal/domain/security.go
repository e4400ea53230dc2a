package domain

import "time"

// Security is a traded instrument (one company's shares).
type Security struct {
	SecurityID string
	Name       string
	CreatedAt  time.Time
}
