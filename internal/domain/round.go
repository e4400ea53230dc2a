package domain

import "time"

// Round is a bounded batch window during which orders accumulate
// before one matching pass clears them.
//
// At most one round may be active (not concluded, end time in the
// future) at any instant.
type Round struct {
	RoundID   string
	EndTime   time.Time
	Concluded bool
	CreatedAt time.Time
}

// ActiveAt reports whether the round is the active round at the given
// instant.
func (r *Round) ActiveAt(now time.Time) bool {
	return !r.Concluded && r.EndTime.After(now)
}
