package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/minimarket/internal/domain"
)

// RoundStore is the round persistence the lifecycle manager needs.
// *store.RoundStore satisfies it; tests may inject fakes.
type RoundStore interface {
	Create(r *domain.Round)
	Get(id string) (*domain.Round, error)
	ActiveAt(now time.Time) []*domain.Round
	Conclude(id string) error
}

// OrderPlacer is the order persistence the lifecycle manager needs.
type OrderPlacer interface {
	Create(o *domain.Order)
	Unassigned(side domain.OrderSide) []*domain.Order
	BindUnassigned(roundID string) int
}

// RoundManager owns the active-round singleton. Every decision that
// reads "is there an active round" and then writes (order binding,
// round opening) runs under its mutex; this is the system's one
// critical section.
type RoundManager struct {
	mu     sync.Mutex
	rounds RoundStore
	orders OrderPlacer

	roundLength  time.Duration
	sellerCutoff int
	sharesCutoff int64
}

// NewRoundManager creates a RoundManager with the given stores and
// admission configuration.
func NewRoundManager(
	rounds RoundStore,
	orders OrderPlacer,
	roundLength time.Duration,
	sellerCutoff int,
	sharesCutoff int64,
) *RoundManager {
	return &RoundManager{
		rounds:       rounds,
		orders:       orders,
		roundLength:  roundLength,
		sellerCutoff: sellerCutoff,
		sharesCutoff: sharesCutoff,
	}
}

// Active returns the round that is not concluded and whose end time is
// in the future, or nil if there is none. Finding more than one is a
// data-integrity violation and returns domain.ErrMultipleActiveRounds;
// the manager does not attempt repair.
func (m *RoundManager) Active() (*domain.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeLocked()
}

func (m *RoundManager) activeLocked() (*domain.Round, error) {
	active := m.rounds.ActiveAt(time.Now())
	switch len(active) {
	case 0:
		return nil, nil
	case 1:
		return active[0], nil
	default:
		return nil, domain.ErrMultipleActiveRounds
	}
}

// ShouldOpen reports whether the unassigned sell-side pressure meets
// either admission threshold: distinct sellers >= the seller cutoff,
// or total shares >= the shares cutoff. Either alone is sufficient.
// Admission looks at the sell side only; buy orders never trigger a
// round.
func (m *RoundManager) ShouldOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shouldOpenLocked()
}

func (m *RoundManager) shouldOpenLocked() bool {
	sells := m.orders.Unassigned(domain.OrderSideSell)

	sellers := make(map[string]bool)
	var totalShares int64
	for _, o := range sells {
		sellers[o.UserID] = true
		totalShares += o.Shares
	}

	if len(sellers) >= m.sellerCutoff {
		return true
	}
	return totalShares >= m.sharesCutoff
}

// Open creates a new round ending roundLength from now and binds every
// currently-unassigned order of both sides to it. It refuses to open
// while a round is already active.
func (m *RoundManager) Open() (*domain.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openLocked()
}

func (m *RoundManager) openLocked() (*domain.Round, error) {
	active, err := m.activeLocked()
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrMultipleActiveRounds
	}

	now := time.Now()
	r := &domain.Round{
		RoundID:   uuid.New().String(),
		EndTime:   now.Add(m.roundLength),
		Concluded: false,
		CreatedAt: now,
	}
	m.rounds.Create(r)
	m.orders.BindUnassigned(r.RoundID)
	return r, nil
}

// Place persists a new order under the round-open critical section.
// If a round is active the order binds to it immediately; otherwise it
// is stored unassigned and, for sell orders, the admission thresholds
// are evaluated and a round is opened when they are met (absorbing the
// order just stored along with every other unassigned order).
func (m *RoundManager) Place(o *domain.Order) (*domain.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active, err := m.activeLocked()
	if err != nil {
		return nil, err
	}

	if active != nil {
		id := active.RoundID
		o.RoundID = &id
		m.orders.Create(o)
		return active, nil
	}

	m.orders.Create(o)
	if o.Side == domain.OrderSideSell && m.shouldOpenLocked() {
		return m.openLocked()
	}
	return nil, nil
}

// Conclude marks the round concluded. Terminal: a concluded round
// never reopens or accepts further order bindings.
func (m *RoundManager) Conclude(roundID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rounds.Conclude(roundID)
}
