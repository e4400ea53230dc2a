package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/store"
)

func newManager(sellerCutoff int, sharesCutoff int64) (*RoundManager, *store.RoundStore, *store.OrderStore) {
	rounds := store.NewRoundStore()
	orders := store.NewOrderStore()
	mgr := NewRoundManager(rounds, orders, time.Hour, sellerCutoff, sharesCutoff)
	return mgr, rounds, orders
}

func TestRoundManager_NoActiveRoundInitially(t *testing.T) {
	mgr, _, _ := newManager(3, 1000)

	active, err := mgr.Active()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != nil {
		t.Errorf("expected no active round, got %+v", active)
	}
}

func TestRoundManager_SellerCountTriggersOpen(t *testing.T) {
	// Three distinct sellers with tiny quantities: the seller-count
	// threshold alone opens the round.
	mgr, _, _ := newManager(3, 1000)

	for i := 0; i < 2; i++ {
		r, err := mgr.Place(newOrder(fmt.Sprintf("S%d", i), domain.OrderSideSell, fmt.Sprintf("U%d", i), 500, 10, i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r != nil {
			t.Fatalf("round opened after %d sellers, cutoff is 3", i+1)
		}
	}

	r, err := mgr.Place(newOrder("S2", domain.OrderSideSell, "U2", 500, 10, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil {
		t.Fatal("expected round to open at 3 distinct sellers")
	}

	active, err := mgr.Active()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active == nil || active.RoundID != r.RoundID {
		t.Errorf("expected round %s active, got %+v", r.RoundID, active)
	}
}

func TestRoundManager_RepeatSellerCountsOnce(t *testing.T) {
	// The same seller posting three lots is still one distinct seller.
	mgr, _, _ := newManager(3, 1000)

	for i := 0; i < 3; i++ {
		r, err := mgr.Place(newOrder(fmt.Sprintf("S%d", i), domain.OrderSideSell, "U1", 500, 10, i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r != nil {
			t.Fatal("round opened on one distinct seller, cutoff is 3")
		}
	}
}

func TestRoundManager_TotalSharesTriggersOpen(t *testing.T) {
	// One seller, but enough aggregate shares: the shares threshold
	// alone is sufficient.
	mgr, _, _ := newManager(10, 1000)

	r, err := mgr.Place(newOrder("S0", domain.OrderSideSell, "U1", 500, 1000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil {
		t.Fatal("expected round to open at the shares cutoff")
	}
}

func TestRoundManager_BuyNeverTriggersOpen(t *testing.T) {
	mgr, _, _ := newManager(1, 1)

	r, err := mgr.Place(newOrder("B0", domain.OrderSideBuy, "U1", 500, 100000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Errorf("buy order opened a round: %+v", r)
	}

	active, err := mgr.Active()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != nil {
		t.Errorf("expected no active round, got %+v", active)
	}
}

func TestRoundManager_OpenBindsAllUnassigned(t *testing.T) {
	// Buys placed before the trigger wait unassigned; opening the round
	// sweeps them in along with every pending sell.
	mgr, _, orders := newManager(2, 1000)

	if _, err := mgr.Place(newOrder("B0", domain.OrderSideBuy, "U5", 900, 50, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mgr.Place(newOrder("S0", domain.OrderSideSell, "U1", 500, 10, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := mgr.Place(newOrder("S1", domain.OrderSideSell, "U2", 500, 10, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil {
		t.Fatal("expected round to open")
	}

	buys, sells := orders.ByRound(r.RoundID)
	if len(buys) != 1 || len(sells) != 2 {
		t.Fatalf("expected 1 buy and 2 sells bound, got %d/%d", len(buys), len(sells))
	}
	if len(orders.Unassigned(domain.OrderSideBuy)) != 0 || len(orders.Unassigned(domain.OrderSideSell)) != 0 {
		t.Error("expected no unassigned orders after open")
	}
}

func TestRoundManager_PlaceBindsToActiveRound(t *testing.T) {
	mgr, _, orders := newManager(1, 1000)

	opened, err := mgr.Place(newOrder("S0", domain.OrderSideSell, "U1", 500, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opened == nil {
		t.Fatal("expected round to open")
	}

	r, err := mgr.Place(newOrder("B0", domain.OrderSideBuy, "U2", 900, 10, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil || r.RoundID != opened.RoundID {
		t.Fatalf("expected buy to bind to round %s, got %+v", opened.RoundID, r)
	}

	stored, err := orders.Get("B0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.RoundID == nil || *stored.RoundID != opened.RoundID {
		t.Errorf("expected stored order bound to %s, got %v", opened.RoundID, stored.RoundID)
	}
}

func TestRoundManager_OpenRefusesWhileActive(t *testing.T) {
	mgr, _, _ := newManager(1, 1000)

	if _, err := mgr.Place(newOrder("S0", domain.OrderSideSell, "U1", 500, 10, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mgr.Open(); !errors.Is(err, domain.ErrMultipleActiveRounds) {
		t.Fatalf("expected ErrMultipleActiveRounds, got %v", err)
	}
}

func TestRoundManager_MultipleActiveRoundsFailsClosed(t *testing.T) {
	// Two overlapping active rounds injected directly into the store is
	// an integrity violation; the manager must refuse to proceed rather
	// than pick one.
	mgr, rounds, _ := newManager(1, 1000)

	now := time.Now()
	rounds.Create(&domain.Round{RoundID: "r1", EndTime: now.Add(time.Hour), CreatedAt: now})
	rounds.Create(&domain.Round{RoundID: "r2", EndTime: now.Add(time.Hour), CreatedAt: now})

	if _, err := mgr.Active(); !errors.Is(err, domain.ErrMultipleActiveRounds) {
		t.Fatalf("expected ErrMultipleActiveRounds, got %v", err)
	}
	if _, err := mgr.Place(newOrder("S0", domain.OrderSideSell, "U1", 500, 10, 0)); !errors.Is(err, domain.ErrMultipleActiveRounds) {
		t.Fatalf("expected Place to fail closed, got %v", err)
	}
}

func TestRoundManager_ConcludeIsTerminal(t *testing.T) {
	mgr, _, _ := newManager(1, 1000)

	r, err := mgr.Place(newOrder("S0", domain.OrderSideSell, "U1", 500, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Conclude(r.RoundID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Conclude(r.RoundID); !errors.Is(err, domain.ErrRoundConcluded) {
		t.Fatalf("expected ErrRoundConcluded, got %v", err)
	}

	active, err := mgr.Active()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != nil {
		t.Errorf("expected no active round after conclusion, got %+v", active)
	}
}

func TestRoundManager_NewRoundAfterConclusion(t *testing.T) {
	// Pressure that accumulates after a conclusion opens a fresh round.
	mgr, _, _ := newManager(1, 1000)

	first, err := mgr.Place(newOrder("S0", domain.OrderSideSell, "U1", 500, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Conclude(first.RoundID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := mgr.Place(newOrder("S1", domain.OrderSideSell, "U2", 500, 10, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == nil {
		t.Fatal("expected a new round to open")
	}
	if second.RoundID == first.RoundID {
		t.Error("expected a fresh round id")
	}
}
