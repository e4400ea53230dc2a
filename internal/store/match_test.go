package store

import (
	"errors"
	"testing"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
)

func testMatch(id, buyID, sellID string) *domain.Match {
	return &domain.Match{
		MatchID:     id,
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		RoundID:     "r1",
		CreatedAt:   time.Now(),
	}
}

func TestMatchStore_CreateAll(t *testing.T) {
	s := NewMatchStore()

	err := s.CreateAll([]*domain.Match{
		testMatch("m1", "b1", "s1"),
		testMatch("m2", "b2", "s2"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.ByRound("r1"); len(got) != 2 {
		t.Errorf("expected 2 matches, got %d", len(got))
	}
	if !s.HasOrder("b1") || !s.HasOrder("s2") {
		t.Error("order index missing entries")
	}
	if s.HasOrder("b3") {
		t.Error("order index has phantom entry")
	}
}

func TestMatchStore_CreateAllRejectsConsumedOrder(t *testing.T) {
	s := NewMatchStore()
	if err := s.CreateAll([]*domain.Match{testMatch("m1", "b1", "s1")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The second batch reuses s1; nothing from it may land.
	err := s.CreateAll([]*domain.Match{
		testMatch("m2", "b2", "s2"),
		testMatch("m3", "b3", "s1"),
	})
	if !errors.Is(err, domain.ErrOrderAlreadyMatched) {
		t.Fatalf("expected ErrOrderAlreadyMatched, got %v", err)
	}
	if len(s.All()) != 1 {
		t.Errorf("partial batch persisted: %+v", s.All())
	}
	if s.HasOrder("b2") {
		t.Error("rejected batch left an order index entry")
	}
}

func TestMatchStore_CreateAllRejectsInBatchReuse(t *testing.T) {
	s := NewMatchStore()

	err := s.CreateAll([]*domain.Match{
		testMatch("m1", "b1", "s1"),
		testMatch("m2", "b1", "s2"),
	})
	if !errors.Is(err, domain.ErrOrderAlreadyMatched) {
		t.Fatalf("expected ErrOrderAlreadyMatched, got %v", err)
	}
	if len(s.All()) != 0 {
		t.Errorf("partial batch persisted: %+v", s.All())
	}
}

func TestMatchStore_CreateAllEmptyBatch(t *testing.T) {
	s := NewMatchStore()
	if err := s.CreateAll(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.All()) != 0 {
		t.Errorf("got %+v", s.All())
	}
}
