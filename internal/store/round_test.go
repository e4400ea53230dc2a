package store

import (
	"errors"
	"testing"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
)

func TestRoundStore_ActiveAt(t *testing.T) {
	s := NewRoundStore()
	now := time.Now()

	s.Create(&domain.Round{RoundID: "past", EndTime: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour)})
	s.Create(&domain.Round{RoundID: "live", EndTime: now.Add(time.Hour), CreatedAt: now})
	s.Create(&domain.Round{RoundID: "done", EndTime: now.Add(time.Hour), Concluded: true, CreatedAt: now})

	active := s.ActiveAt(now)
	if len(active) != 1 || active[0].RoundID != "live" {
		t.Errorf("got %+v", active)
	}
}

func TestRoundStore_PastDue(t *testing.T) {
	s := NewRoundStore()
	now := time.Now()

	s.Create(&domain.Round{RoundID: "due1", EndTime: now.Add(-2 * time.Hour), CreatedAt: now.Add(-3 * time.Hour)})
	s.Create(&domain.Round{RoundID: "settled", EndTime: now.Add(-time.Hour), Concluded: true, CreatedAt: now.Add(-2 * time.Hour)})
	s.Create(&domain.Round{RoundID: "due2", EndTime: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)})
	s.Create(&domain.Round{RoundID: "live", EndTime: now.Add(time.Hour), CreatedAt: now})

	due := s.PastDue(now)
	if len(due) != 2 || due[0].RoundID != "due1" || due[1].RoundID != "due2" {
		t.Errorf("got %+v", due)
	}
}

func TestRoundStore_ConcludeIsTerminal(t *testing.T) {
	s := NewRoundStore()
	now := time.Now()
	s.Create(&domain.Round{RoundID: "r1", EndTime: now.Add(time.Hour), CreatedAt: now})

	if err := s.Conclude("r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := s.Get("r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Concluded {
		t.Error("round not concluded")
	}

	if err := s.Conclude("r1"); !errors.Is(err, domain.ErrRoundConcluded) {
		t.Fatalf("expected ErrRoundConcluded, got %v", err)
	}
	if err := s.Conclude("missing"); !errors.Is(err, domain.ErrRoundNotFound) {
		t.Fatalf("expected ErrRoundNotFound, got %v", err)
	}
}

func TestRoundStore_AllInCreationOrder(t *testing.T) {
	s := NewRoundStore()
	now := time.Now()
	for _, id := range []string{"r1", "r2", "r3"} {
		s.Create(&domain.Round{RoundID: id, EndTime: now.Add(time.Hour), CreatedAt: now})
	}

	all := s.All()
	if len(all) != 3 || all[0].RoundID != "r1" || all[2].RoundID != "r3" {
		t.Errorf("got %+v", all)
	}
}
