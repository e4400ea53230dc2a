package store

import "testing"

func TestExclusionStore_BanIsSymmetric(t *testing.T) {
	s := NewExclusionStore()
	s.Ban("u1", "u2")

	if !s.Forbidden("u1", "u2") {
		t.Error("u1→u2 not forbidden")
	}
	if !s.Forbidden("u2", "u1") {
		t.Error("u2→u1 not forbidden")
	}
	if s.Forbidden("u1", "u3") {
		t.Error("unrelated pair forbidden")
	}
}

func TestExclusionStore_BanIsIdempotent(t *testing.T) {
	s := NewExclusionStore()
	s.Ban("u1", "u2")
	s.Ban("u1", "u2")
	s.Ban("u2", "u1")

	if got := s.Snapshot().Len(); got != 2 {
		t.Errorf("expected 2 directional pairs, got %d", got)
	}
}

func TestExclusionStore_SnapshotIsStable(t *testing.T) {
	s := NewExclusionStore()
	s.Ban("u1", "u2")

	snap := s.Snapshot()
	s.Ban("u3", "u4")

	if snap.Forbidden("u3", "u4") {
		t.Error("later ban visible through earlier snapshot")
	}
	if !s.Snapshot().Forbidden("u3", "u4") {
		t.Error("new snapshot missing later ban")
	}
}
