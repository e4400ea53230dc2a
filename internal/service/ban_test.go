package service

import (
	"errors"
	"testing"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/store"
)

func newBanFixture(t *testing.T, userIDs ...string) (*BanService, *store.ExclusionStore) {
	t.Helper()
	users := store.NewUserStore()
	for _, id := range userIDs {
		err := users.Create(&domain.User{
			UserID:    id,
			Email:     id + "@example.com",
			FullName:  id,
			CreatedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	exclusions := store.NewExclusionStore()
	return NewBanService(exclusions, users), exclusions
}

func TestBanService_Ban(t *testing.T) {
	svc, exclusions := newBanFixture(t, "u1", "u2")

	if err := svc.Ban("u1", "u2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exclusions.Forbidden("u1", "u2") || !exclusions.Forbidden("u2", "u1") {
		t.Error("ban must forbid both directions")
	}
}

func TestBanService_SelfBanRejected(t *testing.T) {
	svc, _ := newBanFixture(t, "u1")

	err := svc.Ban("u1", "u1")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBanService_UnknownUserRejected(t *testing.T) {
	svc, exclusions := newBanFixture(t, "u1")

	if err := svc.Ban("u1", "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.Ban("ghost", "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if exclusions.Snapshot().Len() != 0 {
		t.Error("rejected ban left pairs in the registry")
	}
}
