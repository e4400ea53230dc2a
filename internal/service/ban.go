package service

import (
	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/store"
)

// BanService records standing trading bans between pairs of users.
// Bans are symmetric and permanent; removal would be a distinct,
// audited operation and is deliberately not offered.
type BanService struct {
	exclusions *store.ExclusionStore
	users      *store.UserStore
}

// NewBanService creates a new BanService.
func NewBanService(exclusions *store.ExclusionStore, users *store.UserStore) *BanService {
	return &BanService{exclusions: exclusions, users: users}
}

// Ban forbids the acting user and the other user from ever trading
// with each other, in either direction.
func (s *BanService) Ban(myUserID, otherUserID string) error {
	if myUserID == otherUserID {
		return &domain.ValidationError{Message: "cannot ban yourself"}
	}
	if !s.users.Exists(myUserID) || !s.users.Exists(otherUserID) {
		return domain.ErrUserNotFound
	}
	s.exclusions.Ban(myUserID, otherUserID)
	return nil
}
