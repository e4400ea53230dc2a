package service

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/store"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CreateUserRequest represents the input for user registration.
type CreateUserRequest struct {
	Email    string
	Password string
	FullName string
}

// UserService handles registration, authentication, and privilege
// changes. New users can neither buy nor sell: selling is invite-only
// (an existing seller vouches for you) and buying mirrors that.
type UserService struct {
	users *store.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users *store.UserStore) *UserService {
	return &UserService{users: users}
}

// Create validates the request, hashes the password with argon2id, and
// stores the user with buy/sell privileges off.
func (s *UserService) Create(req CreateUserRequest) (*domain.User, error) {
	if !emailRegex.MatchString(req.Email) {
		return nil, &domain.ValidationError{Message: "email must be a valid address"}
	}
	if len(req.Password) < 8 {
		return nil, &domain.ValidationError{Message: "password must be at least 8 characters"}
	}
	if req.FullName == "" {
		return nil, &domain.ValidationError{Message: "full_name is required"}
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		UserID:         uuid.New().String(),
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: hashed,
		CanBuy:         false,
		CanSell:        false,
		CreatedAt:      time.Now(),
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies the email/password combination and returns the
// user, or domain.ErrNotAuthorized if either is wrong.
func (s *UserService) Authenticate(email, password string) (*domain.User, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, domain.ErrNotAuthorized
	}
	if !VerifyPassword(password, u.HashedPassword) {
		return nil, domain.ErrNotAuthorized
	}
	return u, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(id string) (*domain.User, error) {
	return s.users.Get(id)
}

// InviteSeller grants sell privileges to the invited user. The inviter
// must itself be a seller.
func (s *UserService) InviteSeller(inviterID, invitedID string) (*domain.User, error) {
	inviter, err := s.users.Get(inviterID)
	if err != nil {
		return nil, err
	}
	if !inviter.CanSell {
		return nil, domain.ErrNotAuthorized
	}
	if err := s.users.SetCanSell(invitedID); err != nil {
		return nil, err
	}
	return s.users.Get(invitedID)
}

// InviteBuyer grants buy privileges to the invited user. The inviter
// must itself be a buyer.
func (s *UserService) InviteBuyer(inviterID, invitedID string) (*domain.User, error) {
	inviter, err := s.users.Get(inviterID)
	if err != nil {
		return nil, err
	}
	if !inviter.CanBuy {
		return nil, domain.ErrNotAuthorized
	}
	if err := s.users.SetCanBuy(invitedID); err != nil {
		return nil, err
	}
	return s.users.Get(invitedID)
}
