package store

import (
	"sync"

	"github.com/efreitasn/minimarket/internal/domain"
)

// UserStore is a thread-safe in-memory store for users, keyed by
// user_id with a secondary index by email.
type UserStore struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string // email → user_id
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

// Create adds a user to the store. It returns
// domain.ErrUserAlreadyExists if the email is already registered.
func (s *UserStore) Create(u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return domain.ErrUserAlreadyExists
	}
	c := *u
	s.users[u.UserID] = &c
	s.byEmail[u.Email] = u.UserID
	return nil
}

// Get retrieves a copy of a user by ID. It returns
// domain.ErrUserNotFound if the user does not exist.
func (s *UserStore) Get(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

// GetByEmail retrieves a copy of a user by email. It returns
// domain.ErrUserNotFound if no user has that email.
func (s *UserStore) GetByEmail(email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *s.users[id]
	return &c, nil
}

// SetCanSell grants sell privileges to the user.
func (s *UserStore) SetCanSell(id string) error {
	return s.setPrivilege(id, func(u *domain.User) { u.CanSell = true })
}

// SetCanBuy grants buy privileges to the user.
func (s *UserStore) SetCanBuy(id string) error {
	return s.setPrivilege(id, func(u *domain.User) { u.CanBuy = true })
}

func (s *UserStore) setPrivilege(id string, set func(*domain.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	set(u)
	return nil
}

// IDs returns the set of all known user ids.
func (s *UserStore) IDs() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.users))
	for id := range s.users {
		out[id] = true
	}
	return out
}

// Exists reports whether a user with the given ID exists.
func (s *UserStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok
}
