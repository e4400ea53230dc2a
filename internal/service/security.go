package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/store"
)

// SecurityService handles listing and creation of tradeable securities.
type SecurityService struct {
	securities *store.SecurityStore
}

// NewSecurityService creates a new SecurityService.
func NewSecurityService(securities *store.SecurityStore) *SecurityService {
	return &SecurityService{securities: securities}
}

// Create registers a new security.
func (s *SecurityService) Create(name string) (*domain.Security, error) {
	if name == "" {
		return nil, &domain.ValidationError{Message: "name is required"}
	}
	sec := &domain.Security{
		SecurityID: uuid.New().String(),
		Name:       name,
		CreatedAt:  time.Now(),
	}
	s.securities.Create(sec)
	return sec, nil
}

// All returns every security in creation order.
func (s *SecurityService) All() []*domain.Security {
	return s.securities.All()
}
