package service

import (
	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/engine"
	"github.com/efreitasn/minimarket/internal/store"
)

// RoundService exposes read access to rounds.
type RoundService struct {
	rounds  *store.RoundStore
	manager *engine.RoundManager
}

// NewRoundService creates a new RoundService.
func NewRoundService(rounds *store.RoundStore, manager *engine.RoundManager) *RoundService {
	return &RoundService{rounds: rounds, manager: manager}
}

// All returns every round in creation order.
func (s *RoundService) All() []*domain.Round {
	return s.rounds.All()
}

// Active returns the currently active round, or nil if none.
func (s *RoundService) Active() (*domain.Round, error) {
	return s.manager.Active()
}
