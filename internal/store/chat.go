package store

import (
	"sync"

	"github.com/efreitasn/minimarket/internal/domain"
)

// ChatStore is a thread-safe in-memory store for chat rooms and their
// messages. Messages are append-only and chronological per room.
type ChatStore struct {
	mu       sync.RWMutex
	rooms    map[string]*domain.ChatRoom
	byUser   map[string][]string // user_id → room ids
	messages map[string][]*domain.Chat
}

// NewChatStore creates an empty ChatStore.
func NewChatStore() *ChatStore {
	return &ChatStore{
		rooms:    make(map[string]*domain.ChatRoom),
		byUser:   make(map[string][]string),
		messages: make(map[string][]*domain.Chat),
	}
}

// CreateRoom adds a chat room and indexes it for both counterparties.
func (s *ChatStore) CreateRoom(r *domain.ChatRoom) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *r
	s.rooms[r.ChatRoomID] = &c
	s.byUser[r.BuyerID] = append(s.byUser[r.BuyerID], r.ChatRoomID)
	s.byUser[r.SellerID] = append(s.byUser[r.SellerID], r.ChatRoomID)
}

// GetRoom retrieves a copy of a chat room by ID. It returns
// domain.ErrChatRoomNotFound if the room does not exist.
func (s *ChatStore) GetRoom(id string) (*domain.ChatRoom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, domain.ErrChatRoomNotFound
	}
	c := *r
	return &c, nil
}

// RoomsByUser returns the rooms the user participates in, in creation
// order.
func (s *ChatStore) RoomsByUser(userID string) []*domain.ChatRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.ChatRoom{}
	for _, id := range s.byUser[userID] {
		c := *s.rooms[id]
		out = append(out, &c)
	}
	return out
}

// AppendMessage adds a message to the room's chronological list.
func (s *ChatStore) AppendMessage(m *domain.Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *m
	s.messages[m.ChatRoomID] = append(s.messages[m.ChatRoomID], &c)
}

// MessagesByRoom returns all messages of a room in chronological order.
func (s *ChatStore) MessagesByRoom(roomID string) []*domain.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[roomID]
	out := make([]*domain.Chat, 0, len(msgs))
	for _, m := range msgs {
		c := *m
		out = append(out, &c)
	}
	return out
}
