package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/store"
)

// RoomSummary is a chat room plus its most recent message (nil when
// the room is still silent).
type RoomSummary struct {
	Room        *domain.ChatRoom
	LastMessage *domain.Chat
}

// ChatService manages per-match chat rooms. It implements
// engine.MatchListener: settlement opens one room per committed match
// so the counterparties can negotiate the transfer.
type ChatService struct {
	chats  *store.ChatStore
	orders *store.OrderStore
	users  *store.UserStore
}

// NewChatService creates a new ChatService.
func NewChatService(chats *store.ChatStore, orders *store.OrderStore, users *store.UserStore) *ChatService {
	return &ChatService{
		chats:  chats,
		orders: orders,
		users:  users,
	}
}

// MatchesCreated opens a chat room for each match. Called by the
// settler after a settlement has fully committed.
func (s *ChatService) MatchesCreated(ms []*domain.Match) {
	for _, m := range ms {
		buy, err := s.orders.Get(m.BuyOrderID)
		if err != nil {
			continue
		}
		sell, err := s.orders.Get(m.SellOrderID)
		if err != nil {
			continue
		}
		s.chats.CreateRoom(&domain.ChatRoom{
			ChatRoomID:   uuid.New().String(),
			MatchID:      m.MatchID,
			BuyerID:      buy.UserID,
			SellerID:     sell.UserID,
			FriendlyName: s.friendlyName(buy.UserID, sell.UserID),
			CreatedAt:    time.Now(),
		})
	}
}

func (s *ChatService) friendlyName(buyerID, sellerID string) string {
	buyerName, sellerName := buyerID, sellerID
	if u, err := s.users.Get(buyerID); err == nil {
		buyerName = u.FullName
	}
	if u, err := s.users.Get(sellerID); err == nil {
		sellerName = u.FullName
	}
	return fmt.Sprintf("%s / %s", buyerName, sellerName)
}

// RoomsByUser returns the user's rooms with their last messages,
// in creation order.
func (s *ChatService) RoomsByUser(userID string) []RoomSummary {
	rooms := s.chats.RoomsByUser(userID)
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		var last *domain.Chat
		if msgs := s.chats.MessagesByRoom(r.ChatRoomID); len(msgs) > 0 {
			last = msgs[len(msgs)-1]
		}
		out = append(out, RoomSummary{Room: r, LastMessage: last})
	}
	return out
}

// Messages returns a room's conversation. Only participants may read.
func (s *ChatService) Messages(roomID, userID string) ([]*domain.Chat, error) {
	room, err := s.chats.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	if !room.Participant(userID) {
		return nil, domain.ErrNotAuthorized
	}
	return s.chats.MessagesByRoom(roomID), nil
}

// Post appends a message to a room. Only participants may write.
func (s *ChatService) Post(roomID, userID, message string) (*domain.Chat, error) {
	if message == "" {
		return nil, &domain.ValidationError{Message: "message is required"}
	}
	room, err := s.chats.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	if !room.Participant(userID) {
		return nil, domain.ErrNotAuthorized
	}
	msg := &domain.Chat{
		ChatID:     uuid.New().String(),
		ChatRoomID: roomID,
		AuthorID:   userID,
		Message:    message,
		CreatedAt:  time.Now(),
	}
	s.chats.AppendMessage(msg)
	return msg, nil
}
