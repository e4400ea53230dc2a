package service

import (
	"errors"
	"testing"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/store"
)

type chatFixture struct {
	chats  *store.ChatStore
	orders *store.OrderStore
	users  *store.UserStore
	svc    *ChatService
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{
		chats:  store.NewChatStore(),
		orders: store.NewOrderStore(),
		users:  store.NewUserStore(),
	}
	f.svc = NewChatService(f.chats, f.orders, f.users)

	for _, u := range []struct{ id, name string }{
		{"buyer", "Betty Buyer"},
		{"seller", "Sam Seller"},
	} {
		err := f.users.Create(&domain.User{
			UserID:    u.id,
			Email:     u.id + "@example.com",
			FullName:  u.name,
			CreatedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	f.orders.Create(&domain.Order{
		OrderID: "b1", Side: domain.OrderSideBuy, UserID: "buyer",
		SecurityID: "sec-1", Shares: 10, Price: 1000,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	f.orders.Create(&domain.Order{
		OrderID: "s1", Side: domain.OrderSideSell, UserID: "seller",
		SecurityID: "sec-1", Shares: 10, Price: 900,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	return f
}

func (f *chatFixture) settleMatch(t *testing.T) *domain.ChatRoom {
	t.Helper()
	f.svc.MatchesCreated([]*domain.Match{{
		MatchID:     "m1",
		BuyOrderID:  "b1",
		SellOrderID: "s1",
		RoundID:     "r1",
		CreatedAt:   time.Now(),
	}})

	rooms := f.chats.RoomsByUser("buyer")
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
	return rooms[0]
}

func TestChatService_MatchesCreatedOpensRoom(t *testing.T) {
	f := newChatFixture(t)
	room := f.settleMatch(t)

	if room.BuyerID != "buyer" || room.SellerID != "seller" {
		t.Errorf("got %+v", room)
	}
	if room.MatchID != "m1" {
		t.Errorf("room not linked to match: %+v", room)
	}
	if room.FriendlyName != "Betty Buyer / Sam Seller" {
		t.Errorf("got friendly name %q", room.FriendlyName)
	}

	// Both counterparties see the room.
	if len(f.chats.RoomsByUser("seller")) != 1 {
		t.Error("seller cannot see the room")
	}
}

func TestChatService_PostAndRead(t *testing.T) {
	f := newChatFixture(t)
	room := f.settleMatch(t)

	msg, err := f.svc.Post(room.ChatRoomID, "buyer", "when can we sign?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.AuthorID != "buyer" {
		t.Errorf("got %+v", msg)
	}

	msgs, err := f.svc.Messages(room.ChatRoomID, "seller")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Message != "when can we sign?" {
		t.Errorf("got %+v", msgs)
	}

	summaries := f.svc.RoomsByUser("seller")
	if len(summaries) != 1 || summaries[0].LastMessage == nil {
		t.Fatalf("got %+v", summaries)
	}
	if summaries[0].LastMessage.ChatID != msg.ChatID {
		t.Errorf("last message mismatch: %+v", summaries[0].LastMessage)
	}
}

func TestChatService_NonParticipantRejected(t *testing.T) {
	f := newChatFixture(t)
	room := f.settleMatch(t)

	if _, err := f.svc.Messages(room.ChatRoomID, "stranger"); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if _, err := f.svc.Post(room.ChatRoomID, "stranger", "hi"); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestChatService_EmptyMessageRejected(t *testing.T) {
	f := newChatFixture(t)
	room := f.settleMatch(t)

	_, err := f.svc.Post(room.ChatRoomID, "buyer", "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestChatService_UnknownRoom(t *testing.T) {
	f := newChatFixture(t)

	if _, err := f.svc.Messages("ghost", "buyer"); !errors.Is(err, domain.ErrChatRoomNotFound) {
		t.Fatalf("expected ErrChatRoomNotFound, got %v", err)
	}
}
