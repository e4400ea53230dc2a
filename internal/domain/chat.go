package domain

import "time"

// ChatRoom connects the two counterparties of a match. One room is
// created per match at settlement time.
type ChatRoom struct {
	ChatRoomID   string
	MatchID      string
	BuyerID      string
	SellerID     string
	FriendlyName string
	CreatedAt    time.Time
}

// Participant reports whether the given user is one of the room's two
// counterparties.
func (r *ChatRoom) Participant(userID string) bool {
	return userID == r.BuyerID || userID == r.SellerID
}

// Counterparty returns the other side of the room relative to userID.
func (r *ChatRoom) Counterparty(userID string) string {
	if userID == r.BuyerID {
		return r.SellerID
	}
	return r.BuyerID
}

// Chat is a single message inside a chat room.
type Chat struct {
	ChatID     string
	ChatRoomID string
	AuthorID   string
	Message    string
	CreatedAt  time.Time
}
