package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/service"
)

// ChatHandler handles HTTP requests for chat endpoints.
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// postMessageRequest is the JSON request body for posting a message.
type postMessageRequest struct {
	Message string `json:"message"`
}

// chatRoomResponse is the JSON representation of a chat room summary.
type chatRoomResponse struct {
	ChatRoomID   string           `json:"chat_room_id"`
	MatchID      string           `json:"match_id"`
	BuyerID      string           `json:"buyer_id"`
	SellerID     string           `json:"seller_id"`
	FriendlyName string           `json:"friendly_name"`
	CreatedAt    string           `json:"created_at"`
	LastMessage  *messageResponse `json:"last_message"`
}

// messageResponse is the JSON representation of a chat message.
type messageResponse struct {
	ChatID     string `json:"chat_id"`
	ChatRoomID string `json:"chat_room_id"`
	AuthorID   string `json:"author_id"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at"`
}

func buildMessageResponse(m *domain.Chat) messageResponse {
	return messageResponse{
		ChatID:     m.ChatID,
		ChatRoomID: m.ChatRoomID,
		AuthorID:   m.AuthorID,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}

// ListRooms handles GET /chat-rooms.
func (h *ChatHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	summaries := h.chatSvc.RoomsByUser(userID)
	out := make([]chatRoomResponse, 0, len(summaries))
	for _, s := range summaries {
		resp := chatRoomResponse{
			ChatRoomID:   s.Room.ChatRoomID,
			MatchID:      s.Room.MatchID,
			BuyerID:      s.Room.BuyerID,
			SellerID:     s.Room.SellerID,
			FriendlyName: s.Room.FriendlyName,
			CreatedAt:    s.Room.CreatedAt.Format(time.RFC3339),
		}
		if s.LastMessage != nil {
			m := buildMessageResponse(s.LastMessage)
			resp.LastMessage = &m
		}
		out = append(out, resp)
	}
	WriteJSON(w, http.StatusOK, out)
}

// Messages handles GET /chat-rooms/{chat_room_id}/messages.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	msgs, err := h.chatSvc.Messages(chi.URLParam(r, "chat_room_id"), userID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, buildMessageResponse(m))
	}
	WriteJSON(w, http.StatusOK, out)
}

// Post handles POST /chat-rooms/{chat_room_id}/messages.
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req postMessageRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	msg, err := h.chatSvc.Post(chi.URLParam(r, "chat_room_id"), userID, req.Message)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildMessageResponse(msg))
}
