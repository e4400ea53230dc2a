package handler

import (
	"net/http"

	"github.com/efreitasn/minimarket/internal/service"
)

// BanHandler handles HTTP requests for the ban endpoint.
type BanHandler struct {
	banSvc *service.BanService
}

// NewBanHandler creates a new BanHandler.
func NewBanHandler(banSvc *service.BanService) *BanHandler {
	return &BanHandler{banSvc: banSvc}
}

// createBanRequest is the JSON request body for POST /bans.
type createBanRequest struct {
	OtherUserID string `json:"other_user_id"`
}

// Create handles POST /bans. The acting user bans the other user
// two-way: neither may ever buy from or sell to the other.
func (h *BanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req createBanRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.banSvc.Ban(userID, req.OtherUserID); err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{})
}
