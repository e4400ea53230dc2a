package handler

import (
	"net/http"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/service"
)

// RoundHandler handles HTTP requests for round endpoints.
type RoundHandler struct {
	roundSvc *service.RoundService
}

// NewRoundHandler creates a new RoundHandler.
func NewRoundHandler(roundSvc *service.RoundService) *RoundHandler {
	return &RoundHandler{roundSvc: roundSvc}
}

// roundResponse is the JSON representation of a round.
type roundResponse struct {
	RoundID   string `json:"round_id"`
	EndTime   string `json:"end_time"`
	Concluded bool   `json:"is_concluded"`
	CreatedAt string `json:"created_at"`
}

func buildRoundResponse(r *domain.Round) roundResponse {
	return roundResponse{
		RoundID:   r.RoundID,
		EndTime:   r.EndTime.Format(time.RFC3339),
		Concluded: r.Concluded,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /rounds.
func (h *RoundHandler) List(w http.ResponseWriter, r *http.Request) {
	rounds := h.roundSvc.All()
	out := make([]roundResponse, 0, len(rounds))
	for _, rd := range rounds {
		out = append(out, buildRoundResponse(rd))
	}
	WriteJSON(w, http.StatusOK, out)
}

// Active handles GET /rounds/active. Responds null when no round is
// active.
func (h *RoundHandler) Active(w http.ResponseWriter, r *http.Request) {
	active, err := h.roundSvc.Active()
	if err != nil {
		mapDomainError(w, err)
		return
	}
	if active == nil {
		WriteJSON(w, http.StatusOK, nil)
		return
	}
	WriteJSON(w, http.StatusOK, buildRoundResponse(active))
}
