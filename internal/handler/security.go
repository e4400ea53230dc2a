package handler

import (
	"net/http"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/service"
)

// SecurityHandler handles HTTP requests for security endpoints.
type SecurityHandler struct {
	securitySvc *service.SecurityService
}

// NewSecurityHandler creates a new SecurityHandler.
func NewSecurityHandler(securitySvc *service.SecurityService) *SecurityHandler {
	return &SecurityHandler{securitySvc: securitySvc}
}

// createSecurityRequest is the JSON request body for POST /securities.
type createSecurityRequest struct {
	Name string `json:"name"`
}

// securityResponse is the JSON representation of a security.
type securityResponse struct {
	SecurityID string `json:"security_id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
}

func buildSecurityResponse(s *domain.Security) securityResponse {
	return securityResponse{
		SecurityID: s.SecurityID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /securities.
func (h *SecurityHandler) List(w http.ResponseWriter, r *http.Request) {
	secs := h.securitySvc.All()
	out := make([]securityResponse, 0, len(secs))
	for _, s := range secs {
		out = append(out, buildSecurityResponse(s))
	}
	WriteJSON(w, http.StatusOK, out)
}

// Create handles POST /securities.
func (h *SecurityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSecurityRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sec, err := h.securitySvc.Create(req.Name)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildSecurityResponse(sec))
}
