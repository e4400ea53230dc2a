package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/minimarket/internal/domain"
	"github.com/efreitasn/minimarket/internal/service"
)

// UserHandler handles HTTP requests for user endpoints.
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// createUserRequest is the JSON request body for POST /users.
type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// loginRequest is the JSON request body for POST /users/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// inviteRequest is the JSON request body for the invite endpoints.
type inviteRequest struct {
	InvitedID string `json:"invited_id"`
}

// userResponse is the JSON representation of a user. The password hash
// is never exposed.
type userResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CanBuy    bool   `json:"can_buy"`
	CanSell   bool   `json:"can_sell"`
	CreatedAt string `json:"created_at"`
}

func buildUserResponse(u *domain.User) userResponse {
	return userResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		FullName:  u.FullName,
		CanBuy:    u.CanBuy,
		CanSell:   u.CanSell,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	u, err := h.userSvc.Create(service.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildUserResponse(u))
}

// Login handles POST /users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	u, err := h.userSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "authentication_failed", "invalid email or password")
		return
	}

	WriteJSON(w, http.StatusOK, buildUserResponse(u))
}

// Get handles GET /users/{user_id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.userSvc.Get(chi.URLParam(r, "user_id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildUserResponse(u))
}

// InviteSeller handles POST /users/invite/seller.
func (h *UserHandler) InviteSeller(w http.ResponseWriter, r *http.Request) {
	h.invite(w, r, h.userSvc.InviteSeller)
}

// InviteBuyer handles POST /users/invite/buyer.
func (h *UserHandler) InviteBuyer(w http.ResponseWriter, r *http.Request) {
	h.invite(w, r, h.userSvc.InviteBuyer)
}

func (h *UserHandler) invite(w http.ResponseWriter, r *http.Request, fn func(inviterID, invitedID string) (*domain.User, error)) {
	inviterID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req inviteRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	u, err := fn(inviterID, req.InvitedID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildUserResponse(u))
}
