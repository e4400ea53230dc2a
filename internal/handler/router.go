package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/efreitasn/minimarket/internal/service"
)

// NewRouter creates a chi router with all routes registered, request
// logging, CORS, and Content-Type validation middleware.
func NewRouter(
	userSvc *service.UserService,
	orderSvc *service.OrderService,
	securitySvc *service.SecurityService,
	roundSvc *service.RoundService,
	banSvc *service.BanService,
	chatSvc *service.ChatService,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Create handlers.
	userH := NewUserHandler(userSvc)
	orderH := NewOrderHandler(orderSvc)
	securityH := NewSecurityHandler(securitySvc)
	roundH := NewRoundHandler(roundSvc)
	banH := NewBanHandler(banSvc)
	chatH := NewChatHandler(chatSvc)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// User routes.
	r.Post("/users", userH.Create)
	r.Post("/users/login", userH.Login)
	r.Get("/users/{user_id}", userH.Get)
	r.Post("/users/invite/seller", userH.InviteSeller)
	r.Post("/users/invite/buyer", userH.InviteBuyer)

	// Order routes, one set per side.
	r.Post("/sell-orders", orderH.CreateSell)
	r.Get("/sell-orders", orderH.ListSell)
	r.Get("/sell-orders/{order_id}", orderH.Get)
	r.Patch("/sell-orders/{order_id}", orderH.Edit)
	r.Delete("/sell-orders/{order_id}", orderH.Delete)
	r.Post("/buy-orders", orderH.CreateBuy)
	r.Get("/buy-orders", orderH.ListBuy)
	r.Get("/buy-orders/{order_id}", orderH.Get)
	r.Patch("/buy-orders/{order_id}", orderH.Edit)
	r.Delete("/buy-orders/{order_id}", orderH.Delete)

	// Security routes.
	r.Get("/securities", securityH.List)
	r.Post("/securities", securityH.Create)

	// Round routes.
	r.Get("/rounds", roundH.List)
	r.Get("/rounds/active", roundH.Active)

	// Ban route. Bans are permanent; there is no DELETE.
	r.Post("/bans", banH.Create)

	// Chat routes.
	r.Get("/chat-rooms", chatH.ListRooms)
	r.Get("/chat-rooms/{chat_room_id}/messages", chatH.Messages)
	r.Post("/chat-rooms/{chat_room_id}/messages", chatH.Post)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	})
	return c.Handler(r)
}

// requestLogging returns middleware that logs each request's method,
// path, status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST,
// PUT, and PATCH requests. If the Content-Type header doesn't start
// with "application/json", it returns 400 Bad Request before the
// handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
