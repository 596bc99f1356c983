// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"minibank/internal/api/handler"
)

// DefaultTimeout bounds request handling end to end.
const DefaultTimeout = 30 * time.Second

// NewRouter sets up and returns a new HTTP router.
func NewRouter(authHandler *handler.AuthHandler, bankHandler *handler.BankHandler, jwtSecret []byte, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(jwtSecret))
		r.Get("/balance", bankHandler.GetBalance)
		r.Get("/transactions", bankHandler.GetTransactions)
		r.Post("/transfer", bankHandler.Transfer)
	})

	return r
}
