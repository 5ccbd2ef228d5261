package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/arledger/internal/adapter/http/handler"
	"github.com/iho/arledger/internal/adapter/http/middleware"
	"github.com/iho/arledger/internal/infrastructure/auth"
)

// RouterConfig holds the handlers and middleware the router wires together.
type RouterConfig struct {
	HolderHandler    *handler.HolderHandler
	InvoiceHandler   *handler.InvoiceHandler
	NoteHandler      *handler.NoteHandler
	StatementHandler *handler.StatementHandler
	AuthHandler      *handler.AuthHandler
	HealthHandler    *handler.HealthHandler

	Logging     *middleware.LoggingMiddleware
	Idempotency *middleware.IdempotencyMiddleware
	RateLimiter *middleware.RateLimiter

	JWTManager  *auth.JWTManager
	AuthEnabled bool
}

// NewRouter builds the HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.Idempotency != nil {
			api.Use(cfg.Idempotency.Wrap)
		}

		api.Mount("/auth", cfg.AuthHandler.Routes())

		api.Group(func(protected chi.Router) {
			if cfg.AuthEnabled && cfg.JWTManager != nil {
				protected.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}

			protected.Route("/holders", func(hr chi.Router) {
				cfg.HolderHandler.Routes(hr)
				cfg.StatementHandler.Routes(hr)
			})
			protected.Mount("/invoices", cfg.InvoiceHandler.Routes())
			protected.Mount("/notes", cfg.NoteHandler.Routes())

			if cfg.AuthEnabled {
				protected.Post("/users", cfg.AuthHandler.CreateUser)
			}
		})
	})

	return r
}
