package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/spinhall/ledgercore/internal/adapter/http/handler"
	"github.com/spinhall/ledgercore/internal/adapter/http/middleware"
	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/infrastructure/auth"
	"github.com/spinhall/ledgercore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler    *handler.AccountHandler
	WalletHandler     *handler.WalletHandler
	SettlementHandler *handler.SettlementHandler
	EntryHandler      *handler.EntryHandler
	ReconcileHandler  *handler.ReconcileHandler
	HealthHandler     *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	// JWTManager enables authentication when non-nil.
	JWTManager *auth.JWTManager

	RateLimitPerSecond float64
	RateLimitBurst     int

	Logger zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	if cfg.RateLimitPerSecond > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
		r.Use(limiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/balance", cfg.AccountHandler.Balance)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByAccount)
			r.Get("/{id}/requests", cfg.SettlementHandler.ListByAccount)

			r.Post("/{id}/deposit", cfg.WalletHandler.Deposit)
			r.Post("/{id}/withdraw", cfg.WalletHandler.Withdraw)

			// Admin surface
			r.Group(func(r chi.Router) {
				if cfg.JWTManager != nil {
					r.Use(middleware.RequireRole(domain.RoleAdmin))
				}
				r.Get("/", cfg.AccountHandler.List)
				r.Put("/{id}/status", cfg.AccountHandler.SetStatus)
				r.Post("/{id}/adjust", cfg.WalletHandler.Adjust)
			})
		})

		// Transfers
		r.Post("/transfers", cfg.WalletHandler.Transfer)

		// Wagers, restricted to trusted game backends
		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.RequireRole(domain.RoleService))
			}
			r.Post("/wagers", cfg.WalletHandler.Wager)
		})

		// Entries
		r.Get("/entries/{id}", cfg.EntryHandler.Get)
		r.Get("/correlations/{id}/entries", cfg.EntryHandler.GetByCorrelation)

		// Settlement requests
		r.Route("/requests", func(r chi.Router) {
			r.Post("/", cfg.SettlementHandler.Create)
			r.Get("/{id}", cfg.SettlementHandler.Get)

			r.Group(func(r chi.Router) {
				if cfg.JWTManager != nil {
					r.Use(middleware.RequireRole(domain.RoleAdmin))
				}
				r.Get("/pending", cfg.SettlementHandler.ListPending)
				r.Post("/{id}/resolve", cfg.SettlementHandler.Resolve)
			})
		})

		// Reconciliation
		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
			}
			r.Post("/reconcile", cfg.ReconcileHandler.ReconcileAll)
			r.Post("/reconcile/{id}", cfg.ReconcileHandler.Reconcile)
		})
	})

	return r
}
