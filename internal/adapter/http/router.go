package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/veltri/propledger/internal/adapter/http/handler"
	"github.com/veltri/propledger/internal/adapter/http/middleware"
	"github.com/veltri/propledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler    *handler.AccountHandler
	JournalHandler    *handler.JournalHandler
	AllocationHandler *handler.AllocationHandler
	ScheduleHandler   *handler.ScheduleHandler
	EntryHandler      *handler.EntryHandler
	AuditHandler      *handler.AuditHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByAccount)
		})

		// Journals
		r.Route("/journals", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Create)
			r.Get("/{id}", cfg.JournalHandler.Get)
			r.Post("/{id}/post", cfg.JournalHandler.Post)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByJournal)
		})

		// Allocations
		r.Route("/allocations", func(r chi.Router) {
			r.Post("/preview", cfg.AllocationHandler.Preview)
		})

		// Apportionment schedules per context
		r.Route("/contexts/{contextID}/schedules", func(r chi.Router) {
			r.Post("/", cfg.ScheduleHandler.CreateSchedule)
			r.Get("/", cfg.ScheduleHandler.ListSchedules)
		})

		// Units
		r.Route("/units", func(r chi.Router) {
			r.Post("/", cfg.ScheduleHandler.CreateUnit)
			r.Get("/{id}", cfg.ScheduleHandler.GetUnit)
		})

		// Audit trail
		r.Route("/audit", func(r chi.Router) {
			r.Get("/", cfg.AuditHandler.List)
			r.Get("/{resourceID}", cfg.AuditHandler.GetByResource)
		})
	})

	return r
}
