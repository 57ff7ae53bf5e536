package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ozgun/fincore/internal/adapter/http/handler"
	"github.com/ozgun/fincore/internal/adapter/http/middleware"
	"github.com/ozgun/fincore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TaxHandler         *handler.TaxHandler
	TransactionHandler *handler.TransactionHandler
	InvoiceHandler     *handler.InvoiceHandler
	PaymentHandler     *handler.PaymentHandler
	RateHandler        *handler.RateHandler
	ConsistencyHandler *handler.ConsistencyHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Tax definitions
		r.Route("/taxes", func(r chi.Router) {
			r.Post("/", cfg.TaxHandler.Create)
			r.Get("/", cfg.TaxHandler.List)
			r.Get("/{id}", cfg.TaxHandler.Get)
			r.Put("/{id}", cfg.TaxHandler.Update)
			r.Delete("/{id}", cfg.TaxHandler.Deactivate)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Delete("/{id}/taxes/{lineItemID}", cfg.TransactionHandler.RemoveTaxLine)
		})

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", cfg.InvoiceHandler.Create)
			r.Get("/", cfg.InvoiceHandler.List)
			r.Get("/{id}", cfg.InvoiceHandler.Get)
			r.Post("/{id}/cancel", cfg.InvoiceHandler.Cancel)
			r.Post("/{id}/reconcile", cfg.InvoiceHandler.Reconcile)
			r.Get("/{id}/payments", cfg.PaymentHandler.ListByInvoice)
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/{id}", cfg.PaymentHandler.Get)
			r.Put("/{id}", cfg.PaymentHandler.Update)
			r.Delete("/{id}", cfg.PaymentHandler.Delete)
		})

		// Exchange rates
		r.Route("/rates", func(r chi.Router) {
			r.Get("/fallback", cfg.RateHandler.Fallback)
			r.Post("/convert", cfg.RateHandler.Convert)
		})

		// Stored-total audit
		r.Get("/consistency", cfg.ConsistencyHandler.Check)
	})

	return r
}
