package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated prometheus.Counter
	TaxLinesApplied     prometheus.Counter
	TaxLinesRemoved     prometheus.Counter
	TransactionAmount   prometheus.Histogram
	TransactionErrors   *prometheus.CounterVec

	// Invoice metrics
	InvoicesCreated   prometheus.Counter
	InvoicesCancelled prometheus.Counter
	InvoiceStatus     *prometheus.CounterVec

	// Payment metrics
	PaymentsCreated prometheus.Counter
	PaymentsDeleted prometheus.Counter
	PaymentAmount   prometheus.Histogram

	// Reconciliation metrics
	Reconciliations        prometheus.Counter
	ReconciliationDuration prometheus.Histogram
	ConsistencyMismatches  *prometheus.GaugeVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	EventsPending   prometheus.Gauge

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_transactions_created_total",
			Help: "Total number of transactions created",
		}),
		TaxLinesApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_tax_lines_applied_total",
			Help: "Total number of tax line items applied by the cascade",
		}),
		TaxLinesRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_tax_lines_removed_total",
			Help: "Total number of tax line items removed",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincore_transaction_amount",
			Help:    "Transaction base amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_transaction_errors_total",
				Help: "Total number of transaction errors by type",
			},
			[]string{"error_type"},
		),

		// Invoice metrics
		InvoicesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_invoices_created_total",
			Help: "Total number of invoices created",
		}),
		InvoicesCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_invoices_cancelled_total",
			Help: "Total number of invoices cancelled",
		}),
		InvoiceStatus: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_invoice_status_transitions_total",
				Help: "Total invoice status transitions by target status",
			},
			[]string{"status"},
		),

		// Payment metrics
		PaymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_payments_created_total",
			Help: "Total number of payments recorded",
		}),
		PaymentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_payments_deleted_total",
			Help: "Total number of payments removed",
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincore_payment_amount",
			Help:    "Payment amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Reconciliation metrics
		Reconciliations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_reconciliations_total",
			Help: "Total number of invoice reconciliation passes",
		}),
		ReconciliationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincore_reconciliation_duration_seconds",
			Help:    "Duration of reconciliation passes",
			Buckets: prometheus.DefBuckets,
		}),
		ConsistencyMismatches: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fincore_consistency_mismatches",
				Help: "Stored-total mismatches found by the last consistency audit",
			},
			[]string{"check"},
		),

		// Outbox metrics
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		EventsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fincore_events_pending",
			Help: "Outbox events waiting to be published",
		}),

		// Cache metrics
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_cache_hits_total",
				Help: "Total cache hits by key group",
			},
			[]string{"group"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_cache_misses_total",
				Help: "Total cache misses by key group",
			},
			[]string{"group"},
		),
	}
}
