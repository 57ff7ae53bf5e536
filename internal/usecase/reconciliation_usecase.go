package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/metrics"
)

// ReconciliationUseCase derives invoice status from accumulated payments.
// The read-compute-write sequence always runs inside one database
// transaction with the invoice row locked, so two concurrent payment writes
// against the same invoice serialize instead of racing on the status.
type ReconciliationUseCase struct {
	txManager       TransactionManager
	invoiceRepo     InvoiceRepository
	paymentRepo     PaymentRepository
	outboxRepo      OutboxRepository
	consistencyRepo ConsistencyRepository
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	txManager TransactionManager,
	invoiceRepo InvoiceRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	consistencyRepo ConsistencyRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		txManager:       txManager,
		invoiceRepo:     invoiceRepo,
		paymentRepo:     paymentRepo,
		outboxRepo:      outboxRepo,
		consistencyRepo: consistencyRepo,
		idGen:           idGen,
		retrier:         retrier,
		metrics:         metrics,
	}
}

// ReconciliationResult describes one reconciliation pass.
type ReconciliationResult struct {
	InvoiceID      string
	TotalPaid      decimal.Decimal
	PreviousStatus domain.InvoiceStatus
	Status         domain.InvoiceStatus
	ReconciledAt   time.Time
}

// Reconcile recomputes an invoice's paid total and status. The new status
// is persisted unconditionally, so the operation is idempotent: calling it
// twice with no intervening payment change yields the same status.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, invoiceID string) (*ReconciliationResult, error) {
	var result *ReconciliationResult

	operation := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		result, err = uc.ReconcileTx(ctx, tx, invoiceID)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if uc.retrier != nil {
		if err := uc.retrier.Retry(ctx, operation); err != nil {
			return nil, err
		}
	} else if err := operation(); err != nil {
		return nil, err
	}

	return result, nil
}

// ReconcileTx runs one reconciliation pass inside an already-open
// transaction. Payment use cases call this so that the payment write and
// the derived status land atomically.
func (uc *ReconciliationUseCase) ReconcileTx(ctx context.Context, tx Transaction, invoiceID string) (*ReconciliationResult, error) {
	start := time.Now()

	invoice, err := uc.invoiceRepo.GetByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Currency == "" {
		return nil, domain.ErrMissingCurrency
	}

	// The payment list must be read after the invoice lock is taken;
	// anything cached before it may be stale.
	payments, err := uc.paymentRepo.ListByInvoiceTx(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	totalPaid := decimal.Zero

	for _, payment := range payments {
		if !payment.Counted() {
			continue
		}

		converted, err := payment.AmountIn(invoice.Currency)
		if err != nil {
			return nil, fmt.Errorf("payment %s: %w", payment.ID, err)
		}

		totalPaid = totalPaid.Add(converted)
	}

	now := time.Now().UTC()
	previous := invoice.Status
	next := invoice.NextStatus(totalPaid, now)

	if err := uc.invoiceRepo.UpdateStatus(ctx, tx, invoiceID, next, now); err != nil {
		return nil, err
	}

	if next != previous {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   invoiceID,
			AggregateType: domain.AggregateTypeInvoice,
			EventType:     domain.EventTypeInvoiceStatusChanged,
			Payload: domain.MarshalPayload(domain.InvoiceStatusChangedEvent{
				InvoiceID:      invoiceID,
				PreviousStatus: string(previous),
				NewStatus:      string(next),
				TotalPaid:      totalPaid.String(),
				Currency:       invoice.Currency,
			}),
			CreatedAt: now,
		}

		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if uc.metrics != nil {
		uc.metrics.Reconciliations.Inc()
		uc.metrics.ReconciliationDuration.Observe(time.Since(start).Seconds())

		if next != previous {
			uc.metrics.InvoiceStatus.WithLabelValues(string(next)).Inc()
		}
	}

	return &ReconciliationResult{
		InvoiceID:      invoiceID,
		TotalPaid:      totalPaid,
		PreviousStatus: previous,
		Status:         next,
		ReconciledAt:   now,
	}, nil
}

// ConsistencyReport summarizes the ledger-wide audit.
type ConsistencyReport struct {
	TransactionTotalMismatches int64
	PaidInvoiceShortfalls      int64
	Consistent                 bool
	CheckedAt                  time.Time
}

// CheckConsistency audits stored totals: every transaction's total must
// match its amount and line items, and every paid invoice must still be
// within tolerance of its completed-payment sum.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	mismatches, err := uc.consistencyRepo.CountTransactionTotalMismatches(ctx)
	if err != nil {
		return nil, err
	}

	shortfalls, err := uc.consistencyRepo.CountPaidInvoiceShortfalls(ctx)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ConsistencyMismatches.WithLabelValues("transaction_total").Set(float64(mismatches))
		uc.metrics.ConsistencyMismatches.WithLabelValues("paid_invoice").Set(float64(shortfalls))
	}

	return &ConsistencyReport{
		TransactionTotalMismatches: mismatches,
		PaidInvoiceShortfalls:      shortfalls,
		Consistent:                 mismatches == 0 && shortfalls == 0,
		CheckedAt:                  time.Now().UTC(),
	}, nil
}
