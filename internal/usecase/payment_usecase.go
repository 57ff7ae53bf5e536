package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/metrics"
)

// PaymentUseCase handles payment writes. Every mutation that references an
// invoice reconciles that invoice inside the same database transaction, so
// the payment and the derived status are committed together.
type PaymentUseCase struct {
	txManager   TransactionManager
	paymentRepo PaymentRepository
	outboxRepo  OutboxRepository
	reconciler  *ReconciliationUseCase
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	reconciler *ReconciliationUseCase,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		paymentRepo: paymentRepo,
		outboxRepo:  outboxRepo,
		reconciler:  reconciler,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// CreatePaymentInput represents input for recording a payment.
type CreatePaymentInput struct {
	InvoiceID    *string
	Amount       decimal.Decimal
	Currency     string
	ExchangeRate decimal.Decimal
	Status       domain.PaymentStatus
	PaidAt       *time.Time
}

// CreatePayment records a payment and, when it references an invoice,
// reconciles that invoice in the same transaction.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	now := time.Now().UTC()

	status := input.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}

	payment := &domain.Payment{
		ID:           uc.idGen.Generate(),
		InvoiceID:    input.InvoiceID,
		Amount:       input.Amount,
		Currency:     input.Currency,
		ExchangeRate: input.ExchangeRate,
		Status:       status,
		PaidAt:       input.PaidAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}

		if err := uc.recordEvent(ctx, tx, payment, domain.EventTypePaymentRecorded, now); err != nil {
			return err
		}

		if payment.InvoiceID != nil {
			if _, err := uc.reconciler.ReconcileTx(ctx, tx, *payment.InvoiceID); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsCreated.Inc()
		amount, _ := payment.Amount.Float64()
		uc.metrics.PaymentAmount.Observe(amount)
	}

	return payment, nil
}

// UpdatePaymentInput represents input for updating a payment.
type UpdatePaymentInput struct {
	InvoiceID    *string
	Amount       decimal.Decimal
	Currency     string
	ExchangeRate decimal.Decimal
	Status       domain.PaymentStatus
	PaidAt       *time.Time
}

// UpdatePayment rewrites a payment. Both the previously referenced invoice
// and the newly referenced one (when they differ) are reconciled in the
// same transaction, so moving a payment between invoices cannot leave a
// stale status behind.
func (uc *PaymentUseCase) UpdatePayment(ctx context.Context, id string, input UpdatePaymentInput) (*domain.Payment, error) {
	var updated *domain.Payment

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		payment, err := uc.paymentRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		previousInvoiceID := payment.InvoiceID

		payment.InvoiceID = input.InvoiceID
		payment.Amount = input.Amount
		payment.Currency = input.Currency
		payment.ExchangeRate = input.ExchangeRate
		payment.Status = input.Status
		payment.PaidAt = input.PaidAt
		payment.UpdatedAt = time.Now().UTC()

		if err := payment.Validate(); err != nil {
			return err
		}

		if err := uc.paymentRepo.Update(ctx, tx, payment); err != nil {
			return err
		}

		for _, invoiceID := range affectedInvoices(previousInvoiceID, payment.InvoiceID) {
			if _, err := uc.reconciler.ReconcileTx(ctx, tx, invoiceID); err != nil {
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		updated = payment

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeletePayment removes a payment and reconciles the invoice it referenced,
// which is the path that demotes a paid invoice back to issued.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, id string) error {
	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		payment, err := uc.paymentRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := uc.paymentRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		if err := uc.recordEvent(ctx, tx, payment, domain.EventTypePaymentRemoved, time.Now().UTC()); err != nil {
			return err
		}

		if payment.InvoiceID != nil {
			if _, err := uc.reconciler.ReconcileTx(ctx, tx, *payment.InvoiceID); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsDeleted.Inc()
	}

	return nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsByInvoice lists the payments referencing an invoice.
func (uc *PaymentUseCase) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]*domain.Payment, error) {
	return uc.paymentRepo.ListByInvoice(ctx, invoiceID)
}

func (uc *PaymentUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier != nil {
		return uc.retrier.Retry(ctx, operation)
	}

	return operation()
}

func (uc *PaymentUseCase) recordEvent(ctx context.Context, tx Transaction, payment *domain.Payment, eventType string, now time.Time) error {
	invoiceID := ""
	if payment.InvoiceID != nil {
		invoiceID = *payment.InvoiceID
	}

	var payload map[string]any
	if eventType == domain.EventTypePaymentRemoved {
		payload = domain.MarshalPayload(domain.PaymentRemovedEvent{
			PaymentID: payment.ID,
			InvoiceID: invoiceID,
		})
	} else {
		payload = domain.MarshalPayload(domain.PaymentRecordedEvent{
			PaymentID: payment.ID,
			InvoiceID: invoiceID,
			Amount:    payment.Amount.String(),
			Currency:  payment.Currency,
			Status:    string(payment.Status),
		})
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   payment.ID,
		AggregateType: domain.AggregateTypePayment,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	})
}

// affectedInvoices returns the distinct non-nil invoice ids touched by a
// payment move, in ascending id order. Every writer locks invoice rows in
// that one order; two moves in opposite directions then queue on the first
// lock instead of deadlocking on each other.
func affectedInvoices(before, after *string) []string {
	var ids []string

	if before != nil {
		ids = append(ids, *before)
	}

	if after != nil && (before == nil || *after != *before) {
		ids = append(ids, *after)
	}

	sort.Strings(ids)

	return ids
}
