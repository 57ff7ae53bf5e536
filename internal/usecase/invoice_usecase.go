package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/metrics"
)

// InvoiceUseCase handles invoice entry and the one transition that is not
// derived from payments: explicit cancellation.
type InvoiceUseCase struct {
	txManager   TransactionManager
	invoiceRepo InvoiceRepository
	paymentRepo PaymentRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewInvoiceUseCase creates a new InvoiceUseCase.
func NewInvoiceUseCase(
	txManager TransactionManager,
	invoiceRepo InvoiceRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateInvoiceInput represents input for creating an invoice.
type CreateInvoiceInput struct {
	Number    string
	Amount    decimal.Decimal
	VATAmount decimal.Decimal
	Currency  string
	DueDate   *time.Time
	IssuedAt  *time.Time
}

// CreateInvoice creates a draft invoice. The total is always derived as
// amount plus VAT, never accepted from the caller.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	now := time.Now().UTC()

	invoice := &domain.Invoice{
		ID:          uc.idGen.Generate(),
		Number:      input.Number,
		Amount:      input.Amount,
		VATAmount:   input.VATAmount,
		TotalAmount: input.Amount.Add(input.VATAmount),
		Currency:    input.Currency,
		Status:      domain.InvoiceStatusDraft,
		DueDate:     input.DueDate,
		IssuedAt:    input.IssuedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoicesCreated.Inc()
	}

	return invoice, nil
}

// InvoiceWithPayments pairs an invoice with its current payment list.
type InvoiceWithPayments struct {
	Invoice  *domain.Invoice
	Payments []*domain.Payment
}

// GetInvoice retrieves an invoice together with its payments.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*InvoiceWithPayments, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	return &InvoiceWithPayments{Invoice: invoice, Payments: payments}, nil
}

// ListInvoices lists invoices with pagination.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, limit, offset int) ([]*domain.Invoice, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.invoiceRepo.List(ctx, limit, offset)
}

// CancelInvoice sets the terminal cancelled status. Reconciliation never
// derives this state and never leaves it.
func (uc *InvoiceUseCase) CancelInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	invoice, err := uc.invoiceRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == domain.InvoiceStatusCancelled {
		return nil, domain.ErrInvoiceCancelled
	}

	now := time.Now().UTC()
	previous := invoice.Status

	if err := uc.invoiceRepo.UpdateStatus(ctx, tx, id, domain.InvoiceStatusCancelled, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   id,
		AggregateType: domain.AggregateTypeInvoice,
		EventType:     domain.EventTypeInvoiceCancelled,
		Payload: domain.MarshalPayload(domain.InvoiceStatusChangedEvent{
			InvoiceID:      id,
			PreviousStatus: string(previous),
			NewStatus:      string(domain.InvoiceStatusCancelled),
			Currency:       invoice.Currency,
		}),
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoicesCancelled.Inc()
	}

	invoice.Status = domain.InvoiceStatusCancelled
	invoice.UpdatedAt = now

	return invoice, nil
}
