package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/postgres/generated"
	"github.com/ozgun/fincore/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a payment within a transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	queries := tx.(*Tx).Queries()

	_, err := queries.CreatePayment(ctx, generated.CreatePaymentParams{
		ID:           payment.ID,
		InvoiceID:    strPtrToPgText(payment.InvoiceID),
		Amount:       decimalToNumeric(payment.Amount),
		Currency:     payment.Currency,
		ExchangeRate: decimalToNumeric(payment.ExchangeRate),
		Status:       string(payment.Status),
		PaidAt:       timePtrToPgTimestamptz(payment.PaidAt),
		CreatedAt:    timeToPgTimestamptz(payment.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(payment.UpdatedAt),
	})

	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row, err := r.queries.GetPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return rowToPayment(row), nil
}

// GetByIDForUpdate retrieves a payment with a FOR UPDATE lock.
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	queries := tx.(*Tx).Queries()

	row, err := queries.GetPaymentByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return rowToPayment(row), nil
}

// Update rewrites a payment within a transaction.
func (r *PaymentRepository) Update(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	queries := tx.(*Tx).Queries()

	return queries.UpdatePayment(ctx, generated.UpdatePaymentParams{
		ID:           payment.ID,
		InvoiceID:    strPtrToPgText(payment.InvoiceID),
		Amount:       decimalToNumeric(payment.Amount),
		Currency:     payment.Currency,
		ExchangeRate: decimalToNumeric(payment.ExchangeRate),
		Status:       string(payment.Status),
		PaidAt:       timePtrToPgTimestamptz(payment.PaidAt),
		UpdatedAt:    timeToPgTimestamptz(payment.UpdatedAt),
	})
}

// Delete removes a payment within a transaction.
func (r *PaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	queries := tx.(*Tx).Queries()

	return queries.DeletePayment(ctx, id)
}

// ListByInvoice lists the payments referencing an invoice.
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*domain.Payment, error) {
	return listPayments(ctx, r.queries, invoiceID)
}

// ListByInvoiceTx lists the payments referencing an invoice from inside the
// reconciling transaction, after the invoice row lock is held.
func (r *PaymentRepository) ListByInvoiceTx(ctx context.Context, tx usecase.Transaction, invoiceID string) ([]*domain.Payment, error) {
	return listPayments(ctx, tx.(*Tx).Queries(), invoiceID)
}

func listPayments(ctx context.Context, queries *generated.Queries, invoiceID string) ([]*domain.Payment, error) {
	rows, err := queries.ListPaymentsByInvoice(ctx, strToPgText(invoiceID))
	if err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}

	return payments, nil
}

func rowToPayment(row generated.Payment) *domain.Payment {
	return &domain.Payment{
		ID:           row.ID,
		InvoiceID:    pgTextToStrPtr(row.InvoiceID),
		Amount:       numericToDecimal(row.Amount),
		Currency:     row.Currency,
		ExchangeRate: numericToDecimal(row.ExchangeRate),
		Status:       domain.PaymentStatus(row.Status),
		PaidAt:       pgTimestamptzToTimePtr(row.PaidAt),
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
