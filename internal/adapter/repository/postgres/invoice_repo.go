package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/postgres/generated"
	"github.com/ozgun/fincore/internal/usecase"
)

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	_, err := r.queries.CreateInvoice(ctx, generated.CreateInvoiceParams{
		ID:          invoice.ID,
		Number:      invoice.Number,
		Amount:      decimalToNumeric(invoice.Amount),
		VatAmount:   decimalToNumeric(invoice.VATAmount),
		TotalAmount: decimalToNumeric(invoice.TotalAmount),
		Currency:    invoice.Currency,
		Status:      string(invoice.Status),
		DueDate:     timePtrToPgTimestamptz(invoice.DueDate),
		IssuedAt:    timePtrToPgTimestamptz(invoice.IssuedAt),
		CreatedAt:   timeToPgTimestamptz(invoice.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(invoice.UpdatedAt),
	})

	return err
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row, err := r.queries.GetInvoiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	return rowToInvoice(row), nil
}

// GetByIDForUpdate retrieves an invoice with a FOR UPDATE lock. Reconciliation
// serializes on this lock.
func (r *InvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	queries := tx.(*Tx).Queries()

	row, err := queries.GetInvoiceByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	return rowToInvoice(row), nil
}

// UpdateStatus rewrites an invoice's status.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.InvoiceStatus, updatedAt time.Time) error {
	queries := tx.(*Tx).Queries()

	return queries.UpdateInvoiceStatus(ctx, generated.UpdateInvoiceStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// List retrieves invoices with pagination, newest first.
func (r *InvoiceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Invoice, error) {
	rows, err := r.queries.ListInvoices(ctx, generated.ListInvoicesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	invoices := make([]*domain.Invoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, rowToInvoice(row))
	}

	return invoices, nil
}

func rowToInvoice(row generated.Invoice) *domain.Invoice {
	return &domain.Invoice{
		ID:          row.ID,
		Number:      row.Number,
		Amount:      numericToDecimal(row.Amount),
		VATAmount:   numericToDecimal(row.VatAmount),
		TotalAmount: numericToDecimal(row.TotalAmount),
		Currency:    row.Currency,
		Status:      domain.InvoiceStatus(row.Status),
		DueDate:     pgTimestamptzToTimePtr(row.DueDate),
		IssuedAt:    pgTimestamptzToTimePtr(row.IssuedAt),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
