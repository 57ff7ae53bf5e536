package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/postgres/generated"
	"github.com/ozgun/fincore/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create persists a transaction together with its tax line items.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	queries := tx.(*Tx).Queries()

	_, err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:           txn.ID,
		Type:         string(txn.Type),
		Amount:       decimalToNumeric(txn.Amount),
		Currency:     txn.Currency,
		ExchangeRate: decimalToNumeric(txn.ExchangeRate),
		VatIncluded:  txn.VATIncluded,
		TotalAmount:  decimalToNumeric(txn.TotalAmount),
		Description:  strToPgText(txn.Description),
		CreatedAt:    timeToPgTimestamptz(txn.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(txn.UpdatedAt),
	})
	if err != nil {
		return err
	}

	for _, item := range txn.Taxes {
		_, err := queries.CreateTransactionTax(ctx, generated.CreateTransactionTaxParams{
			ID:              item.ID,
			TransactionID:   txn.ID,
			TaxID:           item.TaxID,
			Name:            item.Name,
			Rate:            decimalToNumeric(item.Rate),
			CalculationType: string(item.CalculationType),
			BaseType:        string(item.BaseType),
			Amount:          decimalToNumeric(item.Amount),
			CreatedAt:       timeToPgTimestamptz(item.CreatedAt),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a transaction with its line items.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	taxes, err := r.queries.ListTransactionTaxes(ctx, id)
	if err != nil {
		return nil, err
	}

	return rowToTransaction(row, taxes), nil
}

// GetByIDForUpdate retrieves a transaction with a FOR UPDATE lock on its row.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	queries := tx.(*Tx).Queries()

	row, err := queries.GetTransactionByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	taxes, err := queries.ListTransactionTaxes(ctx, id)
	if err != nil {
		return nil, err
	}

	return rowToTransaction(row, taxes), nil
}

// List retrieves transactions with pagination, newest first.
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, generated.ListTransactionsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	txns := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		taxes, err := r.queries.ListTransactionTaxes(ctx, row.ID)
		if err != nil {
			return nil, err
		}

		txns = append(txns, rowToTransaction(row, taxes))
	}

	return txns, nil
}

// DeleteTaxLine removes one tax line item from a transaction.
func (r *TransactionRepository) DeleteTaxLine(ctx context.Context, tx usecase.Transaction, transactionID, lineItemID string) error {
	queries := tx.(*Tx).Queries()

	return queries.DeleteTransactionTax(ctx, generated.DeleteTransactionTaxParams{
		ID:            lineItemID,
		TransactionID: transactionID,
	})
}

// UpdateTotal rewrites a transaction's stored total.
func (r *TransactionRepository) UpdateTotal(ctx context.Context, tx usecase.Transaction, id string, total decimal.Decimal, updatedAt time.Time) error {
	queries := tx.(*Tx).Queries()

	return queries.UpdateTransactionTotal(ctx, generated.UpdateTransactionTotalParams{
		ID:          id,
		TotalAmount: decimalToNumeric(total),
		UpdatedAt:   timeToPgTimestamptz(updatedAt),
	})
}

func rowToTransaction(row generated.Transaction, taxRows []generated.TransactionTax) *domain.Transaction {
	taxes := make([]domain.TaxLineItem, 0, len(taxRows))
	for _, taxRow := range taxRows {
		taxes = append(taxes, domain.TaxLineItem{
			ID:              taxRow.ID,
			TaxID:           taxRow.TaxID,
			Name:            taxRow.Name,
			Rate:            numericToDecimal(taxRow.Rate),
			CalculationType: domain.TaxCalculationType(taxRow.CalculationType),
			BaseType:        domain.TaxBaseType(taxRow.BaseType),
			Amount:          numericToDecimal(taxRow.Amount),
			CreatedAt:       taxRow.CreatedAt.Time,
		})
	}

	return &domain.Transaction{
		ID:           row.ID,
		Type:         domain.TransactionType(row.Type),
		Amount:       numericToDecimal(row.Amount),
		Currency:     row.Currency,
		ExchangeRate: numericToDecimal(row.ExchangeRate),
		VATIncluded:  row.VatIncluded,
		Taxes:        taxes,
		TotalAmount:  numericToDecimal(row.TotalAmount),
		Description:  row.Description.String,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
