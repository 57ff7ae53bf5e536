package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozgun/fincore/internal/infrastructure/postgres/generated"
)

// ConsistencyRepository implements usecase.ConsistencyRepository with
// SQL-side audits so the whole ledger is checked without paging rows
// through the application.
type ConsistencyRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewConsistencyRepository creates a new ConsistencyRepository.
func NewConsistencyRepository(pool *pgxpool.Pool) *ConsistencyRepository {
	return &ConsistencyRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CountTransactionTotalMismatches counts transactions whose stored total
// disagrees with their amount and tax line items.
func (r *ConsistencyRepository) CountTransactionTotalMismatches(ctx context.Context) (int64, error) {
	return r.queries.CountTransactionTotalMismatches(ctx)
}

// CountPaidInvoiceShortfalls counts paid invoices whose completed payments,
// converted into the invoice currency, no longer reach the tolerance
// threshold.
func (r *ConsistencyRepository) CountPaidInvoiceShortfalls(ctx context.Context) (int64, error) {
	return r.queries.CountPaidInvoiceShortfalls(ctx)
}
