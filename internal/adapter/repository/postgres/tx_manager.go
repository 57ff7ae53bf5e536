package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozgun/fincore/internal/infrastructure/postgres/generated"
	"github.com/ozgun/fincore/internal/usecase"
)

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager. Reconciliation and
// tax application rely on row locks taken inside these transactions, not
// on elevated isolation, so the pool's default read-committed level is
// what the engine expects.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx      pgx.Tx
	queries *generated.Queries
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Queries returns the generated query set bound to this transaction.
func (t *Tx) Queries() *generated.Queries {
	if t.queries == nil {
		t.queries = generated.New(t.tx)
	}
	return t.queries
}

// PgxTx returns the underlying pgx.Tx for statements outside the
// generated set.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
