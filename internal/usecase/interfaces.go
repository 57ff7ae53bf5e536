package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
)

// TaxRepository defines data access for tax definitions.
type TaxRepository interface {
	Create(ctx context.Context, def *domain.TaxDefinition) error
	Update(ctx context.Context, def *domain.TaxDefinition) error
	GetByID(ctx context.Context, id string) (*domain.TaxDefinition, error)
	// ListActive returns active definitions pre-sorted by ascending Order,
	// the sequence the cascade applies them in.
	ListActive(ctx context.Context) ([]*domain.TaxDefinition, error)
	List(ctx context.Context, limit, offset int) ([]*domain.TaxDefinition, error)
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
}

// TransactionRepository defines data access for monetary transactions and
// their tax line items. Create persists the transaction, its line items and
// its total together; partial writes are not possible.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error)
	DeleteTaxLine(ctx context.Context, tx Transaction, transactionID, lineItemID string) error
	UpdateTotal(ctx context.Context, tx Transaction, id string, total decimal.Decimal, updatedAt time.Time) error
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.InvoiceStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Invoice, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Payment, error)
	Update(ctx context.Context, tx Transaction, payment *domain.Payment) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*domain.Payment, error)
	// ListByInvoiceTx reads the invoice's payments inside the reconciling
	// transaction, after the invoice row is locked, so the list is current.
	ListByInvoiceTx(ctx context.Context, tx Transaction, invoiceID string) ([]*domain.Payment, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// ConsistencyRepository defines ledger-wide audit queries.
type ConsistencyRepository interface {
	// CountTransactionTotalMismatches counts transactions whose stored total
	// disagrees with their amount and line items.
	CountTransactionTotalMismatches(ctx context.Context) (int64, error)
	// CountPaidInvoiceShortfalls counts paid invoices whose completed
	// payments no longer reach the tolerance threshold.
	CountPaidInvoiceShortfalls(ctx context.Context) (int64, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Retrier retries an operation that failed with a transient error, such as
// a serialization failure on two concurrent reconciliations of one invoice.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// ReferenceRateProvider supplies the reference table of TRY values used to
// derive fallback cross rates. Implementations may be static, remote or
// cached; the engine never consults an ambient global.
type ReferenceRateProvider interface {
	Rates(ctx context.Context) (domain.RateTable, error)
}
