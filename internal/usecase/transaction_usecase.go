package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/metrics"
)

// TransactionUseCase handles monetary transaction entry and the tax cascade.
type TransactionUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	taxUC           *TaxUseCase
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	taxUC *TaxUseCase,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		taxUC:           taxUC,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	Type         domain.TransactionType
	Amount       decimal.Decimal
	Currency     string
	ExchangeRate decimal.Decimal
	VATIncluded  bool
	Description  string
	// TaxIDs restricts the cascade to a subset of the active definitions.
	// Empty means all of them. The cascade always runs in definition order,
	// not in the order ids are listed here.
	TaxIDs []string
}

// CreateTransaction validates the event, runs the tax cascade in ascending
// definition order and persists the transaction with its line items and
// total in one database transaction. Either everything is written or
// nothing is.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:           uc.idGen.Generate(),
		Type:         input.Type,
		Amount:       input.Amount,
		Currency:     input.Currency,
		ExchangeRate: input.ExchangeRate,
		VATIncluded:  input.VATIncluded,
		Description:  input.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := txn.Validate(); err != nil {
		uc.countError("validation")
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.countError("validation")
		return nil, err
	}

	defs, err := uc.cascadeDefinitions(ctx, input.TaxIDs)
	if err != nil {
		uc.countError("cascade")
		return nil, err
	}

	for _, def := range defs {
		item, err := txn.ApplyTax(def)
		if err != nil {
			uc.countError("cascade")
			return nil, err
		}

		item.ID = uc.idGen.Generate()
		item.CreatedAt = now
	}

	txn.TotalAmount = txn.TotalAfterTax()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		uc.countError("persistence")
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   txn.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionTaxed,
		Payload: domain.MarshalPayload(domain.TransactionTaxedEvent{
			TransactionID: txn.ID,
			TaxCount:      len(txn.Taxes),
			TotalAmount:   txn.TotalAmount.String(),
			Currency:      txn.Currency,
		}),
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		uc.countError("persistence")
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		uc.countError("persistence")
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
		uc.metrics.TaxLinesApplied.Add(float64(len(txn.Taxes)))
		amount, _ := txn.Amount.Float64()
		uc.metrics.TransactionAmount.Observe(amount)
	}

	return txn, nil
}

func (uc *TransactionUseCase) countError(kind string) {
	if uc.metrics != nil {
		uc.metrics.TransactionErrors.WithLabelValues(kind).Inc()
	}
}

// cascadeDefinitions resolves the ordered definition list for one cascade
// run. The repository returns active definitions pre-sorted by Order.
func (uc *TransactionUseCase) cascadeDefinitions(ctx context.Context, taxIDs []string) ([]*domain.TaxDefinition, error) {
	defs, err := uc.taxUC.ListActiveTaxes(ctx)
	if err != nil {
		return nil, err
	}

	if len(taxIDs) == 0 {
		return defs, nil
	}

	wanted := make(map[string]bool, len(taxIDs))
	for _, id := range taxIDs {
		wanted[id] = true
	}

	selected := make([]*domain.TaxDefinition, 0, len(taxIDs))
	for _, def := range defs {
		if wanted[def.ID] {
			selected = append(selected, def)
			delete(wanted, def.ID)
		}
	}

	if len(wanted) != 0 {
		return nil, domain.ErrTaxNotFound
	}

	return selected, nil
}

// RemoveTaxLine detaches one line item from a stored transaction and
// re-derives the total from the surviving items. Amounts of dependent
// items are frozen; no recomputation pass runs on removal.
func (uc *TransactionUseCase) RemoveTaxLine(ctx context.Context, transactionID, lineItemID string) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	txn, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := txn.RemoveTax(lineItemID); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.DeleteTaxLine(ctx, tx, transactionID, lineItemID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn.UpdatedAt = now

	if err := uc.transactionRepo.UpdateTotal(ctx, tx, transactionID, txn.TotalAmount, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TaxLinesRemoved.Inc()
	}

	return txn, nil
}

// GetTransaction retrieves a transaction with its tax line items.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactions lists transactions with pagination.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.transactionRepo.List(ctx, limit, offset)
}
