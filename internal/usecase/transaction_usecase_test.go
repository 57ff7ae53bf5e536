package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/metrics"
	"github.com/ozgun/fincore/internal/usecase"
	"github.com/ozgun/fincore/internal/usecase/mocks"
)

type transactionFixture struct {
	taxRepo         *mocks.MockTaxRepository
	transactionRepo *mocks.MockTransactionRepository
	outboxRepo      *mocks.MockOutboxRepository
	uc              *usecase.TransactionUseCase
}

func newTransactionFixture() *transactionFixture {
	taxRepo := mocks.NewMockTaxRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()

	taxUC := usecase.NewTaxUseCase(taxRepo, nil, idGen, nil)

	return &transactionFixture{
		taxRepo:         taxRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		uc:              usecase.NewTransactionUseCase(mocks.NewMockTransactionManager(), transactionRepo, taxUC, outboxRepo, idGen, nil),
	}
}

func (f *transactionFixture) seedTax(id, name string, rate int64, baseType domain.TaxBaseType, order int32) {
	f.taxRepo.Create(context.Background(), &domain.TaxDefinition{
		ID:              id,
		Name:            name,
		Rate:            decimal.NewFromInt(rate),
		CalculationType: domain.TaxCalculationPercentage,
		BaseType:        baseType,
		IsActive:        true,
		Order:           order,
	})
}

func TestTransactionUseCase_CreateTransaction_Cascade(t *testing.T) {
	f := newTransactionFixture()
	f.seedTax("tax-kdv", "KDV %20", 20, domain.TaxBaseAmount, 1)
	f.seedTax("tax-otv", "OTV", 10, domain.TaxBaseTotal, 2)

	txn, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(100),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(txn.Taxes) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(txn.Taxes))
	}

	// KDV on the base amount, then OTV on the running total of 120.
	if txn.Taxes[0].Amount.String() != "20" {
		t.Errorf("expected KDV of 20, got %s", txn.Taxes[0].Amount)
	}
	if txn.Taxes[1].Amount.String() != "12" {
		t.Errorf("expected OTV of 12, got %s", txn.Taxes[1].Amount)
	}
	if txn.TotalAmount.String() != "132" {
		t.Errorf("expected total of 132, got %s", txn.TotalAmount)
	}

	for _, item := range txn.Taxes {
		if item.ID == "" {
			t.Error("expected line item ids to be assigned")
		}
	}

	types := f.outboxRepo.EventTypes()
	if len(types) != 1 || types[0] != domain.EventTypeTransactionTaxed {
		t.Errorf("unexpected event sequence: %v", types)
	}

	stored, err := f.transactionRepo.GetByID(context.Background(), txn.ID)
	if err != nil {
		t.Fatalf("expected transaction to be persisted: %v", err)
	}
	if !stored.TotalAmount.Equal(txn.TotalAmount) {
		t.Errorf("expected stored total %s, got %s", txn.TotalAmount, stored.TotalAmount)
	}
}

func TestTransactionUseCase_CreateTransaction_InclusiveVAT(t *testing.T) {
	f := newTransactionFixture()
	f.seedTax("tax-kdv", "KDV %20", 20, domain.TaxBaseAmount, 1)

	txn, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeExpense,
		Amount:       decimal.NewFromInt(120),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
		VATIncluded:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 120 gross at 20% contains 20 of KDV; the total stays the gross.
	if txn.Taxes[0].Amount.String() != "20" {
		t.Errorf("expected extracted KDV of 20, got %s", txn.Taxes[0].Amount)
	}
	if txn.TotalAmount.String() != "120" {
		t.Errorf("expected total of 120, got %s", txn.TotalAmount)
	}
}

func TestTransactionUseCase_CreateTransaction_TaxSubset(t *testing.T) {
	f := newTransactionFixture()
	f.seedTax("tax-kdv", "KDV %20", 20, domain.TaxBaseAmount, 1)
	f.seedTax("tax-otv", "OTV", 10, domain.TaxBaseTotal, 2)
	f.seedTax("tax-stopaj", "Stopaj", 5, domain.TaxBaseAmount, 3)

	// Ids listed out of order; the cascade still runs in definition order.
	txn, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(100),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
		TaxIDs:       []string{"tax-stopaj", "tax-kdv"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(txn.Taxes) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(txn.Taxes))
	}
	if txn.Taxes[0].TaxID != "tax-kdv" || txn.Taxes[1].TaxID != "tax-stopaj" {
		t.Errorf("expected definition order kdv then stopaj, got %s then %s", txn.Taxes[0].TaxID, txn.Taxes[1].TaxID)
	}
}

func TestTransactionUseCase_CreateTransaction_UnknownTax(t *testing.T) {
	f := newTransactionFixture()
	f.seedTax("tax-kdv", "KDV %20", 20, domain.TaxBaseAmount, 1)

	_, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(100),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
		TaxIDs:       []string{"tax-kdv", "tax-missing"},
	})
	if !errors.Is(err, domain.ErrTaxNotFound) {
		t.Errorf("expected ErrTaxNotFound, got %v", err)
	}
}

func TestTransactionUseCase_CreateTransaction_DegenerateRate(t *testing.T) {
	f := newTransactionFixture()
	f.taxRepo.Create(context.Background(), &domain.TaxDefinition{
		ID:              "tax-neg",
		Name:            "KDV",
		Rate:            decimal.NewFromInt(-100),
		CalculationType: domain.TaxCalculationPercentage,
		BaseType:        domain.TaxBaseAmount,
		IsActive:        true,
	})

	_, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(100),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
		VATIncluded:  true,
	})
	if !errors.Is(err, domain.ErrTaxConfiguration) {
		t.Errorf("expected ErrTaxConfiguration, got %v", err)
	}
}

func TestTransactionUseCase_CreateTransaction_Validation(t *testing.T) {
	f := newTransactionFixture()

	_, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(-10),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestTransactionUseCase_RemoveTaxLine(t *testing.T) {
	f := newTransactionFixture()
	f.seedTax("tax-kdv", "KDV %20", 20, domain.TaxBaseAmount, 1)
	f.seedTax("tax-otv", "OTV", 10, domain.TaxBaseTotal, 2)

	txn, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(100),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Removing the KDV line does not recompute OTV; its amount is frozen.
	updated, err := f.uc.RemoveTaxLine(context.Background(), txn.ID, txn.Taxes[0].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Taxes) != 1 {
		t.Fatalf("expected 1 surviving line item, got %d", len(updated.Taxes))
	}
	if updated.Taxes[0].Amount.String() != "12" {
		t.Errorf("expected frozen OTV of 12, got %s", updated.Taxes[0].Amount)
	}
	if updated.TotalAmount.String() != "112" {
		t.Errorf("expected total of 112, got %s", updated.TotalAmount)
	}
}

func TestTransactionUseCase_RemoveTaxLine_Errors(t *testing.T) {
	f := newTransactionFixture()
	f.seedTax("tax-kdv", "KDV %20", 20, domain.TaxBaseAmount, 1)

	txn, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(100),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.uc.RemoveTaxLine(context.Background(), txn.ID, "line-missing"); !errors.Is(err, domain.ErrTaxLineNotFound) {
		t.Errorf("expected ErrTaxLineNotFound, got %v", err)
	}

	if _, err := f.uc.RemoveTaxLine(context.Background(), "txn-missing", "line-1"); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionUseCase_RecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := metrics.New()

	taxRepo := mocks.NewMockTaxRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	idGen := mocks.NewMockIDGenerator()
	taxUC := usecase.NewTaxUseCase(taxRepo, nil, idGen, m)
	uc := usecase.NewTransactionUseCase(mocks.NewMockTransactionManager(), transactionRepo, taxUC, mocks.NewMockOutboxRepository(), idGen, m)

	taxRepo.Create(context.Background(), &domain.TaxDefinition{
		ID:              "tax-kdv",
		Name:            "KDV %20",
		Rate:            decimal.NewFromInt(20),
		CalculationType: domain.TaxCalculationPercentage,
		BaseType:        domain.TaxBaseAmount,
		IsActive:        true,
		Order:           1,
	})

	txn, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(100),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.TransactionsCreated); got != 1 {
		t.Errorf("expected 1 transaction created, got %v", got)
	}
	if got := testutil.ToFloat64(m.TaxLinesApplied); got != 1 {
		t.Errorf("expected 1 tax line applied, got %v", got)
	}

	if _, err := uc.RemoveTaxLine(context.Background(), txn.ID, txn.Taxes[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.TaxLinesRemoved); got != 1 {
		t.Errorf("expected 1 tax line removed, got %v", got)
	}

	if _, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Type:         domain.TransactionTypeIncome,
		Amount:       decimal.NewFromInt(-5),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
	}); err == nil {
		t.Fatal("expected validation error")
	}

	if got := testutil.ToFloat64(m.TransactionErrors.WithLabelValues("validation")); got != 1 {
		t.Errorf("expected 1 validation error counted, got %v", got)
	}
}
