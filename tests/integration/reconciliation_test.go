package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/adapter/repository/postgres"
	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/usecase"
	"github.com/ozgun/fincore/tests/testutil"
)

type reconciliationStack struct {
	reconciliationUC *usecase.ReconciliationUseCase
	paymentUC        *usecase.PaymentUseCase
	invoiceUC        *usecase.InvoiceUseCase
}

func newReconciliationStack(testDB *testutil.TestDB) reconciliationStack {
	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	consistencyRepo := postgres.NewConsistencyRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	reconciliationUC := usecase.NewReconciliationUseCase(txManager, invoiceRepo, paymentRepo, outboxRepo, consistencyRepo, idGen, retrier, nil)
	paymentUC := usecase.NewPaymentUseCase(txManager, paymentRepo, outboxRepo, reconciliationUC, idGen, retrier, nil)
	invoiceUC := usecase.NewInvoiceUseCase(txManager, invoiceRepo, paymentRepo, outboxRepo, idGen, nil)

	return reconciliationStack{
		reconciliationUC: reconciliationUC,
		paymentUC:        paymentUC,
		invoiceUC:        invoiceUC,
	}
}

func TestPaymentDrivesInvoiceToPaid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newReconciliationStack(testDB)

	invoice := testDB.CreateTestInvoice(ctx, "FAT-001", decimal.NewFromInt(1000), decimal.NewFromInt(200), "TRY", domain.InvoiceStatusIssued)

	_, err := stack.paymentUC.CreatePayment(ctx, usecase.CreatePaymentInput{
		InvoiceID:    &invoice.ID,
		Amount:       decimal.NewFromInt(1200),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
		Status:       domain.PaymentStatusCompleted,
	})
	if err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	result, err := stack.invoiceUC.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("failed to reload invoice: %v", err)
	}

	if result.Invoice.Status != domain.InvoiceStatusPaid {
		t.Fatalf("expected invoice paid, got %s", result.Invoice.Status)
	}
	if len(result.Payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(result.Payments))
	}
}

func TestCrossCurrencyPaymentConversion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newReconciliationStack(testDB)

	// USD invoice settled in TRY: 34000 TRY at rate 34 covers the 1000 USD total.
	invoice := testDB.CreateTestInvoice(ctx, "FAT-002", decimal.NewFromInt(1000), decimal.Zero, "USD", domain.InvoiceStatusIssued)
	testDB.CreateTestPayment(ctx, invoice.ID, decimal.NewFromInt(34000), "TRY", decimal.NewFromInt(34), domain.PaymentStatusCompleted)

	result, err := stack.reconciliationUC.Reconcile(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	if result.Status != domain.InvoiceStatusPaid {
		t.Fatalf("expected paid, got %s", result.Status)
	}
	if !result.TotalPaid.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected converted total 1000, got %s", result.TotalPaid)
	}
}

func TestDeletePaymentDemotesInvoice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newReconciliationStack(testDB)

	invoice := testDB.CreateTestInvoice(ctx, "FAT-003", decimal.NewFromInt(500), decimal.Zero, "TRY", domain.InvoiceStatusIssued)

	payment, err := stack.paymentUC.CreatePayment(ctx, usecase.CreatePaymentInput{
		InvoiceID:    &invoice.ID,
		Amount:       decimal.NewFromInt(500),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
		Status:       domain.PaymentStatusCompleted,
	})
	if err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	result, err := stack.invoiceUC.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("failed to reload invoice: %v", err)
	}
	if result.Invoice.Status != domain.InvoiceStatusPaid {
		t.Fatalf("expected paid before delete, got %s", result.Invoice.Status)
	}

	if err := stack.paymentUC.DeletePayment(ctx, payment.ID); err != nil {
		t.Fatalf("failed to delete payment: %v", err)
	}

	result, err = stack.invoiceUC.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("failed to reload invoice: %v", err)
	}
	if result.Invoice.Status != domain.InvoiceStatusIssued {
		t.Fatalf("expected demotion to issued, got %s", result.Invoice.Status)
	}
}

func TestCancelledInvoiceStaysCancelled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newReconciliationStack(testDB)

	invoice := testDB.CreateTestInvoice(ctx, "FAT-004", decimal.NewFromInt(100), decimal.Zero, "TRY", domain.InvoiceStatusCancelled)
	testDB.CreateTestPayment(ctx, invoice.ID, decimal.NewFromInt(100), "TRY", decimal.NewFromInt(1), domain.PaymentStatusCompleted)

	result, err := stack.reconciliationUC.Reconcile(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	if result.Status != domain.InvoiceStatusCancelled {
		t.Fatalf("expected cancelled to be terminal, got %s", result.Status)
	}
}
