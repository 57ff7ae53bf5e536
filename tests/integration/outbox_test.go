package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/adapter/repository/postgres"
	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/usecase"
	"github.com/ozgun/fincore/tests/testutil"
)

func TestOutboxEventCreation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newReconciliationStack(testDB)
	outboxRepo := postgres.NewOutboxRepository(testDB.Pool)

	invoice := testDB.CreateTestInvoice(ctx, "FAT-OUT", decimal.NewFromInt(100), decimal.Zero, "TRY", domain.InvoiceStatusIssued)

	payment, err := stack.paymentUC.CreatePayment(ctx, usecase.CreatePaymentInput{
		InvoiceID:    &invoice.ID,
		Amount:       decimal.NewFromInt(100),
		Currency:     "TRY",
		ExchangeRate: decimal.NewFromInt(1),
		Status:       domain.PaymentStatusCompleted,
	})
	if err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	events, err := outboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}

	var paymentEvent, statusEvent *domain.OutboxEvent
	for _, event := range events {
		switch {
		case event.EventType == domain.EventTypePaymentRecorded && event.AggregateID == payment.ID:
			paymentEvent = event
		case event.EventType == domain.EventTypeInvoiceStatusChanged && event.AggregateID == invoice.ID:
			statusEvent = event
		}
	}

	if paymentEvent == nil {
		t.Fatal("payment recorded event not found in outbox")
	}
	if statusEvent == nil {
		t.Fatal("invoice status changed event not found in outbox")
	}
	if paymentEvent.Published {
		t.Fatal("expected payment event to start unpublished")
	}

	// Mark and sweep.
	if err := outboxRepo.MarkPublished(ctx, paymentEvent.ID, time.Now().UTC()); err != nil {
		t.Fatalf("failed to mark event published: %v", err)
	}

	remaining, err := outboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}
	for _, event := range remaining {
		if event.ID == paymentEvent.ID {
			t.Fatal("published event still listed as unpublished")
		}
	}

	if err := outboxRepo.DeletePublished(ctx, time.Now().UTC().Add(time.Minute)); err != nil {
		t.Fatalf("failed to delete published events: %v", err)
	}
}
