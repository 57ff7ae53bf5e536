package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/adapter/http/dto"
	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/usecase"
)

type invoiceServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error)
	getFn    func(ctx context.Context, id string) (*usecase.InvoiceWithPayments, error)
	listFn   func(ctx context.Context, limit, offset int) ([]*domain.Invoice, error)
	cancelFn func(ctx context.Context, id string) (*domain.Invoice, error)
}

func (s *invoiceServiceStub) CreateInvoice(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error) {
	return s.createFn(ctx, input)
}

func (s *invoiceServiceStub) GetInvoice(ctx context.Context, id string) (*usecase.InvoiceWithPayments, error) {
	return s.getFn(ctx, id)
}

func (s *invoiceServiceStub) ListInvoices(ctx context.Context, limit, offset int) ([]*domain.Invoice, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *invoiceServiceStub) CancelInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.cancelFn(ctx, id)
}

type reconciliationServiceStub struct {
	reconcileFn func(ctx context.Context, invoiceID string) (*usecase.ReconciliationResult, error)
}

func (s *reconciliationServiceStub) Reconcile(ctx context.Context, invoiceID string) (*usecase.ReconciliationResult, error) {
	return s.reconcileFn(ctx, invoiceID)
}

func TestInvoiceHandler_Create_Success(t *testing.T) {
	invoice := &domain.Invoice{
		ID:          "inv-1",
		Number:      "FAT-2026-001",
		Amount:      decimal.NewFromInt(1000),
		VATAmount:   decimal.NewFromInt(200),
		TotalAmount: decimal.NewFromInt(1200),
		Currency:    "TRY",
		Status:      domain.InvoiceStatusDraft,
	}

	handler := NewInvoiceHandler(&invoiceServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error) {
			return invoice, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateInvoiceRequest{
		Number:    "FAT-2026-001",
		Amount:    decimal.NewFromInt(1000),
		VATAmount: decimal.NewFromInt(200),
		Currency:  "TRY",
	})

	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.InvoiceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "draft" {
		t.Fatalf("expected fresh invoice in draft, got %s", resp.Status)
	}
	if !resp.TotalAmount.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected total 1200, got %s", resp.TotalAmount)
	}
}

func TestInvoiceHandler_Create_MissingCurrency(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error) {
			return nil, domain.ErrMissingCurrency
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateInvoiceRequest{Number: "FAT-2026-002", Amount: decimal.NewFromInt(100)})
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInvoiceHandler_Get_WithPayments(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		getFn: func(ctx context.Context, id string) (*usecase.InvoiceWithPayments, error) {
			if id != "inv-1" {
				t.Fatalf("expected id inv-1, got %s", id)
			}
			return &usecase.InvoiceWithPayments{
				Invoice:  &domain.Invoice{ID: "inv-1", Status: domain.InvoiceStatusPaid},
				Payments: []*domain.Payment{{ID: "pay-1"}, {ID: "pay-2"}},
			}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices/inv-1", nil)
	req = setChiURLParam(req, "id", "inv-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.InvoiceWithPaymentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(resp.Payments))
	}
}

func TestInvoiceHandler_Get_NotFound(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		getFn: func(ctx context.Context, id string) (*usecase.InvoiceWithPayments, error) {
			return nil, domain.ErrInvoiceNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices/inv-404", nil)
	req = setChiURLParam(req, "id", "inv-404")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestInvoiceHandler_Cancel_AlreadyCancelled(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		cancelFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return nil, domain.ErrInvoiceCancelled
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/invoices/inv-1/cancel", nil)
	req = setChiURLParam(req, "id", "inv-1")
	rec := httptest.NewRecorder()

	handler.Cancel(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestInvoiceHandler_Reconcile(t *testing.T) {
	now := time.Now().UTC()
	handler := NewInvoiceHandler(&invoiceServiceStub{}, &reconciliationServiceStub{
		reconcileFn: func(ctx context.Context, invoiceID string) (*usecase.ReconciliationResult, error) {
			if invoiceID != "inv-1" {
				t.Fatalf("expected invoice inv-1, got %s", invoiceID)
			}
			return &usecase.ReconciliationResult{
				InvoiceID:      "inv-1",
				TotalPaid:      decimal.NewFromInt(1200),
				PreviousStatus: domain.InvoiceStatusIssued,
				Status:         domain.InvoiceStatusPaid,
				ReconciledAt:   now,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/invoices/inv-1/reconcile", nil)
	req = setChiURLParam(req, "id", "inv-1")
	rec := httptest.NewRecorder()

	handler.Reconcile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ReconciliationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "paid" || resp.PreviousStatus != "issued" {
		t.Fatalf("expected issued -> paid, got %s -> %s", resp.PreviousStatus, resp.Status)
	}
}

func TestInvoiceHandler_List(t *testing.T) {
	handler := NewInvoiceHandler(&invoiceServiceStub{
		listFn: func(ctx context.Context, limit, offset int) ([]*domain.Invoice, error) {
			return []*domain.Invoice{{ID: "inv-1"}, {ID: "inv-2"}}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListInvoicesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(resp.Invoices))
	}
}
