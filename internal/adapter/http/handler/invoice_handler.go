package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ozgun/fincore/internal/adapter/http/dto"
	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/usecase"
)

// InvoiceService defines the behavior needed by InvoiceHandler.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*usecase.InvoiceWithPayments, error)
	ListInvoices(ctx context.Context, limit, offset int) ([]*domain.Invoice, error)
	CancelInvoice(ctx context.Context, id string) (*domain.Invoice, error)
}

// ReconciliationService defines the reconciliation behavior needed by InvoiceHandler.
type ReconciliationService interface {
	Reconcile(ctx context.Context, invoiceID string) (*usecase.ReconciliationResult, error)
}

// InvoiceHandler handles invoice HTTP requests.
type InvoiceHandler struct {
	invoiceUC      InvoiceService
	reconciliation ReconciliationService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceUC InvoiceService, reconciliation ReconciliationService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUC:      invoiceUC,
		reconciliation: reconciliation,
	}
}

// Create creates a new invoice in draft status.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	invoice, err := h.invoiceUC.CreateInvoice(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create invoice", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvoiceFromDomain(invoice))
}

// Get retrieves an invoice together with its payments.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	result, err := h.invoiceUC.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get invoice", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceWithPaymentsResponse{
		Invoice:  dto.InvoiceFromDomain(result.Invoice),
		Payments: dto.PaymentsFromDomain(result.Payments),
	})
}

// List lists invoices.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	invoices, err := h.invoiceUC.ListInvoices(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list invoices", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListInvoicesResponse{
		Invoices: dto.InvoicesFromDomain(invoices),
		Total:    int64(len(invoices)),
	})
}

// Cancel cancels an invoice. Cancelled invoices are terminal and no
// longer move during reconciliation.
func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	invoice, err := h.invoiceUC.CancelInvoice(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to cancel invoice", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Reconcile recomputes the invoice's paid total and derives its status.
func (h *InvoiceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	result, err := h.reconciliation.Reconcile(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile invoice", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}
