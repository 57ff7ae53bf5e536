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

// TaxService defines the behavior needed by TaxHandler.
type TaxService interface {
	CreateTax(ctx context.Context, input usecase.CreateTaxInput) (*domain.TaxDefinition, error)
	UpdateTax(ctx context.Context, id string, input usecase.UpdateTaxInput) (*domain.TaxDefinition, error)
	DeactivateTax(ctx context.Context, id string) error
	GetTax(ctx context.Context, id string) (*domain.TaxDefinition, error)
	ListTaxes(ctx context.Context, limit, offset int) ([]*domain.TaxDefinition, error)
	ListActiveTaxes(ctx context.Context) ([]*domain.TaxDefinition, error)
}

// TaxHandler handles tax definition HTTP requests.
type TaxHandler struct {
	taxUC TaxService
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(taxUC TaxService) *TaxHandler {
	return &TaxHandler{taxUC: taxUC}
}

// Create creates a new tax definition.
func (h *TaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tax, err := h.taxUC.CreateTax(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create tax", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TaxFromDomain(tax))
}

// Update rewrites a tax definition.
func (h *TaxHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tax ID", "")
		return
	}

	var req dto.UpdateTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tax, err := h.taxUC.UpdateTax(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update tax", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TaxFromDomain(tax))
}

// Deactivate soft-deletes a tax definition.
func (h *TaxHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tax ID", "")
		return
	}

	if err := h.taxUC.DeactivateTax(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to deactivate tax", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a tax definition by ID.
func (h *TaxHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tax ID", "")
		return
	}

	tax, err := h.taxUC.GetTax(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get tax", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TaxFromDomain(tax))
}

// List lists tax definitions. With active=true only active definitions
// are returned, in cascade order.
func (h *TaxHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("active") == "true" {
		taxes, err := h.taxUC.ListActiveTaxes(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list active taxes", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, dto.ListTaxesResponse{
			Taxes: dto.TaxesFromDomain(taxes),
			Total: int64(len(taxes)),
		})

		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	taxes, err := h.taxUC.ListTaxes(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list taxes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTaxesResponse{
		Taxes: dto.TaxesFromDomain(taxes),
		Total: int64(len(taxes)),
	})
}
