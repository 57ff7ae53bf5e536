package handler

import (
	"context"
	"net/http"

	"github.com/ozgun/fincore/internal/adapter/http/dto"
	"github.com/ozgun/fincore/internal/usecase"
)

// ConsistencyService defines the behavior needed by ConsistencyHandler.
type ConsistencyService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// ConsistencyHandler exposes the stored-total audit.
type ConsistencyHandler struct {
	reconciliationUC ConsistencyService
}

// NewConsistencyHandler creates a new ConsistencyHandler.
func NewConsistencyHandler(reconciliationUC ConsistencyService) *ConsistencyHandler {
	return &ConsistencyHandler{reconciliationUC: reconciliationUC}
}

// Check runs the consistency audit and reports mismatch counts.
func (h *ConsistencyHandler) Check(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
