package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/adapter/http/dto"
	"github.com/ozgun/fincore/internal/usecase"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	FallbackRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	Convert(ctx context.Context, input usecase.ConvertInput) (decimal.Decimal, error)
}

// RateHandler handles exchange rate HTTP requests.
type RateHandler struct {
	rateUC RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC RateService) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// Fallback derives a rate for a currency pair from the reference table.
func (h *RateHandler) Fallback(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "missing currency pair", "from and to query parameters are required")
		return
	}

	rate, err := h.rateUC.FallbackRate(r.Context(), from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to derive rate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RateResponse{
		From: strings.ToUpper(strings.TrimSpace(from)),
		To:   strings.ToUpper(strings.TrimSpace(to)),
		Rate: rate,
	})
}

// Convert previews a currency conversion at an explicit rate.
func (h *RateHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req dto.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	converted, err := h.rateUC.Convert(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to convert", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConvertResponse{
		Amount:    req.Amount,
		From:      req.From,
		To:        req.To,
		Rate:      req.Rate,
		Converted: converted,
	})
}
