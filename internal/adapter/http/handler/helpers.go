package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ozgun/fincore/internal/adapter/http/dto"
	"github.com/ozgun/fincore/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTaxNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTaxLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCurrency):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidExchangeRate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidPaymentState):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTaxConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingCurrency):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownReferenceRate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvoiceCancelled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPaymentNotLinked):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
