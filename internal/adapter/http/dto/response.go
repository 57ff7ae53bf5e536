package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/usecase"
)

// TaxResponse represents a tax definition in API responses.
type TaxResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Rate            decimal.Decimal `json:"rate"`
	CalculationType string          `json:"calculation_type"`
	BaseType        string          `json:"base_type"`
	IsActive        bool            `json:"is_active"`
	Order           int32           `json:"order"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TaxFromDomain converts a domain tax definition to a response.
func TaxFromDomain(d *domain.TaxDefinition) *TaxResponse {
	return &TaxResponse{
		ID:              d.ID,
		Name:            d.Name,
		Code:            d.Code,
		Rate:            d.Rate,
		CalculationType: string(d.CalculationType),
		BaseType:        string(d.BaseType),
		IsActive:        d.IsActive,
		Order:           d.Order,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// TaxesFromDomain converts domain tax definitions to responses.
func TaxesFromDomain(defs []*domain.TaxDefinition) []*TaxResponse {
	result := make([]*TaxResponse, len(defs))
	for i, d := range defs {
		result[i] = TaxFromDomain(d)
	}
	return result
}

// ListTaxesResponse wraps a tax definition list.
type ListTaxesResponse struct {
	Taxes []*TaxResponse `json:"taxes"`
	Total int64          `json:"total"`
}

// TaxLineItemResponse represents an applied tax line item.
type TaxLineItemResponse struct {
	ID              string          `json:"id"`
	TaxID           string          `json:"tax_id"`
	Name            string          `json:"name"`
	Rate            decimal.Decimal `json:"rate"`
	CalculationType string          `json:"calculation_type"`
	BaseType        string          `json:"base_type"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID           string                 `json:"id"`
	Type         string                 `json:"type"`
	Amount       decimal.Decimal        `json:"amount"`
	Currency     string                 `json:"currency"`
	ExchangeRate decimal.Decimal        `json:"exchange_rate"`
	VATIncluded  bool                   `json:"vat_included"`
	Taxes        []*TaxLineItemResponse `json:"taxes"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	Description  string                 `json:"description,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	taxes := make([]*TaxLineItemResponse, len(t.Taxes))
	for i := range t.Taxes {
		item := &t.Taxes[i]
		taxes[i] = &TaxLineItemResponse{
			ID:              item.ID,
			TaxID:           item.TaxID,
			Name:            item.Name,
			Rate:            item.Rate,
			CalculationType: string(item.CalculationType),
			BaseType:        string(item.BaseType),
			Amount:          item.Amount,
			CreatedAt:       item.CreatedAt,
		}
	}

	return &TransactionResponse{
		ID:           t.ID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		Currency:     t.Currency,
		ExchangeRate: t.ExchangeRate,
		VATIncluded:  t.VATIncluded,
		Taxes:        taxes,
		TotalAmount:  t.TotalAmount,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction list.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Amount      decimal.Decimal `json:"amount"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	IssuedAt    *time.Time      `json:"issued_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InvoiceFromDomain converts a domain invoice to a response.
func InvoiceFromDomain(i *domain.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          i.ID,
		Number:      i.Number,
		Amount:      i.Amount,
		VATAmount:   i.VATAmount,
		TotalAmount: i.TotalAmount,
		Currency:    i.Currency,
		Status:      string(i.Status),
		DueDate:     i.DueDate,
		IssuedAt:    i.IssuedAt,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// InvoicesFromDomain converts domain invoices to responses.
func InvoicesFromDomain(invoices []*domain.Invoice) []*InvoiceResponse {
	result := make([]*InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		result[i] = InvoiceFromDomain(inv)
	}
	return result
}

// ListInvoicesResponse wraps an invoice list.
type ListInvoicesResponse struct {
	Invoices []*InvoiceResponse `json:"invoices"`
	Total    int64              `json:"total"`
}

// InvoiceWithPaymentsResponse pairs an invoice with its payments.
type InvoiceWithPaymentsResponse struct {
	Invoice  *InvoiceResponse   `json:"invoice"`
	Payments []*PaymentResponse `json:"payments"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID           string          `json:"id"`
	InvoiceID    *string         `json:"invoice_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Status       string          `json:"status"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:           p.ID,
		InvoiceID:    p.InvoiceID,
		Amount:       p.Amount,
		Currency:     p.Currency,
		ExchangeRate: p.ExchangeRate,
		Status:       string(p.Status),
		PaidAt:       p.PaidAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// ReconciliationResponse represents one reconciliation pass.
type ReconciliationResponse struct {
	InvoiceID      string          `json:"invoice_id"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	PreviousStatus string          `json:"previous_status"`
	Status         string          `json:"status"`
	ReconciledAt   time.Time       `json:"reconciled_at"`
}

// ReconciliationFromResult converts a use case result to a response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		InvoiceID:      r.InvoiceID,
		TotalPaid:      r.TotalPaid,
		PreviousStatus: string(r.PreviousStatus),
		Status:         string(r.Status),
		ReconciledAt:   r.ReconciledAt,
	}
}

// ConsistencyResponse represents the ledger-wide audit report.
type ConsistencyResponse struct {
	TransactionTotalMismatches int64     `json:"transaction_total_mismatches"`
	PaidInvoiceShortfalls      int64     `json:"paid_invoice_shortfalls"`
	Consistent                 bool      `json:"consistent"`
	CheckedAt                  time.Time `json:"checked_at"`
}

// ConsistencyFromReport converts a use case report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		TransactionTotalMismatches: r.TransactionTotalMismatches,
		PaidInvoiceShortfalls:      r.PaidInvoiceShortfalls,
		Consistent:                 r.Consistent,
		CheckedAt:                  r.CheckedAt,
	}
}

// RateResponse represents a derived fallback rate.
type RateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// ConvertResponse represents a conversion preview.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Converted decimal.Decimal `json:"converted"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
