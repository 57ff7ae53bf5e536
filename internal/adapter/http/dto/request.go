package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/usecase"
)

// CreateTaxRequest represents a request to create a tax definition.
type CreateTaxRequest struct {
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Rate            decimal.Decimal `json:"rate"`
	CalculationType string          `json:"calculation_type"`
	BaseType        string          `json:"base_type"`
	Order           int32           `json:"order"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTaxRequest) ToUseCaseInput() usecase.CreateTaxInput {
	return usecase.CreateTaxInput{
		Name:            r.Name,
		Code:            r.Code,
		Rate:            r.Rate,
		CalculationType: domain.TaxCalculationType(r.CalculationType),
		BaseType:        domain.TaxBaseType(r.BaseType),
		Order:           r.Order,
	}
}

// UpdateTaxRequest represents a request to update a tax definition.
type UpdateTaxRequest struct {
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Rate            decimal.Decimal `json:"rate"`
	CalculationType string          `json:"calculation_type"`
	BaseType        string          `json:"base_type"`
	Order           int32           `json:"order"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTaxRequest) ToUseCaseInput() usecase.UpdateTaxInput {
	return usecase.UpdateTaxInput{
		Name:            r.Name,
		Code:            r.Code,
		Rate:            r.Rate,
		CalculationType: domain.TaxCalculationType(r.CalculationType),
		BaseType:        domain.TaxBaseType(r.BaseType),
		Order:           r.Order,
	}
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	VATIncluded  bool            `json:"vat_included"`
	Description  string          `json:"description,omitempty"`
	TaxIDs       []string        `json:"tax_ids,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		Type:         domain.TransactionType(r.Type),
		Amount:       r.Amount,
		Currency:     r.Currency,
		ExchangeRate: r.ExchangeRate,
		VATIncluded:  r.VATIncluded,
		Description:  r.Description,
		TaxIDs:       r.TaxIDs,
	}
}

// CreateInvoiceRequest represents a request to create an invoice.
type CreateInvoiceRequest struct {
	Number    string          `json:"number"`
	Amount    decimal.Decimal `json:"amount"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	Currency  string          `json:"currency"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	IssuedAt  *time.Time      `json:"issued_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvoiceRequest) ToUseCaseInput() usecase.CreateInvoiceInput {
	return usecase.CreateInvoiceInput{
		Number:    r.Number,
		Amount:    r.Amount,
		VATAmount: r.VATAmount,
		Currency:  r.Currency,
		DueDate:   r.DueDate,
		IssuedAt:  r.IssuedAt,
	}
}

// CreatePaymentRequest represents a request to record a payment.
type CreatePaymentRequest struct {
	InvoiceID    *string         `json:"invoice_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Status       string          `json:"status,omitempty"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput() usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		InvoiceID:    r.InvoiceID,
		Amount:       r.Amount,
		Currency:     r.Currency,
		ExchangeRate: r.ExchangeRate,
		Status:       domain.PaymentStatus(r.Status),
		PaidAt:       r.PaidAt,
	}
}

// UpdatePaymentRequest represents a request to rewrite a payment.
type UpdatePaymentRequest struct {
	InvoiceID    *string         `json:"invoice_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Status       string          `json:"status"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePaymentRequest) ToUseCaseInput() usecase.UpdatePaymentInput {
	return usecase.UpdatePaymentInput{
		InvoiceID:    r.InvoiceID,
		Amount:       r.Amount,
		Currency:     r.Currency,
		ExchangeRate: r.ExchangeRate,
		Status:       domain.PaymentStatus(r.Status),
		PaidAt:       r.PaidAt,
	}
}

// ConvertRequest represents a conversion preview request.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Rate   decimal.Decimal `json:"rate"`
}

// ToUseCaseInput converts to use case input.
func (r *ConvertRequest) ToUseCaseInput() usecase.ConvertInput {
	return usecase.ConvertInput{
		Amount: r.Amount,
		From:   r.From,
		To:     r.To,
		Rate:   r.Rate,
	}
}
