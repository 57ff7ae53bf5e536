package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount       = errors.New("amount must not be negative")
	ErrInvalidExchangeRate = errors.New("exchange rate must be positive")
	ErrInvalidPaymentState = errors.New("invalid payment status")

	// Configuration errors
	ErrTaxConfiguration     = errors.New("tax definition is misconfigured")
	ErrMissingCurrency      = errors.New("invoice currency is missing")
	ErrUnknownReferenceRate = errors.New("currency missing from reference rate table")

	// Not found errors
	ErrTaxNotFound         = errors.New("tax definition not found")
	ErrTaxLineNotFound     = errors.New("tax line item not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	// State errors
	ErrInvoiceCancelled = errors.New("invoice is cancelled")
	ErrPaymentNotLinked = errors.New("payment does not reference an invoice")
)
