package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the processing state of a payment. Only completed
// payments count toward invoice reconciliation.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment is an independently owned record that may reference an invoice.
type Payment struct {
	ID           string
	InvoiceID    *string
	Amount       decimal.Decimal
	Currency     string
	ExchangeRate decimal.Decimal
	Status       PaymentStatus
	PaidAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates a payment record.
func (p *Payment) Validate() error {
	if p.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if err := ValidateCurrency(p.Currency); err != nil {
		return err
	}

	switch p.Status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPaymentState, p.Status)
	}
}

// Counted reports whether this payment contributes to its invoice's paid
// total.
func (p *Payment) Counted() bool {
	return p.Status == PaymentStatusCompleted
}

// AmountIn converts the payment amount into the given currency using the
// rate captured on the payment. Payments recorded without a rate convert
// at 1, which is only exact when the currencies already match.
func (p *Payment) AmountIn(currency string) (decimal.Decimal, error) {
	rate := p.ExchangeRate
	if rate.IsZero() {
		rate = decimal.New(1, 0)
	}

	return Convert(p.Amount, p.Currency, currency, rate)
}
