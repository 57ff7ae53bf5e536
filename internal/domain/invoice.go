package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice. Every status except
// cancelled is derived from the invoice's payments; cancelled is terminal
// and set only by explicit user action.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// reconciliationTolerance is the slack, as a fraction of the invoice total,
// that absorbs cross-currency rounding when deciding whether an invoice is
// fully paid.
var reconciliationTolerance = decimal.NewFromFloat(0.01)

// Invoice carries the amounts reconciliation is derived from. TotalAmount
// must always equal Amount + VATAmount.
type Invoice struct {
	ID          string
	Number      string
	Amount      decimal.Decimal
	VATAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	Currency    string
	Status      InvoiceStatus
	DueDate     *time.Time
	IssuedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates invoice amounts and currency.
func (i *Invoice) Validate() error {
	if i.Currency == "" {
		return ErrMissingCurrency
	}

	if err := ValidateCurrency(i.Currency); err != nil {
		return err
	}

	if i.Amount.IsNegative() || i.VATAmount.IsNegative() {
		return ErrInvalidAmount
	}

	if !i.TotalAmount.Equal(i.Amount.Add(i.VATAmount)) {
		return ErrInvalidAmount
	}

	return nil
}

// Tolerance is the absolute slack for this invoice: 1% of its total.
func (i *Invoice) Tolerance() decimal.Decimal {
	return i.TotalAmount.Mul(reconciliationTolerance)
}

// NextStatus derives the invoice's status from the total paid across its
// completed payments, converted into the invoice currency. Rules are
// evaluated in priority order; when none applies the status is unchanged.
// Callers persist the result unconditionally, so repeated reconciliation
// with the same inputs is idempotent.
func (i *Invoice) NextStatus(totalPaid decimal.Decimal, now time.Time) InvoiceStatus {
	if i.Status == InvoiceStatusCancelled {
		return InvoiceStatusCancelled
	}

	switch {
	case totalPaid.GreaterThanOrEqual(i.TotalAmount.Sub(i.Tolerance())):
		return InvoiceStatusPaid
	case i.Status == InvoiceStatusDraft && totalPaid.IsPositive():
		return InvoiceStatusIssued
	case i.Status == InvoiceStatusPaid && !totalPaid.IsPositive():
		// Every counted payment was removed; recover to issued.
		return InvoiceStatusIssued
	case i.DueDate != nil && now.After(*i.DueDate) && i.Status != InvoiceStatusPaid:
		return InvoiceStatusOverdue
	default:
		return i.Status
	}
}
