package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TaxCalculationType determines how a tax rate is applied.
type TaxCalculationType string

const (
	TaxCalculationPercentage TaxCalculationType = "percentage"
	TaxCalculationFixed      TaxCalculationType = "fixed"
)

// TaxBaseType determines which monetary quantity a tax rate is applied
// against.
type TaxBaseType string

const (
	// TaxBaseAmount applies the rate against the transaction's pre-tax amount.
	TaxBaseAmount TaxBaseType = "amount"
	// TaxBaseVAT applies the rate against a previously computed VAT line item.
	TaxBaseVAT TaxBaseType = "vat"
	// TaxBaseTotal applies the rate against the running total including all
	// taxes applied so far.
	TaxBaseTotal TaxBaseType = "total"
)

// TaxDefinition is an administrator-managed tax. Definitions are applied to
// transactions in ascending Order; later definitions may depend on earlier
// ones through their base type.
type TaxDefinition struct {
	ID              string
	Name            string
	Code            string
	Rate            decimal.Decimal
	CalculationType TaxCalculationType
	BaseType        TaxBaseType
	IsActive        bool
	Order           int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks that a definition can be applied without surprises.
// A non-positive rate on a fixed tax is allowed and yields a zero-value
// line item.
func (d *TaxDefinition) Validate() error {
	switch d.CalculationType {
	case TaxCalculationPercentage, TaxCalculationFixed:
	default:
		return fmt.Errorf("%w: unknown calculation type %q", ErrTaxConfiguration, d.CalculationType)
	}

	switch d.BaseType {
	case TaxBaseAmount, TaxBaseVAT, TaxBaseTotal:
	default:
		return fmt.Errorf("%w: unknown base type %q", ErrTaxConfiguration, d.BaseType)
	}

	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrTaxConfiguration)
	}

	return nil
}

// TaxLineItem is a snapshot of a tax applied to one transaction. It is
// immutable once attached: editing the definition later does not change
// historical line items.
type TaxLineItem struct {
	ID              string
	TaxID           string
	Name            string
	Rate            decimal.Decimal
	CalculationType TaxCalculationType
	BaseType        TaxBaseType
	Amount          decimal.Decimal
	CreatedAt       time.Time
}

// IsVATLike reports whether a tax name refers to value-added tax. Turkish
// records name it KDV, imported ones VAT; matching is a case-insensitive
// substring check on either.
func IsVATLike(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "kdv") || strings.Contains(lower, "vat")
}
