package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a monetary event.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

var (
	hundred = decimal.NewFromInt(100)

	// implicitVATRate is used to synthesize a VAT base for a vat-based tax
	// when no VAT line item has been applied yet. The synthesized base is
	// never materialized as a visible line item.
	implicitVATRate = decimal.NewFromInt(20)
)

// Transaction is a user-entered monetary event with its attached tax line
// items. Amount is pre-tax and in the transaction's own currency; the
// exchange rate follows the anchor convention and is frozen at entry time.
type Transaction struct {
	ID           string
	Type         TransactionType
	Amount       decimal.Decimal
	Currency     string
	ExchangeRate decimal.Decimal
	VATIncluded  bool
	Taxes        []TaxLineItem
	TotalAmount  decimal.Decimal
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates a transaction before tax application.
func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if err := ValidateCurrency(t.Currency); err != nil {
		return err
	}

	if t.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidExchangeRate
	}

	switch t.Type {
	case TransactionTypeIncome, TransactionTypeExpense:
		return nil
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidAmount, t.Type)
	}
}

// taxSum is the sum of all tax line item amounts applied so far.
func (t *Transaction) taxSum() decimal.Decimal {
	sum := decimal.Zero
	for i := range t.Taxes {
		sum = sum.Add(t.Taxes[i].Amount)
	}

	return sum
}

// taxBase resolves the base amount a definition's rate applies against,
// given the line items already attached in cascade order.
func (t *Transaction) taxBase(def *TaxDefinition) decimal.Decimal {
	switch def.BaseType {
	case TaxBaseVAT:
		for i := range t.Taxes {
			if IsVATLike(t.Taxes[i].Name) {
				return t.Taxes[i].Amount
			}
		}

		// No VAT line applied yet: synthesize an implicit 20% VAT base.
		if t.VATIncluded {
			return t.Amount.Mul(implicitVATRate).Div(hundred.Add(implicitVATRate))
		}

		return t.Amount.Mul(implicitVATRate).Div(hundred)
	case TaxBaseTotal:
		return t.Amount.Add(t.taxSum())
	default:
		return t.Amount
	}
}

// ApplyTax computes one tax line item and appends it to the transaction.
// Definitions must be applied in ascending Order, one at a time, because
// vat- and total-based taxes depend on the line items already attached.
func (t *Transaction) ApplyTax(def *TaxDefinition) (*TaxLineItem, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	var amount decimal.Decimal

	switch def.CalculationType {
	case TaxCalculationFixed:
		// Flat value; ignores the base. A non-positive rate yields a
		// zero-or-negative line item rather than an error.
		amount = def.Rate
	default:
		amount = t.taxBase(def).Mul(def.Rate).Div(hundred)
	}

	// A VAT-like tax on an inclusive amount must be extracted, not added:
	// the stated amount already contains it.
	if def.BaseType == TaxBaseAmount && t.VATIncluded && IsVATLike(def.Name) {
		divisor := hundred.Add(def.Rate)
		if divisor.IsZero() {
			return nil, fmt.Errorf("%w: rate %s makes the inclusive extraction divide by zero", ErrTaxConfiguration, def.Rate)
		}

		amount = t.Amount.Mul(def.Rate).Div(divisor)
	}

	t.Taxes = append(t.Taxes, TaxLineItem{
		TaxID:           def.ID,
		Name:            def.Name,
		Rate:            def.Rate,
		CalculationType: def.CalculationType,
		BaseType:        def.BaseType,
		Amount:          amount,
	})
	t.TotalAmount = t.TotalAfterTax()

	return &t.Taxes[len(t.Taxes)-1], nil
}

// RemoveTax detaches one line item by ID. Amounts of the remaining items
// are frozen at the moment they were added: a later item derived from a
// removed VAT line keeps its stale value until re-added. The running total
// is re-derived from the surviving items.
func (t *Transaction) RemoveTax(lineItemID string) error {
	for i := range t.Taxes {
		if t.Taxes[i].ID == lineItemID {
			t.Taxes = append(t.Taxes[:i], t.Taxes[i+1:]...)
			t.TotalAmount = t.TotalAfterTax()

			return nil
		}
	}

	return ErrTaxLineNotFound
}

// TotalAfterTax returns the transaction total under the inclusive flag:
// an inclusive amount already contains its taxes.
func (t *Transaction) TotalAfterTax() decimal.Decimal {
	if t.VATIncluded {
		return t.Amount
	}

	return t.Amount.Add(t.taxSum())
}
