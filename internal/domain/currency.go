package domain

import (
	"github.com/shopspring/decimal"
)

// AnchorCurrency is the currency every stored exchange rate is quoted
// against: 1 unit of the non-TRY currency in the pair = rate TRY. The rate
// is captured when the monetary event is entered and never recomputed.
const AnchorCurrency = "TRY"

// RateTable maps a currency code to its value in TRY. It is only used to
// derive fallback cross rates before a live rate source answers; the rate
// actually stored on a record always comes from the caller.
type RateTable map[string]decimal.Decimal

// Convert converts amount from one currency to another using a single
// stored rate quoted per the anchor convention. It is a pure function: it
// never looks rates up itself.
//
// When neither side of the pair is TRY, the rate is interpreted as the
// source currency's TRY rate. A true cross conversion would also need the
// destination currency's own TRY rate, which is not captured per record.
// This is a known approximation carried over for compatibility.
func Convert(amount decimal.Decimal, from, to string, rate decimal.Decimal) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidExchangeRate
	}

	switch {
	case from == AnchorCurrency:
		return amount.Div(rate), nil
	case to == AnchorCurrency:
		return amount.Mul(rate), nil
	default:
		return amount.Mul(rate), nil
	}
}

// CrossRate derives a fallback rate for a currency pair from a reference
// table of TRY values. The result pre-populates a rate field before a live
// source responds; it is never written back to the table.
func CrossRate(from, to string, table RateTable) (decimal.Decimal, error) {
	fromValue, ok := table[from]
	if !ok || fromValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrUnknownReferenceRate
	}

	toValue, ok := table[to]
	if !ok || toValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrUnknownReferenceRate
	}

	return fromValue.Div(toValue), nil
}
