package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		currency    string
		expectError bool
	}{
		{"TRY", false},
		{"USD", false},
		{"eur", false},
		{" GBP ", false},
		{"XYZ", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateCurrency(tt.currency)

		if tt.expectError && !errors.Is(err, ErrInvalidCurrency) {
			t.Errorf("ValidateCurrency(%q): expected ErrInvalidCurrency, got %v", tt.currency, err)
		}

		if !tt.expectError && err != nil {
			t.Errorf("ValidateCurrency(%q): unexpected error %v", tt.currency, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(decimal.Zero); err != nil {
		t.Errorf("zero amount must be allowed: %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	huge := decimal.RequireFromString(MaxMonetaryAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Errorf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateExchangeRate(t *testing.T) {
	if err := ValidateExchangeRate(decimal.RequireFromString("34.25")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, rate := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-34)} {
		if err := ValidateExchangeRate(rate); !errors.Is(err, ErrInvalidExchangeRate) {
			t.Errorf("rate %s: expected ErrInvalidExchangeRate, got %v", rate, err)
		}
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 50, 0},
		{-5, -3, 50, 0},
		{20, 40, 20, 40},
		{5000, 0, 1000, 0},
	}

	for _, tt := range tests {
		limit, offset := ValidatePagination(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("ValidatePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
