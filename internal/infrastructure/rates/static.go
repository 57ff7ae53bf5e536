package rates

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
)

// StaticProvider serves a fixed reference table. It is the default when no
// remote rates endpoint is configured; the values are indicative only, the
// derived rate merely pre-populates the rate field in entry forms.
type StaticProvider struct {
	table domain.RateTable
}

// NewStaticProvider creates a StaticProvider with the given table. A nil
// table falls back to the built-in one.
func NewStaticProvider(table domain.RateTable) *StaticProvider {
	if table == nil {
		table = defaultTable()
	}

	return &StaticProvider{table: table}
}

// Rates returns a copy of the table so callers cannot mutate the provider.
func (p *StaticProvider) Rates(ctx context.Context) (domain.RateTable, error) {
	table := make(domain.RateTable, len(p.table))
	for code, value := range p.table {
		table[code] = value
	}

	return table, nil
}

func defaultTable() domain.RateTable {
	return domain.RateTable{
		"TRY": decimal.NewFromInt(1),
		"USD": decimal.NewFromInt(34),
		"EUR": decimal.NewFromInt(36),
		"GBP": decimal.NewFromInt(43),
	}
}
