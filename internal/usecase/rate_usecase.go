package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/metrics"
)

// RateUseCase derives fallback cross rates from the injected reference
// provider. The derived rate only pre-populates a rate field in the entry
// form; the rate stored on a record is whatever the user confirmed.
type RateUseCase struct {
	provider ReferenceRateProvider
	cache    Cache
	metrics  *metrics.Metrics
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(provider ReferenceRateProvider, cache Cache, metrics *metrics.Metrics) *RateUseCase {
	return &RateUseCase{
		provider: provider,
		cache:    cache,
		metrics:  metrics,
	}
}

// FallbackRate derives the rate for a currency pair from the reference
// table. Results are cached per pair.
func (uc *RateUseCase) FallbackRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if err := domain.ValidateCurrency(from); err != nil {
		return decimal.Zero, err
	}

	if err := domain.ValidateCurrency(to); err != nil {
		return decimal.Zero, err
	}

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	key := "rate:" + from + ":" + to

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && len(data) > 0 {
			if rate, err := decimal.NewFromString(string(data)); err == nil {
				uc.countCache(true)
				return rate, nil
			}
		}
		uc.countCache(false)
	}

	table, err := uc.provider.Rates(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	rate, err := domain.CrossRate(from, to, table)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, []byte(rate.String()), FallbackRateCacheTTL)
	}

	return rate, nil
}

// ConvertInput represents a conversion preview request.
type ConvertInput struct {
	Amount decimal.Decimal
	From   string
	To     string
	Rate   decimal.Decimal
}

// Convert previews a conversion under the anchor convention with a
// caller-supplied rate. Pure passthrough to the domain function.
func (uc *RateUseCase) Convert(ctx context.Context, input ConvertInput) (decimal.Decimal, error) {
	if err := domain.ValidateCurrency(input.From); err != nil {
		return decimal.Zero, err
	}

	if err := domain.ValidateCurrency(input.To); err != nil {
		return decimal.Zero, err
	}

	return domain.Convert(input.Amount, strings.ToUpper(input.From), strings.ToUpper(input.To), input.Rate)
}

func (uc *RateUseCase) countCache(hit bool) {
	if uc.metrics == nil {
		return
	}

	if hit {
		uc.metrics.CacheHits.WithLabelValues("fallback_rate").Inc()
	} else {
		uc.metrics.CacheMisses.WithLabelValues("fallback_rate").Inc()
	}
}
