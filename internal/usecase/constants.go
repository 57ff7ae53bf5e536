package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// ActiveTaxCacheKey is the cache key for the ordered active tax list
	ActiveTaxCacheKey = "taxes:active"

	// ActiveTaxCacheTTL is how long the active tax list is cached
	ActiveTaxCacheTTL = 5 * time.Minute

	// FallbackRateCacheTTL is how long derived fallback cross rates are cached
	FallbackRateCacheTTL = time.Hour

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
