package usecase

import "time"

const (
	// DefaultPageSize is the page size used when the caller supplies none.
	DefaultPageSize = 20

	// MaxPageSize caps list queries.
	MaxPageSize = 100

	// DefaultStatementCacheTTL is how long a built statement stays cached
	// before it is recomputed from the invoice and payment records.
	DefaultStatementCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

func clampPage(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
