package port

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
)

type CacheRepository interface {
	// SetCheckoutGuard sets a short-lived mutual-exclusion key for a checkout,
	// returns false if one is already held
	SetCheckoutGuard(ctx context.Context, key string) (bool, error)

	// ClearCheckoutGuard releases the guard so the checkout can be retried
	ClearCheckoutGuard(ctx context.Context, key string) error

	// GetLookups returns a cached lookup list; the bool reports a cache hit
	GetLookups(ctx context.Context, key string) ([]domain.Lookup, bool, error)

	// SetLookups caches a lookup list with a short TTL
	SetLookups(ctx context.Context, key string, values []domain.Lookup) error
}
