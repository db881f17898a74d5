package port

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
)

type FavoriteRepository interface {
	// AddFavorite records a (consumer, product) membership; adding an
	// existing favorite is a no-op, not an error
	AddFavorite(ctx context.Context, consumerID, productID int64) error

	// RemoveFavorite deletes the membership row
	RemoveFavorite(ctx context.Context, consumerID, productID int64) error

	// ListFavorites returns the consumer's favorites, newest first
	ListFavorites(ctx context.Context, consumerID int64) ([]domain.FavoriteProduct, error)
}
