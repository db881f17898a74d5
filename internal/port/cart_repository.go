package port

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
)

type CartRepository interface {
	// GetProductStock returns a product's current available quantity
	GetProductStock(ctx context.Context, productID int64) (int, error)

	// ListLines returns the consumer's cart joined with product info
	ListLines(ctx context.Context, consumerID int64) ([]domain.CartLine, error)

	// GetLine loads one cart line, verifying it belongs to the consumer
	GetLine(ctx context.Context, consumerID, cartItemID int64) (*domain.CartLine, error)

	// UpsertLine adds quantity to an existing (cart, product) line or creates
	// a new one, lazily creating the cart. The bool reports whether a new
	// line was created.
	UpsertLine(ctx context.Context, consumerID, productID int64, quantity int) (*domain.CartItem, bool, error)

	// SetLineQuantity overwrites a line's quantity (must be > 0)
	SetLineQuantity(ctx context.Context, cartItemID int64, quantity int) (*domain.CartItem, error)

	// DeleteLine removes a line outright
	DeleteLine(ctx context.Context, cartItemID int64) error
}
