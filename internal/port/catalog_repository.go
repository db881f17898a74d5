package port

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
)

type CatalogRepository interface {
	// SearchProducts returns in-stock products matching the filter, enriched
	// with the consumer's favorite flag and in-cart quantity.
	SearchProducts(ctx context.Context, consumerID int64, f domain.ProductFilter) ([]domain.ProductView, error)

	// GetProduct returns one product with lookup names and consumer flags
	GetProduct(ctx context.Context, consumerID, productID int64) (*domain.ProductView, error)

	// GetProducerContact returns the contact info of a product's seller
	GetProducerContact(ctx context.Context, productID int64) (*domain.ProducerContact, error)

	ListCategories(ctx context.Context) ([]domain.Lookup, error)
	ListExpiryTypes(ctx context.Context) ([]domain.Lookup, error)
	ListTaluks(ctx context.Context) ([]domain.Lookup, error)
}
