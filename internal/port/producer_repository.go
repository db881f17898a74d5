package port

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
)

// ProducerRepository backs the seller-facing dashboard: product CRUD scoped
// to the owning producer, plus order and favorite views over their products.
// Method names carry the producer prefix where the consumer-side ports
// declare a sibling operation.
type ProducerRepository interface {
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	ListProducts(ctx context.Context, producerID int64) ([]domain.ProductView, error)
	GetOwnProduct(ctx context.Context, producerID, productID int64) (*domain.ProductView, error)

	// UpdateProduct applies a partial update; unowned products resolve as
	// domain.ErrProductNotFound
	UpdateProduct(ctx context.Context, producerID, productID int64, upd domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, producerID, productID int64) error

	// SetProductQuantity restocks a product to an absolute quantity
	SetProductQuantity(ctx context.Context, producerID, productID int64, quantity int) (*domain.Product, error)

	// ListProducerOrders returns orders containing at least one of this
	// producer's items, newest first
	ListProducerOrders(ctx context.Context, producerID int64) ([]domain.ProducerOrder, error)

	// GetProducerOrder returns an order restricted to this producer's item
	// lines. An order with none of their items resolves as domain.ErrForbidden.
	GetProducerOrder(ctx context.Context, producerID, orderID int64) (*domain.ProducerOrder, []domain.OrderItem, error)

	ListProducerFavorites(ctx context.Context, producerID int64) ([]domain.ProducerFavorite, error)
	Dashboard(ctx context.Context, producerID int64) (*domain.DashboardStats, error)
}
