package port

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
)

type OrderRepository interface {
	// CheckoutCart atomically converts the consumer's cart into an order: it
	// locks the cart lines and their product rows, validates stock, creates
	// the order and its item snapshots, decrements product quantities and
	// deletes the cart. cartID 0 resolves to the consumer's most recent cart.
	// Any failure rolls the whole transaction back.
	CheckoutCart(ctx context.Context, consumerID, cartID int64) (*domain.Receipt, error)

	// ListOrders returns the consumer's order history, newest first
	ListOrders(ctx context.Context, consumerID int64) ([]domain.Order, error)

	// GetOrder returns one of the consumer's orders with its item snapshots
	GetOrder(ctx context.Context, consumerID, orderID int64) (*domain.Order, []domain.OrderItem, error)
}
