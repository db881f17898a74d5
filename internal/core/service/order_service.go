package service

import (
	"context"
	"fmt"

	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/port"
)

// OrderService runs checkouts and serves the consumer's order history.
type OrderService struct {
	orders port.OrderRepository
	cache  port.CacheRepository
}

func NewOrderService(orders port.OrderRepository, cache port.CacheRepository) *OrderService {
	return &OrderService{orders: orders, cache: cache}
}

// Checkout converts the consumer's cart into an order. A short-lived guard
// key rejects a second checkout for the same cart while one is in flight;
// the database transaction remains the actual atomicity boundary.
func (s *OrderService) Checkout(ctx context.Context, consumerID, cartID int64) (*domain.Receipt, error) {
	key := checkoutGuardKey(consumerID, cartID)

	ok, err := s.cache.SetCheckoutGuard(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("checkout guard: %w", err)
	}
	if !ok {
		return nil, domain.ErrCheckoutInProgress
	}

	receipt, err := s.orders.CheckoutCart(ctx, consumerID, cartID)

	// release either way: on success the cart is gone, on failure the
	// consumer must be able to retry. The TTL expires a missed clear.
	_ = s.cache.ClearCheckoutGuard(ctx, key)

	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func checkoutGuardKey(consumerID, cartID int64) string {
	if cartID != 0 {
		return fmt.Sprintf("cart:%d", cartID)
	}
	return fmt.Sprintf("consumer:%d", consumerID)
}

func (s *OrderService) History(ctx context.Context, consumerID int64) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, consumerID)
}

func (s *OrderService) Order(ctx context.Context, consumerID, orderID int64) (*domain.Order, []domain.OrderItem, error) {
	return s.orders.GetOrder(ctx, consumerID, orderID)
}
