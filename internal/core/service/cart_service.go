package service

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/port"
)

type CartService struct {
	carts port.CartRepository
}

func NewCartService(carts port.CartRepository) *CartService {
	return &CartService{carts: carts}
}

func (s *CartService) List(ctx context.Context, consumerID int64) ([]domain.CartLine, error) {
	return s.carts.ListLines(ctx, consumerID)
}

// AddItem adds quantity of a product to the consumer's cart, summing into an
// existing line for the same product. The stock check here is best-effort;
// checkout re-validates under row locks. The bool reports whether a new line
// was created.
func (s *CartService) AddItem(ctx context.Context, consumerID, productID int64, quantity int) (*domain.CartItem, bool, error) {
	stock, err := s.carts.GetProductStock(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	if quantity > stock {
		return nil, false, &domain.InsufficientStockError{ProductID: productID}
	}
	return s.carts.UpsertLine(ctx, consumerID, productID, quantity)
}

// UpdateItem sets a line's quantity. Zero removes the line and returns nil.
func (s *CartService) UpdateItem(ctx context.Context, consumerID, cartItemID int64, quantity int) (*domain.CartItem, error) {
	line, err := s.carts.GetLine(ctx, consumerID, cartItemID)
	if err != nil {
		return nil, err
	}
	if quantity > line.ProductStock {
		return nil, &domain.InsufficientStockError{ProductID: line.ProductID}
	}
	if quantity == 0 {
		return nil, s.carts.DeleteLine(ctx, cartItemID)
	}
	return s.carts.SetLineQuantity(ctx, cartItemID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, consumerID, cartItemID int64) error {
	if _, err := s.carts.GetLine(ctx, consumerID, cartItemID); err != nil {
		return err
	}
	return s.carts.DeleteLine(ctx, cartItemID)
}
