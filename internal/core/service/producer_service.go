package service

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/port"
)

// ProducerService is the seller-facing surface: product CRUD and views over
// the producer's orders and favorites. Ownership checks live in the
// repository queries.
type ProducerService struct {
	repo port.ProducerRepository
}

func NewProducerService(repo port.ProducerRepository) *ProducerService {
	return &ProducerService{repo: repo}
}

func (s *ProducerService) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return s.repo.CreateProduct(ctx, p)
}

func (s *ProducerService) Products(ctx context.Context, producerID int64) ([]domain.ProductView, error) {
	return s.repo.ListProducts(ctx, producerID)
}

func (s *ProducerService) Product(ctx context.Context, producerID, productID int64) (*domain.ProductView, error) {
	return s.repo.GetOwnProduct(ctx, producerID, productID)
}

func (s *ProducerService) UpdateProduct(ctx context.Context, producerID, productID int64, upd domain.ProductUpdate) (*domain.Product, error) {
	return s.repo.UpdateProduct(ctx, producerID, productID, upd)
}

func (s *ProducerService) DeleteProduct(ctx context.Context, producerID, productID int64) error {
	return s.repo.DeleteProduct(ctx, producerID, productID)
}

func (s *ProducerService) Restock(ctx context.Context, producerID, productID int64, quantity int) (*domain.Product, error) {
	return s.repo.SetProductQuantity(ctx, producerID, productID, quantity)
}

func (s *ProducerService) Orders(ctx context.Context, producerID int64) ([]domain.ProducerOrder, error) {
	return s.repo.ListProducerOrders(ctx, producerID)
}

func (s *ProducerService) Order(ctx context.Context, producerID, orderID int64) (*domain.ProducerOrder, []domain.OrderItem, error) {
	return s.repo.GetProducerOrder(ctx, producerID, orderID)
}

func (s *ProducerService) Favorites(ctx context.Context, producerID int64) ([]domain.ProducerFavorite, error) {
	return s.repo.ListProducerFavorites(ctx, producerID)
}

func (s *ProducerService) Dashboard(ctx context.Context, producerID int64) (*domain.DashboardStats, error) {
	return s.repo.Dashboard(ctx, producerID)
}
