package service

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/port"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// FeedQuery is the raw, unresolved feed request as the handler parsed it.
type FeedQuery struct {
	Query        string
	CategoryID   int64
	ExpiryTypeID int64
	TalukID      int64
	IncludeOther bool
	Page         int
	Limit        int
	Sort         string
}

// CatalogService serves the consumer-facing product feed and favorites.
type CatalogService struct {
	catalog   port.CatalogRepository
	favorites port.FavoriteRepository
}

func NewCatalogService(catalog port.CatalogRepository, favorites port.FavoriteRepository) *CatalogService {
	return &CatalogService{catalog: catalog, favorites: favorites}
}

// Feed resolves the query against the consumer's region and searches.
// Default scope is the consumer's own taluk; an explicit taluk_id overrides
// it, and include_other widens the scope to every region unless a taluk_id
// pins one.
func (s *CatalogService) Feed(ctx context.Context, consumerID, consumerTalukID int64, q FeedQuery) ([]domain.ProductView, int, int, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	taluk := q.TalukID
	if !q.IncludeOther && taluk == 0 {
		taluk = consumerTalukID
	}

	sort := q.Sort
	switch sort {
	case domain.SortNewest, domain.SortPriceAsc, domain.SortPriceDesc:
	default:
		sort = domain.SortNewest
	}

	views, err := s.catalog.SearchProducts(ctx, consumerID, domain.ProductFilter{
		Query:        q.Query,
		CategoryID:   q.CategoryID,
		ExpiryTypeID: q.ExpiryTypeID,
		TalukID:      taluk,
		Sort:         sort,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, 0, err
	}
	return views, page, limit, nil
}

func (s *CatalogService) Product(ctx context.Context, consumerID, productID int64) (*domain.ProductView, error) {
	return s.catalog.GetProduct(ctx, consumerID, productID)
}

func (s *CatalogService) ProducerContact(ctx context.Context, productID int64) (*domain.ProducerContact, error) {
	return s.catalog.GetProducerContact(ctx, productID)
}

func (s *CatalogService) Favorites(ctx context.Context, consumerID int64) ([]domain.FavoriteProduct, error) {
	return s.favorites.ListFavorites(ctx, consumerID)
}

func (s *CatalogService) AddFavorite(ctx context.Context, consumerID, productID int64) error {
	return s.favorites.AddFavorite(ctx, consumerID, productID)
}

func (s *CatalogService) RemoveFavorite(ctx context.Context, consumerID, productID int64) error {
	return s.favorites.RemoveFavorite(ctx, consumerID, productID)
}
