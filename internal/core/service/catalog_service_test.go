package service

import (
	"context"
	"testing"

	"github.com/trichyfresh/connect/internal/core/domain"
)

// Mock CatalogRepository capturing the resolved filter
type mockCatalogRepo struct {
	lastFilter domain.ProductFilter
	results    []domain.ProductView
}

func (m *mockCatalogRepo) SearchProducts(ctx context.Context, consumerID int64, f domain.ProductFilter) ([]domain.ProductView, error) {
	m.lastFilter = f
	return m.results, nil
}

func (m *mockCatalogRepo) GetProduct(ctx context.Context, consumerID, productID int64) (*domain.ProductView, error) {
	return nil, domain.ErrProductNotFound
}

func (m *mockCatalogRepo) GetProducerContact(ctx context.Context, productID int64) (*domain.ProducerContact, error) {
	return nil, domain.ErrProductNotFound
}

func (m *mockCatalogRepo) ListCategories(ctx context.Context) ([]domain.Lookup, error) {
	return nil, nil
}

func (m *mockCatalogRepo) ListExpiryTypes(ctx context.Context) ([]domain.Lookup, error) {
	return nil, nil
}

func (m *mockCatalogRepo) ListTaluks(ctx context.Context) ([]domain.Lookup, error) {
	return nil, nil
}

type mockFavoriteRepo struct{}

func (m *mockFavoriteRepo) AddFavorite(ctx context.Context, consumerID, productID int64) error {
	return nil
}

func (m *mockFavoriteRepo) RemoveFavorite(ctx context.Context, consumerID, productID int64) error {
	return nil
}

func (m *mockFavoriteRepo) ListFavorites(ctx context.Context, consumerID int64) ([]domain.FavoriteProduct, error) {
	return nil, nil
}

func feed(t *testing.T, repo *mockCatalogRepo, consumerTaluk int64, q FeedQuery) {
	t.Helper()
	svc := NewCatalogService(repo, &mockFavoriteRepo{})
	if _, _, _, err := svc.Feed(context.Background(), 1, consumerTaluk, q); err != nil {
		t.Fatalf("feed failed: %v", err)
	}
}

func TestFeed_DefaultsToConsumerTaluk(t *testing.T) {
	repo := &mockCatalogRepo{}
	feed(t, repo, 3, FeedQuery{})

	if repo.lastFilter.TalukID != 3 {
		t.Errorf("expected consumer taluk 3, got %d", repo.lastFilter.TalukID)
	}
}

func TestFeed_ExplicitTalukOverrides(t *testing.T) {
	repo := &mockCatalogRepo{}
	feed(t, repo, 3, FeedQuery{TalukID: 7})

	if repo.lastFilter.TalukID != 7 {
		t.Errorf("expected explicit taluk 7, got %d", repo.lastFilter.TalukID)
	}
}

func TestFeed_IncludeOtherDropsScope(t *testing.T) {
	repo := &mockCatalogRepo{}
	feed(t, repo, 3, FeedQuery{IncludeOther: true})

	if repo.lastFilter.TalukID != 0 {
		t.Errorf("expected no taluk filter, got %d", repo.lastFilter.TalukID)
	}
}

func TestFeed_IncludeOtherWithTalukPins(t *testing.T) {
	repo := &mockCatalogRepo{}
	feed(t, repo, 3, FeedQuery{IncludeOther: true, TalukID: 9})

	if repo.lastFilter.TalukID != 9 {
		t.Errorf("expected pinned taluk 9, got %d", repo.lastFilter.TalukID)
	}
}

func TestFeed_NoConsumerTaluk(t *testing.T) {
	repo := &mockCatalogRepo{}
	feed(t, repo, 0, FeedQuery{})

	if repo.lastFilter.TalukID != 0 {
		t.Errorf("expected no taluk filter for unscoped consumer, got %d", repo.lastFilter.TalukID)
	}
}

func TestFeed_PaginationClamps(t *testing.T) {
	repo := &mockCatalogRepo{}
	feed(t, repo, 0, FeedQuery{Page: 0, Limit: 0})
	if repo.lastFilter.Limit != defaultPageSize || repo.lastFilter.Offset != 0 {
		t.Errorf("expected default limit %d offset 0, got %d/%d",
			defaultPageSize, repo.lastFilter.Limit, repo.lastFilter.Offset)
	}

	feed(t, repo, 0, FeedQuery{Page: 3, Limit: 1000})
	if repo.lastFilter.Limit != maxPageSize {
		t.Errorf("expected limit clamped to %d, got %d", maxPageSize, repo.lastFilter.Limit)
	}
	if repo.lastFilter.Offset != 2*maxPageSize {
		t.Errorf("expected offset %d, got %d", 2*maxPageSize, repo.lastFilter.Offset)
	}
}

func TestFeed_InvalidSortFallsBack(t *testing.T) {
	repo := &mockCatalogRepo{}
	feed(t, repo, 0, FeedQuery{Sort: "cheapest-first"})

	if repo.lastFilter.Sort != domain.SortNewest {
		t.Errorf("expected fallback to %q, got %q", domain.SortNewest, repo.lastFilter.Sort)
	}

	feed(t, repo, 0, FeedQuery{Sort: domain.SortPriceDesc})
	if repo.lastFilter.Sort != domain.SortPriceDesc {
		t.Errorf("expected %q kept, got %q", domain.SortPriceDesc, repo.lastFilter.Sort)
	}
}
