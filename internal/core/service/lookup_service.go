package service

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/port"
)

// LookupService serves the small reference tables through a read-through
// cache; a cache failure falls back to the database.
type LookupService struct {
	catalog port.CatalogRepository
	cache   port.CacheRepository
}

func NewLookupService(catalog port.CatalogRepository, cache port.CacheRepository) *LookupService {
	return &LookupService{catalog: catalog, cache: cache}
}

func (s *LookupService) Categories(ctx context.Context) ([]domain.Lookup, error) {
	return s.cached(ctx, "categories", s.catalog.ListCategories)
}

func (s *LookupService) ExpiryTypes(ctx context.Context) ([]domain.Lookup, error) {
	return s.cached(ctx, "expiry_types", s.catalog.ListExpiryTypes)
}

func (s *LookupService) Taluks(ctx context.Context) ([]domain.Lookup, error) {
	return s.cached(ctx, "taluks", s.catalog.ListTaluks)
}

func (s *LookupService) cached(ctx context.Context, key string, fetch func(context.Context) ([]domain.Lookup, error)) ([]domain.Lookup, error) {
	if values, hit, err := s.cache.GetLookups(ctx, key); err == nil && hit {
		return values, nil
	}

	values, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetLookups(ctx, key, values)
	return values, nil
}
