package catalog

import (
	"context"
	"errors"

	"github.com/Domenick1991/searchbox/internal/cache"
	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/Domenick1991/searchbox/internal/repository"
)

type CatalogUseCase interface {
	Airports(ctx context.Context) ([]domain.Airport, error)
	Countries(ctx context.Context) ([]domain.Country, error)
	Routes(ctx context.Context) ([]domain.Route, error)
	Airlines(ctx context.Context) ([]domain.Airline, error)
	SeatClasses(ctx context.Context) ([]domain.SeatClass, error)
	PopularRoutes(ctx context.Context, limit int) ([]domain.RoutePopularity, error)
	RecordSearch(ctx context.Context, event domain.SearchEvent) error
}

type Cache interface {
	GetCollection(ctx context.Context, name string, dest interface{}) error
	SetCollection(ctx context.Context, name string, value interface{}) error
	IncrRouteSearches(ctx context.Context, from, to int64) error
	PopularRoutes(ctx context.Context, limit int) ([]domain.RoutePopularity, error)
}

var ErrPopularityUnavailable = errors.New("route popularity needs a cache")

type CatalogService struct {
	repo  repository.CatalogRepository
	cache Cache
	log   *logger.Logger
}

// NewCatalogService wires the repository behind an optional cache.
func NewCatalogService(repo repository.CatalogRepository, cache Cache, log *logger.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log}
}

func (s *CatalogService) Airports(ctx context.Context) ([]domain.Airport, error) {
	return cached(ctx, s, cache.Airports, s.repo.ListAirports)
}

func (s *CatalogService) Countries(ctx context.Context) ([]domain.Country, error) {
	return cached(ctx, s, cache.Countries, s.repo.ListCountries)
}

func (s *CatalogService) Routes(ctx context.Context) ([]domain.Route, error) {
	return cached(ctx, s, cache.Routes, s.repo.ListRoutes)
}

func (s *CatalogService) Airlines(ctx context.Context) ([]domain.Airline, error) {
	return cached(ctx, s, cache.Airlines, s.repo.ListAirlines)
}

func (s *CatalogService) SeatClasses(ctx context.Context) ([]domain.SeatClass, error) {
	return cached(ctx, s, cache.SeatClasses, s.repo.ListSeatClasses)
}

func (s *CatalogService) PopularRoutes(ctx context.Context, limit int) ([]domain.RoutePopularity, error) {
	if s.cache == nil {
		return nil, ErrPopularityUnavailable
	}
	return s.cache.PopularRoutes(ctx, limit)
}

func (s *CatalogService) RecordSearch(ctx context.Context, event domain.SearchEvent) error {
	if s.cache == nil {
		return ErrPopularityUnavailable
	}
	return s.cache.IncrRouteSearches(ctx, event.From, event.To)
}

// cached reads name from the cache and falls back to load. Cache failures
// never fail the request.
func cached[T any](ctx context.Context, s *CatalogService, name string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var items []T
		err := s.cache.GetCollection(ctx, name, &items)
		if err == nil && items != nil {
			return items, nil
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("catalog cache read failed", "collection", name, "error", err)
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetCollection(ctx, name, items); err != nil {
			s.log.Warn("catalog cache write failed", "collection", name, "error", err)
		}
	}
	return items, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
