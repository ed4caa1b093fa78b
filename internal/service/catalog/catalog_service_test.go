package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/searchbox/internal/cache"
	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCatalogRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockCatalogRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockCatalogRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockCatalogRepository) ListSeatClasses(ctx context.Context) ([]domain.SeatClass, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SeatClass), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetCollection(ctx context.Context, name string, dest interface{}) error {
	args := m.Called(ctx, name, dest)
	return args.Error(0)
}

func (m *MockCache) SetCollection(ctx context.Context, name string, value interface{}) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func (m *MockCache) IncrRouteSearches(ctx context.Context, from, to int64) error {
	args := m.Called(ctx, from, to)
	return args.Error(0)
}

func (m *MockCache) PopularRoutes(ctx context.Context, limit int) ([]domain.RoutePopularity, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.RoutePopularity), args.Error(1)
}

var airports = []domain.Airport{
	{ID: 1, Name: "Noi Bai", Code: "HAN", CountryID: 84},
	{ID: 2, Name: "Tan Son Nhat", Code: "SGN", CountryID: 84},
}

func TestCatalogService_Airports_CacheMiss(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	mockCache := &MockCache{}
	service := NewCatalogService(mockRepo, mockCache, logger.Discard())
	ctx := context.Background()

	mockCache.On("GetCollection", ctx, cache.Airports, mock.Anything).Return(cache.ErrCacheMiss).Once()
	mockRepo.On("ListAirports", ctx).Return(airports, nil).Once()
	mockCache.On("SetCollection", ctx, cache.Airports, airports).Return(nil).Once()

	result, err := service.Airports(ctx)

	assert.NoError(t, err)
	assert.Equal(t, airports, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Airports_CacheHit(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	mockCache := &MockCache{}
	service := NewCatalogService(mockRepo, mockCache, logger.Discard())
	ctx := context.Background()

	mockCache.On("GetCollection", ctx, cache.Airports, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*[]domain.Airport) = airports
		}).
		Return(nil).Once()

	result, err := service.Airports(ctx)

	assert.NoError(t, err)
	assert.Equal(t, airports, result)
	mockRepo.AssertNotCalled(t, "ListAirports")
	mockCache.AssertNotCalled(t, "SetCollection")
}

func TestCatalogService_Routes_CacheErrorFallsThrough(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	mockCache := &MockCache{}
	service := NewCatalogService(mockRepo, mockCache, logger.Discard())
	ctx := context.Background()
	routes := []domain.Route{{ID: 1, DepartAirportID: 1, ArriveAirportID: 2}}

	mockCache.On("GetCollection", ctx, cache.Routes, mock.Anything).Return(errors.New("redis down")).Once()
	mockRepo.On("ListRoutes", ctx).Return(routes, nil).Once()
	mockCache.On("SetCollection", ctx, cache.Routes, routes).Return(errors.New("redis down")).Once()

	result, err := service.Routes(ctx)

	assert.NoError(t, err)
	assert.Equal(t, routes, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Countries_RepoError(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	mockCache := &MockCache{}
	service := NewCatalogService(mockRepo, mockCache, logger.Discard())
	ctx := context.Background()

	mockCache.On("GetCollection", ctx, cache.Countries, mock.Anything).Return(cache.ErrCacheMiss).Once()
	mockRepo.On("ListCountries", ctx).Return(([]domain.Country)(nil), errors.New("db down")).Once()

	result, err := service.Countries(ctx)

	assert.Nil(t, result)
	assert.EqualError(t, err, "db down")
	mockCache.AssertNotCalled(t, "SetCollection")
}

func TestCatalogService_WithoutCache(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	service := NewCatalogService(mockRepo, nil, logger.Discard())
	ctx := context.Background()

	airlines := []domain.Airline{{ID: 1, Name: "Vietnam Airlines"}}
	classes := []domain.SeatClass{{ID: 1, Name: "Economy"}, {ID: 2, Name: "Business"}}
	mockRepo.On("ListAirlines", ctx).Return(airlines, nil).Once()
	mockRepo.On("ListSeatClasses", ctx).Return(classes, nil).Once()

	gotAirlines, err := service.Airlines(ctx)
	assert.NoError(t, err)
	assert.Equal(t, airlines, gotAirlines)

	gotClasses, err := service.SeatClasses(ctx)
	assert.NoError(t, err)
	assert.Equal(t, classes, gotClasses)

	_, err = service.PopularRoutes(ctx, 5)
	assert.ErrorIs(t, err, ErrPopularityUnavailable)
	assert.ErrorIs(t, service.RecordSearch(ctx, domain.SearchEvent{}), ErrPopularityUnavailable)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Popularity(t *testing.T) {
	mockCache := &MockCache{}
	service := NewCatalogService(&MockCatalogRepository{}, mockCache, logger.Discard())
	ctx := context.Background()

	top := []domain.RoutePopularity{{DepartAirportID: 1, ArriveAirportID: 2, Searches: 4}}
	mockCache.On("IncrRouteSearches", ctx, int64(1), int64(2)).Return(nil).Once()
	mockCache.On("PopularRoutes", ctx, 10).Return(top, nil).Once()

	err := service.RecordSearch(ctx, domain.SearchEvent{ID: "e1", From: 1, To: 2, DepartDate: "2025-01-01", CreatedAt: time.Now()})
	assert.NoError(t, err)

	result, err := service.PopularRoutes(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, top, result)
	mockCache.AssertExpectations(t)
}
