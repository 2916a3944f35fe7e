package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Search(ctx context.Context, query string, limit int) ([]domain.Airport, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

type MockAirlineRepository struct {
	mock.Mock
}

func (m *MockAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) FindFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Flight, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	return m.Called(ctx, airports).Error(0)
}

func (m *MockCache) GetAirlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockCache) SetAirlines(ctx context.Context, airlines []domain.Airline) error {
	return m.Called(ctx, airlines).Error(0)
}

func (m *MockCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error {
	return m.Called(ctx, filter, flights).Error(0)
}

type mocks struct {
	airports *MockAirportRepository
	airlines *MockAirlineRepository
	flights  *MockFlightRepository
	cache    *MockCache
}

func newService(withCache bool) (*CatalogService, mocks) {
	m := mocks{
		airports: &MockAirportRepository{},
		airlines: &MockAirlineRepository{},
		flights:  &MockFlightRepository{},
		cache:    &MockCache{},
	}
	var opts []CatalogServiceOption
	if withCache {
		opts = append(opts, WithCache(m.cache))
	}
	return NewCatalogService(m.airports, m.airlines, m.flights, opts...), m
}

var testAirports = []domain.Airport{
	{Code: "YUL", CityCode: "YMQ", Name: "Pierre Elliott Trudeau International", City: "Montreal", CountryCode: "CA", Timezone: "America/Montreal"},
	{Code: "YVR", CityCode: "YVR", Name: "Vancouver International", City: "Vancouver", CountryCode: "CA", Timezone: "America/Vancouver"},
}

func TestCatalogService_Airports_CacheMiss(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()

	m.cache.On("GetAirports", ctx).Return(([]domain.Airport)(nil), nil).Once()
	m.airports.On("List", ctx).Return(testAirports, nil).Once()
	m.cache.On("SetAirports", ctx, testAirports).Return(nil).Once()

	result, err := service.Airports(ctx)

	assert.NoError(t, err)
	assert.Equal(t, testAirports, result)
	m.cache.AssertExpectations(t)
	m.airports.AssertExpectations(t)
}

func TestCatalogService_Airports_CacheHit(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()

	m.cache.On("GetAirports", ctx).Return(testAirports, nil).Once()

	result, err := service.Airports(ctx)

	assert.NoError(t, err)
	assert.Equal(t, testAirports, result)
	m.airports.AssertNotCalled(t, "List")
	m.cache.AssertNotCalled(t, "SetAirports")
}

func TestCatalogService_Airports_CacheErrorFallsBack(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()

	m.cache.On("GetAirports", ctx).Return(([]domain.Airport)(nil), errors.New("cache error")).Once()
	m.airports.On("List", ctx).Return(testAirports, nil).Once()
	m.cache.On("SetAirports", ctx, testAirports).Return(errors.New("cache down")).Once()

	result, err := service.Airports(ctx)

	assert.NoError(t, err)
	assert.Equal(t, testAirports, result)
	m.cache.AssertExpectations(t)
}

func TestCatalogService_Airports_RepositoryError(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()

	expectedErr := errors.New("database error")
	m.cache.On("GetAirports", ctx).Return(([]domain.Airport)(nil), nil).Once()
	m.airports.On("List", ctx).Return([]domain.Airport{}, expectedErr).Once()

	result, err := service.Airports(ctx)

	assert.Nil(t, result)
	assert.Equal(t, expectedErr, err)
	m.cache.AssertNotCalled(t, "SetAirports")
}

func TestCatalogService_NoCache(t *testing.T) {
	service, m := newService(false)
	ctx := context.Background()
	airlines := []domain.Airline{{Code: "AC", Name: "Air Canada"}}

	m.airlines.On("List", ctx).Return(airlines, nil).Once()

	result, err := service.Airlines(ctx)

	assert.NoError(t, err)
	assert.Equal(t, airlines, result)
	m.airlines.AssertExpectations(t)
	m.cache.AssertNotCalled(t, "GetAirlines")
}

func TestCatalogService_Airlines_CacheHit(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()
	airlines := []domain.Airline{{Code: "AC", Name: "Air Canada"}}

	m.cache.On("GetAirlines", ctx).Return(airlines, nil).Once()

	result, err := service.Airlines(ctx)

	assert.NoError(t, err)
	assert.Equal(t, airlines, result)
	m.airlines.AssertNotCalled(t, "List")
}

func TestCatalogService_SearchAirports(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()

	m.airports.On("Search", ctx, "van", AirportSearchLimit).Return(testAirports[1:], nil).Once()

	result, err := service.SearchAirports(ctx, "van")

	assert.NoError(t, err)
	assert.Equal(t, testAirports[1:], result)
	m.cache.AssertNotCalled(t, "GetAirports")
}

func TestCatalogService_FindFlights(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()
	filter := domain.FlightFilter{OriginCodes: []string{"YUL"}, DestinationCodes: []string{"YVR"}}
	flights := []domain.Flight{{ID: 1, AirlineCode: "AC", OriginCode: "YUL", DestinationCode: "YVR", Price: 27323}}

	m.cache.On("GetFlights", ctx, filter).Return(([]domain.Flight)(nil), nil).Once()
	m.flights.On("FindFlights", ctx, filter).Return(flights, nil).Once()
	m.cache.On("SetFlights", ctx, filter, flights).Return(nil).Once()

	result, err := service.FindFlights(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	m.cache.AssertExpectations(t)
	m.flights.AssertExpectations(t)
}

func TestCatalogService_FindFlights_CachedEmptyResult(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()
	filter := domain.FlightFilter{OriginCodes: []string{"YUL"}, DestinationCodes: []string{"LHR"}}

	m.cache.On("GetFlights", ctx, filter).Return([]domain.Flight{}, nil).Once()

	result, err := service.FindFlights(ctx, filter)

	assert.NoError(t, err)
	assert.Empty(t, result)
	m.flights.AssertNotCalled(t, "FindFlights")
}

func TestCatalogService_FlightsByID_BypassesCache(t *testing.T) {
	service, m := newService(true)
	ctx := context.Background()
	found := map[int64]domain.Flight{1: {ID: 1}}

	m.flights.On("GetByIDs", ctx, []int64{1, 2}).Return(found, nil).Once()

	result, err := service.FlightsByID(ctx, []int64{1, 2})

	assert.NoError(t, err)
	assert.Equal(t, found, result)
	m.cache.AssertNotCalled(t, "GetFlights")
}
