package catalog

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/tripsearch/internal/domain"
	"github.com/Domenick1991/tripsearch/internal/itinerary"
	"github.com/Domenick1991/tripsearch/internal/metrics"
	"github.com/Domenick1991/tripsearch/internal/repository"
)

// AirportSearchLimit caps the airport lookup list.
const AirportSearchLimit = 25

type CatalogUseCase interface {
	Airports(ctx context.Context) ([]domain.Airport, error)
	SearchAirports(ctx context.Context, query string) ([]domain.Airport, error)
	Airlines(ctx context.Context) ([]domain.Airline, error)
	FindFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	FlightsByID(ctx context.Context, ids []int64) (map[int64]domain.Flight, error)
}

// Cache is the read-through store for catalog data. Get methods return a nil
// slice on a miss.
type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	GetAirlines(ctx context.Context) ([]domain.Airline, error)
	SetAirlines(ctx context.Context, airlines []domain.Airline) error
	GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error
}

type CatalogService struct {
	airports repository.AirportRepository
	airlines repository.AirlineRepository
	flights  repository.FlightRepository
	cache    Cache
	log      *slog.Logger
}

type CatalogServiceOption func(*CatalogService)

// WithCache enables cache-aside reads. Without it every read hits the
// repositories.
func WithCache(cache Cache) CatalogServiceOption {
	return func(s *CatalogService) {
		s.cache = cache
	}
}

func WithLogger(log *slog.Logger) CatalogServiceOption {
	return func(s *CatalogService) {
		s.log = log
	}
}

func NewCatalogService(
	airports repository.AirportRepository,
	airlines repository.AirlineRepository,
	flights repository.FlightRepository,
	opts ...CatalogServiceOption,
) *CatalogService {
	s := &CatalogService{
		airports: airports,
		airlines: airlines,
		flights:  flights,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CatalogService) Airports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAirports(ctx)
		if s.hit(ctx, "airports", err, cached != nil) {
			return cached, nil
		}
	}

	airports, err := s.airports.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAirports(ctx, airports); err != nil {
			s.log.WarnContext(ctx, "cache airports", "error", err)
		}
	}
	return airports, nil
}

// SearchAirports always reads through to the repository.
func (s *CatalogService) SearchAirports(ctx context.Context, query string) ([]domain.Airport, error) {
	return s.airports.Search(ctx, query, AirportSearchLimit)
}

func (s *CatalogService) Airlines(ctx context.Context) ([]domain.Airline, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAirlines(ctx)
		if s.hit(ctx, "airlines", err, cached != nil) {
			return cached, nil
		}
	}

	airlines, err := s.airlines.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAirlines(ctx, airlines); err != nil {
			s.log.WarnContext(ctx, "cache airlines", "error", err)
		}
	}
	return airlines, nil
}

// FindFlights serves the itinerary builder. It is safe for concurrent use as
// long as the repositories and cache are.
func (s *CatalogService) FindFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx, filter)
		if s.hit(ctx, "flights", err, cached != nil) {
			return cached, nil
		}
	}

	flights, err := s.flights.FindFlights(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, filter, flights); err != nil {
			s.log.WarnContext(ctx, "cache flights", "error", err)
		}
	}
	return flights, nil
}

// FlightsByID always reads the database; bookings must not be validated
// against stale prices.
func (s *CatalogService) FlightsByID(ctx context.Context, ids []int64) (map[int64]domain.Flight, error) {
	return s.flights.GetByIDs(ctx, ids)
}

// hit records the lookup outcome. A cache error is treated as a miss.
func (s *CatalogService) hit(ctx context.Context, entity string, err error, found bool) bool {
	switch {
	case err != nil:
		s.log.WarnContext(ctx, "catalog cache read failed", "entity", entity, "error", err)
		metrics.IncCacheLookup(entity, metrics.CacheError)
		return false
	case found:
		metrics.IncCacheLookup(entity, metrics.CacheHit)
		return true
	default:
		metrics.IncCacheLookup(entity, metrics.CacheMiss)
		return false
	}
}

var (
	_ CatalogUseCase         = (*CatalogService)(nil)
	_ itinerary.FlightSource = (*CatalogService)(nil)
)
