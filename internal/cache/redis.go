package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Domenick1991/tripsearch/config"
	"github.com/Domenick1991/tripsearch/internal/domain"
)

// RedisCache stores catalog reads as JSON. A miss is reported as a nil slice
// with a nil error.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	if err := c.get(ctx, airportsKey(), &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	return c.set(ctx, airportsKey(), airports)
}

func (c *RedisCache) GetAirlines(ctx context.Context) ([]domain.Airline, error) {
	var airlines []domain.Airline
	if err := c.get(ctx, airlinesKey(), &airlines); err != nil {
		return nil, err
	}
	return airlines, nil
}

func (c *RedisCache) SetAirlines(ctx context.Context, airlines []domain.Airline) error {
	return c.set(ctx, airlinesKey(), airlines)
}

func (c *RedisCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := c.get(ctx, flightsKey(filter), &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error {
	return c.set(ctx, flightsKey(filter), flights)
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dst)
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}
