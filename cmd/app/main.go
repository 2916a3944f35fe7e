package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/tripsearch/config"
	"github.com/Domenick1991/tripsearch/internal/bootstrap"
	"github.com/Domenick1991/tripsearch/internal/cache"
	"github.com/Domenick1991/tripsearch/internal/kafka"
	"github.com/Domenick1991/tripsearch/internal/repository"
	"github.com/Domenick1991/tripsearch/internal/service/booking"
	"github.com/Domenick1991/tripsearch/internal/service/catalog"
	"github.com/Domenick1991/tripsearch/internal/service/search"
	"github.com/Domenick1991/tripsearch/migrations"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrateOnStart {
		applied, err := migrations.Up(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("migrate database", "error", err)
			os.Exit(1)
		}
		log.Info("database migrated", "applied", applied)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Catalog.CacheTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()

	catalogService := catalog.NewCatalogService(
		repository.NewAirportRepository(pool),
		repository.NewAirlineRepository(pool),
		repository.NewFlightRepository(pool),
		catalog.WithCache(redisCache),
		catalog.WithLogger(log),
	)
	searchService := search.NewSearchService(catalogService, search.WithLogger(log))
	bookingService := booking.NewBookingService(
		repository.NewTripRepository(pool),
		catalogService,
		booking.WithProducer(producer, cfg.Kafka.TripsTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(log),
	)

	err = bootstrap.Run(ctx, cfg, log,
		bootstrap.Services{
			Search:   searchService,
			Bookings: bookingService,
			Catalog:  catalogService,
		},
		bootstrap.Check{Name: "postgres", Probe: pool.Ping},
		bootstrap.Check{Name: "redis", Probe: redisCache.Ping},
		bootstrap.Check{Name: "kafka", Probe: producer.CheckConnection},
	)
	if err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
