package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tripsearch/config"
	"github.com/Domenick1991/tripsearch/internal/email"
	"github.com/Domenick1991/tripsearch/internal/kafka"
	"github.com/Domenick1991/tripsearch/internal/metrics"
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
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.Info("notification worker started", "topic", cfg.Kafka.NotificationsTopic, "group_id", cfg.Kafka.GroupID)
	err = consumer.ConsumeTripEvents(ctx, sender.Send)
	if err != nil {
		log.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	log.Info("notification worker stopped")
}
