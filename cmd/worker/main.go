package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/searchbox/config"
	"github.com/Domenick1991/searchbox/internal/cache"
	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/Domenick1991/searchbox/internal/kafka"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/Domenick1991/searchbox/internal/repository"
	"github.com/Domenick1991/searchbox/internal/service/catalog"
	"github.com/jackc/pgx/v5/pgxpool"
)

// worker folds search events into the popular routes ranking.
func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		logger.New(config.LoggingConfig{}).Fatal(err, "load config")
	}
	log := logger.New(cfg.Logging).WithField("service", "search-worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(err, "worker stopped")
		return
	}
	log.Info("worker stopped")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Catalog.CacheTTL())
	defer redisCache.Close()

	catalogService := catalog.NewCatalogService(repository.NewCatalogRepository(pool), redisCache, log)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.SearchTopic, log)
	defer consumer.Close()

	log.Info("consuming search events", "topic", cfg.Kafka.SearchTopic)
	err = consumer.ConsumeSearches(ctx, func(ctx context.Context, event domain.SearchEvent) error {
		// a lost increment only skews the ranking, keep consuming
		if err := catalogService.RecordSearch(ctx, event); err != nil {
			log.Error(err, "record search", "id", event.ID, "from", event.From, "to", event.To)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("consume searches: %w", err)
	}
	return nil
}
