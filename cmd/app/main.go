package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/searchbox/config"
	"github.com/Domenick1991/searchbox/internal/bootstrap"
	"github.com/Domenick1991/searchbox/internal/cache"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/Domenick1991/searchbox/internal/repository"
	"github.com/Domenick1991/searchbox/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// app serves the airport catalog API.
func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		logger.New(config.LoggingConfig{}).Fatal(err, "load config")
	}
	log := logger.New(cfg.Logging).WithField("service", "catalog-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(err, "catalog api stopped")
		return
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return err
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Catalog.CacheTTL())
	defer redisCache.Close()

	catalogService := catalog.NewCatalogService(repository.NewCatalogRepository(pool), redisCache, log)

	gin.SetMode(gin.ReleaseMode)
	router := bootstrap.NewAPIRouter(cfg, catalogService, log)
	return bootstrap.Run(ctx, cfg.HTTP.Address, router, log)
}
