package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/searchbox/config"
	"github.com/Domenick1991/searchbox/internal/bootstrap"
	"github.com/Domenick1991/searchbox/internal/kafka"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/Domenick1991/searchbox/internal/routecache"
	"github.com/gin-gonic/gin"
)

// web serves the flight search box and publishes submitted searches.
func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		logger.New(config.LoggingConfig{}).Fatal(err, "load config")
	}
	log := logger.New(cfg.Logging).WithField("service", "search-box")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := routecache.NewClient(cfg.CatalogClient, log)

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()

	gin.SetMode(gin.ReleaseMode)
	router := bootstrap.NewWebRouter(cfg, client, producer, log)
	if err := bootstrap.Run(ctx, cfg.Web.Address, router, log); err != nil {
		log.Error(err, "search box stopped")
		return
	}
}
