package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/searchbox/api"
	"github.com/Domenick1991/searchbox/config"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/Domenick1991/searchbox/internal/selector"
	"github.com/Domenick1991/searchbox/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Run serves handler on addr and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("http server stopped", "addr", addr)
		return nil
	}
}

// NewAPIRouter wires the catalog API and its docs.
func NewAPIRouter(cfg *config.Config, svc catalog.CatalogUseCase, log *logger.Logger) *gin.Engine {
	router := newRouter(log)
	api.RegisterDocs(router, cfg.HTTP.SwaggerPath)
	api.NewCatalogHandler(svc).Register(router.Group("/api"))
	return router
}

// NewWebRouter wires the search box pages.
func NewWebRouter(cfg *config.Config, loader selector.Loader, publisher api.EventPublisher, log *logger.Logger) *gin.Engine {
	router := newRouter(log)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/booking")
	})
	ids := selector.FieldIDsFor(cfg.Web.FieldNames)
	api.NewSearchBoxHandler(loader, publisher, cfg.Kafka.SearchTopic, ids, log).Register(router)
	return router
}

func newRouter(log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
