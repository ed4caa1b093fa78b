package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/searchbox/config"
	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/Domenick1991/searchbox/internal/routecache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct{}

func (stubCatalog) Airports(context.Context) ([]domain.Airport, error) {
	return []domain.Airport{{ID: 1, Name: "Noi Bai", Code: "HAN", CountryID: 84}}, nil
}
func (stubCatalog) Countries(context.Context) ([]domain.Country, error) { return nil, nil }
func (stubCatalog) Routes(context.Context) ([]domain.Route, error) { return nil, nil }
func (stubCatalog) Airlines(context.Context) ([]domain.Airline, error) { return nil, nil }
func (stubCatalog) SeatClasses(context.Context) ([]domain.SeatClass, error) {
	return nil, nil
}
func (stubCatalog) PopularRoutes(context.Context, int) ([]domain.RoutePopularity, error) {
	return nil, nil
}
func (stubCatalog) RecordSearch(context.Context, domain.SearchEvent) error { return nil }

type stubLoader struct{}

func (stubLoader) Load(context.Context) (*routecache.Snapshot, error) {
	return &routecache.Snapshot{}, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Web.FieldNames = "long"
	cfg.Kafka.SearchTopic = "flight-searches"
	return cfg
}

func TestNewAPIRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewAPIRouter(testConfig(), stubCatalog{}, logger.Discard())

	for path, code := range map[string]int{
		"/healthz":                   http.StatusOK,
		"/api/airports":              http.StatusOK,
		"/docs/catalog.swagger.json": http.StatusOK,
		"/swagger/index.html":        http.StatusOK,
		"/api/bookings":              http.StatusNotFound,
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, code, w.Code, path)
	}
}

func TestNewWebRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewWebRouter(testConfig(), stubLoader{}, nil, logger.Discard())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/booking", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/booking", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="departure_airport"`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler(), logger.Discard())
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	err := Run(context.Background(), "127.0.0.1:-1", http.NotFoundHandler(), logger.Discard())
	assert.Error(t, err)
}
