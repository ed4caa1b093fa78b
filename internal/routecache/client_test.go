package routecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Domenick1991/searchbox/config"
	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.CatalogClientConfig{BaseURL: srv.URL + "/", TimeoutSeconds: 5}, logger.Discard())
}

func serveCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case airportsPath:
		w.Write([]byte(`[{"id":1,"name":"Noi Bai","code":"HAN","country_id":84},{"id":2,"name":"Tan Son Nhat","code":"SGN","country_id":84}]`))
	case countriesPath:
		w.Write([]byte(`[{"id":84,"name":"Vietnam","code":"VN"}]`))
	case routesPath:
		w.Write([]byte(`[{"id":1,"depart_airport_id":1,"arrive_airport_id":2}]`))
	default:
		http.NotFound(w, r)
	}
}

func TestClient_Fetch(t *testing.T) {
	client := catalogServer(t, serveCatalog)
	ctx := context.Background()

	airports, err := client.FetchAirports(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Airport{
		{ID: 1, Name: "Noi Bai", Code: "HAN", CountryID: 84},
		{ID: 2, Name: "Tan Son Nhat", Code: "SGN", CountryID: 84},
	}, airports)

	countries, err := client.FetchCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Country{{ID: 84, Name: "Vietnam", Code: "VN"}}, countries)

	routes, err := client.FetchRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Route{{ID: 1, DepartAirportID: 1, ArriveAirportID: 2}}, routes)
}

func TestClient_FetchStatusError(t *testing.T) {
	client := catalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := client.FetchRoutes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), routesPath)
}

func TestClient_FetchInvalidJSON(t *testing.T) {
	client := catalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.FetchAirports(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode "+airportsPath)
}

func TestClient_FetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(serveCatalog))
	url := srv.URL
	srv.Close()

	client := NewClient(config.CatalogClientConfig{BaseURL: url}, nil)
	_, err := client.FetchCountries(context.Background())
	assert.Error(t, err)
}

func TestClient_LoadFetchesConcurrently(t *testing.T) {
	var inFlight int32
	allStarted := make(chan struct{})

	client := catalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&inFlight, 1) == 3 {
			close(allStarted)
		}
		select {
		case <-allStarted:
		case <-time.After(2 * time.Second):
			http.Error(w, "fetches were serialized", http.StatusInternalServerError)
			return
		}
		serveCatalog(w, r)
	})

	snap, err := client.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Airports, 2)
	assert.Len(t, snap.Countries, 1)
	assert.Len(t, snap.Routes, 1)
}

func TestClient_LoadFailsWhenAnyFetchFails(t *testing.T) {
	client := catalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == countriesPath {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		serveCatalog(w, r)
	})

	snap, err := client.Load(context.Background())
	assert.Nil(t, snap)
	assert.Error(t, err)
}

func TestPending_WaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	client := catalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		serveCatalog(w, r)
	})
	defer close(release)

	pending := client.Prefetch(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := pending.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
