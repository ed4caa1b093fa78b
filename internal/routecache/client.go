package routecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/searchbox/config"
	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	airportsPath  = "/api/airports"
	countriesPath = "/api/countries"
	routesPath    = "/api/routes"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

type httpClient interface {
	Do(req *retryablehttp.Request) (*http.Response, error)
}

// Client fetches the catalog collections from the catalog API.
type Client struct {
	baseURL string
	client  httpClient
}

// NewClient builds a client from config. RetryMax 0 means one attempt per
// collection, and a zero timeout means requests never time out.
func NewClient(cfg config.CatalogClientConfig, log *logger.Logger) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = cfg.Timeout()
	if log != nil {
		client.Logger = log.Slog()
	} else {
		client.Logger = nil
	}

	return newClient(cfg.BaseURL, client)
}

func newClient(baseURL string, client httpClient) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *Client) FetchAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	if err := c.getJSON(ctx, airportsPath, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *Client) FetchCountries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	if err := c.getJSON(ctx, countriesPath, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (c *Client) FetchRoutes(ctx context.Context) ([]domain.Route, error) {
	var routes []domain.Route
	if err := c.getJSON(ctx, routesPath, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch %s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
