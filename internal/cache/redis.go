package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/searchbox/config"
	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// Collection names double as the cache key suffix.
const (
	Airports    = "airports"
	Countries   = "countries"
	Routes      = "routes"
	Airlines    = "airlines"
	SeatClasses = "seatclasses"
)

type RedisCache struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), catalogTTL)
}

func NewRedisCacheFromClient(client *redis.Client, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, catalogTTL: catalogTTL}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetCollection decodes a cached catalog collection into dest.
func (c *RedisCache) GetCollection(ctx context.Context, name string, dest interface{}) error {
	data, err := c.client.Get(ctx, catalogKey(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode cached %s: %w", name, err)
	}
	return nil
}

func (c *RedisCache) SetCollection(ctx context.Context, name string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey(name), payload, c.catalogTTL).Err()
}

// IncrRouteSearches bumps the search counter of a route.
func (c *RedisCache) IncrRouteSearches(ctx context.Context, from, to int64) error {
	return c.client.ZIncrBy(ctx, popularRoutesKey(), 1, routeMember(from, to)).Err()
}

// PopularRoutes returns the most searched routes, most searched first.
func (c *RedisCache) PopularRoutes(ctx context.Context, limit int) ([]domain.RoutePopularity, error) {
	if limit <= 0 {
		return []domain.RoutePopularity{}, nil
	}
	entries, err := c.client.ZRevRangeWithScores(ctx, popularRoutesKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis popular routes: %w", err)
	}

	out := make([]domain.RoutePopularity, 0, len(entries))
	for _, e := range entries {
		member, _ := e.Member.(string)
		from, to, ok := parseRouteMember(member)
		if !ok {
			continue
		}
		out = append(out, domain.RoutePopularity{DepartAirportID: from, ArriveAirportID: to, Searches: int64(e.Score)})
	}
	return out, nil
}

func catalogKey(name string) string {
	return "catalog:" + name
}

func popularRoutesKey() string {
	return "popular:routes"
}

func routeMember(from, to int64) string {
	return fmt.Sprintf("%d:%d", from, to)
}

func parseRouteMember(member string) (int64, int64, bool) {
	a, b, found := strings.Cut(member, ":")
	if !found {
		return 0, 0, false
	}
	from, err := strconv.ParseInt(a, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	to, err := strconv.ParseInt(b, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return from, to, true
}
