package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/safarpk/safarpk/config"
	"github.com/safarpk/safarpk/internal/domain"
)

type RedisCache struct {
	client          *redis.Client
	destinationsTTL time.Duration
	statsTTL        time.Duration
}

func NewRedisCache(cfg config.RedisConfig, destinationsTTL, statsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:          redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		destinationsTTL: destinationsTTL,
		statsTTL:        statsTTL,
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetDestinations returns nil, nil on a cache miss.
func (c *RedisCache) GetDestinations(ctx context.Context) ([]domain.Destination, error) {
	var destinations []domain.Destination
	found, err := c.getJSON(ctx, destinationsKey(), &destinations)
	if err != nil || !found {
		return nil, err
	}
	return destinations, nil
}

func (c *RedisCache) SetDestinations(ctx context.Context, destinations []domain.Destination) error {
	return c.setJSON(ctx, destinationsKey(), destinations, c.destinationsTTL)
}

func (c *RedisCache) InvalidateDestinations(ctx context.Context) error {
	return c.client.Del(ctx, destinationsKey()).Err()
}

// GetOverview returns nil, nil on a cache miss.
func (c *RedisCache) GetOverview(ctx context.Context) (*domain.Overview, error) {
	var overview domain.Overview
	found, err := c.getJSON(ctx, overviewKey(), &overview)
	if err != nil || !found {
		return nil, err
	}
	return &overview, nil
}

func (c *RedisCache) SetOverview(ctx context.Context, overview domain.Overview) error {
	return c.setJSON(ctx, overviewKey(), overview, c.statsTTL)
}

// AcquireResetThrottle reports whether a password reset may be sent for email now.
func (c *RedisCache) AcquireResetThrottle(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, resetThrottleKey(email), "sent", ttl).Result()
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func destinationsKey() string {
	return "cache:destinations"
}

func overviewKey() string {
	return "cache:stats:overview"
}

func resetThrottleKey(email string) string {
	return fmt.Sprintf("throttle:reset:%s", strings.ToLower(email))
}
