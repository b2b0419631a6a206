package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dhawal37/ecorides/config"
	"github.com/dhawal37/ecorides/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the unfiltered active-ride listing. Filtered queries and
// everything else go to the repository directly.
type RedisCache struct {
	client   *redis.Client
	ridesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ridesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ridesTTL: ridesTTL,
	}
}

func (c *RedisCache) GetActiveRides(ctx context.Context) ([]domain.Ride, error) {
	data, err := c.client.Get(ctx, activeRidesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rides []domain.Ride
	if err := json.Unmarshal(data, &rides); err != nil {
		return nil, err
	}
	return rides, nil
}

func (c *RedisCache) SetActiveRides(ctx context.Context, rides []domain.Ride) error {
	payload, err := json.Marshal(rides)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activeRidesKey(), payload, c.ridesTTL).Err()
}

func (c *RedisCache) InvalidateActiveRides(ctx context.Context) error {
	return c.client.Del(ctx, activeRidesKey()).Err()
}

func activeRidesKey() string {
	return "cache:rides:active"
}
