package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trichyfresh/connect/internal/core/domain"
)

const (
	checkoutGuardPrefix = "checkout:"
	checkoutGuardTTL    = 30 * time.Second

	lookupKeyPrefix = "lookup:"
	lookupTTL       = 5 * time.Minute
)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// SetCheckoutGuard is a SetNX mutual-exclusion key; the TTL bounds how long a
// crashed checkout can block retries.
func (r *RedisAdapter) SetCheckoutGuard(ctx context.Context, key string) (bool, error) {
	return r.client.SetNX(ctx, checkoutGuardPrefix+key, 1, checkoutGuardTTL).Result()
}

func (r *RedisAdapter) ClearCheckoutGuard(ctx context.Context, key string) error {
	return r.client.Del(ctx, checkoutGuardPrefix+key).Err()
}

func (r *RedisAdapter) GetLookups(ctx context.Context, key string) ([]domain.Lookup, bool, error) {
	data, err := r.client.Get(ctx, lookupKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var values []domain.Lookup
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, false, err
	}
	return values, true, nil
}

func (r *RedisAdapter) SetLookups(ctx context.Context, key string, values []domain.Lookup) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, lookupKeyPrefix+key, data, lookupTTL).Err()
}
