// Copyright (c) 2026 Freshlist. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/freshlist/freshlist/internal/platform/constants"
)

// RedisThrottleRepository implements [ThrottleRepository] using Redis.
//
// Counters expire on their own after [SignInAttemptWindow], so there is no
// cleanup job to run.
type RedisThrottleRepository struct {
	client *redis.Client
}

// NewThrottleRepository creates a new Redis-backed [ThrottleRepository].
func NewThrottleRepository(client *redis.Client) *RedisThrottleRepository {
	return &RedisThrottleRepository{client: client}
}

// Attempts returns the current failed-attempt count for the key.
// A missing key counts as zero.
func (repository *RedisThrottleRepository) Attempts(ctx context.Context, key string) (int64, error) {
	count, err := repository.client.Get(ctx, constants.RedisPrefixSignInThrottle+key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_throttle_get_failed: %w", err)
	}

	return count, nil
}

// RecordFailure increments the counter and arms the expiry window on the
// first failure.
func (repository *RedisThrottleRepository) RecordFailure(ctx context.Context, key string) (int64, error) {
	fullKey := constants.RedisPrefixSignInThrottle + key

	count, err := repository.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_throttle_incr_failed: %w", err)
	}

	if count == 1 {
		if err := repository.client.Expire(ctx, fullKey, SignInAttemptWindow).Err(); err != nil {
			return count, fmt.Errorf("redis_throttle_expire_failed: %w", err)
		}
	}

	return count, nil
}

// Clear removes the counter after a successful sign-in.
func (repository *RedisThrottleRepository) Clear(ctx context.Context, key string) error {
	if err := repository.client.Del(ctx, constants.RedisPrefixSignInThrottle+key).Err(); err != nil {
		return fmt.Errorf("redis_throttle_del_failed: %w", err)
	}

	return nil
}
