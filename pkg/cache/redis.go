package cache

import (
	"context"
	"fmt"
	"time"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/config"
	"fitsocial/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// AcquireLock takes a short-lived lock on key. It returns false when another
// request already holds it.
func AcquireLock(ctx context.Context, client *redis.Client, key string, ttl time.Duration) (bool, error) {
	return client.SetNX(ctx, "lock:"+key, "1", ttl).Result()
}

func ReleaseLock(ctx context.Context, client *redis.Client, key string) {
	client.Del(ctx, "lock:"+key)
}

// ToggleLockTTL bounds how long a crashed request can hold a toggle lock.
const ToggleLockTTL = 5 * time.Second

// WithLock runs fn while holding the lock on key, so a double tap cannot race
// the first request. A held lock yields apperror.ErrConflict. Without Redis,
// or when Redis fails, fn runs unguarded.
func WithLock(ctx context.Context, client *redis.Client, log *logger.Logger, key string, fn func() error) error {
	if client == nil {
		return fn()
	}

	acquired, err := AcquireLock(ctx, client, key, ToggleLockTTL)
	if err != nil {
		log.Warn("Failed to acquire lock %s: %v", key, err)
		return fn()
	}
	if !acquired {
		return fmt.Errorf("%w: request already in progress", apperror.ErrConflict)
	}
	defer ReleaseLock(ctx, client, key)

	return fn()
}

// ExploreVersionKey is bumped whenever the set of posts changes so cached
// explore pages keyed by the old version stop being read.
const ExploreVersionKey = "feed:explore:version"

func BumpExploreVersion(ctx context.Context, client *redis.Client) error {
	return client.Incr(ctx, ExploreVersionKey).Err()
}

// ExploreVersion returns the current explore version, 0 when unset.
func ExploreVersion(ctx context.Context, client *redis.Client) (int64, error) {
	v, err := client.Get(ctx, ExploreVersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}
