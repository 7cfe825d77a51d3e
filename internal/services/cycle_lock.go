package services

import (
	"context"
	"fmt"
	"time"

	"dating-backend/internal/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const matcherLockKey = "dating:matcher:lock"

// CycleLock is a lease shared by every replica running a matcher
type CycleLock interface {
	// TryLock takes the lease for ttl. ok is false if another holder has it.
	TryLock(ctx context.Context, ttl time.Duration) (token string, ok bool, err error)
	// Unlock releases the lease if token still owns it
	Unlock(ctx context.Context, token string) error
}

// unlockScript deletes the key only when it still holds our token, so an
// expired lease taken over by another replica is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type lockClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisCycleLock implements CycleLock with SET NX PX
type RedisCycleLock struct {
	rdb lockClient
	key string
}

// NewRedisClient connects to Redis and checks the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisCycleLock creates a lock on the given client. An empty key uses the default.
func NewRedisCycleLock(rdb lockClient, key string) *RedisCycleLock {
	if key == "" {
		key = matcherLockKey
	}
	return &RedisCycleLock{rdb: rdb, key: key}
}

// TryLock implements CycleLock
func (l *RedisCycleLock) TryLock(ctx context.Context, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to take matcher lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Unlock implements CycleLock
func (l *RedisCycleLock) Unlock(ctx context.Context, token string) error {
	if err := unlockScript.Run(ctx, l.rdb, []string{l.key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release matcher lock: %w", err)
	}
	return nil
}
