package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connection tuning for the booking locks. Every Redis call this service
// makes is a single SETNX or EVAL round trip, so timeouts stay well under the
// lock TTL and the pool is sized for bursts of concurrent bookings rather
// than long-lived pipelines.
const (
	dialTimeout  = 3 * time.Second
	callTimeout  = 500 * time.Millisecond
	poolSize     = 32
	minIdleConns = 2
)

// NewRedisClient connects the lock backend and verifies it with a ping.
func NewRedisClient(addr, username, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            addr,
		Username:        username,
		Password:        password,
		DB:              0,
		DialTimeout:     dialTimeout,
		ReadTimeout:     callTimeout,
		WriteTimeout:    callTimeout,
		PoolSize:        poolSize,
		MinIdleConns:    minIdleConns,
		ConnMaxIdleTime: 5 * time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}
