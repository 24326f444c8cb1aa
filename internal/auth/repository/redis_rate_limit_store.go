package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	"github.com/allisson/streamgate/internal/clock"
)

// redisKeyPrefix namespaces rate-limit counters in a shared Redis database.
const redisKeyPrefix = "streamgate:ratelimit:"

// fixedWindowScript increments the counter and starts the window on first use.
// Running as a script makes the increment and expiry atomic per key.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisRateLimitStore keeps fixed-window counters in Redis so every replica sees the
// same counts. Counter expiry is delegated to Redis key TTLs.
type RedisRateLimitStore struct {
	client *redis.Client
	clock  clock.Clock
}

// NewRedisRateLimitStore connects to Redis and verifies the connection.
func NewRedisRateLimitStore(ctx context.Context, cfg RedisConfig, clk clock.Clock) (*RedisRateLimitStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewRedisRateLimitStoreWithClient(client, clk), nil
}

// NewRedisRateLimitStoreWithClient wraps an existing client.
func NewRedisRateLimitStoreWithClient(client *redis.Client, clk clock.Clock) *RedisRateLimitStore {
	if clk == nil {
		clk = clock.Real{}
	}
	return &RedisRateLimitStore{client: client, clock: clk}
}

// Check counts a request for key with the same semantics as MemoryRateLimitStore.
func (s *RedisRateLimitStore) Check(
	ctx context.Context,
	key string,
	window time.Duration,
	max int,
) (*authDomain.RateLimitDecision, error) {
	windowMs := window.Milliseconds()
	if windowMs < 1 {
		windowMs = 1
	}

	result, err := fixedWindowScript.Run(ctx, s.client, []string{redisKeyPrefix + key}, windowMs).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected rate limit script reply: %v", result)
	}

	now := s.clock.Now()
	resetAt := now.Add(time.Duration(result[1]) * time.Millisecond)
	decision := buildDecision(int(result[0]), max, resetAt, now)

	return &decision, nil
}

// Sweep is a no-op: Redis evicts counters when their window TTL lapses.
func (s *RedisRateLimitStore) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	return 0, nil
}

// Ping checks the Redis connection.
func (s *RedisRateLimitStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisRateLimitStore) Close() error {
	return s.client.Close()
}
