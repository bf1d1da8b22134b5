package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/evyataryagoni/countryselect/internal/logger"
	"github.com/redis/go-redis/v9"
)

// fixedWindow counts requests per key in the current window and returns the count
// KEYS[1] = counter key, ARGV[1] = window length in milliseconds
var fixedWindow = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter shares a fixed-window quota between every server using the same Redis
//
// Key format: "ratelimit:{key}:{window number}"
// Counters expire on their own once the window has passed
type RedisLimiter struct {
	client *redis.Client
	ctx    context.Context
	quota  Quota
	now    func() time.Time
	logger *logger.Logger
}

// NewRedisLimiter connects to Redis and creates a limiter for the quota
func NewRedisLimiter(addr, password string, db int, quota Quota, log *logger.Logger) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %w", err)
	}

	return NewRedisLimiterFromClient(client, quota, log), nil
}

// NewRedisLimiterFromClient creates a limiter on an existing client
// The limiter takes ownership of the client and closes it on Close
func NewRedisLimiterFromClient(client *redis.Client, quota Quota, log *logger.Logger) *RedisLimiter {
	if log == nil {
		log = logger.NewNop()
	}
	return &RedisLimiter{
		client: client,
		ctx:    context.Background(),
		quota:  quota.normalize(),
		now:    time.Now,
		logger: log.WithComponent("RedisLimiter"),
	}
}

func (l *RedisLimiter) windowKey(key string) string {
	window := l.now().UnixMilli() / l.quota.Window.Milliseconds()
	return fmt.Sprintf("ratelimit:%s:%d", key, window)
}

// Allow increments the key's counter for the current window
// Redis errors fail open so an outage does not take the API down with it
func (l *RedisLimiter) Allow(key string) bool {
	count, err := fixedWindow.Run(l.ctx, l.client, []string{l.windowKey(key)}, l.quota.Window.Milliseconds()).Int64()
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("Rate limit check failed, allowing request")
		return true
	}
	return count <= int64(l.quota.Limit)
}

// Close closes the Redis connection
func (l *RedisLimiter) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}
