package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fxconvert:ratelimit:"

// hitScript increments the counter and arms its expiry on the first hit of a window.
// It returns the new count and the remaining TTL in milliseconds.
var hitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 or redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

// WindowStore shares rate limit windows across service instances.
type WindowStore struct {
	rdb redis.UniversalClient
}

func (s *WindowStore) Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, time.Time, error) {
	res, err := hitScript.Run(ctx, s.rdb, []string{keyPrefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis window hit for %q: %w", key, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("redis window hit for %q: unexpected reply %v", key, res)
	}

	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 || ttl > window {
		ttl = window
	}
	return res[0], now.Add(ttl - window), nil
}

func NewWindowStore(client redis.UniversalClient) *WindowStore {
	return &WindowStore{rdb: client}
}

func Connect(ctx context.Context, options *redis.Options) (*redis.Client, error) {
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", options.Addr, err)
	}
	return client, nil
}
