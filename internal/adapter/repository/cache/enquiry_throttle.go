package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "enquiry:throttle:"

// hitScript increments the window counter and starts its expiry on the first
// hit, atomically. Unlike EXPIRE NX it runs on any Redis with scripting.
var hitScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// EnquiryThrottle is a fixed-window counter per client key.
type EnquiryThrottle struct {
	client redis.Scripter
	limit  int64
	window time.Duration
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func NewEnquiryThrottle(client redis.Scripter, limit int64, window time.Duration) *EnquiryThrottle {
	return &EnquiryThrottle{client: client, limit: limit, window: window}
}

// Allow counts one submission for key and reports whether it is within the
// limit for the current window.
func (t *EnquiryThrottle) Allow(ctx context.Context, key string) (bool, error) {
	hits, err := hitScript.Run(ctx, t.client, []string{throttleKeyPrefix + key}, t.window.Milliseconds()).Int64()
	if err != nil {
		return true, fmt.Errorf("throttle %s: %w", key, err)
	}
	return hits <= t.limit, nil
}
