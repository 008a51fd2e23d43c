package verification

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fixed-window counter: first INCR in a window sets the expiry.
const startAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisStartLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
	prefix string
}

// NewRedisStartLimiter returns a StartLimiter that allows at most max code
// requests per phone number per window. Fails open: if Redis is unavailable
// the request is allowed rather than blocking verification entirely.
func NewRedisStartLimiter(client *redis.Client, window time.Duration, max int) StartLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisStartLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "verify:start:",
	}
}

func (l *redisStartLimiter) Allow(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	count, err := l.client.Eval(ctx, startAllowScript, []string{l.prefix + key}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
