package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// Redis is a fixed-window counter shared by every instance of the service.
// It fails open when Redis is unreachable.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	script *redis.Script
}

func NewRedis(client *redis.Client, limit int, window time.Duration, prefix string) *Redis {
	return &Redis{
		client: client,
		limit:  limit,
		window: window,
		prefix: strings.TrimSuffix(prefix, ":"),
		script: redis.NewScript(fixedWindowScript),
	}
}

func (l *Redis) key(k string) string {
	if l.prefix == "" {
		return k
	}
	return l.prefix + ":" + k
}

func (l *Redis) Allow(ctx context.Context, key string) bool {
	if key == "" || l.limit <= 0 || l.window <= 0 {
		return true
	}
	redisKey := l.key(key)
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{redisKey}, ttl, l.limit).Int64()
	if err != nil {
		logrus.WithError(err).WithField("key", redisKey).Warn("rate limiter unavailable")
		return true
	}
	return allowed == 1
}
