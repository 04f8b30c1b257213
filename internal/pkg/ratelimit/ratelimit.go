package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// TokenBucket is an in-memory per-key limiter refilled at perMinute tokens per minute.
// Buckets idle long enough to be full again are dropped, since a missing key
// behaves the same as a full bucket.
type TokenBucket struct {
	capacity  int
	rate      int
	now       func() time.Time
	mu        sync.Mutex
	state     map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens int
	last   time.Time
}

func NewTokenBucket(capacity, perMinute int) *TokenBucket {
	if capacity <= 0 {
		capacity = perMinute
	}
	return &TokenBucket{
		capacity: capacity,
		rate:     perMinute,
		now:      time.Now,
		state:    make(map[string]*bucket),
	}
}

func (l *TokenBucket) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.state[key]
	if !ok {
		l.state[key] = &bucket{tokens: l.capacity - 1, last: now}
		return true, nil
	}

	refill := int(now.Sub(b.last).Minutes() * float64(l.rate))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// refillTime is how long an empty bucket takes to fill. Zero means never.
func (l *TokenBucket) refillTime() time.Duration {
	if l.rate <= 0 {
		return 0
	}
	return time.Duration(l.capacity) * time.Minute / time.Duration(l.rate)
}

// sweep runs at most once per refill time. Caller holds l.mu.
func (l *TokenBucket) sweep(now time.Time) {
	full := l.refillTime()
	if full == 0 || now.Sub(l.lastSweep) < full {
		return
	}
	for key, b := range l.state {
		if now.Sub(b.last) >= full {
			delete(l.state, key)
		}
	}
	l.lastSweep = now
}

// RedisWindow is a fixed one-minute window shared by every instance through Redis.
type RedisWindow struct {
	client    redis.Cmdable
	perMinute int
	prefix    string
	now       func() time.Time
}

func NewRedisWindow(client redis.Cmdable, perMinute int) *RedisWindow {
	return &RedisWindow{
		client:    client,
		perMinute: perMinute,
		prefix:    "teamdesk:ratelimit:",
		now:       time.Now,
	}
}

func (l *RedisWindow) Allow(ctx context.Context, key string) (bool, error) {
	window := l.now().Unix() / 60
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, window)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return incr.Val() <= int64(l.perMinute), nil
}

// NewRedisClient connects with short timeouts so a slow Redis cannot stall logins.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}
