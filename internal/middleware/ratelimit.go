package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/namaztracker/namaz/internal/ctxkeys"
)

// Limiter decides whether one more request from key fits its budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter keeps a sliding window of request times per key in process.
type MemoryLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	times := l.seen[key]
	first := 0
	for first < len(times) && !times[first].After(cutoff) {
		first++
	}
	times = times[first:]

	if len(times) >= l.limit {
		l.seen[key] = times
		return false, nil
	}
	l.seen[key] = append(times, now)
	return true, nil
}

// Sweep drops keys whose newest request has left the window.
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, times := range l.seen {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(l.seen, key)
		}
	}
}

// Run sweeps every interval until stop is closed.
func (l *MemoryLimiter) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-stop:
			return
		}
	}
}

// redisCounter is the subset of *redis.Client the limiter uses.
type redisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisLimiter counts requests in fixed windows shared by every server
// instance pointed at the same redis.
type RedisLimiter struct {
	client redisCounter
	name   string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, name string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		name:   name,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	k := fmt.Sprintf("ratelimit:%s:%s:%d", l.name, key, slot)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}
	if n == 1 {
		err = l.client.Expire(ctx, k, l.window).Err()
		if err != nil {
			return false, fmt.Errorf("failed to expire counter: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}

// Limit rejects requests over the limiter's budget with 429. When the limiter
// itself fails the request is let through.
func Limit(l Limiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)
			ok, err := l.Allow(r.Context(), ip)
			if err != nil {
				ctxkeys.Logger(r.Context()).Error("rate limiter unavailable", "error", err)
				ok = true
			}
			if !ok {
				ctxkeys.Logger(r.Context()).Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next(w, r)
		}
	}
}

// getClientIP uses the connection address. Behind a proxy configured with
// TRUST_PROXY it takes the first X-Forwarded-For hop, then X-Real-IP.
func getClientIP(r *http.Request) string {
	if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.TrustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
