package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/logger"
	pnet "admissions/internal/platform/net"
)

// Limiter decides whether one more request for key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// TokenBucket is an in memory per key limiter
// capacity tokens refill at perMinute, buckets that have refilled completely are pruned
type TokenBucket struct {
	capacity int
	rate     int
	now      func() time.Time

	mu    sync.Mutex
	state map[string]*bucket
	swept time.Time
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewTokenBucket creates a limiter with capacity tokens refilled at perMinute
// a non positive capacity defaults to perMinute
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

// Allow spends one token for key when available
func (l *TokenBucket) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.rate > 0 && now.Sub(l.swept) >= l.refillTime() {
		l.prune(now)
		l.swept = now
	}
	b, ok := l.state[key]
	if !ok {
		if l.capacity <= 0 {
			return false, nil
		}
		l.state[key] = &bucket{tokens: l.capacity - 1, last: now}
		return true, nil
	}
	if refill := l.refill(b, now); refill > 0 {
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

// Len returns the number of tracked keys
func (l *TokenBucket) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state)
}

func (l *TokenBucket) refill(b *bucket, now time.Time) int {
	return int(now.Sub(b.last).Minutes() * float64(l.rate))
}

// refillTime is how long an empty bucket takes to fill up
func (l *TokenBucket) refillTime() time.Duration {
	return time.Duration(l.capacity) * time.Minute / time.Duration(l.rate)
}

// prune drops buckets that are full again, a missing key behaves the same
func (l *TokenBucket) prune(now time.Time) {
	for k, b := range l.state {
		if b.tokens+l.refill(b, now) >= l.capacity {
			delete(l.state, k)
		}
	}
}

// Counter is an expiring shared counter such as redis INCR
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// WindowLimiter is a fixed window limiter over a shared Counter
// it allows limit requests per key per window across all API replicas
type WindowLimiter struct {
	counter Counter
	prefix  string
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewWindowLimiter builds a fixed window limiter, prefix namespaces the counter keys
func NewWindowLimiter(c Counter, prefix string, limit int, window time.Duration) *WindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &WindowLimiter{counter: c, prefix: prefix, limit: limit, window: window, now: time.Now}
}

// Allow increments the current window counter for key
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	n, err := l.counter.Incr(ctx, l.prefix+key+":"+strconv.FormatInt(slot, 10), l.window)
	if err != nil {
		return false, err
	}
	return n <= int64(l.limit), nil
}

// RateLimitOptions configures RateLimit
type RateLimitOptions struct {
	Limiter Limiter
	// Scope labels log lines and the OnLimit callback
	Scope string
	// OnLimit runs once per rejected request
	OnLimit func(scope string)
}

// RateLimit rejects requests over the limit for the client IP with 429
// limiter errors let the request through so a store outage does not block intake
func RateLimit(o RateLimitOptions, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if o.Limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			ok, err := o.Limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.C(r.Context()).Warn().Err(err).Str("scope", o.Scope).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				if o.OnLimit != nil {
					o.OnLimit(o.Scope)
				}
				status, body := pnet.Error(perr.TooManyRequestsf("too many requests, try again later"), pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the caller address without its port
// RealIP only rewrites RemoteAddr for trusted proxies, so this is the socket peer otherwise
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return "unknown"
	}
	return host
}
