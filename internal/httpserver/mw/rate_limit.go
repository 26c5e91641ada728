package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/metrics"
	"github.com/MrSnakeDoc/langdocs/internal/utils"
)

// RateLimitConfig sizes the per client token buckets.
// Zero values fall back to a 1 token bucket refilled once a minute.
type RateLimitConfig struct {
	Burst      int
	PerMinute  int
	MaxClients int           // idle buckets are swept early past this size (0 = unbounded)
	SweepEvery time.Duration // default 1m
	IdleTTL    time.Duration // default 15m
	TrustProxy bool
}

type bucket struct {
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

type limiter struct {
	cfg      RateLimitConfig
	perSec   float64
	capacity float64

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	cfg.Burst = max(cfg.Burst, 1)
	cfg.PerMinute = max(cfg.PerMinute, 1)
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	return &limiter{
		cfg:       cfg,
		perSec:    float64(cfg.PerMinute) / 60,
		capacity:  float64(cfg.Burst),
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

// allow takes one token from the client's bucket. When none is left it
// returns the number of seconds until the next token.
func (l *limiter) allow(client string, now time.Time) (ok bool, remaining int, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, found := l.buckets[client]
	if !found {
		if l.cfg.MaxClients > 0 && len(l.buckets) >= l.cfg.MaxClients {
			l.sweep(now)
		}
		b = &bucket{tokens: l.capacity, updated: now}
		l.buckets[client] = b
	}
	b.lastSeen = now

	if dt := now.Sub(b.updated).Seconds(); dt > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+dt*l.perSec)
		b.updated = now
	}

	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / l.perSec))
		return false, 0, max(wait, 1)
	}

	b.tokens--
	return true, int(b.tokens), 0
}

// sweep drops idle buckets; l.mu must be held
func (l *limiter) sweep(now time.Time) {
	for client, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.cfg.IdleTTL {
			delete(l.buckets, client)
		}
	}
	l.lastSweep = now
}

func (l *limiter) sweepMaybe(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= l.cfg.SweepEvery {
		l.sweep(now)
	}
}

// RateLimit limits requests per client IP with a token bucket and answers
// 429 with Retry-After once the bucket is empty.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			l.sweepMaybe(now)

			ok, remaining, retryAfter := l.allow(utils.ClientIP(r, l.cfg.TrustProxy), now)

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				metrics.RateLimited.Inc()
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
