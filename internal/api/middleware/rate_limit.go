package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yoockh/mora/internal/utils"
)

// RateLimiter keeps one token bucket per client IP. Buckets idle for
// longer than the TTL are dropped by Sweep.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    burst,
		ttl:      time.Hour,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	e, ok := rl.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = e
	}
	e.lastAccess = rl.now()
	l := e.limiter
	rl.mu.Unlock()

	return l.Allow()
}

func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	threshold := rl.now().Add(-rl.ttl)
	n := 0
	for ip, e := range rl.limiters {
		if e.lastAccess.Before(threshold) {
			delete(rl.limiters, ip)
			n++
		}
	}
	return n
}

// Run sweeps stale buckets until stop is closed.
func (rl *RateLimiter) Run(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			rl.Sweep()
		case <-stop:
			return
		}
	}
}

func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiError{
				Code:    utils.CodeRateLimited,
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}
