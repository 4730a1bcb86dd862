package cache

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mora/internal/metrics"
)

type BreakerSettings struct {
	Name string
	// Consecutive failures before the breaker opens.
	MaxFailures uint32
	// How long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
}

// BreakerCache stops calling a failing backend for OpenTimeout once
// MaxFailures consecutive calls have failed. While open, calls fail fast
// with gobreaker.ErrOpenState.
type BreakerCache struct {
	inner Cache
	cb    *gobreaker.CircuitBreaker[bool]
}

func NewBreakerCache(inner Cache, s BreakerSettings, log *logrus.Logger) *BreakerCache {
	if s.Name == "" {
		s.Name = "cache"
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if log == nil {
		log = logrus.New()
	}
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[bool](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= s.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return &BreakerCache{inner: inner, cb: cb}
}

func (b *BreakerCache) State() gobreaker.State { return b.cb.State() }

func (b *BreakerCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	return b.cb.Execute(func() (bool, error) {
		return b.inner.GetJSON(ctx, key, dst)
	})
}

func (b *BreakerCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	_, err := b.cb.Execute(func() (bool, error) {
		return true, b.inner.SetJSON(ctx, key, val, ttl)
	})
	return err
}

func (b *BreakerCache) Del(ctx context.Context, keys ...string) error {
	_, err := b.cb.Execute(func() (bool, error) {
		return true, b.inner.Del(ctx, keys...)
	})
	return err
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
