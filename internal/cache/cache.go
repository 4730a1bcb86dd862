package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encodable values. Callers treat any error as a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Nop is used when no cache backend is configured; every lookup misses.
type Nop struct{}

func (Nop) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Del(context.Context, ...string) error { return nil }
