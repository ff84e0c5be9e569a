// Package query is the data-fetching layer behind the vault screen: every
// read or simulation is retried with backoff, tagged with the generation it
// was issued under, and may be served from a short-lived cache.
package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy bounds the retries of one fetch.
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
	MaxTries        uint
}

// DefaultPolicy retries three times within ten seconds.
var DefaultPolicy = Policy{
	InitialInterval: 250 * time.Millisecond,
	MaxInterval:     2 * time.Second,
	MaxElapsed:      10 * time.Second,
	MaxTries:        3,
}

// NoRetry runs the operation exactly once.
var NoRetry = Policy{MaxTries: 1}

// Permanent marks err as not worth retrying.
func Permanent(err error) error { return backoff.Permanent(err) }

// Fetch runs fn under p. Errors wrapped with Permanent stop the retries
// immediately and are returned unwrapped.
func Fetch[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	opts := []backoff.RetryOption{backoff.WithBackOff(b)}
	if p.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(p.MaxElapsed))
	}
	if p.MaxTries > 0 {
		opts = append(opts, backoff.WithMaxTries(p.MaxTries))
	}

	return backoff.Retry(ctx, func() (T, error) { return fn(ctx) }, opts...)
}

// Generation counts account switches. Results issued under an older
// generation are stale and must be dropped.
type Generation struct {
	n atomic.Uint64
}

// Next starts a new generation and returns it.
func (g *Generation) Next() uint64 { return g.n.Add(1) }

// Current returns the live generation.
func (g *Generation) Current() uint64 { return g.n.Load() }

// IsCurrent reports whether gen is still live.
func (g *Generation) IsCurrent(gen uint64) bool { return g.n.Load() == gen }

// ErrMiss is returned by Cache.Get for absent or expired keys.
var ErrMiss = errors.New("cache miss")

type entry[T any] struct {
	val     T
	fetched time.Time
}

// Cache keeps the last good value per key for ttl.
type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[T]
}

// NewCache creates a cache whose entries go stale after ttl.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl, now: time.Now, entries: make(map[string]entry[T])}
}

// Get returns a fresh value for key.
func (c *Cache[T]) Get(key string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetched) > c.ttl {
		var zero T
		return zero, ErrMiss
	}
	return e.val, nil
}

// Put stores val under key.
func (c *Cache[T]) Put(key string, val T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{val: val, fetched: c.now()}
}

// Invalidate drops every entry.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Load serves key from the cache or fetches it under p and caches the result.
func (c *Cache[T]) Load(ctx context.Context, key string, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	if v, err := c.Get(key); err == nil {
		return v, nil
	}
	v, err := Fetch(ctx, p, fn)
	if err != nil {
		return v, err
	}
	c.Put(key, v)
	return v, nil
}
