// Package querycache is the read cache of the data-access layer.
//
// Reads are stored under a Key for the staleness window of the key's scope.
// Writes go through Mutate, which runs the write and, only when it succeeds,
// drops every key the Rules derive from the written entity. A failed write
// leaves the cache untouched.
package querycache

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// Cache is safe for concurrent use
type Cache struct {
	items      *ttlcache.Cache[Key, any]
	policy     Policy
	rules      Rules
	group      singleflight.Group
	retries    int
	retryDelay time.Duration
	logger     *slog.Logger

	// epoch moves on every invalidation so a load that raced a write is not stored
	epoch atomic.Uint64
}

// Option configures a Cache
type Option func(*Cache)

// WithPolicy sets the staleness windows
func WithPolicy(p Policy) Option {
	return func(c *Cache) { c.policy = p }
}

// WithRules replaces the invalidation map
func WithRules(r Rules) Option {
	return func(c *Cache) { c.rules = r }
}

// WithRetries sets how many extra attempts a failed load gets, and the pause between them
func WithRetries(n int, delay time.Duration) Option {
	return func(c *Cache) {
		if n < 0 {
			n = 0
		}
		c.retries = n
		c.retryDelay = delay
	}
}

// WithLogger sets the logger used for failed loads and writes
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New creates a cache and starts its expiry loop. Call Close to stop it.
func New(opts ...Option) *Cache {
	c := &Cache{
		items: ttlcache.New(
			// a hit must not extend the staleness window
			ttlcache.WithDisableTouchOnHit[Key, any](),
		),
		policy:     DefaultPolicy(),
		rules:      DefaultRules(),
		retries:    1,
		retryDelay: 200 * time.Millisecond,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.items.Start()
	return c
}

// Close stops the cache background goroutine and releases resources
func (c *Cache) Close() {
	c.items.Stop()
}

// Len is the number of live entries
func (c *Cache) Len() int {
	return c.items.Len()
}

// Has reports whether key holds a fresh value
func (c *Cache) Has(key Key) bool {
	return c.items.Get(key) != nil
}

// Fetch returns the fresh cached value of key or loads it.
// Concurrent misses on one key share a single load. Load errors are returned, never cached.
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	if item := c.items.Get(key); item != nil {
		if v, ok := item.Value().(T); ok {
			return v, nil
		}
	}

	// a load started before an invalidation is never shared with a read started after it
	epoch := c.epoch.Load()
	v, err, _ := c.group.Do(key.String()+"#"+strconv.FormatUint(epoch, 10), func() (any, error) {
		v, err := c.loadWithRetry(ctx, key, func(ctx context.Context) (any, error) {
			return load(ctx)
		})
		if err != nil {
			return nil, err
		}
		if c.epoch.Load() == epoch {
			c.items.Set(key, v, c.policy.StaleTime(key.Scope))
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *Cache) loadWithRetry(ctx context.Context, key Key, load func(context.Context) (any, error)) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		v, err := load(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		c.logger.Warn("Query load failed",
			slog.String("key", key.String()),
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

// Mutate runs write and invalidates the keys the rules attach to m for the event write returns.
// When write fails the error is logged and returned and no key is touched.
func (c *Cache) Mutate(ctx context.Context, m Mutation, write func(context.Context) (Event, error)) error {
	ev, err := write(ctx)
	if err != nil {
		c.logger.Error("Mutation failed", slog.String("mutation", string(m)), slog.Any("error", err))
		return err
	}
	n := c.Apply(m, ev)
	c.logger.Debug("Mutation applied",
		slog.String("mutation", string(m)),
		slog.String("id", ev.ID),
		slog.Int("invalidated", n))
	return nil
}

// Apply invalidates the keys of m for ev and returns how many entries were dropped
func (c *Cache) Apply(m Mutation, ev Event) int {
	targets := c.rules.Targets(m)
	if len(targets) == 0 {
		return 0
	}
	return c.invalidate(func(k Key) bool {
		for _, t := range targets {
			if k.Scope != t.Scope {
				continue
			}
			v, ok := t.value(ev)
			// a target whose param is unknown falls back to the whole scope
			if !ok || k.matches(t.Scope, v) {
				return true
			}
		}
		return false
	})
}

// Invalidate drops the given keys
func (c *Cache) Invalidate(keys ...Key) {
	c.epoch.Add(1)
	for _, k := range keys {
		c.items.Delete(k)
	}
}

// InvalidateScope drops every key of the scope
func (c *Cache) InvalidateScope(s Scope) int {
	return c.invalidate(func(k Key) bool { return k.Scope == s })
}

func (c *Cache) invalidate(match func(Key) bool) int {
	c.epoch.Add(1)
	n := 0
	for _, k := range c.items.Keys() {
		if match(k) {
			c.items.Delete(k)
			n++
		}
	}
	return n
}
