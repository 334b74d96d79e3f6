package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds a shared load once it no longer follows the caller's context.
const DefaultLoadTimeout = 15 * time.Second

// TTLCache memoizes the outcome of a single load for a fixed time-to-live.
// A failed load is memoized too, so the TTL bounds upstream calls while the
// upstream is failing; only Invalidate forces an earlier retry.
//
// Concurrent misses share one load. The load runs detached from any single
// caller's cancellation, and each caller stops waiting when its own context ends.
type TTLCache[T any] struct {
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time

	mu         sync.RWMutex
	current    entry[T]
	valid      bool
	generation uint64

	group singleflight.Group
}

type entry[T any] struct {
	value    T
	err      error
	storedAt time.Time
}

// NewTTLCache creates a cache; a nil now uses time.Now.
func NewTTLCache[T any](ttl time.Duration, now func() time.Time) *TTLCache[T] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[T]{ttl: ttl, loadTimeout: DefaultLoadTimeout, now: now}
}

// WithLoadTimeout overrides DefaultLoadTimeout.
func (c *TTLCache[T]) WithLoadTimeout(d time.Duration) *TTLCache[T] {
	c.loadTimeout = d
	return c
}

// TTL returns the configured time-to-live.
func (c *TTLCache[T]) TTL() time.Duration { return c.ttl }

// Peek returns the memoized value and when it was stored, if it is fresh and
// came from a successful load.
func (c *TTLCache[T]) Peek() (T, time.Time, bool) {
	e, ok := c.fresh()
	if !ok || e.err != nil {
		var zero T
		return zero, time.Time{}, false
	}
	return e.value, e.storedAt, true
}

// Get returns the fresh memoized outcome or runs load to replace it. A
// memoized failure is returned as its original error until the TTL passes.
func (c *TTLCache[T]) Get(ctx context.Context, load func(context.Context) (T, error)) (T, time.Time, error) {
	if e, ok := c.fresh(); ok {
		return e.value, e.storedAt, e.err
	}

	c.mu.RLock()
	gen := c.generation
	c.mu.RUnlock()

	ch := c.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		// Another flight may have filled the cache while this one queued.
		if e, ok := c.fresh(); ok {
			return e, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		v, err := load(loadCtx)
		return c.store(gen, v, err), nil
	})

	select {
	case res := <-ch:
		e := res.Val.(entry[T])
		return e.value, e.storedAt, e.err
	case <-ctx.Done():
		var zero T
		return zero, time.Time{}, ctx.Err()
	}
}

// Invalidate drops the memoized outcome. A load already in flight will not
// repopulate the cache with data fetched before the invalidation.
func (c *TTLCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = entry[T]{}
	c.valid = false
	c.generation++
}

func (c *TTLCache[T]) store(gen uint64, v T, err error) entry[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry[T]{value: v, err: err, storedAt: c.now()}
	if gen == c.generation {
		c.current = e
		c.valid = true
	}
	return e
}

func (c *TTLCache[T]) fresh() (entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.valid && c.now().Sub(c.current.storedAt) < c.ttl {
		return c.current, true
	}
	return entry[T]{}, false
}
