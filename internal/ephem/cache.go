package ephem

import (
	"context"
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/photometry"
)

// DefaultCacheTTL is how long cached results stay valid.
const DefaultCacheTTL = 10 * time.Minute

// CachingProvider memoizes another provider's results per target and
// exact requested instant.
type CachingProvider struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	positions map[cacheKey]cached[Position]
	helio     map[cacheKey]cached[photometry.HelioPosition]
}

type cacheKey struct {
	target string
	at     int64 // Unix nanoseconds
}

type cached[T any] struct {
	value     T
	fetchedAt time.Time
}

// NewCachingProvider wraps inner. A non-positive ttl selects DefaultCacheTTL.
func NewCachingProvider(inner Provider, ttl time.Duration) *CachingProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachingProvider{
		inner:     inner,
		ttl:       ttl,
		now:       time.Now,
		positions: make(map[cacheKey]cached[Position]),
		helio:     make(map[cacheKey]cached[photometry.HelioPosition]),
	}
}

func keyFor(target Target, t time.Time) cacheKey {
	return cacheKey{target: normalizeName(target.Name), at: t.UnixNano()}
}

// Name implements Provider.
func (c *CachingProvider) Name() string { return c.inner.Name() }

// Available implements Provider.
func (c *CachingProvider) Available(target Target) bool { return c.inner.Available(target) }

// Position implements Provider.
func (c *CachingProvider) Position(ctx context.Context, target Target, t time.Time) (Position, error) {
	return lookup(c, c.positions, keyFor(target, t), func() (Position, error) {
		return c.inner.Position(ctx, target, t)
	})
}

// Heliocentric implements Provider.
func (c *CachingProvider) Heliocentric(ctx context.Context, target Target, t time.Time) (photometry.HelioPosition, error) {
	return lookup(c, c.helio, keyFor(target, t), func() (photometry.HelioPosition, error) {
		return c.inner.Heliocentric(ctx, target, t)
	})
}

// Invalidate drops every cached entry for a target.
func (c *CachingProvider) Invalidate(target Target) {
	name := normalizeName(target.Name)
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.positions {
		if k.target == name {
			delete(c.positions, k)
		}
	}
	for k := range c.helio {
		if k.target == name {
			delete(c.helio, k)
		}
	}
}

// Len returns the number of cached entries.
func (c *CachingProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.positions) + len(c.helio)
}

func lookup[T any](c *CachingProvider, m map[cacheKey]cached[T], k cacheKey, fetch func() (T, error)) (T, error) {
	c.mu.RLock()
	e, ok := m[k]
	c.mu.RUnlock()
	if ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.value, nil
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	m[k] = cached[T]{value: v, fetchedAt: c.now()}
	c.mu.Unlock()
	return v, nil
}
