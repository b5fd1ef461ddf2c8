package ephem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/photometry"
)

// countingProvider counts calls through to a wrapped provider.
type countingProvider struct {
	Provider
	positions, helio int
}

func (c *countingProvider) Position(ctx context.Context, tg Target, t time.Time) (Position, error) {
	c.positions++
	return c.Provider.Position(ctx, tg, t)
}

func (c *countingProvider) Heliocentric(ctx context.Context, tg Target, t time.Time) (photometry.HelioPosition, error) {
	c.helio++
	return c.Provider.Heliocentric(ctx, tg, t)
}

func TestCachingProvider(t *testing.T) {
	inner := &countingProvider{Provider: NewMeeusProvider()}
	c := NewCachingProvider(inner, time.Minute)
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	ctx := context.Background()
	mars := target(t, "Mars")
	at := time.Date(2025, 3, 1, 0, 0, 10, 0, time.UTC)

	first, err := c.Position(ctx, mars, at)
	if err != nil {
		t.Fatal(err)
	}
	// Same instant: served from cache.
	second, err := c.Position(ctx, mars, at)
	if err != nil {
		t.Fatal(err)
	}
	if inner.positions != 1 || first.Apparent != second.Apparent || first.Delta != second.Delta {
		t.Errorf("calls = %d, want 1 with identical results", inner.positions)
	}

	// Later in the same minute: a new entry stamped with its own time.
	later := at.Add(49 * time.Second)
	third, err := c.Position(ctx, mars, later)
	if err != nil {
		t.Fatal(err)
	}
	if inner.positions != 2 {
		t.Errorf("calls = %d, want 2", inner.positions)
	}
	if !third.Time.Equal(later) {
		t.Errorf("Time = %v, want %v", third.Time, later)
	}
	if third.Apparent == first.Apparent {
		t.Error("a different instant returned the cached position")
	}

	// Expired.
	clock = clock.Add(2 * time.Minute)
	if _, err := c.Position(ctx, mars, at); err != nil {
		t.Fatal(err)
	}
	if inner.positions != 3 {
		t.Errorf("calls after expiry = %d, want 3", inner.positions)
	}

	if _, err := c.Heliocentric(ctx, mars, at); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Heliocentric(ctx, mars, at); err != nil {
		t.Fatal(err)
	}
	if inner.helio != 1 {
		t.Errorf("heliocentric calls = %d, want 1", inner.helio)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (two positions, one heliocentric)", c.Len())
	}

	c.Invalidate(mars)
	if c.Len() != 0 {
		t.Errorf("Len() after Invalidate = %d", c.Len())
	}
}

func TestCachingProvider_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{Provider: failingProvider{err: errors.New("boom")}}
	c := NewCachingProvider(inner, 0)
	if c.ttl != DefaultCacheTTL {
		t.Errorf("ttl = %v, want default", c.ttl)
	}
	mars := target(t, "Mars")
	for range 2 {
		if _, err := c.Position(context.Background(), mars, time.Now()); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.positions != 2 || c.Len() != 0 {
		t.Errorf("calls = %d, Len = %d", inner.positions, c.Len())
	}
}

func TestFixedProvider(t *testing.T) {
	p := NewFixedProvider(astro.DefaultStarCatalog())
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	sirius := target(t, "Sirius")
	if !p.Available(sirius) {
		t.Fatal("Sirius not available")
	}
	pos, err := p.Position(ctx, sirius, at)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Apparent != sirius.Star.Position || pos.Delta != 0 {
		t.Errorf("Sirius = %+v", pos)
	}
	if _, err := p.Heliocentric(ctx, sirius, at); !errors.Is(err, ErrNoData) {
		t.Errorf("Heliocentric err = %v, want ErrNoData", err)
	}

	mars := target(t, "Mars")
	if _, err := p.Position(ctx, mars, at); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Mars err = %v, want ErrUnknownTarget", err)
	}
	helio := photometry.HelioPosition{L: 100, B: 1, R: 1.6}
	p.Set("MARS", FixedEntry{
		Position: astro.Equatorial{RA: 8, Dec: 25},
		Delta:    0.64, SunDistance: 1.6, EarthSunDistance: 0.98,
		Helio: &helio,
	})
	pos, err = p.Position(ctx, mars, at)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Geometry().EarthDistance != 0.64 {
		t.Errorf("Mars Δ = %v", pos.Delta)
	}
	if h, err := p.Heliocentric(ctx, mars, at); err != nil || h != helio {
		t.Errorf("Heliocentric = %+v, %v", h, err)
	}
}
