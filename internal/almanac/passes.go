package almanac

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/riseset"
	"github.com/litescript/ls-almanac/internal/timescale"
)

// MaxPassDays bounds the window of a pass plan.
const MaxPassDays = 31

// PassStatus classifies a pass relative to the current time.
type PassStatus int

const (
	PassPast   PassStatus = iota // pass has ended
	PassNow                      // in progress
	PassNext                     // next upcoming pass
	PassFuture                   // upcoming, not next
)

// String returns the status name.
func (s PassStatus) String() string {
	switch s {
	case PassPast:
		return "PAST"
	case PassNow:
		return "NOW"
	case PassNext:
		return "NEXT"
	case PassFuture:
		return "FUTURE"
	default:
		return "?"
	}
}

// Pass is one interval a target spends above its standard altitude.
// A pass cut by the window edge has no rise or no set; Start and End are
// then the window bounds.
type Pass struct {
	Rise    riseset.Event
	Transit riseset.Event
	Set     riseset.Event

	HasRise    bool
	HasTransit bool
	HasSet     bool

	Start       time.Time
	End         time.Time
	MaxAltitude float64 // degrees
	Status      PassStatus
}

// PassPlan lists a target's passes over a window of whole UT days.
type PassPlan struct {
	Target      ephem.Target
	Site        astro.GeoLocation
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Passes      []Pass
}

// Current returns the pass in progress, or nil.
func (p *PassPlan) Current() *Pass {
	for i := range p.Passes {
		if p.Passes[i].Status == PassNow {
			return &p.Passes[i]
		}
	}
	return nil
}

// Next returns the next upcoming pass, or nil.
func (p *PassPlan) Next() *Pass {
	for i := range p.Passes {
		if p.Passes[i].Status == PassNext {
			return &p.Passes[i]
		}
	}
	return nil
}

// Passes solves days consecutive UT days from start and joins the rise,
// transit and set events into passes, classified against now.
func (s *Service) Passes(ctx context.Context, site astro.GeoLocation, target ephem.Target, start time.Time, days int, now time.Time) (PassPlan, error) {
	if days < 1 || days > MaxPassDays {
		return PassPlan{}, fmt.Errorf("pass window of %d days: %w", days, astro.ErrDomain)
	}
	first := timescale.StartOfDay(start)
	plan := PassPlan{
		Target:      target,
		Site:        site,
		GeneratedAt: now,
		WindowStart: first,
		WindowEnd:   first.AddDate(0, 0, days),
	}

	var evs []riseset.Event
	var h0 float64
	for d := 0; d < days; d++ {
		if err := ctx.Err(); err != nil {
			return PassPlan{}, err
		}
		day, err := s.DailyEvents(ctx, site, target, first.AddDate(0, 0, d))
		if err != nil {
			return PassPlan{}, err
		}
		h0 = day.H0
		evs = append(evs, day.Events()...)
	}
	plan.Passes = joinPasses(dedupeEvents(evs), h0, plan.WindowStart, plan.WindowEnd)
	classifyPasses(plan.Passes, now)
	return plan, nil
}

// dedupeEvents sorts events and drops repeats of the same kind found on
// both sides of a day boundary.
func dedupeEvents(evs []riseset.Event) []riseset.Event {
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].Time.Before(evs[j].Time) })
	out := evs[:0]
	for _, ev := range evs {
		dup := false
		for k := len(out) - 1; k >= 0 && ev.Time.Sub(out[k].Time) < time.Minute; k-- {
			if out[k].Kind == ev.Kind {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, ev)
		}
	}
	return out
}

func joinPasses(evs []riseset.Event, h0 float64, windowStart, windowEnd time.Time) []Pass {
	var passes []Pass
	var cur *Pass
	open := func() {
		passes = append(passes, Pass{Start: windowStart, End: windowEnd, MaxAltitude: h0})
		cur = &passes[len(passes)-1]
	}

	for _, ev := range evs {
		switch ev.Kind {
		case riseset.Rise:
			open()
			cur.Rise, cur.HasRise, cur.Start = ev, true, ev.Time
		case riseset.Transit:
			if ev.Altitude < h0 {
				continue
			}
			if cur == nil {
				open()
			}
			if !cur.HasTransit || ev.Altitude > cur.MaxAltitude {
				cur.Transit, cur.HasTransit = ev, true
			}
			cur.MaxAltitude = max(cur.MaxAltitude, ev.Altitude)
		case riseset.Set:
			if cur == nil {
				open()
			}
			cur.Set, cur.HasSet, cur.End = ev, true, ev.Time
			cur = nil
		}
	}
	return passes
}

// classifyPasses assigns status to each pass based on now.
func classifyPasses(passes []Pass, now time.Time) {
	foundNext := false
	for i := range passes {
		p := &passes[i]
		switch {
		case now.After(p.End):
			p.Status = PassPast
		case !now.Before(p.Start):
			p.Status = PassNow
		case !foundNext:
			p.Status = PassNext
			foundNext = true
		default:
			p.Status = PassFuture
		}
	}
}
