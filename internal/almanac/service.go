// Package almanac combines the ephemeris, coordinate, photometric and
// rise/set engines into per-site observation reports.
package almanac

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"cloudeng.io/errors"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/nutation"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/riseset"
	"github.com/litescript/ls-almanac/internal/sidereal"
	"github.com/litescript/ls-almanac/internal/timescale"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of targets observed at once.
const DefaultConcurrency = 4

// Service answers observation questions for a site.
type Service struct {
	provider    ephem.Provider
	stars       astro.StarCatalog
	solver      riseset.Solver
	log         *logging.Logger
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithSolver sets the rise/set solver.
func WithSolver(s riseset.Solver) Option {
	return func(svc *Service) { svc.solver = s }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(svc *Service) { svc.log = l }
}

// WithStars replaces the star catalog used to resolve names.
func WithStars(c astro.StarCatalog) Option {
	return func(svc *Service) { svc.stars = c }
}

// WithConcurrency bounds parallel work in ObserveAll.
func WithConcurrency(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.concurrency = n
		}
	}
}

// NewService returns a service reading positions from p.
func NewService(p ephem.Provider, opts ...Option) *Service {
	s := &Service{
		provider:    p,
		stars:       astro.DefaultStarCatalog(),
		solver:      riseset.DefaultSolver(),
		log:         logging.Discard(),
		concurrency: DefaultConcurrency,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Provider returns the ephemeris provider.
func (s *Service) Provider() ephem.Provider { return s.provider }

// Resolve looks a target up by name.
func (s *Service) Resolve(name string) (ephem.Target, error) {
	return ephem.Lookup(name, s.stars)
}

// Report is everything known about a target seen from a site at one time.
type Report struct {
	Target   ephem.Target
	Site     astro.GeoLocation
	Time     time.Time
	Position ephem.Position
	Sidereal sidereal.Time

	Horizontal astro.Horizontal
	HourAngle  float64 // degrees, west positive
	Elevation  astro.ElevationTier
	// Airmass is zero when the target is below the horizon.
	Airmass float64

	SunSeparation float64 // degrees
	SunTier       astro.SunSeparationTier

	Observation photometry.Observation
	Rings       *photometry.RingGeometry
	Physical    *photometry.PhysicalEphemeris
	Features    []photometry.FeatureView
	MoonPhase   *photometry.LunarPhase

	// Notes records optional quantities that could not be computed.
	Notes []string
}

// Observe builds a report for target at site and time at.
func (s *Service) Observe(ctx context.Context, site astro.GeoLocation, target ephem.Target, at time.Time) (Report, error) {
	if err := site.Validate(); err != nil {
		return Report{}, err
	}
	in, err := timescale.NewInstant(at)
	if err != nil {
		return Report{}, err
	}
	pos, err := s.provider.Position(ctx, target, in.Time())
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", target.Name, err)
	}

	r := Report{
		Target:    target,
		Site:      site,
		Time:      in.Time(),
		Position:  pos,
		Sidereal:  sidereal.At(in, site.Longitude),
		HourAngle: astro.HourAngle(in, site, pos.Apparent),
	}
	r.Horizontal, err = astro.ToHorizontal(in, site, pos.Apparent, astro.FromNorth)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", target.Name, err)
	}
	r.Elevation = astro.GetElevationTier(r.Horizontal.Altitude)
	if am, err := r.Horizontal.Airmass(); err == nil {
		r.Airmass = am
	}
	if target.Kind != ephem.KindSun {
		r.SunSeparation = astro.SunSeparation(in, pos.Apparent)
		r.SunTier = astro.GetSunSeparationTier(r.SunSeparation)
	}

	geom := pos.Geometry()
	switch {
	case target.Kind == ephem.KindMoon:
		phase := photometry.MoonPhase(in)
		r.MoonPhase = &phase
	case target.Kind == ephem.KindPlanet && target.Planet == photometry.Saturn:
		rings, err := s.saturnRings(ctx, target, in)
		if err != nil {
			r.note("ring geometry: %v", err)
		} else {
			r.Rings = &rings
			geom.Rings = &rings
		}
	case target.Kind == ephem.KindPlanet && (target.Planet == photometry.Mars || target.Planet == photometry.Jupiter):
		if err := s.physical(ctx, &r, in); err != nil {
			r.note("central meridian: %v", err)
		}
	}

	obs, err := photometry.Observe(target.Body(), geom)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", target.Name, err)
	}
	r.Observation = obs
	if !obs.HasMagnitude {
		r.note("magnitude undefined for this geometry")
	}
	return r, nil
}

func (r *Report) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// helio fetches the heliocentric positions of the Earth and a target at
// the same instant.
func (s *Service) helio(ctx context.Context, target ephem.Target, at time.Time) (earth, body photometry.HelioPosition, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		earth, err = s.provider.Heliocentric(ctx, ephem.EarthTarget, at)
		return err
	})
	g.Go(func() error {
		var err error
		body, err = s.provider.Heliocentric(ctx, target, at)
		return err
	})
	err = g.Wait()
	return earth, body, err
}

func (s *Service) saturnRings(ctx context.Context, target ephem.Target, in timescale.Instant) (photometry.RingGeometry, error) {
	earth, saturn, err := s.helio(ctx, target, in.Time())
	if err != nil {
		return photometry.RingGeometry{}, err
	}
	return photometry.SaturnRings(in.JDE(), earth, saturn, nutation.Compute(in.TE())), nil
}

// physical fills the central meridian and feature views. Jupiter's report
// carries System II, the system of its catalogued spots.
func (s *Service) physical(ctx context.Context, r *Report, in timescale.Instant) error {
	earth, body, err := s.helio(ctx, r.Target, in.Time())
	if err != nil {
		return err
	}
	model := photometry.MarsIAU
	if r.Target.Planet == photometry.Jupiter {
		model = photometry.JupiterSystemII
	}
	pe := photometry.CentralMeridian(model, in.JDE(), earth, body)
	r.Physical = &pe

	byModel := map[string]photometry.PhysicalEphemeris{model.Name: pe}
	for _, f := range photometry.Features(r.Target.Planet) {
		fpe, ok := byModel[f.System.Name]
		if !ok {
			fpe = photometry.CentralMeridian(f.System, in.JDE(), earth, body)
			byModel[f.System.Name] = fpe
		}
		r.Features = append(r.Features, photometry.View(f, fpe, in.Time()))
	}
	return nil
}

// Events is a target's rise, transit and set on one UT day.
type Events struct {
	Target ephem.Target
	Site   astro.GeoLocation
	Date   time.Time
	H0     float64 // standard altitude used, degrees
	riseset.Result
}

// samples fetches the target's positions at 0h UT on the day before, the
// day of, and the day after date.
func (s *Service) samples(ctx context.Context, target ephem.Target, date time.Time) ([3]ephem.Position, error) {
	var out [3]ephem.Position
	day := timescale.StartOfDay(date)
	g, ctx := errgroup.WithContext(ctx)
	for i := range out {
		g.Go(func() error {
			pos, err := s.provider.Position(ctx, target, day.AddDate(0, 0, i-1))
			if err != nil {
				return err
			}
			out[i] = pos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, fmt.Errorf("%s: %w", target.Name, err)
	}
	return out, nil
}

func equatorials(ps [3]ephem.Position) [3]astro.Equatorial {
	return [3]astro.Equatorial{ps[0].Apparent, ps[1].Apparent, ps[2].Apparent}
}

// standardAltitude returns h₀ for the target, using the Moon's parallax
// on the day when its distance is known.
func standardAltitude(target ephem.Target, mid ephem.Position) float64 {
	switch target.Kind {
	case ephem.KindSun:
		return riseset.StandardAltitude(riseset.SunClass)
	case ephem.KindMoon:
		if mid.Delta > 0 {
			pi := math.Asin(astro.EarthRadiusKm/astro.AUToKm(mid.Delta)) * 180 / math.Pi
			return riseset.MoonStandardAltitude(pi)
		}
		return riseset.StandardAltitude(riseset.MoonClass)
	case ephem.KindStar:
		return riseset.StandardAltitude(riseset.StarClass)
	default:
		return riseset.StandardAltitude(riseset.PlanetClass)
	}
}

// DailyEvents finds the rise, transit and set of target on date's UT day.
func (s *Service) DailyEvents(ctx context.Context, site astro.GeoLocation, target ephem.Target, date time.Time) (Events, error) {
	ps, err := s.samples(ctx, target, date)
	if err != nil {
		return Events{}, err
	}
	h0 := standardAltitude(target, ps[1])
	res, err := s.solver.Solve(date, site, equatorials(ps), h0)
	if err != nil {
		return Events{}, fmt.Errorf("%s: %w", target.Name, err)
	}
	if !res.WithinTolerance {
		s.log.Warn("%s at %s: rise/set not converged after %d iterations", target.Name, site.Name, res.Iterations)
	}
	return Events{Target: target, Site: site, Date: timescale.StartOfDay(date), H0: h0, Result: res}, nil
}

// Twilight finds the start and end of twilight of the given kind.
func (s *Service) Twilight(ctx context.Context, site astro.GeoLocation, date time.Time, kind riseset.TwilightKind) (riseset.Result, error) {
	sun, err := s.Resolve("Sun")
	if err != nil {
		return riseset.Result{}, err
	}
	ps, err := s.samples(ctx, sun, date)
	if err != nil {
		return riseset.Result{}, err
	}
	return s.solver.Twilight(date, site, equatorials(ps), kind)
}

// ObserveAll observes every target concurrently. Reports for the targets
// that succeeded are returned in input order along with an error listing
// every failure.
func (s *Service) ObserveAll(ctx context.Context, site astro.GeoLocation, targets []ephem.Target, at time.Time) ([]Report, error) {
	reports := make([]*Report, len(targets))
	errs := &errors.M{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, target := range targets {
		g.Go(func() error {
			r, err := s.Observe(gctx, site, target, at)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				s.log.Warn("observe %s: %v", target.Name, err)
				errs.Append(err)
				return nil
			}
			reports[i] = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Report, 0, len(targets))
	for _, r := range reports {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, errs.Err()
}

// Day is the Sun and Moon almanac for a site and UT day.
type Day struct {
	Site     astro.GeoLocation
	Date     time.Time
	Sun      Events
	Moon     Events
	Twilight map[riseset.TwilightKind]riseset.Result
	Phase    photometry.LunarPhase // at 12h UT
}

// Almanac computes the Sun and Moon events and twilights for date.
func (s *Service) Almanac(ctx context.Context, site astro.GeoLocation, date time.Time) (Day, error) {
	day := Day{
		Site:     site,
		Date:     timescale.StartOfDay(date),
		Twilight: make(map[riseset.TwilightKind]riseset.Result, 3),
	}
	noon, err := timescale.NewInstant(day.Date.Add(12 * time.Hour))
	if err != nil {
		return Day{}, err
	}
	day.Phase = photometry.MoonPhase(noon)

	sun, err := s.Resolve("Sun")
	if err != nil {
		return Day{}, err
	}
	moon, err := s.Resolve("Moon")
	if err != nil {
		return Day{}, err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		day.Sun, err = s.DailyEvents(gctx, site, sun, date)
		return err
	})
	g.Go(func() (err error) {
		day.Moon, err = s.DailyEvents(gctx, site, moon, date)
		return err
	})
	for _, k := range []riseset.TwilightKind{riseset.Civil, riseset.Nautical, riseset.Astronomical} {
		g.Go(func() error {
			res, err := s.Twilight(gctx, site, date, k)
			if err != nil {
				return err
			}
			mu.Lock()
			day.Twilight[k] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Day{}, err
	}
	return day, nil
}
