package ephem

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/nutation"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/timescale"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// Constant of aberration, degrees.
const aberrationK = 20.49552 / 3600

// Years covered by the Pluto theory.
var plutoRange = [2]float64{1885, 2099}

// MeeusProvider computes positions offline. The Sun and Moon use the
// full-precision series; planets use Keplerian orbits from mean elements
// of date, good to about a minute of arc for the inner planets and a few
// tenths of a degree for Jupiter and Saturn.
type MeeusProvider struct{}

// NewMeeusProvider creates an offline provider.
func NewMeeusProvider() *MeeusProvider { return &MeeusProvider{} }

// Name implements Provider.
func (*MeeusProvider) Name() string { return "Meeus" }

// Available implements Provider.
func (*MeeusProvider) Available(target Target) bool {
	switch target.Kind {
	case KindSun, KindMoon:
		return true
	case KindPlanet:
		_, ok := elementsIndex(target.Planet)
		return ok || target.Planet == photometry.Pluto
	default:
		return false
	}
}

// elementsIndex maps a planet to its index in the mean-elements tables.
func elementsIndex(p photometry.Planet) (int, bool) {
	switch p {
	case photometry.Mercury:
		return planetelements.Mercury, true
	case photometry.Venus:
		return planetelements.Venus, true
	case photometry.Mars:
		return planetelements.Mars, true
	case photometry.Jupiter:
		return planetelements.Jupiter, true
	case photometry.Saturn:
		return planetelements.Saturn, true
	case photometry.Uranus:
		return planetelements.Uranus, true
	case photometry.Neptune:
		return planetelements.Neptune, true
	}
	return 0, false
}

// Heliocentric implements Provider.
func (m *MeeusProvider) Heliocentric(_ context.Context, target Target, t time.Time) (photometry.HelioPosition, error) {
	in, err := timescale.NewInstant(t)
	if err != nil {
		return photometry.HelioPosition{}, err
	}
	jde := in.JDE()
	switch {
	case target.ID == NAIFEarth:
		return earth(jde), nil
	case target.Kind == KindSun:
		return photometry.HelioPosition{}, nil
	case target.Kind == KindMoon:
		e := earth(jde)
		lon, lat, dist := moon(jde)
		v := e.Vec().Add(astro.Spherical(lon, lat, dist))
		return photometry.HelioPosition{L: v.Longitude(), B: v.Latitude(), R: v.Norm()}, nil
	case m.Available(target):
		return planet(target.Planet, jde)
	}
	return photometry.HelioPosition{}, fmt.Errorf("meeus %s: %w", target.Name, ErrUnknownTarget)
}

// Position implements Provider.
func (m *MeeusProvider) Position(_ context.Context, target Target, t time.Time) (Position, error) {
	if !m.Available(target) {
		return Position{}, fmt.Errorf("meeus %s: %w", target.Name, ErrUnknownTarget)
	}
	in, err := timescale.NewInstant(t)
	if err != nil {
		return Position{}, err
	}
	jde := in.JDE()
	T := in.TE()
	nut := nutation.Compute(T)
	pos := Position{Target: target, Time: in.Time(), Source: m.Name()}

	switch target.Kind {
	case KindSun:
		ra, dec := solar.ApparentEquatorial(jde)
		pos.Apparent = astro.Equatorial{RA: ra.Hour(), Dec: dec.Deg()}
		pos.EarthSunDistance = solar.Radius(T)
		pos.Delta = pos.EarthSunDistance
		return pos, nil

	case KindMoon:
		lon, lat, dist := moon(jde)
		e := earth(jde)
		pos.Apparent = astro.EclipticToEquatorial(lon+nut.DeltaPsi/3600, lat, nut.Obliquity)
		pos.Delta = dist
		pos.EarthSunDistance = e.R
		pos.SunDistance = e.Vec().Add(astro.Spherical(lon, lat, dist)).Norm()
		return pos, nil
	}

	e := earth(jde)
	var (
		h   photometry.HelioPosition
		geo astro.Vec3
		tau float64
	)
	for range 3 {
		h, err = planet(target.Planet, jde-tau)
		if err != nil {
			return Position{}, err
		}
		geo = h.Vec().Sub(e.Vec())
		tau = geo.Norm() * lightDaysPerAU
	}
	lon, lat := geo.Longitude(), geo.Latitude()

	// Annual aberration, ignoring the eccentricity terms.
	sun := e.L + 180
	d := rad(sun - lon)
	lon -= aberrationK * math.Cos(d) / math.Cos(rad(lat))
	lat -= aberrationK * math.Sin(d) * math.Sin(rad(lat))

	pos.Apparent = astro.EclipticToEquatorial(lon+nut.DeltaPsi/3600, lat, nut.Obliquity)
	pos.Delta = geo.Norm()
	pos.SunDistance = h.R
	pos.EarthSunDistance = e.R
	return pos, nil
}

// lightDaysPerAU is the light time for one AU, in days.
const lightDaysPerAU = 0.0057755183

// earth returns the Earth's heliocentric position of date.
func earth(jde float64) photometry.HelioPosition {
	T := timescale.JulianCentury(jde)
	s, _ := solar.True(T)
	return photometry.HelioPosition{
		L: unit.PMod(s.Deg()+180, 360),
		B: 0,
		R: solar.Radius(T),
	}
}

// moon returns the Moon's geocentric ecliptic longitude and latitude of
// date in degrees, and its distance in AU.
func moon(jde float64) (lon, lat, dist float64) {
	λ, β, Δ := moonposition.Position(jde)
	return λ.Deg(), β.Deg(), astro.KmToAU(Δ)
}

// planet returns the heliocentric position of date of a planet.
func planet(p photometry.Planet, jde float64) (photometry.HelioPosition, error) {
	if p == photometry.Pluto {
		y := timescale.DecimalYear(timescale.JDToTime(jde))
		if y < plutoRange[0] || y > plutoRange[1] {
			return photometry.HelioPosition{}, fmt.Errorf("pluto in %.0f: %w", y, ErrNoData)
		}
		l, b, r := pluto.Heliocentric(jde)
		h := photometry.HelioPosition{L: l.Deg(), B: b.Deg(), R: r}
		return photometry.FromJ2000(h, timescale.JulianCentury(jde)), nil
	}
	idx, ok := elementsIndex(p)
	if !ok {
		return photometry.HelioPosition{}, fmt.Errorf("meeus %v: %w", p, ErrUnknownTarget)
	}
	var el planetelements.Elements
	planetelements.Mean(idx, jde, &el)
	return kepler(el), nil
}

// kepler places a body on the orbit described by el.
func kepler(el planetelements.Elements) photometry.HelioPosition {
	e := el.Ecc
	M := unit.PMod((el.Lon - el.Peri).Rad(), 2*math.Pi)
	E := M
	for range 30 {
		dE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	nu := 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E/2))
	r := el.Axis * (1 - e*math.Cos(E))

	// Argument of latitude.
	u := nu + (el.Peri - el.Node).Rad()
	sO, cO := math.Sincos(el.Node.Rad())
	su, cu := math.Sincos(u)
	si, ci := math.Sincos(el.Inc.Rad())
	v := astro.Vec3{
		X: r * (cO*cu - sO*su*ci),
		Y: r * (sO*cu + cO*su*ci),
		Z: r * su * si,
	}
	return photometry.HelioPosition{L: v.Longitude(), B: v.Latitude(), R: r}
}

func rad(d float64) float64 { return d * math.Pi / 180 }
