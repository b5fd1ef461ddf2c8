package photometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Body is one of the closed set of body classes with a magnitude model:
// Sun, Moon, Planet, Asteroid, Comet and Star.
type Body interface {
	Name() string
	// Diameter is the physical diameter in km, or 0 when unknown.
	Diameter() float64
	magnitude(g Geometry, phase float64) (float64, error)
}

// Geometry is the Sun–Earth–body configuration at one instant.
type Geometry struct {
	SunDistance      float64 // r, body–Sun
	EarthDistance    float64 // Δ, body–Earth
	EarthSunDistance float64 // R, Earth–Sun

	// Rings is required for Saturn's magnitude.
	Rings *RingGeometry
}

// Observation is what an observer sees of a body.
type Observation struct {
	PhaseAngle      float64 // degrees
	Illuminated     float64 // 0..1
	AngularDiameter float64 // arcseconds, 0 when the body's size is unknown
	Magnitude       float64
	HasMagnitude    bool
}

// Observe computes the full observation of b. Bodies whose magnitude model
// does not apply still get phase and size; HasMagnitude reports which.
func Observe(b Body, g Geometry) (Observation, error) {
	if s, ok := b.(Star); ok {
		return Observation{Illuminated: 1, Magnitude: s.Magnitude, HasMagnitude: true}, nil
	}

	i, err := phaseOf(b, g)
	if err != nil {
		return Observation{}, fmt.Errorf("%s: %w", b.Name(), err)
	}
	obs := Observation{PhaseAngle: i, Illuminated: IlluminatedFraction(i)}

	if d := b.Diameter(); d > 0 {
		obs.AngularDiameter, err = AngularDiameter(d, astro.AUToKm(g.EarthDistance))
		if err != nil {
			return Observation{}, fmt.Errorf("%s: %w", b.Name(), err)
		}
	}

	m, err := b.magnitude(g, i)
	switch {
	case errors.Is(err, ErrNoMagnitude):
	case err != nil:
		return Observation{}, fmt.Errorf("%s: %w", b.Name(), err)
	default:
		obs.Magnitude, obs.HasMagnitude = m, true
	}
	return obs, nil
}

// Magnitude returns the apparent visual magnitude of b.
func Magnitude(b Body, g Geometry) (float64, error) {
	i, err := phaseOf(b, g)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", b.Name(), err)
	}
	m, err := b.magnitude(g, i)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return m, nil
}

func phaseOf(b Body, g Geometry) (float64, error) {
	switch b.(type) {
	case Star:
		return 0, nil
	case Sun:
		if !(g.EarthDistance > 0) {
			return 0, fmt.Errorf("Earth–Sun distance %v: %w", g.EarthDistance, ErrDomain)
		}
		return 0, nil
	}
	return PhaseAngle(g.SunDistance, g.EarthDistance, g.EarthSunDistance)
}

// Sun is the Sun; only EarthDistance is used.
type Sun struct{}

func (Sun) Name() string      { return "Sun" }
func (Sun) Diameter() float64 { return 1392700 }

func (Sun) magnitude(g Geometry, _ float64) (float64, error) {
	return -26.74 + 5*math.Log10(g.EarthDistance), nil
}

// Moon is the Earth's Moon.
type Moon struct{}

// moonMeanDistance is 384400 km in AU; the magnitude law is fitted there.
const moonMeanDistance = 0.0025696

func (Moon) Name() string      { return "Moon" }
func (Moon) Diameter() float64 { return 3474.8 }

func (Moon) magnitude(g Geometry, i float64) (float64, error) {
	k := IlluminatedFraction(i)
	if k < 0.01 {
		return 0, fmt.Errorf("illuminated fraction %.4f: %w", k, ErrNoMagnitude)
	}
	x := math.Log10(k)
	return -12.73 - 7.0*x - 1.6*x*x + 5*math.Log10(g.EarthDistance/moonMeanDistance), nil
}

// Asteroid uses the IAU H-G system.
type Asteroid struct {
	Designation string
	H           float64 // absolute magnitude
	G           float64 // slope parameter
	DiameterKm  float64 // optional
}

func (a Asteroid) Name() string      { return a.Designation }
func (a Asteroid) Diameter() float64 { return a.DiameterKm }

func (a Asteroid) magnitude(g Geometry, i float64) (float64, error) {
	t := math.Tan(i * math.Pi / 360)
	phi1 := math.Exp(-3.33 * math.Pow(t, 0.63))
	phi2 := math.Exp(-1.87 * math.Pow(t, 1.22))
	f := (1-a.G)*phi1 + a.G*phi2
	if !(f > 0) {
		return 0, fmt.Errorf("H-G phase function %v at %.2f°: %w", f, i, ErrNoMagnitude)
	}
	return a.H + 5*math.Log10(g.SunDistance*g.EarthDistance) - 2.5*math.Log10(f), nil
}

// Comet uses the total-magnitude law m = G + 5 log Δ + K log r + Offset.
type Comet struct {
	Designation string
	G           float64 // absolute total magnitude
	K           float64 // activity slope, 2.5n
	Offset      float64 // observed correction, usually 0
}

func (c Comet) Name() string    { return c.Designation }
func (Comet) Diameter() float64 { return 0 }

func (c Comet) magnitude(g Geometry, _ float64) (float64, error) {
	return c.G + 5*math.Log10(g.EarthDistance) + c.K*math.Log10(g.SunDistance) + c.Offset, nil
}

// Star is a fixed star with a catalogued magnitude.
type Star struct {
	Designation string
	Magnitude   float64
}

func (s Star) Name() string    { return s.Designation }
func (Star) Diameter() float64 { return 0 }

func (s Star) magnitude(Geometry, float64) (float64, error) { return s.Magnitude, nil }
