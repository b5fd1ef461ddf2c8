package photometry

import (
	"fmt"
	"math"
	"strings"
)

// Planet identifies a major planet (and Pluto) seen from the Earth.
type Planet int

const (
	Mercury Planet = iota
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// Planets lists every Planet value in order from the Sun.
var Planets = [...]Planet{Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

type planetData struct {
	name     string
	diameter float64    // equatorial, km
	v0       float64    // magnitude at r = Δ = 1 AU, zero phase
	phase    [3]float64 // coefficients of i, i², i³ (i in degrees)
}

// Astronomical Almanac (1984) magnitude expressions.
var planetTable = [...]planetData{
	Mercury: {"Mercury", 4879.4, -0.42, [3]float64{0.0380, -0.000273, 0.000002}},
	Venus:   {"Venus", 12103.6, -4.40, [3]float64{0.0009, 0.000239, -0.00000065}},
	Mars:    {"Mars", 6792.4, -1.52, [3]float64{0.016}},
	Jupiter: {"Jupiter", 142984, -9.40, [3]float64{0.005}},
	Saturn:  {"Saturn", 120536, -8.88, [3]float64{}},
	Uranus:  {"Uranus", 51118, -7.19, [3]float64{}},
	Neptune: {"Neptune", 49528, -6.87, [3]float64{}},
	Pluto:   {"Pluto", 2376.6, -1.00, [3]float64{}},
}

// ParsePlanet returns the Planet with the given name, ignoring case.
func ParsePlanet(name string) (Planet, error) {
	for _, p := range Planets {
		if strings.EqualFold(planetTable[p].name, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown planet %q", name)
}

func (p Planet) valid() bool { return p >= Mercury && p <= Pluto }

func (p Planet) String() string {
	if !p.valid() {
		return fmt.Sprintf("Planet(%d)", int(p))
	}
	return planetTable[p].name
}

func (p Planet) Name() string { return p.String() }

func (p Planet) Diameter() float64 {
	if !p.valid() {
		return 0
	}
	return planetTable[p].diameter
}

func (p Planet) magnitude(g Geometry, i float64) (float64, error) {
	if !p.valid() {
		return 0, fmt.Errorf("%v: %w", p, ErrNoMagnitude)
	}
	d := &planetTable[p]
	m := d.v0 + 5*math.Log10(g.SunDistance*g.EarthDistance) +
		i*(d.phase[0]+i*(d.phase[1]+i*d.phase[2]))

	if p == Saturn {
		// The ring contribution replaces a phase term.
		if g.Rings == nil {
			return 0, fmt.Errorf("Saturn without ring geometry: %w", ErrNoMagnitude)
		}
		sinB := math.Sin(math.Abs(g.Rings.B) * math.Pi / 180)
		m += 0.044*math.Abs(g.Rings.DeltaU) - 2.60*sinB + 1.25*sinB*sinB
	}
	return m, nil
}
