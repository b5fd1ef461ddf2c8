package photometry

import (
	"math"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/soniakeys/meeus/v3/base"
)

// obliquityJ2000 is the mean obliquity at J2000.0 in degrees, the frame of
// the pole models.
const obliquityJ2000 = 23.4392911

// RotationModel describes a body's rotation pole and prime meridian. The
// pole is linear in Julian centuries from Epoch; W is linear in days.
type RotationModel struct {
	Name    string
	Epoch   float64    // JDE
	PoleRA  [2]float64 // α₀ = PoleRA[0] + PoleRA[1]·T, degrees, J2000 equator
	PoleDec [2]float64 // δ₀ = PoleDec[0] + PoleDec[1]·T
	W0      float64    // prime meridian angle at Epoch, degrees
	WRate   float64    // degrees per day

	// PhaseCorrection moves the central meridian to the centre of the
	// illuminated disk.
	PhaseCorrection bool
}

// Rotation models of Mars and Jupiter's three longitude systems. Longitudes
// are planetographic west.
var (
	MarsIAU = RotationModel{
		Name:    "Mars",
		Epoch:   base.J2000,
		PoleRA:  [2]float64{317.68143, -0.1061},
		PoleDec: [2]float64{52.88650, -0.0609},
		W0:      176.630,
		WRate:   350.89198226,
	}
	JupiterSystemI = RotationModel{
		Name:            "Jupiter System I",
		Epoch:           2433282.5,
		PoleRA:          [2]float64{268.00, 0.1061},
		PoleDec:         [2]float64{64.50, -0.0164},
		W0:              17.710,
		WRate:           877.90003539,
		PhaseCorrection: true,
	}
	JupiterSystemII = RotationModel{
		Name:            "Jupiter System II",
		Epoch:           2433282.5,
		PoleRA:          [2]float64{268.00, 0.1061},
		PoleDec:         [2]float64{64.50, -0.0164},
		W0:              16.838,
		WRate:           870.27003539,
		PhaseCorrection: true,
	}
	JupiterSystemIII = RotationModel{
		Name:    "Jupiter System III",
		Epoch:   base.J2000,
		PoleRA:  [2]float64{268.056595, -0.006499},
		PoleDec: [2]float64{64.495303, 0.002413},
		W0:      284.95,
		WRate:   870.5360000,
	}
)

// Period returns the rotation period.
func (m RotationModel) Period() time.Duration {
	return time.Duration(360 / m.WRate * 24 * float64(time.Hour))
}

func (m RotationModel) pole(jde float64) (ra, dec float64) {
	T := (jde - m.Epoch) / base.JulianCentury
	return m.PoleRA[0] + m.PoleRA[1]*T, m.PoleDec[0] + m.PoleDec[1]*T
}

// W returns the prime meridian angle at jde in degrees [0, 360).
func (m RotationModel) W(jde float64) float64 {
	return wrap360(m.W0 + m.WRate*(jde-m.Epoch))
}

// PhysicalEphemeris is the orientation of a rotating body as seen from the
// Earth.
type PhysicalEphemeris struct {
	Model     string
	DE        float64 // planetocentric declination of the Earth
	DS        float64 // planetocentric declination of the Sun
	Omega     float64 // longitude of the central meridian [0, 360)
	Zeta      float64 // ζ, angle from the node of the equator to the sub-Earth point
	W         float64 // prime meridian angle at the emission instant
	Delta     float64 // distance to the Earth, AU
	LightTime float64 // days
}

// CentralMeridian computes the sub-Earth latitude and central meridian
// longitude of a body at jde. earth is the Earth's heliocentric position at
// jde and target the body's, taken at the light-time corrected instant.
func CentralMeridian(m RotationModel, jde float64, earth, target HelioPosition) PhysicalEphemeris {
	T := base.J2000Century(jde)
	p := generalPrecession(T)

	v := geocentric(earth, target)
	delta := v.Norm()
	tau := lightDaysPerAU * delta
	emitted := jde - tau

	a0deg, d0deg := m.pole(emitted)
	a0, d0 := rad(a0deg), rad(d0deg)
	sd0, cd0 := math.Sincos(d0)

	// Earth→body and Sun→body directions, referred to J2000
	geo := astro.EclipticToEquatorial(v.Longitude()-p, v.Latitude(), obliquityJ2000)
	sun := astro.EclipticToEquatorial(target.L-p, target.B, obliquityJ2000)

	subLat := func(eq astro.Equatorial) float64 {
		a, d := rad(eq.RADeg()), rad(eq.Dec)
		return deg(math.Asin(clampUnit(-sd0*math.Sin(d) - cd0*math.Cos(d)*math.Cos(a0-a))))
	}

	a, d := rad(geo.RADeg()), rad(geo.Dec)
	zeta := deg(math.Atan2(sd0*math.Cos(d)*math.Cos(a0-a)-math.Sin(d)*cd0, math.Cos(d)*math.Sin(a0-a)))

	w := m.W(emitted)
	omega := w - zeta
	if m.PhaseCorrection {
		r, R := target.R, earth.R
		c := deg((2*r*delta + R*R - r*r - delta*delta) / (4 * r * delta))
		if math.Sin(rad(target.L-earth.L)) < 0 {
			c = -c
		}
		omega += c
	}

	return PhysicalEphemeris{
		Model:     m.Name,
		DE:        subLat(geo),
		DS:        subLat(sun),
		Omega:     wrap360(omega),
		Zeta:      wrap360(zeta),
		W:         w,
		Delta:     delta,
		LightTime: tau,
	}
}

func clampUnit(x float64) float64 { return math.Max(-1, math.Min(1, x)) }
