package photometry

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/nutation"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/unit"
)

// HelioPosition is a heliocentric position referred to the ecliptic and
// equinox of date.
type HelioPosition struct {
	L float64 // longitude, degrees
	B float64 // latitude, degrees
	R float64 // radius vector, AU
}

// generalPrecession returns the accumulated precession in longitude from
// J2000.0 to T Julian centuries, in degrees.
func generalPrecession(T float64) float64 {
	return (5029.0966*T + 1.11113*T*T) / 3600
}

// FromJ2000 refers a J2000.0 ecliptic position to the equinox of T Julian
// centuries. Only precession in longitude is applied; the ecliptic's own
// motion (under 0.02° per century) is ignored.
func FromJ2000(h HelioPosition, T float64) HelioPosition {
	h.L = wrap360(h.L + generalPrecession(T))
	return h
}

// ToJ2000 is the inverse of FromJ2000.
func ToJ2000(h HelioPosition, T float64) HelioPosition {
	h.L = wrap360(h.L - generalPrecession(T))
	return h
}

// Vec returns the position as a Cartesian ecliptic vector in AU.
func (h HelioPosition) Vec() astro.Vec3 { return astro.Spherical(h.L, h.B, h.R) }

// geocentric returns the vector from the Earth to target.
func geocentric(earth, target HelioPosition) astro.Vec3 {
	return target.Vec().Sub(earth.Vec())
}

// lightDaysPerAU is the light time across 1 AU in days.
const lightDaysPerAU = 0.0057755183

// RingGeometry is the aspect of Saturn's rings.
type RingGeometry struct {
	B      float64 // Saturnicentric latitude of the Earth on the ring plane
	BPrime float64 // Saturnicentric latitude of the Sun
	DeltaU float64 // difference in Saturnicentric longitude of Sun and Earth
	P      float64 // position angle of the northern semiminor axis
	A      float64 // apparent major semiaxis of the outer ring, arcsec
	Minor  float64 // apparent minor semiaxis of the outer ring, arcsec
}

// SaturnRings computes the ring aspect at jde from the Earth's heliocentric
// position and Saturn's, the latter taken at the light-time corrected
// instant. nut supplies nutation and the true obliquity of date.
func SaturnRings(jde float64, earth, saturn HelioPosition, nut nutation.Result) RingGeometry {
	T := base.J2000Century(jde)
	inc := rad(base.Horner(T, 28.075216, -0.012998, 0.000004))
	node := rad(base.Horner(T, 169.508470, 1.394681, 0.000412))
	si, ci := math.Sincos(inc)

	v := geocentric(earth, saturn)
	delta := v.Norm()
	lambda := rad(v.Longitude())
	beta := rad(v.Latitude())

	B := math.Asin(si*math.Cos(beta)*math.Sin(lambda-node) - ci*math.Sin(beta))
	a := 375.35 / delta

	// Sun as seen from Saturn, corrected for the planet's motion
	l, b, r := rad(saturn.L), rad(saturn.B), saturn.R
	N := rad(113.6655 + 0.8771*T)
	lp := l - rad(0.01759)/r
	bp := b - rad(0.000764)*math.Cos(l-N)/r
	Bp := math.Asin(si*math.Cos(bp)*math.Sin(lp-node) - ci*math.Sin(bp))

	U1 := math.Atan2(si*math.Sin(bp)+ci*math.Cos(bp)*math.Sin(lp-node), math.Cos(bp)*math.Cos(lp-node))
	U2 := math.Atan2(si*math.Sin(beta)+ci*math.Cos(beta)*math.Sin(lambda-node), math.Cos(beta)*math.Cos(lambda-node))
	dU := math.Abs(deg(U1 - U2))
	if dU > 180 {
		dU = 360 - dU
	}

	// Ring pole and apparent Saturn, both in ecliptic of date, corrected for
	// aberration and nutation in longitude
	l0 := rad(earth.L)
	lambda, beta = lambda+rad(0.005693)*math.Cos(l0-lambda)/math.Cos(beta),
		beta+rad(0.005693)*math.Sin(l0-lambda)*math.Sin(beta)
	dpsi := nut.DeltaPsi / 3600
	pole := astro.EclipticToEquatorial(deg(node)-90+dpsi, 90-deg(inc), nut.Obliquity)
	app := astro.EclipticToEquatorial(deg(lambda)+dpsi, deg(beta), nut.Obliquity)

	a0, d0 := rad(pole.RADeg()), rad(pole.Dec)
	a1, d1 := rad(app.RADeg()), rad(app.Dec)
	P := math.Atan2(math.Cos(d0)*math.Sin(a0-a1),
		math.Sin(d0)*math.Cos(d1)-math.Cos(d0)*math.Sin(d1)*math.Cos(a0-a1))

	return RingGeometry{
		B:      deg(B),
		BPrime: deg(Bp),
		DeltaU: dU,
		P:      deg(P),
		A:      a,
		Minor:  a * math.Abs(math.Sin(B)),
	}
}

func rad(d float64) float64 { return d * math.Pi / 180 }

func deg(r float64) float64 { return r * 180 / math.Pi }

func wrap360(a float64) float64 {
	a = unit.PMod(a, 360)
	if a >= 360 {
		a = 0
	}
	return a
}

func wrap180(a float64) float64 {
	a = wrap360(a)
	if a > 180 {
		a -= 360
	}
	return a
}
