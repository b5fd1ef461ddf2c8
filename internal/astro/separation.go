package astro

import "math"

// Separation returns the great-circle angle between a and b in degrees,
// from the spherical law of cosines. Below about a degree the cosine is too
// close to 1 to resolve well; use SmallAngleSeparation there.
func Separation(a, b Equatorial) float64 {
	d1, d2 := degToRad(a.Dec), degToRad(b.Dec)
	dra := degToRad(b.RADeg() - a.RADeg())
	c := math.Sin(d1)*math.Sin(d2) + math.Cos(d1)*math.Cos(d2)*math.Cos(dra)
	return radToDeg(math.Acos(clamp(c)))
}

// SmallAngleSeparation returns the separation of a and b in degrees using the
// flat-sky approximation: RA difference scaled by the cosine of the mean
// declination, combined with the declination difference. It is accurate for
// separations under a degree away from the poles.
func SmallAngleSeparation(a, b Equatorial) float64 {
	dra := wrap180(b.RADeg() - a.RADeg())
	ddec := b.Dec - a.Dec
	x := dra * math.Cos(degToRad((a.Dec+b.Dec)/2))
	return math.Hypot(x, ddec)
}

// PositionAngle returns the position angle of b relative to a in degrees
// [0, 360), measured from north through east.
func PositionAngle(a, b Equatorial) float64 {
	d1, d2 := degToRad(a.Dec), degToRad(b.Dec)
	dra := degToRad(b.RADeg() - a.RADeg())
	y := math.Sin(dra) * math.Cos(d2)
	x := math.Cos(d1)*math.Sin(d2) - math.Sin(d1)*math.Cos(d2)*math.Cos(dra)
	p := math.Atan2(y, x)
	return wrap360(radToDeg(p))
}
