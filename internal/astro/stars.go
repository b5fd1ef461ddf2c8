package astro

import "strings"

// Star is a catalogued fixed star. Positions are J2000 and proper motion is
// ignored.
type Star struct {
	Name      string
	Position  Equatorial
	Magnitude float64 // apparent visual magnitude
}

// StarCatalog is an ordered list of stars, brightest first.
type StarCatalog struct {
	Stars []Star
}

// DefaultStarCatalog returns the catalog of the brightest stars.
func DefaultStarCatalog() StarCatalog {
	stars := make([]Star, len(brightStars))
	copy(stars, brightStars[:])
	return StarCatalog{Stars: stars}
}

// Lookup finds a star by name, ignoring case.
func (c StarCatalog) Lookup(name string) (Star, bool) {
	for _, s := range c.Stars {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Star{}, false
}

// Brighter returns the stars brighter than mag.
func (c StarCatalog) Brighter(mag float64) []Star {
	var out []Star
	for _, s := range c.Stars {
		if s.Magnitude < mag {
			out = append(out, s)
		}
	}
	return out
}

// Yale Bright Star Catalog positions, RA in hours.
var brightStars = [...]Star{
	{"Sirius", Equatorial{RA: 6.7525, Dec: -16.716}, -1.46},
	{"Canopus", Equatorial{RA: 6.3992, Dec: -52.696}, -0.74},
	{"Arcturus", Equatorial{RA: 14.2610, Dec: 19.182}, -0.05},
	{"Vega", Equatorial{RA: 18.6157, Dec: 38.784}, 0.03},
	{"Capella", Equatorial{RA: 5.2781, Dec: 45.998}, 0.08},
	{"Rigel", Equatorial{RA: 5.2423, Dec: -8.202}, 0.13},
	{"Procyon", Equatorial{RA: 7.6551, Dec: 5.225}, 0.34},
	{"Achernar", Equatorial{RA: 1.6286, Dec: -57.237}, 0.46},
	{"Betelgeuse", Equatorial{RA: 5.9195, Dec: 7.407}, 0.50},
	{"Hadar", Equatorial{RA: 14.0637, Dec: -60.373}, 0.61},
	{"Altair", Equatorial{RA: 19.8464, Dec: 8.868}, 0.76},
	{"Acrux", Equatorial{RA: 12.4433, Dec: -63.099}, 0.76},
	{"Aldebaran", Equatorial{RA: 4.5987, Dec: 16.509}, 0.85},
	{"Antares", Equatorial{RA: 16.4901, Dec: -26.432}, 0.96},
	{"Spica", Equatorial{RA: 13.4199, Dec: -11.161}, 0.97},
	{"Pollux", Equatorial{RA: 7.7553, Dec: 28.026}, 1.14},
	{"Fomalhaut", Equatorial{RA: 22.9609, Dec: -29.622}, 1.16},
	{"Deneb", Equatorial{RA: 20.6905, Dec: 45.280}, 1.25},
	{"Mimosa", Equatorial{RA: 12.7953, Dec: -59.689}, 1.25},
	{"Regulus", Equatorial{RA: 10.1395, Dec: 11.967}, 1.35},
	{"Adhara", Equatorial{RA: 6.9771, Dec: -28.972}, 1.50},
	{"Castor", Equatorial{RA: 7.5767, Dec: 31.889}, 1.58},
	{"Gacrux", Equatorial{RA: 12.5194, Dec: -57.113}, 1.63},
	{"Shaula", Equatorial{RA: 17.5601, Dec: -37.104}, 1.63},
	{"Bellatrix", Equatorial{RA: 5.4189, Dec: 6.350}, 1.64},
	{"Elnath", Equatorial{RA: 5.4382, Dec: 28.608}, 1.65},
	{"Miaplacidus", Equatorial{RA: 9.2200, Dec: -69.717}, 1.68},
	{"Alnilam", Equatorial{RA: 5.6035, Dec: -1.202}, 1.69},
	{"Alnair", Equatorial{RA: 22.1372, Dec: -46.961}, 1.74},
	{"Alnitak", Equatorial{RA: 5.6793, Dec: -1.943}, 1.77},
	{"Alioth", Equatorial{RA: 12.9005, Dec: 55.960}, 1.77},
	{"Dubhe", Equatorial{RA: 11.0621, Dec: 61.751}, 1.79},
	{"Mirfak", Equatorial{RA: 3.4054, Dec: 49.861}, 1.79},
	{"Wezen", Equatorial{RA: 7.1399, Dec: -26.393}, 1.84},
	{"Kaus Australis", Equatorial{RA: 18.4029, Dec: -34.384}, 1.85},
	{"Avior", Equatorial{RA: 8.3753, Dec: -59.509}, 1.86},
	{"Alkaid", Equatorial{RA: 13.7923, Dec: 49.313}, 1.86},
	{"Sargas", Equatorial{RA: 17.6220, Dec: -42.998}, 1.87},
	{"Menkalinan", Equatorial{RA: 5.9921, Dec: 44.948}, 1.90},
	{"Atria", Equatorial{RA: 16.8111, Dec: -69.028}, 1.92},
	{"Alhena", Equatorial{RA: 6.6285, Dec: 16.399}, 1.93},
	{"Peacock", Equatorial{RA: 20.4275, Dec: -56.735}, 1.94},
	{"Alsephina", Equatorial{RA: 8.7451, Dec: -54.709}, 1.96},
	{"Mirzam", Equatorial{RA: 6.3783, Dec: -17.956}, 1.98},
	{"Alphard", Equatorial{RA: 9.4598, Dec: -8.659}, 2.00},
	{"Hamal", Equatorial{RA: 2.1195, Dec: 23.463}, 2.00},
	{"Polaris", Equatorial{RA: 2.5303, Dec: 89.264}, 2.02},
	{"Diphda", Equatorial{RA: 0.7265, Dec: -17.987}, 2.02}}
