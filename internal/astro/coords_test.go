package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/timescale"
)

// testSites for horizon tests
var testSites = map[string]GeoLocation{
	"goldstone":  {Latitude: 35.4267, Longitude: -116.8900, Name: "Goldstone"},
	"canberra":   {Latitude: -35.4014, Longitude: 148.9817, Name: "Canberra"},
	"madrid":     {Latitude: 40.4314, Longitude: -4.2481, Name: "Madrid"},
	"north_pole": {Latitude: 89.0, Longitude: 0.0, Name: "North Pole"},
}

func mustInstant(t *testing.T, tm time.Time) timescale.Instant {
	t.Helper()
	in, err := timescale.NewInstant(tm)
	if err != nil {
		t.Fatalf("NewInstant(%v): %v", tm, err)
	}
	return in
}

// Meeus, example 13.b: Venus from the US Naval Observatory.
func TestToHorizontal_Example13b(t *testing.T) {
	in := mustInstant(t, time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC))
	loc := GeoLocation{Latitude: 38 + 55.0/60 + 17.0/3600, Longitude: -(77 + 3.0/60 + 56.0/3600)}
	venus := Equatorial{
		RA:  23 + 9.0/60 + 16.641/3600,
		Dec: -(6 + 43.0/60 + 11.61/3600),
	}

	if h := HourAngle(in, loc, venus); math.Abs(h-64.352) > 0.001 {
		t.Errorf("H = %.4f°, want 64.352°", h)
	}

	south, err := ToHorizontal(in, loc, venus, FromSouth)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(south.Altitude-15.1249) > 0.001 {
		t.Errorf("altitude = %.4f°, want 15.1249°", south.Altitude)
	}
	if math.Abs(south.Azimuth-68.0337) > 0.001 {
		t.Errorf("azimuth (south) = %.4f°, want 68.0337°", south.Azimuth)
	}

	north, err := ToHorizontal(in, loc, venus, FromNorth)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(north.Azimuth-248.0337) > 0.001 {
		t.Errorf("azimuth (north) = %.4f°, want 248.0337°", north.Azimuth)
	}
	if north.Altitude != south.Altitude {
		t.Error("azimuth reference changed the altitude")
	}
}

func TestToHorizontal_Polaris(t *testing.T) {
	polaris := Equatorial{RA: 2.5303, Dec: 89.2641}
	loc := testSites["goldstone"]

	for hour := 0; hour < 24; hour += 3 {
		in := mustInstant(t, time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC))
		h, err := ToHorizontal(in, loc, polaris, FromNorth)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(h.Altitude-loc.Latitude) > 1 {
			t.Errorf("%02dh: Polaris altitude %.2f°, want ~%.2f°", hour, h.Altitude, loc.Latitude)
		}
		// Within a degree of due north
		if h.Azimuth > 1.5 && h.Azimuth < 358.5 {
			t.Errorf("%02dh: Polaris azimuth %.2f°, want ~0°", hour, h.Azimuth)
		}
	}
}

func TestHorizontalFromHourAngle_Cardinal(t *testing.T) {
	tests := []struct {
		name    string
		h, dec  float64
		lat     float64
		wantAlt float64
		wantAz  float64 // from north
	}{
		{"zenith transit", 0, 35, 35, 90, -1},
		{"south meridian", 0, 0, 40, 50, 180},
		{"north meridian", 0, 60, 40, 70, 0},
		{"southern site north meridian", 0, 0, -35, 55, 0},
		{"equator rising due east", -90, 0, 0, 0, 90},
		{"equator setting due west", 90, 0, 0, 0, 270},
		{"nadir", 180, -35, 35, -90, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HorizontalFromHourAngle(tt.h, tt.dec, tt.lat, FromNorth)
			if math.Abs(h.Altitude-tt.wantAlt) > 1e-5 {
				t.Errorf("altitude = %v, want %v", h.Altitude, tt.wantAlt)
			}
			if tt.wantAz >= 0 && math.Abs(h.Azimuth-tt.wantAz) > 1e-9 {
				t.Errorf("azimuth = %v, want %v", h.Azimuth, tt.wantAz)
			}
		})
	}
}

func TestHorizontalFromHourAngle_Ranges(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 7.5 {
		for dec := -90.0; dec <= 90; dec += 7.5 {
			for h := -180.0; h <= 180; h += 11.25 {
				for _, ref := range []AzimuthReference{FromNorth, FromSouth} {
					hz := HorizontalFromHourAngle(h, dec, lat, ref)
					if hz.Altitude < -90 || hz.Altitude > 90 || math.IsNaN(hz.Altitude) {
						t.Fatalf("lat=%v dec=%v H=%v: altitude %v", lat, dec, h, hz.Altitude)
					}
					if hz.Azimuth < 0 || hz.Azimuth >= 360 || math.IsNaN(hz.Azimuth) {
						t.Fatalf("lat=%v dec=%v H=%v: azimuth %v", lat, dec, h, hz.Azimuth)
					}
				}
			}
		}
	}
}

func TestHorizontalFromHourAngle_AltitudeFallsAwayFromTransit(t *testing.T) {
	for _, c := range []struct{ lat, dec float64 }{
		{35.4, 10}, {-35.4, -60}, {51.5, -20}, {0, 23.4}, {70, 5},
	} {
		prev := HorizontalFromHourAngle(0, c.dec, c.lat, FromNorth).Altitude
		for h := 1.0; h <= 180; h++ {
			for _, sign := range []float64{1, -1} {
				alt := HorizontalFromHourAngle(sign*h, c.dec, c.lat, FromNorth).Altitude
				if alt >= prev {
					t.Fatalf("lat=%v dec=%v: altitude %v at |H|=%v not below %v", c.lat, c.dec, alt, h, prev)
				}
			}
			prev = HorizontalFromHourAngle(h, c.dec, c.lat, FromNorth).Altitude
		}
	}
}

func TestToHorizontal_DomainErrors(t *testing.T) {
	in := mustInstant(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ok := Equatorial{RA: 12, Dec: 10}
	tests := []struct {
		name string
		loc  GeoLocation
		eq   Equatorial
	}{
		{"dec above pole", testSites["madrid"], Equatorial{RA: 1, Dec: 90.5}},
		{"dec NaN", testSites["madrid"], Equatorial{RA: 1, Dec: math.NaN()}},
		{"RA of 24h", testSites["madrid"], Equatorial{RA: 24, Dec: 0}},
		{"negative RA", testSites["madrid"], Equatorial{RA: -0.1, Dec: 0}},
		{"latitude beyond pole", GeoLocation{Latitude: 91}, ok},
		{"longitude beyond dateline", GeoLocation{Longitude: -181}, ok},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToHorizontal(in, tt.loc, tt.eq, FromNorth); !errors.Is(err, ErrDomain) {
				t.Errorf("err = %v, want ErrDomain", err)
			}
		})
	}
}

func TestHorizontal_Airmass(t *testing.T) {
	tests := []struct {
		alt     float64
		want    float64
		wantErr bool
	}{
		{90, 1, false},
		{30, 2, false},
		{19.4712206, 3, false},
		{0, 0, true},
		{-5, 0, true},
	}
	for _, tt := range tests {
		got, err := Horizontal{Altitude: tt.alt}.Airmass()
		if tt.wantErr {
			if !errors.Is(err, ErrBelowHorizon) {
				t.Errorf("alt %v: err = %v, want ErrBelowHorizon", tt.alt, err)
			}
			continue
		}
		if err != nil || math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("alt %v: airmass = %v, %v; want %v", tt.alt, got, err, tt.want)
		}
	}
}

func TestEquatorialFromDegrees(t *testing.T) {
	tests := []struct{ deg, want float64 }{
		{0, 0}, {15, 1}, {359.9999, 23.99999333}, {360, 0}, {-15, 23}, {375, 1},
	}
	for _, tt := range tests {
		if got := EquatorialFromDegrees(tt.deg, 0).RA; math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("EquatorialFromDegrees(%v) RA = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestGeoLocation_String(t *testing.T) {
	got := testSites["canberra"].String()
	want := "Canberra (35.4014°S 148.9817°E)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
