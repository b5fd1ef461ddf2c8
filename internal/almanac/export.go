package almanac

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/riseset"
)

// Export is the JSON-serializable form of an almanac run.
type Export struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Site        SiteExport     `json:"site"`
	Reports     []ReportExport `json:"reports,omitempty"`
	Events      []EventsExport `json:"events,omitempty"`
	Day         *DayExport     `json:"day,omitempty"`
	Passes      []PassExport   `json:"passes,omitempty"`
	Errors      []string       `json:"errors,omitempty"`
}

// SiteExport is a JSON-friendly observing site.
type SiteExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation_m"`
}

// ReportExport is a JSON-friendly observation report.
type ReportExport struct {
	Target          string    `json:"target"`
	Kind            string    `json:"kind"`
	Time            time.Time `json:"time"`
	RA              float64   `json:"ra_hours"`
	Dec             float64   `json:"dec_deg"`
	Azimuth         float64   `json:"azimuth"`
	Altitude        float64   `json:"altitude"`
	HourAngle       float64   `json:"hour_angle"`
	Elevation       string    `json:"elevation_tier"`
	Airmass         float64   `json:"airmass,omitempty"`
	DistanceAU      float64   `json:"distance_au,omitempty"`
	LightTimeSec    float64   `json:"light_time_seconds,omitempty"`
	SunSeparation   float64   `json:"sun_separation,omitempty"`
	SunTier         string    `json:"sun_tier,omitempty"`
	LAST            float64   `json:"last_hours"`
	PhaseAngle      float64   `json:"phase_angle"`
	Illuminated     float64   `json:"illuminated"`
	AngularDiameter float64   `json:"angular_diameter_arcsec,omitempty"`
	Magnitude       *float64  `json:"magnitude,omitempty"`

	Rings     *RingsExport    `json:"rings,omitempty"`
	Meridian  *MeridianExport `json:"central_meridian,omitempty"`
	Features  []FeatureExport `json:"features,omitempty"`
	MoonPhase *PhaseExport    `json:"moon_phase,omitempty"`
	Source    string          `json:"source,omitempty"`
	Notes     []string        `json:"notes,omitempty"`
}

// RingsExport is Saturn's ring aspect.
type RingsExport struct {
	B     float64 `json:"earth_latitude"`
	P     float64 `json:"position_angle"`
	Major float64 `json:"major_arcsec"`
	Minor float64 `json:"minor_arcsec"`
}

// MeridianExport is a central meridian solution.
type MeridianExport struct {
	Model     string  `json:"model"`
	Longitude float64 `json:"longitude"`
	DE        float64 `json:"earth_declination"`
	DS        float64 `json:"sun_declination"`
}

// FeatureExport is one surface feature's presentation.
type FeatureExport struct {
	Name        string    `json:"name"`
	HourAngle   float64   `json:"hour_angle"`
	Visibility  string    `json:"visibility"`
	NextTransit time.Time `json:"next_transit"`
}

// PhaseExport is the lunar phase.
type PhaseExport struct {
	Name        string  `json:"name"`
	Elongation  float64 `json:"elongation"`
	Illuminated float64 `json:"illuminated"`
	AgeDays     float64 `json:"age_days"`
	Waxing      bool    `json:"waxing"`
}

// EventsExport is a target's rise, transit and set for one day.
type EventsExport struct {
	Target          string     `json:"target"`
	Date            string     `json:"date"`
	StandardAlt     float64    `json:"h0"`
	State           string     `json:"state"`
	Rise            *time.Time `json:"rise,omitempty"`
	Transit         time.Time  `json:"transit"`
	TransitAltitude float64    `json:"transit_altitude"`
	Set             *time.Time `json:"set,omitempty"`
	Iterations      int        `json:"iterations"`
	Converged       bool       `json:"within_tolerance"`
}

// TwilightExport is one twilight band for a day.
type TwilightExport struct {
	Kind  string     `json:"kind"`
	State string     `json:"state"`
	Begin *time.Time `json:"begin,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// DayExport is the Sun and Moon almanac for a day.
type DayExport struct {
	Date     string           `json:"date"`
	Sun      EventsExport     `json:"sun"`
	Moon     EventsExport     `json:"moon"`
	Twilight []TwilightExport `json:"twilight"`
	Phase    PhaseExport      `json:"moon_phase"`
}

// PassExport is one above-horizon pass of a target.
type PassExport struct {
	Target      string     `json:"target"`
	Rise        *time.Time `json:"rise,omitempty"`
	Transit     time.Time  `json:"transit"`
	Set         *time.Time `json:"set,omitempty"`
	MaxAltitude float64    `json:"max_altitude"`
	Status      string     `json:"status"`
}

// NewExport starts an export for site.
func NewExport(site astro.GeoLocation, generatedAt time.Time) *Export {
	return &Export{
		GeneratedAt: generatedAt.UTC(),
		Site: SiteExport{
			Name:      site.Name,
			Latitude:  site.Latitude,
			Longitude: site.Longitude,
			Elevation: site.Elevation,
		},
	}
}

// AddReports appends observation reports.
func (e *Export) AddReports(reports ...Report) {
	for _, r := range reports {
		e.Reports = append(e.Reports, ExportReport(r))
	}
}

// AddEvents appends daily events.
func (e *Export) AddEvents(evs ...Events) {
	for _, ev := range evs {
		e.Events = append(e.Events, ExportEvents(ev))
	}
}

// SetDay sets the Sun and Moon almanac.
func (e *Export) SetDay(d Day) {
	out := ExportDay(d)
	e.Day = &out
}

// AddPasses appends a pass plan.
func (e *Export) AddPasses(plan PassPlan) {
	for _, p := range plan.Passes {
		pe := PassExport{
			Target:      plan.Target.Name,
			Transit:     p.Transit.Time,
			MaxAltitude: p.MaxAltitude,
			Status:      p.Status.String(),
		}
		if p.HasRise {
			pe.Rise = timePtr(p.Rise.Time)
		}
		if p.HasSet {
			pe.Set = timePtr(p.Set.Time)
		}
		e.Passes = append(e.Passes, pe)
	}
}

// AddError records a failure that did not abort the run.
func (e *Export) AddError(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err.Error())
	}
}

// ExportReport converts a report to its JSON form.
func ExportReport(r Report) ReportExport {
	out := ReportExport{
		Target:          r.Target.Name,
		Kind:            r.Target.Kind.String(),
		Time:            r.Time,
		RA:              r.Position.Apparent.RA,
		Dec:             r.Position.Apparent.Dec,
		Azimuth:         r.Horizontal.Azimuth,
		Altitude:        r.Horizontal.Altitude,
		HourAngle:       r.HourAngle,
		Elevation:       r.Elevation.String(),
		Airmass:         r.Airmass,
		DistanceAU:      r.Position.Delta,
		LAST:            r.Sidereal.LAST,
		PhaseAngle:      r.Observation.PhaseAngle,
		Illuminated:     r.Observation.Illuminated,
		AngularDiameter: r.Observation.AngularDiameter,
		Source:          r.Position.Source,
		Notes:           r.Notes,
	}
	if r.Position.Delta > 0 {
		out.LightTimeSec = astro.LightTimeFromAU(r.Position.Delta)
	}
	if r.SunSeparation > 0 {
		out.SunSeparation = r.SunSeparation
		out.SunTier = r.SunTier.String()
	}
	if r.Observation.HasMagnitude {
		m := r.Observation.Magnitude
		out.Magnitude = &m
	}
	if r.Rings != nil {
		out.Rings = &RingsExport{B: r.Rings.B, P: r.Rings.P, Major: r.Rings.A, Minor: r.Rings.Minor}
	}
	if r.Physical != nil {
		out.Meridian = &MeridianExport{
			Model:     r.Physical.Model,
			Longitude: r.Physical.Omega,
			DE:        r.Physical.DE,
			DS:        r.Physical.DS,
		}
	}
	for _, f := range r.Features {
		out.Features = append(out.Features, FeatureExport{
			Name:        f.Name,
			HourAngle:   f.HourAngle,
			Visibility:  f.Visibility.String(),
			NextTransit: f.NextTransit,
		})
	}
	if r.MoonPhase != nil {
		p := exportPhase(*r.MoonPhase)
		out.MoonPhase = &p
	}
	return out
}

// ExportEvents converts daily events to their JSON form.
func ExportEvents(ev Events) EventsExport {
	out := EventsExport{
		Target:          ev.Target.Name,
		Date:            ev.Date.Format(time.DateOnly),
		StandardAlt:     ev.H0,
		State:           ev.State.String(),
		Transit:         ev.Transit.Time,
		TransitAltitude: ev.Transit.Altitude,
		Iterations:      ev.Iterations,
		Converged:       ev.WithinTolerance,
	}
	if ev.State == riseset.Converged {
		out.Rise = timePtr(ev.Rise.Time)
		out.Set = timePtr(ev.Set.Time)
	}
	return out
}

// ExportDay converts a day almanac to its JSON form.
func ExportDay(d Day) DayExport {
	out := DayExport{
		Date:  d.Date.Format(time.DateOnly),
		Sun:   ExportEvents(d.Sun),
		Moon:  ExportEvents(d.Moon),
		Phase: exportPhase(d.Phase),
	}
	for _, k := range []riseset.TwilightKind{riseset.Civil, riseset.Nautical, riseset.Astronomical} {
		res, ok := d.Twilight[k]
		if !ok {
			continue
		}
		tw := TwilightExport{Kind: k.String(), State: res.State.String()}
		if res.State == riseset.Converged {
			tw.Begin = timePtr(res.Rise.Time)
			tw.End = timePtr(res.Set.Time)
		}
		out.Twilight = append(out.Twilight, tw)
	}
	return out
}

func exportPhase(p photometry.LunarPhase) PhaseExport {
	return PhaseExport{
		Name:        p.Name,
		Elongation:  p.Elongation,
		Illuminated: p.Illuminated,
		AgeDays:     p.AgeDays,
		Waxing:      p.Waxing,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
