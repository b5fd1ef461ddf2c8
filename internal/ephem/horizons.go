package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/timescale"
	"github.com/litescript/ls-almanac/internal/version"
	"github.com/soniakeys/meeus/v3/solar"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// HorizonsProvider queries JPL Horizons for geocentric apparent places and
// heliocentric vectors.
type HorizonsProvider struct {
	client *resty.Client
	url    string
	log    *logging.Logger
}

// HorizonsOption configures a HorizonsProvider.
type HorizonsOption func(*HorizonsProvider)

// WithBaseURL points the provider at another endpoint.
func WithBaseURL(url string) HorizonsOption {
	return func(p *HorizonsProvider) { p.url = url }
}

// WithLogger sets the provider's logger.
func WithLogger(l *logging.Logger) HorizonsOption {
	return func(p *HorizonsProvider) { p.log = l }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) HorizonsOption {
	return func(p *HorizonsProvider) { p.client.SetRetryCount(n) }
}

// NewHorizonsProvider creates a new Horizons API client.
func NewHorizonsProvider(opts ...HorizonsOption) *HorizonsProvider {
	client := resty.New().
		SetTimeout(RequestTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent())
	p := &HorizonsProvider{client: client, url: HorizonsAPIURL, log: logging.Discard()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string {
	return "Horizons"
}

// Available implements Provider.
func (p *HorizonsProvider) Available(target Target) bool {
	return target.Kind != KindStar && target.ID != 0
}

// Position implements Provider. It requests apparent RA/Dec (quantity 2),
// heliocentric range (19) and observer range (20) for the geocenter.
func (p *HorizonsProvider) Position(ctx context.Context, target Target, t time.Time) (Position, error) {
	if !p.Available(target) {
		return Position{}, fmt.Errorf("horizons %s: %w", target.Name, ErrUnknownTarget)
	}
	in, err := timescale.NewInstant(t)
	if err != nil {
		return Position{}, err
	}
	result, err := p.query(ctx, target, map[string]string{
		"EPHEM_TYPE":  "OBSERVER",
		"CENTER":      "'500@399'",
		"QUANTITIES":  "'2,19,20'",
		"ANG_FORMAT":  "DEG",
		"CSV_FORMAT":  "YES",
		"EXTRA_PREC":  "YES",
		"START_TIME":  quote(formatHorizonsTime(in.Time())),
		"STOP_TIME":   quote(formatHorizonsTime(in.Time().Add(time.Minute))),
		"STEP_SIZE":   "'1 m'",
		"TIME_DIGITS": "MINUTES",
	})
	if err != nil {
		return Position{}, err
	}
	row, err := parseObserverTable(result)
	if err != nil {
		return Position{}, fmt.Errorf("horizons %s: %w", target.Name, err)
	}
	pos := Position{
		Target:           target,
		Time:             in.Time(),
		Apparent:         astro.EquatorialFromDegrees(row.raDeg, row.dec),
		Delta:            row.delta,
		SunDistance:      row.r,
		EarthSunDistance: solar.Radius(in.TE()),
		Source:           p.Name(),
	}
	if target.Kind == KindSun {
		pos.SunDistance = 0
	}
	return pos, nil
}

// Heliocentric implements Provider. Horizons reports J2000 ecliptic vectors;
// the result is precessed to the ecliptic of date.
func (p *HorizonsProvider) Heliocentric(ctx context.Context, target Target, t time.Time) (photometry.HelioPosition, error) {
	if !p.Available(target) && target.ID != NAIFEarth {
		return photometry.HelioPosition{}, fmt.Errorf("horizons %s: %w", target.Name, ErrUnknownTarget)
	}
	in, err := timescale.NewInstant(t)
	if err != nil {
		return photometry.HelioPosition{}, err
	}
	result, err := p.query(ctx, target, map[string]string{
		"EPHEM_TYPE": "VECTORS",
		"CENTER":     "'@10'",
		"REF_PLANE":  "ECLIPTIC",
		"REF_SYSTEM": "ICRF",
		"VEC_TABLE":  "'2'",
		"VEC_LABELS": "NO",
		"CSV_FORMAT": "NO",
		"OUT_UNITS":  "'AU-D'",
		"START_TIME": quote(formatHorizonsTime(in.Time())),
		"STOP_TIME":  quote(formatHorizonsTime(in.Time().Add(time.Minute))),
		"STEP_SIZE":  "'1 m'",
	})
	if err != nil {
		return photometry.HelioPosition{}, err
	}
	v, err := parseVectorTable(result)
	if err != nil {
		return photometry.HelioPosition{}, fmt.Errorf("horizons %s: %w", target.Name, err)
	}
	h := photometry.HelioPosition{L: v.Longitude(), B: v.Latitude(), R: v.Norm()}
	return photometry.FromJ2000(h, in.TE()), nil
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

func quote(s string) string { return "'" + s + "'" }

// query makes a request to the Horizons API and returns the text result.
// Parameter values must already carry Horizons' single quotes.
func (p *HorizonsProvider) query(ctx context.Context, target Target, params map[string]string) (string, error) {
	req := p.client.R().
		SetContext(ctx).
		SetQueryParam("format", "json").
		SetQueryParam("COMMAND", quote(target.Command())).
		SetQueryParam("OBJ_DATA", "NO").
		SetQueryParam("MAKE_EPHEM", "YES").
		SetQueryParams(params)

	start := time.Now()
	resp, err := req.Get(p.url)
	if err != nil {
		return "", fmt.Errorf("horizons request failed: %w", err)
	}
	p.log.Debug("%s %s %s: %d in %v", params["EPHEM_TYPE"], target.Name, target.Command(),
		resp.StatusCode(), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("horizons returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	var hr horizonsResponse
	if err := json.Unmarshal(resp.Body(), &hr); err != nil {
		return "", fmt.Errorf("failed to parse JSON: %w", err)
	}
	if hr.Error != "" {
		return "", fmt.Errorf("horizons: %s: %w", strings.TrimSpace(hr.Error), ErrNoData)
	}
	return hr.Result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// dataSection returns the lines between the $$SOE and $$EOE markers.
func dataSection(result string) ([]string, error) {
	soeIdx := strings.Index(result, "$$SOE")
	eoeIdx := strings.Index(result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find ephemeris data markers: %w", ErrNoData)
	}
	var lines []string
	for _, line := range strings.Split(result[soeIdx+5:eoeIdx], "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// observerRow is one line of an observer table with quantities 2, 19, 20.
type observerRow struct {
	time   time.Time
	raDeg  float64
	dec    float64
	r      float64
	delta  float64
	deldot float64
}

// parseObserverTable returns the first parseable row of an observer table.
func parseObserverTable(result string) (observerRow, error) {
	lines, err := dataSection(result)
	if err != nil {
		return observerRow{}, err
	}
	for _, line := range lines {
		if row, err := parseObserverLine(line); err == nil {
			return row, nil
		}
	}
	return observerRow{}, fmt.Errorf("no parseable rows: %w", ErrNoData)
}

// parseObserverLine parses a CSV observer line:
//
//	2025-Jan-01 00:00, , ,  21.1234567, -12.3456789, 1.2345678, -0.1234, 0.5678901, 12.3456,
//
// Fields: date, solar and lunar presence flags, RA, Dec, r, rdot, delta,
// deldot. Flag fields may be empty or non-numeric and are skipped.
func parseObserverLine(line string) (observerRow, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 7 {
		return observerRow{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}
	t, err := parseHorizonsDateTime(strings.TrimSpace(fields[0]))
	if err != nil {
		return observerRow{}, err
	}

	var nums []float64
	for _, f := range fields[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err == nil {
			nums = append(nums, v)
		}
	}
	if len(nums) < 6 {
		return observerRow{}, fmt.Errorf("found %d numeric fields, want 6", len(nums))
	}
	row := observerRow{time: t, raDeg: nums[0], dec: nums[1], r: nums[2], delta: nums[4], deldot: nums[5]}
	if row.raDeg < 0 || row.raDeg >= 360 || row.dec < -90 || row.dec > 90 {
		return observerRow{}, fmt.Errorf("RA/Dec out of range: %v, %v", row.raDeg, row.dec)
	}
	return row, nil
}

// parseHorizonsDateTime parses Horizons date format like "2025-Dec-05 00:00".
func parseHorizonsDateTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-Jan-02 15:04", "2006-Jan-02 15:04:05", "2006-Jan-02 15:04:05.000"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// formatHorizonsTime formats a time for Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// parseVectorTable parses a VEC_TABLE='2' section:
//
//	2460651.500000000 = A.D. 2024-Dec-05 00:00:00.0000 TDB
//	 X = 1.234567890123456E+00 Y = 2.345678901234567E+00 Z = 3.456789012345678E-01
//
// The unlabeled form carries the three numbers alone.
func parseVectorTable(result string) (astro.Vec3, error) {
	lines, err := dataSection(result)
	if err != nil {
		return astro.Vec3{}, err
	}
	for _, line := range lines {
		if strings.Contains(line, "A.D.") {
			continue
		}
		if strings.Contains(line, "X =") {
			return parseVectorLabeled(line)
		}
		if vec, err := parseVectorUnlabeled(line); err == nil {
			return vec, nil
		}
	}
	return astro.Vec3{}, fmt.Errorf("could not parse vector data: %w", ErrNoData)
}

// parseVectorLabeled parses: X = 1.23E+00 Y = 2.34E+00 Z = 3.45E-01
func parseVectorLabeled(line string) (astro.Vec3, error) {
	parts := strings.Split(line, "=")
	if len(parts) < 4 {
		return astro.Vec3{}, fmt.Errorf("invalid labeled format")
	}
	var xyz [3]float64
	for i := range xyz {
		f := strings.Fields(parts[i+1])
		if len(f) == 0 {
			return astro.Vec3{}, fmt.Errorf("invalid labeled format")
		}
		v, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return astro.Vec3{}, err
		}
		xyz[i] = v
	}
	return astro.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// parseVectorUnlabeled parses: 1.23E+00  2.34E+00  3.45E-01
func parseVectorUnlabeled(line string) (astro.Vec3, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) < 3 {
		return astro.Vec3{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}
	var xyz [3]float64
	for i := range xyz {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return astro.Vec3{}, err
		}
		xyz[i] = v
	}
	return astro.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
