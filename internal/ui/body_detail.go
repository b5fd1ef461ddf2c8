package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/riseset"
	"github.com/litescript/ls-almanac/internal/timescale"
)

// SparklineWidth is the number of cells in the altitude trace.
const SparklineWidth = 48

// sparklineBlocks are the block glyphs from lowest to highest.
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Altitude trace colors: horizon, mid and zenith.
var (
	altColorLow  = [3]uint8{0x2a, 0x2f, 0x6b}
	altColorMid  = [3]uint8{0x4d, 0x7c, 0xfe}
	altColorHigh = [3]uint8{0x8b, 0xe9, 0xff}
)

// BodyDetailModel shows the full report for one target.
type BodyDetailModel struct {
	width        int
	height       int
	selectedID   ephem.TargetID
	snapshot     Snapshot
	showFeatures bool
	animTick     int
}

// NewBodyDetailModel creates a new body detail model.
func NewBodyDetailModel() BodyDetailModel {
	return BodyDetailModel{selectedID: -1, showFeatures: true}
}

// SetSize updates the viewport size.
func (m BodyDetailModel) SetSize(width, height int) BodyDetailModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick updates the animation tick for the loading shimmer.
func (m BodyDetailModel) SetAnimTick(tick int) BodyDetailModel {
	m.animTick = tick
	return m
}

// UpdateData updates with a new snapshot, selecting the first target when
// nothing is selected yet.
func (m BodyDetailModel) UpdateData(snapshot Snapshot) BodyDetailModel {
	m.snapshot = snapshot
	if m.selected() == nil && len(snapshot.Reports) > 0 {
		m.selectedID = snapshot.Reports[0].Target.ID
	}
	return m
}

// Update handles messages.
func (m BodyDetailModel) Update(msg tea.Msg) (BodyDetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right", "l":
			m.step(1)
		case "left", "h":
			m.step(-1)
		case "f":
			m.showFeatures = !m.showFeatures
		}
	}
	return m, nil
}

func (m *BodyDetailModel) step(delta int) {
	n := len(m.snapshot.Reports)
	if n == 0 {
		return
	}
	idx := 0
	for i, r := range m.snapshot.Reports {
		if r.Target.ID == m.selectedID {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	m.selectedID = m.snapshot.Reports[idx].Target.ID
}

// SelectedID returns the selected target.
func (m BodyDetailModel) SelectedID() ephem.TargetID {
	return m.selectedID
}

// SetSelected selects a target by ID.
func (m *BodyDetailModel) SetSelected(id ephem.TargetID) {
	m.selectedID = id
}

func (m BodyDetailModel) selected() *almanac.Report {
	for i := range m.snapshot.Reports {
		if m.snapshot.Reports[i].Target.ID == m.selectedID {
			return &m.snapshot.Reports[i]
		}
	}
	return nil
}

// View renders the body detail view.
func (m BodyDetailModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderSelector())
	b.WriteString("\n\n")

	r := m.selected()
	if r == nil {
		if len(m.snapshot.Reports) == 0 {
			b.WriteString("  " + m.renderShimmerText("Computing positions..."))
		} else {
			b.WriteString("  No target selected. Use ←/→ to select.")
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderDetails(r))
	b.WriteString("\n")
	b.WriteString(m.renderEvents(r))
	if m.showFeatures && len(r.Features) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderFeatures(r))
	}
	return b.String()
}

func (m BodyDetailModel) renderSelector() string {
	var b strings.Builder

	selectorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	unselectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 1)

	b.WriteString(selectorStyle.Render("Target: "))
	b.WriteString("← ")
	for _, r := range m.snapshot.Reports {
		if r.Target.ID == m.selectedID {
			b.WriteString(selectedStyle.Render(r.Target.Name))
		} else {
			b.WriteString(unselectedStyle.Render(r.Target.Name))
		}
		b.WriteString(" ")
	}
	b.WriteString("→")
	return b.String()
}

func (m BodyDetailModel) renderDetails(r *almanac.Report) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(16)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  (%s)", r.Target.Name, r.Target.Kind)))
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	pos := r.Position
	line("RA / Dec", FormatRA(pos.Apparent.RA)+"  "+FormatDec(pos.Apparent.Dec))
	line("Horizontal", FormatAltAz(r.Horizontal))
	line("Hour angle", fmt.Sprintf("%+.2f°", r.HourAngle))
	line("Sidereal", "LAST "+FormatHours(r.Sidereal.LAST)+"  GAST "+FormatHours(r.Sidereal.GAST))
	if r.Airmass > 0 {
		line("Airmass", fmt.Sprintf("%.2f", r.Airmass))
	}
	if pos.Delta > 0 {
		line("Distance", FormatDistance(r.Target.Kind, pos.Delta))
		if r.Target.Kind != ephem.KindSun {
			sep := fmt.Sprintf("%.1f° (%s)", r.SunSeparation, r.SunTier)
			if r.SunTier != astro.SunSepSafe {
				sep = warnStyle.Render(sep)
			}
			line("Sun separation", sep)
		}
	}
	o := r.Observation
	line("Magnitude", FormatMagnitude(o))
	if o.AngularDiameter > 0 {
		line("Diameter", FormatDiameter(o.AngularDiameter))
	}
	if r.Target.Kind != ephem.KindStar && r.Target.Kind != ephem.KindSun {
		line("Phase", fmt.Sprintf("%.1f°  %.1f%% lit", o.PhaseAngle, o.Illuminated*100))
	}
	if r.Rings != nil {
		line("Rings", fmt.Sprintf("B %+.2f°  P %.2f°  %.1f″ × %.1f″", r.Rings.B, r.Rings.P, r.Rings.A, r.Rings.Minor))
	}
	if r.Physical != nil {
		line("Central meridian", fmt.Sprintf("%.1f° (%s)  DE %+.2f°", r.Physical.Omega, r.Physical.Model, r.Physical.DE))
	}
	if r.MoonPhase != nil {
		line("Lunation", fmt.Sprintf("%s %s, age %.1f d", phaseGlyph(r.MoonPhase.Elongation), r.MoonPhase.Name, r.MoonPhase.AgeDays))
	}
	line("Source", pos.Source)
	for _, n := range r.Notes {
		b.WriteString("  " + warnStyle.Render("! "+n) + "\n")
	}
	return b.String()
}

func (m BodyDetailModel) renderEvents(r *almanac.Report) string {
	var b strings.Builder
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	if ev, ok := m.snapshot.EventsFor(r.Target.ID); ok {
		up := ev.State == riseset.Converged
		b.WriteString(labelStyle.Render("  Today (UT)  "))
		b.WriteString(fmt.Sprintf("↑ %s  ⊤ %s  ↓ %s  %s",
			FormatEvent(ev.Rise, up), FormatEvent(ev.Transit, true), FormatEvent(ev.Set, up), FormatState(ev.State)))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(m.renderAltitudeSparkline(r))
	b.WriteString("\n")
	return b.String()
}

func (m BodyDetailModel) renderFeatures(r *almanac.Report) string {
	var b strings.Builder
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	b.WriteString(headerStyle.Render("  Surface features"))
	b.WriteString("\n")
	for _, f := range r.Features {
		row := fmt.Sprintf("  %-22s %-9s HA %+7.1f°  transit in %s",
			truncate(f.Name, 22), f.Visibility, f.HourAngle, formatDuration(f.NextTransit.Sub(r.Time)))
		if f.Visibility == photometry.VisibilityNo {
			row = dimStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// altitudeTrace samples the target's altitude across the report's UT day,
// holding its equatorial position fixed.
func altitudeTrace(r *almanac.Report, n int) []float64 {
	if n <= 0 {
		return nil
	}
	day := timescale.StartOfDay(r.Time)
	step := 24 * time.Hour / time.Duration(n)
	out := make([]float64, 0, n)
	for i := range n {
		in, err := timescale.NewInstant(day.Add(time.Duration(i) * step))
		if err != nil {
			return nil
		}
		alt, err := astro.Altitude(in, r.Site, r.Position.Apparent)
		if err != nil {
			return nil
		}
		out = append(out, alt)
	}
	return out
}

// renderAltitudeSparkline renders the day's altitude trace with a marker
// at the report time.
func (m BodyDetailModel) renderAltitudeSparkline(r *almanac.Report) string {
	samples := altitudeTrace(r, SparklineWidth)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if len(samples) == 0 {
		return dimStyle.Render("No altitude trace available")
	}

	day := timescale.StartOfDay(r.Time)
	nowIdx := int(r.Time.Sub(day) * SparklineWidth / (24 * time.Hour))

	var sb strings.Builder
	sb.WriteString(dimStyle.Render("00h "))
	for i, alt := range samples {
		if alt <= 0 {
			glyph := "·"
			if i == nowIdx {
				glyph = "|"
			}
			sb.WriteString(dimStyle.Render(glyph))
			continue
		}
		t := min(alt/90, 1)
		block := sparklineBlocks[min(int(t*7), 7)]
		r8, g8, b8 := interpolateAltColor(t)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)))
		if i == nowIdx {
			style = style.Background(lipgloss.Color("57"))
		}
		sb.WriteString(style.Render(string(block)))
	}
	sb.WriteString(dimStyle.Render(" 24h"))
	nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	sb.WriteString(nowStyle.Render(fmt.Sprintf("  now: %+.0f°", r.Horizontal.Altitude)))
	return sb.String()
}

// interpolateAltColor returns RGB color for altitude fraction t in [0, 1].
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	t = max(0, min(t, 1))
	lo, hi, s := altColorLow, altColorMid, t*2
	if t >= 0.5 {
		lo, hi, s = altColorMid, altColorHigh, (t-0.5)*2
	}
	mix := func(a, b uint8) uint8 { return uint8(float64(a)*(1-s) + float64(b)*s) }
	return mix(lo[0], hi[0]), mix(lo[1], hi[1]), mix(lo[2], hi[2])
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m BodyDetailModel) renderShimmerText(text string) string {
	return shimmer(text, m.animTick)
}
