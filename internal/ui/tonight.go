package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/riseset"
)

// Styles for the tonight view
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	belowHorizonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// TonightModel lists every target with its position and the day's events.
type TonightModel struct {
	width    int
	height   int
	cursor   int
	snapshot Snapshot
}

// NewTonightModel creates a new tonight model.
func NewTonightModel() TonightModel {
	return TonightModel{}
}

// SetSize updates the viewport size.
func (m TonightModel) SetSize(width, height int) TonightModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m TonightModel) UpdateData(snapshot Snapshot) TonightModel {
	m.snapshot = snapshot
	if m.cursor >= len(snapshot.Reports) {
		m.cursor = 0
	}
	return m
}

// Update handles messages.
func (m TonightModel) Update(msg tea.Msg) (TonightModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(m.snapshot.Reports)
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if n > 0 {
				m.cursor = n - 1
			}
		case "enter":
			if r := m.Selected(); r != nil {
				id := r.Target.ID
				return m, func() tea.Msg { return OpenBodyMsg{ID: id} }
			}
		}
	}
	return m, nil
}

// Selected returns the report under the cursor, if any.
func (m TonightModel) Selected() *almanac.Report {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Reports) {
		return nil
	}
	r := m.snapshot.Reports[m.cursor]
	return &r
}

// View renders the tonight view.
func (m TonightModel) View() string {
	var b strings.Builder

	if m.snapshot.LastError != nil {
		b.WriteString(errorStyle.Render("Error: " + truncate(m.snapshot.LastError.Error(), max(m.width-8, 20))))
		b.WriteString("\n\n")
	}
	if len(m.snapshot.Reports) == 0 && m.snapshot.LastError == nil {
		b.WriteString("Computing positions...\n")
		return b.String()
	}

	b.WriteString(m.renderDaySummary())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	return b.String()
}

func (m TonightModel) renderDaySummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Tonight at %s", m.snapshot.Site)))
	b.WriteString("\n")

	d := m.snapshot.Day
	if d == nil {
		b.WriteString(belowHorizonStyle.Render("  Sun and Moon almanac unavailable"))
		return b.String()
	}
	sunUp := d.Sun.State == riseset.Converged
	moonUp := d.Moon.State == riseset.Converged
	b.WriteString(fmt.Sprintf("  Sun  ↑ %s  ↓ %s   Moon ↑ %s  ↓ %s   %s %s %.0f%%",
		FormatEvent(d.Sun.Rise, sunUp), FormatEvent(d.Sun.Set, sunUp),
		FormatEvent(d.Moon.Rise, moonUp), FormatEvent(d.Moon.Set, moonUp),
		phaseGlyph(d.Phase.Elongation), d.Phase.Name, d.Phase.Illuminated*100))
	if night, ok := d.Twilight[riseset.Astronomical]; ok {
		up := night.State == riseset.Converged
		b.WriteString(fmt.Sprintf("\n  Astronomical night %s – %s (%s)",
			FormatEvent(night.Set, up), FormatEvent(night.Rise, up), FormatState(night.State)))
	}
	return b.String()
}

func (m TonightModel) renderTable() string {
	var b strings.Builder

	header := fmt.Sprintf("%-10s %-13s %-11s %6s %6s %5s %5s %5s %5s %s",
		"Target", "RA", "Dec", "Alt", "Az", "Mag", "Rise", "Trans", "Set", "Alt")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 8
	if maxRows < 5 {
		maxRows = 5
	}
	reports := m.snapshot.Reports
	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := min(startIdx+maxRows, len(reports))

	for i := startIdx; i < endIdx; i++ {
		r := reports[i]
		row := tonightRow(r, m.snapshot) + " " + m.renderAltitudeBar(r.Horizontal.Altitude)
		switch {
		case i == m.cursor:
			b.WriteString(selectedRowStyle.Render(row))
		case r.Elevation == astro.ElevationNone:
			b.WriteString(belowHorizonStyle.Render(row))
		default:
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(reports) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d targets", startIdx+1, endIdx, len(reports)))
	}
	return b.String()
}

// renderAltitudeBar draws a 5-cell bar for an altitude in degrees.
func (m TonightModel) renderAltitudeBar(alt float64) string {
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	if alt <= 0 {
		return belowHorizonStyle.Render("  -  ")
	}
	idx := min(int(alt/90*float64(len(chars)-1)), len(chars)-1)

	var style lipgloss.Style
	switch {
	case alt >= 45:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	case alt >= 15:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	default:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	}
	return style.Render(strings.Repeat(string(chars[idx]), 5))
}
