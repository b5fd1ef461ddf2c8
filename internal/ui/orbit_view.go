package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/ephem"
)

// ScaleMode selects how heliocentric distance maps to screen radius.
type ScaleMode int

const (
	ScaleLogR   ScaleMode = iota // log10(1 + r); fits the outer planets
	ScaleLinear                  // r in AU; inner planets only
)

func (s ScaleMode) String() string {
	if s == ScaleLinear {
		return "linear"
	}
	return "log"
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

// OrbitModel renders a top-down view of the ecliptic plane.
type OrbitModel struct {
	width     int
	height    int
	bodies    []OrbitBody
	focusIdx  int // -1 is the Sun
	zoomLevel int
	scaleMode ScaleMode
	labelMode LabelMode
}

// NewOrbitModel creates a new orbit view model.
func NewOrbitModel() OrbitModel {
	return OrbitModel{
		focusIdx:  -1,
		zoomLevel: 3,
		labelMode: LabelAll,
	}
}

// SetSize updates the viewport size.
func (m OrbitModel) SetSize(width, height int) OrbitModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new heliocentric positions.
func (m OrbitModel) UpdateData(snapshot Snapshot) OrbitModel {
	m.bodies = snapshot.Orbits
	if m.focusIdx >= len(m.bodies) {
		m.focusIdx = -1
	}
	return m
}

// Update handles input messages.
func (m OrbitModel) Update(msg tea.Msg) (OrbitModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "[":
			m.focusIdx--
			if m.focusIdx < -1 {
				m.focusIdx = len(m.bodies) - 1
			}
		case "k", "]":
			m.focusIdx++
			if m.focusIdx >= len(m.bodies) {
				m.focusIdx = -1
			}
		case "+", "=":
			m.zoomLevel = min(m.zoomLevel+1, len(zoomLevels)-1)
		case "-", "_":
			m.zoomLevel = max(m.zoomLevel-1, 0)
		case "z":
			m.scaleMode = (m.scaleMode + 1) % 2
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		}
	}
	return m, nil
}

func (m OrbitModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// project maps a heliocentric longitude and radius to a displacement in
// display units, x toward the vernal equinox and y counterclockwise.
func (m OrbitModel) project(lon, r float64) (x, y float64) {
	d := r
	if m.scaleMode == ScaleLogR {
		d = math.Log10(1 + r)
	}
	rad := lon * math.Pi / 180
	return d * math.Cos(rad), d * math.Sin(rad)
}

// View renders the orbit view.
func (m OrbitModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Orbit view requires larger terminal"
	}
	var b strings.Builder
	b.WriteString(m.renderCanvas())
	b.WriteString("\n")
	b.WriteString(m.renderHUD())
	return b.String()
}

func (m OrbitModel) renderCanvas() string {
	canvasH := max(m.height-4, 5)
	canvasW := m.width

	grid := make([][]rune, canvasH)
	colors := make([][]lipgloss.Color, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		colors[y] = make([]lipgloss.Color, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
			colors[y][x] = "60"
		}
	}

	cx, cy := canvasW/2, canvasH/2
	// log10(31) ~ 1.5 reaches Neptune at zoom 1. Terminal cells are about
	// twice as tall as wide, hence the factor 2 on x.
	fullRange := 1.5
	if m.scaleMode == ScaleLinear {
		fullRange = 2.0
	}
	displayScale := float64(min(cx/2, cy)) * 0.9 / fullRange * m.scale()

	type mark struct {
		x, y  int
		glyph rune
		color lipgloss.Color
	}
	var positions []bodyPos
	var marks []mark
	for i, body := range m.bodies {
		px, py := m.project(body.Helio.L, body.Helio.R)
		m.drawOrbit(grid, cx, cy, displayScale, body.Helio.R)
		sx := cx + int(2*px*displayScale)
		sy := cy - int(py*displayScale)
		if sx < 0 || sx >= canvasW || sy < 0 || sy >= canvasH {
			continue
		}
		focused := i == m.focusIdx
		g, c := orbitGlyph(body, focused)
		marks = append(marks, mark{sx, sy, g, c})
		positions = append(positions, bodyPos{x: sx, y: sy, name: body.Name, isFocused: focused})
	}
	marks = append(marks, mark{cx, cy, glyphSun, colorSun})
	positions = append(positions, bodyPos{x: cx, y: cy, name: "Sun", isFocused: m.focusIdx == -1})

	sky := SkyViewModel{labelMode: m.labelMode}
	sky.renderLabels(grid, colors, canvasW, canvasH, positions)
	// Glyphs go last so no label covers a body.
	for _, mk := range marks {
		grid[mk.y][mk.x], colors[mk.y][mk.x] = mk.glyph, mk.color
	}

	var b strings.Builder
	for y := range grid {
		for x := range grid[y] {
			b.WriteString(lipgloss.NewStyle().Foreground(colors[y][x]).Render(string(grid[y][x])))
		}
		if y < len(grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// drawOrbit traces a circle of heliocentric radius r.
func (m OrbitModel) drawOrbit(grid [][]rune, cx, cy int, displayScale, r float64) {
	const steps = 180
	for i := range steps {
		px, py := m.project(float64(i)*360/steps, r)
		x := cx + int(2*px*displayScale)
		y := cy - int(py*displayScale)
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
	}
}

func orbitGlyph(b OrbitBody, focused bool) (rune, lipgloss.Color) {
	switch {
	case focused:
		return glyphBodyFocused, colorBodyFocused
	case b.Name == ephem.EarthTarget.Name:
		return '⊕', "39"
	case b.Kind == ephem.KindComet:
		return '☄', "252"
	case b.Kind == ephem.KindAsteroid:
		return '∘', "244"
	default:
		return glyphBody, colorBody
	}
}

func (m OrbitModel) renderHUD() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorBodyFocused))

	focus := "Sun"
	detail := ""
	if b := m.FocusedBody(); b != nil {
		focus = b.Name
		detail = fmt.Sprintf("  L %.2f°  B %+.2f°  r %.4f AU", b.Helio.L, b.Helio.B, b.Helio.R)
	}
	return accentStyle.Render(">>> "+focus+detail) + "\n" +
		dimStyle.Render(fmt.Sprintf("zoom ×%.2f | scale %s | %d bodies", m.scale(), m.scaleMode, len(m.bodies)))
}

// FocusedBody returns the focused body, or nil when the Sun is focused.
func (m OrbitModel) FocusedBody() *OrbitBody {
	if m.focusIdx < 0 || m.focusIdx >= len(m.bodies) {
		return nil
	}
	return &m.bodies[m.focusIdx]
}
