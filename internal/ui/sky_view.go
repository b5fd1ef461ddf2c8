package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/timescale"
)

const (
	// Field of view in degrees
	fovAz = 120.0
	fovEl = 60.0

	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	glyphBody        = '✦'
	glyphBodyFocused = '◆'
	glyphSun         = '☉'
	glyphMoon        = '☾'

	colorBody        = "#d0c8ff"
	colorBodyFocused = "229"
	colorSun         = "#ffd75f"

	// Star glyphs by magnitude
	glyphStarBright  = '✶'
	glyphStarMedium  = '✸'
	glyphStarDim     = '·'
	glyphStarVeryDim = '·'

	colorStarBright  = "255"
	colorStarMedium  = "250"
	colorStarDim     = "244"
	colorStarVeryDim = "240"
)

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the focused body
	LabelAll                      // All bodies
)

// SkyViewModel renders the sky dome with body positions.
type SkyViewModel struct {
	width  int
	height int

	// Camera position (center of view)
	camAz float64
	camEl float64

	animating   bool
	animStartAz float64
	animStartEl float64
	animTargAz  float64
	animTargEl  float64
	animStart   time.Time

	focusIdx int
	bodies   []almanac.Report
	site     astro.GeoLocation
	at       time.Time

	labelMode LabelMode
	showStars bool

	starCatalog astro.StarCatalog
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		camAz:       180,
		camEl:       45,
		labelMode:   LabelFocused,
		showStars:   true,
		starCatalog: astro.DefaultStarCatalog(),
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new snapshot. Only bodies above the horizon
// take focus.
func (m SkyViewModel) UpdateData(snapshot Snapshot) SkyViewModel {
	var focused ephem.TargetID = -1
	if m.focusIdx < len(m.bodies) {
		focused = m.bodies[m.focusIdx].Target.ID
	}

	m.site = snapshot.Site
	m.at = snapshot.Time
	m.bodies = make([]almanac.Report, 0, len(snapshot.Reports))
	for _, r := range snapshot.Reports {
		if r.Horizontal.Altitude > 0 {
			m.bodies = append(m.bodies, r)
		}
	}

	m.focusIdx = 0
	for i, r := range m.bodies {
		if r.Target.ID == focused {
			m.focusIdx = i
		}
	}

	if !m.animating && len(m.bodies) > 0 {
		h := m.bodies[m.focusIdx].Horizontal
		m.camAz = h.Azimuth
		m.camEl = h.Altitude
	}
	return m
}

// Focus points the camera at a target if it is above the horizon.
func (m SkyViewModel) Focus(id ephem.TargetID) (SkyViewModel, tea.Cmd) {
	for i, r := range m.bodies {
		if r.Target.ID == id {
			m.focusIdx = i
			return m.startAnimation()
		}
	}
	return m, nil
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			return m.focusPrev()
		case "down", "j":
			return m.focusNext()
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "t":
			m.showStars = !m.showStars
		}

	case animTickMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}
	return m, nil
}

func (m SkyViewModel) focusNext() (SkyViewModel, tea.Cmd) {
	if len(m.bodies) == 0 {
		return m, nil
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.bodies)
	return m.startAnimation()
}

func (m SkyViewModel) focusPrev() (SkyViewModel, tea.Cmd) {
	if len(m.bodies) == 0 {
		return m, nil
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.bodies) - 1
	}
	return m.startAnimation()
}

func (m SkyViewModel) startAnimation() (SkyViewModel, tea.Cmd) {
	if m.focusIdx >= len(m.bodies) {
		return m, nil
	}
	h := m.bodies[m.focusIdx].Horizontal
	m.animating = true
	m.animStartAz = m.camAz
	m.animStartEl = m.camEl
	m.animTargAz = h.Azimuth
	m.animTargEl = h.Altitude
	m.animStart = time.Now()
	return m, animTick()
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	t := float64(time.Since(m.animStart)) / float64(animDuration)
	if t >= 1.0 {
		m.animating = false
		m.camAz = m.animTargAz
		m.camEl = m.animTargEl
		return m, nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)
	m.camAz = lerpAngle(m.animStartAz, m.animTargAz, t)
	m.camEl = lerp(m.animStartEl, m.animTargEl, t)
	return m, animTick()
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(m.width, m.height-4))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorBody))

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = dimStyle.Render("Labels: off")
	case LabelFocused:
		labelStr = accentStyle.Render("Labels: focus")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}
	compass := dimStyle.Render(fmt.Sprintf("Az:%.0f° El:%.0f°", m.camAz, m.camEl))
	return fmt.Sprintf("%s | %s | %s | %s", titleStyle.Render("Sky View"), accentStyle.Render(m.site.Name), labelStr, compass)
}

func (m SkyViewModel) renderStatus() string {
	if len(m.bodies) == 0 {
		return "No targets above the horizon"
	}
	if m.focusIdx >= len(m.bodies) {
		return ""
	}
	r := m.bodies[m.focusIdx]
	line := fmt.Sprintf(">>> %s | %s | mag %s | %s",
		r.Target.Name, FormatAltAz(r.Horizontal), FormatMagnitude(r.Observation),
		FormatDistance(r.Target.Kind, r.Position.Delta))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorBodyFocused)).Render(line)
}

// bodyPos tracks a drawn body for label rendering.
type bodyPos struct {
	x, y       int
	name       string
	isFocused  bool
	labelStart int
	labelEnd   int
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := range height {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := range width {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	horizonY := height - 2
	if m.showStars {
		m.drawStars(canvas, colors, width, height)
	}

	for x := range width {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = "60"
	}
	m.drawCardinal(canvas, colors, width, height, "N", 0)
	m.drawCardinal(canvas, colors, width, height, "E", 90)
	m.drawCardinal(canvas, colors, width, height, "S", 180)
	m.drawCardinal(canvas, colors, width, height, "W", 270)

	var positions []bodyPos
	for i, r := range m.bodies {
		x, y, visible := m.projectToScreen(r.Horizontal.Azimuth, r.Horizontal.Altitude, width, height)
		if !visible || x < 0 || x >= width || y < 0 || y >= horizonY {
			continue
		}
		isFocused := i == m.focusIdx
		sym, color := bodyGlyph(r.Target.Kind, isFocused)
		canvas[y][x] = sym
		colors[y][x] = color
		positions = append(positions, bodyPos{x: x, y: y, name: r.Target.Name, isFocused: isFocused})
	}
	m.renderLabels(canvas, colors, width, horizonY, positions)

	// Observer marker
	if stationX := width / 2; height > 0 && stationX < width {
		canvas[height-1][stationX] = '▲'
		colors[height-1][stationX] = "46"
	}

	var b strings.Builder
	for y := range height {
		for x := range width {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// drawStars plots catalog stars above the horizon at the snapshot time.
func (m SkyViewModel) drawStars(canvas [][]rune, colors [][]lipgloss.Color, width, height int) {
	if m.at.IsZero() {
		return
	}
	in, err := timescale.NewInstant(m.at)
	if err != nil {
		return
	}
	horizonY := height - 2
	for _, star := range m.starCatalog.Stars {
		h, err := astro.ToHorizontal(in, m.site, star.Position, astro.FromNorth)
		if err != nil || h.Altitude <= 0 {
			continue
		}
		x, y, visible := m.projectToScreen(h.Azimuth, h.Altitude, width, height)
		if !visible || x < 0 || x >= width || y < 0 || y >= horizonY {
			continue
		}
		canvas[y][x], colors[y][x] = m.starGlyph(star.Magnitude)
	}
}

func bodyGlyph(kind ephem.Kind, focused bool) (rune, lipgloss.Color) {
	switch {
	case kind == ephem.KindSun:
		return glyphSun, colorSun
	case kind == ephem.KindMoon && focused:
		return glyphMoon, colorBodyFocused
	case kind == ephem.KindMoon:
		return glyphMoon, "255"
	case focused:
		return glyphBodyFocused, colorBodyFocused
	default:
		return glyphBody, colorBody
	}
}

// renderLabels draws body labels on the canvas. Focused labels win where
// labels overlap.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width, horizonY int, positions []bodyPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	for i := range positions {
		pos := &positions[i]
		pos.labelStart = pos.x + 2
		labelLen := len([]rune(pos.name))
		if pos.isFocused {
			labelLen += 2
		}
		pos.labelEnd = pos.labelStart + labelLen
	}

	focusedClaims := make(map[int]map[int]bool)
	for _, pos := range positions {
		if !pos.isFocused {
			continue
		}
		if focusedClaims[pos.y] == nil {
			focusedClaims[pos.y] = make(map[int]bool)
		}
		for x := pos.labelStart; x < pos.labelEnd; x++ {
			focusedClaims[pos.y][x] = true
		}
	}

	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}
		labelColor := lipgloss.Color(colorBody)
		labelText := pos.name
		if pos.isFocused {
			labelColor = colorBodyFocused
			labelText = "◄ " + pos.name
		}
		for i, r := range []rune(labelText) {
			x := pos.labelStart + i
			if x < 0 || x >= width || pos.y < 0 || pos.y >= horizonY {
				continue
			}
			if !pos.isFocused && focusedClaims[pos.y][x] {
				continue
			}
			canvas[pos.y][x] = r
			colors[pos.y][x] = labelColor
		}
	}
}

// starGlyph returns the glyph and color for a star of magnitude mag.
func (m SkyViewModel) starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

func (m SkyViewModel) drawCardinal(canvas [][]rune, colors [][]lipgloss.Color, width, height int, label string, az float64) {
	x, _, visible := m.projectToScreen(az, 0, width, height)
	if !visible {
		return
	}
	y := height - 2
	if x >= 0 && x < width && y >= 0 && y < height {
		canvas[y][x] = rune(label[0])
		colors[y][x] = "252"
	}
}

// projectToScreen converts az/el to screen coordinates relative to the
// camera.
func (m SkyViewModel) projectToScreen(az, el float64, width, height int) (int, int, bool) {
	dAz := normalizeAngle(az - m.camAz)
	dEl := el - m.camEl

	if dAz < -fovAz/2 || dAz > fovAz/2 {
		return 0, 0, false
	}
	if dEl < -fovEl/2 || dEl > fovEl/2 {
		return 0, 0, false
	}

	// Higher elevation is higher on screen; the bottom two rows hold the
	// horizon and the observer.
	horizonY := height - 2
	x := int((dAz + fovAz/2) / fovAz * float64(width))
	y := int((fovEl/2 - dEl) / fovEl * float64(horizonY))
	return x, y, true
}

// normalizeAngle wraps a into [-180, 180].
func normalizeAngle(a float64) float64 {
	return math.Remainder(a, 360)
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	return a + normalizeAngle(b-a)*t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
