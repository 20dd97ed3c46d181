package viz

import (
	"fmt"
	"image"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vkarel/advlab/internal/engine"
	"github.com/vkarel/advlab/internal/field"
	"github.com/vkarel/advlab/internal/scenario"
	"github.com/vkarel/advlab/internal/scheme"
)

const (
	viewWidth       = 72
	viewHeight      = 18
	historyCapacity = 240
	gifFrameLimit   = 900
)

var schemeLineup = []string{"upwind", "lax-wendroff", "lax-wendroff-limited", "semi-lagrangian"}

var boundaryLineup = []struct {
	name   string
	policy field.Policy
}{
	{"periodic", field.Periodic{}},
	{"clamp", field.Clamp{}},
	{"fixed(0)", field.Fixed{}},
}

type TickMsg time.Time

// Model is the live terminal view of one running scenario: a braille
// profile for 1D fields, a heatmap for 2D, and a movable slice for 3D.
type Model struct {
	scn    *scenario.Scenario
	in     *engine.Integrator
	mod    scenario.Modulator
	canvas *Canvas

	running   bool
	showHelp  bool
	err       error
	speed     float64
	stepAcc   float64
	schemeIx  int
	boundIx   int
	sliceIx   int
	lo, hi    float64
	massHist  []float64
	histCap   int
	history   []field.Field
	histTimes []float64
	playHead  int

	recording bool
	frames    []*image.Paletted
}

// NewModel builds the scenario and prepares the view. The integrator
// starts running; keys take over from there.
func NewModel(scn *scenario.Scenario) (Model, error) {
	in, err := scn.Build()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		scn:      scn,
		in:       in,
		mod:      scn.Flow.Modulate.Modulator(),
		canvas:   NewCanvas(viewWidth, viewHeight),
		running:  true,
		speed:    1,
		playHead: -1,
		histCap:  historyCapacity,
	}
	for i, name := range schemeLineup {
		if base, limited := cutLimited(name); base == scn.Scheme && limited == scn.Limiter {
			m.schemeIx = i
		}
	}
	snap, err := in.Snapshot()
	if err != nil {
		return Model{}, err
	}
	if snap.Data.Grid().Cells() > 1<<14 {
		m.histCap = 48
	}
	m.sliceIx = sliceMid(snap.Data)
	m.lo, m.hi = snap.Data.MinMax()
	if m.hi-m.lo <= 0 {
		m.lo, m.hi = m.lo-1, m.hi+1
	}
	return m, nil
}

func cutLimited(name string) (string, bool) {
	base, ok := strings.CutSuffix(name, "-limited")
	return base, ok
}

func sliceMid(f field.Field) int {
	g := f.Grid()
	if g.Rank() == 3 {
		return g.Dim(2) / 2
	}
	return 0
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and drives the simulation one tick at a time.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.in.Stop()
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				m.playHead = -1
			}
		case "r":
			m.reset()
		case "tab":
			m.cycleScheme()
		case "b":
			m.cycleBoundary()
		case "t":
			NextTheme()
		case "left":
			m.speed = math.Max(0.25, m.speed/2)
		case "right":
			m.speed = math.Min(64, m.speed*2)
		case "up", "k":
			m.adjustCFL(1.05)
		case "down", "j":
			m.adjustCFL(0.95)
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "+", "=":
			m.moveSlice(1)
		case "-", "_":
			m.moveSlice(-1)
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = m.frames[:0]
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.advance()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

// advance steps the integrator according to the speed dial, then records
// the frame for mass history and replay.
func (m *Model) advance() {
	m.stepAcc += m.speed
	for m.stepAcc >= 1 {
		m.stepAcc--
		if m.mod != nil {
			if err := m.in.SetFlowScale(m.mod.Scale(m.in.Clock().Time())); err != nil {
				m.err = err
				m.running = false
				return
			}
		}
		var err error
		if m.scn.Dt > 0 {
			err = m.in.Step(m.scn.Dt)
		} else {
			err = m.in.StepAuto()
		}
		if err != nil {
			m.err = err
			m.running = false
			return
		}
	}

	snap, err := m.in.Snapshot()
	if err != nil {
		return
	}
	m.massHist = append(m.massHist, snap.Data.Sum())
	if len(m.massHist) > 4*historyCapacity {
		m.massHist = m.massHist[1:]
	}
	m.history = append(m.history, snap.Data.Clone())
	m.histTimes = append(m.histTimes, snap.Time)
	if len(m.history) > m.histCap {
		m.history = m.history[1:]
		m.histTimes = m.histTimes[1:]
	}
}

func (m *Model) cycleScheme() {
	m.schemeIx = (m.schemeIx + 1) % len(schemeLineup)
	base, limited := cutLimited(schemeLineup[m.schemeIx])
	sch, err := scheme.New(base, limited)
	if err != nil {
		m.err = err
		return
	}
	if sl, ok := sch.(*scheme.SemiLagrangian); ok {
		sl.Midpoint = m.scn.Midpoint
	}
	if err := m.in.SetScheme(sch); err != nil {
		m.err = err
	}
}

func (m *Model) cycleBoundary() {
	m.boundIx = (m.boundIx + 1) % len(boundaryLineup)
	bc := field.Uniform(boundaryLineup[m.boundIx].policy, len(m.scn.Grid.Dims))
	if err := m.in.SetBoundaries(bc); err != nil {
		m.err = err
	}
}

func (m *Model) adjustCFL(factor float64) {
	if err := m.in.SetCFL(m.in.Config().CFL * factor); err != nil {
		m.err = err
	}
}

func (m *Model) moveSlice(dir int) {
	snap, err := m.in.Snapshot()
	if err != nil || snap.Data.Grid().Rank() != 3 {
		return
	}
	n := snap.Data.Grid().Dim(2)
	m.sliceIx += dir
	if m.sliceIx < 0 {
		m.sliceIx = 0
	}
	if m.sliceIx >= n {
		m.sliceIx = n - 1
	}
}

// scrub pauses live stepping and moves through the replay ring.
func (m *Model) scrub(dir int) {
	if len(m.history) == 0 {
		return
	}
	if m.playHead == -1 {
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset rebuilds the scenario from scratch: initial data, velocity,
// scheme, boundaries and CFL all return to their configured values.
func (m *Model) reset() {
	in, err := m.scn.Build()
	if err != nil {
		m.err = err
		return
	}
	m.in = in
	m.err = nil
	m.massHist = m.massHist[:0]
	m.history = nil
	m.histTimes = nil
	m.playHead = -1
	m.stepAcc = 0
	m.boundIx = 0
	for i, name := range schemeLineup {
		if base, limited := cutLimited(name); base == m.scn.Scheme && limited == m.scn.Limiter {
			m.schemeIx = i
		}
	}
	if snap, err := in.Snapshot(); err == nil {
		m.lo, m.hi = snap.Data.MinMax()
		if m.hi-m.lo <= 0 {
			m.lo, m.hi = m.lo-1, m.hi+1
		}
	}
}

// viewField picks the frame to draw: the replay frame while scrubbing,
// the live buffer otherwise.
func (m *Model) viewField() (field.Field, float64, bool) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead], m.histTimes[m.playHead], true
	}
	snap, err := m.in.Snapshot()
	if err != nil {
		return field.Field{}, 0, false
	}
	return snap.Data, snap.Time, true
}

// peakVelocity reports the largest speed in the active flow.
func (m Model) peakVelocity() float64 {
	snap, err := m.in.Snapshot()
	if err != nil || snap.Velocity == nil {
		return 0
	}
	return snap.Velocity.MaxAbs()
}

// expandScale widens the value scale when the field escapes it. The scale
// never shrinks, so the view does not pump as waves pass.
func (m *Model) expandScale(f field.Field) {
	lo, hi := f.MinMax()
	if lo < m.lo {
		m.lo = lo
	}
	if hi > m.hi {
		m.hi = hi
	}
}

func (m *Model) renderField() string {
	f, _, ok := m.viewField()
	if !ok {
		return ""
	}
	m.expandScale(f)
	switch f.Grid().Rank() {
	case 1:
		m.canvas.Clear()
		m.canvas.PlotSeries(f.Data(), m.lo, m.hi)
		return m.canvas.String()
	case 2:
		return Heatmap(f.Data(), f.Grid().Dim(0), f.Grid().Dim(1), viewWidth, viewHeight, m.lo, m.hi)
	default:
		plane, nu, nv := Plane(f, 2, m.sliceIx)
		return Heatmap(plane, nu, nv, viewWidth, viewHeight, m.lo, m.hi)
	}
}

func (m *Model) captureFrame() {
	if len(m.frames) >= gifFrameLimit {
		m.saveGIF()
		m.recording = false
		m.frames = nil
		return
	}
	f, _, ok := m.viewField()
	if !ok {
		return
	}
	switch f.Grid().Rank() {
	case 1:
		m.canvas.Clear()
		m.canvas.PlotSeries(f.Data(), m.lo, m.hi)
		m.frames = append(m.frames, m.canvas.ToImage(2))
	case 2:
		nu, nv := f.Grid().Dim(0), f.Grid().Dim(1)
		m.frames = append(m.frames, PlaneImage(f.Data(), nu, nv, imgScale(nu), m.lo, m.hi))
	default:
		plane, nu, nv := Plane(f, 2, m.sliceIx)
		m.frames = append(m.frames, PlaneImage(plane, nu, nv, imgScale(nu), m.lo, m.hi))
	}
}

func imgScale(nu int) int {
	s := 256 / nu
	if s < 1 {
		s = 1
	}
	return s
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
	}
	f, err := os.Create(m.scn.Name + ".gif")
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.err = err
	}
}

// View renders the field panel beside the stats panel.
func (m Model) View() string {
	fieldPanel := panelStyle().Render(m.renderField())

	var s strings.Builder
	s.WriteString(titleStyle().Render(strings.ToUpper(m.scn.Name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	clock := m.in.Clock()
	_, t, _ := m.viewField()
	s.WriteString(labelStyle().Render("Time") + valueStyle().Render(fmt.Sprintf("%.3f / %.0f", t, m.scn.Duration)) + "\n")
	s.WriteString(labelStyle().Render("Steps") + valueStyle().Render(fmt.Sprintf("%d (%d sub)", clock.Steps(), clock.SubSteps())) + "\n")
	s.WriteString(labelStyle().Render("Step size") + valueStyle().Render(fmt.Sprintf("%.4g", m.currentDt())) + "\n")
	s.WriteString(labelStyle().Render("CFL") + valueStyle().Render(fmt.Sprintf("%.3f", m.in.Config().CFL)) + "\n")
	s.WriteString(labelStyle().Render("Scheme") + valueStyle().Render(schemeLineup[m.schemeIx]) + "\n")
	s.WriteString(labelStyle().Render("Boundary") + valueStyle().Render(boundaryLineup[m.boundIx].name) + "\n")
	s.WriteString(labelStyle().Render("Flow") + valueStyle().Render(fmt.Sprintf("%.2fx @ %.2g/tick, |v| %.3g", m.in.FlowScale(), m.speed, m.peakVelocity())) + "\n")
	if f, _, ok := m.viewField(); ok {
		lo, hi := f.MinMax()
		s.WriteString(labelStyle().Render("Range") + valueStyle().Render(fmt.Sprintf("[%.3g, %.3g]", lo, hi)) + "\n")
		if f.Grid().Rank() == 3 {
			s.WriteString(labelStyle().Render("Slice z") + valueStyle().Render(fmt.Sprintf("%d", m.sliceIx)) + "\n")
		}
	}
	if len(m.massHist) > 1 {
		s.WriteString("\n" + labelStyle().Render("Mass") + Sparkline(m.massHist, 24) + "\n")
	}
	if m.scn.Duration > 0 {
		s.WriteString("\n" + ProgressBar(math.Min(t/m.scn.Duration, 1), 24) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + statusStyle(true).Render("error: "+m.err.Error()) + "\n")
	}
	s.WriteString(hintStyle().Render("\nSP pause · R reset · TAB scheme · B bounds\n←→ speed · ↑↓ CFL · [ ] replay · T theme\nG gif · ? help · Q quit"))
	statsPanel := panelStyle().Render(s.String())

	main := lipgloss.JoinHorizontal(lipgloss.Top, fieldPanel, " ", statsPanel)
	if m.showHelp {
		return helpOverlay() + "\n" + main
	}
	return main
}

func (m Model) status() string {
	switch {
	case m.recording:
		return statusStyle(true).Render(fmt.Sprintf("● RECORDING (%d frames)", len(m.frames)))
	case m.playHead != -1:
		return statusStyle(false).Render(fmt.Sprintf("REPLAY %d/%d", m.playHead+1, len(m.history)))
	case !m.running:
		return statusStyle(false).Render("PAUSED")
	default:
		return statusStyle(false).Render("RUNNING")
	}
}

func (m Model) currentDt() float64 {
	if m.scn.Dt > 0 {
		return m.scn.Dt
	}
	return m.in.StableDt()
}

func helpOverlay() string {
	return panelStyle().Render(strings.Join([]string{
		titleStyle().Render("KEYS"),
		"Space    pause / resume",
		"R        reset scenario",
		"Tab      cycle scheme",
		"B        cycle boundary policy",
		"Left/Rt  halve / double speed",
		"Up/Down  CFL +5% / -5%",
		"[ ]      replay backward / forward",
		"+ -      move 3D slice",
		"T        cycle theme",
		"G        toggle GIF recording",
		"?        toggle this help",
		"Q        quit",
	}, "\n"))
}

// Run opens the live view and blocks until the user quits.
func Run(scn *scenario.Scenario) error {
	m, err := NewModel(scn)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
