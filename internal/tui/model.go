// Package tui renders the starfield in a terminal using Bubble Tea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/starfield/internal/config"
	"github.com/Faultbox/starfield/internal/controls"
	"github.com/Faultbox/starfield/internal/hud"
	"github.com/Faultbox/starfield/internal/logger"
	"github.com/Faultbox/starfield/internal/universe"
)

// maxTickDelta caps the simulation step after a stall, in ticks.
const maxTickDelta = 6

// hudRows is the number of terminal rows reserved below the starfield.
const hudRows = 1

// FrameMsg advances the simulation by one frame.
type FrameMsg time.Time

// Options configures a Model.
type Options struct {
	Starfield config.StarfieldConfig
	Controls  controls.Scheme
	Terminal  config.TerminalConfig

	// Renderer styles the output. Nil uses lipgloss's default renderer.
	Renderer *lipgloss.Renderer

	// Log receives the session's log lines. Nil uses a logger named "tui".
	Log *zap.Logger
}

// OptionsFromConfig builds Options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Starfield: cfg.Starfield,
		Controls:  cfg.Controls,
		Terminal:  cfg.Terminal,
	}
}

// frame holds the per-session state View and Update share.
type frame struct {
	universe *universe.Universe
	keys     *heldKeys
	fps      *hud.FPSMeter
	last     time.Time

	stars []float32
	cells []brightness
	vecs  [universe.CameraVectorsLen]float32
}

type styles struct {
	stars starStyles
	hud   lipgloss.Style
	err   lipgloss.Style
	axes  [3]lipgloss.Style
}

// Model is the Bubble Tea model of one starfield session.
type Model struct {
	opts   Options
	log    *zap.Logger
	frame  *frame
	styles styles

	width  int
	height int
	ready  bool
	err    error
}

// New creates a session. The universe starts at a placeholder size until
// the first tea.WindowSizeMsg arrives.
func New(opts Options) (Model, error) {
	u, err := universe.FromConfig(opts.Starfield, 80, 2*(24-hudRows))
	if err != nil {
		return Model{}, err
	}

	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	log := opts.Log
	if log == nil {
		log = logger.Named("tui")
	}

	st := styles{
		stars: newStarStyles(r),
		hud:   r.NewStyle().Foreground(lipgloss.Color("244")),
		err:   r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
	for i, a := range []hud.Axis{hud.AxisX, hud.AxisY, hud.AxisZ} {
		st.axes[i] = r.NewStyle().Foreground(lipgloss.Color(a.Hex())).Bold(true)
	}

	return Model{
		opts: opts,
		log:  log,
		frame: &frame{
			universe: u,
			keys:     newHeldKeys(opts.Terminal.HoldWindow),
		},
		styles: st,
	}, nil
}

// Universe returns the session universe.
func (m Model) Universe() *universe.Universe {
	return m.frame.universe
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.opts.Terminal.FrameInterval)
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		}
		m.frame.keys.press(keyName(msg), time.Now())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cols, rows := m.gridSize()
		if cols <= 0 || rows <= 0 {
			m.ready = false
			return m, nil
		}
		if err := m.frame.universe.SetSize(cols, 2*rows); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.ready = true
		m.log.Debug("terminal resized", zap.Int("cols", msg.Width), zap.Int("rows", msg.Height))

	case FrameMsg:
		if err := m.step(time.Time(msg)); err != nil {
			m.err = err
			m.log.Error("tick failed", zap.Error(err))
			return m, tea.Quit
		}
		return m, frameCmd(m.opts.Terminal.FrameInterval)
	}

	return m, nil
}

// step advances the simulation to now.
func (m Model) step(now time.Time) error {
	f := m.frame
	if f.last.IsZero() {
		f.last = now
		f.fps = hud.NewFPSMeter(now)
	}
	dt := min(m.opts.Starfield.Delta(now.Sub(f.last)), maxTickDelta)
	f.last = now

	m.opts.Controls.Apply(f.keys.state(controls.TerminalKeys, now), f.universe)
	if err := f.universe.Tick(dt); err != nil {
		return err
	}
	f.fps.Frame(now)
	return nil
}

func (m Model) gridSize() (cols, rows int) {
	return m.width, m.height - hudRows
}

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return m.styles.err.Render("error: "+m.err.Error()) + "\n"
	}
	if !m.ready {
		return ""
	}

	f := m.frame
	cols, rows := m.gridSize()

	f.stars = universe.StarBuffer(f.stars, f.universe.CountStars())
	n, err := f.universe.ProjectStars(f.stars)
	if err != nil {
		return m.styles.err.Render("error: "+err.Error()) + "\n"
	}
	f.cells = rasterize(f.cells, cols, rows, f.stars, n)

	var b strings.Builder
	m.styles.stars.draw(&b, f.cells, cols, rows)
	b.WriteString(m.hudLine(n))
	return b.String()
}

func (m Model) hudLine(visible int) string {
	f := m.frame
	if err := f.universe.CameraVectors(f.vecs[:]); err != nil {
		return m.styles.err.Render(err.Error())
	}

	var compass strings.Builder
	for _, n := range hud.Compass(f.vecs, 1) {
		compass.WriteString(m.styles.axes[n.Axis].Render(axisLabel(n)))
	}

	fps := 0.0
	if f.fps != nil {
		fps = f.fps.FPS()
	}
	cam := f.universe.Camera()
	info := fmt.Sprintf(" %s  speed %.2f  thrust %.0f  stars %d/%d  %.0f fps  esc quits",
		hud.Heading(f.vecs), cam.Speed(), cam.Thrust, visible, f.universe.CountStars(), fps)

	line := compass.String() + m.styles.hud.Render(info)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// axisLabel is the axis letter followed by an arrow showing which way the
// axis points on screen.
func axisLabel(n hud.Needle) string {
	return string("XYZ"[n.Axis]) + string(arrow(n.X, n.Y))
}

var arrows = [...]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// arrow picks the arrow closest to the screen direction (x, y), with y
// pointing down. Short vectors point into or out of the screen.
func arrow(x, y float32) rune {
	if math32.Hypot(x, y) < 0.3 {
		return '•'
	}
	octant := int(math32.Round(math32.Atan2(y, x)/(math32.Pi/4))+8) % 8
	return arrows[octant]
}
