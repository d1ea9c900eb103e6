// Package ui is the Bubbletea front end: it ticks the frame source through
// the synthesis engine, draws the video pane with the scanline overlay, and
// exposes every synthesis parameter on the keyboard.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nmoreau/visynth/internal/preset"
	"github.com/nmoreau/visynth/internal/render"
	"github.com/nmoreau/visynth/internal/scope"
	"github.com/nmoreau/visynth/internal/source"
	"github.com/nmoreau/visynth/internal/synth"
	"github.com/nmoreau/visynth/internal/util"
	"github.com/nmoreau/visynth/internal/wavout"
)

const (
	scopeHeight = 6
	statusTTL   = 4 * time.Second
)

// Model is the Bubbletea model for the visynth TUI.
type Model struct {
	engine   *synth.Engine
	src      source.Source
	renderer *render.Renderer
	trace    *scope.Scope
	presets  *preset.Store
	volBar   progress.Model

	params synth.Params
	frame  synth.Frame
	coords *synth.ScanlineCoords

	rec *wavout.Recorder

	width    int
	height   int
	lastTick time.Time
	quitting bool

	pendingSave bool
	statusMsg   string
	statusTime  time.Time
}

// New wires the engine, frame source, and preset store into a model. The
// engine must already be initialized.
func New(engine *synth.Engine, src source.Source, presets *preset.Store, params synth.Params) Model {
	return Model{
		engine:   engine,
		src:      src,
		renderer: render.NewRenderer(),
		trace:    scope.New(30),
		presets:  presets,
		volBar:   newVolumeBar(30),
		params:   params.Clamped(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.SetWindowTitle("visynth — "+m.src.Name()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		now := time.Time(msg)
		dt := tickRate.Seconds()
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick).Seconds()
		}
		m.lastTick = now

		if frame, ok := m.src.Next(); ok {
			m.frame = frame
			m.coords = m.engine.ProcessFrame(frame, m.params, dt)
		}
		m.trace.Update(m.engine.Waveform(), m.scopeWidth(), scopeHeight)

		if m.statusMsg != "" && time.Since(m.statusTime) > statusTTL {
			m.statusMsg = ""
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		return m.shutdown()
	}

	key := msg.String()

	if m.pendingSave {
		m.pendingSave = false
		if n := digitKey(key); n > 0 {
			if err := m.presets.Save(n, m.params); err != nil {
				m.setStatus(fmt.Sprintf("save failed: %v", err))
			} else {
				m.setStatus(fmt.Sprintf("saved preset %d", n))
			}
		} else {
			m.setStatus("save cancelled")
		}
		return m, nil
	}

	switch key {
	case "m":
		m.params.Mode = m.params.Mode.Next()
	case "M":
		m.params.Mode = m.params.Mode.Prev()
	case "left":
		m.params.Angle -= 5
		m.params = m.params.Clamped()
	case "right":
		m.params.Angle += 5
		m.params = m.params.Clamped()
	case "up":
		m.params.Volume += 5
		m.params = m.params.Clamped()
		m.engine.SetVolume(m.params.Volume)
	case "down":
		m.params.Volume -= 5
		m.params = m.params.Clamped()
		m.engine.SetVolume(m.params.Volume)
	case "[":
		m.params.Speed -= 0.25
		if m.params.Speed < 0.25 {
			m.params.Speed = 0.25
		}
	case "]":
		m.params.Speed += 0.25
		if m.params.Speed > 4 {
			m.params.Speed = 4
		}
	case "o":
		if m.params.Oscillators > 1 {
			m.params.Oscillators--
		}
	case "O":
		if m.params.Oscillators < 64 {
			m.params.Oscillators++
		}
	case "f":
		m.params.MinFreq = clampFreq(m.params.MinFreq-10, 20, m.params.MaxFreq-10)
	case "F":
		m.params.MinFreq = clampFreq(m.params.MinFreq+10, 20, m.params.MaxFreq-10)
	case "g":
		m.params.MaxFreq = clampFreq(m.params.MaxFreq-50, m.params.MinFreq+10, 12000)
	case "G":
		m.params.MaxFreq = clampFreq(m.params.MaxFreq+50, m.params.MinFreq+10, 12000)
	case "r":
		m.engine.Reset(m.params)
		m.setStatus("reset")
	case "w":
		return m.toggleRecord()
	case "s":
		m.pendingSave = true
		m.setStatus("press 1-9 to save preset")
	default:
		if n := digitKey(key); n > 0 {
			if p, ok := m.presets.Load(n); ok {
				m.params = p
				m.engine.SetVolume(p.Volume)
				m.setStatus(fmt.Sprintf("loaded preset %d", n))
			} else {
				m.setStatus(fmt.Sprintf("preset %d is empty", n))
			}
		}
	}
	return m, nil
}

func (m Model) toggleRecord() (tea.Model, tea.Cmd) {
	if m.rec != nil {
		m.engine.Bank().SetTap(nil)
		secs := m.rec.Seconds()
		path := m.rec.Path()
		if err := m.rec.Close(); err != nil {
			m.setStatus(fmt.Sprintf("recording failed: %v", err))
		} else {
			m.setStatus(fmt.Sprintf("saved %.1fs to %s", secs, path))
		}
		m.rec = nil
		return m, nil
	}

	name := fmt.Sprintf("visynth-%s.wav", time.Now().Format("20060102-150405"))
	rec, err := wavout.NewRecorder(name)
	if err != nil {
		m.setStatus(fmt.Sprintf("record failed: %v", err))
		return m, nil
	}
	m.rec = rec
	m.engine.Bank().SetTap(rec.Tap())
	m.setStatus("recording " + name)
	return m, nil
}

func (m Model) shutdown() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.rec != nil {
		m.engine.Bank().SetTap(nil)
		m.rec.Close()
		m.rec = nil
	}
	m.engine.Stop()
	m.src.Close()
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTime = time.Now()
}

func (m Model) scopeWidth() int {
	w := m.width - 4
	if w < 8 {
		w = 40
	}
	return w
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 40 {
		w = 80
	}
	h := m.height
	if h < 16 {
		h = 24
	}

	header := headerStyle.Render("visynth") + "  " + sourceStyle.Render(m.src.Name())

	// Rows left for video after header, scope, params, status, and help.
	videoRows := h - scopeHeight - 8
	if videoRows < 4 {
		videoRows = 4
	}

	video := ""
	if !m.frame.Empty() {
		frame := m.frame
		if m.coords != nil {
			frame = render.DrawScanline(frame, *m.coords)
		}
		outW, outH := render.FitCells(w-2, videoRows, frame.Width, frame.Height, m.renderer.Color())
		video = m.renderer.Render(frame, outW, outH)
	}

	volume := labelStyle.Render("vol") + " " + m.volBar.ViewAs(m.params.Volume/100)

	status := ""
	if m.rec != nil {
		elapsed := time.Duration(m.rec.Seconds() * float64(time.Second))
		status = recordStyle.Render("● REC " + util.FormatDuration(elapsed))
	}
	if m.statusMsg != "" {
		if status != "" {
			status += "  "
		}
		status += statusStyle.Render(m.statusMsg)
	}

	s := "\n  " + header + "\n\n"
	if video != "" {
		s += indent(video) + "\n"
	}
	s += indent(m.trace.View()) + "\n\n"
	s += "  " + paramLine(m.params) + "\n"
	s += "  " + volume + "\n"
	if status != "" {
		s += "  " + status + "\n"
	}
	s += "\n  " + helpStyle.Render(helpText(m.rec != nil)) + "\n"
	return s
}

func digitKey(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '0')
	}
	return 0
}

func clampFreq(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func indent(block string) string {
	if block == "" {
		return ""
	}
	return "  " + strings.ReplaceAll(block, "\n", "\n  ")
}
