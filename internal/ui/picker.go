package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nmoreau/visynth/internal/source"
)

// SourceKind identifies what the picker selected.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceVideo
	SourceCamera
	SourcePattern
)

// PickerResult holds the outcome of the source picker screen.
type PickerResult struct {
	Kind        SourceKind
	Path        string // video file path
	CameraIndex int
	Cancelled   bool
}

type cameraItem struct {
	dev source.CameraDevice
}

func (i cameraItem) Title() string       { return i.dev.Label }
func (i cameraItem) Description() string { return i.dev.Path }
func (i cameraItem) FilterValue() string { return i.dev.Label }

type patternItem struct{}

func (i patternItem) Title() string       { return "Plasma pattern" }
func (i patternItem) Description() string { return "animated test signal, no camera needed" }
func (i patternItem) FilterValue() string { return "plasma pattern" }

type fileItem struct{}

func (i fileItem) Title() string       { return "Open video file..." }
func (i fileItem) Description() string { return "enter a path to play through the synth" }
func (i fileItem) FilterValue() string { return "file" }

// PickerModel is the Bubbletea model for the source picker screen.
type PickerModel struct {
	list     list.Model
	input    textinput.Model
	fileMode bool
	result   *PickerResult
}

// NewPicker lists the attached cameras plus the pattern and file entries.
func NewPicker(cameras []source.CameraDevice) PickerModel {
	items := []list.Item{patternItem{}}
	for _, dev := range cameras {
		items = append(items, cameraItem{dev: dev})
	}
	items = append(items, fileItem{})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "visynth — choose a source"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "path/to/video.mp4"
	ti.CharLimit = 2048
	ti.Width = 60

	return PickerModel{list: l, input: ti}
}

// Result returns the picker outcome after the program finishes.
func (m PickerModel) Result() PickerResult {
	if m.result != nil {
		return *m.result
	}
	return PickerResult{Cancelled: true}
}

func (m PickerModel) Init() tea.Cmd {
	return tea.SetWindowTitle("visynth")
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.fileMode {
		return m.updateFileInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys while the list filter is active.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case patternItem:
				m.result = &PickerResult{Kind: SourcePattern}
				return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
			case cameraItem:
				m.result = &PickerResult{Kind: SourceCamera, CameraIndex: item.dev.Index}
				return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
			case fileItem:
				m.fileMode = true
				m.input.Focus()
				return m, tea.Batch(textinput.Blink, tea.SetWindowTitle("visynth — enter path"))
			}
		case "q", "esc", "ctrl+c":
			m.result = &PickerResult{Cancelled: true}
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) updateFileInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path != "" {
				m.result = &PickerResult{Kind: SourceVideo, Path: path}
				return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
			}
		case "esc":
			m.fileMode = false
			m.input.Reset()
			m.input.Blur()
			return m, tea.SetWindowTitle("visynth")
		case "ctrl+c":
			m.result = &PickerResult{Cancelled: true}
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	if m.fileMode {
		s := "\n"
		s += "  " + headerStyle.Render("visynth") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Video file path:") + "\n"
		s += "  " + m.input.View() + "\n"
		s += "\n"
		s += "  " + helpStyle.Render("enter confirm  esc back  ctrl+c quit") + "\n"
		return s
	}
	return m.list.View()
}
