package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(recording bool) string {
	s := "m mode  ←/→ angle  ↑/↓ volume  [/] speed  o/O osc  f/F g/G range  r reset"
	if recording {
		s += "  w stop rec"
	} else {
		s += "  w record"
	}
	s += "  1-9 preset  s+1-9 save  q quit"
	return s
}
