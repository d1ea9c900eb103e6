package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/nmoreau/visynth/internal/synth"
)

func newVolumeBar(width int) progress.Model {
	return progress.New(
		progress.WithGradient("#5A56E0", "#EE6FF8"),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
}

// paramLine formats the synthesis parameters for the readout row.
func paramLine(p synth.Params) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		labelStyle.Render("mode")+" "+paramStyle.Render(p.Mode.String()),
		labelStyle.Render("angle")+" "+paramStyle.Render(fmt.Sprintf("%.0f°", p.Angle)),
		labelStyle.Render("speed")+" "+paramStyle.Render(fmt.Sprintf("%.2fx", p.Speed)),
		labelStyle.Render("osc")+" "+paramStyle.Render(fmt.Sprintf("%d", p.Oscillators)),
		labelStyle.Render("range")+" "+paramStyle.Render(fmt.Sprintf("%.0f-%.0f Hz", p.MinFreq, p.MaxFreq)),
	)
}
