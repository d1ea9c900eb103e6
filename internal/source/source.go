// Package source produces the RGBA frames the synthesis engine consumes.
// Frames come from a video file, a camera, or the built-in pattern
// generator; all three deliver small analysis-resolution buffers at the UI
// tick cadence.
package source

import "github.com/nmoreau/visynth/internal/synth"

// Analysis resolution. Frames are scaled down this far before synthesis;
// the mapping modes work on band statistics, so more pixels only cost time.
const (
	AnalysisWidth  = 160
	AnalysisHeight = 90
)

// Source yields one frame per tick.
type Source interface {
	// Next returns the current frame. ok is false when no frame is
	// available this tick (stream ended or device gone); that is "nothing
	// to do", not an error.
	Next() (frame synth.Frame, ok bool)
	// Name identifies the source in the UI.
	Name() string
	// Close releases any subprocess or device.
	Close() error
}
