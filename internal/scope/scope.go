// Package scope draws the synthesizer's captured output waveform as a
// terminal oscilloscope trace.
package scope

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nmoreau/visynth/internal/render"
)

// Scope renders a mono sample window as a spring-smoothed trace.
type Scope struct {
	field  springField
	output string
}

// New creates a scope. fps should match the UI tick rate.
func New(fps int) *Scope {
	return &Scope{field: newSpringField(fps, 14.0, 0.8)}
}

// Update consumes a sample window in [-1,1] and renders a width x height
// cell trace. An empty window renders a flat center line.
func (s *Scope) Update(samples []float32, width, height int) {
	if width < 4 || height < 1 {
		s.output = ""
		return
	}

	cols := width
	s.field.resize(cols)

	if len(samples) > 0 {
		spc := float64(len(samples)) / float64(cols)
		for c := 0; c < cols; c++ {
			lo := int(float64(c) * spc)
			hi := int(float64(c+1) * spc)
			if hi > len(samples) {
				hi = len(samples)
			}
			if hi <= lo {
				continue
			}
			var sum float64
			for i := lo; i < hi; i++ {
				sum += float64(samples[i])
			}
			s.field.step(c, sum/float64(hi-lo))
		}
	} else {
		for c := 0; c < cols; c++ {
			s.field.step(c, 0)
		}
	}

	mask := make([][]bool, height)
	for r := range mask {
		mask[r] = make([]bool, cols)
	}

	prev := ampToRow(s.field.pos[0], height)
	for c := 1; c < cols; c++ {
		row := ampToRow(s.field.pos[c], height)
		drawTrace(mask, c-1, prev, c, row)
		prev = row
	}

	mid := height / 2
	color := render.ColorEnabled()

	var out strings.Builder
	for r := 0; r < height; r++ {
		if r > 0 {
			out.WriteByte('\n')
		}
		for c := 0; c < cols; c++ {
			switch {
			case mask[r][c]:
				if color {
					out.WriteString(traceSeq(c))
				}
				out.WriteRune('●')
			case r == mid:
				if color {
					out.WriteString(render.FgSeq(60, 70, 90))
				}
				out.WriteRune('·')
			default:
				out.WriteByte(' ')
			}
		}
		if color {
			out.WriteString(render.Reset)
		}
	}
	s.output = out.String()
}

// View returns the last rendered trace.
func (s *Scope) View() string {
	return s.output
}

// traceSeq colors the trace with a slow hue drift along the x axis.
func traceSeq(c int) string {
	h := 190 + 15*math.Sin(float64(c)*0.22)
	r, g, b := colorful.Hsv(h, 0.7, 0.95).RGB255()
	return render.FgSeq(r, g, b)
}

func ampToRow(amp float64, height int) int {
	if height <= 1 {
		return 0
	}
	if amp < -1 {
		amp = -1
	}
	if amp > 1 {
		amp = 1
	}
	span := height - 1
	row := int(math.Round((1 - (amp+1)/2) * float64(span)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func drawTrace(mask [][]bool, x0, y0, x1, y1 int) {
	maxY := len(mask)
	if maxY == 0 {
		return
	}
	maxX := len(mask[0])

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		if y0 >= 0 && y0 < maxY && x0 >= 0 && x0 < maxX {
			mask[y0][x0] = true
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
