package source

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nmoreau/visynth/internal/synth"
)

const (
	plasmaScale       = 0.08
	plasmaSpeed       = 0.4
	plasmaPaletteSize = 256
)

// Plasma generates a classic moving-plasma pattern: a handful of drifting
// sine fields summed and mapped through a precomputed palette. It needs no
// external tools, which also makes it the deterministic input for tests.
type Plasma struct {
	time    float64
	step    float64
	palette [plasmaPaletteSize][3]uint8
	buf     []byte
	closed  bool
}

// NewPlasma creates a plasma source advancing its clock by step seconds per
// frame.
func NewPlasma(step float64) *Plasma {
	if step <= 0 {
		step = 1.0 / 30
	}
	p := &Plasma{
		step: step,
		buf:  make([]byte, AnalysisWidth*AnalysisHeight*4),
	}
	for i := 0; i < plasmaPaletteSize; i++ {
		hue := 360 * float64(i) / plasmaPaletteSize
		c := colorful.Hsv(hue, 0.9, 0.95)
		r, g, b := c.RGB255()
		p.palette[i] = [3]uint8{r, g, b}
	}
	return p
}

// Next renders the pattern at the current clock and advances it.
func (p *Plasma) Next() (synth.Frame, bool) {
	if p.closed {
		return synth.Frame{}, false
	}

	t := p.time
	for py := 0; py < AnalysisHeight; py++ {
		for px := 0; px < AnalysisWidth; px++ {
			v := plasmaValue(float64(px)*plasmaScale, float64(py)*plasmaScale, t)
			idx := int(v * (plasmaPaletteSize - 1))
			col := p.palette[idx]
			off := (py*AnalysisWidth + px) * 4
			p.buf[off] = col[0]
			p.buf[off+1] = col[1]
			p.buf[off+2] = col[2]
			p.buf[off+3] = 255
		}
	}
	p.time += p.step * plasmaSpeed

	return synth.Frame{Width: AnalysisWidth, Height: AnalysisHeight, Pixels: p.buf}, true
}

// plasmaValue combines four moving sine fields into a [0,1] intensity.
func plasmaValue(x, y, t float64) float64 {
	v1 := math.Sin(x*2 + t)
	v2 := math.Sin(y*3 - t*1.3)
	v3 := math.Sin((x+y)*1.5 + t*0.7)

	cx := x - 6 + 3*math.Sin(t*0.5)
	cy := y - 3.5 + 2*math.Cos(t*0.4)
	v4 := math.Sin(math.Sqrt(cx*cx+cy*cy)*2.5 - t)

	combined := (v1 + v2 + v3 + v4) / 4
	return combined*0.5 + 0.5
}

func (p *Plasma) Name() string {
	return "plasma"
}

func (p *Plasma) Close() error {
	p.closed = true
	return nil
}
