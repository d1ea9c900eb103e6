package synth

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Per-mode smoothing and target-gain constants. The 0.7 band ceiling is the
// hard amplitude bound shared with the pulse attack.
const (
	alphaBands    = 0.85
	alphaScanline = 0.70

	bandGain      = 0.7
	scanlineGain  = 0.5
	scanColorGain = 0.4
)

// modeFunc runs one mode strategy for a frame. Only the scanline modes
// return coordinates.
type modeFunc func(e *Engine, f Frame, p Params, dt float64) *ScanlineCoords

// modeTable maps each mode to its strategy. Every entry partitions the
// oscillator range over the frame, computes one statistic per region, maps
// it to a target, and feeds the smoother; the variation is the region shape
// and the statistic.
var modeTable = [modeCount]modeFunc{
	ModeAdditive:      updateAdditive,
	ModeSpectral:      updateSpectral,
	ModeScanline:      updateScanline,
	ModeScanlineColor: updateScanlineColor,
	ModeRGBAdditive:   updateRGBAdditive,
	ModeHSV:           updateHSV,
	ModePulse:         updatePulse,
}

// bandRows returns the row range [y0,y1) of horizontal band b out of count.
// Band 0 is the top of the frame.
func bandRows(b, count, height int) (int, int) {
	y0 := b * height / count
	y1 := (b + 1) * height / count
	return y0, y1
}

// bandFor maps oscillator i to its band: the lowest-frequency oscillator
// listens to the bottom of the image.
func bandFor(i, count int) int {
	return count - 1 - i
}

// forEachBand runs stat over oscillator i's band rows and hands the result
// to apply. A zero-area band yields a zero statistic.
func forEachBand(f Frame, count int, stat func(f Frame, y0, y1 int) float64, apply func(i int, v float64)) {
	for i := 0; i < count; i++ {
		y0, y1 := bandRows(bandFor(i, count), count, f.Height)
		v := 0.0
		if y1 > y0 {
			v = stat(f, y0, y1)
		}
		apply(i, v)
	}
}

// meanLuminance averages luminance over the rows [y0,y1).
func meanLuminance(f Frame, y0, y1 int) float64 {
	var sum float64
	n := 0
	for y := y0; y < y1; y++ {
		for x := 0; x < f.Width; x++ {
			sum += f.Luminance(x, y)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// meanChannel averages one color channel (0=R, 1=G, 2=B) over [y0,y1).
func meanChannel(f Frame, ch, y0, y1 int) float64 {
	var sum float64
	n := 0
	for y := y0; y < y1; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.RGB(x, y)
			switch ch {
			case 0:
				sum += float64(r)
			case 1:
				sum += float64(g)
			default:
				sum += float64(b)
			}
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / (float64(n) * 255)
}

// channelThird assigns oscillator i its color channel: the low third of the
// bank reads red, the middle third green, the top third blue.
func channelThird(i, count int) int {
	switch {
	case i < count/3:
		return 0
	case i < 2*count/3:
		return 1
	default:
		return 2
	}
}

func updateAdditive(e *Engine, f Frame, p Params, _ float64) *ScanlineCoords {
	forEachBand(f, p.Oscillators, meanLuminance, func(i int, v float64) {
		e.smoothTo(i, v*bandGain, alphaBands)
	})
	return nil
}

// updateSpectral samples one row per oscillator, treating the row as if it
// were a magnitude-spectrum bin. No transform is performed.
func updateSpectral(e *Engine, f Frame, p Params, _ float64) *ScanlineCoords {
	for i := 0; i < p.Oscillators; i++ {
		y := i * f.Height / p.Oscillators
		v := meanLuminance(f, y, y+1)
		e.smoothTo(i, v*bandGain, alphaBands)
	}
	return nil
}

func updateRGBAdditive(e *Engine, f Frame, p Params, _ float64) *ScanlineCoords {
	count := p.Oscillators
	for i := 0; i < count; i++ {
		y0, y1 := bandRows(bandFor(i, count), count, f.Height)
		v := 0.0
		if y1 > y0 {
			v = meanChannel(f, channelThird(i, count), y0, y1)
		}
		e.smoothTo(i, v*bandGain, alphaBands)
	}
	return nil
}

// updateHSV is the only mode that perturbs frequency per frame: hue bends
// each oscillator up to ±20% around its allocated pitch, while
// saturation×value drives loudness.
func updateHSV(e *Engine, f Frame, p Params, _ float64) *ScanlineCoords {
	count := p.Oscillators
	for i := 0; i < count; i++ {
		y0, y1 := bandRows(bandFor(i, count), count, f.Height)
		h, s, v := meanHSV(f, y0, y1)
		e.smoothTo(i, s*v*bandGain, alphaBands)
		e.bank.SetFrequency(i, e.bank.BaseFrequency(i)*(0.8+h*0.4))
	}
	return nil
}

// meanHSV averages per-pixel hue (in turns), saturation and value over the
// band. Hue is averaged linearly, matching the flat statistics of the other
// modes.
func meanHSV(f Frame, y0, y1 int) (h, s, v float64) {
	n := 0
	for y := y0; y < y1; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.RGB(x, y)
			c := colorful.Color{
				R: float64(r) / 255,
				G: float64(g) / 255,
				B: float64(b) / 255,
			}
			ph, ps, pv := c.Hsv()
			h += ph / 360
			s += ps
			v += pv
			n++
		}
	}
	if n == 0 {
		return 0, 0, 0
	}
	fn := float64(n)
	return h / fn, s / fn, v / fn
}

func updatePulse(e *Engine, f Frame, p Params, _ float64) *ScanlineCoords {
	forEachBand(f, p.Oscillators, bandEdgeMagnitude, func(i int, v float64) {
		e.pulseStep(i, v)
	})
	return nil
}

func updateScanline(e *Engine, f Frame, p Params, dt float64) *ScanlineCoords {
	e.advanceScan(dt, p.Speed)
	line := scanGeometry(p.Angle, e.scanPos, f.Width, f.Height)

	var samples [scanSamples]float64
	sampleLine(f, line, samples[:])

	// Contiguous buckets along the sample array, one per oscillator.
	count := p.Oscillators
	for i := 0; i < count; i++ {
		lo := i * scanSamples / count
		hi := (i + 1) * scanSamples / count
		v := 0.0
		if hi > lo {
			var sum float64
			for k := lo; k < hi; k++ {
				sum += samples[k]
			}
			v = sum / float64(hi-lo)
		}
		e.smoothTo(i, v*scanlineGain, alphaScanline)
	}
	return &line
}

func updateScanlineColor(e *Engine, f Frame, p Params, dt float64) *ScanlineCoords {
	e.advanceScan(dt, p.Speed)
	line := scanGeometry(p.Angle, e.scanPos, f.Width, f.Height)

	r, g, b := sampleLineRGB(f, line)
	means := [3]float64{r, g, b}

	// Bank thirds: red drives the bass, green the mids, blue the treble.
	count := p.Oscillators
	for i := 0; i < count; i++ {
		v := means[channelThird(i, count)]
		e.smoothTo(i, v*scanColorGain, alphaBands)
	}
	return &line
}
