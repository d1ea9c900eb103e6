package synth

import "math"

// Pulse mode envelope constants: a rising gradient above the threshold
// triggers an instantaneous attack, everything else decays geometrically.
const (
	pulseThreshold  = 0.02
	pulseAttackGain = 5.0
	pulseCeiling    = 0.7
	pulseDecay      = 0.85
)

// bandEdgeMagnitude returns the mean 4-neighbor gradient magnitude over the
// interior pixels of the band rows [y0,y1), excluding a 1-pixel border.
// Degenerate bands produce zero.
func bandEdgeMagnitude(f Frame, y0, y1 int) float64 {
	var sum float64
	count := 0
	for y := y0 + 1; y < y1-1; y++ {
		if y < 1 || y >= f.Height-1 {
			continue
		}
		for x := 1; x < f.Width-1; x++ {
			gx := f.Luminance(x+1, y) - f.Luminance(x-1, y)
			gy := f.Luminance(x, y+1) - f.Luminance(x, y-1)
			sum += math.Sqrt(gx*gx + gy*gy)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// pulseStep runs the onset envelope for oscillator i. A positive first
// difference above the threshold sets (not blends) the amplitude; otherwise
// the envelope releases. Edge memory is updated on every call regardless.
func (e *Engine) pulseStep(i int, mag float64) {
	delta := mag - e.edgePrev[i]
	e.edgePrev[i] = mag

	if delta > pulseThreshold {
		amp := delta * pulseAttackGain
		if amp > pulseCeiling {
			amp = pulseCeiling
		}
		e.smoothed[i] = amp
	} else {
		e.smoothed[i] *= pulseDecay
	}
	e.bank.SetGain(i, e.smoothed[i])
}
