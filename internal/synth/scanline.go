package synth

import "math"

// ScanlineCoords are the sampled line's endpoints in frame pixel space,
// consumed by the overlay renderer only.
type ScanlineCoords struct {
	X1, Y1, X2, Y2 float64
}

// scanSamples is the number of uniform samples taken along the line.
const scanSamples = 256

// advanceScan moves the shared scan position by dt seconds at the given
// speed, wrapping modulo 1. Both scanline modes share the one clock.
func (e *Engine) advanceScan(dt, speed float64) {
	e.scanPos += dt * speed * 0.5
	e.scanPos -= math.Floor(e.scanPos)
}

// scanGeometry computes the sampling line for the current scan position.
// The line runs in the angle direction, displaced along the perpendicular by
// the scan offset, and is extended a full diagonal past the center on both
// sides so it crosses the frame at any angle.
func scanGeometry(angleDeg, pos float64, w, h int) ScanlineCoords {
	theta := angleDeg * math.Pi / 180
	dx, dy := math.Cos(theta), math.Sin(theta)
	diag := math.Hypot(float64(w), float64(h))
	offset := (pos - 0.5) * diag

	cx := float64(w)/2 - dy*offset
	cy := float64(h)/2 + dx*offset

	return ScanlineCoords{
		X1: cx - dx*diag,
		Y1: cy - dy*diag,
		X2: cx + dx*diag,
		Y2: cy + dy*diag,
	}
}

// sampleLine takes scanSamples uniform luminance samples along the segment.
// Samples outside the frame read as zero.
func sampleLine(f Frame, line ScanlineCoords, dst []float64) {
	for k := range dst {
		t := float64(k) / float64(len(dst)-1)
		x := int(line.X1 + (line.X2-line.X1)*t)
		y := int(line.Y1 + (line.Y2-line.Y1)*t)
		dst[k] = f.Luminance(x, y)
	}
}

// sampleLineRGB averages the color channels over the segment's in-bounds
// samples. Out-of-bounds samples contribute zero but stay in the
// denominator, like everywhere else in the sampling rules.
func sampleLineRGB(f Frame, line ScanlineCoords) (r, g, b float64) {
	for k := 0; k < scanSamples; k++ {
		t := float64(k) / float64(scanSamples-1)
		x := int(line.X1 + (line.X2-line.X1)*t)
		y := int(line.Y1 + (line.Y2-line.Y1)*t)
		pr, pg, pb := f.RGB(x, y)
		r += float64(pr)
		g += float64(pg)
		b += float64(pb)
	}
	n := float64(scanSamples) * 255
	return r / n, g / n, b / n
}
