package synth

import (
	"math"
	"testing"
)

func TestScanGeometrySpansFrame(t *testing.T) {
	const w, h = 320, 180
	diag := math.Hypot(w, h)
	cx, cy := float64(w)/2, float64(h)/2

	for angle := 0.0; angle < 360; angle += 7.5 {
		for _, pos := range []float64{0, 0.25, 0.5, 0.99} {
			line := scanGeometry(angle, pos, w, h)
			d1 := math.Hypot(line.X1-cx, line.Y1-cy)
			d2 := math.Hypot(line.X2-cx, line.Y2-cy)
			if d1 < diag-1e-9 || d2 < diag-1e-9 {
				t.Fatalf("angle=%v pos=%v: endpoint distances %v, %v below diagonal %v", angle, pos, d1, d2, diag)
			}
		}
	}
}

func TestScanGeometryCenteredAtMidPosition(t *testing.T) {
	// At pos=0.5 the perpendicular offset is zero, so the line passes
	// through the frame center.
	line := scanGeometry(30, 0.5, 100, 100)
	mx := (line.X1 + line.X2) / 2
	my := (line.Y1 + line.Y2) / 2
	if math.Abs(mx-50) > 1e-9 || math.Abs(my-50) > 1e-9 {
		t.Fatalf("midpoint = (%v, %v), want (50, 50)", mx, my)
	}
}

func TestAdvanceScanWraps(t *testing.T) {
	e := &Engine{}
	e.advanceScan(1.5, 2) // 1.5 * 2 * 0.5 = 1.5 -> wraps to 0.5
	if math.Abs(e.scanPos-0.5) > 1e-9 {
		t.Fatalf("scanPos = %v, want 0.5", e.scanPos)
	}
	e.advanceScan(0.2, 1)
	if math.Abs(e.scanPos-0.6) > 1e-9 {
		t.Fatalf("scanPos = %v, want 0.6", e.scanPos)
	}
}

func TestSampleLineOutOfBoundsReadsZero(t *testing.T) {
	f := solidFrame(10, 10, 255, 255, 255)
	// A line far outside the frame samples nothing but zeros.
	line := ScanlineCoords{X1: -100, Y1: -100, X2: -50, Y2: -50}
	var samples [scanSamples]float64
	sampleLine(f, line, samples[:])
	for i, s := range samples {
		if s != 0 {
			t.Fatalf("sample %d = %v, want 0", i, s)
		}
	}
}
