package synth

import (
	"math"
	"testing"
)

func TestPulseAttackAndRelease(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModePulse
	p.Oscillators = 4
	e := testEngine(t, p)

	// Gradient magnitude jumps from 0 to 0.1 in one tick: the attack sets
	// the amplitude to min(0.7, 0.1*5) = 0.5 instantly.
	e.pulseStep(0, 0.1)
	if math.Abs(e.smoothed[0]-0.5) > 1e-12 {
		t.Fatalf("attack amplitude %v, want 0.5", e.smoothed[0])
	}

	// Back to zero gradient: each tick multiplies by exactly 0.85.
	want := 0.5
	for tick := 0; tick < 10; tick++ {
		e.pulseStep(0, 0)
		want *= 0.85
		if math.Abs(e.smoothed[0]-want) > 1e-12 {
			t.Fatalf("tick %d release amplitude %v, want %v", tick, e.smoothed[0], want)
		}
	}
}

func TestPulseAttackIsCapped(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModePulse
	e := testEngine(t, p)

	e.pulseStep(0, 0.9) // 0.9*5 = 4.5, capped at 0.7
	if e.smoothed[0] != 0.7 {
		t.Fatalf("amplitude %v, want cap 0.7", e.smoothed[0])
	}
}

func TestPulseEdgeMemoryAlwaysUpdates(t *testing.T) {
	p := DefaultParams()
	e := testEngine(t, p)

	// Sub-threshold rise must still record the magnitude, so a later
	// equal magnitude produces no attack.
	e.pulseStep(0, 0.01)
	if e.edgePrev[0] != 0.01 {
		t.Fatalf("edge memory %v, want 0.01", e.edgePrev[0])
	}
	e.pulseStep(0, 0.01)
	if e.smoothed[0] != 0 {
		t.Fatalf("amplitude %v after flat gradient, want 0", e.smoothed[0])
	}
}

func TestBandEdgeMagnitudeFlatFieldIsZero(t *testing.T) {
	f := solidFrame(20, 20, 128, 128, 128)
	if mag := bandEdgeMagnitude(f, 0, 20); mag != 0 {
		t.Fatalf("flat field magnitude %v, want 0", mag)
	}
}

func TestBandEdgeMagnitudeDetectsEdge(t *testing.T) {
	// Vertical split: left half black, right half white.
	f := solidFrame(20, 20, 0, 0, 0)
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			off := (y*20 + x) * 4
			f.Pixels[off] = 255
			f.Pixels[off+1] = 255
			f.Pixels[off+2] = 255
		}
	}
	if mag := bandEdgeMagnitude(f, 0, 20); mag <= 0 {
		t.Fatalf("edge magnitude %v, want > 0", mag)
	}
}

func TestBandEdgeMagnitudeDegenerateBandIsZero(t *testing.T) {
	f := solidFrame(20, 20, 255, 255, 255)
	if mag := bandEdgeMagnitude(f, 5, 6); mag != 0 {
		t.Fatalf("1-row band magnitude %v, want 0", mag)
	}
	if mag := bandEdgeMagnitude(Frame{}, 0, 0); mag != 0 {
		t.Fatalf("empty frame magnitude %v, want 0", mag)
	}
}
