package synth

import (
	"math"
	"testing"
)

func TestAdditiveBandOrientation(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeAdditive
	p.Oscillators = 4
	e := testEngine(t, p)

	// Only the bottom quarter of the frame is lit: the lowest-frequency
	// oscillator (index 0) must respond, the rest stay silent.
	f := solidFrame(40, 40, 0, 0, 0)
	paintRows(f, 30, 40, 255, 255, 255)

	for i := 0; i < 20; i++ {
		e.ProcessFrame(f, p, 1.0/30)
	}

	if e.smoothed[0] < 0.5 {
		t.Fatalf("bottom-band oscillator amplitude %v, want near 0.7", e.smoothed[0])
	}
	for i := 1; i < 4; i++ {
		if e.smoothed[i] > 1e-6 {
			t.Fatalf("oscillator %d amplitude %v, want 0", i, e.smoothed[i])
		}
	}
}

func TestSpectralReadsOneRowPerOscillator(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeSpectral
	p.Oscillators = 4
	e := testEngine(t, p)

	// Light only row 0; oscillator 0 samples row 0*h/4 = 0.
	f := solidFrame(16, 16, 0, 0, 0)
	paintRows(f, 0, 1, 255, 255, 255)

	for i := 0; i < 20; i++ {
		e.ProcessFrame(f, p, 1.0/30)
	}

	if e.smoothed[0] < 0.5 {
		t.Fatalf("oscillator 0 amplitude %v, want near 0.7", e.smoothed[0])
	}
	for i := 1; i < 4; i++ {
		if e.smoothed[i] > 1e-6 {
			t.Fatalf("oscillator %d amplitude %v, want 0", i, e.smoothed[i])
		}
	}
}

func TestRGBAdditiveChannelThirds(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeRGBAdditive
	p.Oscillators = 6
	e := testEngine(t, p)

	// A pure green frame only excites the middle third of the bank.
	green := solidFrame(24, 24, 0, 255, 0)
	for i := 0; i < 20; i++ {
		e.ProcessFrame(green, p, 1.0/30)
	}

	for i := 0; i < 6; i++ {
		isGreenThird := i >= 2 && i < 4
		if isGreenThird && e.smoothed[i] < 0.5 {
			t.Fatalf("green-third oscillator %d amplitude %v, want near 0.7", i, e.smoothed[i])
		}
		if !isGreenThird && e.smoothed[i] > 1e-6 {
			t.Fatalf("oscillator %d amplitude %v, want 0", i, e.smoothed[i])
		}
	}
}

func TestHSVFrequencyMapping(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeHSV
	p.Oscillators = 3
	e := testEngine(t, p)

	// Pure cyan: hue 0.5 turns -> frequency factor 0.8 + 0.5*0.4 = 1.0;
	// full saturation and value -> amplitude target 0.7.
	cyan := solidFrame(16, 16, 0, 255, 255)
	for i := 0; i < 30; i++ {
		e.ProcessFrame(cyan, p, 1.0/30)
	}

	for i := 0; i < 3; i++ {
		base := e.bank.BaseFrequency(i)
		if got := e.bank.Frequency(i); math.Abs(got-base) > 1e-9 {
			t.Fatalf("osc %d frequency %v, want base %v for hue 0.5", i, got, base)
		}
		if e.smoothed[i] < 0.5 {
			t.Fatalf("osc %d amplitude %v, want near 0.7", i, e.smoothed[i])
		}
	}

	// Pure red: hue 0 -> factor 0.8.
	red := solidFrame(16, 16, 255, 0, 0)
	e.ProcessFrame(red, p, 1.0/30)
	for i := 0; i < 3; i++ {
		want := e.bank.BaseFrequency(i) * 0.8
		if got := e.bank.Frequency(i); math.Abs(got-want) > 1e-9 {
			t.Fatalf("osc %d frequency %v, want %v for hue 0", i, got, want)
		}
	}
}

func TestScanlineColorThirds(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeScanlineColor
	p.Oscillators = 6
	p.Angle = 0
	e := testEngine(t, p)

	// Pure blue frame: only the treble third responds.
	blue := solidFrame(40, 40, 0, 0, 255)
	for i := 0; i < 30; i++ {
		e.ProcessFrame(blue, p, 1.0/30)
	}

	for i := 0; i < 4; i++ {
		if e.smoothed[i] > 1e-6 {
			t.Fatalf("oscillator %d amplitude %v, want 0", i, e.smoothed[i])
		}
	}
	if e.smoothed[4] == 0 || e.smoothed[5] == 0 {
		t.Fatal("treble oscillators did not respond to blue input")
	}
}

func TestChannelThird(t *testing.T) {
	if got := channelThird(0, 6); got != 0 {
		t.Fatalf("channelThird(0,6) = %d, want 0 (red)", got)
	}
	if got := channelThird(2, 6); got != 1 {
		t.Fatalf("channelThird(2,6) = %d, want 1 (green)", got)
	}
	if got := channelThird(5, 6); got != 2 {
		t.Fatalf("channelThird(5,6) = %d, want 2 (blue)", got)
	}
	// With one oscillator, count/3 == 0, so everything is treble.
	if got := channelThird(0, 1); got != 2 {
		t.Fatalf("channelThird(0,1) = %d, want 2", got)
	}
}

func TestBandRowsPartitionIsDisjointAndComplete(t *testing.T) {
	const count, height = 7, 45
	covered := 0
	prevEnd := 0
	for b := 0; b < count; b++ {
		y0, y1 := bandRows(b, count, height)
		if y0 != prevEnd {
			t.Fatalf("band %d starts at %d, want %d", b, y0, prevEnd)
		}
		covered += y1 - y0
		prevEnd = y1
	}
	if covered != height || prevEnd != height {
		t.Fatalf("bands cover %d rows ending at %d, want %d", covered, prevEnd, height)
	}
}
