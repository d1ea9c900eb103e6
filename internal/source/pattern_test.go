package source

import "testing"

func TestPlasmaProducesFullFrames(t *testing.T) {
	p := NewPlasma(1.0 / 30)
	f, ok := p.Next()
	if !ok {
		t.Fatal("expected a frame")
	}
	if f.Width != AnalysisWidth || f.Height != AnalysisHeight {
		t.Fatalf("frame %dx%d, want %dx%d", f.Width, f.Height, AnalysisWidth, AnalysisHeight)
	}
	if len(f.Pixels) != AnalysisWidth*AnalysisHeight*4 {
		t.Fatalf("pixel buffer %d bytes, want %d", len(f.Pixels), AnalysisWidth*AnalysisHeight*4)
	}
	for i := 3; i < len(f.Pixels); i += 4 {
		if f.Pixels[i] != 255 {
			t.Fatalf("alpha at %d = %d, want 255", i, f.Pixels[i])
		}
	}
}

func TestPlasmaAnimates(t *testing.T) {
	p := NewPlasma(1.0 / 30)
	first, _ := p.Next()
	snapshot := make([]byte, len(first.Pixels))
	copy(snapshot, first.Pixels)

	for i := 0; i < 10; i++ {
		p.Next()
	}
	later, _ := p.Next()

	same := true
	for i := range snapshot {
		if snapshot[i] != later.Pixels[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("pattern did not change over time")
	}
}

func TestPlasmaClosedStopsProducing(t *testing.T) {
	p := NewPlasma(0)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, ok := p.Next(); ok {
		t.Fatal("closed source still produced a frame")
	}
}

func TestPlasmaValueRange(t *testing.T) {
	for tt := 0.0; tt < 10; tt += 0.37 {
		for x := 0.0; x < 13; x += 0.91 {
			for y := 0.0; y < 7; y += 0.53 {
				v := plasmaValue(x, y, tt)
				if v < 0 || v > 1 {
					t.Fatalf("plasmaValue(%v,%v,%v) = %v outside [0,1]", x, y, tt, v)
				}
			}
		}
	}
}
