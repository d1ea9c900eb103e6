package synth

import (
	"math"
	"testing"
)

func TestAllocateFrequenciesLogSpacing(t *testing.T) {
	for _, count := range []int{2, 3, 16, 64} {
		freqs := allocateFrequencies(count, 80, 2000)
		if len(freqs) != count {
			t.Fatalf("count=%d: got %d frequencies", count, len(freqs))
		}
		if math.Abs(freqs[0]-80) > 1e-9 {
			t.Fatalf("count=%d: f_0 = %v, want 80", count, freqs[0])
		}
		if math.Abs(freqs[count-1]-2000) > 1e-6 {
			t.Fatalf("count=%d: f_last = %v, want 2000", count, freqs[count-1])
		}

		step := math.Log(freqs[1]) - math.Log(freqs[0])
		for i := 1; i < count; i++ {
			if freqs[i] <= freqs[i-1] {
				t.Fatalf("count=%d: not strictly increasing at %d: %v <= %v", count, i, freqs[i], freqs[i-1])
			}
			got := math.Log(freqs[i]) - math.Log(freqs[i-1])
			if math.Abs(got-step) > 1e-9 {
				t.Fatalf("count=%d: log step at %d = %v, want %v", count, i, got, step)
			}
		}
	}
}

func TestAllocateFrequenciesSingle(t *testing.T) {
	freqs := allocateFrequencies(1, 123, 456)
	if len(freqs) != 1 || freqs[0] != 123 {
		t.Fatalf("got %v, want [123]", freqs)
	}
}

func TestAllocateFrequenciesZeroCount(t *testing.T) {
	if freqs := allocateFrequencies(0, 80, 2000); freqs != nil {
		t.Fatalf("got %v, want nil", freqs)
	}
}
