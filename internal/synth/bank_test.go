package synth

import (
	"encoding/binary"
	"testing"
)

func readFrames(t *testing.T, b *Bank, frames int) []int16 {
	t.Helper()
	buf := make([]byte, frames*channelCount*bitDepth)
	n, err := b.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read returned %d bytes, want %d", n, len(buf))
	}
	out := make([]int16, frames*channelCount)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	return out
}

func TestBankRendersConfiguredOscillator(t *testing.T) {
	b := NewBank()
	b.Configure([]float64{440})
	b.SetGain(0, 0.5)

	samples := readFrames(t, b, 1024)
	nonzero := false
	for _, s := range samples {
		if s != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Fatal("expected audible output from a gained oscillator")
	}
	// Stereo duplication: left and right are identical.
	for i := 0; i < len(samples); i += 2 {
		if samples[i] != samples[i+1] {
			t.Fatalf("frame %d: L=%d R=%d, want identical channels", i/2, samples[i], samples[i+1])
		}
	}
}

func TestBankSilentAtZeroGain(t *testing.T) {
	b := NewBank()
	b.Configure([]float64{440, 880})

	for _, s := range readFrames(t, b, 512) {
		if s != 0 {
			t.Fatal("expected silence with all gains at zero")
		}
	}
}

func TestBankMasterVolumeScalesOutput(t *testing.T) {
	b := NewBank()
	b.Configure([]float64{440})
	b.SetGain(0, 0.7)
	b.SetMasterVolume(0)

	for _, s := range readFrames(t, b, 512) {
		if s != 0 {
			t.Fatal("expected silence at zero master volume")
		}
	}
}

func TestBankTeardownIsIdempotentAndSilent(t *testing.T) {
	b := NewBank()
	b.Configure([]float64{440})
	b.SetGain(0, 0.7)

	b.Teardown()
	b.Teardown()

	if b.Len() != 0 {
		t.Fatalf("bank still holds %d oscillators after teardown", b.Len())
	}
	for _, s := range readFrames(t, b, 256) {
		if s != 0 {
			t.Fatal("expected silence after teardown")
		}
	}
}

func TestBankWaveformCapture(t *testing.T) {
	b := NewBank()
	b.Configure([]float64{440})
	b.SetGain(0, 0.7)
	readFrames(t, b, WaveformSize)

	wf := make([]float32, WaveformSize)
	b.Waveform(wf)
	nonzero := false
	for _, s := range wf {
		if s != 0 {
			nonzero = true
		}
		if s < -1 || s > 1 {
			t.Fatalf("waveform sample %v outside [-1,1]", s)
		}
	}
	if !nonzero {
		t.Fatal("waveform snapshot is empty after rendering")
	}

	b.ZeroWaveform()
	b.Waveform(wf)
	for _, s := range wf {
		if s != 0 {
			t.Fatal("waveform not cleared")
		}
	}
}

func TestBankRecordTapReceivesBlocks(t *testing.T) {
	b := NewBank()
	b.Configure([]float64{440})
	b.SetGain(0, 0.5)

	var got int
	b.SetTap(func(block []float32) { got += len(block) })
	readFrames(t, b, 300)
	if got != 300 {
		t.Fatalf("tap received %d samples, want 300", got)
	}

	b.SetTap(nil)
	readFrames(t, b, 100)
	if got != 300 {
		t.Fatal("tap still active after detach")
	}
}

func TestCaptureRingKeepsMostRecentSamples(t *testing.T) {
	var c waveCapture
	block := make([]float32, WaveformSize)
	for i := range block {
		block[i] = 1
	}
	c.push(block)
	c.push([]float32{2, 2, 2, 2})

	dst := make([]float32, WaveformSize)
	c.snapshot(dst)
	for i := 0; i < WaveformSize-4; i++ {
		if dst[i] != 1 {
			t.Fatalf("sample %d = %v, want 1", i, dst[i])
		}
	}
	for i := WaveformSize - 4; i < WaveformSize; i++ {
		if dst[i] != 2 {
			t.Fatalf("sample %d = %v, want 2 (newest)", i, dst[i])
		}
	}
}
