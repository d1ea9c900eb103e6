package wavout

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestRecordRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	r, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	tap := r.Tap()
	block := make([]float32, 512)
	for i := range block {
		block[i] = float32(math.Sin(2 * math.Pi * float64(i) / 64))
	}
	tap(block)
	tap(block)

	if r.Samples() != 1024 {
		t.Fatalf("Samples = %d, want 1024", r.Samples())
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recording: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decoding recording: %v", err)
	}
	if got := dec.SampleRate; got != recordSampleRate {
		t.Fatalf("sample rate = %d, want %d", got, recordSampleRate)
	}
	if buf.Format.NumChannels != 1 {
		t.Fatalf("channels = %d, want 1", buf.Format.NumChannels)
	}
	if len(buf.Data) != 1024 {
		t.Fatalf("decoded %d samples, want 1024", len(buf.Data))
	}

	// The decoded sine must match what was fed in, within int16 rounding.
	for i := 0; i < 64; i++ {
		want := int(block[i] * 32767)
		if d := buf.Data[i] - want; d < -1 || d > 1 {
			t.Fatalf("sample %d = %d, want %d", i, buf.Data[i], want)
		}
	}
}

func TestTapClampsOutOfRangeSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hot.wav")
	r, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	r.Tap()([]float32{4, -4})
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recording: %v", err)
	}
	defer f.Close()
	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(buf.Data) != 2 || buf.Data[0] != 32767 || buf.Data[1] != -32767 {
		t.Fatalf("clamp failed, got %v", buf.Data)
	}
}

func TestCloseIsIdempotentAndStopsTap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	r, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	tap := r.Tap()
	tap(make([]float32, 16))

	if err := r.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	// A tap call after Close must be a silent no-op.
	tap(make([]float32, 16))
	if r.Samples() != 16 {
		t.Fatalf("tap after Close was recorded, Samples = %d", r.Samples())
	}
}
