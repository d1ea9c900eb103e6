package synth

import (
	"math"
	"sync/atomic"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes
)

// oscillator is one continuous sine generator. Frequency and gain are atomic
// parameter slots: the frame driver writes them fire-and-forget, the audio
// goroutine reads each slot once per render quantum. The phase accumulator
// belongs to the audio goroutine alone.
type oscillator struct {
	freq     atomic.Uint64 // float64 bits, Hz
	gain     atomic.Uint64 // float64 bits, [0,1]
	baseFreq float64       // allocated frequency, restored on Reset
	phase    float64
}

func newOscillator(hz float64) *oscillator {
	o := &oscillator{baseFreq: hz}
	o.freq.Store(math.Float64bits(hz))
	// Gain starts at zero: the generator runs silent, so the first gain
	// write ramps from nothing instead of clicking.
	o.gain.Store(math.Float64bits(0))
	return o
}

// Bank owns the oscillators and renders their mix. It implements io.Reader
// producing 16-bit LE stereo at 44100 Hz, which is exactly what the audio
// device consumes.
type Bank struct {
	oscs    atomic.Pointer[[]*oscillator]
	master  atomic.Uint64 // float64 bits, [0,1]
	running atomic.Bool
	capture waveCapture
	tap     atomic.Value // func([]float32), optional record tap
	scratch []float32    // mono render block, audio goroutine only
}

// NewBank returns a silent, running bank with no oscillators.
func NewBank() *Bank {
	b := &Bank{}
	empty := make([]*oscillator, 0)
	b.oscs.Store(&empty)
	b.master.Store(math.Float64bits(1))
	b.running.Store(true)
	return b
}

// Configure replaces the generator set with one oscillator per frequency.
// New generators start at zero gain. The audio goroutine picks up the new
// set at its next render quantum; the old one is garbage.
func (b *Bank) Configure(freqs []float64) {
	oscs := make([]*oscillator, len(freqs))
	for i, hz := range freqs {
		oscs[i] = newOscillator(hz)
	}
	b.oscs.Store(&oscs)
}

// Len returns the current oscillator count.
func (b *Bank) Len() int {
	return len(*b.oscs.Load())
}

// SetGain sets oscillator i's gain. Out-of-range indexes are ignored.
func (b *Bank) SetGain(i int, v float64) {
	oscs := *b.oscs.Load()
	if i < 0 || i >= len(oscs) {
		return
	}
	oscs[i].gain.Store(math.Float64bits(v))
}

// Gain returns oscillator i's current gain.
func (b *Bank) Gain(i int) float64 {
	oscs := *b.oscs.Load()
	if i < 0 || i >= len(oscs) {
		return 0
	}
	return math.Float64frombits(oscs[i].gain.Load())
}

// SetFrequency retunes oscillator i.
func (b *Bank) SetFrequency(i int, hz float64) {
	oscs := *b.oscs.Load()
	if i < 0 || i >= len(oscs) {
		return
	}
	oscs[i].freq.Store(math.Float64bits(hz))
}

// Frequency returns oscillator i's current frequency in Hz.
func (b *Bank) Frequency(i int) float64 {
	oscs := *b.oscs.Load()
	if i < 0 || i >= len(oscs) {
		return 0
	}
	return math.Float64frombits(oscs[i].freq.Load())
}

// BaseFrequency returns the frequency oscillator i was allocated with.
func (b *Bank) BaseFrequency(i int) float64 {
	oscs := *b.oscs.Load()
	if i < 0 || i >= len(oscs) {
		return 0
	}
	return oscs[i].baseFreq
}

// RestoreFrequencies retunes every oscillator back to its allocated
// frequency, undoing any per-frame perturbation.
func (b *Bank) RestoreFrequencies() {
	for _, o := range *b.oscs.Load() {
		o.freq.Store(math.Float64bits(o.baseFreq))
	}
}

// ZeroGains silences every oscillator without stopping it.
func (b *Bank) ZeroGains() {
	for _, o := range *b.oscs.Load() {
		o.gain.Store(math.Float64bits(0))
	}
}

// SetMasterVolume scales the mixed output, independent of per-oscillator
// gains. The value is a percent in [0,100].
func (b *Bank) SetMasterVolume(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	b.master.Store(math.Float64bits(percent / 100))
}

// SetTap installs fn as the record tap; it is called from the audio
// goroutine with each rendered mono block. Pass nil to detach.
func (b *Bank) SetTap(fn func([]float32)) {
	b.tap.Store(tapHolder{fn})
}

type tapHolder struct {
	fn func([]float32)
}

// Teardown stops and silences every generator. Safe to call repeatedly.
func (b *Bank) Teardown() {
	b.running.Store(false)
	b.ZeroGains()
	empty := make([]*oscillator, 0)
	b.oscs.Store(&empty)
}

// Waveform copies the capture ring into dst (length WaveformSize),
// oldest sample first.
func (b *Bank) Waveform(dst []float32) {
	b.capture.snapshot(dst)
}

// ZeroWaveform clears the capture ring.
func (b *Bank) ZeroWaveform() {
	b.capture.zero()
}

// Read renders the next block of audio. Parameter slots are sampled once per
// call, so a gain written mid-block lands on the following quantum.
func (b *Bank) Read(p []byte) (int, error) {
	frames := len(p) / (channelCount * bitDepth)
	if frames == 0 {
		return 0, nil
	}

	if cap(b.scratch) < frames {
		b.scratch = make([]float32, frames)
	}
	mix := b.scratch[:frames]
	for i := range mix {
		mix[i] = 0
	}

	if b.running.Load() {
		oscs := *b.oscs.Load()
		master := math.Float64frombits(b.master.Load())
		level := master
		if n := len(oscs); n > 0 {
			level /= float64(n)
		}
		for _, o := range oscs {
			gain := math.Float64frombits(o.gain.Load())
			hz := math.Float64frombits(o.freq.Load())
			inc := 2 * math.Pi * hz / sampleRate
			if gain == 0 {
				// Keep the phase advancing so a later gain write
				// resumes mid-cycle instead of restarting.
				o.phase = math.Mod(o.phase+inc*float64(frames), 2*math.Pi)
				continue
			}
			amp := gain * level
			for i := range mix {
				mix[i] += float32(math.Sin(o.phase) * amp)
				o.phase += inc
				if o.phase >= 2*math.Pi {
					o.phase -= 2 * math.Pi
				}
			}
		}
	}

	b.capture.push(mix)
	if h, ok := b.tap.Load().(tapHolder); ok && h.fn != nil {
		h.fn(mix)
	}

	for i, s := range mix {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		off := i * channelCount * bitDepth
		p[off] = byte(v)
		p[off+1] = byte(v >> 8)
		p[off+2] = byte(v)
		p[off+3] = byte(v >> 8)
	}
	return frames * channelCount * bitDepth, nil
}
