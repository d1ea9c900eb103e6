package synth

// Engine turns pixel frames into oscillator gains. One instance owns the
// oscillator bank, the per-oscillator smoothing and edge state, and the
// scanline clock. All methods are driven from the single frame goroutine;
// the audio goroutine only ever touches the bank's atomic parameter slots.
type Engine struct {
	state    lifecycle
	out      Output
	bank     *Bank
	applied  Params // configuration the bank was last built for
	smoothed []float64
	edgePrev []float64
	scanPos  float64
}

type lifecycle int

const (
	stateUninitialized lifecycle = iota
	statePlaying
	stateStopped
)

// New returns an engine backed by the real audio device.
func New() *Engine {
	return &Engine{}
}

// newEngineWithOutput is the test seam: same engine, no device.
func newEngineWithOutput(out Output) *Engine {
	return &Engine{out: out}
}

// Initialize acquires the audio device, builds the oscillator bank, and
// starts silent playback. It is the only fallible operation; on failure no
// partial state is retained. Calling it again after success is a no-op.
func (e *Engine) Initialize(p Params) error {
	if e.state != stateUninitialized {
		return nil
	}
	p = p.Clamped()

	out := e.out
	if out == nil {
		real, err := newOtoOutput()
		if err != nil {
			return err
		}
		out = real
	}

	bank := NewBank()
	bank.Configure(allocateFrequencies(p.Oscillators, p.MinFreq, p.MaxFreq))
	bank.SetMasterVolume(p.Volume)
	if err := out.Start(bank); err != nil {
		bank.Teardown()
		return err
	}

	e.out = out
	e.bank = bank
	e.applied = p
	e.rebuildState(p.Oscillators)
	e.state = statePlaying
	return nil
}

// IsPlaying reports whether the engine accepts synthesis calls.
func (e *Engine) IsPlaying() bool {
	return e.state == statePlaying
}

// SetVolume adjusts the master volume (percent, [0,100]).
func (e *Engine) SetVolume(percent float64) {
	if e.state != statePlaying {
		return
	}
	e.bank.SetMasterVolume(percent)
}

// ProcessFrame runs one synthesis tick: it reads the frame under the mode's
// strategy, updates smoothed amplitudes, and writes gains (and for HSV mode,
// frequencies) into the bank. dt is the elapsed time in seconds since the
// previous tick; only the scanline modes consume it.
//
// The returned coordinates are non-nil only for the scanline modes and are
// meant for the overlay renderer. After Stop, or for an empty frame, the
// call is a silent no-op returning nil.
func (e *Engine) ProcessFrame(frame Frame, p Params, dt float64) *ScanlineCoords {
	if e.state != statePlaying {
		return nil
	}
	p = p.Clamped()
	if !p.bankMatches(e.applied) {
		e.reconfigure(p)
	}
	e.bank.SetMasterVolume(p.Volume)
	if frame.Empty() {
		return nil
	}
	return modeTable[p.Mode](e, frame, p, dt)
}

// Reset zeroes all transient synthesis state while keeping sound running:
// scan position, smoothed amplitudes, edge memory, and any per-frame
// frequency perturbation. Valid only while playing.
func (e *Engine) Reset(p Params) {
	if e.state != statePlaying {
		return
	}
	p = p.Clamped()
	if !p.bankMatches(e.applied) {
		e.reconfigure(p)
		return
	}
	e.scanPos = 0
	for i := range e.smoothed {
		e.smoothed[i] = 0
	}
	for i := range e.edgePrev {
		e.edgePrev[i] = 0
	}
	e.bank.ZeroGains()
	e.bank.RestoreFrequencies()
}

// Stop silences and releases the oscillators and the device. Idempotent;
// afterwards every synthesis call is a no-op. A stopped engine cannot be
// restarted: create a new one.
func (e *Engine) Stop() {
	if e.state != statePlaying {
		e.state = stateStopped
		return
	}
	e.state = stateStopped
	e.bank.Teardown()
	e.bank.ZeroWaveform()
	if e.out != nil {
		e.out.Close()
	}
}

// Waveform returns a copy of the current 2048-sample output snapshot,
// values nominally in [-1,1]. After Stop it returns silence.
func (e *Engine) Waveform() []float32 {
	dst := make([]float32, WaveformSize)
	if e.bank != nil {
		e.bank.Waveform(dst)
	}
	return dst
}

// Bank exposes the oscillator bank for the record tap.
func (e *Engine) Bank() *Bank {
	return e.bank
}

// reconfigure rebuilds the bank for a changed oscillator count or frequency
// range. Smoothed amplitudes and edge memory restart from zero.
func (e *Engine) reconfigure(p Params) {
	e.bank.Configure(allocateFrequencies(p.Oscillators, p.MinFreq, p.MaxFreq))
	e.rebuildState(p.Oscillators)
	e.applied = p
}

func (e *Engine) rebuildState(count int) {
	e.smoothed = make([]float64, count)
	e.edgePrev = make([]float64, count)
	e.scanPos = 0
}

// smoothTo feeds a raw target through oscillator i's one-pole low-pass and
// writes the result as the gain. alpha is the retention factor; higher means
// slower response. The clamp keeps a bad statistic from ever leaving [0,1].
func (e *Engine) smoothTo(i int, target, alpha float64) {
	s := e.smoothed[i]*alpha + target*(1-alpha)
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	e.smoothed[i] = s
	e.bank.SetGain(i, s)
}
