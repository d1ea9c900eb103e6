package synth

// Mode selects how pixel data is mapped onto the oscillator bank.
type Mode int

const (
	ModeAdditive Mode = iota
	ModeSpectral
	ModeScanline
	ModeScanlineColor
	ModeRGBAdditive
	ModeHSV
	ModePulse

	modeCount
)

var modeNames = [...]string{
	"additive",
	"spectral",
	"scanline",
	"scanline-color",
	"rgb-additive",
	"hsv",
	"pulse",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Next cycles to the following mode, wrapping around.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// Prev cycles to the preceding mode, wrapping around.
func (m Mode) Prev() Mode {
	return (m + modeCount - 1) % modeCount
}

// Params holds the per-frame synthesis configuration. A Params value is
// immutable once handed to the engine; callers replace it wholesale when the
// user edits a control.
type Params struct {
	Mode        Mode
	Angle       float64 // scanline angle in degrees [0,360)
	Speed       float64 // scanline speed multiplier, > 0
	Volume      float64 // master volume percent [0,100]
	Oscillators int     // oscillator count, >= 1
	MinFreq     float64 // Hz, > 0
	MaxFreq     float64 // Hz, > MinFreq
}

// DefaultParams returns a playable starting configuration.
func DefaultParams() Params {
	return Params{
		Mode:        ModeAdditive,
		Angle:       0,
		Speed:       1.0,
		Volume:      70,
		Oscillators: 16,
		MinFreq:     80,
		MaxFreq:     2000,
	}
}

// Clamped returns a copy with every field forced into its valid range.
// Malformed ranges are a caller contract violation; the engine clamps rather
// than erroring so a bad preset degrades instead of failing a tick.
func (p Params) Clamped() Params {
	if p.Mode < 0 || p.Mode >= modeCount {
		p.Mode = ModeAdditive
	}
	for p.Angle < 0 {
		p.Angle += 360
	}
	for p.Angle >= 360 {
		p.Angle -= 360
	}
	if p.Speed <= 0 {
		p.Speed = 1.0
	}
	if p.Volume < 0 {
		p.Volume = 0
	}
	if p.Volume > 100 {
		p.Volume = 100
	}
	if p.Oscillators < 1 {
		p.Oscillators = 1
	}
	if p.MinFreq <= 0 {
		p.MinFreq = 1
	}
	if p.MaxFreq <= p.MinFreq {
		p.MaxFreq = p.MinFreq + 1
	}
	return p
}

// bankMatches reports whether the oscillator bank built for prev still matches
// this configuration.
func (p Params) bankMatches(prev Params) bool {
	return p.Oscillators == prev.Oscillators &&
		p.MinFreq == prev.MinFreq &&
		p.MaxFreq == prev.MaxFreq
}
