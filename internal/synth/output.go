package synth

import (
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Output is the audio device boundary. The engine drives it with the bank's
// sample stream; tests substitute a null implementation so no device is
// required.
type Output interface {
	// Start begins pulling samples from src.
	Start(src io.Reader) error
	// Close stops playback and releases the device player. Idempotent.
	Close() error
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

// initOto creates the process-wide oto context on first use. oto allows only
// one context per process, so every engine instance shares it.
func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// otoOutput plays a sample stream through the shared oto context.
type otoOutput struct {
	player *oto.Player
}

func newOtoOutput() (*otoOutput, error) {
	if _, err := initOto(); err != nil {
		return nil, err
	}
	return &otoOutput{}, nil
}

func (o *otoOutput) Start(src io.Reader) error {
	o.player = globalOtoCtx.NewPlayer(src)
	o.player.Play()
	return nil
}

func (o *otoOutput) Close() error {
	if o.player != nil {
		o.player.Pause()
		err := o.player.Close()
		o.player = nil
		return err
	}
	return nil
}

// nullOutput discards the stream. Used by tests and by headless runs where
// no audio device exists.
type nullOutput struct{}

func (nullOutput) Start(io.Reader) error { return nil }
func (nullOutput) Close() error          { return nil }
