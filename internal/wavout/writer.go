// Package wavout records the synthesizer's mono output to a 16-bit WAV file.
package wavout

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	recordSampleRate = 44100
	recordBitDepth   = 16

	// Blocks queued between the audio goroutine and the disk writer. At a
	// few hundred samples per block this is several seconds of slack.
	queueDepth = 256
)

// Recorder streams float32 sample blocks into a WAV file. Blocks arrive on
// the audio goroutine via Tap and are written to disk on a separate
// goroutine so rendering never waits on I/O.
type Recorder struct {
	path    string
	file    *os.File
	enc     *wav.Encoder
	blocks  chan []int
	done    chan struct{}
	samples atomic.Int64
	dropped atomic.Int64

	mu       sync.RWMutex // guards closed vs. sends on blocks
	closed   bool
	writeErr error
}

// NewRecorder creates path and starts the disk writer.
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}
	r := &Recorder{
		path:   path,
		file:   f,
		enc:    wav.NewEncoder(f, recordSampleRate, recordBitDepth, 1, 1),
		blocks: make(chan []int, queueDepth),
		done:   make(chan struct{}),
	}
	go r.writeLoop()
	return r, nil
}

// Tap returns the block callback to install on the oscillator bank. The
// bank reuses its render buffer, so the block is converted and copied
// before it is queued. A full queue drops the block rather than stalling
// the audio goroutine.
func (r *Recorder) Tap() func([]float32) {
	return func(block []float32) {
		ints := make([]int, len(block))
		for i, s := range block {
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			ints[i] = int(s * 32767)
		}

		r.mu.RLock()
		defer r.mu.RUnlock()
		if r.closed {
			return
		}
		select {
		case r.blocks <- ints:
			r.samples.Add(int64(len(ints)))
		default:
			r.dropped.Add(1)
		}
	}
}

func (r *Recorder) writeLoop() {
	defer close(r.done)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: recordSampleRate},
		SourceBitDepth: recordBitDepth,
	}
	for block := range r.blocks {
		if r.writeErr != nil {
			continue // keep draining so Close never blocks
		}
		buf.Data = block
		if err := r.enc.Write(buf); err != nil {
			r.writeErr = err
		}
	}
}

// Dropped returns how many blocks were discarded because the disk writer
// fell behind.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Samples returns the number of mono samples queued so far.
func (r *Recorder) Samples() int64 {
	return r.samples.Load()
}

// Seconds returns the recorded duration.
func (r *Recorder) Seconds() float64 {
	return float64(r.samples.Load()) / recordSampleRate
}

// Path returns the output file location.
func (r *Recorder) Path() string {
	return r.path
}

// Close drains pending blocks, finalizes the WAV header, and closes the
// file. Safe against late tap calls; detach the bank's tap first anyway.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.blocks)
	r.mu.Unlock()
	<-r.done

	encErr := r.enc.Close()
	fileErr := r.file.Close()
	if r.writeErr != nil {
		return fmt.Errorf("writing recording: %w", r.writeErr)
	}
	if encErr != nil {
		return fmt.Errorf("finalizing recording: %w", encErr)
	}
	return fileErr
}
