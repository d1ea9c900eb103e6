package synth

import "sync/atomic"

// WaveformSize is the fixed length of the time-domain snapshot exposed to
// the UI scope.
const WaveformSize = 2048

// waveCapture is a single-writer ring holding the most recent mixed output.
// The audio goroutine is the only writer; readers copy a snapshot. There is
// no lock: a read that overlaps a write sees at most one stale block, which
// the scope cannot display anyway.
type waveCapture struct {
	buf [WaveformSize]float32
	pos atomic.Int64
}

// push appends one rendered mono block.
func (c *waveCapture) push(block []float32) {
	w := c.pos.Load()
	for _, s := range block {
		c.buf[w%WaveformSize] = s
		w++
	}
	c.pos.Store(w)
}

// snapshot copies the buffer into dst, oldest sample first. dst must be
// WaveformSize long.
func (c *waveCapture) snapshot(dst []float32) {
	w := c.pos.Load()
	start := w % WaveformSize
	for i := range dst {
		dst[i] = c.buf[(start+int64(i))%WaveformSize]
	}
}

// zero clears the ring.
func (c *waveCapture) zero() {
	for i := range c.buf {
		c.buf[i] = 0
	}
	c.pos.Store(0)
}
