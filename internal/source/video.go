package source

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nmoreau/visynth/internal/synth"
)

const videoFPS = 30

// Video decodes a media file through an ffmpeg subprocess that scales each
// frame to analysis resolution and writes raw RGBA to a pipe. One frame is
// read per Next call; when the pipe drains the stream loops from the start.
type Video struct {
	path   string
	loop   bool
	cmd    *exec.Cmd
	stdout io.ReadCloser
	cancel context.CancelFunc
	buf    []byte
	closed bool
}

// NewVideo probes the file and starts decoding. loop restarts the file when
// it ends, which suits an instrument better than going silent.
func NewVideo(path string, loop bool) (*Video, error) {
	probe, err := ProbeMedia(path)
	if err != nil {
		return nil, err
	}
	if !probe.HasVideo {
		return nil, fmt.Errorf("no video stream in %s", path)
	}

	v := &Video{
		path: path,
		loop: loop,
		buf:  make([]byte, AnalysisWidth*AnalysisHeight*4),
	}
	if err := v.startDecode(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Video) startDecode() error {
	v.stopDecode()

	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("ffmpeg not found")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, ffmpeg,
		"-v", "quiet",
		"-i", v.path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-vf", fmt.Sprintf("scale=%d:%d,fps=%d", AnalysisWidth, AnalysisHeight, videoFPS),
		"-an",
		"pipe:1",
	)
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("starting ffmpeg decode: %w", err)
	}

	v.cmd = cmd
	v.stdout = stdout
	v.cancel = cancel
	return nil
}

func (v *Video) stopDecode() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.cmd != nil {
		v.cmd.Wait()
		v.cmd = nil
	}
	v.stdout = nil
}

// Next reads one complete frame from the decode pipe. At end of stream a
// looping source restarts; otherwise ok is false from then on.
func (v *Video) Next() (synth.Frame, bool) {
	if v.closed || v.stdout == nil {
		return synth.Frame{}, false
	}
	if _, err := io.ReadFull(v.stdout, v.buf); err != nil {
		if !v.loop {
			return synth.Frame{}, false
		}
		if err := v.startDecode(); err != nil {
			return synth.Frame{}, false
		}
		if _, err := io.ReadFull(v.stdout, v.buf); err != nil {
			return synth.Frame{}, false
		}
	}
	return synth.Frame{Width: AnalysisWidth, Height: AnalysisHeight, Pixels: v.buf}, true
}

func (v *Video) Name() string {
	base := filepath.Base(v.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Close kills the decode subprocess. Safe to call twice.
func (v *Video) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.stopDecode()
	return nil
}
