package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strconv"

	"github.com/nmoreau/visynth/internal/synth"
)

// Camera captures live frames from a capture device through ffmpeg
// (v4l2 on Linux, avfoundation on macOS). Device or permission problems
// surface once, at construction; a dead stream afterwards just stops
// producing frames.
type Camera struct {
	device string
	cmd    *exec.Cmd
	stdout io.ReadCloser
	cancel context.CancelFunc
	buf    []byte
	closed bool
}

// CameraDevice describes one enumerated capture device.
type CameraDevice struct {
	Index int
	Path  string // e.g. /dev/video0 on Linux, "0" on macOS
	Label string
}

// ListCameras enumerates available capture devices. On Linux this walks
// /dev/video*; on macOS indexes are offered blind (avfoundation only
// reports devices by attempting capture).
func ListCameras() []CameraDevice {
	if runtime.GOOS == "darwin" {
		return []CameraDevice{
			{Index: 0, Path: "0", Label: "camera 0"},
			{Index: 1, Path: "1", Label: "camera 1"},
		}
	}

	matches := videoDeviceNodes("/dev")
	sort.Strings(matches)
	devices := make([]CameraDevice, 0, len(matches))
	for i, path := range matches {
		devices = append(devices, CameraDevice{Index: i, Path: path, Label: path})
	}
	return devices
}

// videoDeviceNodes scans dir for videoN entries.
func videoDeviceNodes(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if len(name) > 5 && name[:5] == "video" {
			if _, err := strconv.Atoi(name[5:]); err == nil {
				out = append(out, dir+"/"+name)
			}
		}
	}
	return out
}

// NewCamera opens capture device n.
func NewCamera(n int) (*Camera, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found (required for camera capture)")
	}

	var inputFmt, device string
	switch runtime.GOOS {
	case "darwin":
		inputFmt = "avfoundation"
		device = strconv.Itoa(n)
	default:
		inputFmt = "v4l2"
		device = fmt.Sprintf("/dev/video%d", n)
		if _, err := os.Stat(device); err != nil {
			return nil, fmt.Errorf("camera %s not available: %w", device, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, ffmpeg,
		"-v", "quiet",
		"-f", inputFmt,
		"-i", device,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-vf", fmt.Sprintf("scale=%d:%d,fps=%d", AnalysisWidth, AnalysisHeight, videoFPS),
		"pipe:1",
	)
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("starting camera capture: %w", err)
	}

	return &Camera{
		device: device,
		cmd:    cmd,
		stdout: stdout,
		cancel: cancel,
		buf:    make([]byte, AnalysisWidth*AnalysisHeight*4),
	}, nil
}

// Next reads one frame from the capture pipe.
func (c *Camera) Next() (synth.Frame, bool) {
	if c.closed || c.stdout == nil {
		return synth.Frame{}, false
	}
	if _, err := io.ReadFull(c.stdout, c.buf); err != nil {
		return synth.Frame{}, false
	}
	return synth.Frame{Width: AnalysisWidth, Height: AnalysisHeight, Pixels: c.buf}, true
}

func (c *Camera) Name() string {
	return c.device
}

// Close kills the capture subprocess. Safe to call twice.
func (c *Camera) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	if c.cmd != nil {
		c.cmd.Wait()
	}
	return nil
}
