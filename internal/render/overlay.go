package render

import "github.com/nmoreau/visynth/internal/synth"

// DrawScanline copies the frame and draws the sampled line into the copy,
// so the engine's borrowed buffer is never written. The line is drawn white
// with a Bresenham walk, clipped to the frame.
func DrawScanline(f synth.Frame, coords synth.ScanlineCoords) synth.Frame {
	if f.Empty() {
		return f
	}
	pix := make([]byte, len(f.Pixels))
	copy(pix, f.Pixels)
	out := synth.Frame{Width: f.Width, Height: f.Height, Pixels: pix}

	drawLine(out, int(coords.X1), int(coords.Y1), int(coords.X2), int(coords.Y2))
	return out
}

func drawLine(f synth.Frame, x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		setWhite(f, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setWhite(f synth.Frame, x, y int) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	off := (y*f.Width + x) * 4
	f.Pixels[off] = 255
	f.Pixels[off+1] = 255
	f.Pixels[off+2] = 255
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
