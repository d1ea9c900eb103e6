package synth

// Frame is a borrowed view of one RGBA frame. The engine reads it during a
// single ProcessFrame call and never retains the pixel slice afterwards.
type Frame struct {
	Width  int
	Height int
	Pixels []byte // RGBA, 4 bytes per pixel, row-major, top-to-bottom
}

// Empty reports whether the frame has no usable pixel data.
func (f Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0 || len(f.Pixels) < f.Width*f.Height*4
}

// RGB returns the color channels at (x, y). Out-of-bounds reads return black,
// so scanline samples past the frame edge contribute nothing.
func (f Frame) RGB(x, y int) (uint8, uint8, uint8) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0, 0, 0
	}
	off := (y*f.Width + x) * 4
	return f.Pixels[off], f.Pixels[off+1], f.Pixels[off+2]
}

// Luminance returns the normalized [0,1] brightness at (x, y), using the
// plain channel mean the mapping modes are defined on.
func (f Frame) Luminance(x, y int) float64 {
	r, g, b := f.RGB(x, y)
	return float64(int(r)+int(g)+int(b)) / (3 * 255)
}
