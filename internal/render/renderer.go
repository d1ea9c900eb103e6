// Package render draws RGBA analysis frames into the terminal, packing two
// pixel rows per cell with half-block characters, and overlays the engine's
// active scanline on top.
package render

import (
	"strings"

	"github.com/nmoreau/visynth/internal/synth"
)

// Renderer converts an RGBA frame into a terminal string. It supports two
// modes:
//   - Color (half-block): uses "▀" with fg/bg colors to pack 2 pixel rows
//     per terminal row.
//   - ASCII (no color): maps each pixel to a brightness character.
type Renderer struct {
	mode colorMode
	sb   strings.Builder // reusable builder to reduce allocations
}

// NewRenderer creates a renderer using the current terminal's color
// capabilities.
func NewRenderer() *Renderer {
	return &Renderer{mode: detectColorMode()}
}

// Color reports whether half-block color output is active.
func (r *Renderer) Color() bool {
	return r.mode != colorOff
}

// Render converts the frame into a terminal string of outW x outH cells,
// sampling nearest-neighbor. In color mode each terminal row covers two
// pixel rows.
func (r *Renderer) Render(f synth.Frame, outW, outH int) string {
	if f.Empty() || outW <= 0 || outH <= 0 {
		return ""
	}

	r.sb.Reset()
	// Generous pre-allocation: worst case ~20 bytes per cell (color
	// escapes) plus newlines.
	r.sb.Grow(outW * outH * 24)

	if r.mode == colorOff {
		r.renderASCII(f, outW, outH)
	} else {
		r.renderHalfBlock(f, outW, outH)
	}
	return r.sb.String()
}

// renderHalfBlock uses "▀" (upper half block) with fg = top pixel and
// bg = bottom pixel.
func (r *Renderer) renderHalfBlock(f synth.Frame, outW, outH int) {
	pixelRows := outH * 2

	var lastFg, lastBg string
	for row := 0; row < outH; row++ {
		topPixRow := row * 2
		botPixRow := row*2 + 1

		for col := 0; col < outW; col++ {
			srcX := col * f.Width / outW
			srcY := topPixRow * f.Height / pixelRows
			tr, tg, tb := f.RGB(srcX, srcY)

			botSrcY := botPixRow * f.Height / pixelRows
			br, bg, bb := f.RGB(srcX, botSrcY)

			fg := fgColorSeq(r.mode, tr, tg, tb)
			bgc := bgColorSeq(r.mode, br, bg, bb)
			if fg != lastFg {
				r.sb.WriteString(fg)
				lastFg = fg
			}
			if bgc != lastBg {
				r.sb.WriteString(bgc)
				lastBg = bgc
			}
			r.sb.WriteString("▀")
		}

		r.sb.WriteString(ansiReset)
		lastFg = ""
		lastBg = ""
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

// renderASCII maps each pixel to a brightness character.
func (r *Renderer) renderASCII(f synth.Frame, outW, outH int) {
	for row := 0; row < outH; row++ {
		for col := 0; col < outW; col++ {
			srcX := col * f.Width / outW
			srcY := row * f.Height / outH
			pr, pg, pb := f.RGB(srcX, srcY)
			lum := uint8((299*int(pr) + 587*int(pg) + 114*int(pb)) / 1000)
			r.sb.WriteByte(brightnessChar(lum))
		}
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

// FitCells computes the cell dimensions that keep the frame's aspect ratio
// inside termW x termH. Half-block packing doubles the vertical pixel
// budget; terminal cells are roughly twice as tall as wide.
func FitCells(termW, termH, frameW, frameH int, color bool) (outW, outH int) {
	if termW <= 0 || termH <= 0 || frameW <= 0 || frameH <= 0 {
		return 0, 0
	}

	cellAspect := 2.0 // one ASCII row covers ~2 pixel widths worth of height
	if color {
		cellAspect = 1.0 // half-blocks restore square-ish pixels
	}

	aspectSrc := float64(frameW) / float64(frameH)
	outW = termW
	outH = int(float64(outW) / aspectSrc / cellAspect)
	if outH > termH {
		outH = termH
		outW = int(float64(outH) * aspectSrc * cellAspect)
		if outW > termW {
			outW = termW
		}
	}

	if outW < 4 {
		outW = 4
	}
	if outH < 2 {
		outH = 2
	}
	return outW, outH
}
