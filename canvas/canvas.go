package canvas

import "strconv"

// RenderMode selects how sub-cell pixels map to terminal characters
type RenderMode uint8

const (
	// RenderBraille packs 2x4 sub-pixels per cell using the braille block
	RenderBraille RenderMode = iota
	// RenderHalfBlock packs 1x2 sub-pixels per cell using ▀ with fg/bg colors
	RenderHalfBlock
	// RenderASCII maps one pixel per cell through a density ramp
	RenderASCII
)

func (m RenderMode) String() string {
	switch m {
	case RenderBraille:
		return "braille"
	case RenderHalfBlock:
		return "half-block"
	case RenderASCII:
		return "ascii"
	}
	return "unknown"
}

// ParseRenderMode maps a mode name to a RenderMode, false if unrecognized
func ParseRenderMode(s string) (RenderMode, bool) {
	switch s {
	case "braille":
		return RenderBraille, true
	case "half-block", "halfblock", "half":
		return RenderHalfBlock, true
	case "ascii":
		return RenderASCII, true
	}
	return RenderBraille, false
}

// PixelSize returns canvas pixel dimensions for a terminal cell grid
func (m RenderMode) PixelSize(cols, rows int) (int, int) {
	switch m {
	case RenderBraille:
		return cols * 2, rows * 4
	case RenderHalfBlock:
		return cols, rows * 2
	default:
		return cols, rows
	}
}

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMono ColorMode = iota
	ColorAnsi16
	ColorAnsi256
	ColorTrueColor
)

func (m ColorMode) String() string {
	switch m {
	case ColorMono:
		return "mono"
	case ColorAnsi16:
		return "ansi16"
	case ColorAnsi256:
		return "ansi256"
	case ColorTrueColor:
		return "true-color"
	}
	return "unknown"
}

// ParseColorMode maps a mode name to a ColorMode, false if
// unrecognized. The bare palette sizes are accepted as the short
// spellings the CLI help advertises.
func ParseColorMode(s string) (ColorMode, bool) {
	switch s {
	case "mono":
		return ColorMono, true
	case "ansi16", "16":
		return ColorAnsi16, true
	case "ansi256", "256":
		return ColorAnsi256, true
	case "true-color", "truecolor", "24bit":
		return ColorTrueColor, true
	}
	return ColorMono, false
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Canvas is a pixel-level brightness/color buffer rendered to terminal
// characters. Coordinates are in sub-cell pixel space; how many pixels map
// to one terminal cell depends on the render mode.
type Canvas struct {
	// Width and Height in sub-cell pixels
	Width  int
	Height int
	// Pixels holds brightness values, nominally 0..1 (effects may exceed 1;
	// backends clamp at the color-mapping boundary)
	Pixels []float64
	// Colors holds per-pixel RGB, parallel to Pixels
	Colors []RGB
	// charOverride replaces the density ramp lookup in ASCII mode when non-zero
	charOverride []rune

	RenderMode RenderMode
	ColorMode  ColorMode
	// ColorQuant rounds RGB to the nearest multiple before mapping
	// (0 = off). Fewer unique colors means better escape dedup.
	ColorQuant uint8
}

// New creates a canvas sized for the given terminal cell grid
func New(cols, rows int, render RenderMode, color ColorMode) *Canvas {
	w, h := render.PixelSize(cols, rows)
	size := w * h
	c := &Canvas{
		Width:        w,
		Height:       h,
		Pixels:       make([]float64, size),
		Colors:       make([]RGB, size),
		charOverride: make([]rune, size),
		RenderMode:   render,
		ColorMode:    color,
	}
	for i := range c.Colors {
		c.Colors[i] = RGB{255, 255, 255}
	}
	return c
}

// Clear resets all pixels to black and removes character overrides
func (c *Canvas) Clear() {
	for i := range c.Pixels {
		c.Pixels[i] = 0
		c.Colors[i] = RGB{255, 255, 255}
		c.charOverride[i] = 0
	}
}

// Set writes a brightness value. Out-of-range coordinates are a no-op.
func (c *Canvas) Set(x, y int, brightness float64) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = brightness
}

// SetColored writes a brightness value with color. Out-of-range coordinates
// are a no-op.
func (c *Canvas) SetColored(x, y int, brightness float64, r, g, b uint8) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	idx := y*c.Width + x
	c.Pixels[idx] = brightness
	c.Colors[idx] = RGB{r, g, b}
}

// SetChar places a literal character at cell coordinates (ASCII mode).
// The character renders as-is with the given color instead of the ramp.
func (c *Canvas) SetChar(x, y int, ch rune, r, g, b uint8) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	idx := y*c.Width + x
	c.charOverride[idx] = ch
	c.Pixels[idx] = 1.0
	c.Colors[idx] = RGB{r, g, b}
}

// TermSize returns the terminal cell grid this canvas renders to
func (c *Canvas) TermSize() (cols, rows int) {
	switch c.RenderMode {
	case RenderBraille:
		return c.Width / 2, c.Height / 4
	case RenderHalfBlock:
		return c.Width, c.Height / 2
	default:
		return c.Width, c.Height
	}
}

// Render converts the canvas into a terminal byte stream for the active
// render backend. The stream positions rows with explicit cursor moves
// rather than newlines, so it is valid in raw mode.
func (c *Canvas) Render() []byte {
	switch c.RenderMode {
	case RenderBraille:
		return renderBraille(c)
	case RenderHalfBlock:
		return renderHalfBlock(c)
	default:
		return renderASCII(c)
	}
}

// appendRowAdvance resets attributes and moves the cursor to the start of
// the next terminal row (1-indexed; frames are written after a home-cursor)
func appendRowAdvance(out []byte, row int) []byte {
	out = append(out, "\x1b[0m\x1b["...)
	out = strconv.AppendInt(out, int64(row+2), 10)
	return append(out, ";1H"...)
}
