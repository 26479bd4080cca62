package canvas

import (
	"bytes"
	"strings"
	"testing"
)

func fillCell(c *Canvas, col, row int, brightness float64, r, g, b uint8) {
	// Fill every sub-pixel of one braille cell
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			c.SetColored(col*2+dx, row*4+dy, brightness, r, g, b)
		}
	}
}

func TestBrailleFullyLitCell(t *testing.T) {
	c := New(1, 1, RenderBraille, ColorMono)
	fillCell(c, 0, 0, 1.0, 255, 255, 255)

	out := string(c.Render())
	if !strings.ContainsRune(out, '⣿') {
		t.Errorf("Expected fully-lit glyph U+28FF in output, got %q", out)
	}
}

func TestBrailleAllDarkCellIsPlainSpace(t *testing.T) {
	c := New(1, 1, RenderBraille, ColorTrueColor)
	fillCell(c, 0, 0, 0.2, 255, 0, 0) // below the 0.3 threshold

	out := c.Render()
	if out[0] != ' ' {
		t.Errorf("Expected leading space for dark cell, got %q", out[0])
	}
	if bytes.Contains(out, []byte("38;")) {
		t.Errorf("Expected no color escape for dark cell, got %q", out)
	}
}

func TestBrailleDotBitMapping(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		glyph  rune
	}{
		{"dot1 top-left", 0, 0, 0x2801},
		{"dot4 top-right", 1, 0, 0x2808},
		{"dot7 bottom-left", 0, 3, 0x2840},
		{"dot8 bottom-right", 1, 3, 0x2880},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1, 1, RenderBraille, ColorMono)
			c.Set(tt.x, tt.y, 1.0)
			out := string(c.Render())
			if !strings.ContainsRune(out, tt.glyph) {
				t.Errorf("Expected glyph %U for pixel (%d,%d), got %q", tt.glyph, tt.x, tt.y, out)
			}
		})
	}
}

func TestBrailleMeanColorOfLitDots(t *testing.T) {
	c := New(1, 1, RenderBraille, ColorTrueColor)
	c.SetColored(0, 0, 1.0, 100, 0, 0)
	c.SetColored(1, 0, 1.0, 200, 0, 0)

	out := string(c.Render())
	if !strings.Contains(out, "38;2;150;0;0m") {
		t.Errorf("Expected mean color 150;0;0, got %q", out)
	}
}

func TestColorEscapeDeduplication(t *testing.T) {
	// Two adjacent cells of identical color emit exactly one escape
	c := New(2, 1, RenderBraille, ColorTrueColor)
	fillCell(c, 0, 0, 1.0, 10, 20, 30)
	fillCell(c, 1, 0, 1.0, 10, 20, 30)

	out := string(c.Render())
	if n := strings.Count(out, "38;2;10;20;30m"); n != 1 {
		t.Errorf("Expected exactly 1 color escape for identical cells, got %d in %q", n, out)
	}
}

func TestASCIIDedupAcrossCells(t *testing.T) {
	c := New(3, 1, RenderASCII, ColorTrueColor)
	for x := 0; x < 3; x++ {
		c.SetColored(x, 0, 1.0, 50, 60, 70)
	}
	out := string(c.Render())
	if n := strings.Count(out, "38;2;50;60;70m"); n != 1 {
		t.Errorf("Expected 1 escape for a run of identical colors, got %d in %q", n, out)
	}
}

func TestHalfBlockDarkCellNoEscape(t *testing.T) {
	c := New(1, 1, RenderHalfBlock, ColorTrueColor)
	c.SetColored(0, 0, 0.02, 255, 255, 255) // at the dark threshold
	c.SetColored(0, 1, 0.0, 255, 255, 255)

	out := c.Render()
	if bytes.Contains(out, []byte("38;")) || bytes.Contains(out, []byte("48;")) {
		t.Errorf("Expected no color escape for dark half-block cell, got %q", out)
	}
	if out[0] != ' ' {
		t.Errorf("Expected space for dark cell, got %q", out[0])
	}
}

func TestHalfBlockFgTopBgBottom(t *testing.T) {
	c := New(1, 1, RenderHalfBlock, ColorTrueColor)
	c.SetColored(0, 0, 1.0, 255, 0, 0) // top pixel
	c.SetColored(0, 1, 1.0, 0, 0, 255) // bottom pixel

	out := string(c.Render())
	if !strings.Contains(out, "38;2;255;0;0") {
		t.Errorf("Expected top pixel as foreground, got %q", out)
	}
	if !strings.Contains(out, "48;2;0;0;255") {
		t.Errorf("Expected bottom pixel as background, got %q", out)
	}
	if !strings.Contains(out, "▀") {
		t.Errorf("Expected upper-half glyph, got %q", out)
	}
}

func TestHalfBlockMonoGlyphs(t *testing.T) {
	tests := []struct {
		name     string
		top, bot float64
		want     string
	}{
		{"both lit", 1.0, 1.0, "█"},
		{"top only", 1.0, 0.0, "▀"},
		{"bottom only", 0.0, 1.0, "▄"},
		{"neither", 0.0, 0.0, " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1, 1, RenderHalfBlock, ColorMono)
			c.Set(0, 0, tt.top)
			c.Set(0, 1, tt.bot)
			out := string(c.Render())
			if !strings.HasPrefix(out, tt.want) {
				t.Errorf("Expected output to start with %q, got %q", tt.want, out)
			}
		})
	}
}

func TestASCIIDensityRamp(t *testing.T) {
	tests := []struct {
		brightness float64
		want       byte
	}{
		{0.0, ' '},
		{1.0, '@'},
		{0.5, '='}, // index 4 of 10-level ramp
	}
	for _, tt := range tests {
		c := New(1, 1, RenderASCII, ColorMono)
		c.Set(0, 0, tt.brightness)
		out := c.Render()
		if out[0] != tt.want {
			t.Errorf("Expected %q for brightness %f, got %q", tt.want, tt.brightness, out[0])
		}
	}
}

func TestASCIIRampClampsOverdrive(t *testing.T) {
	// Effects can push brightness past 1; the ramp must clamp
	c := New(1, 1, RenderASCII, ColorMono)
	c.Set(0, 0, 1.8)
	out := c.Render()
	if out[0] != '@' {
		t.Errorf("Expected brightest ramp char for overdriven pixel, got %q", out[0])
	}
}

func TestASCIICharOverride(t *testing.T) {
	c := New(2, 1, RenderASCII, ColorTrueColor)
	c.SetChar(0, 0, 'Z', 1, 2, 3)

	out := string(c.Render())
	if !strings.Contains(out, "Z") {
		t.Errorf("Expected override char in output, got %q", out)
	}
	if !strings.Contains(out, "38;2;1;2;3") {
		t.Errorf("Expected override color mapped normally, got %q", out)
	}
}

func TestAnsi256UsesColorCube(t *testing.T) {
	c := New(1, 1, RenderASCII, ColorAnsi256)
	c.SetColored(0, 0, 1.0, 255, 0, 0)
	out := string(c.Render())
	// 255,0,0 → cube (5,0,0) → 16 + 180 = 196
	if !strings.Contains(out, "38;5;196m") {
		t.Errorf("Expected palette index 196 for pure red, got %q", out)
	}
}

func TestAnsi16Heuristic(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    int
	}{
		{"dark is black", 10, 10, 10, 30},
		{"bright red", 250, 10, 10, 91},
		{"dim red", 120, 80, 10, 31},
		{"bright green", 10, 250, 10, 92},
		{"dim blue", 10, 20, 120, 34},
		{"bright white", 250, 250, 250, 97},
		{"dim gray", 120, 120, 120, 37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansi16Code(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("Expected SGR %d for (%d,%d,%d), got %d", tt.want, tt.r, tt.g, tt.b, got)
			}
		})
	}
}

func TestColorQuantizationImprovesDedup(t *testing.T) {
	c := New(2, 1, RenderASCII, ColorTrueColor)
	c.ColorQuant = 16
	c.SetColored(0, 0, 1.0, 100, 100, 100)
	c.SetColored(1, 0, 1.0, 98, 103, 97) // rounds to the same quantized color

	out := string(c.Render())
	if n := strings.Count(out, "38;2;"); n != 1 {
		t.Errorf("Expected quantization to merge near-identical colors into 1 escape, got %d in %q", n, out)
	}
}

func TestMonoEmitsNoColorEscapes(t *testing.T) {
	for _, mode := range []RenderMode{RenderBraille, RenderHalfBlock, RenderASCII} {
		c := New(4, 2, mode, ColorMono)
		for y := 0; y < c.Height; y++ {
			for x := 0; x < c.Width; x++ {
				c.SetColored(x, y, 1.0, 200, 100, 50)
			}
		}
		out := c.Render()
		if bytes.Contains(out, []byte("38;")) || bytes.Contains(out, []byte("48;")) {
			t.Errorf("Expected no color escapes in mono %v output", mode)
		}
	}
}

func TestRowsAdvanceWithCursorMoves(t *testing.T) {
	c := New(2, 2, RenderASCII, ColorMono)
	out := string(c.Render())
	if !strings.Contains(out, "\x1b[2;1H") {
		t.Errorf("Expected cursor move to row 2, got %q", out)
	}
	if strings.Contains(out, "\n") {
		t.Errorf("Expected no newlines in raw-mode output, got %q", out)
	}
}
