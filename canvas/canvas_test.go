package canvas

import (
	"bytes"
	"testing"
)

func TestPixelDimensions(t *testing.T) {
	tests := []struct {
		name       string
		mode       RenderMode
		cols, rows int
		wantW      int
		wantH      int
	}{
		{"HalfBlock 80x24", RenderHalfBlock, 80, 24, 80, 48},
		{"Braille 80x24", RenderBraille, 80, 24, 160, 96},
		{"ASCII 80x24", RenderASCII, 80, 24, 80, 24},
		{"Braille 1x1", RenderBraille, 1, 1, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.cols, tt.rows, tt.mode, ColorTrueColor)
			if c.Width != tt.wantW || c.Height != tt.wantH {
				t.Errorf("Expected %dx%d pixels, got %dx%d", tt.wantW, tt.wantH, c.Width, c.Height)
			}
			if len(c.Pixels) != tt.wantW*tt.wantH {
				t.Errorf("Expected %d pixels, got %d", tt.wantW*tt.wantH, len(c.Pixels))
			}
			if len(c.Colors) != len(c.Pixels) {
				t.Errorf("Expected color array length %d, got %d", len(c.Pixels), len(c.Colors))
			}
			gotCols, gotRows := c.TermSize()
			if gotCols != tt.cols || gotRows != tt.rows {
				t.Errorf("Expected term size %dx%d, got %dx%d", tt.cols, tt.rows, gotCols, gotRows)
			}
		})
	}
}

func TestOutOfBoundsWritesAreNoOps(t *testing.T) {
	c := New(10, 10, RenderASCII, ColorTrueColor)

	coords := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {100, 100}, {-5, -5},
	}

	for _, co := range coords {
		c.Set(co.x, co.y, 1.0)
		c.SetColored(co.x, co.y, 1.0, 255, 0, 0)
		c.SetChar(co.x, co.y, 'X', 255, 0, 0)
	}

	for i, v := range c.Pixels {
		if v != 0 {
			t.Errorf("Expected untouched canvas after out-of-bounds writes, pixel %d = %f", i, v)
		}
	}
	for i, ch := range c.charOverride {
		if ch != 0 {
			t.Errorf("Expected no char overrides, got %q at %d", ch, i)
		}
	}
}

func TestSetColoredStoresBrightnessAndColor(t *testing.T) {
	c := New(10, 10, RenderASCII, ColorTrueColor)
	c.SetColored(3, 4, 0.5, 10, 20, 30)

	idx := 4*c.Width + 3
	if c.Pixels[idx] != 0.5 {
		t.Errorf("Expected brightness 0.5, got %f", c.Pixels[idx])
	}
	if c.Colors[idx] != (RGB{10, 20, 30}) {
		t.Errorf("Expected color {10 20 30}, got %v", c.Colors[idx])
	}
}

func TestClear(t *testing.T) {
	c := New(5, 5, RenderASCII, ColorTrueColor)
	c.SetChar(1, 1, 'A', 1, 2, 3)
	c.SetColored(2, 2, 0.7, 9, 9, 9)
	c.Clear()

	for i := range c.Pixels {
		if c.Pixels[i] != 0 {
			t.Errorf("Expected zero brightness after Clear, got %f at %d", c.Pixels[i], i)
		}
		if c.charOverride[i] != 0 {
			t.Errorf("Expected no overrides after Clear, got %q at %d", c.charOverride[i], i)
		}
	}
}

func TestRenderModeRoundTrip(t *testing.T) {
	// Switching modes on the same terminal grid resizes the pixel space
	c := New(80, 24, RenderHalfBlock, ColorTrueColor)
	if c.Width != 80 || c.Height != 48 {
		t.Fatalf("Expected 80x48, got %dx%d", c.Width, c.Height)
	}
	c = New(80, 24, RenderBraille, ColorTrueColor)
	if c.Width != 160 || c.Height != 96 {
		t.Fatalf("Expected 160x96, got %dx%d", c.Width, c.Height)
	}
}

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		in     string
		want   RenderMode
		wantOK bool
	}{
		{"braille", RenderBraille, true},
		{"half-block", RenderHalfBlock, true},
		{"halfblock", RenderHalfBlock, true},
		{"ascii", RenderASCII, true},
		{"bogus", RenderBraille, false},
		{"", RenderBraille, false},
	}
	for _, tt := range tests {
		got, ok := ParseRenderMode(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseRenderMode(%q) = %v,%v, expected %v,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in     string
		want   ColorMode
		wantOK bool
	}{
		{"mono", ColorMono, true},
		{"ansi16", ColorAnsi16, true},
		{"ansi256", ColorAnsi256, true},
		{"true-color", ColorTrueColor, true},
		{"truecolor", ColorTrueColor, true},
		// Short spellings from the --color help text
		{"16", ColorAnsi16, true},
		{"256", ColorAnsi256, true},
		{"rainbow", ColorMono, false},
	}
	for _, tt := range tests {
		got, ok := ParseColorMode(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseColorMode(%q) = %v,%v, expected %v,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEmptyCanvasRendersWithoutColorEscapes(t *testing.T) {
	for _, mode := range []RenderMode{RenderBraille, RenderHalfBlock, RenderASCII} {
		c := New(20, 10, mode, ColorTrueColor)
		out := c.Render()
		if bytes.Contains(out, []byte("38;")) || bytes.Contains(out, []byte("48;")) {
			t.Errorf("Expected no color escapes for empty %v canvas", mode)
		}
	}
}
