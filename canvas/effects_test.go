package canvas

import (
	"math"
	"testing"
)

func TestApplyEffectsIntensity(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		in        float64
		want      float64
	}{
		{"identity", 1.0, 0.5, 0.5},
		{"dimmed", 0.5, 0.8, 0.4},
		{"overdrive exceeds one", 2.0, 0.8, 1.6},
		{"clamped above two", 5.0, 0.5, 1.0},
		{"clamped below zero", -1.0, 0.5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(4, 4, RenderASCII, ColorTrueColor)
			c.Set(1, 1, tt.in)
			ApplyEffects(c, tt.intensity, 0)
			got := c.Pixels[1*c.Width+1]
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected brightness %f, got %f", tt.want, got)
			}
		})
	}
}

func TestApplyEffectsHueShiftIdentity(t *testing.T) {
	c := New(2, 2, RenderASCII, ColorTrueColor)
	c.SetColored(0, 0, 1.0, 200, 50, 25)
	ApplyEffects(c, 1.0, 0)
	if c.Colors[0] != (RGB{200, 50, 25}) {
		t.Errorf("Expected zero shift to leave color unchanged, got %v", c.Colors[0])
	}
}

func TestApplyEffectsFullHueCycle(t *testing.T) {
	c := New(2, 2, RenderASCII, ColorTrueColor)
	c.SetColored(0, 0, 1.0, 255, 0, 0)
	ApplyEffects(c, 1.0, 1.0)

	// A 360° rotation lands back on the same hue, modulo rounding
	got := c.Colors[0]
	if absDiff(got.R, 255) > 2 || absDiff(got.G, 0) > 2 || absDiff(got.B, 0) > 2 {
		t.Errorf("Expected full cycle to return near red, got %v", got)
	}
}

func TestApplyEffectsHalfHueCycle(t *testing.T) {
	c := New(2, 2, RenderASCII, ColorTrueColor)
	c.SetColored(0, 0, 1.0, 255, 0, 0)
	ApplyEffects(c, 1.0, 0.5)

	// Red shifted 180° becomes cyan
	got := c.Colors[0]
	if absDiff(got.R, 0) > 2 || absDiff(got.G, 255) > 2 || absDiff(got.B, 255) > 2 {
		t.Errorf("Expected half cycle to turn red into cyan, got %v", got)
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
