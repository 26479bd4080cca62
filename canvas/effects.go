package canvas

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ApplyEffects post-processes the populated canvas before rendering.
// intensity multiplies every brightness value; the input is clamped to
// [0,2] but results may exceed 1 — backends clamp at the color-mapping
// boundary. hueShift rotates every pixel hue by hueShift*360°; 0 is
// identity, 1.0 a full cycle.
//
// Decoupled from generator logic so external control affects any
// generator uniformly.
func ApplyEffects(c *Canvas, intensity, hueShift float64) {
	if intensity < 0 {
		intensity = 0
	} else if intensity > 2 {
		intensity = 2
	}

	if math.Abs(intensity-1.0) > 1e-10 {
		for i := range c.Pixels {
			c.Pixels[i] *= intensity
		}
	}

	if math.Abs(hueShift) > 1e-10 {
		deg := hueShift * 360.0
		for i := range c.Colors {
			c.Colors[i] = rotateHue(c.Colors[i], deg)
		}
	}
}

// rotateHue shifts a color's hue by deg degrees through HSV space
func rotateHue(c RGB, deg float64) RGB {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, v := col.Hsv()
	h = math.Mod(h+deg, 360.0)
	if h < 0 {
		h += 360.0
	}
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return RGB{r, g, b}
}
