package anim

import (
	"math"

	"github.com/paulrobello/termflix/canvas"
)

// spiral draws a rotating four-arm spiral with a hue sweep around
// the circle
type spiral struct {
	Base
}

func newSpiral(_, _ int, _ float64) Animation {
	return &spiral{}
}

func (sp *spiral) Name() string { return "spiral" }

func (sp *spiral) Update(c *canvas.Canvas, _ float64, time float64) {
	c.Clear()
	w := float64(c.Width)
	h := float64(c.Height)
	cx := w / 2.0
	cy := h / 2.0
	maxR := math.Hypot(cx, cy)
	t := time * 1.5

	const arms = 4.0

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			r := math.Hypot(dx, dy)
			angle := math.Atan2(dy, dx)

			wave := math.Sin(angle*arms + r*0.15 - t*3.0)
			fade := 1.0 - clamp(r/maxR, 0, 1)
			v := clamp((wave+1.0)*0.5*fade, 0, 1)

			if v > 0.05 {
				hue := fract(angle/(2*math.Pi) + 0.5 + t*0.1)
				cr, cg, cb := hsvToRGB(hue, 0.8, v)
				c.SetColored(x, y, v, cr, cg, cb)
			}
		}
	}
}
