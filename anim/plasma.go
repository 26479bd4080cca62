package anim

import (
	"math"

	"github.com/paulrobello/termflix/canvas"
	"github.com/paulrobello/termflix/control"
)

// plasma is the classic demo effect: overlapping sine fields mapped
// through a cycling palette
type plasma struct {
	Base
	// hueBias maps the external color_shift onto the palette phase,
	// rotating colors independently of the global hue effect
	hueBias float64
}

func newPlasma(_, _ int, _ float64) Animation {
	return &plasma{}
}

func (p *plasma) Name() string { return "plasma" }

func (p *plasma) SetParams(s *control.State) {
	p.hueBias = clamp(s.ColorShift, 0, 1)
}

func (p *plasma) Update(c *canvas.Canvas, _ float64, time float64) {
	w := float64(c.Width)
	h := float64(c.Height)
	t := time * 0.8

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			fx := float64(x) / w * 8.0
			fy := float64(y) / h * 8.0

			v1 := math.Sin(fx + t)
			v2 := (math.Sin(fy*1.5+t*0.7) + math.Cos(fx*0.7+t*1.3)) * 0.5
			v3 := math.Sin(math.Sqrt(fx*fx+fy*fy)*0.3 - t)
			v4 := math.Sin(fx*0.5+fy*0.5+t*0.5) * 0.7

			v := clamp((v1+v2+v3+v4)*0.25+0.5, 0, 1)

			r, g, b := plasmaColor(v, t, p.hueBias)
			c.SetColored(x, y, v*0.8+0.2, r, g, b)
		}
	}
}

func plasmaColor(v, t, hueBias float64) (uint8, uint8, uint8) {
	bias := hueBias * 2 * math.Pi
	r := uint8(math.Sin(v*math.Pi+t*0.3+bias)*127 + 128)
	g := uint8(math.Sin(v*math.Pi*1.5+t*0.5+2.0+bias)*127 + 128)
	b := uint8(math.Sin(v*math.Pi*2.0+t*0.7+4.0+bias)*127 + 128)
	return r, g, b
}
