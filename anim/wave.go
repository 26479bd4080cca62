package anim

import (
	"math"

	"github.com/paulrobello/termflix/canvas"
)

// wave renders the interference pattern of two orbiting wave sources
type wave struct {
	Base
}

func newWave(_, _ int, _ float64) Animation {
	return &wave{}
}

func (wv *wave) Name() string { return "wave" }

func (wv *wave) Update(c *canvas.Canvas, _ float64, time float64) {
	w := float64(c.Width)
	h := float64(c.Height)
	t := time

	s1x := w*0.3 + math.Cos(t*0.5)*w*0.2
	s1y := h*0.5 + math.Sin(t*0.7)*h*0.3
	s2x := w*0.7 + math.Sin(t*0.3)*w*0.2
	s2y := h*0.5 + math.Cos(t*0.4)*h*0.3

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			fx := float64(x)
			fy := float64(y)

			d1 := math.Hypot(fx-s1x, fy-s1y)
			d2 := math.Hypot(fx-s2x, fy-s2y)

			wave1 := math.Sin(d1*0.3 - t*4.0)
			wave2 := math.Sin(d2*0.3 - t*3.5)
			v := ((wave1+wave2)*0.5 + 1.0) * 0.5

			r := uint8(math.Sin(v*math.Pi)*100 + 50)
			g := uint8(math.Sin(v*math.Pi*0.7)*150 + 100)
			b := uint8(math.Sin(v*math.Pi*1.3+1.0)*127 + 128)

			c.SetColored(x, y, v, r, g, b)
		}
	}
}
