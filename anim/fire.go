package anim

import (
	"math/rand/v2"

	"github.com/paulrobello/termflix/canvas"
)

// fire is the classic Doom fire: heat rises from a hot bottom row with
// random lateral wind and decay
type fire struct {
	Base
	width  int
	height int
	buffer []float64
	rng    *rand.Rand
}

func newFire(width, height int, _ float64) Animation {
	f := &fire{rng: newRNG()}
	f.reseed(width, height)
	return f
}

func (f *fire) Name() string { return "fire" }

func (f *fire) reseed(w, h int) {
	f.width = w
	f.height = h
	f.buffer = make([]float64, w*h)
	for y := max(h-2, 0); y < h; y++ {
		for x := 0; x < w; x++ {
			f.buffer[y*w+x] = 1.0
		}
	}
}

func (f *fire) OnResize(width, height int) {
	f.reseed(width, height)
}

func (f *fire) Update(c *canvas.Canvas, _ float64, _ float64) {
	w, h := c.Width, c.Height
	if f.width != w || f.height != h {
		f.reseed(w, h)
	}

	// Pull heat from the row below with random wind. Decay scales
	// with height so flames reach roughly 60% up the canvas.
	maxDecay := 3.0 / float64(h)
	for x := 0; x < w; x++ {
		for y := 0; y < h-1; y++ {
			wind := f.rng.IntN(3) - 1
			srcX := x + wind
			if srcX < 0 {
				srcX = 0
			} else if srcX >= w {
				srcX = w - 1
			}
			v := f.buffer[(y+1)*w+srcX] - f.rng.Float64()*maxDecay
			if v < 0 {
				v = 0
			}
			f.buffer[y*w+x] = v
		}
	}

	// Keep the bottom row hot
	for x := 0; x < w; x++ {
		f.buffer[(h-1)*w+x] = 0.9 + f.rng.Float64()*0.1
	}

	c.Clear()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := f.buffer[y*w+x]
			if v > 0.01 {
				r, g, b := fireColor(v)
				c.SetColored(x, y, v, r, g, b)
			}
		}
	}
}

// fireColor maps heat to the black-red-orange-white ramp
func fireColor(v float64) (uint8, uint8, uint8) {
	switch {
	case v > 0.85:
		t := (v - 0.85) / 0.15
		return 255, uint8(200 + 55*t), uint8(t * 200)
	case v > 0.6:
		t := (v - 0.6) / 0.25
		return 255, uint8(t * 200), 0
	case v > 0.3:
		t := (v - 0.3) / 0.3
		return uint8(100 + 155*t), 0, 0
	default:
		t := v / 0.3
		return uint8(t * 100), 0, 0
	}
}
