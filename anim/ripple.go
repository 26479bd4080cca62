package anim

import (
	"math"
	"math/rand/v2"

	"github.com/paulrobello/termflix/canvas"
)

type rippleSource struct {
	x, y     float64
	birth    float64
	strength float64
}

// ripple simulates water drops: expanding interference rings that
// decay over time and distance
type ripple struct {
	Base
	sources    []rippleSource
	spawnTimer float64
	rng        *rand.Rand
}

func newRipple(_, _ int, _ float64) Animation {
	return &ripple{rng: newRNG()}
}

func (rp *ripple) Name() string { return "ripple" }

func (rp *ripple) Update(c *canvas.Canvas, dt, time float64) {
	w := float64(c.Width)
	h := float64(c.Height)

	rp.spawnTimer -= dt
	if rp.spawnTimer <= 0 {
		rp.sources = append(rp.sources, rippleSource{
			x:        randRange(rp.rng, 0, w),
			y:        randRange(rp.rng, 0, h),
			birth:    time,
			strength: randRange(rp.rng, 0.5, 1.0),
		})
		rp.spawnTimer = randRange(rp.rng, 0.3, 1.5)
	}

	live := rp.sources[:0]
	for _, s := range rp.sources {
		if time-s.birth < 8.0 {
			live = append(live, s)
		}
	}
	rp.sources = live

	c.Clear()

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			fx := float64(x)
			fy := float64(y)

			val := 0.0
			for _, src := range rp.sources {
				age := time - src.birth
				dist := math.Hypot(fx-src.x, fy-src.y)

				waveFront := age * 30.0
				ringDist := math.Abs(dist - waveFront)
				if ringDist >= 15.0 {
					continue
				}
				decay := math.Exp(-age * 0.4)
				spatialDecay := math.Exp(-ringDist * 0.2)
				wave := math.Sin(dist*0.5 - age*15.0)
				val += wave * decay * spatialDecay * src.strength
			}

			v := clamp((val+1.0)*0.5, 0, 1)
			if v > 0.05 {
				r := uint8(40.0 * v)
				g := uint8(120.0 + 135.0*v)
				b := uint8(180.0 + 75.0*v)
				c.SetColored(x, y, v, r, g, b)
			}
		}
	}
}
