package anim

import (
	"math"
	"math/rand/v2"

	"github.com/paulrobello/termflix/canvas"
)

// particles renders fireworks: each burst is its own emitter whose
// gradient fades from white-hot through the burst color to embers
type particles struct {
	Base
	width      int
	height     int
	scale      float64
	bursts     []*ParticleSystem
	spawnTimer float64
	rng        *rand.Rand
}

func newParticles(width, height int, scale float64) Animation {
	return &particles{
		width:  width,
		height: height,
		scale:  scale,
		rng:    newRNG(),
	}
}

func (pt *particles) Name() string { return "particles" }

func (pt *particles) PreferredRender() canvas.RenderMode { return canvas.RenderBraille }

func (pt *particles) OnResize(width, height int) {
	pt.width = width
	pt.height = height
}

func (pt *particles) spawnFirework() {
	cx := randRange(pt.rng, float64(pt.width)*0.2, float64(pt.width)*0.8)
	cy := randRange(pt.rng, float64(pt.height)*0.2, float64(pt.height)*0.6)
	r := uint8(100 + pt.rng.IntN(156))
	g := uint8(100 + pt.rng.IntN(156))
	b := uint8(100 + pt.rng.IntN(156))

	ps := NewParticleSystem(EmitterConfig{
		X:        cx,
		Y:        cy,
		Spread:   2 * math.Pi,
		SpeedMin: 5,
		SpeedMax: 40,
		LifeMin:  0.8,
		LifeMax:  2.5,
		Gravity:  15,
		Drag:     0.99,
		Gradient: NewGradient(
			ColorStop{T: 0.0, R: 255, G: 255, B: 255},
			ColorStop{T: 0.3, R: r, G: g, B: b},
			ColorStop{T: 1.0, R: r / 4, G: g / 4, B: b / 4},
		),
	}, int(120*pt.scale))

	count := 30 + pt.rng.IntN(50)
	ps.Emit(count)
	pt.bursts = append(pt.bursts, ps)
}

func (pt *particles) Update(c *canvas.Canvas, dt, _ float64) {
	pt.spawnTimer += dt
	if pt.spawnTimer > 0.8 {
		pt.spawnTimer = 0
		pt.spawnFirework()
	}

	live := pt.bursts[:0]
	for _, ps := range pt.bursts {
		ps.Update(dt)
		if ps.Count() > 0 {
			live = append(live, ps)
		}
	}
	pt.bursts = live

	c.Clear()
	for _, ps := range pt.bursts {
		ps.Draw(c)
	}
}
