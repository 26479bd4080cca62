package anim

import (
	"math"
	"math/rand/v2"

	"github.com/paulrobello/termflix/canvas"
)

// ColorStop anchors a gradient color at parameter t
type ColorStop struct {
	T       float64
	R, G, B uint8
}

// ColorGradient interpolates linearly between sorted color stops
type ColorGradient struct {
	stops []ColorStop
}

// NewGradient builds a gradient from at least two stops sorted by T
func NewGradient(stops ...ColorStop) ColorGradient {
	if len(stops) < 2 {
		panic("gradient requires at least 2 stops")
	}
	return ColorGradient{stops: stops}
}

// Sample evaluates the gradient at t in [0,1]
func (g ColorGradient) Sample(t float64) (r, gr, b uint8) {
	t = clamp(t, 0, 1)
	first := g.stops[0]
	if t <= first.T {
		return first.R, first.G, first.B
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.T {
		return last.R, last.G, last.B
	}
	for i := 0; i < len(g.stops)-1; i++ {
		a, bst := g.stops[i], g.stops[i+1]
		if t >= a.T && t <= bst.T {
			frac := (t - a.T) / (bst.T - a.T)
			return lerpChannel(a.R, bst.R, frac),
				lerpChannel(a.G, bst.G, frac),
				lerpChannel(a.B, bst.B, frac)
		}
	}
	return last.R, last.G, last.B
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Particle is one element managed by a ParticleSystem
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64
	MaxLife float64
}

// Age is the normalized age: 0 just born, 1 about to die
func (p *Particle) Age() float64 {
	return 1.0 - clamp(p.Life/p.MaxLife, 0, 1)
}

// LifeFrac is the remaining life fraction
func (p *Particle) LifeFrac() float64 {
	return clamp(p.Life/p.MaxLife, 0, 1)
}

// EmitterConfig parameterizes a ParticleSystem
type EmitterConfig struct {
	X, Y     float64
	Spread   float64 // radians, 0 = laser, 2π = omnidirectional
	Angle    float64 // radians, 0 = right, π/2 = down
	SpeedMin float64
	SpeedMax float64
	LifeMin  float64
	LifeMax  float64
	Gravity  float64 // positive = downward
	Drag     float64 // velocity multiplier per frame, 1.0 = none
	Wind     float64 // x-axis force
	Gradient ColorGradient
}

// ParticleSystem is a reusable emitter with bounded capacity
type ParticleSystem struct {
	Particles []Particle
	Config    EmitterConfig
	capacity  int
	rng       *rand.Rand
}

// NewParticleSystem creates a system with the given particle capacity
func NewParticleSystem(cfg EmitterConfig, capacity int) *ParticleSystem {
	return &ParticleSystem{
		Particles: make([]Particle, 0, capacity),
		Config:    cfg,
		capacity:  capacity,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Emit spawns count particles from the emitter
func (ps *ParticleSystem) Emit(count int) {
	for i := 0; i < count; i++ {
		if len(ps.Particles) >= ps.capacity {
			return
		}
		halfSpread := ps.Config.Spread * 0.5
		angle := ps.Config.Angle + randRange(ps.rng, -halfSpread, halfSpread)
		speed := randRange(ps.rng, ps.Config.SpeedMin, ps.Config.SpeedMax)
		life := randRange(ps.rng, ps.Config.LifeMin, ps.Config.LifeMax)
		ps.Particles = append(ps.Particles, Particle{
			X:       ps.Config.X,
			Y:       ps.Config.Y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
		})
	}
}

// EmitAt spawns one particle with explicit position and velocity
func (ps *ParticleSystem) EmitAt(x, y, vx, vy, life float64) {
	if len(ps.Particles) >= ps.capacity {
		return
	}
	ps.Particles = append(ps.Particles, Particle{
		X: x, Y: y, VX: vx, VY: vy, Life: life, MaxLife: life,
	})
}

// Update applies physics and drops dead particles
func (ps *ParticleSystem) Update(dt float64) {
	live := ps.Particles[:0]
	for i := range ps.Particles {
		p := &ps.Particles[i]
		p.VX += ps.Config.Wind * dt
		p.VY += ps.Config.Gravity * dt
		p.VX *= ps.Config.Drag
		p.VY *= ps.Config.Drag
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Life -= dt
		if p.Life > 0 {
			live = append(live, *p)
		}
	}
	ps.Particles = live
}

// Draw writes all particles into the canvas using the gradient
func (ps *ParticleSystem) Draw(c *canvas.Canvas) {
	for i := range ps.Particles {
		p := &ps.Particles[i]
		ix, iy := int(p.X), int(p.Y)
		if ix < 0 || iy < 0 || ix >= c.Width || iy >= c.Height {
			continue
		}
		r, g, b := ps.Config.Gradient.Sample(p.Age())
		c.SetColored(ix, iy, p.LifeFrac(), r, g, b)
	}
}

// Count is the number of live particles
func (ps *ParticleSystem) Count() int {
	return len(ps.Particles)
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
