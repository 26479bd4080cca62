package anim

import (
	"math/rand/v2"

	"github.com/paulrobello/termflix/canvas"
)

type star struct {
	x, y, z float64
	speed   float64
}

// starfield flies through a 3D star cloud projected onto the canvas
type starfield struct {
	Base
	stars []star
	rng   *rand.Rand
	scale float64
}

func newStarfield(width, height int, scale float64) Animation {
	s := &starfield{rng: newRNG(), scale: scale}
	n := starCount(width, height, scale)
	s.stars = make([]star, n)
	for i := range s.stars {
		s.stars[i] = s.newStar(false)
	}
	return s
}

func starCount(width, height int, scale float64) int {
	n := int(float64(width*height) / 30.0 * scale)
	if n < 1 {
		n = 1
	}
	return n
}

// OnResize adjusts the star count; positions are normalized so
// surviving stars carry over
func (s *starfield) OnResize(width, height int) {
	n := starCount(width, height, s.scale)
	for len(s.stars) < n {
		s.stars = append(s.stars, s.newStar(false))
	}
	if len(s.stars) > n {
		s.stars = s.stars[:n]
	}
}

func (s *starfield) Name() string { return "starfield" }

func (s *starfield) PreferredRender() canvas.RenderMode { return canvas.RenderBraille }

func (s *starfield) newStar(far bool) star {
	z := randRange(s.rng, 0.01, 1.0)
	if far {
		z = randRange(s.rng, 0.5, 1.0)
	}
	return star{
		x:     randRange(s.rng, -0.5, 0.5),
		y:     randRange(s.rng, -0.5, 0.5),
		z:     z,
		speed: randRange(s.rng, 0.15, 0.45),
	}
}

func (s *starfield) Update(c *canvas.Canvas, dt, _ float64) {
	c.Clear()
	cx := float64(c.Width) / 2.0
	cy := float64(c.Height) / 2.0

	for i := range s.stars {
		st := &s.stars[i]
		st.z -= st.speed * dt

		// Project 3D onto the canvas plane
		px := int(st.x/st.z*cx + cx)
		py := int(st.y/st.z*cy + cy)

		if st.z <= 0.005 || px < 0 || py < 0 || px >= c.Width || py >= c.Height {
			*st = s.newStar(true)
			continue
		}

		brightness := clamp(1.0-st.z, 0, 1)
		b := uint8(brightness * 255)
		blue := b
		if blue < 205 {
			blue += 50
		} else {
			blue = 255
		}

		c.SetColored(px, py, brightness, b, b, blue)

		// Close stars render 2x2 for a size cue
		if brightness > 0.7 {
			c.SetColored(px+1, py, brightness*0.6, b, b, blue)
			c.SetColored(px, py+1, brightness*0.6, b, b, blue)
		}
	}
}
