package anim

import (
	"math/rand/v2"

	"github.com/paulrobello/termflix/canvas"
)

type drop struct {
	x      int
	y      float64
	speed  float64
	length int
}

// matrix is digital rain: columns of green glyph trails with bright heads
type matrix struct {
	Base
	width  int
	height int
	scale  float64
	drops  []drop
	rng    *rand.Rand
}

func newMatrix(width, height int, scale float64) Animation {
	m := &matrix{scale: scale, rng: newRNG()}
	m.rebuild(width, height)
	return m
}

func (m *matrix) Name() string { return "matrix" }

func (m *matrix) PreferredRender() canvas.RenderMode { return canvas.RenderASCII }

func (m *matrix) rebuild(width, height int) {
	m.width = width
	m.height = height
	n := int(float64(width) / 2.0 * m.scale)
	if n < 1 {
		n = 1
	}
	m.drops = make([]drop, n)
	for i := range m.drops {
		m.drops[i] = drop{
			x:      m.rng.IntN(width),
			y:      m.rng.Float64() * float64(height),
			speed:  randRange(m.rng, 4, 20),
			length: m.dropLength(),
		}
	}
}

func (m *matrix) dropLength() int {
	maxLen := m.height / 2
	if maxLen <= 5 {
		return 5
	}
	return 5 + m.rng.IntN(maxLen-5)
}

func (m *matrix) OnResize(width, height int) {
	m.rebuild(width, height)
}

func (m *matrix) Update(c *canvas.Canvas, dt, _ float64) {
	c.Clear()

	for i := range m.drops {
		d := &m.drops[i]
		d.y += d.speed * dt

		if int(d.y) > m.height+d.length {
			d.y = -float64(d.length)
			d.x = m.rng.IntN(m.width)
			d.speed = randRange(m.rng, 4, 20)
			d.length = m.dropLength()
		}

		head := int(d.y)
		for j := 0; j < d.length; j++ {
			py := head - j
			if py < 0 || py >= c.Height || d.x >= c.Width {
				continue
			}
			fade := 1.0 - float64(j)/float64(d.length)
			g := uint8(100 + 155.0*fade)
			c.SetColored(d.x, py, fade*fade, 0, g, 0)
		}
		if head >= 0 && head < c.Height && d.x < c.Width {
			c.SetColored(d.x, head, 1.0, 200, 255, 200)
		}
	}
}
