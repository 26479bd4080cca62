package anim

import (
	"math"

	"github.com/paulrobello/termflix/canvas"
)

type pulseRing struct {
	radius    float64
	maxRadius float64
	speed     float64
	hue       float64
}

// pulse sends hue-cycling rings expanding from the canvas center
type pulse struct {
	Base
	rings      []pulseRing
	spawnTimer float64
}

func newPulse(_, _ int, _ float64) Animation {
	return &pulse{}
}

func (p *pulse) Name() string { return "pulse" }

func (p *pulse) Update(c *canvas.Canvas, dt, time float64) {
	w := float64(c.Width)
	h := float64(c.Height)
	cx := w / 2.0
	cy := h / 2.0
	maxR := math.Hypot(cx, cy)

	p.spawnTimer -= dt
	if p.spawnTimer <= 0 {
		p.rings = append(p.rings, pulseRing{
			maxRadius: maxR,
			speed:     30.0 + math.Sin(time*0.5)*10.0,
			hue:       fract(time * 0.15),
		})
		p.spawnTimer = 0.5 + math.Abs(math.Sin(time*0.3))*0.5
	}

	live := p.rings[:0]
	for i := range p.rings {
		p.rings[i].radius += p.rings[i].speed * dt
		if p.rings[i].radius < p.rings[i].maxRadius {
			live = append(live, p.rings[i])
		}
	}
	p.rings = live

	c.Clear()

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist := math.Hypot(dx, dy)

			var totalB, totalR, totalG, totalBl float64
			for _, ring := range p.rings {
				ringDist := math.Abs(dist - ring.radius)
				width := 3.0 + ring.radius*0.05
				if ringDist >= width {
					continue
				}
				fade := 1.0 - ring.radius/ring.maxRadius
				edge := 1.0 - ringDist/width
				brightness := edge * edge * fade
				if brightness <= 0.01 {
					continue
				}
				r, g, b := hsvToRGB(ring.hue, 0.8, 1.0)
				totalB += brightness
				totalR += float64(r) * brightness
				totalG += float64(g) * brightness
				totalBl += float64(b) * brightness
			}

			if totalB > 0.05 {
				v := clamp(totalB, 0, 1)
				r := uint8(clamp(totalR/totalB, 0, 255))
				g := uint8(clamp(totalG/totalB, 0, 255))
				b := uint8(clamp(totalBl/totalB, 0, 255))
				c.SetColored(x, y, v, r, g, b)
			}
		}
	}
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

// hsvToRGB converts without allocation for the per-pixel hot loops.
// The effects stage uses go-colorful; generators that color every
// pixel each frame stay on this direct form.
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	x := c * (1.0 - math.Abs(math.Mod(h*6.0, 2.0)-1.0))
	m := v - c

	var r, g, b float64
	switch int(h * 6.0) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
