package anim

import (
	"math/rand/v2"

	"github.com/paulrobello/termflix/canvas"
)

// life runs Conway's Game of Life on the pixel grid with stagnation
// detection and periodic chaos injection so it never settles for long
type life struct {
	Base
	width        int
	height       int
	cells        []bool
	generation   uint64
	accumulator  float64
	stepInterval float64

	prevPop     int
	stableCount int

	prevHash        uint64
	hashStableCount int

	rng *rand.Rand
}

func newLife(width, height int, _ float64) Animation {
	l := &life{rng: newRNG()}
	l.reseed(width, height)
	return l
}

func (l *life) Name() string { return "life" }

func (l *life) PreferredRender() canvas.RenderMode { return canvas.RenderBraille }

func (l *life) reseed(width, height int) {
	l.width = width
	l.height = height
	l.generation = 0
	l.accumulator = 0
	l.stepInterval = 0.08
	l.stableCount = 0
	l.hashStableCount = 0
	l.prevHash = 0

	density := randRange(l.rng, 0.2, 0.5)
	l.cells = make([]bool, width*height)
	pop := 0
	for i := range l.cells {
		if l.rng.Float64() < density {
			l.cells[i] = true
			pop++
		}
	}
	l.prevPop = pop
}

func (l *life) OnResize(width, height int) {
	l.reseed(width, height)
}

func (l *life) step() {
	next := make([]bool, l.width*l.height)
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			n := l.countNeighbors(x, y)
			alive := l.cells[y*l.width+x]
			next[y*l.width+x] = n == 3 || (alive && n == 2)
		}
	}
	l.cells = next
	l.generation++

	pop := 0
	for _, c := range l.cells {
		if c {
			pop++
		}
	}
	if pop == l.prevPop || pop == 0 {
		l.stableCount++
	} else {
		l.stableCount = 0
	}

	// Population doubles as a cheap oscillator hash
	hash := uint64(l.prevPop)
	if hash == l.prevHash {
		l.hashStableCount++
	} else {
		l.hashStableCount = 0
	}
	l.prevHash = hash
	l.prevPop = pop

	if l.stableCount > 60 || l.hashStableCount > 10 || pop == 0 {
		l.reseed(l.width, l.height)
		return
	}

	// Drop an r-pentomino every 300 generations to stir things up
	if l.generation%300 == 0 {
		cx := 10
		cy := 10
		if l.width > 20 {
			cx = 10 + l.rng.IntN(l.width-20)
		}
		if l.height > 20 {
			cy = 10 + l.rng.IntN(l.height-20)
		}
		pattern := [][2]int{{0, 0}, {1, 0}, {-1, 1}, {0, 1}, {0, 2}}
		for _, d := range pattern {
			x := mod(cx+d[0], l.width)
			y := mod(cy+d[1], l.height)
			l.cells[y*l.width+x] = true
		}
	}
}

func (l *life) countNeighbors(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := mod(x+dx, l.width)
			ny := mod(y+dy, l.height)
			if l.cells[ny*l.width+nx] {
				count++
			}
		}
	}
	return count
}

func (l *life) Update(c *canvas.Canvas, dt, _ float64) {
	l.accumulator += dt
	for l.accumulator >= l.stepInterval {
		l.step()
		l.accumulator -= l.stepInterval
	}

	if l.width != c.Width || l.height != c.Height {
		l.reseed(c.Width, c.Height)
	}

	c.Clear()
	for y := 0; y < l.height; y++ {
		row := y * l.width
		for x := 0; x < l.width; x++ {
			if l.cells[row+x] {
				c.SetColored(x, y, 1.0, 50, 255, 50)
			}
		}
	}
}

// mod is the positive modulus for torus wrapping
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
