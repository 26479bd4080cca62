// Package engine drives frame production: timing, pacing, resize
// handling, control merging, and the render/write cycle.
package engine

import (
	"fmt"
	"time"

	"github.com/paulrobello/termflix/anim"
	"github.com/paulrobello/termflix/canvas"
	"github.com/paulrobello/termflix/control"
	"github.com/paulrobello/termflix/record"
	"github.com/paulrobello/termflix/terminal"
)

// minCols and minRows bound the smallest usable terminal; rebuilds
// below this keep the previous canvas
const (
	minCols = 10
	minRows = 5
)

// renderCycle and colorCycle define the key-driven mode rotation order
var renderCycle = []canvas.RenderMode{
	canvas.RenderBraille, canvas.RenderHalfBlock, canvas.RenderASCII,
}

var colorCycle = []canvas.ColorMode{
	canvas.ColorTrueColor, canvas.ColorAnsi256, canvas.ColorAnsi16, canvas.ColorMono,
}

// Config fixes the loop's startup parameters
type Config struct {
	Animation      string
	RenderOverride canvas.RenderMode
	ForceRender    bool // RenderOverride set explicitly, disables per-animation defaults
	ColorMode      canvas.ColorMode
	ColorQuant     uint8
	Unlimited      bool
	FrameDuration  time.Duration // zero when Unlimited
	Scale          float64
	CycleSeconds   int // auto-advance period, 0 = disabled
	Clean          bool
	Screensaver    bool
	Recorder       *record.Recorder // nil when not recording
}

// Loop owns the canvas, the active generator, and the terminal for
// the duration of a run
type Loop struct {
	cfg     Config
	session *terminal.Session
	source  *control.Source

	cols, rows int
	hideStatus bool
	renderMode canvas.RenderMode
	colorMode  canvas.ColorMode
	scale      float64

	canvas    *canvas.Canvas
	active    anim.Animation
	animIndex int

	state    *control.State
	pacer    *Pacer
	debounce *Debouncer

	virtualTime float64
	quit        bool
}

// NewLoop prepares a frame loop over an initialized session
func NewLoop(session *terminal.Session, source *control.Source, cfg Config) (*Loop, error) {
	if !anim.Exists(cfg.Animation) {
		return nil, fmt.Errorf("unknown animation %q", cfg.Animation)
	}

	l := &Loop{
		cfg:        cfg,
		session:    session,
		source:     source,
		hideStatus: cfg.Clean,
		colorMode:  cfg.ColorMode,
		scale:      cfg.Scale,
		animIndex:  anim.Index(cfg.Animation),
		state:      control.NewState(),
		pacer:      NewPacer(cfg.FrameDuration, terminal.InsideMux() || cfg.Unlimited),
		debounce:   NewDebouncer(),
	}
	l.cols, l.rows = session.Size()
	l.rebuild(cfg.Animation)
	return l, nil
}

// displayRows is the canvas height in cells, leaving the bottom row
// for the status bar when visible
func (l *Loop) displayRows() int {
	if l.hideStatus {
		return l.rows
	}
	if l.rows > 1 {
		return l.rows - 1
	}
	return l.rows
}

// rebuild recreates the canvas and the generator at the current
// dimensions and modes
func (l *Loop) rebuild(name string) {
	if !l.cfg.ForceRender {
		// Resolve the generator's preferred mode with a probe instance
		probe, err := anim.New(name, 1, 1, l.scale)
		if err == nil {
			l.renderMode = probe.PreferredRender()
		}
	} else {
		l.renderMode = l.cfg.RenderOverride
	}

	l.canvas = canvas.New(l.cols, l.displayRows(), l.renderMode, l.colorMode)
	l.canvas.ColorQuant = l.cfg.ColorQuant

	active, err := anim.New(name, l.canvas.Width, l.canvas.Height, l.scale)
	if err != nil {
		// Caller validated the name; keep the previous generator
		return
	}
	l.active = active
}

// rebuildCurrent recreates canvas and generator without changing animation
func (l *Loop) rebuildCurrent() {
	l.rebuild(anim.Names()[l.animIndex])
}

// rebuildCanvas resizes the canvas around the running generator so
// simulation state survives resizes and mode toggles. The current
// render mode is kept as-is: a key-cycled mode holds until the next
// animation switch, which re-resolves it in rebuild.
func (l *Loop) rebuildCanvas() {
	l.canvas = canvas.New(l.cols, l.displayRows(), l.renderMode, l.colorMode)
	l.canvas.ColorQuant = l.cfg.ColorQuant
	l.active.OnResize(l.canvas.Width, l.canvas.Height)
}

// switchAnimation moves the active generator by delta in display order
func (l *Loop) switchAnimation(delta int) {
	names := anim.Names()
	l.animIndex = (l.animIndex + delta + len(names)) % len(names)
	l.rebuild(names[l.animIndex])
}

// Run drives the loop until quit. The caller restores the terminal.
func (l *Loop) Run() error {
	lastFrame := time.Now()
	cycleStart := time.Now()
	fpsUpdate := time.Now()
	frameCount := 0
	actualFPS := 0.0
	frameBuf := make([]byte, 0, 256*1024)

	writer := terminal.NewFrameWriter(l.session.Output(), l.quitCheck)

	for !l.quit {
		// The bounded wait doubles as the frame timer and the input
		// poll; a plain sleep would starve event handling
		wait := l.pacer.Wait() - time.Since(lastFrame)
		if l.debounce.Pending() && wait < 5*time.Millisecond {
			// No frames are produced during resize cooldown; without a
			// floor the loop would spin until the window elapses
			wait = 5 * time.Millisecond
		}
		l.waitForEvents(wait)
		if l.quit {
			return nil
		}

		now := time.Now()

		if l.debounce.InCooldown(now) {
			continue
		}
		if l.debounce.TakeRebuild(now) {
			cols, rows := l.session.Size()
			if cols >= minCols && rows >= minRows {
				l.cols, l.rows = cols, rows
				l.rebuildCanvas()
			}
			lastFrame = time.Now()
			// First post-resize frame starts clean
			continue
		}

		// Auto-cycle
		if l.cfg.CycleSeconds > 0 && time.Since(cycleStart) >= time.Duration(l.cfg.CycleSeconds)*time.Second {
			l.switchAnimation(1)
			cycleStart = time.Now()
		}

		dt := now.Sub(lastFrame).Seconds()
		if dt > 0.1 {
			// A stall (debugger, scheduling gap) must not jump the simulation
			dt = 0.1
		}
		lastFrame = now

		if l.drainControl() {
			// A one-shot rebuild starts the next frame clean, same as
			// a resize
			continue
		}

		effectiveDt := dt * l.state.Speed
		if effectiveDt > 0.5 {
			effectiveDt = 0.5
		}
		l.virtualTime += effectiveDt

		l.active.SetParams(l.state)
		l.active.Update(l.canvas, effectiveDt, l.virtualTime)
		canvas.ApplyEffects(l.canvas, l.state.Intensity, l.state.ColorShift)

		frame := l.canvas.Render()
		if l.cfg.Recorder != nil {
			l.cfg.Recorder.Capture(frame)
		}

		frameBuf = frameBuf[:0]
		frameBuf = append(frameBuf, terminal.SyncBegin()...)
		frameBuf = append(frameBuf, terminal.CursorHome()...)
		frameBuf = append(frameBuf, frame...)

		frameCount++
		if el := time.Since(fpsUpdate); el >= time.Second {
			actualFPS = float64(frameCount) / el.Seconds()
			frameCount = 0
			fpsUpdate = time.Now()
		}
		if !l.hideStatus {
			fps := fmt.Sprintf("%.0f fps", actualFPS)
			if l.cfg.Unlimited {
				fps = "∞ fps"
			}
			frameBuf = buildStatus(frameBuf, l.active.Name(), l.renderMode, l.colorMode,
				fps, l.cfg.Recorder != nil, l.cols, l.rows)
		}

		// Final size check: a resize during rendering invalidates the
		// frame, discard it rather than paint garbage
		if cols, rows := l.session.Size(); cols != l.cols || rows != l.rows {
			l.cols, l.rows = cols, rows
			l.debounce.Observe(time.Now())
			continue
		}

		frameBuf = append(frameBuf, terminal.SyncEnd()...)

		writeStart := time.Now()
		if err := writer.WriteFrame(frameBuf); err != nil {
			if err == terminal.ErrInterrupted {
				return nil
			}
			return fmt.Errorf("write frame: %w", err)
		}
		l.pacer.Update(time.Since(writeStart))
	}
	return nil
}

// waitForEvents blocks up to wait for input, then drains everything
// pending without blocking
func (l *Loop) waitForEvents(wait time.Duration) {
	if wait < 0 {
		wait = 0
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case ev := <-l.session.Events():
		l.handleEvent(ev)
	case re := <-l.session.ResizeEvents():
		l.handleResize(re)
	case <-timer.C:
		return
	}

	for {
		select {
		case ev := <-l.session.Events():
			l.handleEvent(ev)
		case re := <-l.session.ResizeEvents():
			l.handleResize(re)
		default:
			return
		}
	}
}

func (l *Loop) handleResize(re terminal.ResizeEvent) {
	l.cols = re.Cols
	l.rows = re.Rows
	l.debounce.Observe(time.Now())
}

func (l *Loop) handleEvent(ev terminal.Event) {
	switch ev.Type {
	case terminal.EventFocusGained:
		if l.cfg.Screensaver {
			l.quit = true
		}
	case terminal.EventClosed, terminal.EventError:
		l.quit = true
	case terminal.EventKey:
		if l.cfg.Screensaver {
			// Any keypress ends a screensaver run
			l.quit = true
			return
		}
		l.handleKey(ev)
	}
}

func (l *Loop) handleKey(ev terminal.Event) {
	switch {
	case ev.Key == terminal.KeyEscape, ev.Key == terminal.KeyCtrlC,
		ev.Key == terminal.KeyRune && ev.Rune == 'q':
		l.quit = true

	case ev.Key == terminal.KeyRight, ev.Key == terminal.KeyRune && ev.Rune == 'n':
		l.switchAnimation(1)

	case ev.Key == terminal.KeyLeft, ev.Key == terminal.KeyRune && ev.Rune == 'p':
		l.switchAnimation(-1)

	case ev.Key == terminal.KeyRune && ev.Rune == 'r':
		// Key cycling holds for this animation only; switching reverts
		// to the new generator's preference unless --render was given
		l.renderMode = nextMode(renderCycle, l.renderMode)
		l.rebuildCanvas()

	case ev.Key == terminal.KeyRune && ev.Rune == 'c':
		l.colorMode = nextMode(colorCycle, l.colorMode)
		l.rebuildCanvas()

	case ev.Key == terminal.KeyRune && ev.Rune == 'h':
		l.hideStatus = !l.hideStatus
		l.rebuildCanvas()
	}
}

// drainControl absorbs every pending control message and applies
// one-shot requests. Returns true when a one-shot forced a rebuild.
func (l *Loop) drainControl() bool {
	if l.source == nil {
		return false
	}
	for {
		select {
		case p := <-l.source.Messages():
			l.state.Merge(p)
		default:
			return l.applyOneShots()
		}
	}
}

func (l *Loop) applyOneShots() bool {
	modeChange := false

	// Mode fields first so a combined message rebuilds once with the
	// new modes in place
	if r, ok := l.state.TakeRender(); ok {
		if mode, valid := canvas.ParseRenderMode(r); valid {
			// Control render requests are sticky, like --render
			l.cfg.ForceRender = true
			l.cfg.RenderOverride = mode
			l.renderMode = mode
			modeChange = true
		}
	}
	if c, ok := l.state.TakeColor(); ok {
		if mode, valid := canvas.ParseColorMode(c); valid {
			l.colorMode = mode
			modeChange = true
		}
	}

	if name, ok := l.state.TakeAnimation(); ok && anim.Exists(name) {
		l.animIndex = anim.Index(name)
		if s, ok := l.state.TakeScale(); ok {
			l.scale = s
		}
		l.rebuild(name)
		return true
	}
	if s, ok := l.state.TakeScale(); ok {
		// Scale affects element counts fixed at construction, so the
		// generator is recreated rather than resized
		l.scale = s
		l.rebuildCurrent()
		return true
	}
	if modeChange {
		l.rebuildCanvas()
		return true
	}
	return false
}

// quitCheck is polled between write chunks so a quit lands even while
// a congested terminal blocks the write
func (l *Loop) quitCheck() bool {
	for {
		select {
		case ev := <-l.session.Events():
			l.handleEvent(ev)
		default:
			return l.quit
		}
	}
}

func nextMode[T comparable](cycle []T, current T) T {
	for i, m := range cycle {
		if m == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
