package engine

import "time"

// debounceWindow is the quiet period required after the last resize
// event before the canvas is rebuilt. Window dragging emits many
// events per second; rebuilding on each would thrash and stutter.
const debounceWindow = 100 * time.Millisecond

type resizePhase uint8

const (
	phaseNormal resizePhase = iota
	phaseCooldown
)

// Debouncer collapses a burst of resize events into a single rebuild
type Debouncer struct {
	phase    resizePhase
	deadline time.Time
}

// NewDebouncer starts in the normal phase
func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Observe records a resize event. Each new event resets the cooldown
// deadline rather than accumulating.
func (d *Debouncer) Observe(now time.Time) {
	d.phase = phaseCooldown
	d.deadline = now.Add(debounceWindow)
}

// InCooldown reports whether frame production should be skipped
func (d *Debouncer) InCooldown(now time.Time) bool {
	return d.phase == phaseCooldown && now.Before(d.deadline)
}

// TakeRebuild returns true exactly once after the cooldown elapses
func (d *Debouncer) TakeRebuild(now time.Time) bool {
	if d.phase == phaseCooldown && !now.Before(d.deadline) {
		d.phase = phaseNormal
		return true
	}
	return false
}

// Pending reports whether a rebuild is owed, elapsed or not
func (d *Debouncer) Pending() bool {
	return d.phase == phaseCooldown
}
