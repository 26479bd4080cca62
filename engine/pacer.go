package engine

import "time"

// pacingCeiling guarantees a floor of 5 FPS even under severe
// terminal backpressure
const pacingCeiling = 200 * time.Millisecond

// Pacer adapts the inter-frame wait to measured write latency. Inside
// a multiplexer, writes block when the pane buffer fills, so write
// time reflects the real drain rate. In uncapped mode the measured
// term alone prevents flooding the terminal.
type Pacer struct {
	nominal  time.Duration
	adaptive bool
	writeEMA float64 // seconds
	wait     time.Duration
}

// NewPacer creates a pacer. nominal is the target frame duration, zero
// for uncapped. adaptive enables latency tracking; when false the wait
// is always the nominal duration.
func NewPacer(nominal time.Duration, adaptive bool) *Pacer {
	return &Pacer{
		nominal:  nominal,
		adaptive: adaptive,
		wait:     nominal,
	}
}

// Update folds one measured write duration into the moving average
// and recomputes the wait
func (p *Pacer) Update(writeDur time.Duration) {
	if !p.adaptive {
		return
	}
	p.writeEMA = p.writeEMA*0.8 + writeDur.Seconds()*0.2

	// 10% headroom above measured write cost keeps the output buffer
	// from saturating
	target := time.Duration(p.writeEMA * 1.1 * float64(time.Second))
	if target < p.nominal {
		target = p.nominal
	}
	if target > pacingCeiling {
		target = pacingCeiling
	}
	p.wait = target
}

// Wait returns the current inter-frame wait duration
func (p *Pacer) Wait() time.Duration {
	return p.wait
}
