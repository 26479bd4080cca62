package engine

import (
	"testing"
	"time"
)

func TestPacerConvergesToMeasuredWriteCost(t *testing.T) {
	p := NewPacer(0, true)
	for i := 0; i < 200; i++ {
		p.Update(20 * time.Millisecond)
	}

	want := 22 * time.Millisecond
	got := p.Wait()
	if got < want-time.Millisecond || got > want+time.Millisecond {
		t.Errorf("Expected wait near %v, got %v", want, got)
	}
}

func TestPacerCapsAtCeiling(t *testing.T) {
	p := NewPacer(0, true)
	for i := 0; i < 200; i++ {
		p.Update(300 * time.Millisecond)
	}

	if p.Wait() != pacingCeiling {
		t.Errorf("Expected wait capped at %v, got %v", pacingCeiling, p.Wait())
	}
}

func TestPacerNominalIsFloor(t *testing.T) {
	nominal := 33 * time.Millisecond
	p := NewPacer(nominal, true)
	for i := 0; i < 50; i++ {
		p.Update(time.Millisecond)
	}

	if p.Wait() != nominal {
		t.Errorf("Expected fast writes to leave nominal wait %v, got %v", nominal, p.Wait())
	}
}

func TestPacerNonAdaptiveIgnoresWrites(t *testing.T) {
	nominal := 33 * time.Millisecond
	p := NewPacer(nominal, false)
	for i := 0; i < 50; i++ {
		p.Update(300 * time.Millisecond)
	}

	if p.Wait() != nominal {
		t.Errorf("Expected non-adaptive wait to stay %v, got %v", nominal, p.Wait())
	}
}
