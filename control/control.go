// Package control implements the external runtime control channel:
// JSON parameter lines arriving over a watched file or piped stdin.
package control

import "encoding/json"

// Params is one decoded control message. All fields are optional;
// absent fields leave the corresponding setting untouched.
type Params struct {
	Animation  *string  `json:"animation,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
	Intensity  *float64 `json:"intensity,omitempty"`
	ColorShift *float64 `json:"color_shift,omitempty"`
	Scale      *float64 `json:"scale,omitempty"`
	Render     *string  `json:"render,omitempty"`
	Color      *string  `json:"color,omitempty"`
}

// Parse decodes a control line. A nil result means the line was not
// valid JSON and must be silently ignored.
func Parse(line []byte) *Params {
	var p Params
	if err := json.Unmarshal(line, &p); err != nil {
		return nil
	}
	return &p
}

// State holds the merged control values the frame loop consults.
// Speed, intensity and color shift persist across frames; the
// remaining fields are one-shot requests consumed by the loop.
type State struct {
	Speed      float64
	Intensity  float64
	ColorShift float64

	pendingAnimation *string
	pendingScale     *float64
	pendingRender    *string
	pendingColor     *string
}

// NewState returns the neutral control state
func NewState() *State {
	return &State{
		Speed:      1.0,
		Intensity:  1.0,
		ColorShift: 0.0,
	}
}

// Merge folds one message into the state. Persistent values are
// clamped to their documented ranges; out-of-range requests are still
// applied at the boundary rather than rejected.
func (s *State) Merge(p *Params) {
	if p == nil {
		return
	}
	if p.Speed != nil {
		s.Speed = clamp(*p.Speed, 0.1, 5.0)
	}
	if p.Intensity != nil {
		s.Intensity = clamp(*p.Intensity, 0.0, 2.0)
	}
	if p.ColorShift != nil {
		s.ColorShift = clamp(*p.ColorShift, 0.0, 1.0)
	}
	if p.Animation != nil {
		v := *p.Animation
		s.pendingAnimation = &v
	}
	if p.Scale != nil {
		v := clamp(*p.Scale, 0.5, 2.0)
		s.pendingScale = &v
	}
	if p.Render != nil {
		v := *p.Render
		s.pendingRender = &v
	}
	if p.Color != nil {
		v := *p.Color
		s.pendingColor = &v
	}
}

// TakeAnimation returns a pending animation switch at most once
func (s *State) TakeAnimation() (string, bool) {
	if s.pendingAnimation == nil {
		return "", false
	}
	v := *s.pendingAnimation
	s.pendingAnimation = nil
	return v, true
}

// TakeScale returns a pending scale change at most once
func (s *State) TakeScale() (float64, bool) {
	if s.pendingScale == nil {
		return 0, false
	}
	v := *s.pendingScale
	s.pendingScale = nil
	return v, true
}

// TakeRender returns a pending render-mode switch at most once
func (s *State) TakeRender() (string, bool) {
	if s.pendingRender == nil {
		return "", false
	}
	v := *s.pendingRender
	s.pendingRender = nil
	return v, true
}

// TakeColor returns a pending color-mode switch at most once
func (s *State) TakeColor() (string, bool) {
	if s.pendingColor == nil {
		return "", false
	}
	v := *s.pendingColor
	s.pendingColor = nil
	return v, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
