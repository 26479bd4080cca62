package control

import (
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }
func str(v string) *string { return &v }

func TestParseValidMessage(t *testing.T) {
	p := Parse([]byte(`{"speed": 2.0, "animation": "fire"}`))
	if p == nil {
		t.Fatal("Expected parse to succeed")
	}
	if p.Speed == nil || *p.Speed != 2.0 {
		t.Errorf("Expected speed 2.0, got %v", p.Speed)
	}
	if p.Animation == nil || *p.Animation != "fire" {
		t.Errorf("Expected animation fire, got %v", p.Animation)
	}
	if p.Intensity != nil {
		t.Errorf("Expected absent intensity to stay nil, got %v", *p.Intensity)
	}
}

func TestParseGarbageReturnsNil(t *testing.T) {
	inputs := []string{"not json", "{broken", "", "42,"}
	for _, in := range inputs {
		if p := Parse([]byte(in)); p != nil {
			t.Errorf("Expected nil for %q, got %+v", in, p)
		}
	}
}

func TestMergePersistentValuesClamp(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want State
	}{
		{"in range", Params{Speed: f(2.0), Intensity: f(1.5), ColorShift: f(0.25)},
			State{Speed: 2.0, Intensity: 1.5, ColorShift: 0.25}},
		{"above range", Params{Speed: f(99), Intensity: f(10), ColorShift: f(3)},
			State{Speed: 5.0, Intensity: 2.0, ColorShift: 1.0}},
		{"below range", Params{Speed: f(0), Intensity: f(-1), ColorShift: f(-0.5)},
			State{Speed: 0.1, Intensity: 0.0, ColorShift: 0.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.Merge(&tt.p)
			if s.Speed != tt.want.Speed {
				t.Errorf("Expected speed %f, got %f", tt.want.Speed, s.Speed)
			}
			if s.Intensity != tt.want.Intensity {
				t.Errorf("Expected intensity %f, got %f", tt.want.Intensity, s.Intensity)
			}
			if s.ColorShift != tt.want.ColorShift {
				t.Errorf("Expected color shift %f, got %f", tt.want.ColorShift, s.ColorShift)
			}
		})
	}
}

func TestMergeLeavesAbsentFieldsAlone(t *testing.T) {
	s := NewState()
	s.Merge(&Params{Speed: f(3.0)})
	s.Merge(&Params{Intensity: f(0.5)})

	if s.Speed != 3.0 {
		t.Errorf("Expected earlier speed to persist, got %f", s.Speed)
	}
	if s.Intensity != 0.5 {
		t.Errorf("Expected intensity 0.5, got %f", s.Intensity)
	}
}

func TestOneShotConsumedExactlyOnce(t *testing.T) {
	s := NewState()
	s.Merge(&Params{Animation: str("plasma"), Render: str("ascii")})

	if v, ok := s.TakeAnimation(); !ok || v != "plasma" {
		t.Errorf("Expected pending animation plasma, got %q %v", v, ok)
	}
	if _, ok := s.TakeAnimation(); ok {
		t.Error("Expected animation request to be consumed")
	}

	if v, ok := s.TakeRender(); !ok || v != "ascii" {
		t.Errorf("Expected pending render ascii, got %q %v", v, ok)
	}
	if _, ok := s.TakeRender(); ok {
		t.Error("Expected render request to be consumed")
	}
}

func TestOneShotScaleClamped(t *testing.T) {
	s := NewState()
	s.Merge(&Params{Scale: f(10.0)})
	if v, ok := s.TakeScale(); !ok || v != 2.0 {
		t.Errorf("Expected scale clamped to 2.0, got %f %v", v, ok)
	}
}

func TestLaterMessageOverwritesPending(t *testing.T) {
	s := NewState()
	s.Merge(&Params{Animation: str("fire")})
	s.Merge(&Params{Animation: str("matrix")})
	if v, _ := s.TakeAnimation(); v != "matrix" {
		t.Errorf("Expected latest request to win, got %q", v)
	}
}

func TestLastNonBlankLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{\"speed\":1}\n{\"speed\":2}\n", `{"speed":2}`},
		{"{\"speed\":1}\n\n  \n", `{"speed":1}`},
		{"\n\n", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := lastNonBlankLine([]byte(tt.in))
		if string(got) != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestSendDeliversBurstsBeyondBufferCapacity(t *testing.T) {
	s := &Source{
		ch:     make(chan *Params, 2),
		stopCh: make(chan struct{}),
	}

	const n = 10
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			v := float64(i)
			s.send(&Params{Speed: &v})
		}
	}()

	// Drain slowly; every message must arrive in order, none dropped
	for i := 0; i < n; i++ {
		p := <-s.ch
		if p.Speed == nil || *p.Speed != float64(i) {
			t.Fatalf("Expected message %d in order, got %v", i, p.Speed)
		}
	}
	<-done
}

func TestSendReturnsAfterClose(t *testing.T) {
	s := &Source{
		ch:     make(chan *Params, 1),
		stopCh: make(chan struct{}),
	}
	s.ch <- &Params{}
	s.Close()

	done := make(chan struct{})
	go func() {
		s.send(&Params{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected send to return once the source is closed")
	}
}
