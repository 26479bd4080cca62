package terminal

import "testing"

func collect(data []byte) (events []Event, consumed int) {
	consumed = parseInput(data, func(ev Event) {
		events = append(events, ev)
	})
	return
}

func TestParsePrintableRunes(t *testing.T) {
	events, consumed := collect([]byte("qnp"))
	if consumed != 3 {
		t.Errorf("Expected 3 bytes consumed, got %d", consumed)
	}
	want := []rune{'q', 'n', 'p'}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(events))
	}
	for i, ev := range events {
		if ev.Key != KeyRune || ev.Rune != want[i] {
			t.Errorf("Expected rune %q, got key=%d rune=%q", want[i], ev.Key, ev.Rune)
		}
	}
}

func TestParseArrowKeys(t *testing.T) {
	tests := []struct {
		seq  string
		want Key
	}{
		{"\x1b[A", KeyUp},
		{"\x1b[B", KeyDown},
		{"\x1b[C", KeyRight},
		{"\x1b[D", KeyLeft},
	}
	for _, tt := range tests {
		events, consumed := collect([]byte(tt.seq))
		if consumed != len(tt.seq) {
			t.Errorf("Expected %d bytes consumed for %q, got %d", len(tt.seq), tt.seq, consumed)
		}
		if len(events) != 1 || events[0].Key != tt.want {
			t.Errorf("Expected key %d for %q, got %+v", tt.want, tt.seq, events)
		}
	}
}

func TestParseFocusEvents(t *testing.T) {
	events, _ := collect([]byte("\x1b[I\x1b[O"))
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Type != EventFocusGained {
		t.Errorf("Expected focus gained, got %+v", events[0])
	}
	if events[1].Type != EventFocusLost {
		t.Errorf("Expected focus lost, got %+v", events[1])
	}
}

func TestParseCtrlC(t *testing.T) {
	events, _ := collect([]byte{0x03})
	if len(events) != 1 || events[0].Key != KeyCtrlC {
		t.Errorf("Expected ctrl-c event, got %+v", events)
	}
}

func TestIncompleteEscapeIsBuffered(t *testing.T) {
	// A partial CSI must not be consumed until the final byte arrives
	events, consumed := collect([]byte("\x1b["))
	if consumed != 0 {
		t.Errorf("Expected 0 bytes consumed for partial sequence, got %d", consumed)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events for partial sequence, got %+v", events)
	}
}

func TestLoneEscapeThenRune(t *testing.T) {
	// ESC followed by a non-CSI byte is a standalone escape keypress
	events, consumed := collect([]byte("\x1bq"))
	if consumed != 2 {
		t.Errorf("Expected 2 bytes consumed, got %d", consumed)
	}
	if len(events) != 2 || events[0].Key != KeyEscape || events[1].Rune != 'q' {
		t.Errorf("Expected escape then 'q', got %+v", events)
	}
}

func TestUnknownCSIIsSwallowed(t *testing.T) {
	events, consumed := collect([]byte("\x1b[5Zq"))
	if consumed != 5 {
		t.Errorf("Expected 5 bytes consumed, got %d", consumed)
	}
	if len(events) != 1 || events[0].Rune != 'q' {
		t.Errorf("Expected only the trailing rune, got %+v", events)
	}
}
