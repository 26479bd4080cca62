package terminal

// Key identifies a decoded input key
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyCtrlC
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventFocusGained
	EventFocusLost
	EventClosed
	EventError
)

// Event represents a terminal input event
type Event struct {
	Type EventType
	Key  Key
	Rune rune
	Err  error
}

// parseInput decodes raw bytes into events and returns bytes consumed.
// Stops at an incomplete escape sequence so the caller can buffer it.
func parseInput(data []byte, emit func(Event)) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		if b == 0x03 {
			emit(Event{Type: EventKey, Key: KeyCtrlC})
			i++
			continue
		}

		if b == 0x1b {
			if i+1 >= n {
				return i // Wait for more data
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ev.Key != KeyNone || ev.Type != EventKey {
				emit(ev)
			}
			i += consumed
			continue
		}

		// Other control bytes are ignored
		i++
	}
	return i
}

// parseEscape decodes one escape sequence starting at data[0] == ESC.
// Returns bytes consumed, or 0 if the sequence is incomplete.
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	if data[1] != '[' {
		// ESC followed by a non-CSI byte: treat as standalone escape
		// and leave the next byte for the regular parser
		return 1, Event{Type: EventKey, Key: KeyEscape}
	}

	// CSI sequence: ESC [ parameters final-byte
	for i := 2; i < len(data); i++ {
		b := data[i]
		if b >= 0x40 && b <= 0x7e {
			// Final byte found
			switch b {
			case 'A':
				return i + 1, Event{Type: EventKey, Key: KeyUp}
			case 'B':
				return i + 1, Event{Type: EventKey, Key: KeyDown}
			case 'C':
				return i + 1, Event{Type: EventKey, Key: KeyRight}
			case 'D':
				return i + 1, Event{Type: EventKey, Key: KeyLeft}
			case 'I':
				return i + 1, Event{Type: EventFocusGained}
			case 'O':
				return i + 1, Event{Type: EventFocusLost}
			default:
				// Swallow unknown sequences
				return i + 1, Event{}
			}
		}
		if i > 32 {
			// Malformed runaway sequence, discard the ESC
			return 1, Event{Type: EventKey, Key: KeyEscape}
		}
	}
	return 0, Event{}
}
