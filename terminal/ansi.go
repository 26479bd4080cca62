package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csiReset = []byte("\x1b[0m")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiHome  = []byte("\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// Synchronized update (mode 2026). Frames are bracketed so the
	// terminal presents them atomically instead of mid-write.
	csiSyncBegin = []byte("\x1b[?2026h")
	csiSyncEnd   = []byte("\x1b[?2026l")

	// Focus reporting (mode 1004), used by screensaver mode
	csiFocusOn  = []byte("\x1b[?1004h")
	csiFocusOff = []byte("\x1b[?1004l")
)

// SyncBegin returns the begin-synchronized-update sequence
func SyncBegin() []byte { return csiSyncBegin }

// SyncEnd returns the end-synchronized-update sequence
func SyncEnd() []byte { return csiSyncEnd }

// CursorHome returns the cursor home sequence
func CursorHome() []byte { return csiHome }

// Reset returns the SGR reset sequence
func Reset() []byte { return csiReset }

// appendInt appends a small non-negative integer without allocation.
// Optimized for terminal values (0-255 common, 0-999 typical max)
func appendInt(out []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(out, byte(n)+'0')
	}
	if n < 100 {
		return append(out, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(out, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var buf [8]byte
	i := 7
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	return append(out, buf[i+1:]...)
}

// AppendCursorPos appends a cursor positioning sequence (0-indexed input)
func AppendCursorPos(out []byte, x, y int) []byte {
	out = append(out, "\x1b["...)
	out = appendInt(out, y+1)
	out = append(out, ';')
	out = appendInt(out, x+1)
	return append(out, 'H')
}
