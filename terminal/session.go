package terminal

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Session owns the terminal for the lifetime of an animation run: raw
// mode, alternate screen, cursor visibility, input and resize delivery.
type Session struct {
	in       *os.File
	out      *os.File
	inFd     int
	outFd    int
	oldState *term.State

	input   *inputReader
	resize  *resizeWatcher
	signals *signalWatcher

	trackFocus bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewSession prepares a session on stdin/stdout. trackFocus enables
// focus-reporting mode, used to exit screensaver runs on focus gain.
func NewSession(trackFocus bool) *Session {
	return &Session{
		in:         os.Stdin,
		out:        os.Stdout,
		inFd:       int(os.Stdin.Fd()),
		outFd:      int(os.Stdout.Fd()),
		trackFocus: trackFocus,
	}
}

// Init enters raw mode and the alternate screen and starts the input
// and resize goroutines
func (s *Session) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if !term.IsTerminal(s.outFd) {
		return fmt.Errorf("stdout is not a terminal")
	}

	old, err := term.MakeRaw(s.inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	s.oldState = old

	s.writeRaw(csiAltScreenEnter)
	s.writeRaw(csiCursorHide)
	s.writeRaw(csiClear)
	if s.trackFocus {
		s.writeRaw(csiFocusOn)
	}

	s.input = newInputReader(s.inFd)
	s.input.start()

	s.resize = newResizeWatcher(s.outFd)
	s.resize.start()

	// An external kill must still run the restore sequence; deliver it
	// as a closed-input event so the loop quits and Fini runs
	s.signals = newSignalWatcher(s.input.sendEvent)
	s.signals.start()

	s.initialized = true
	return nil
}

// Fini restores the terminal. Safe to call multiple times.
//
// The order matters: raw mode off first so the escape writes behave,
// then a full queue flush so buffered frame data and unread keypresses
// never leak into the shell, then the mode exits in one write.
func (s *Session) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}

	s.signals.stop()
	s.input.stop()
	s.resize.stop()

	if s.oldState != nil {
		term.Restore(s.inFd, s.oldState)
	}

	unix.IoctlSetInt(s.inFd, unix.TCFLSH, unix.TCIOFLUSH)

	exit := make([]byte, 0, 32)
	if s.trackFocus {
		exit = append(exit, csiFocusOff...)
	}
	exit = append(exit, csiSyncEnd...)
	exit = append(exit, csiCursorShow...)
	exit = append(exit, csiAltScreenExit...)
	s.writeRaw(exit)

	if InsideTmux() {
		// Frames linger in the tmux scrollback, wipe them
		exec.Command("tmux", "clear-history").Run()
		exec.Command("tmux", "refresh-client").Run()
	}

	s.finalized = true
}

// Size returns current terminal dimensions in character cells
func (s *Session) Size() (cols, rows int) {
	cols, rows = querySize(s.outFd)
	if cols == 0 || rows == 0 {
		return 80, 24
	}
	return cols, rows
}

// Events returns the input event channel
func (s *Session) Events() <-chan Event {
	return s.input.events()
}

// ResizeEvents returns the resize event channel
func (s *Session) ResizeEvents() <-chan ResizeEvent {
	return s.resize.events()
}

// Output returns the raw output stream for frame writes
func (s *Session) Output() io.Writer {
	return s.out
}

func (s *Session) writeRaw(data []byte) {
	s.out.Write(data)
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call from panic recovery when Fini cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiFocusOff)
	w.Write(csiSyncEnd)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiReset)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort reset
	// via /dev/tty, errors ignored in crash context
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		if termios, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, unix.TCSETS, termios)
		}
	}
}
