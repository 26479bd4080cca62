package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"golang.org/x/sys/unix"
)

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Cols int
	Rows int
}

// resizeWatcher turns SIGWINCH into buffered resize events
type resizeWatcher struct {
	fd      int
	sigCh   chan os.Signal
	eventCh chan ResizeEvent
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newResizeWatcher(fd int) *resizeWatcher {
	return &resizeWatcher{
		fd:      fd,
		sigCh:   make(chan os.Signal, 1),
		eventCh: make(chan ResizeEvent, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (r *resizeWatcher) start() {
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchLoop()
}

func (r *resizeWatcher) stop() {
	signal.Stop(r.sigCh)
	close(r.stopCh)
	<-r.doneCh
}

func (r *resizeWatcher) events() <-chan ResizeEvent {
	return r.eventCh
}

func (r *resizeWatcher) watchLoop() {
	defer close(r.doneCh)

	// Panic recovery for resize signal handler
	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRESIZE HANDLER CRASHED: %v\x1b[0m\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			cols, rows := querySize(r.fd)
			if cols > 0 && rows > 0 {
				// Non-blocking send, replace stale event if not consumed
				select {
				case r.eventCh <- ResizeEvent{Cols: cols, Rows: rows}:
				default:
					select {
					case <-r.eventCh:
					default:
					}
					r.eventCh <- ResizeEvent{Cols: cols, Rows: rows}
				}
			}
		}
	}
}

// querySize returns terminal dimensions for a given fd
func querySize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0
	}
	return int(ws.Col), int(ws.Row)
}
