package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"golang.org/x/sys/unix"
)

// inputReader reads raw stdin via poll so it can observe stopCh between reads
type inputReader struct {
	fd      int
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly; escape sequences can split
	// across reads
	buf []byte
}

func newInputReader(fd int) *inputReader {
	return &inputReader{
		fd:      fd,
		eventCh: make(chan Event, 64),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	// Panic recovery for raw input reader
	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	readBuf := make([]byte, 256)

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		// Poll with timeout to allow checking stopCh
		fds := []unix.PollFd{
			{Fd: int32(r.fd), Events: unix.POLLIN},
		}
		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			r.sendEvent(Event{Type: EventError, Err: err})
			return
		}

		if n == 0 {
			// Timeout. A lone pending ESC is a real escape keypress,
			// not the start of a sequence.
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
				r.buf = r.buf[:0]
			}
			continue
		}

		rn, err := unix.Read(r.fd, readBuf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			r.sendEvent(Event{Type: EventError, Err: err})
			return
		}
		if rn == 0 {
			r.sendEvent(Event{Type: EventClosed})
			return
		}

		r.buf = append(r.buf, readBuf[:rn]...)
		consumed := parseInput(r.buf, r.sendEvent)
		if consumed > 0 {
			if consumed >= len(r.buf) {
				r.buf = r.buf[:0]
			} else {
				copy(r.buf, r.buf[consumed:])
				r.buf = r.buf[:len(r.buf)-consumed]
			}
		}
	}
}

// sendEvent delivers without blocking the read loop
func (r *inputReader) sendEvent(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop
	}
}
