package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// signalWatcher turns SIGINT/SIGTERM into an input event so the frame
// loop quits through its normal path and the session restore runs.
// Raw mode disables the ISIG line discipline, so Ctrl-C arrives as a
// key, but an external kill still delivers the signal directly.
type signalWatcher struct {
	sigCh  chan os.Signal
	stopCh chan struct{}
	doneCh chan struct{}
	post   func(Event)
}

func newSignalWatcher(post func(Event)) *signalWatcher {
	return &signalWatcher{
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		post:   post,
	}
}

func (w *signalWatcher) start() {
	signal.Notify(w.sigCh, syscall.SIGINT, syscall.SIGTERM)
	go w.watchLoop()
}

func (w *signalWatcher) stop() {
	signal.Stop(w.sigCh)
	close(w.stopCh)
	<-w.doneCh
}

func (w *signalWatcher) watchLoop() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return
		case <-w.sigCh:
			w.post(Event{Type: EventClosed})
		}
	}
}
