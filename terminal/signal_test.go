package terminal

import (
	"syscall"
	"testing"
	"time"
)

func TestSignalWatcherPostsClosedEvent(t *testing.T) {
	events := make(chan Event, 1)
	w := newSignalWatcher(func(ev Event) {
		events <- ev
	})
	go w.watchLoop()
	defer func() {
		close(w.stopCh)
		<-w.doneCh
	}()

	w.sigCh <- syscall.SIGTERM

	select {
	case ev := <-events:
		if ev.Type != EventClosed {
			t.Errorf("Expected EventClosed, got %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected an event after SIGTERM, got none")
	}
}

func TestSignalWatcherStopsCleanly(t *testing.T) {
	w := newSignalWatcher(func(Event) {})
	go w.watchLoop()
	close(w.stopCh)

	select {
	case <-w.doneCh:
	case <-time.After(time.Second):
		t.Fatal("Expected watch loop to exit on stop")
	}
}
