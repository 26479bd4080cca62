package control

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"
)

// Source feeds decoded control messages to the frame loop. Exactly one
// producer goroutine writes the channel; the loop drains it each frame.
type Source struct {
	ch     chan *Params
	stopCh chan struct{}
}

// Messages returns the channel the frame loop drains
func (s *Source) Messages() <-chan *Params {
	return s.ch
}

// Close stops the producer goroutine
func (s *Source) Close() {
	close(s.stopCh)
}

// Open picks the control source by priority: an explicit control file
// beats piped stdin; with neither, the returned source never produces.
func Open(controlFile string) (*Source, error) {
	if controlFile != "" {
		return watchFile(controlFile)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return readStdin(), nil
	}
	return None(), nil
}

// None returns a source that never produces, for running without
// external control
func None() *Source {
	return &Source{
		ch:     make(chan *Params),
		stopCh: make(chan struct{}),
	}
}

// watchFile tails a control file: on every write event the last
// non-blank line is parsed and forwarded. Editors that replace the file
// generate create events, so the parent directory is watched too.
func watchFile(path string) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve control file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch control file: %w", err)
	}

	s := &Source{
		ch:     make(chan *Params, 16),
		stopCh: make(chan struct{}),
	}

	go func() {
		defer watcher.Close()

		// Pick up content already present at startup
		s.forwardLastLine(abs)

		for {
			select {
			case <-s.stopCh:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					s.forwardLastLine(abs)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Watch errors are not fatal to the animation
			}
		}
	}()

	return s, nil
}

// forwardLastLine reads the file and sends its last non-blank line.
// Unreadable files and invalid JSON are silently ignored.
func (s *Source) forwardLastLine(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	line := lastNonBlankLine(data)
	if line == nil {
		return
	}
	if p := Parse(line); p != nil {
		s.send(p)
	}
}

func lastNonBlankLine(data []byte) []byte {
	lines := bytes.Split(data, []byte{'\n'})
	for i := len(lines) - 1; i >= 0; i-- {
		if line := bytes.TrimSpace(lines[i]); len(line) > 0 {
			return line
		}
	}
	return nil
}

// readStdin consumes piped input line by line. The goroutine ends on
// EOF; a closed pipe simply stops producing messages.
func readStdin() *Source {
	s := &Source{
		ch:     make(chan *Params, 16),
		stopCh: make(chan struct{}),
	}

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case <-s.stopCh:
				return
			default:
			}
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			if p := Parse(line); p != nil {
				s.send(p)
			}
		}
	}()

	return s
}

// send delivers to the frame loop. The producer owns this goroutine
// and may block; the loop drains the channel every frame, so a full
// buffer only stalls the reader, never loses a message.
func (s *Source) send(p *Params) {
	select {
	case s.ch <- p:
	case <-s.stopCh:
	}
}
