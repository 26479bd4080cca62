package record

import (
	"fmt"
	"time"

	"github.com/paulrobello/termflix/terminal"
)

// Player replays a recording at its original timing
type Player struct {
	frames []Frame
}

// NewPlayer loads a recording from disk
func NewPlayer(path string) (*Player, error) {
	frames, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Player{frames: frames}, nil
}

// Play runs the recording inside its own terminal session. Returns
// once all frames are shown or the user quits.
func (p *Player) Play() error {
	if len(p.frames) == 0 {
		fmt.Println("No frames to play.")
		return nil
	}

	session := terminal.NewSession(false)
	if err := session.Init(); err != nil {
		return err
	}
	defer session.Fini()

	quit := false
	quitCheck := func() bool {
		for {
			select {
			case ev := <-session.Events():
				if isQuit(ev) {
					quit = true
				}
			default:
				return quit
			}
		}
	}

	fw := terminal.NewFrameWriter(session.Output(), quitCheck)
	start := time.Now()

	for _, frame := range p.frames {
		target := time.Duration(frame.TimestampMS) * time.Millisecond
		for {
			remaining := target - time.Since(start)
			if remaining <= 0 {
				break
			}
			// Sleep in short slices so a quit key lands promptly
			slice := remaining
			if slice > 50*time.Millisecond {
				slice = 50 * time.Millisecond
			}
			time.Sleep(slice)
			if quitCheck() {
				return nil
			}
		}

		out := make([]byte, 0, len(frame.Content)+16)
		out = append(out, terminal.SyncBegin()...)
		out = append(out, terminal.CursorHome()...)
		out = append(out, frame.Content...)
		out = append(out, terminal.SyncEnd()...)
		if err := fw.WriteFrame(out); err != nil {
			if err == terminal.ErrInterrupted {
				return nil
			}
			return err
		}
	}
	return nil
}

// Summary describes the recording for the post-playback report
func (p *Player) Summary() string {
	var lastMS uint64
	if len(p.frames) > 0 {
		lastMS = p.frames[len(p.frames)-1].TimestampMS
	}
	return fmt.Sprintf("Playback complete: %d frames, %.1fs",
		len(p.frames), float64(lastMS)/1000.0)
}

func isQuit(ev terminal.Event) bool {
	if ev.Type != terminal.EventKey {
		return false
	}
	return ev.Key == terminal.KeyEscape ||
		ev.Key == terminal.KeyCtrlC ||
		(ev.Key == terminal.KeyRune && ev.Rune == 'q')
}
