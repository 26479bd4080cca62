package terminal

import (
	"errors"
	"io"
)

// ErrInterrupted reports a frame write abandoned by a quit request
var ErrInterrupted = errors.New("frame write interrupted")

// chunkSize keeps individual writes small enough that a quit request
// is honored promptly even on slow terminals
const chunkSize = 16384

// FrameWriter writes assembled frames in bounded chunks, polling a
// quit check before and after each chunk
type FrameWriter struct {
	w    io.Writer
	quit func() bool
}

// NewFrameWriter wraps an output stream. quit may be nil when the
// caller has no interruption source, as in playback to a file.
func NewFrameWriter(w io.Writer, quit func() bool) *FrameWriter {
	return &FrameWriter{w: w, quit: quit}
}

// WriteFrame writes the full frame or returns ErrInterrupted
func (fw *FrameWriter) WriteFrame(frame []byte) error {
	for len(frame) > 0 {
		if fw.quit != nil && fw.quit() {
			return ErrInterrupted
		}

		n := len(frame)
		if n > chunkSize {
			n = chunkSize
		}
		if _, err := fw.w.Write(frame[:n]); err != nil {
			return err
		}
		frame = frame[n:]

		if fw.quit != nil && fw.quit() {
			return ErrInterrupted
		}
	}
	return nil
}
