// Package record captures rendered frames for later timed playback.
//
// File format (.asciianim):
//
//	ASCIIANIM v1
//	FRAMES <count>
//	---
//	T <timestamp_ms>
//	<frame bytes, base64>
//	---
//	...
package record

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Frame is one captured frame and its offset from recording start
type Frame struct {
	TimestampMS uint64
	Content     []byte
}

// Recorder accumulates frames in memory during a session
type Recorder struct {
	frames []Frame
	start  time.Time
}

// NewRecorder starts the recording clock
func NewRecorder() *Recorder {
	return &Recorder{start: time.Now()}
}

// Capture stores a copy of one rendered frame. The frame is the raw
// canvas output before the synchronized-update framing is added.
func (r *Recorder) Capture(content []byte) {
	buf := make([]byte, len(content))
	copy(buf, content)
	r.frames = append(r.frames, Frame{
		TimestampMS: uint64(time.Since(r.start).Milliseconds()),
		Content:     buf,
	})
}

// FrameCount is the number of captured frames
func (r *Recorder) FrameCount() int {
	return len(r.frames)
}

// Duration is the timestamp of the last frame
func (r *Recorder) Duration() time.Duration {
	if len(r.frames) == 0 {
		return 0
	}
	return time.Duration(r.frames[len(r.frames)-1].TimestampMS) * time.Millisecond
}

// Save writes the recording. Frame bytes are base64 encoded so the
// line-oriented container never collides with frame content.
func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create recording: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "ASCIIANIM v1")
	fmt.Fprintf(w, "FRAMES %d\n", len(r.frames))
	for _, frame := range r.frames {
		fmt.Fprintln(w, "---")
		fmt.Fprintf(w, "T %d\n", frame.TimestampMS)
		fmt.Fprintln(w, base64.StdEncoding.EncodeToString(frame.Content))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write recording: %w", err)
	}
	return nil
}

// Load parses a recording for playback
func Load(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 16<<20)

	if !scanner.Scan() {
		return nil, fmt.Errorf("missing header")
	}
	if !strings.HasPrefix(scanner.Text(), "ASCIIANIM v1") {
		return nil, fmt.Errorf("invalid header: %q", scanner.Text())
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing frame count")
	}
	countStr, ok := strings.CutPrefix(scanner.Text(), "FRAMES ")
	if !ok {
		return nil, fmt.Errorf("invalid frame count line: %q", scanner.Text())
	}
	if _, err := strconv.Atoi(countStr); err != nil {
		return nil, fmt.Errorf("invalid frame count: %w", err)
	}

	var frames []Frame
	for scanner.Scan() {
		if scanner.Text() != "---" {
			continue
		}
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing timestamp")
		}
		tsStr, ok := strings.CutPrefix(scanner.Text(), "T ")
		if !ok {
			return nil, fmt.Errorf("invalid timestamp line: %q", scanner.Text())
		}
		ts, err := strconv.ParseUint(tsStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp: %w", err)
		}
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing frame content")
		}
		content, err := base64.StdEncoding.DecodeString(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("decode frame: %w", err)
		}
		frames = append(frames, Frame{TimestampMS: ts, Content: content})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return frames, nil
}
