package terminal

import (
	"bytes"
	"testing"
)

func TestWriteFrameDeliversAllBytes(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, nil)

	frame := bytes.Repeat([]byte{'x'}, chunkSize*2+100)
	if err := fw.WriteFrame(frame); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if buf.Len() != len(frame) {
		t.Errorf("Expected %d bytes written, got %d", len(frame), buf.Len())
	}
}

func TestWriteFrameChunking(t *testing.T) {
	var sizes []int
	fw := NewFrameWriter(writerFunc(func(p []byte) (int, error) {
		sizes = append(sizes, len(p))
		return len(p), nil
	}), nil)

	frame := make([]byte, chunkSize+1)
	if err := fw.WriteFrame(frame); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sizes) != 2 || sizes[0] != chunkSize || sizes[1] != 1 {
		t.Errorf("Expected chunks [%d 1], got %v", chunkSize, sizes)
	}
}

func TestWriteFrameQuitBeforeFirstChunk(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, func() bool { return true })

	err := fw.WriteFrame([]byte("frame data"))
	if err != ErrInterrupted {
		t.Errorf("Expected ErrInterrupted, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no bytes written after quit, got %d", buf.Len())
	}
}

func TestWriteFrameQuitMidFrame(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	fw := NewFrameWriter(&buf, func() bool {
		calls++
		return calls > 1 // Allow the first chunk, then quit
	})

	frame := make([]byte, chunkSize*3)
	err := fw.WriteFrame(frame)
	if err != ErrInterrupted {
		t.Errorf("Expected ErrInterrupted, got %v", err)
	}
	if buf.Len() != chunkSize {
		t.Errorf("Expected exactly one chunk written, got %d bytes", buf.Len())
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
