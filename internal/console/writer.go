package console

import (
	"bytes"
	"sync"
)

// LineWriter turns written bytes into one Log call per line. It lets interpreted
// submissions print through the same sink as the checks.
type LineWriter struct {
	mu      sync.Mutex
	sink    Sink
	pending []byte
}

// NewLineWriter creates a LineWriter logging to sink
func NewLineWriter(sink Sink) *LineWriter {
	if sink == nil {
		sink = Discard
	}
	return &LineWriter{sink: sink}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.sink.Log(string(bytes.TrimSuffix(w.pending[:i], []byte("\r"))))
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

// Flush logs any unterminated trailing line
func (w *LineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) > 0 {
		w.sink.Log(string(w.pending))
		w.pending = nil
	}
}
