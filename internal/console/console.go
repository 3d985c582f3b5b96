// Package console carries the output checks and helpers emit while a corpus runs.
//
// The harness never touches a process-wide logger; every run is handed a Sink.
package console

import (
	"fmt"
	"strings"
	"sync"
)

const (
	passMarker = "Pass:"
	failMarker = "Fail:"
)

// Sink receives values logged during a run
type Sink interface {
	Log(v any)
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(v any)

// Log calls f(v)
func (f SinkFunc) Log(v any) { f(v) }

// Discard drops everything
var Discard Sink = SinkFunc(func(any) {})

// Filter keeps a value when its text carries a pass marker or no fail marker, and
// returns nil otherwise. Non-textual values are dropped.
func Filter(v any) any {
	text, ok := textOf(v)
	if !ok {
		return nil
	}
	if strings.Contains(text, passMarker) || !strings.Contains(text, failMarker) {
		return v
	}
	return nil
}

func textOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case error:
		return t.Error(), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return "", false
	}
}

type filterSink struct {
	next Sink
}

// NewFilter returns a Sink that forwards to next only what Filter keeps
func NewFilter(next Sink) Sink {
	if next == nil {
		next = Discard
	}
	return &filterSink{next: next}
}

func (f *filterSink) Log(v any) {
	if kept := Filter(v); kept != nil {
		f.next.Log(kept)
	}
}

// Recorder keeps the text of every logged value in order
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Log records the value's text
func (r *Recorder) Log(v any) {
	text, ok := textOf(v)
	if !ok {
		text = fmt.Sprint(v)
	}
	r.mu.Lock()
	r.lines = append(r.lines, text)
	r.mu.Unlock()
}

// Lines returns a copy of the recorded lines
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset forgets recorded lines
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.lines = nil
	r.mu.Unlock()
}
