// Package harness runs an ordered corpus of checks against an implementation under test
// and reports per-check outcomes.
package harness

import (
	"csplay/internal/console"
	"csplay/internal/discovery"
)

// Verdict is what a check returns
type Verdict int

const (
	VerdictFalse Verdict = iota
	VerdictTrue
	VerdictDisabled
)

// Expect converts a predicate into a verdict
func Expect(ok bool) Verdict {
	if ok {
		return VerdictTrue
	}
	return VerdictFalse
}

// Env is the evaluation context a check runs in
type Env[T any] struct {
	Name    string // Name the implementation is known by, e.g. "DoublyLinkedList"
	Subject T
	Console console.Sink
}

// Warn writes a diagnostic line to the run's console
func (e Env[T]) Warn(msg string) {
	if e.Console != nil {
		e.Console.Log("WARNING: " + msg)
	}
}

// Check evaluates one expectation against the subject. A panic counts as a failure.
type Check[T any] func(env Env[T]) Verdict

// Descriptor pairs a check with the message shown for it
type Descriptor[T any] struct {
	Name    string
	Message string
	Check   Check[T]
}

// Info is the display part of a descriptor
type Info struct {
	Name    string
	Message string
}

// Corpus is the ordered set of descriptors for one topic
type Corpus[T any] struct {
	Topic       string
	Name        string // Name the subject is bound to inside checks
	Descriptors []Descriptor[T]
}

// Len returns the number of descriptors
func (c Corpus[T]) Len() int {
	return len(c.Descriptors)
}

// Info lists descriptor names and messages in order
func (c Corpus[T]) Info() []Info {
	infos := make([]Info, len(c.Descriptors))
	for i, d := range c.Descriptors {
		infos[i] = Info{Name: d.Name, Message: d.Message}
	}
	return infos
}

// Filter returns a copy of the corpus holding only descriptors whose name matches pattern.
// An empty pattern keeps everything.
func (c Corpus[T]) Filter(pattern string) Corpus[T] {
	if pattern == "" {
		return c
	}
	seen := make(map[string]bool, len(c.Descriptors))
	names := make([]string, 0, len(c.Descriptors))
	for _, d := range c.Descriptors {
		if !seen[d.Name] {
			seen[d.Name] = true
			names = append(names, d.Name)
		}
	}
	kept := make(map[string]bool)
	for _, name := range discovery.NewFilter().FilterByName(names, pattern) {
		kept[name] = true
	}

	out := Corpus[T]{Topic: c.Topic, Name: c.Name}
	for _, d := range c.Descriptors {
		if kept[d.Name] {
			out.Descriptors = append(out.Descriptors, d)
		}
	}
	return out
}
