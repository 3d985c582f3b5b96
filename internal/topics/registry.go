// Package topics maps topic names to the gradable data structures the playground ships.
package topics

import (
	"fmt"
	"sort"
	"sync"

	"csplay/internal/harness"
	"csplay/internal/loader"
	"csplay/internal/topics/dll"
)

// Registry wires topics into a single lookup
type Registry struct {
	mu     sync.RWMutex
	topics map[string]harness.Topic
}

// NewRegistry constructs a registry from the supplied topics
func NewRegistry(topics ...harness.Topic) (*Registry, error) {
	reg := &Registry{
		topics: make(map[string]harness.Topic, len(topics)),
	}

	for _, topic := range topics {
		if topic == nil {
			return nil, fmt.Errorf("topic cannot be nil")
		}

		name := topic.Name()
		if name == "" {
			return nil, fmt.Errorf("topic missing name")
		}
		if _, exists := reg.topics[name]; exists {
			return nil, fmt.Errorf("duplicate topic %q", name)
		}

		reg.topics[name] = topic
	}

	if len(reg.topics) == 0 {
		return nil, fmt.Errorf("at least one topic must be registered")
	}

	return reg, nil
}

// Default registers every built-in topic, evaluating submissions with l
func Default(l *loader.Loader) *Registry {
	reg, err := NewRegistry(dll.NewTopic(l))
	if err != nil {
		panic(err)
	}
	return reg
}

// Lookup returns the topic registered under name
func (r *Registry) Lookup(name string) (harness.Topic, error) {
	r.mu.RLock()
	topic, ok := r.topics[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no topic registered as %q (available: %v)", name, r.Names())
	}
	return topic, nil
}

// Names lists registered topic names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.topics))
	for name := range r.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
