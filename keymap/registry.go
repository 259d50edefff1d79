package keymap

import (
	"fmt"
	"sync"

	"github.com/dshills/keyseq/key"
)

// Registry is an insertion-ordered, append-only collection of bindings.
// Duplicate trigger sequences are permitted; all stay registered.
type Registry struct {
	mu       sync.RWMutex
	bindings []*Binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make([]*Binding, 0),
	}
}

// Bind parses the notation and appends a new binding. On a parse error
// nothing is registered.
func (r *Registry) Bind(spec string, handler func(), description string) error {
	seq, err := key.ParseSequence(spec)
	if err != nil {
		return fmt.Errorf("parsing binding %q: %w", spec, err)
	}
	b, err := r.bindSequence(seq, handler, description)
	if err != nil {
		return err
	}
	b.Keys = spec
	return nil
}

// BindSequence appends a new binding for a pre-built trigger sequence.
func (r *Registry) BindSequence(seq key.Sequence, handler func(), description string) error {
	_, err := r.bindSequence(seq, handler, description)
	return err
}

func (r *Registry) bindSequence(seq key.Sequence, handler func(), description string) (*Binding, error) {
	if seq.IsEmpty() {
		return nil, ErrEmptySequence
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	b := &Binding{
		Sequence:    seq.Clone(),
		Handler:     handler,
		Description: description,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, b)
	return b, nil
}

// Lookup returns the first binding in registration order whose trigger
// equals the given sequence, or ErrNotFound.
func (r *Registry) Lookup(seq key.Sequence) (*Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bindings {
		if b.Matches(seq) {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

// Match scans every binding once, classifying it against the given input.
//
// Exact matches are inserted at the front of the candidate list; strict
// prefix matches are appended and reported through extendable. The
// front-insertion means that with duplicate triggers the exact match found
// last during the scan ends up first, and is the one the matcher fires.
func (r *Registry) Match(input key.Sequence) (candidates []*Binding, extendable bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bindings {
		switch {
		case b.Matches(input):
			candidates = append([]*Binding{b}, candidates...)
		case b.ExtendedBy(input):
			candidates = append(candidates, b)
			extendable = true
		}
	}
	return candidates, extendable
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// Bindings returns a snapshot of the registered bindings in registration
// order.
func (r *Registry) Bindings() []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// BindingHelp pairs a display trigger with its description.
type BindingHelp struct {
	Keys        string
	Description string
}

// DescribeAll returns help entries for every binding with a description, in
// registration order.
func (r *Registry) DescribeAll() []BindingHelp {
	r.mu.RLock()
	defer r.mu.RUnlock()

	help := make([]BindingHelp, 0, len(r.bindings))
	for _, b := range r.bindings {
		if b.Description == "" {
			continue
		}
		help = append(help, BindingHelp{
			Keys:        b.Display(),
			Description: b.Description,
		})
	}
	return help
}
