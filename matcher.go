package keyseq

import (
	"sync"

	"github.com/dshills/keyseq/key"
	"github.com/dshills/keyseq/keymap"
)

// Matcher owns a binding registry and the in-progress input buffer, and
// implements the incremental match algorithm.
//
// Key delivery is logically single-threaded (the host's event dispatch
// thread), but buffer mutation and decision form one critical section so a
// matcher shared across goroutines stays consistent.
type Matcher struct {
	mu       sync.Mutex
	registry *keymap.Registry
	pending  key.Sequence

	observers    *notifier
	hooks        []Hook
	panicHandler func(b *keymap.Binding, recovered any)
}

// Hook allows interception of key processing.
type Hook interface {
	// PreKey is called before a symbol is matched. Return true to consume
	// the symbol; it never reaches the input buffer.
	PreKey(sym key.Symbol) bool

	// PostKey is called after a symbol has been processed with the
	// consumed verdict.
	PostKey(sym key.Symbol, consumed bool)
}

// New creates a matcher with an empty registry.
func New() *Matcher {
	return NewWithRegistry(keymap.NewRegistry())
}

// NewWithRegistry creates a matcher over an existing registry.
func NewWithRegistry(reg *keymap.Registry) *Matcher {
	return &Matcher{
		registry:  reg,
		pending:   key.NewSequence(),
		observers: newNotifier(),
	}
}

// Bind registers a handler against a trigger written in binding notation.
func (m *Matcher) Bind(spec string, handler func(), description string) error {
	return m.registry.Bind(spec, handler, description)
}

// BindSequence registers a handler against a pre-built trigger sequence.
func (m *Matcher) BindSequence(seq key.Sequence, handler func(), description string) error {
	return m.registry.BindSequence(seq, handler, description)
}

// Lookup returns the first registered binding whose trigger equals seq.
func (m *Matcher) Lookup(seq key.Sequence) (*keymap.Binding, error) {
	return m.registry.Lookup(seq)
}

// Registry returns the matcher's binding registry.
func (m *Matcher) Registry() *keymap.Registry {
	return m.registry
}

// Process consumes one key symbol and returns whether it was consumed.
//
// The verdict is true when a binding fired, or when the buffered input is
// still a prefix of at least one trigger and the key is held back from
// normal processing. It is false on a dead end (the buffer is cleared and
// the host is free to handle the key normally) and for keys that cannot
// start or extend any chord.
func (m *Matcher) Process(sym key.Symbol) bool {
	sym = sym.Normalize()

	hooks := m.hooksSnapshot()
	for _, h := range hooks {
		if h.PreKey(sym) {
			m.notifyAndPost(hooks, sym, true)
			return true
		}
	}

	fire, consumed := m.advance(sym)
	if fire != nil {
		m.fire(fire)
	}

	m.notifyAndPost(hooks, sym, consumed)
	return consumed
}

func (m *Matcher) hooksSnapshot() []Hook {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.hooks) == 0 {
		return nil
	}
	out := make([]Hook, len(m.hooks))
	copy(out, m.hooks)
	return out
}

// advance runs one step of the match state machine under the lock and
// returns the binding to fire, if any, plus the consumed verdict.
func (m *Matcher) advance(sym key.Symbol) (*keymap.Binding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Bare modifier presses and Return are filtered from the buffer
	// content; Return still forces resolution below.
	if !m.ignored(sym) {
		m.pending.Add(sym)
	}

	// Nothing typed yet: an empty buffer is a prefix of every trigger, so
	// matching it would classify the whole registry as extendable (and
	// bare Return would fire an arbitrary binding). Stay in the empty
	// state instead.
	if m.pending.IsEmpty() {
		return nil, false
	}

	candidates, extendable := m.registry.Match(m.pending)

	switch {
	case (len(candidates) == 1 && !extendable) || sym.IsEnter():
		m.pending.Clear()
		if len(candidates) == 0 {
			// Return pressed with nothing matchable. Firing would
			// index an empty candidate list; treat as a no-op.
			return nil, false
		}
		return candidates[0], true
	case len(candidates) == 0:
		// Dead end: the input matches nothing and cannot be extended.
		m.pending.Clear()
		return nil, false
	default:
		// Still extendable, or ambiguous between duplicate triggers:
		// keep waiting for more keys (or Return). The key is held back
		// while a chord is in progress.
		return nil, true
	}
}

// fire runs a binding's handler, recovering from panics so a failing
// handler cannot corrupt matcher state.
func (m *Matcher) fire(b *keymap.Binding) {
	defer func() {
		if rec := recover(); rec != nil {
			m.mu.Lock()
			ph := m.panicHandler
			m.mu.Unlock()
			if ph != nil {
				ph(b, rec)
			}
		}
	}()
	b.Handler()
}

// notifyAndPost emits the once-per-call pending-keys notification and runs
// the post hooks.
func (m *Matcher) notifyAndPost(hooks []Hook, sym key.Symbol, consumed bool) {
	m.observers.publish(m.Pending())
	for _, h := range hooks {
		h.PostKey(sym, consumed)
	}
}

// ignored reports whether a symbol is filtered from the input buffer.
func (m *Matcher) ignored(sym key.Symbol) bool {
	return sym.IsBareModifier() || sym.IsEnter()
}

// Pending returns a snapshot of the in-progress key sequence.
func (m *Matcher) Pending() key.Sequence {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending.Clone()
}

// PendingString returns the in-progress sequence in display notation.
func (m *Matcher) PendingString() string {
	return key.FormatKeys(m.Pending())
}

// Reset clears the in-progress key sequence.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending.Clear()
}

// Notify subscribes an observer to pending-keys notifications. The observer
// is invoked synchronously at the end of every Process call.
func (m *Matcher) Notify(fn func(pending key.Sequence)) Subscription {
	return m.observers.subscribe(fn)
}

// Unsubscribe removes an observer subscription.
func (m *Matcher) Unsubscribe(sub Subscription) error {
	return m.observers.unsubscribe(sub)
}

// AddHook adds a key processing hook.
func (m *Matcher) AddHook(h Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, h)
}

// RemoveHook removes a previously added hook.
func (m *Matcher) RemoveHook(h Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, hk := range m.hooks {
		if hk == h {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return
		}
	}
}

// SetPanicHandler installs a callback invoked when a binding handler
// panics. By default panics are swallowed after the buffer is cleared.
func (m *Matcher) SetPanicHandler(fn func(b *keymap.Binding, recovered any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicHandler = fn
}
