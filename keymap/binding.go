package keymap

import (
	"github.com/dshills/keyseq/key"
)

// Binding maps a trigger sequence to an action handler.
// Bindings are immutable once registered.
type Binding struct {
	// Keys is the notation the binding was registered with, when it came
	// from notation rather than a pre-built sequence.
	Keys string

	// Sequence is the parsed trigger.
	Sequence key.Sequence

	// Handler is the action to run when the trigger fires.
	Handler func()

	// Description documents the binding for help display.
	Description string
}

// Matches returns true if the binding's trigger equals the given sequence.
func (b *Binding) Matches(seq key.Sequence) bool {
	return b.Sequence.Equals(seq)
}

// ExtendedBy returns true if the given sequence is a proper prefix of the
// binding's trigger: typing more keys could still complete it.
func (b *Binding) ExtendedBy(seq key.Sequence) bool {
	return b.Sequence.HasStrictPrefix(seq)
}

// Display returns the trigger in display notation.
func (b *Binding) Display() string {
	return key.FormatKeys(b.Sequence)
}
