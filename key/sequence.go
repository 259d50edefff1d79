package key

import "strings"

// Sequence represents an ordered series of symbols forming a chord.
// Examples: "gg", "<C-s>f".
type Sequence struct {
	// Symbols contains the key symbols in order.
	Symbols []Symbol
}

// NewSequence creates an empty sequence.
func NewSequence() Sequence {
	return Sequence{Symbols: make([]Symbol, 0, 4)} // most chords are short
}

// NewSequenceFrom creates a sequence from the given symbols.
func NewSequenceFrom(symbols ...Symbol) Sequence {
	return Sequence{Symbols: symbols}
}

// Len returns the number of symbols in the sequence.
func (s Sequence) Len() int {
	return len(s.Symbols)
}

// IsEmpty returns true if the sequence has no symbols.
func (s Sequence) IsEmpty() bool {
	return len(s.Symbols) == 0
}

// Add appends a symbol to the sequence.
func (s *Sequence) Add(sym Symbol) {
	s.Symbols = append(s.Symbols, sym)
}

// Clear removes all symbols from the sequence.
func (s *Sequence) Clear() {
	s.Symbols = s.Symbols[:0]
}

// Equals returns true if two sequences are element-wise identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s.Symbols) != len(other.Symbols) {
		return false
	}
	for i, sym := range s.Symbols {
		if !sym.Equals(other.Symbols[i]) {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix.Symbols) > len(s.Symbols) {
		return false
	}
	for i, sym := range prefix.Symbols {
		if !sym.Equals(s.Symbols[i]) {
			return false
		}
	}
	return true
}

// HasStrictPrefix returns true if prefix is a proper, order-preserving
// prefix of this sequence: strictly shorter, all corresponding symbols equal.
func (s Sequence) HasStrictPrefix(prefix Sequence) bool {
	return len(prefix.Symbols) < len(s.Symbols) && s.HasPrefix(prefix)
}

// Clone returns a copy of the sequence with its own backing storage.
func (s Sequence) Clone() Sequence {
	symbols := make([]Symbol, len(s.Symbols))
	copy(symbols, s.Symbols)
	return Sequence{Symbols: symbols}
}

// String returns a debug representation with symbols space-separated.
// For the display notation ("^s", "!x"), see FormatKeys.
func (s Sequence) String() string {
	if len(s.Symbols) == 0 {
		return ""
	}
	parts := make([]string, len(s.Symbols))
	for i, sym := range s.Symbols {
		parts[i] = sym.String()
	}
	return strings.Join(parts, " ")
}
