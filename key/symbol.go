package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Symbol represents a single key press: a base key identity plus modifier
// flags. Two symbols are equal iff base key, rune and modifier set are all
// identical.
type Symbol struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune symbols.
	Rune rune

	// Mods contains the active modifier flags.
	Mods Modifier
}

// NewRuneSymbol creates a symbol for a character key. An uppercase letter
// always carries the Shift flag: case implies shift.
func NewRuneSymbol(r rune, mods Modifier) Symbol {
	if unicode.IsUpper(r) {
		mods = mods.With(ModShift)
	}
	return Symbol{Key: KeyRune, Rune: r, Mods: mods}
}

// NewSpecialSymbol creates a symbol for a named (non-character) key.
func NewSpecialSymbol(k Key, mods Modifier) Symbol {
	return Symbol{Key: k, Mods: mods}
}

// Normalize returns the symbol with the case-implies-shift invariant
// enforced. Hosts that deliver an uppercase rune without the Shift flag get
// the same symbol a parsed binding produces.
func (s Symbol) Normalize() Symbol {
	if s.Key == KeyRune && unicode.IsUpper(s.Rune) {
		s.Mods = s.Mods.With(ModShift)
	}
	return s
}

// IsRune returns true if this is a character key symbol.
func (s Symbol) IsRune() bool {
	return s.Key == KeyRune && s.Rune != 0
}

// IsEnter returns true if the base key is Return, regardless of modifiers.
func (s Symbol) IsEnter() bool {
	return s.Key == KeyEnter
}

// IsBareModifier returns true for a modifier key pressed on its own.
func (s Symbol) IsBareModifier() bool {
	return s.Key.IsModifierKey()
}

// Equals returns true if two symbols represent the same key press.
func (s Symbol) Equals(other Symbol) bool {
	return s.Key == other.Key && s.Rune == other.Rune && s.Mods == other.Mods
}

// baseName returns the undecorated name of the base key: the rune itself for
// character symbols, the key name otherwise.
func (s Symbol) baseName() string {
	if s.Key == KeyRune {
		return string(s.Rune)
	}
	return s.Key.String()
}

// String returns a debug representation like "a", "C-s" or "Return".
func (s Symbol) String() string {
	var parts []string
	if s.Mods.HasCtrl() {
		parts = append(parts, "C")
	}
	if s.Mods.HasAlt() {
		parts = append(parts, "A")
	}
	if s.Mods.HasShift() && !s.IsRune() {
		parts = append(parts, "S")
	}
	parts = append(parts, s.baseName())
	return strings.Join(parts, "-")
}

// GoString implements fmt.GoStringer for debugging.
func (s Symbol) GoString() string {
	return fmt.Sprintf("Symbol{Key: %s, Rune: %q, Mods: %s}",
		s.Key.String(), s.Rune, s.Mods.String())
}
