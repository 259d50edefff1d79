// Package key provides the canonical key symbol types and notation parsing
// for the keyseq binding engine.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (named keys, bare modifiers, or runes)
//   - Modifier: Represents modifier flags (Ctrl, Shift, Alt)
//   - Symbol: A single key press: base key plus modifier flags
//   - Sequence: An ordered series of symbols forming a chord
//
// # Binding Notation
//
// Trigger sequences are written in a vim-like notation:
//
//	"f"       - the F key
//	"A"       - Shift+A (uppercase implies Shift)
//	"<C-s>"   - Ctrl+S
//	"<S-x>"   - Shift+X
//	"<A-x>"   - Alt+X
//	"<C-s>f"  - Ctrl+S, then F
//
// Combo tokens are fixed-shape: a single modifier letter and a single key
// character. Multi-character key names inside angle brackets are not part of
// the notation and are skipped without producing a symbol.
package key
