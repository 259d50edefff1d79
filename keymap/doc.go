// Package keymap provides binding storage and lookup for the keyseq engine.
//
// A Binding maps a trigger sequence to a zero-argument handler. The Registry
// is an insertion-ordered, append-only collection of bindings: duplicate
// trigger sequences are permitted and all remain registered.
//
// # Matching
//
// Registry.Match classifies every binding against the current input in one
// scan. A binding whose trigger equals the input is an exact match; a binding
// whose trigger strictly extends the input is a prefix match, which signals
// that more keys could still complete a longer chord. The matcher in the
// root package drives the fire/wait/reset decision from that classification.
//
// # Configuration files
//
// Loader reads JSON keymap files in which bindings name actions; the host
// supplies the action table mapping names to handlers:
//
//	{
//	  "name": "editor",
//	  "bindings": [
//	    {"keys": "<C-s>", "action": "file.save", "description": "Save"}
//	  ]
//	}
package keymap
