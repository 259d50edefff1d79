// Package script embeds a Lua interpreter for declaring key bindings from
// scripts.
//
// An Engine exposes a keyseq module to Lua code:
//
//	keyseq.bind("<C-s>f", function() ... end, "Save file")
//	keyseq.pending()        -- current pending keys in display notation
//	keyseq.format("<C-s>")  -- "^s"
//
// Lua handlers are wrapped as Go closures and fire through the matcher like
// any other binding. One Engine owns one Lua state; all calls into the state
// are serialized.
package script
