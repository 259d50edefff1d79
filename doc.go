// Package keyseq implements an incremental key-sequence matcher for
// vim-style chord bindings.
//
// A host registers handlers against trigger sequences written in binding
// notation ("<C-s>f") and feeds live key symbols to Matcher.Process one at a
// time. The matcher buffers keys while a longer chord is still possible,
// fires the handler of the first fully-matched binding, and resets on dead
// ends. Process returns whether the key was consumed, so the host can decide
// whether to suppress it from normal handling.
//
//	m := keyseq.New()
//	m.Bind("<C-s>f", saveFile, "Save file")
//
//	consumed := m.Process(sym)
//
// Every Process call emits exactly one pending-keys notification to the
// registered observers, carrying a snapshot of the in-progress sequence
// (empty after a fire or a dead end) for live UI feedback.
package keyseq
