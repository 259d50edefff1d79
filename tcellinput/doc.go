// Package tcellinput feeds terminal key events into a keyseq matcher.
//
// Translate converts a tcell key event into the canonical key.Symbol the
// matcher consumes; Run is a small event loop that polls a tcell screen and
// routes every key through a matcher, handing unconsumed keys back to the
// host.
package tcellinput
