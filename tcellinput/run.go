package tcellinput

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyseq"
	"github.com/dshills/keyseq/key"
)

// Config configures the event loop.
type Config struct {
	// OnKey is called after every processed key with the consumed verdict.
	// Unconsumed keys are the host's to handle (e.g. insert into a text
	// field).
	OnKey func(sym key.Symbol, consumed bool)

	// OnResize is called when the terminal is resized.
	OnResize func(width, height int)

	// Stop decides whether a key event ends the loop, before it reaches
	// the matcher. Defaults to Ctrl-C.
	Stop func(ev *tcell.EventKey) bool
}

// DefaultConfig returns a configuration that stops on Ctrl-C.
func DefaultConfig() Config {
	return Config{
		Stop: func(ev *tcell.EventKey) bool {
			return ev.Key() == tcell.KeyCtrlC
		},
	}
}

// Run polls the screen for events and feeds every key through the matcher
// until the stop condition fires. The caller owns screen init and teardown.
func Run(screen tcell.Screen, m *keyseq.Matcher, cfg Config) error {
	if cfg.Stop == nil {
		cfg.Stop = DefaultConfig().Stop
	}

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if cfg.Stop(ev) {
				return nil
			}
			sym, ok := Translate(ev)
			if !ok {
				continue
			}
			consumed := m.Process(sym)
			if cfg.OnKey != nil {
				cfg.OnKey(sym, consumed)
			}
		case *tcell.EventResize:
			if cfg.OnResize != nil {
				cfg.OnResize(ev.Size())
			}
			screen.Sync()
		case nil:
			// Screen finalized.
			return nil
		}
	}
}
