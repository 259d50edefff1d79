// Package main is an interactive demo for the keyseq binding engine.
//
// It opens a terminal screen, registers a few chords (plus any keymap file
// or Lua script given on the command line) and shows the live pending-keys
// buffer as you type. Ctrl-C quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyseq"
	"github.com/dshills/keyseq/key"
	"github.com/dshills/keyseq/keymap"
	"github.com/dshills/keyseq/script"
	"github.com/dshills/keyseq/tcellinput"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		keymapPath  string
		scriptPath  string
		showVersion bool
	)
	flag.StringVar(&keymapPath, "keymap", "", "Path to a JSON keymap file")
	flag.StringVar(&scriptPath, "script", "", "Path to a Lua binding script")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("keyseq", version)
		return 0
	}

	ui := &demoUI{}
	matcher := keyseq.New()

	registerDemoBindings(matcher, ui)

	if keymapPath != "" {
		if err := loadKeymap(matcher, ui, keymapPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if scriptPath != "" {
		engine := script.New(matcher)
		defer engine.Close()
		if err := engine.DoFile(scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	ui.screen = screen

	// Redraw on every processed key with the pending buffer snapshot.
	matcher.Notify(func(pending key.Sequence) {
		ui.setPending(key.FormatKeys(pending))
	})

	ui.draw()

	err = tcellinput.Run(screen, matcher, tcellinput.Config{
		OnKey: func(sym key.Symbol, consumed bool) {
			ui.setLastKey(sym.String(), consumed)
		},
		OnResize: func(_, _ int) {
			ui.draw()
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// registerDemoBindings wires a handful of chords so the demo does something
// out of the box.
func registerDemoBindings(m *keyseq.Matcher, ui *demoUI) {
	bindings := []struct {
		keys string
		desc string
	}{
		{"<C-s>f", "Chord: Ctrl-S then F"},
		{"gg", "Chord: G G"},
		{"g", "Single G (ambiguous with gg)"},
		{"A", "Shift-A"},
		{"<A-x>", "Alt-X"},
	}
	for _, b := range bindings {
		desc := b.desc
		if err := m.Bind(b.keys, func() { ui.setFired(desc) }, desc); err != nil {
			// Demo bindings are known-valid notation.
			panic(err)
		}
	}
}

// loadKeymap applies a JSON keymap file; every action shows its own name.
func loadKeymap(m *keyseq.Matcher, ui *demoUI, path string) error {
	loader := keymap.NewLoader()
	km, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	actions := make(map[string]func(), len(km.Bindings))
	for _, spec := range km.Bindings {
		name := spec.Action
		actions[name] = func() { ui.setFired(name) }
	}
	return km.Apply(m.Registry(), actions)
}

// demoUI draws the three status lines of the demo.
type demoUI struct {
	mu      sync.Mutex
	screen  tcell.Screen
	pending string
	lastKey string
	fired   string
}

func (u *demoUI) setPending(s string) {
	u.mu.Lock()
	u.pending = s
	u.mu.Unlock()
	u.draw()
}

func (u *demoUI) setLastKey(s string, consumed bool) {
	u.mu.Lock()
	if consumed {
		u.lastKey = s + " (consumed)"
	} else {
		u.lastKey = s
	}
	u.mu.Unlock()
	u.draw()
}

func (u *demoUI) setFired(s string) {
	u.mu.Lock()
	u.fired = s
	u.mu.Unlock()
	u.draw()
}

func (u *demoUI) draw() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.screen == nil {
		return
	}
	u.screen.Clear()
	drawText(u.screen, 0, 0, "keyseq demo - Ctrl-C to quit")
	drawText(u.screen, 0, 2, "pending: "+u.pending)
	drawText(u.screen, 0, 3, "last key: "+u.lastKey)
	drawText(u.screen, 0, 4, "fired: "+u.fired)
	u.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
