package script

import (
	"errors"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyseq"
	"github.com/dshills/keyseq/key"
)

func TestEngineBindAndFire(t *testing.T) {
	m := keyseq.New()
	e := New(m)
	defer e.Close()

	err := e.DoString(`
		count = 0
		keyseq.bind("<C-s>f", function() count = count + 1 end, "save then find")
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	m.Process(key.NewRuneSymbol('s', key.ModCtrl))
	m.Process(key.NewRuneSymbol('f', key.ModNone))

	if got := e.state.GetGlobal("count"); got != lua.LNumber(1) {
		t.Errorf("count = %v, want 1", got)
	}

	// The binding carries its description through to the registry.
	b, err := m.Lookup(key.MustParseSequence("<C-s>f"))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if b.Description != "save then find" {
		t.Errorf("Description = %q, want %q", b.Description, "save then find")
	}
}

func TestEngineBindInvalidNotation(t *testing.T) {
	m := keyseq.New()
	e := New(m)
	defer e.Close()

	err := e.DoString(`keyseq.bind("<X-a>", function() end)`)
	if !errors.Is(err, ErrScript) {
		t.Errorf("DoString() error = %v, want ErrScript", err)
	}
}

func TestEngineFormat(t *testing.T) {
	m := keyseq.New()
	e := New(m)
	defer e.Close()

	err := e.DoString(`formatted = keyseq.format("<C-s>f")`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := e.state.GetGlobal("formatted"); got != lua.LString("^sf") {
		t.Errorf("formatted = %v, want ^sf", got)
	}
}

func TestEnginePending(t *testing.T) {
	m := keyseq.New()
	e := New(m)
	defer e.Close()

	if err := e.DoString(`keyseq.bind("ab", function() end)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	m.Process(key.NewRuneSymbol('a', key.ModNone))

	if err := e.DoString(`p = keyseq.pending()`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := e.state.GetGlobal("p"); got != lua.LString("a") {
		t.Errorf("pending = %v, want a", got)
	}
}

func TestEngineHandlerError(t *testing.T) {
	m := keyseq.New()
	e := New(m)
	defer e.Close()

	var handlerErr error
	e.SetErrorHandler(func(err error) { handlerErr = err })

	if err := e.DoString(`keyseq.bind("a", function() error("bad") end)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	m.Process(key.NewRuneSymbol('a', key.ModNone))

	if !errors.Is(handlerErr, ErrScript) {
		t.Errorf("handler error = %v, want ErrScript", handlerErr)
	}
}

func TestEngineClosed(t *testing.T) {
	m := keyseq.New()
	e := New(m)

	if err := e.DoString(`keyseq.bind("a", function() end)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	e.Close()

	if err := e.DoString(`x = 1`); !errors.Is(err, ErrClosed) {
		t.Errorf("DoString() after Close error = %v, want ErrClosed", err)
	}

	// Script bindings become no-ops, not crashes.
	if !m.Process(key.NewRuneSymbol('a', key.ModNone)) {
		t.Error("Process() = false, want consumed")
	}
}
