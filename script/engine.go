package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyseq"
	"github.com/dshills/keyseq/key"
)

// Script errors
var (
	// ErrScript wraps Lua execution failures.
	ErrScript = errors.New("script error")

	// ErrClosed is returned when using an engine after Close.
	ErrClosed = errors.New("script engine is closed")
)

// Engine wraps one Lua state bound to a matcher.
type Engine struct {
	mu      sync.Mutex
	state   *lua.LState
	matcher *keyseq.Matcher
	closed  bool

	// errHandler receives errors from Lua handlers fired by the matcher,
	// which have no caller to return to.
	errHandler func(error)
}

// New creates an engine bound to the given matcher and registers the keyseq
// module in its Lua state.
func New(m *keyseq.Matcher) *Engine {
	e := &Engine{
		state:   lua.NewState(),
		matcher: m,
	}
	e.registerModule()
	return e
}

// SetErrorHandler installs a callback for errors raised by Lua binding
// handlers when they fire. By default such errors are dropped.
func (e *Engine) SetErrorHandler(fn func(error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errHandler = fn
}

// DoString executes Lua code.
func (e *Engine) DoString(code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if err := e.state.DoString(code); err != nil {
		return fmt.Errorf("%w: %v", ErrScript, err)
	}
	return nil
}

// DoFile executes a Lua script file.
func (e *Engine) DoFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if err := e.state.DoFile(path); err != nil {
		return fmt.Errorf("%w: %v", ErrScript, err)
	}
	return nil
}

// Close shuts down the Lua state. Bindings registered from scripts remain in
// the matcher but become no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.state.Close()
}

// registerModule installs the keyseq table into the Lua state.
func (e *Engine) registerModule() {
	mod := e.state.NewTable()
	e.state.SetFuncs(mod, map[string]lua.LGFunction{
		"bind":    e.luaBind,
		"pending": e.luaPending,
		"format":  e.luaFormat,
	})
	e.state.SetGlobal("keyseq", mod)
}

// luaBind implements keyseq.bind(keys, fn [, description]).
func (e *Engine) luaBind(L *lua.LState) int {
	spec := L.CheckString(1)
	fn := L.CheckFunction(2)
	desc := L.OptString(3, "")

	handler := func() {
		e.callHandler(fn)
	}

	if err := e.matcher.Bind(spec, handler, desc); err != nil {
		L.RaiseError("bind %q: %v", spec, err)
	}
	return 0
}

// callHandler invokes a Lua function with no arguments as a binding fires.
func (e *Engine) callHandler(fn *lua.LFunction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	err := e.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	})
	if err != nil && e.errHandler != nil {
		e.errHandler(fmt.Errorf("%w: %v", ErrScript, err))
	}
}

// luaPending implements keyseq.pending().
func (e *Engine) luaPending(L *lua.LState) int {
	L.Push(lua.LString(e.matcher.PendingString()))
	return 1
}

// luaFormat implements keyseq.format(keys).
func (e *Engine) luaFormat(L *lua.LState) int {
	spec := L.CheckString(1)
	seq, err := key.ParseSequence(spec)
	if err != nil {
		L.RaiseError("format %q: %v", spec, err)
	}
	L.Push(lua.LString(key.FormatKeys(seq)))
	return 1
}
