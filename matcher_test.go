package keyseq

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/keyseq/key"
	"github.com/dshills/keyseq/keymap"
)

func sym(r rune) key.Symbol {
	return key.NewRuneSymbol(r, key.ModNone)
}

func enter() key.Symbol {
	return key.NewSpecialSymbol(key.KeyEnter, key.ModNone)
}

func TestProcessUniqueExactFiresImmediately(t *testing.T) {
	m := New()
	var fired bool
	if err := m.Bind("a", func() { fired = true }, ""); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	consumed := m.Process(sym('a'))
	if !consumed {
		t.Error("Process() = false, want consumed")
	}
	if !fired {
		t.Error("handler did not fire")
	}
	if !m.Pending().IsEmpty() {
		t.Errorf("pending = %v, want empty after fire", m.Pending())
	}
}

func TestProcessAmbiguousPrefixWaits(t *testing.T) {
	m := New()
	var firedA, firedAB bool
	_ = m.Bind("a", func() { firedA = true }, "")
	_ = m.Bind("ab", func() { firedAB = true }, "")

	// "a" is an exact match but "ab" can still extend: no fire yet, the
	// key is held back.
	if !m.Process(sym('a')) {
		t.Error("Process(a) = false, want consumed while extendable")
	}
	if firedA || firedAB {
		t.Error("nothing should fire while the chord is still extendable")
	}
	want := key.NewSequenceFrom(sym('a'))
	if !m.Pending().Equals(want) {
		t.Errorf("pending = %v, want %v", m.Pending(), want)
	}

	// "b" completes the longer chord.
	if !m.Process(sym('b')) {
		t.Error("Process(b) = false, want consumed")
	}
	if !firedAB || firedA {
		t.Errorf("fired a=%v ab=%v, want only ab", firedA, firedAB)
	}
	if !m.Pending().IsEmpty() {
		t.Errorf("pending = %v, want empty after fire", m.Pending())
	}
}

func TestProcessDeadEndClearsAndReportsUnhandled(t *testing.T) {
	m := New()
	_ = m.Bind("ab", func() {}, "")

	if m.Process(sym('c')) {
		t.Error("Process(c) = true, want not consumed on dead end")
	}
	if !m.Pending().IsEmpty() {
		t.Errorf("pending = %v, want empty after dead end", m.Pending())
	}
}

func TestProcessDeadEndIdempotent(t *testing.T) {
	m := New()
	_ = m.Bind("ab", func() {}, "")

	for i := 0; i < 5; i++ {
		if m.Process(sym('z')) {
			t.Fatalf("Process(z) #%d = true, want not consumed", i)
		}
		if !m.Pending().IsEmpty() {
			t.Fatalf("pending not empty after dead end #%d", i)
		}
	}
}

func TestProcessReturnForcesFire(t *testing.T) {
	m := New()
	var firedA, firedAB bool
	_ = m.Bind("a", func() { firedA = true }, "")
	_ = m.Bind("ab", func() { firedAB = true }, "")

	m.Process(sym('a')) // pending, ambiguous
	if !m.Process(enter()) {
		t.Error("Process(Return) = false, want consumed")
	}
	if !firedA || firedAB {
		t.Errorf("fired a=%v ab=%v, want the exact match", firedA, firedAB)
	}
	if !m.Pending().IsEmpty() {
		t.Errorf("pending = %v, want empty after Return", m.Pending())
	}
}

func TestProcessReturnWithEmptyBufferIsNoOp(t *testing.T) {
	m := New()
	var fired bool
	_ = m.Bind("a", func() { fired = true }, "")

	if m.Process(enter()) {
		t.Error("Process(Return) = true, want not consumed with nothing pending")
	}
	if fired {
		t.Error("Return with an empty buffer must not fire anything")
	}
}

func TestProcessReturnNotStoredInBuffer(t *testing.T) {
	m := New()
	_ = m.Bind("ab", func() {}, "")

	m.Process(sym('a'))
	m.Process(enter()) // forces resolution, never stored

	if !m.Pending().IsEmpty() {
		t.Errorf("pending = %v, want empty", m.Pending())
	}
}

func TestProcessIgnoresBareModifiers(t *testing.T) {
	m := New()
	_ = m.Bind("ab", func() {}, "")

	if m.Process(key.NewSpecialSymbol(key.KeyCtrl, key.ModNone)) {
		t.Error("bare Ctrl with empty buffer should not be consumed")
	}
	if !m.Pending().IsEmpty() {
		t.Error("bare modifier must never enter the buffer")
	}

	// Mid-chord a bare modifier changes nothing either.
	m.Process(sym('a'))
	before := m.Pending()
	if !m.Process(key.NewSpecialSymbol(key.KeyShift, key.ModNone)) {
		t.Error("bare Shift mid-chord should keep the pending verdict")
	}
	if diff := cmp.Diff(before, m.Pending(), cmp.Comparer(func(a, b key.Sequence) bool {
		return a.Equals(b)
	})); diff != "" {
		t.Errorf("pending changed by bare modifier:\n%s", diff)
	}
}

func TestProcessDuplicateTriggersAmbiguousUntilReturn(t *testing.T) {
	m := New()
	var first, second bool
	_ = m.Bind("a", func() { first = true }, "")
	_ = m.Bind("a", func() { second = true }, "")

	// Two exact candidates: not "exactly one", so the set stays ambiguous.
	if !m.Process(sym('a')) {
		t.Error("Process(a) = false, want consumed while ambiguous")
	}
	if first || second {
		t.Error("nothing should fire while ambiguous")
	}

	// Return resolves; front-insertion puts the last-scanned exact match
	// first.
	if !m.Process(enter()) {
		t.Error("Process(Return) = false, want consumed")
	}
	if !second || first {
		t.Errorf("fired first=%v second=%v, want the later registration", first, second)
	}
}

func TestProcessNormalizesUppercase(t *testing.T) {
	m := New()
	var fired bool
	_ = m.Bind("A", func() { fired = true }, "")

	// Host delivers the uppercase rune without the Shift flag.
	m.Process(key.Symbol{Key: key.KeyRune, Rune: 'A'})
	if !fired {
		t.Error("uppercase rune should normalize to the Shift-carrying symbol")
	}
}

func TestProcessChordBinding(t *testing.T) {
	m := New()
	var fired bool
	_ = m.Bind("<C-s>f", func() { fired = true }, "")

	if !m.Process(key.NewRuneSymbol('s', key.ModCtrl)) {
		t.Error("Process(C-s) = false, want consumed while extendable")
	}
	if fired {
		t.Error("chord fired early")
	}
	if !m.Process(sym('f')) {
		t.Error("Process(f) = false, want consumed")
	}
	if !fired {
		t.Error("chord did not fire")
	}
}

func TestNotifyFiresExactlyOncePerProcess(t *testing.T) {
	m := New()
	_ = m.Bind("ab", func() {}, "")

	var calls int
	var last key.Sequence
	m.Notify(func(pending key.Sequence) {
		calls++
		last = pending
	})

	m.Process(sym('a'))
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if !last.Equals(key.NewSequenceFrom(sym('a'))) {
		t.Errorf("notified pending = %v, want [a]", last)
	}

	// Fires on no-op paths too.
	m.Process(key.NewSpecialSymbol(key.KeyCtrl, key.ModNone))
	if calls != 2 {
		t.Errorf("calls = %d, want 2 after ignored key", calls)
	}

	// And carries the just-cleared buffer after a fire.
	m.Process(sym('b'))
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if !last.IsEmpty() {
		t.Errorf("notified pending = %v, want empty after fire", last)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	m := New()
	_ = m.Bind("a", func() {}, "")

	var calls int
	sub := m.Notify(func(key.Sequence) { calls++ })

	m.Process(sym('a'))
	if err := m.Unsubscribe(sub); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}
	m.Process(sym('a'))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err := m.Unsubscribe(sub); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("second Unsubscribe() error = %v, want ErrSubscriptionNotFound", err)
	}
}

type recordingHook struct {
	pre     []key.Symbol
	post    []bool
	consume bool
}

func (h *recordingHook) PreKey(sym key.Symbol) bool {
	h.pre = append(h.pre, sym)
	return h.consume
}

func (h *recordingHook) PostKey(_ key.Symbol, consumed bool) {
	h.post = append(h.post, consumed)
}

func TestHooks(t *testing.T) {
	m := New()
	var fired bool
	_ = m.Bind("a", func() { fired = true }, "")

	hook := &recordingHook{consume: true}
	m.AddHook(hook)

	if !m.Process(sym('a')) {
		t.Error("Process() = false, want consumed by hook")
	}
	if fired {
		t.Error("consumed key must not reach the matcher")
	}
	if len(hook.pre) != 1 || len(hook.post) != 1 {
		t.Fatalf("hook calls pre=%d post=%d, want 1 and 1", len(hook.pre), len(hook.post))
	}

	m.RemoveHook(hook)
	m.Process(sym('a'))
	if !fired {
		t.Error("binding should fire after the hook is removed")
	}
	if len(hook.pre) != 1 {
		t.Error("removed hook still invoked")
	}
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	m := New()
	_ = m.Bind("a", func() { panic("boom") }, "")

	var recovered any
	m.SetPanicHandler(func(_ *keymap.Binding, rec any) { recovered = rec })

	if !m.Process(sym('a')) {
		t.Error("Process() = false, want consumed even when the handler panics")
	}
	if recovered != "boom" {
		t.Errorf("recovered = %v, want %q", recovered, "boom")
	}
	if !m.Pending().IsEmpty() {
		t.Error("buffer must be cleared before the handler runs")
	}

	// Matcher still works afterwards.
	var fired bool
	_ = m.Bind("b", func() { fired = true }, "")
	m.Process(sym('b'))
	if !fired {
		t.Error("matcher unusable after a handler panic")
	}
}

func TestResetClearsPending(t *testing.T) {
	m := New()
	_ = m.Bind("ab", func() {}, "")

	m.Process(sym('a'))
	m.Reset()
	if !m.Pending().IsEmpty() {
		t.Error("Reset did not clear the pending buffer")
	}
}

func TestPendingString(t *testing.T) {
	m := New()
	_ = m.Bind("<C-s>f", func() {}, "")

	m.Process(key.NewRuneSymbol('s', key.ModCtrl))
	if got := m.PendingString(); got != "^s" {
		t.Errorf("PendingString() = %q, want %q", got, "^s")
	}
}
