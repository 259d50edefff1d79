package tcellinput

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyseq/key"
)

// Translate converts a tcell key event into a key symbol. It returns false
// for events the matcher has no representation for (media keys, control
// sequences outside the letter range).
func Translate(ev *tcell.EventKey) (key.Symbol, bool) {
	mods := translateMods(ev.Modifiers())

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		return key.NewRuneSymbol(ev.Rune(), mods), true
	case tcell.KeyEnter:
		return key.NewSpecialSymbol(key.KeyEnter, mods), true
	case tcell.KeyEsc:
		return key.NewSpecialSymbol(key.KeyEscape, mods), true
	case tcell.KeyTab:
		return key.NewSpecialSymbol(key.KeyTab, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialSymbol(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialSymbol(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.NewSpecialSymbol(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.NewSpecialSymbol(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialSymbol(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialSymbol(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialSymbol(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewSpecialSymbol(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialSymbol(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialSymbol(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialSymbol(key.KeyRight, mods), true
	default:
		if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
			return key.NewSpecialSymbol(key.KeyF1+key.Key(k-tcell.KeyF1), mods), true
		}
		// Terminals report Ctrl+letter as a C0 control key; collapse it
		// back to rune + Ctrl so it matches parsed "<C-x>" triggers.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			r := 'a' + rune(k-tcell.KeyCtrlA)
			return key.NewRuneSymbol(r, mods.With(key.ModCtrl)), true
		}
		return key.Symbol{}, false
	}
}

func translateMods(tm tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if tm&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if tm&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if tm&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	return mods
}
