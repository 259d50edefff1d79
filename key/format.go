package key

import "strings"

// FormatSymbol formats one symbol for display. Modifier checks are ordered
// Control, Shift, Alt, first match wins:
//
//	^s      - Ctrl+S
//	A       - Shift+A (verbatim base name, no lowering)
//	!x      - Alt+X
//	f       - plain key
//
// This is a presentation path only; it does not round-trip through
// ParseSequence's angle-bracket notation.
func FormatSymbol(s Symbol) string {
	name := s.baseName()
	switch {
	case s.Mods.HasCtrl():
		return "^" + strings.ToLower(name)
	case s.Mods.HasShift():
		return name
	case s.Mods.HasAlt():
		return "!" + strings.ToLower(name)
	default:
		return strings.ToLower(name)
	}
}

// FormatKeys formats a sequence for display, concatenating the symbols in
// order: parsing "<C-s>f" and formatting the result yields "^sf".
func FormatKeys(seq Sequence) string {
	var sb strings.Builder
	for _, sym := range seq.Symbols {
		sb.WriteString(FormatSymbol(sym))
	}
	return sb.String()
}
