package key

import (
	"errors"
	"fmt"
	"unicode"
)

// Parse errors
var (
	// ErrUnrecognisedLetter is returned for a token that is not a known
	// key character.
	ErrUnrecognisedLetter = errors.New("unrecognised letter")

	// ErrUnrecognisedModifier is returned for a combo token whose modifier
	// letter is not C, S or A.
	ErrUnrecognisedModifier = errors.New("unrecognised modifier")
)

// ParseSequence parses a binding notation string into a Sequence.
//
// The notation is a concatenation of tokens:
//
//   - A bare character is that key. Uppercase implies Shift: "A" parses to
//     Shift+A.
//   - "<C-x>", "<S-x>", "<A-x>" are Ctrl/Shift/Alt plus the key x. The case
//     of x still implies Shift, so "<C-S>" is Ctrl+Shift+S.
//
// Combo tokens are fixed-shape: exactly one modifier letter and one key
// character. A bracketed token of any other length produces no symbol and no
// error. On malformed input ParseSequence returns an empty sequence and the
// error; it never returns a partial result.
func ParseSequence(spec string) (Sequence, error) {
	seq := NewSequence()

	var acc []rune
	inCombo := false

	for _, r := range spec {
		switch {
		case r == '<' && !inCombo:
			inCombo = true
			acc = append(acc[:0], r)
			continue
		case inCombo:
			acc = append(acc, r)
			if r != '>' {
				continue
			}
			inCombo = false
		default:
			// Outside a combo every character is its own token.
			acc = append(acc[:0], r)
		}

		sym, ok, err := parseToken(acc)
		if err != nil {
			return Sequence{}, err
		}
		if ok {
			seq.Add(sym)
		}
	}

	// An unterminated combo never finalizes and contributes nothing.
	return seq, nil
}

// MustParseSequence parses a binding notation string and panics on error.
// Use only for known-valid notation in initialization code.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic("invalid key notation: " + spec + ": " + err.Error())
	}
	return seq
}

// parseToken converts a finalized token into a symbol. Tokens that are
// neither a single character nor a full five-rune combo are skipped without
// a symbol and without an error.
func parseToken(tok []rune) (Symbol, bool, error) {
	switch len(tok) {
	case 1:
		sym, err := parseKeyRune(tok[0], ModNone)
		if err != nil {
			return Symbol{}, false, err
		}
		return sym, true, nil
	case 5:
		// Shape <X-k>: modifier letter at index 1, key at index 3.
		mod, ok := comboModifier(tok[1])
		if !ok {
			return Symbol{}, false, fmt.Errorf("%w: %q", ErrUnrecognisedModifier, string(tok[1]))
		}
		sym, err := parseKeyRune(tok[3], mod)
		if err != nil {
			return Symbol{}, false, err
		}
		return sym, true, nil
	default:
		return Symbol{}, false, nil
	}
}

// parseKeyRune parses a single key character. Letters and digits are the
// recognized key characters; uppercase letters carry an implicit Shift.
func parseKeyRune(r rune, mods Modifier) (Symbol, error) {
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return Symbol{}, fmt.Errorf("%w: %q", ErrUnrecognisedLetter, string(r))
	}
	return NewRuneSymbol(r, mods), nil
}
