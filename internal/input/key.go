package input

import (
	"fmt"
	"strings"

	"github.com/reditor/reditor/internal/renderer/backend"
)

// Chord is a normalized key press used as a keymap key.
type Chord struct {
	Key  backend.Key
	Rune rune
	Ctrl bool
}

// ChordOf builds a chord from a backend key event.
func ChordOf(ev backend.KeyEvent) Chord {
	return Chord{Key: ev.Key, Rune: ev.Rune, Ctrl: ev.Ctrl}
}

// namedKeys maps keymap-file key names to backend keys.
var namedKeys = map[string]backend.Key{
	"enter":     backend.KeyEnter,
	"esc":       backend.KeyEsc,
	"backspace": backend.KeyBackspace,
	"delete":    backend.KeyDelete,
	"tab":       backend.KeyTab,
	"up":        backend.KeyUp,
	"down":      backend.KeyDown,
	"left":      backend.KeyLeft,
	"right":     backend.KeyRight,
	"pageup":    backend.KeyPageUp,
	"pagedown":  backend.KeyPageDown,
	"home":      backend.KeyHome,
	"end":       backend.KeyEnd,
}

// ParseChord reads a keymap-file chord like "ctrl+s", "pageup" or "i".
// Bare runes keep their case, so "n" and "N" are distinct bindings;
// ctrl chords fold to lowercase because the terminal cannot tell
// Ctrl+N from Ctrl+Shift+N.
func ParseChord(s string) (Chord, error) {
	spec := strings.TrimSpace(s)
	var ch Chord
	if rest, ok := strings.CutPrefix(strings.ToLower(spec), "ctrl+"); ok {
		ch.Ctrl = true
		spec = rest
	}
	if key, ok := namedKeys[strings.ToLower(spec)]; ok {
		if ch.Ctrl {
			return Chord{}, fmt.Errorf("input: ctrl chords must use a letter, got %q", s)
		}
		ch.Key = key
		return ch, nil
	}
	runes := []rune(spec)
	if len(runes) != 1 {
		return Chord{}, fmt.Errorf("input: unknown key %q", s)
	}
	ch.Key = backend.KeyRune
	ch.Rune = runes[0]
	if ch.Ctrl {
		ch.Rune = []rune(strings.ToLower(string(ch.Rune)))[0]
	}
	return ch, nil
}

// String returns the keymap-file form of the chord.
func (c Chord) String() string {
	if c.Key == backend.KeyRune {
		if c.Ctrl {
			return "ctrl+" + string(c.Rune)
		}
		return string(c.Rune)
	}
	for name, key := range namedKeys {
		if key == c.Key {
			return name
		}
	}
	return "?"
}
