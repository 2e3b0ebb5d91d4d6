package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reditor/reditor/internal/renderer/backend"
)

// Keymap resolves key chords to operations per mode. Lookups miss for
// unbound chords; the per-mode fallbacks in Translate decide what an
// unbound printable key means.
type Keymap struct {
	bindings map[Mode]map[Chord]Op
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: map[Mode]map[Chord]Op{
		ModeNormal:    {},
		ModeInsert:    {},
		ModeSearching: {},
	}}
}

// Bind maps a chord to an operation in one mode.
func (k *Keymap) Bind(m Mode, ch Chord, op Op) {
	k.bindings[m][ch] = op
}

// Lookup resolves a chord in one mode.
func (k *Keymap) Lookup(m Mode, ch Chord) (Op, bool) {
	op, ok := k.bindings[m][ch]
	return op, ok
}

// Default returns the built-in bindings.
func Default() *Keymap {
	k := NewKeymap()

	motion := map[Chord]Op{
		{Key: backend.KeyUp}:       OpMoveUp,
		{Key: backend.KeyDown}:     OpMoveDown,
		{Key: backend.KeyLeft}:     OpMoveLeft,
		{Key: backend.KeyRight}:    OpMoveRight,
		{Key: backend.KeyPageUp}:   OpPageUp,
		{Key: backend.KeyPageDown}: OpPageDown,
		{Key: backend.KeyHome}:     OpLineStart,
		{Key: backend.KeyEnd}:      OpLineEnd,
	}
	for ch, op := range motion {
		k.Bind(ModeNormal, ch, op)
		k.Bind(ModeInsert, ch, op)
	}

	ctrl := func(r rune) Chord { return Chord{Key: backend.KeyRune, Rune: r, Ctrl: true} }
	r := func(r rune) Chord { return Chord{Key: backend.KeyRune, Rune: r} }

	// Global chords work from both editing modes.
	for _, m := range []Mode{ModeNormal, ModeInsert} {
		k.Bind(m, ctrl('q'), OpQuit)
		k.Bind(m, ctrl('s'), OpSave)
		k.Bind(m, ctrl('b'), OpToggleSidebar)
		k.Bind(m, ctrl('n'), OpNextTab)
		k.Bind(m, ctrl('p'), OpPrevTab)
		k.Bind(m, ctrl('w'), OpCloseTab)
	}

	k.Bind(ModeNormal, r('i'), OpEnterInsert)
	k.Bind(ModeNormal, r('/'), OpStartSearch)
	k.Bind(ModeNormal, r('n'), OpSearchNext)
	k.Bind(ModeNormal, r('N'), OpSearchPrev)
	k.Bind(ModeNormal, r('g'), OpDocStart)
	k.Bind(ModeNormal, r('G'), OpDocEnd)
	k.Bind(ModeNormal, Chord{Key: backend.KeyDelete}, OpDeleteForward)

	k.Bind(ModeInsert, Chord{Key: backend.KeyEsc}, OpExitToNormal)
	k.Bind(ModeInsert, Chord{Key: backend.KeyEnter}, OpInsertNewline)
	k.Bind(ModeInsert, Chord{Key: backend.KeyTab}, OpInsertTab)
	k.Bind(ModeInsert, Chord{Key: backend.KeyBackspace}, OpDeleteBack)
	k.Bind(ModeInsert, Chord{Key: backend.KeyDelete}, OpDeleteForward)

	k.Bind(ModeSearching, Chord{Key: backend.KeyEsc}, OpSearchCancel)
	k.Bind(ModeSearching, Chord{Key: backend.KeyEnter}, OpSearchConfirm)
	k.Bind(ModeSearching, Chord{Key: backend.KeyBackspace}, OpSearchDeleteRune)
	k.Bind(ModeSearching, Chord{Key: backend.KeyDown}, OpSearchNext)
	k.Bind(ModeSearching, Chord{Key: backend.KeyUp}, OpSearchPrev)

	return k
}

// keymapFile is the YAML shape of a keymap override file:
//
//	normal:
//	  ctrl+k: save
//	insert:
//	  ctrl+d: delete-forward
type keymapFile struct {
	Normal    map[string]string `yaml:"normal"`
	Insert    map[string]string `yaml:"insert"`
	Searching map[string]string `yaml:"searching"`
}

// LoadFile overlays bindings from a YAML file onto the keymap.
func (k *Keymap) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("keymap: read %s: %w", path, err)
	}
	var file keymapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("keymap: parse %s: %w", path, err)
	}
	sections := map[Mode]map[string]string{
		ModeNormal:    file.Normal,
		ModeInsert:    file.Insert,
		ModeSearching: file.Searching,
	}
	for mode, section := range sections {
		for chordSpec, opName := range section {
			ch, err := ParseChord(chordSpec)
			if err != nil {
				return err
			}
			op, ok := OpByName(opName)
			if !ok {
				return fmt.Errorf("keymap: unknown operation %q", opName)
			}
			k.Bind(mode, ch, op)
		}
	}
	return nil
}

// Translate resolves a key event in the given mode into a command.
// Unbound printable keys insert in insert mode and extend the pattern
// in search mode; in normal mode they do nothing.
func (k *Keymap) Translate(m Mode, ev backend.KeyEvent) Command {
	if op, ok := k.Lookup(m, ChordOf(ev)); ok {
		return Command{Op: op}
	}
	if ev.Key == backend.KeyRune && !ev.Ctrl {
		switch m {
		case ModeInsert:
			return Command{Op: OpInsertRune, Rune: ev.Rune}
		case ModeSearching:
			return Command{Op: OpSearchRune, Rune: ev.Rune}
		}
	}
	return Command{Op: OpNone}
}
