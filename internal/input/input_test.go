package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reditor/reditor/internal/renderer/backend"
)

func TestModeTransitions(t *testing.T) {
	tests := []struct {
		from, to Mode
		ok       bool
	}{
		{ModeNormal, ModeInsert, true},
		{ModeNormal, ModeSearching, true},
		{ModeInsert, ModeNormal, true},
		{ModeSearching, ModeNormal, true},
		{ModeInsert, ModeSearching, false},
		{ModeSearching, ModeInsert, false},
		{ModeNormal, ModeNormal, true},
	}
	for _, tt := range tests {
		got, err := tt.from.Transition(tt.to)
		if tt.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tt.from, tt.to, err)
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("%s -> %s: expected error", tt.from, tt.to)
			}
			if got != tt.from {
				t.Errorf("%s -> %s: rejected transition changed mode to %s", tt.from, tt.to, got)
			}
		}
	}
}

func TestDefaultBindings(t *testing.T) {
	k := Default()

	tests := []struct {
		name string
		mode Mode
		ev   backend.KeyEvent
		want Op
	}{
		{"arrows move in normal", ModeNormal, backend.KeyEvent{Key: backend.KeyLeft}, OpMoveLeft},
		{"arrows move in insert", ModeInsert, backend.KeyEvent{Key: backend.KeyDown}, OpMoveDown},
		{"i enters insert", ModeNormal, backend.KeyEvent{Key: backend.KeyRune, Rune: 'i'}, OpEnterInsert},
		{"slash starts search", ModeNormal, backend.KeyEvent{Key: backend.KeyRune, Rune: '/'}, OpStartSearch},
		{"n next match", ModeNormal, backend.KeyEvent{Key: backend.KeyRune, Rune: 'n'}, OpSearchNext},
		{"shift n prev match", ModeNormal, backend.KeyEvent{Key: backend.KeyRune, Rune: 'N'}, OpSearchPrev},
		{"ctrl q quits", ModeInsert, backend.KeyEvent{Key: backend.KeyRune, Rune: 'q', Ctrl: true}, OpQuit},
		{"ctrl s saves", ModeNormal, backend.KeyEvent{Key: backend.KeyRune, Rune: 's', Ctrl: true}, OpSave},
		{"esc leaves insert", ModeInsert, backend.KeyEvent{Key: backend.KeyEsc}, OpExitToNormal},
		{"enter confirms search", ModeSearching, backend.KeyEvent{Key: backend.KeyEnter}, OpSearchConfirm},
		{"esc cancels search", ModeSearching, backend.KeyEvent{Key: backend.KeyEsc}, OpSearchCancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.Translate(tt.mode, tt.ev); got.Op != tt.want {
				t.Errorf("Translate = %v, want %v", got.Op, tt.want)
			}
		})
	}
}

func TestTranslateFallbacks(t *testing.T) {
	k := Default()
	x := backend.KeyEvent{Key: backend.KeyRune, Rune: 'x'}

	if got := k.Translate(ModeInsert, x); got.Op != OpInsertRune || got.Rune != 'x' {
		t.Errorf("insert fallback = %+v", got)
	}
	if got := k.Translate(ModeSearching, x); got.Op != OpSearchRune || got.Rune != 'x' {
		t.Errorf("search fallback = %+v", got)
	}
	if got := k.Translate(ModeNormal, x); got.Op != OpNone {
		t.Errorf("normal fallback = %+v", got)
	}
}

func TestIsMotion(t *testing.T) {
	motions := []Op{OpMoveLeft, OpMoveRight, OpMoveUp, OpMoveDown, OpPageUp, OpPageDown, OpLineStart, OpLineEnd}
	for _, op := range motions {
		if !(Command{Op: op}).IsMotion() {
			t.Errorf("%v should be motion", op)
		}
	}
	others := []Op{OpInsertRune, OpDeleteBack, OpSave, OpQuit, OpSearchNext, OpNone}
	for _, op := range others {
		if (Command{Op: op}).IsMotion() {
			t.Errorf("%v should not be motion", op)
		}
	}
}

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
		err  bool
	}{
		{"i", Chord{Key: backend.KeyRune, Rune: 'i'}, false},
		{"N", Chord{Key: backend.KeyRune, Rune: 'N'}, false},
		{"ctrl+s", Chord{Key: backend.KeyRune, Rune: 's', Ctrl: true}, false},
		{"Ctrl+Q", Chord{Key: backend.KeyRune, Rune: 'q', Ctrl: true}, false},
		{"pageup", Chord{Key: backend.KeyPageUp}, false},
		{"Enter", Chord{Key: backend.KeyEnter}, false},
		{"ctrl+enter", Chord{}, true},
		{"meta+x", Chord{}, true},
	}
	for _, tt := range tests {
		got, err := ParseChord(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("ParseChord(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseChord(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChord(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestKeymapLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymap.yaml")
	content := "normal:\n  ctrl+k: save\ninsert:\n  ctrl+d: delete-forward\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	k := Default()
	if err := k.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	if op, ok := k.Lookup(ModeNormal, Chord{Key: backend.KeyRune, Rune: 'k', Ctrl: true}); !ok || op != OpSave {
		t.Errorf("ctrl+k = %v %v", op, ok)
	}
	if op, ok := k.Lookup(ModeInsert, Chord{Key: backend.KeyRune, Rune: 'd', Ctrl: true}); !ok || op != OpDeleteForward {
		t.Errorf("ctrl+d = %v %v", op, ok)
	}
	// Defaults survive the overlay.
	if op, _ := k.Lookup(ModeNormal, Chord{Key: backend.KeyRune, Rune: 'i'}); op != OpEnterInsert {
		t.Errorf("default binding lost: %v", op)
	}
}

func TestKeymapLoadFileRejectsUnknowns(t *testing.T) {
	dir := t.TempDir()

	badOp := filepath.Join(dir, "badop.yaml")
	os.WriteFile(badOp, []byte("normal:\n  x: frobnicate\n"), 0o644)
	if err := Default().LoadFile(badOp); err == nil {
		t.Error("unknown operation accepted")
	}

	badKey := filepath.Join(dir, "badkey.yaml")
	os.WriteFile(badKey, []byte("normal:\n  hyper+x: save\n"), 0o644)
	if err := Default().LoadFile(badKey); err == nil {
		t.Error("unknown key accepted")
	}
}
