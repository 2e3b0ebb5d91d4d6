package backend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/reditor/reditor/internal/renderer/core"
)

// Terminal is the tcell-backed terminal surface. tcell keeps its own
// cell buffer and diffs it on Show, so a frame costs one write burst no
// matter how many runs composed it.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates an uninitialized terminal backend.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Init implements Backend.
func (t *Terminal) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("backend: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("backend: init screen: %w", err)
	}
	t.screen = screen
	return nil
}

// Fini implements Backend.
func (t *Terminal) Fini() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// Size implements Backend.
func (t *Terminal) Size() (int, int) {
	if t.screen == nil {
		return 0, 0
	}
	return t.screen.Size()
}

// Clear implements Backend.
func (t *Terminal) Clear(style core.Style) {
	t.screen.SetStyle(toTcell(style))
	t.screen.Fill(' ', toTcell(style))
}

// WriteRun implements Backend. Wide runes advance by their display
// width; tcell owns the trailing cell.
func (t *Terminal) WriteRun(run core.Run) {
	st := toTcell(run.Style)
	x := run.X
	for _, r := range run.Text {
		t.screen.SetContent(x, run.Y, r, nil, st)
		w := uniseg.StringWidth(string(r))
		if w < 1 {
			w = 1
		}
		x += w
	}
}

// ShowCursor implements Backend.
func (t *Terminal) ShowCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

// HideCursor implements Backend.
func (t *Terminal) HideCursor() {
	t.screen.HideCursor()
}

// Show implements Backend.
func (t *Terminal) Show() {
	t.screen.Show()
}

// PollEvent implements Backend. Events the editor does not handle are
// swallowed here so the loop above stays simple.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			return ResizeEvent{Width: w, Height: h}
		case *tcell.EventKey:
			if ke, ok := translateKey(ev); ok {
				return ke
			}
		}
	}
}

func translateKey(ev *tcell.EventKey) (KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return KeyEvent{Key: KeyRune, Rune: ev.Rune()}, true
	case tcell.KeyEnter:
		return KeyEvent{Key: KeyEnter}, true
	case tcell.KeyEscape:
		return KeyEvent{Key: KeyEsc}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Key: KeyBackspace}, true
	case tcell.KeyDelete:
		return KeyEvent{Key: KeyDelete}, true
	case tcell.KeyTab:
		return KeyEvent{Key: KeyTab}, true
	case tcell.KeyUp:
		return KeyEvent{Key: KeyUp}, true
	case tcell.KeyDown:
		return KeyEvent{Key: KeyDown}, true
	case tcell.KeyLeft:
		return KeyEvent{Key: KeyLeft}, true
	case tcell.KeyRight:
		return KeyEvent{Key: KeyRight}, true
	case tcell.KeyPgUp:
		return KeyEvent{Key: KeyPageUp}, true
	case tcell.KeyPgDn:
		return KeyEvent{Key: KeyPageDown}, true
	case tcell.KeyHome:
		return KeyEvent{Key: KeyHome}, true
	case tcell.KeyEnd:
		return KeyEvent{Key: KeyEnd}, true
	}
	// Ctrl+letter arrives as a dedicated key code.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyEvent{
			Key:  KeyRune,
			Rune: rune('a' + (k - tcell.KeyCtrlA)),
			Ctrl: true,
		}, true
	}
	return KeyEvent{}, false
}

func toTcell(s core.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(s.FG.R), int32(s.FG.G), int32(s.FG.B))).
		Background(tcell.NewRGBColor(int32(s.BG.R), int32(s.BG.G), int32(s.BG.B)))
	if s.Bold {
		st = st.Bold(true)
	}
	return st
}
