// Package backend abstracts the terminal the renderer draws into.
package backend

import "github.com/reditor/reditor/internal/renderer/core"

// Key identifies a non-text key.
type Key int

// Keys the editor reacts to.
const (
	KeyRune Key = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// Event is a terminal event. Concrete types are KeyEvent and
// ResizeEvent; a nil Event means the backend is shutting down.
type Event interface {
	isEvent()
}

// KeyEvent is a single key press. Printable input arrives as KeyRune
// with Rune set; Ctrl marks control chords (Ctrl+Q is KeyRune, 'q',
// Ctrl set).
type KeyEvent struct {
	Key  Key
	Rune rune
	Ctrl bool
}

func (KeyEvent) isEvent() {}

// ResizeEvent reports the new terminal dimensions.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}

// Backend is the terminal surface. Draw calls accumulate in the
// backend; nothing reaches the screen until Show, which the renderer
// calls exactly once per frame.
type Backend interface {
	// Init takes over the terminal.
	Init() error

	// Fini restores the terminal. Safe to call more than once.
	Fini()

	// Size returns the current width and height in cells.
	Size() (int, int)

	// Clear resets every cell to a space in the given style.
	Clear(style core.Style)

	// WriteRun draws one styled run of cells.
	WriteRun(run core.Run)

	// ShowCursor places the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()

	// Show flushes the accumulated frame to the terminal.
	Show()

	// PollEvent blocks for the next event. It returns nil after Fini.
	PollEvent() Event
}
