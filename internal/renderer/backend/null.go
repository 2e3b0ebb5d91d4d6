package backend

import (
	"sync"

	"github.com/reditor/reditor/internal/renderer/core"
)

// Null is an in-memory backend for tests. It records every draw call
// and serves scripted events.
type Null struct {
	mu      sync.Mutex
	width   int
	height  int
	runs    []core.Run
	clears  int
	shows   int
	cursorX int
	cursorY int
	visible bool
	events  chan Event
	done    chan struct{}
}

// NewNull creates a test backend with the given dimensions.
func NewNull(width, height int) *Null {
	return &Null{
		width:   width,
		height:  height,
		cursorX: -1,
		cursorY: -1,
		events:  make(chan Event, 64),
		done:    make(chan struct{}),
	}
}

// Init implements Backend.
func (n *Null) Init() error { return nil }

// Fini implements Backend; it unblocks PollEvent.
func (n *Null) Fini() {
	n.mu.Lock()
	defer n.mu.Unlock()
	select {
	case <-n.done:
	default:
		close(n.done)
	}
}

// Size implements Backend.
func (n *Null) Size() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.width, n.height
}

// Resize changes the reported size and queues a ResizeEvent.
func (n *Null) Resize(w, h int) {
	n.mu.Lock()
	n.width, n.height = w, h
	n.mu.Unlock()
	n.Post(ResizeEvent{Width: w, Height: h})
}

// Clear implements Backend.
func (n *Null) Clear(style core.Style) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clears++
	n.runs = n.runs[:0]
}

// WriteRun implements Backend.
func (n *Null) WriteRun(run core.Run) {
	n.mu.Lock()
	defer n.mu.Unlock()
	run.Text = append([]rune(nil), run.Text...)
	n.runs = append(n.runs, run)
}

// ShowCursor implements Backend.
func (n *Null) ShowCursor(x, y int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cursorX, n.cursorY, n.visible = x, y, true
}

// HideCursor implements Backend.
func (n *Null) HideCursor() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = false
}

// Show implements Backend.
func (n *Null) Show() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shows++
}

// PollEvent implements Backend.
func (n *Null) PollEvent() Event {
	select {
	case ev := <-n.events:
		return ev
	case <-n.done:
		return nil
	}
}

// Post queues an event for PollEvent.
func (n *Null) Post(ev Event) {
	select {
	case n.events <- ev:
	case <-n.done:
	}
}

// Runs returns a copy of the runs drawn since the last Clear.
func (n *Null) Runs() []core.Run {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]core.Run(nil), n.runs...)
}

// RunsOnRow returns the runs drawn on row y, in draw order.
func (n *Null) RunsOnRow(y int) []core.Run {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []core.Run
	for _, r := range n.runs {
		if r.Y == y {
			out = append(out, r)
		}
	}
	return out
}

// ShowCount returns how many times Show was called.
func (n *Null) ShowCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shows
}

// Cursor returns the cursor position and visibility.
func (n *Null) Cursor() (x, y int, visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursorX, n.cursorY, n.visible
}
