package app

import (
	"github.com/reditor/reditor/internal/input"
	"github.com/reditor/reditor/internal/renderer"
	"github.com/reditor/reditor/internal/renderer/backend"
)

// eventQueueSize bounds how many unprocessed events the poll goroutine
// can buffer ahead of the loop.
const eventQueueSize = 64

// Run drives the editor until quit. One goroutine polls the backend;
// this goroutine drains the queue in batches, applies every queued
// event, then renders exactly once per batch. A batch of held-down
// arrow keys therefore costs one frame, and a wakeup with nothing to
// apply (a resize, a file-tree change) still refreshes the screen.
func (a *Application) Run() error {
	events := make(chan backend.Event, eventQueueSize)
	go func() {
		defer close(events)
		for {
			ev := a.be.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var stale <-chan struct{}
	if a.watcher != nil {
		stale = a.watcher.Stale()
	}

	a.render()
	for {
		// Block until something happens.
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.handleBatch(ev, events); err != nil {
				return err
			}
		case <-stale:
			a.tree.Refresh()
		}
		a.render()
	}
}

// handleBatch applies the first event and then everything else already
// queued, without blocking. Events apply strictly in arrival order;
// batching defers the render to the end and, within an unbroken run of
// motion keys, the viewport follow to the run's last motion.
func (a *Application) handleBatch(first backend.Event, events <-chan backend.Event) error {
	batch := []backend.Event{first}
drain:
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				break drain
			}
			batch = append(batch, ev)
		default:
			break drain
		}
	}

	for i, ev := range batch {
		a.deferFollow = a.motionFollows(batch, i)
		err := a.handleEvent(ev)
		a.deferFollow = false
		if err != nil {
			return err
		}
	}
	return nil
}

// motionFollows reports whether batch[i] is a motion key immediately
// followed by another motion key. Motions never change mode or focus,
// so translating the next event ahead of time is sound; any prompt or
// focus state that would reroute keys disables the lookahead.
func (a *Application) motionFollows(batch []backend.Event, i int) bool {
	if a.sidebarFocus || a.pendingQuit || i+1 >= len(batch) {
		return false
	}
	cur, ok := batch[i].(backend.KeyEvent)
	if !ok || !a.keymap.Translate(a.mode, cur).IsMotion() {
		return false
	}
	next, ok := batch[i+1].(backend.KeyEvent)
	return ok && a.keymap.Translate(a.mode, next).IsMotion()
}

// render assembles a frame from the current state and draws it.
func (a *Application) render() {
	f := a.buildFrame()
	a.rend.Render(f)
}

func (a *Application) buildFrame() *renderer.Frame {
	f := &renderer.Frame{
		Tabs: a.tabInfos(),
	}

	if a.tree != nil && a.tree.Visible() {
		f.SidebarWidth = a.tree.Width()
		f.Sidebar, f.SidebarTop = a.sidebarRows()
	}

	doc := a.ws.Active()
	if doc == nil {
		var recent []string
		if a.session != nil {
			recent = a.session.RecentFiles()
		}
		f.Welcome = welcomeScreen(recent)
		f.Status = a.statusInfo(nil)
		return f
	}

	f.Lines = doc
	f.Spans = doc
	f.Matches = doc
	f.Cursor = doc.Cursor().Position()
	f.View = doc.View()
	f.Status = a.statusInfo(doc)
	return f
}

func (a *Application) tabInfos() []renderer.TabInfo {
	tabs := make([]renderer.TabInfo, 0, a.ws.Len())
	for i, d := range a.ws.Documents() {
		tabs = append(tabs, renderer.TabInfo{
			Name:     d.Name(),
			Active:   i == a.ws.ActiveIndex(),
			Modified: d.Buffer().Dirty(),
		})
	}
	return tabs
}

// sidebarRows windows the flattened tree so the selection stays
// visible within the content rows.
func (a *Application) sidebarRows() ([]renderer.SidebarRow, int) {
	_, h := a.be.Size()
	visible := h - 2
	if visible < 1 {
		visible = 1
	}

	rows := a.tree.Rows()
	top := 0
	if sel := a.tree.SelectedIndex(); sel >= visible {
		top = sel - visible + 1
	}

	out := make([]renderer.SidebarRow, 0, visible)
	for i := top; i < len(rows) && i < top+visible; i++ {
		r := rows[i]
		out = append(out, renderer.SidebarRow{
			Name:     r.Name,
			Depth:    r.Depth,
			IsDir:    r.IsDir,
			Expanded: r.Expanded,
			Selected: a.sidebarFocus && i == a.tree.SelectedIndex(),
		})
	}
	return out, top
}

func (a *Application) statusInfo(doc *Document) renderer.StatusInfo {
	info := renderer.StatusInfo{
		Mode:    a.mode.String(),
		Insert:  a.mode == input.ModeInsert,
		Message: a.message,
	}
	if doc == nil {
		info.FileName = ""
		info.Line, info.Col, info.LineCount = 1, 1, 1
		return info
	}
	if a.mode == input.ModeSearching {
		info.SearchPrompt = doc.Search().Pattern()
	}
	info.FileName = doc.Name()
	info.Dirty = doc.Buffer().Dirty()
	info.ReadOnly = doc.Buffer().ReadOnly()
	info.Line = doc.Cursor().Line() + 1
	info.Col = doc.Cursor().VisualCol(doc.Buffer()) + 1
	info.LineCount = doc.LineCount()
	return info
}
