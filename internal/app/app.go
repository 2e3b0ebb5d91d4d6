package app

import (
	"fmt"
	"os"

	"github.com/reditor/reditor/internal/config"
	"github.com/reditor/reditor/internal/engine/buffer"
	"github.com/reditor/reditor/internal/input"
	"github.com/reditor/reditor/internal/renderer"
	"github.com/reditor/reditor/internal/renderer/backend"
	"github.com/reditor/reditor/internal/search"
	"github.com/reditor/reditor/internal/sidebar"
	"github.com/reditor/reditor/internal/syntax"
)

// Application owns the editor session: the workspace, the sidebar, the
// keymap, the mode machine and the renderer. All state mutation happens
// on the event loop goroutine.
type Application struct {
	cfg    config.Config
	log    *Logger
	be     backend.Backend
	rend   *renderer.Renderer
	reg    *syntax.Registry
	keymap *input.Keymap

	ws      *Workspace
	tree    *sidebar.Sidebar
	watcher *sidebar.Watcher
	session *config.Session

	mode         input.Mode
	sidebarFocus bool
	pendingQuit  bool
	deferFollow  bool
	message      string
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the application logger.
func WithLogger(l *Logger) Option {
	return func(a *Application) { a.log = l }
}

// WithSession attaches persistent session state.
func WithSession(s *config.Session) Option {
	return func(a *Application) { a.session = s }
}

// WithKeymap replaces the default keymap.
func WithKeymap(k *input.Keymap) Option {
	return func(a *Application) { a.keymap = k }
}

// New builds an application over an initialized backend.
func New(cfg config.Config, be backend.Backend, theme *renderer.Theme, opts ...Option) *Application {
	a := &Application{
		cfg:    cfg,
		log:    NullLogger,
		be:     be,
		rend:   renderer.New(be, theme, cfg.Editor.TabWidth),
		reg:    syntax.DefaultRegistry(),
		keymap: input.Default(),
		ws:     NewWorkspace(),
		mode:   input.ModeNormal,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OpenPath prepares the initial view from the CLI argument: a file
// opens into a tab, a directory roots the sidebar, and an empty arg
// shows the welcome screen over the current directory.
func (a *Application) OpenPath(arg string) error {
	root := "."
	switch {
	case arg == "":
	default:
		info, err := os.Stat(arg)
		if err != nil {
			return NewOperationError("open", arg, err)
		}
		if info.IsDir() {
			root = arg
		} else {
			if _, err := a.openFile(arg); err != nil {
				return err
			}
		}
	}

	if a.cfg.UI.ShowSidebar {
		a.tree = sidebar.New(root)
		a.tree.SetWidth(a.cfg.UI.SidebarWidth)
		w, err := sidebar.NewWatcher(root)
		if err != nil {
			a.log.WithComponent("sidebar").Warn("watch %s: %v", root, err)
		} else {
			a.watcher = w
		}
	}
	return nil
}

func (a *Application) openFile(path string) (*Document, error) {
	doc, err := a.ws.Open(path, a.reg, a.cfg.Editor.TabWidth)
	if err != nil {
		return nil, err
	}
	if a.session != nil {
		a.session.Touch(doc.Buffer().Path())
	}
	if doc.Buffer().ReadOnly() {
		a.message = "opened read-only: invalid UTF-8 replaced with U+FFFD"
	}
	a.log.WithComponent("workspace").Info("opened %s", path)
	return doc, nil
}

// saveAll writes every dirty document, stopping at the first failure.
func (a *Application) saveAll() error {
	for _, d := range a.ws.Documents() {
		if d.Buffer().Dirty() {
			if err := d.Save(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Mode returns the current editor mode.
func (a *Application) Mode() input.Mode { return a.mode }

// Workspace returns the open tabs.
func (a *Application) Workspace() *Workspace { return a.ws }

// Message returns the transient status message.
func (a *Application) Message() string { return a.message }

// Close releases resources held outside the terminal.
func (a *Application) Close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.session != nil {
		if err := a.session.Save(); err != nil {
			a.log.Warn("session save: %v", err)
		}
	}
}

// handleEvent applies one backend event. ErrQuit ends the loop.
func (a *Application) handleEvent(ev backend.Event) error {
	switch e := ev.(type) {
	case backend.KeyEvent:
		return a.handleKey(e)
	case backend.ResizeEvent:
		return nil // the next render picks up the new size
	}
	return nil
}

func (a *Application) handleKey(ev backend.KeyEvent) error {
	a.message = ""

	cmd := a.keymap.Translate(a.mode, ev)

	// A pending quit is one-shot: the very next key decides. 's'
	// saves everything and quits, 'n' discards, a repeated quit
	// chord also discards; anything else cancels.
	if a.pendingQuit {
		a.pendingQuit = false
		switch {
		case ev.Key == backend.KeyRune && !ev.Ctrl && ev.Rune == 's':
			if err := a.saveAll(); err != nil {
				a.message = err.Error()
				return nil
			}
			return ErrQuit
		case ev.Key == backend.KeyRune && !ev.Ctrl && ev.Rune == 'n':
			return ErrQuit
		case cmd.Op == input.OpQuit:
			return ErrQuit
		}
		a.message = "quit cancelled"
		return nil
	}

	if a.sidebarFocus && a.tree != nil {
		if a.handleSidebarKey(ev) {
			return nil
		}
	}

	return a.apply(cmd)
}

// handleSidebarKey navigates the focused file tree. It reports whether
// the key was consumed.
func (a *Application) handleSidebarKey(ev backend.KeyEvent) bool {
	switch ev.Key {
	case backend.KeyUp:
		a.tree.SelectPrev()
	case backend.KeyDown:
		a.tree.SelectNext()
	case backend.KeyEnter:
		a.openSelected()
	case backend.KeyEsc:
		a.sidebarFocus = false
	default:
		return false
	}
	return true
}

func (a *Application) openSelected() {
	row, ok := a.tree.Selected()
	if !ok {
		return
	}
	if row.IsDir {
		a.tree.ToggleSelected()
		if row.IsDir && !row.Expanded && a.watcher != nil {
			if err := a.watcher.Add(row.Path); err != nil {
				a.log.WithComponent("sidebar").Warn("watch %s: %v", row.Path, err)
			}
		}
		return
	}
	if _, err := a.openFile(row.Path); err != nil {
		a.message = err.Error()
		return
	}
	a.sidebarFocus = false
}

func (a *Application) apply(cmd input.Command) error {
	doc := a.ws.Active()

	switch cmd.Op {
	case input.OpNone:
		return nil

	case input.OpQuit:
		if a.ws.AnyDirty() {
			a.pendingQuit = true
			a.message = "unsaved changes: s = save and quit, n = discard, other keys cancel"
			return nil
		}
		return ErrQuit

	case input.OpToggleSidebar:
		if a.tree != nil {
			a.tree.Toggle()
			a.sidebarFocus = a.tree.Visible()
		}
		return nil

	case input.OpNextTab:
		a.ws.Next()
		return nil
	case input.OpPrevTab:
		a.ws.Prev()
		return nil
	case input.OpCloseTab:
		if err := a.ws.Close(false); err != nil {
			a.message = err.Error()
		}
		return nil

	case input.OpSidebarUp:
		if a.tree != nil {
			a.tree.SelectPrev()
		}
		return nil
	case input.OpSidebarDown:
		if a.tree != nil {
			a.tree.SelectNext()
		}
		return nil
	case input.OpSidebarOpen:
		if a.tree != nil {
			a.openSelected()
		}
		return nil
	}

	if doc == nil {
		return nil
	}

	switch cmd.Op {
	case input.OpEnterInsert:
		a.setMode(input.ModeInsert)
	case input.OpExitToNormal:
		a.setMode(input.ModeNormal)

	case input.OpSave:
		if err := doc.Save(); err != nil {
			a.message = err.Error()
		} else {
			a.message = fmt.Sprintf("saved %s", doc.Name())
		}

	case input.OpStartSearch:
		a.setMode(input.ModeSearching)
		doc.Search().Start(search.Snapshot{
			Cursor:  doc.Cursor().Position(),
			TopLine: doc.View().TopLine(),
			LeftCol: doc.View().LeftCol(),
		})
	case input.OpSearchRune:
		doc.SearchAppend(cmd.Rune)
		a.jumpToCurrentMatch(doc)
	case input.OpSearchDeleteRune:
		doc.SearchDeleteLast()
		a.jumpToCurrentMatch(doc)
	case input.OpSearchNext:
		if m, ok := doc.Search().Next(); ok {
			a.jumpTo(doc, m)
		}
	case input.OpSearchPrev:
		if m, ok := doc.Search().Prev(); ok {
			a.jumpTo(doc, m)
		}
	case input.OpSearchConfirm:
		doc.Search().Confirm()
		a.setMode(input.ModeNormal)
	case input.OpSearchCancel:
		// Cursor and viewport restore together before the next
		// frame is composed.
		snap := doc.Search().Cancel()
		doc.SetCursor(doc.Cursor().MoveTo(doc.Buffer(), snap.Cursor))
		doc.View().Restore(snap.TopLine, snap.LeftCol)
		a.setMode(input.ModeNormal)

	default:
		a.applyEdit(doc, cmd)
	}
	return nil
}

// applyEdit handles motion and text-change commands on the document.
func (a *Application) applyEdit(doc *Document, cmd input.Command) {
	buf := doc.Buffer()
	cur := doc.Cursor()

	switch cmd.Op {
	case input.OpMoveLeft:
		doc.SetCursor(cur.Left(buf))
	case input.OpMoveRight:
		doc.SetCursor(cur.Right(buf))
	case input.OpMoveUp:
		doc.SetCursor(cur.Up(buf))
	case input.OpMoveDown:
		doc.SetCursor(cur.Down(buf))
	case input.OpPageUp:
		doc.SetCursor(cur.PageUp(buf, doc.View().Height()))
	case input.OpPageDown:
		doc.SetCursor(cur.PageDown(buf, doc.View().Height()))
	case input.OpLineStart:
		doc.SetCursor(cur.LineStart(buf))
	case input.OpLineEnd:
		doc.SetCursor(cur.LineEnd(buf))
	case input.OpDocStart:
		doc.SetCursor(cur.DocumentStart(buf))
	case input.OpDocEnd:
		doc.SetCursor(cur.DocumentEnd(buf))

	case input.OpInsertRune:
		a.mutate(doc, func() (edit buffer.Edit, err error) {
			return buf.InsertRune(cur.Position(), cmd.Rune)
		})
	case input.OpInsertTab:
		a.mutate(doc, func() (buffer.Edit, error) {
			return buf.InsertRune(cur.Position(), '\t')
		})
	case input.OpInsertNewline:
		a.mutate(doc, func() (buffer.Edit, error) {
			return buf.SplitLine(cur.Position())
		})
	case input.OpDeleteBack:
		a.mutate(doc, func() (buffer.Edit, error) {
			return buf.DeleteBefore(cur.Position())
		})
	case input.OpDeleteForward:
		a.mutate(doc, func() (buffer.Edit, error) {
			return buf.DeleteAt(cur.Position())
		})
	}
	// Mid-run motions skip the follow; the run's last motion scrolls
	// the viewport once for the whole batch.
	if !a.deferFollow {
		doc.FollowCursor()
	}
}

func (a *Application) mutate(doc *Document, edit func() (buffer.Edit, error)) {
	e, err := edit()
	if err != nil {
		a.message = err.Error()
		return
	}
	doc.ApplyEdit(e)
}

func (a *Application) setMode(to input.Mode) {
	next, err := a.mode.Transition(to)
	if err != nil {
		a.log.Warn("mode: %v", err)
		return
	}
	a.mode = next
}

// jumpToCurrentMatch moves the cursor to the selected match while the
// pattern is being typed.
func (a *Application) jumpToCurrentMatch(doc *Document) {
	if m, ok := doc.Search().Current(); ok {
		a.jumpTo(doc, m)
	}
}

func (a *Application) jumpTo(doc *Document, m search.Match) {
	pos := buffer.Position{Line: m.Line, Col: m.StartCol}
	doc.SetCursor(doc.Cursor().MoveTo(doc.Buffer(), pos))
	if !doc.View().Contains(m.Line) {
		doc.View().CenterOn(m.Line, doc.LineCount())
	}
	doc.FollowCursor()
}
