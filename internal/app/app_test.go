package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reditor/reditor/internal/config"
	"github.com/reditor/reditor/internal/engine/buffer"
	"github.com/reditor/reditor/internal/input"
	"github.com/reditor/reditor/internal/renderer"
	"github.com/reditor/reditor/internal/renderer/backend"
)

func key(r rune) backend.KeyEvent {
	return backend.KeyEvent{Key: backend.KeyRune, Rune: r}
}

func ctrl(r rune) backend.KeyEvent {
	return backend.KeyEvent{Key: backend.KeyRune, Rune: r, Ctrl: true}
}

func named(k backend.Key) backend.KeyEvent {
	return backend.KeyEvent{Key: k}
}

// newTestApp builds an application over a Null backend with the
// sidebar disabled and the given file open.
func newTestApp(t *testing.T, content string) (*Application, *backend.Null, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.go")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.UI.ShowSidebar = false
	be := backend.NewNull(80, 24)
	a := New(cfg, be, renderer.OneDark(), WithLogger(NullLogger))
	if err := a.OpenPath(path); err != nil {
		t.Fatal(err)
	}
	return a, be, path
}

func (a *Application) press(t *testing.T, evs ...backend.KeyEvent) {
	t.Helper()
	for _, ev := range evs {
		if err := a.handleKey(ev); err != nil {
			t.Fatalf("handleKey(%+v): %v", ev, err)
		}
	}
}

func TestModeFlow(t *testing.T) {
	a, _, _ := newTestApp(t, "hello\n")

	if a.Mode() != input.ModeNormal {
		t.Fatalf("start mode = %v", a.Mode())
	}
	a.press(t, key('i'))
	if a.Mode() != input.ModeInsert {
		t.Fatalf("after i: %v", a.Mode())
	}
	a.press(t, named(backend.KeyEsc))
	if a.Mode() != input.ModeNormal {
		t.Fatalf("after esc: %v", a.Mode())
	}
	a.press(t, key('/'))
	if a.Mode() != input.ModeSearching {
		t.Fatalf("after /: %v", a.Mode())
	}
}

func TestInsertAndSave(t *testing.T) {
	a, _, path := newTestApp(t, "world\n")

	a.press(t, key('i'), key('h'), key('i'), key(' '))
	doc := a.Workspace().Active()
	if !doc.Buffer().Dirty() {
		t.Fatal("buffer should be dirty after insert")
	}

	a.press(t, named(backend.KeyEsc), ctrl('s'))
	if doc.Buffer().Dirty() {
		t.Fatal("buffer should be clean after save")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "hi world\n" {
		t.Errorf("saved content = %q", got)
	}
	if !strings.Contains(a.Message(), "saved") {
		t.Errorf("message = %q", a.Message())
	}
}

func TestQuitCleanBuffer(t *testing.T) {
	a, _, _ := newTestApp(t, "hello\n")
	if err := a.handleKey(ctrl('q')); !errors.Is(err, ErrQuit) {
		t.Errorf("quit on clean buffer = %v, want ErrQuit", err)
	}
}

func TestPendingQuitIsOneShot(t *testing.T) {
	a, _, _ := newTestApp(t, "hello\n")
	a.press(t, key('i'), key('x'), named(backend.KeyEsc))

	// First quit arms the confirmation.
	if err := a.handleKey(ctrl('q')); err != nil {
		t.Fatalf("first quit: %v", err)
	}
	if !a.pendingQuit || a.Message() == "" {
		t.Fatal("first quit should arm pending flag with a message")
	}

	// Any other key disarms it.
	a.press(t, key('x'))
	if a.pendingQuit {
		t.Fatal("non-quit key should clear pending flag")
	}

	// Armed again, a second quit goes through despite the dirty buffer.
	a.press(t, ctrl('q'))
	if err := a.handleKey(ctrl('q')); !errors.Is(err, ErrQuit) {
		t.Errorf("confirmed quit = %v, want ErrQuit", err)
	}
}

func TestPendingQuitSaveAndDiscard(t *testing.T) {
	a, _, path := newTestApp(t, "hello\n")
	a.press(t, key('i'), key('>'), named(backend.KeyEsc), ctrl('q'))

	// 's' saves everything, then quits.
	if err := a.handleKey(key('s')); !errors.Is(err, ErrQuit) {
		t.Fatalf("save-and-quit = %v, want ErrQuit", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != ">hello\n" {
		t.Errorf("saved content = %q", string(data))
	}

	// 'n' quits without saving.
	b, _, path2 := newTestApp(t, "hello\n")
	b.press(t, key('i'), key('>'), named(backend.KeyEsc), ctrl('q'))
	if err := b.handleKey(key('n')); !errors.Is(err, ErrQuit) {
		t.Fatalf("discard quit = %v, want ErrQuit", err)
	}
	data, _ = os.ReadFile(path2)
	if string(data) != "hello\n" {
		t.Errorf("discard wrote file: %q", string(data))
	}
}

func TestSearchCancelRestoresExactly(t *testing.T) {
	a, _, _ := newTestApp(t, "alpha\nbeta\ngamma\nbeta\n")
	doc := a.Workspace().Active()

	before := doc.Cursor().Position()
	topBefore := doc.View().TopLine()

	a.press(t, key('/'), key('b'), key('e'))
	if doc.Cursor().Line() != 1 {
		t.Fatalf("cursor should jump to first match, at line %d", doc.Cursor().Line())
	}

	a.press(t, named(backend.KeyEsc))
	if a.Mode() != input.ModeNormal {
		t.Fatalf("mode after cancel = %v", a.Mode())
	}
	if doc.Cursor().Position() != before {
		t.Errorf("cursor = %+v, want %+v", doc.Cursor().Position(), before)
	}
	if doc.View().TopLine() != topBefore {
		t.Errorf("top line = %d, want %d", doc.View().TopLine(), topBefore)
	}
	if doc.Search().Active() {
		t.Error("search should be inactive after cancel")
	}
}

func TestSearchConfirmKeepsCursor(t *testing.T) {
	a, _, _ := newTestApp(t, "alpha\nbeta\ngamma\n")
	doc := a.Workspace().Active()

	a.press(t, key('/'), key('g'), key('a'), key('m'))
	a.press(t, named(backend.KeyEnter))

	if a.Mode() != input.ModeNormal {
		t.Fatalf("mode after confirm = %v", a.Mode())
	}
	if doc.Cursor().Line() != 2 || doc.Cursor().Col() != 0 {
		t.Errorf("cursor = %s", doc.Cursor())
	}
}

func TestSearchNextFromNormalMode(t *testing.T) {
	a, _, _ := newTestApp(t, "x\nfoo\nx\nfoo\n")
	doc := a.Workspace().Active()

	a.press(t, key('/'), key('f'), key('o'), key('o'), named(backend.KeyEnter))
	if doc.Cursor().Line() != 1 {
		t.Fatalf("cursor at line %d after confirm", doc.Cursor().Line())
	}

	a.press(t, key('n'))
	if doc.Cursor().Line() != 3 {
		t.Errorf("n moved to line %d, want 3", doc.Cursor().Line())
	}
	a.press(t, key('n')) // wraps
	if doc.Cursor().Line() != 1 {
		t.Errorf("n wrap moved to line %d, want 1", doc.Cursor().Line())
	}
	a.press(t, key('N'))
	if doc.Cursor().Line() != 3 {
		t.Errorf("N moved to line %d, want 3", doc.Cursor().Line())
	}
}

func TestTabCycling(t *testing.T) {
	a, _, _ := newTestApp(t, "one\n")
	dir := t.TempDir()
	second := filepath.Join(dir, "two.go")
	os.WriteFile(second, []byte("two\n"), 0o644)

	if _, err := a.openFile(second); err != nil {
		t.Fatal(err)
	}
	if a.Workspace().Len() != 2 || a.Workspace().ActiveIndex() != 1 {
		t.Fatalf("workspace = %d tabs, active %d", a.Workspace().Len(), a.Workspace().ActiveIndex())
	}

	a.press(t, ctrl('n'))
	if a.Workspace().ActiveIndex() != 0 {
		t.Errorf("next wrap: active = %d", a.Workspace().ActiveIndex())
	}
	a.press(t, ctrl('p'))
	if a.Workspace().ActiveIndex() != 1 {
		t.Errorf("prev wrap: active = %d", a.Workspace().ActiveIndex())
	}

	a.press(t, ctrl('w'))
	if a.Workspace().Len() != 1 {
		t.Errorf("close: %d tabs", a.Workspace().Len())
	}
}

func TestCloseDirtyTabRefused(t *testing.T) {
	a, _, _ := newTestApp(t, "one\n")
	a.press(t, key('i'), key('z'), named(backend.KeyEsc), ctrl('w'))
	if a.Workspace().Len() != 1 {
		t.Fatal("dirty tab should not close")
	}
	if !strings.Contains(a.Message(), "unsaved") {
		t.Errorf("message = %q", a.Message())
	}
}

func TestInvalidUTF8OpensReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.dat")
	os.WriteFile(path, []byte{'h', 'i', 0xff, 0xfe, '\n'}, 0o644)

	cfg := config.Default()
	cfg.UI.ShowSidebar = false
	a := New(cfg, backend.NewNull(80, 24), renderer.OneDark())
	if err := a.OpenPath(path); err != nil {
		t.Fatal(err)
	}
	doc := a.Workspace().Active()
	if !doc.Buffer().ReadOnly() {
		t.Fatal("mangled file should open read-only")
	}
	if !strings.ContainsRune(string(doc.Line(0)), '�') {
		t.Errorf("line = %q, want replacement runes", string(doc.Line(0)))
	}

	// Edits are refused and surface as a status message.
	a.press(t, key('i'), key('x'))
	if a.Message() == "" {
		t.Error("edit on read-only buffer should set a message")
	}
	if string(doc.Line(0)) != "hi�" {
		t.Errorf("line changed: %q", string(doc.Line(0)))
	}
}

func TestBatchAppliesAllRendersOnce(t *testing.T) {
	a, be, _ := newTestApp(t, "one\ntwo\nthree\nfour\nfive\n")
	doc := a.Workspace().Active()

	events := make(chan backend.Event, 8)
	for i := 0; i < 3; i++ {
		events <- named(backend.KeyDown)
	}
	events <- key('i')
	events <- key('x')

	shows := be.ShowCount()
	if err := a.handleBatch(named(backend.KeyDown), events); err != nil {
		t.Fatal(err)
	}
	a.render()

	if doc.Cursor().Line() != 4 {
		t.Errorf("cursor line = %d, want 4", doc.Cursor().Line())
	}
	if string(doc.Line(4)) != "xfive" {
		t.Errorf("line 4 = %q", string(doc.Line(4)))
	}
	if got := be.ShowCount() - shows; got != 1 {
		t.Errorf("flushes for one batch = %d, want 1", got)
	}
}

func TestResizeStillRenders(t *testing.T) {
	a, be, _ := newTestApp(t, "hello\n")
	if err := a.handleEvent(backend.ResizeEvent{Width: 100, Height: 40}); err != nil {
		t.Fatal(err)
	}
	shows := be.ShowCount()
	a.render()
	if be.ShowCount() != shows+1 {
		t.Error("render after resize should flush once")
	}
}

func TestWelcomeFrameWithNoDocument(t *testing.T) {
	cfg := config.Default()
	cfg.UI.ShowSidebar = false
	a := New(cfg, backend.NewNull(80, 24), renderer.OneDark())

	f := a.buildFrame()
	if f.Welcome == nil {
		t.Fatal("empty workspace should show the welcome screen")
	}
	if len(f.Welcome.Banner) == 0 {
		t.Error("welcome banner empty")
	}
}

func TestApplyEditRescansOnlyOnNewRevision(t *testing.T) {
	a, _, _ := newTestApp(t, "foo\nbar\nfoo\n")
	doc := a.Workspace().Active()

	a.press(t, key('/'), key('f'), key('o'), key('o'), named(backend.KeyEnter), key('n'))
	if doc.Cursor().Line() != 2 {
		t.Fatalf("cursor at line %d, want 2", doc.Cursor().Line())
	}

	// Same buffer revision: no rescan, the selected match survives.
	doc.ApplyEdit(buffer.Edit{Cursor: doc.Cursor().Position()})
	if m, ok := doc.Search().Current(); !ok || m.Line != 2 {
		t.Errorf("selection after revisionless edit = %+v, %v; want line 2", m, ok)
	}

	// A mutation bumps the revision and rebuilds the match list.
	a.press(t, key('i'), key('f'), key('o'), key('o'), key(' '), named(backend.KeyEsc))
	if got := len(doc.Search().MatchesOnLine(2)); got != 2 {
		t.Errorf("matches on line 2 after insert = %d, want 2", got)
	}
}

func TestMotionFollowsLookahead(t *testing.T) {
	a, _, _ := newTestApp(t, "one\ntwo\nthree\n")

	batch := []backend.Event{named(backend.KeyDown), named(backend.KeyDown), key('i')}
	if !a.motionFollows(batch, 0) {
		t.Error("motion followed by a motion should defer the follow")
	}
	if a.motionFollows(batch, 1) {
		t.Error("motion followed by a non-motion must follow immediately")
	}
	if a.motionFollows(batch, 2) {
		t.Error("non-motion never defers")
	}

	a.pendingQuit = true
	if a.motionFollows(batch, 0) {
		t.Error("quit prompt reroutes keys, lookahead must be off")
	}
}

func TestBatchMotionRunScrollsOnce(t *testing.T) {
	a, _, _ := newTestApp(t, strings.Repeat("line\n", 40))
	doc := a.Workspace().Active()

	events := make(chan backend.Event, 32)
	for i := 0; i < 29; i++ {
		events <- named(backend.KeyDown)
	}
	if err := a.handleBatch(named(backend.KeyDown), events); err != nil {
		t.Fatal(err)
	}

	if doc.Cursor().Line() != 30 {
		t.Errorf("cursor line = %d, want 30", doc.Cursor().Line())
	}
	if !doc.View().Contains(30) {
		t.Error("viewport should follow the run's last motion")
	}
}

func TestSidebarOpsFromKeymap(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "b.go"), []byte("package b\n"), 0o644)

	km := input.Default()
	km.Bind(input.ModeNormal, input.Chord{Key: backend.KeyRune, Rune: 'J'}, input.OpSidebarDown)
	km.Bind(input.ModeNormal, input.Chord{Key: backend.KeyRune, Rune: 'K'}, input.OpSidebarUp)
	km.Bind(input.ModeNormal, input.Chord{Key: backend.KeyRune, Rune: 'o'}, input.OpSidebarOpen)

	cfg := config.Default()
	a := New(cfg, backend.NewNull(80, 24), renderer.OneDark(), WithKeymap(km))
	if err := a.OpenPath(dir); err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	a.press(t, key('J'))
	if a.tree.SelectedIndex() != 1 {
		t.Errorf("selection after down = %d, want 1", a.tree.SelectedIndex())
	}
	a.press(t, key('K'))
	if a.tree.SelectedIndex() != 0 {
		t.Errorf("selection after up = %d, want 0", a.tree.SelectedIndex())
	}
	a.press(t, key('o'))
	doc := a.Workspace().Active()
	if doc == nil || doc.Name() != "a.go" {
		t.Fatalf("active doc = %v, want a.go", doc)
	}
}

func TestSidebarOpensFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644)

	cfg := config.Default()
	a := New(cfg, backend.NewNull(80, 24), renderer.OneDark())
	if err := a.OpenPath(dir); err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if a.tree == nil || !a.tree.Visible() {
		t.Fatal("directory argument should root a visible sidebar")
	}

	a.sidebarFocus = true
	a.press(t, named(backend.KeyEnter))
	doc := a.Workspace().Active()
	if doc == nil || doc.Name() != "a.go" {
		t.Fatalf("active doc = %v", doc)
	}
	if a.sidebarFocus {
		t.Error("opening a file should drop sidebar focus")
	}
}
