package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/reditor/reditor/internal/engine/buffer"
	"github.com/reditor/reditor/internal/engine/cursor"
	"github.com/reditor/reditor/internal/renderer/viewport"
	"github.com/reditor/reditor/internal/search"
	"github.com/reditor/reditor/internal/syntax"
)

// Document is one open file: its buffer plus the cursor, viewport,
// highlight cache and search session that belong to it. Each tab owns
// one Document.
type Document struct {
	buf    *buffer.Buffer
	cache  *syntax.Cache
	cur    cursor.Cursor
	view   *viewport.Viewport
	search *search.Engine

	// searchRev is the buffer revision the match list was last built
	// from. A rescan happens only when the buffer has moved past it.
	searchRev uuid.UUID
}

// NewScratch creates an empty unnamed document.
func NewScratch(tabWidth int) *Document {
	buf := buffer.New()
	return &Document{
		buf:    buf,
		cache:  syntax.NewCache(buf, nil),
		cur:    cursor.New(tabWidth),
		view:   viewport.New(80, 24),
		search: search.New(),
	}
}

// Open reads the file at path into a document. Content that is not
// valid UTF-8 is loaded with invalid bytes replaced by U+FFFD and the
// document marked read-only, so a save can never silently corrupt the
// original bytes.
func Open(path string, reg *syntax.Registry, tabWidth int) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	opts := []buffer.Option{buffer.WithPath(path)}
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
		opts = append(opts, buffer.WithReadOnly())
	}
	opts = append(opts, buffer.WithText(text))

	buf := buffer.New(opts...)
	return &Document{
		buf:    buf,
		cache:  syntax.NewCache(buf, reg.ForPath(path)),
		cur:    cursor.New(tabWidth),
		view:   viewport.New(80, 24),
		search: search.New(),
	}, nil
}

// Buffer returns the document's buffer.
func (d *Document) Buffer() *buffer.Buffer { return d.buf }

// Cursor returns the document's cursor.
func (d *Document) Cursor() cursor.Cursor { return d.cur }

// SetCursor replaces the cursor.
func (d *Document) SetCursor(c cursor.Cursor) { d.cur = c }

// View returns the document's viewport.
func (d *Document) View() *viewport.Viewport { return d.view }

// Search returns the document's search engine.
func (d *Document) Search() *search.Engine { return d.search }

// Line returns the runes of line i.
func (d *Document) Line(i int) []rune { return d.buf.Line(i) }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return d.buf.LineCount() }

// Spans returns the highlight spans for line i.
func (d *Document) Spans(i int) []syntax.Span { return d.cache.Spans(i) }

// MatchesOnLine returns the search matches on line i.
func (d *Document) MatchesOnLine(i int) []search.Match {
	return d.search.MatchesOnLine(i)
}

// Name returns a short display name for the document.
func (d *Document) Name() string {
	if p := d.buf.Path(); p != "" {
		return filepath.Base(p)
	}
	return "[untitled]"
}

// ApplyEdit moves the cursor to where the edit left it and keeps the
// highlight cache aligned with the new line structure.
func (d *Document) ApplyEdit(edit buffer.Edit) {
	d.cur = d.cur.MoveTo(d.buf, edit.Cursor)
	switch {
	case edit.LineDelta > 0:
		d.cache.InsertLine(edit.InvalidateFrom + 1)
	case edit.LineDelta < 0:
		d.cache.RemoveLine(edit.InvalidateFrom + 1)
	}
	d.cache.InvalidateFrom(edit.InvalidateFrom)
	d.syncSearch()
}

// SearchAppend extends the search pattern and records the buffer
// revision the match list was built from.
func (d *Document) SearchAppend(r rune) {
	d.search.Append(r, d.buf)
	d.searchRev = d.buf.Revision()
}

// SearchDeleteLast shortens the search pattern and records the
// revision.
func (d *Document) SearchDeleteLast() {
	d.search.DeleteLast(d.buf)
	d.searchRev = d.buf.Revision()
}

// syncSearch rebuilds the match list when the buffer has changed since
// the last scan. The revision check makes the rebuild idempotent: a
// call with no intervening mutation leaves the match list and the
// selected match untouched.
func (d *Document) syncSearch() {
	if d.search.Pattern() == "" || d.searchRev == d.buf.Revision() {
		return
	}
	d.search.SetPattern(d.search.Pattern(), d.buf)
	d.searchRev = d.buf.Revision()
}

// Save writes the buffer back to its path.
func (d *Document) Save() error {
	path := d.buf.Path()
	if path == "" {
		return NewOperationError("save", "", fmt.Errorf("no file name"))
	}
	if d.buf.ReadOnly() {
		return NewOperationError("save", path, buffer.ErrReadOnly)
	}
	if err := os.WriteFile(path, []byte(d.buf.Text()), 0o644); err != nil {
		return NewOperationError("save", path, err)
	}
	d.buf.MarkClean()
	return nil
}

// FollowCursor scrolls the viewport the minimal distance that brings
// the cursor back into view.
func (d *Document) FollowCursor() {
	d.view.Follow(d.cur.Line(), d.cur.VisualCol(d.buf))
}
