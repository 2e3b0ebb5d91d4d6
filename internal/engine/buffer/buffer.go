// Package buffer implements the line-oriented document buffer.
//
// A document is a slice of lines, each a slice of runes. Every edit
// primitive reports the position the cursor lands on and the first line
// whose highlight state must be recomputed, so callers can keep derived
// caches consistent without guessing at blast radius.
package buffer

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrOutOfRange is returned when a position does not exist in the document.
var ErrOutOfRange = errors.New("buffer: position out of range")

// ErrReadOnly is returned when mutating a read-only document.
var ErrReadOnly = errors.New("buffer: document is read-only")

// Position addresses a rune in the document. Col is a rune index and may
// equal the line length (the insertion point after the last rune).
type Position struct {
	Line int
	Col  int
}

// Edit describes the effect of a single edit primitive.
type Edit struct {
	// Cursor is where the cursor lands after the edit.
	Cursor Position

	// InvalidateFrom is the first line index whose highlight result may
	// have changed.
	InvalidateFrom int

	// LineDelta is +1 when the edit created a line, -1 when it removed
	// one, and 0 otherwise.
	LineDelta int
}

// Buffer holds one open document.
type Buffer struct {
	lines    [][]rune
	path     string
	dirty    bool
	readOnly bool
	revision uuid.UUID
}

// Option configures a new buffer.
type Option func(*Buffer)

// WithPath associates the buffer with a file path.
func WithPath(path string) Option {
	return func(b *Buffer) { b.path = path }
}

// WithText seeds the buffer content. Line endings are normalized to
// bare newlines before splitting.
func WithText(text string) Option {
	return func(b *Buffer) { b.lines = splitLines(text) }
}

// WithReadOnly marks the buffer read-only; every edit fails with
// ErrReadOnly.
func WithReadOnly() Option {
	return func(b *Buffer) { b.readOnly = true }
}

// New creates a buffer. Without options it holds a single empty line.
func New(opts ...Option) *Buffer {
	b := &Buffer{revision: uuid.New()}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
	return b
}

func splitLines(text string) [][]rune {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the runes of line i, or nil when out of range. The slice
// is owned by the buffer; callers must not mutate it.
func (b *Buffer) Line(i int) []rune {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// LineLen returns the rune length of line i, or 0 when out of range.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// Text returns the whole document joined with newlines.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Path returns the file path the buffer is associated with, if any.
func (b *Buffer) Path() string { return b.path }

// SetPath changes the associated file path.
func (b *Buffer) SetPath(path string) { b.path = path }

// Dirty reports whether the buffer has unsaved modifications.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkClean clears the dirty flag, typically after a successful save.
func (b *Buffer) MarkClean() { b.dirty = false }

// ReadOnly reports whether edits are rejected.
func (b *Buffer) ReadOnly() bool { return b.readOnly }

// Revision identifies the current content; it changes on every edit.
func (b *Buffer) Revision() uuid.UUID { return b.revision }

// Clamp returns the nearest valid position to p.
func (b *Buffer) Clamp(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(b.lines[p.Line]); p.Col > n {
		p.Col = n
	}
	return p
}

func (b *Buffer) validate(p Position) error {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrOutOfRange
	}
	if p.Col < 0 || p.Col > len(b.lines[p.Line]) {
		return ErrOutOfRange
	}
	return nil
}

func (b *Buffer) touch() {
	b.dirty = true
	b.revision = uuid.New()
}

// InsertRune inserts r at p and returns the cursor sitting after it.
func (b *Buffer) InsertRune(p Position, r rune) (Edit, error) {
	if b.readOnly {
		return Edit{}, ErrReadOnly
	}
	if err := b.validate(p); err != nil {
		return Edit{}, err
	}
	line := b.lines[p.Line]
	line = append(line, 0)
	copy(line[p.Col+1:], line[p.Col:])
	line[p.Col] = r
	b.lines[p.Line] = line
	b.touch()
	return Edit{
		Cursor:         Position{Line: p.Line, Col: p.Col + 1},
		InvalidateFrom: p.Line,
	}, nil
}

// SplitLine breaks the line at p, moving everything at and after p.Col
// onto a new following line. The cursor lands at the start of it.
func (b *Buffer) SplitLine(p Position) (Edit, error) {
	if b.readOnly {
		return Edit{}, ErrReadOnly
	}
	if err := b.validate(p); err != nil {
		return Edit{}, err
	}
	line := b.lines[p.Line]
	rest := append([]rune(nil), line[p.Col:]...)
	b.lines[p.Line] = line[:p.Col:p.Col]
	b.lines = append(b.lines, nil)
	copy(b.lines[p.Line+2:], b.lines[p.Line+1:])
	b.lines[p.Line+1] = rest
	b.touch()
	return Edit{
		Cursor:         Position{Line: p.Line + 1, Col: 0},
		InvalidateFrom: p.Line,
		LineDelta:      1,
	}, nil
}

// JoinLine appends line i+1 onto line i and returns the cursor at the
// join point. Joining the last line is an error.
func (b *Buffer) JoinLine(i int) (Edit, error) {
	if b.readOnly {
		return Edit{}, ErrReadOnly
	}
	if i < 0 || i+1 >= len(b.lines) {
		return Edit{}, ErrOutOfRange
	}
	joinCol := len(b.lines[i])
	b.lines[i] = append(b.lines[i], b.lines[i+1]...)
	b.lines = append(b.lines[:i+1], b.lines[i+2:]...)
	b.touch()
	return Edit{
		Cursor:         Position{Line: i, Col: joinCol},
		InvalidateFrom: i,
		LineDelta:      -1,
	}, nil
}

// DeleteBefore removes the rune before p (backspace). At the start of a
// line it joins with the previous one. At the start of the document it
// is a no-op reporting the unchanged cursor.
func (b *Buffer) DeleteBefore(p Position) (Edit, error) {
	if b.readOnly {
		return Edit{}, ErrReadOnly
	}
	if err := b.validate(p); err != nil {
		return Edit{}, err
	}
	if p.Col == 0 {
		if p.Line == 0 {
			return Edit{Cursor: p, InvalidateFrom: p.Line}, nil
		}
		return b.JoinLine(p.Line - 1)
	}
	line := b.lines[p.Line]
	b.lines[p.Line] = append(line[:p.Col-1], line[p.Col:]...)
	b.touch()
	return Edit{
		Cursor:         Position{Line: p.Line, Col: p.Col - 1},
		InvalidateFrom: p.Line,
	}, nil
}

// DeleteAt removes the rune at p (forward delete). At the end of a line
// it joins the next one up; at the end of the document it is a no-op.
// The cursor does not move.
func (b *Buffer) DeleteAt(p Position) (Edit, error) {
	if b.readOnly {
		return Edit{}, ErrReadOnly
	}
	if err := b.validate(p); err != nil {
		return Edit{}, err
	}
	line := b.lines[p.Line]
	if p.Col == len(line) {
		if p.Line+1 >= len(b.lines) {
			return Edit{Cursor: p, InvalidateFrom: p.Line}, nil
		}
		ed, err := b.JoinLine(p.Line)
		if err != nil {
			return Edit{}, err
		}
		ed.Cursor = p
		return ed, nil
	}
	b.lines[p.Line] = append(line[:p.Col], line[p.Col+1:]...)
	b.touch()
	return Edit{
		Cursor:         p,
		InvalidateFrom: p.Line,
	}, nil
}
