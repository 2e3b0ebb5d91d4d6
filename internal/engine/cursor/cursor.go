// Package cursor implements the insertion cursor and its motion rules.
package cursor

import (
	"fmt"

	"github.com/reditor/reditor/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Cursor is an immutable value: every motion returns a new cursor. It
// remembers the visual column the user last aimed for, so moving through
// a short line and back onto a long one lands where vertical motion
// started instead of sticking to the short line's edge.
type Cursor struct {
	pos      Position
	desired  int
	tabWidth int
}

// New creates a cursor at the origin with the given tab width.
func New(tabWidth int) Cursor {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return Cursor{tabWidth: tabWidth}
}

// Position returns the cursor's buffer position.
func (c Cursor) Position() Position { return c.pos }

// Line returns the cursor's line index.
func (c Cursor) Line() int { return c.pos.Line }

// Col returns the cursor's rune column.
func (c Cursor) Col() int { return c.pos.Col }

// VisualCol returns the cursor's visual column on its line.
func (c Cursor) VisualCol(b *buffer.Buffer) int {
	return buffer.VisualColumn(b.Line(c.pos.Line), c.pos.Col, c.tabWidth)
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d)", c.pos.Line, c.pos.Col)
}

// MoveTo places the cursor at p, clamped into the buffer, and resets the
// desired column to the landing spot. Horizontal motion and explicit
// placement both go through here.
func (c Cursor) MoveTo(b *buffer.Buffer, p Position) Cursor {
	c.pos = b.Clamp(p)
	c.desired = buffer.VisualColumn(b.Line(c.pos.Line), c.pos.Col, c.tabWidth)
	return c
}

// Left moves one rune left, wrapping to the end of the previous line.
func (c Cursor) Left(b *buffer.Buffer) Cursor {
	if c.pos.Col > 0 {
		return c.MoveTo(b, Position{Line: c.pos.Line, Col: c.pos.Col - 1})
	}
	if c.pos.Line > 0 {
		return c.MoveTo(b, Position{Line: c.pos.Line - 1, Col: b.LineLen(c.pos.Line - 1)})
	}
	return c
}

// Right moves one rune right, wrapping to the start of the next line.
func (c Cursor) Right(b *buffer.Buffer) Cursor {
	if c.pos.Col < b.LineLen(c.pos.Line) {
		return c.MoveTo(b, Position{Line: c.pos.Line, Col: c.pos.Col + 1})
	}
	if c.pos.Line+1 < b.LineCount() {
		return c.MoveTo(b, Position{Line: c.pos.Line + 1, Col: 0})
	}
	return c
}

// Up moves one line up, chasing the desired visual column.
func (c Cursor) Up(b *buffer.Buffer) Cursor {
	return c.vertical(b, c.pos.Line-1)
}

// Down moves one line down, chasing the desired visual column.
func (c Cursor) Down(b *buffer.Buffer) Cursor {
	return c.vertical(b, c.pos.Line+1)
}

// PageUp moves up by the given number of lines.
func (c Cursor) PageUp(b *buffer.Buffer, lines int) Cursor {
	return c.vertical(b, c.pos.Line-lines)
}

// PageDown moves down by the given number of lines.
func (c Cursor) PageDown(b *buffer.Buffer, lines int) Cursor {
	return c.vertical(b, c.pos.Line+lines)
}

// vertical lands on the target line at the remembered visual column.
// The desired column survives the move even when the line is shorter.
func (c Cursor) vertical(b *buffer.Buffer, line int) Cursor {
	if line < 0 {
		line = 0
	}
	if line >= b.LineCount() {
		line = b.LineCount() - 1
	}
	col := buffer.ColumnForVisual(b.Line(line), c.desired, c.tabWidth)
	c.pos = b.Clamp(Position{Line: line, Col: col})
	return c
}

// LineStart moves to column zero.
func (c Cursor) LineStart(b *buffer.Buffer) Cursor {
	return c.MoveTo(b, Position{Line: c.pos.Line, Col: 0})
}

// LineEnd moves past the last rune of the line.
func (c Cursor) LineEnd(b *buffer.Buffer) Cursor {
	return c.MoveTo(b, Position{Line: c.pos.Line, Col: b.LineLen(c.pos.Line)})
}

// DocumentStart moves to the first position of the document.
func (c Cursor) DocumentStart(b *buffer.Buffer) Cursor {
	return c.MoveTo(b, Position{})
}

// DocumentEnd moves past the last rune of the last line.
func (c Cursor) DocumentEnd(b *buffer.Buffer) Cursor {
	last := b.LineCount() - 1
	return c.MoveTo(b, Position{Line: last, Col: b.LineLen(last)})
}
