package renderer

import (
	"github.com/reditor/reditor/internal/engine/buffer"
	"github.com/reditor/reditor/internal/search"
	"github.com/reditor/reditor/internal/syntax"
)

// LineInput is everything the compositor needs for one visible line.
type LineInput struct {
	// Line is the document line content.
	Line []rune

	// Spans is the scan result partitioning the line.
	Spans []syntax.Span

	// Matches are the search matches starting on this line. Nil when no
	// search session is live.
	Matches []search.Match

	// CursorCol is the cursor's rune column, or -1 when the cursor is
	// not on this line. It may equal len(Line).
	CursorCol int

	// CursorLine tints the content background when true.
	CursorLine bool

	// LeftCol is the first visible visual column (horizontal scroll).
	LeftCol int

	// Width is the visible content width in columns.
	Width int

	TabWidth int
}

// ComposeLine builds the style runs for one line. Layers apply in fixed
// precedence: syntax colors under search overlays under the cursor
// cell; a cell always shows exactly one layer, never a blend. Adjacent
// cells with identical styles collapse into a single run, so a line
// with k distinct style regions yields exactly k runs.
//
// Run X positions are columns relative to the content area origin. Tabs
// expand to spaces at tab stops; a wide rune is emitted once and never
// split, and when it only half fits at an edge it is padded out with
// spaces instead.
func ComposeLine(in LineInput, theme *Theme) []Run {
	right := in.LeftCol + in.Width
	var m merger

	v := 0 // visual column
	for i, r := range in.Line {
		if v >= right {
			break
		}
		w := buffer.RuneDisplayWidth(r, v, in.TabWidth)
		st := in.styleAt(i, theme)
		switch {
		case r == '\t':
			for k := 0; k < w; k++ {
				m.cell(v+k, in.LeftCol, right, ' ', st)
			}
		case w > 1 && (v < in.LeftCol || v+w > right):
			// Partially visible wide rune: pad, never split.
			for k := 0; k < w; k++ {
				m.cell(v+k, in.LeftCol, right, ' ', st)
			}
		case w == 0:
			// Zero-width rune rides along with the previous cell.
			m.attach(r)
		default:
			m.wideCell(v, w, in.LeftCol, right, r, st)
		}
		v += w
	}

	// Cursor resting past the last rune gets its own cell.
	if in.CursorCol == len(in.Line) && v >= in.LeftCol && v < right {
		m.cell(v, in.LeftCol, right, ' ', theme.CursorStyle())
	}

	return m.runs
}

// styleAt resolves the style for the rune at index i by precedence.
func (in *LineInput) styleAt(i int, theme *Theme) Style {
	if i == in.CursorCol {
		return theme.CursorStyle()
	}
	for _, mt := range in.Matches {
		if i >= mt.StartCol && i < mt.EndCol {
			return theme.SearchStyle()
		}
	}
	st := theme.Text()
	for _, sp := range in.Spans {
		if sp.Contains(i) {
			st = theme.TokenStyle(sp.Type)
			break
		}
	}
	if in.CursorLine {
		st.BG = theme.CursorLineBG
	}
	return st
}

// merger accumulates visible cells into style runs.
type merger struct {
	runs []Run
	// nextX is the screen column the current run would extend at.
	nextX int
}

// cell adds a single-width cell at visual column v if it is inside the
// visible window [left, right).
func (m *merger) cell(v, left, right int, r rune, st Style) {
	if v < left || v >= right {
		return
	}
	m.push(v-left, 1, r, st)
}

// wideCell adds a rune of width w starting at visual column v. The
// caller has already established it is fully visible.
func (m *merger) wideCell(v, w, left, right int, r rune, st Style) {
	if v < left || v+w > right {
		return
	}
	m.push(v-left, w, r, st)
}

// attach appends a zero-width rune to the tail of the current run.
func (m *merger) attach(r rune) {
	if k := len(m.runs); k > 0 {
		m.runs[k-1].Text = append(m.runs[k-1].Text, r)
	}
}

func (m *merger) push(x, w int, r rune, st Style) {
	if k := len(m.runs); k > 0 && m.runs[k-1].Style == st && m.nextX == x {
		m.runs[k-1].Text = append(m.runs[k-1].Text, r)
		m.nextX = x + w
		return
	}
	m.runs = append(m.runs, Run{X: x, Text: []rune{r}, Style: st})
	m.nextX = x + w
}
