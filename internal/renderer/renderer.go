package renderer

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/reditor/reditor/internal/engine/buffer"
	"github.com/reditor/reditor/internal/renderer/backend"
	"github.com/reditor/reditor/internal/renderer/viewport"
	"github.com/reditor/reditor/internal/search"
	"github.com/reditor/reditor/internal/syntax"
)

// LineProvider supplies document lines.
type LineProvider interface {
	Line(i int) []rune
	LineCount() int
}

// SpanProvider supplies scan results per line.
type SpanProvider interface {
	Spans(i int) []syntax.Span
}

// MatchProvider supplies search matches per line.
type MatchProvider interface {
	MatchesOnLine(i int) []search.Match
}

// SidebarRow is one visible row of the file tree.
type SidebarRow struct {
	Name     string
	Depth    int
	IsDir    bool
	Expanded bool
	Selected bool
}

// Welcome is the content of the start screen shown with no file open.
type Welcome struct {
	Banner []string
	Lines  []string
}

// Frame is the full input for rendering one frame. The app assembles it
// from the active document, search session and chrome state; cursor,
// viewport and search state arrive together as one consistent unit.
type Frame struct {
	Lines   LineProvider
	Spans   SpanProvider
	Matches MatchProvider

	Cursor buffer.Position
	View   *viewport.Viewport

	Status StatusInfo
	Tabs   []TabInfo

	Sidebar      []SidebarRow
	SidebarTop   int
	SidebarWidth int

	// Welcome replaces the content area when set.
	Welcome *Welcome
}

// Renderer draws frames through a backend. All draw calls for a frame
// funnel into one FrameBuffer flush.
type Renderer struct {
	be       backend.Backend
	fb       *FrameBuffer
	theme    *Theme
	tabWidth int
}

// New creates a renderer drawing through the backend.
func New(be backend.Backend, theme *Theme, tabWidth int) *Renderer {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &Renderer{
		be:       be,
		fb:       NewFrameBuffer(be),
		theme:    theme,
		tabWidth: tabWidth,
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() *Theme { return r.theme }

// GutterWidth returns the line-number gutter width for a document of
// the given length.
func GutterWidth(lineCount int) int {
	digits := 1
	for n := lineCount; n >= 10; n /= 10 {
		digits++
	}
	if digits < 3 {
		digits = 3
	}
	return digits + 1
}

// Layout sizes the viewport for the current terminal and chrome. The
// app calls this before cursor following so scrolling sees the real
// content area.
func (r *Renderer) Layout(f *Frame) {
	if f.View == nil {
		return // welcome frames carry no viewport
	}
	w, h := r.be.Size()
	contentW := w - f.SidebarWidth - GutterWidth(lineCount(f))
	contentH := h - 2 // tab bar and status bar
	f.View.SetSize(contentW, contentH)
}

func lineCount(f *Frame) int {
	if f.Lines == nil {
		return 1
	}
	return f.Lines.LineCount()
}

// Render draws one complete frame and flushes it to the terminal once.
func (r *Renderer) Render(f *Frame) {
	w, h := r.be.Size()
	if w <= 0 || h <= 0 {
		return
	}
	r.Layout(f)

	r.fb.Begin(r.theme.Text())
	r.be.HideCursor()

	for _, run := range composeTabBar(f.Tabs, w, 0, r.theme) {
		r.fb.Push(run)
	}

	if f.SidebarWidth > 0 {
		r.drawSidebar(f, h)
	}

	if f.Welcome != nil {
		r.drawWelcome(f, w, h)
	} else {
		r.drawContent(f, h)
	}

	for _, run := range composeStatus(f.Status, w, h-1, r.theme) {
		r.fb.Push(run)
	}

	r.fb.End()
}

// drawContent draws the gutter and document lines.
func (r *Renderer) drawContent(f *Frame, screenH int) {
	gutterW := GutterWidth(lineCount(f))
	originX := f.SidebarWidth + gutterW
	gutterStyle := Style{FG: r.theme.GutterFG, BG: r.theme.GutterBG}

	from, to := f.View.VisibleLines(lineCount(f))
	for line := from; line < to; line++ {
		y := 1 + line - from
		if y >= screenH-1 {
			break
		}

		num := fmt.Sprintf("%*d ", gutterW-1, line+1)
		r.fb.Push(Run{X: f.SidebarWidth, Y: y, Text: []rune(num), Style: gutterStyle})

		in := LineInput{
			Line:       f.Lines.Line(line),
			CursorCol:  -1,
			CursorLine: line == f.Cursor.Line,
			LeftCol:    f.View.LeftCol(),
			Width:      f.View.Width(),
			TabWidth:   r.tabWidth,
		}
		if f.Spans != nil {
			in.Spans = f.Spans.Spans(line)
		}
		if f.Matches != nil {
			in.Matches = f.Matches.MatchesOnLine(line)
		}
		if line == f.Cursor.Line {
			in.CursorCol = f.Cursor.Col
		}
		for _, run := range ComposeLine(in, r.theme) {
			run.X += originX
			run.Y = y
			r.fb.Push(run)
		}
	}
}

// drawSidebar draws the file tree down the left edge, under the tab
// bar and above the status bar.
func (r *Renderer) drawSidebar(f *Frame, screenH int) {
	base := Style{FG: r.theme.SidebarFG, BG: r.theme.SidebarBG}
	for y := 1; y < screenH-1; y++ {
		idx := f.SidebarTop + y - 1
		st := base
		text := make([]rune, 0, f.SidebarWidth)
		if idx >= 0 && idx < len(f.Sidebar) {
			row := f.Sidebar[idx]
			if row.Selected {
				st = st.WithBG(r.theme.SidebarSelBG)
			}
			if row.IsDir {
				st = st.WithFG(r.theme.SidebarDirFG)
			}
			text = append(text, []rune(sidebarLabel(row))...)
		}
		for len(text) < f.SidebarWidth {
			text = append(text, ' ')
		}
		if len(text) > f.SidebarWidth {
			text = text[:f.SidebarWidth]
		}
		r.fb.Push(Run{X: 0, Y: y, Text: text, Style: st})
	}
}

func sidebarLabel(row SidebarRow) string {
	indent := ""
	for i := 0; i < row.Depth; i++ {
		indent += "  "
	}
	marker := "  "
	if row.IsDir {
		if row.Expanded {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}
	return " " + indent + marker + row.Name
}

// drawWelcome centers the banner and shortcut lines in the content area.
func (r *Renderer) drawWelcome(f *Frame, screenW, screenH int) {
	all := make([]string, 0, len(f.Welcome.Banner)+len(f.Welcome.Lines)+1)
	all = append(all, f.Welcome.Banner...)
	all = append(all, "")
	all = append(all, f.Welcome.Lines...)

	areaX := f.SidebarWidth
	areaW := screenW - f.SidebarWidth
	top := (screenH - len(all)) / 2
	if top < 1 {
		top = 1
	}

	bannerStyle := r.theme.Text().WithFG(r.theme.TokenColor(syntax.TokenFunction)).WithBold()
	lineStyle := r.theme.Text().WithFG(r.theme.GutterFG)

	for i, text := range all {
		y := top + i
		if y >= screenH-1 {
			break
		}
		if text == "" {
			continue
		}
		st := lineStyle
		if i < len(f.Welcome.Banner) {
			st = bannerStyle
		}
		tw := uniseg.StringWidth(text)
		x := areaX + (areaW-tw)/2
		if x < areaX {
			x = areaX
		}
		r.fb.Push(Run{X: x, Y: y, Text: []rune(text), Style: st})
	}
}
