// Package viewport tracks the window of the document that is on screen.
package viewport

// Viewport is the visible rectangle over the document: a top line and a
// left visual column plus the content area dimensions. It scrolls the
// minimum amount needed to keep the cursor inside.
type Viewport struct {
	topLine int
	leftCol int
	width   int
	height  int
}

// New creates a viewport with the given content area size.
func New(width, height int) *Viewport {
	return &Viewport{width: width, height: height}
}

// SetSize updates the content area dimensions, keeping the origin.
func (v *Viewport) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	v.width = width
	v.height = height
}

// TopLine returns the first visible line index.
func (v *Viewport) TopLine() int { return v.topLine }

// LeftCol returns the first visible visual column.
func (v *Viewport) LeftCol() int { return v.leftCol }

// Width returns the content area width in columns.
func (v *Viewport) Width() int { return v.width }

// Height returns the content area height in rows.
func (v *Viewport) Height() int { return v.height }

// Restore sets the origin directly, for snapshot restoration.
func (v *Viewport) Restore(topLine, leftCol int) {
	if topLine < 0 {
		topLine = 0
	}
	if leftCol < 0 {
		leftCol = 0
	}
	v.topLine = topLine
	v.leftCol = leftCol
}

// Follow scrolls just enough to bring the cursor cell at (line, visCol)
// into view.
func (v *Viewport) Follow(line, visCol int) {
	if line < v.topLine {
		v.topLine = line
	} else if v.height > 0 && line >= v.topLine+v.height {
		v.topLine = line - v.height + 1
	}
	if visCol < v.leftCol {
		v.leftCol = visCol
	} else if v.width > 0 && visCol >= v.leftCol+v.width {
		v.leftCol = visCol - v.width + 1
	}
}

// CenterOn scrolls so the line sits mid-window, for search jumps.
func (v *Viewport) CenterOn(line, lineCount int) {
	top := line - v.height/2
	max := lineCount - v.height
	if top > max {
		top = max
	}
	if top < 0 {
		top = 0
	}
	v.topLine = top
}

// Clamp pulls the origin back into the document after it shrinks.
func (v *Viewport) Clamp(lineCount int) {
	if v.topLine >= lineCount {
		v.topLine = lineCount - 1
	}
	if v.topLine < 0 {
		v.topLine = 0
	}
}

// VisibleLines returns the half-open range of document lines on screen.
func (v *Viewport) VisibleLines(lineCount int) (from, to int) {
	from = v.topLine
	to = v.topLine + v.height
	if to > lineCount {
		to = lineCount
	}
	if from > to {
		from = to
	}
	return from, to
}

// Contains reports whether the line is inside the window.
func (v *Viewport) Contains(line int) bool {
	return line >= v.topLine && line < v.topLine+v.height
}
