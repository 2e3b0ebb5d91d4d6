package buffer

import "github.com/rivo/uniseg"

// Visual-column arithmetic. Every layer that reasons about horizontal
// placement (cursor motion, span boundaries, render math) goes through
// these functions so there is exactly one notion of column in the
// program. Tabs expand to the next multiple of tabWidth; other runes
// take their terminal display width, so a wide rune occupies two
// columns and is never split.

// RuneDisplayWidth returns the number of columns r occupies when drawn
// at visual column col with the given tab width.
func RuneDisplayWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		if tabWidth <= 0 {
			tabWidth = 1
		}
		return tabWidth - col%tabWidth
	}
	w := uniseg.StringWidth(string(r))
	if w < 0 {
		w = 0
	}
	return w
}

// VisualColumn converts a rune index into a visual column on the line.
// Indexes past the end of the line measure the full line width.
func VisualColumn(line []rune, col, tabWidth int) int {
	v := 0
	for i, r := range line {
		if i >= col {
			break
		}
		v += RuneDisplayWidth(r, v, tabWidth)
	}
	return v
}

// LineDisplayWidth returns the visual width of the whole line.
func LineDisplayWidth(line []rune, tabWidth int) int {
	return VisualColumn(line, len(line), tabWidth)
}

// ColumnForVisual converts a visual column back into a rune index,
// landing on the rune covering the target column. Targets past the end
// of the line clamp to the line length. Vertical motion uses this to
// chase a desired column across lines of different shapes.
func ColumnForVisual(line []rune, target, tabWidth int) int {
	v := 0
	for i, r := range line {
		w := RuneDisplayWidth(r, v, tabWidth)
		if v+w > target {
			return i
		}
		v += w
	}
	return len(line)
}
