// Package core holds the primitive display types shared by the
// renderer and its backends.
package core

import "fmt"

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the #rrggbb form of the color.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style is the full paint for a cell: foreground, background and the
// attributes the editor actually uses.
type Style struct {
	FG   Color
	BG   Color
	Bold bool
}

// WithFG returns the style with a different foreground.
func (s Style) WithFG(c Color) Style {
	s.FG = c
	return s
}

// WithBG returns the style with a different background.
func (s Style) WithBG(c Color) Style {
	s.BG = c
	return s
}

// WithBold returns the style with bold set.
func (s Style) WithBold() Style {
	s.Bold = true
	return s
}

// Run is a horizontal stretch of cells sharing one style. X and Y are
// absolute screen coordinates; Text holds one rune per cell except that
// a wide rune covers its own display width.
type Run struct {
	X, Y  int
	Text  []rune
	Style Style
}
