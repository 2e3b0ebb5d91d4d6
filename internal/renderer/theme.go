package renderer

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"

	"github.com/reditor/reditor/internal/syntax"
)

// Theme holds every color the renderer paints with. Token colors drive
// syntax spans; the rest cover the chrome around the text area.
type Theme struct {
	Name string

	Background Color
	Foreground Color

	tokens [16]Color

	GutterFG Color
	GutterBG Color

	// CursorLineBG tints the line the cursor is on. Derived from the
	// background unless a theme file overrides it.
	CursorLineBG Color

	SearchFG Color
	SearchBG Color

	StatusFG Color
	StatusBG Color
	// StatusInsertBG replaces StatusBG while in insert mode.
	StatusInsertBG Color

	TabBarBG    Color
	TabFG       Color
	TabActiveFG Color
	TabActiveBG Color

	SidebarBG    Color
	SidebarFG    Color
	SidebarDirFG Color
	SidebarSelBG Color

	MessageFG Color
}

// OneDark returns the default theme.
func OneDark() *Theme {
	t := &Theme{
		Name:       "one-dark",
		Background: RGB(15, 18, 15),
		Foreground: RGB(200, 200, 200),

		GutterFG: RGB(92, 99, 112),

		SearchFG: RGB(255, 200, 50),
		SearchBG: RGB(80, 60, 10),

		StatusFG: RGB(220, 223, 228),
		StatusBG: RGB(40, 44, 52),

		TabBarBG:    RGB(24, 28, 24),
		TabFG:       RGB(130, 137, 151),
		TabActiveFG: RGB(220, 223, 228),
		TabActiveBG: RGB(40, 44, 52),

		SidebarFG:    RGB(171, 178, 191),
		SidebarDirFG: RGB(97, 175, 239),

		MessageFG: RGB(229, 192, 123),
	}
	t.setToken(syntax.TokenNormal, RGB(200, 200, 200))
	t.setToken(syntax.TokenKeyword, RGB(198, 120, 221))
	t.setToken(syntax.TokenString, RGB(152, 195, 121))
	t.setToken(syntax.TokenComment, RGB(92, 99, 112))
	t.setToken(syntax.TokenNumber, RGB(209, 154, 102))
	t.setToken(syntax.TokenTypeName, RGB(229, 192, 123))
	t.setToken(syntax.TokenFunction, RGB(97, 175, 239))
	t.setToken(syntax.TokenOperator, RGB(86, 182, 194))
	t.setToken(syntax.TokenPunctuation, RGB(171, 178, 191))
	t.setToken(syntax.TokenAttribute, RGB(229, 192, 123))
	t.setToken(syntax.TokenMacro, RGB(86, 182, 194))
	t.setToken(syntax.TokenLifetime, RGB(209, 154, 102))
	t.derive()
	return t
}

func (t *Theme) setToken(tt syntax.TokenType, c Color) {
	if int(tt) < len(t.tokens) {
		t.tokens[tt] = c
	}
}

// TokenColor returns the foreground for a token type.
func (t *Theme) TokenColor(tt syntax.TokenType) Color {
	if int(tt) < len(t.tokens) {
		return t.tokens[tt]
	}
	return t.Foreground
}

// TokenStyle returns the full cell style for a token type over the
// content background.
func (t *Theme) TokenStyle(tt syntax.TokenType) Style {
	return Style{FG: t.TokenColor(tt), BG: t.Background}
}

// Text returns the default style for unstyled content.
func (t *Theme) Text() Style {
	return Style{FG: t.Foreground, BG: t.Background}
}

// SearchStyle returns the style painted over search matches.
func (t *Theme) SearchStyle() Style {
	return Style{FG: t.SearchFG, BG: t.SearchBG}
}

// CursorStyle returns the block cursor cell style. It replaces whatever
// is underneath rather than blending with it.
func (t *Theme) CursorStyle() Style {
	return Style{FG: t.Background, BG: t.Foreground}
}

// derive fills the computed colors from the base palette. Blending in
// Lab keeps the tints perceptually even across themes.
func (t *Theme) derive() {
	bg := toColorful(t.Background)
	fg := toColorful(t.Foreground)
	t.CursorLineBG = fromColorful(bg.BlendLab(fg, 0.07))

	status := toColorful(t.StatusBG)
	accent := toColorful(t.TokenColor(syntax.TokenString))
	t.StatusInsertBG = fromColorful(status.BlendLab(accent, 0.35))

	t.GutterBG = t.Background
	t.SidebarBG = fromColorful(bg.BlendLab(fg, 0.03))
	t.SidebarSelBG = fromColorful(bg.BlendLab(fg, 0.15))
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// tokenNamesForTheme maps theme-file token keys to token types.
var tokenNamesForTheme = map[string]syntax.TokenType{
	"normal":      syntax.TokenNormal,
	"keyword":     syntax.TokenKeyword,
	"string":      syntax.TokenString,
	"comment":     syntax.TokenComment,
	"number":      syntax.TokenNumber,
	"type":        syntax.TokenTypeName,
	"function":    syntax.TokenFunction,
	"operator":    syntax.TokenOperator,
	"punctuation": syntax.TokenPunctuation,
	"attribute":   syntax.TokenAttribute,
	"macro":       syntax.TokenMacro,
	"lifetime":    syntax.TokenLifetime,
}

// LoadThemeFile overlays colors from a JSON theme file onto the theme.
// Only the keys present in the file change; derived colors are then
// recomputed unless the file pins them.
//
//	{
//	  "name": "my-theme",
//	  "colors": {
//	    "background": "#1e222a",
//	    "foreground": "#c8ccd4",
//	    "search.fg": "#ffc832",
//	    "tokens": {"keyword": "#c678dd"}
//	  }
//	}
func (t *Theme) LoadThemeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("theme: read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("theme: %s is not valid JSON", path)
	}
	doc := gjson.ParseBytes(data)

	if name := doc.Get("name"); name.Exists() {
		t.Name = name.String()
	}

	assign := func(key string, dst *Color) error {
		v := doc.Get("colors." + key)
		if !v.Exists() {
			return nil
		}
		c, err := parseHexColor(v.String())
		if err != nil {
			return fmt.Errorf("theme: %s: %w", key, err)
		}
		*dst = c
		return nil
	}

	fields := map[string]*Color{
		"background":    &t.Background,
		"foreground":    &t.Foreground,
		"gutter.fg":     &t.GutterFG,
		"search.fg":     &t.SearchFG,
		"search.bg":     &t.SearchBG,
		"status.fg":     &t.StatusFG,
		"status.bg":     &t.StatusBG,
		"tabbar.bg":     &t.TabBarBG,
		"tab.fg":        &t.TabFG,
		"tab.active.fg": &t.TabActiveFG,
		"tab.active.bg": &t.TabActiveBG,
		"sidebar.fg":    &t.SidebarFG,
		"sidebar.dir":   &t.SidebarDirFG,
		"message.fg":    &t.MessageFG,
	}
	for key, dst := range fields {
		if err := assign(key, dst); err != nil {
			return err
		}
	}

	doc.Get("colors.tokens").ForEach(func(key, value gjson.Result) bool {
		tt, ok := tokenNamesForTheme[key.String()]
		if !ok {
			return true
		}
		c, perr := parseHexColor(value.String())
		if perr != nil {
			err = fmt.Errorf("theme: tokens.%s: %w", key.String(), perr)
			return false
		}
		t.setToken(tt, c)
		return true
	})
	if err != nil {
		return err
	}

	t.derive()

	// Derived colors may still be pinned explicitly.
	overrides := map[string]*Color{
		"cursorline.bg":    &t.CursorLineBG,
		"status.insert.bg": &t.StatusInsertBG,
		"sidebar.bg":       &t.SidebarBG,
		"sidebar.sel.bg":   &t.SidebarSelBG,
	}
	for key, dst := range overrides {
		if err := assign(key, dst); err != nil {
			return err
		}
	}
	return nil
}

func parseHexColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return fromColorful(c), nil
}
