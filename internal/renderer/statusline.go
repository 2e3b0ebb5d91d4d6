package renderer

import "fmt"

// StatusInfo is everything the status bar shows.
type StatusInfo struct {
	// Mode is the indicator text, e.g. "NORMAL" or "INSERT".
	Mode string

	// Insert tints the bar with the insert-mode background.
	Insert bool

	// FileName is the display name of the active document.
	FileName string

	Dirty    bool
	ReadOnly bool

	// Line and Col are 1-based display coordinates.
	Line, Col int
	LineCount int

	// Message is a transient notice (save errors, confirmations). It
	// replaces the left side until the next keystroke clears it.
	Message string

	// SearchPrompt, when non-empty, replaces the left side with the
	// live search pattern.
	SearchPrompt string
}

// composeStatus builds the status bar runs for row y. The whole row is
// painted in the bar background; the right side overwrites its tail.
func composeStatus(info StatusInfo, width, y int, theme *Theme) []Run {
	if width <= 0 {
		return nil
	}
	bg := theme.StatusBG
	if info.Insert {
		bg = theme.StatusInsertBG
	}
	base := Style{FG: theme.StatusFG, BG: bg}

	leftStyle := base
	if info.Message != "" {
		leftStyle = base.WithFG(theme.MessageFG)
	}

	left := []rune(statusLeft(info))
	if len(left) > width {
		left = left[:width]
	}
	right := []rune(fmt.Sprintf(" Ln %d, Col %d | %d lines ", info.Line, info.Col, info.LineCount))

	runs := []Run{{X: 0, Y: y, Text: left, Style: leftStyle}}
	if len(left) < width {
		fill := make([]rune, width-len(left))
		for i := range fill {
			fill[i] = ' '
		}
		runs = append(runs, Run{X: len(left), Y: y, Text: fill, Style: base})
	}
	if len(right) <= width-len(left) {
		runs = append(runs, Run{X: width - len(right), Y: y, Text: right, Style: base})
	}
	return runs
}

func statusLeft(info StatusInfo) string {
	switch {
	case info.SearchPrompt != "":
		return " /" + info.SearchPrompt
	case info.Message != "":
		return " " + info.Message
	}
	name := info.FileName
	if name == "" {
		name = "[No Name]"
	}
	marks := ""
	if info.Dirty {
		marks = "[+] "
	}
	if info.ReadOnly {
		marks += "[RO] "
	}
	return fmt.Sprintf(" -- %s --  %s%s", info.Mode, marks, name)
}
