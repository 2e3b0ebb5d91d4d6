package renderer

// TabInfo describes one workspace tab for the tab bar.
type TabInfo struct {
	Name     string
	Active   bool
	Modified bool
}

// composeTabBar builds the tab bar runs for row y. Each tab is a
// padded label; the active tab carries the highlight background and a
// modified tab shows a dot marker.
func composeTabBar(tabs []TabInfo, width, y int, theme *Theme) []Run {
	if width <= 0 {
		return nil
	}
	barStyle := Style{FG: theme.TabFG, BG: theme.TabBarBG}

	var runs []Run
	x := 0
	for _, tab := range tabs {
		if x >= width {
			break
		}
		label := " " + tab.Name
		if tab.Modified {
			label += " ●"
		}
		label += " "
		st := barStyle
		if tab.Active {
			st = Style{FG: theme.TabActiveFG, BG: theme.TabActiveBG}
		}
		text := []rune(label)
		if x+len(text) > width {
			text = text[:width-x]
		}
		runs = append(runs, Run{X: x, Y: y, Text: text, Style: st})
		x += len(text)
	}
	if x < width {
		fill := make([]rune, width-x)
		for i := range fill {
			fill[i] = ' '
		}
		runs = append(runs, Run{X: x, Y: y, Text: fill, Style: barStyle})
	}
	return runs
}
