package app

import (
	"fmt"
	"path/filepath"

	"github.com/reditor/reditor/internal/renderer"
)

var welcomeBanner = []string{
	`   ____  ____ ___ _____ ___  ____`,
	`  |  _ \| ___|  _ \_ _|_   _/ _ \|  _ \`,
	`  | |_) | |__| | | | |  | || | | | |_) |`,
	`  |  _ <| __|| |_| | |  | || |_| |  _ <`,
	`  |_| \_\____|____/___| |_| \___/|_| \_\`,
}

// welcomeScreen builds the start-screen content shown when no file is
// open: a banner, the key shortcuts, and recently opened files.
func welcomeScreen(recent []string) *renderer.Welcome {
	lines := []string{
		"",
		"Ctrl+B  toggle file tree",
		"Ctrl+S  save    Ctrl+Q  quit",
		"i  insert mode    /  search",
		"",
	}
	if len(recent) > 0 {
		lines = append(lines, "Recent files:")
		for i, f := range recent {
			if i >= 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %d  %s", i+1, filepath.Base(f)))
		}
	}
	return &renderer.Welcome{
		Banner: welcomeBanner,
		Lines:  lines,
	}
}
