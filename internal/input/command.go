package input

// Op identifies an editor operation.
type Op int

// Operations, grouped by concern.
const (
	OpNone Op = iota

	// Motion
	OpMoveLeft
	OpMoveRight
	OpMoveUp
	OpMoveDown
	OpPageUp
	OpPageDown
	OpLineStart
	OpLineEnd
	OpDocStart
	OpDocEnd

	// Editing
	OpInsertRune
	OpInsertNewline
	OpInsertTab
	OpDeleteBack
	OpDeleteForward

	// Modes
	OpEnterInsert
	OpExitToNormal

	// Search
	OpStartSearch
	OpSearchNext
	OpSearchPrev
	OpSearchConfirm
	OpSearchCancel
	OpSearchRune
	OpSearchDeleteRune

	// Files and session
	OpSave
	OpQuit

	// Workspace
	OpNextTab
	OpPrevTab
	OpCloseTab

	// Sidebar
	OpToggleSidebar
	OpSidebarUp
	OpSidebarDown
	OpSidebarOpen
)

// opNames maps operations to the names keymap files use.
var opNames = map[Op]string{
	OpMoveLeft:      "move-left",
	OpMoveRight:     "move-right",
	OpMoveUp:        "move-up",
	OpMoveDown:      "move-down",
	OpPageUp:        "page-up",
	OpPageDown:      "page-down",
	OpLineStart:     "line-start",
	OpLineEnd:       "line-end",
	OpDocStart:      "doc-start",
	OpDocEnd:        "doc-end",
	OpInsertNewline: "insert-newline",
	OpInsertTab:     "insert-tab",
	OpDeleteBack:    "delete-back",
	OpDeleteForward: "delete-forward",
	OpEnterInsert:   "enter-insert",
	OpExitToNormal:  "exit-to-normal",
	OpStartSearch:   "start-search",
	OpSearchNext:    "search-next",
	OpSearchPrev:    "search-prev",
	OpSearchConfirm: "search-confirm",
	OpSearchCancel:  "search-cancel",
	OpSave:          "save",
	OpQuit:          "quit",
	OpNextTab:       "next-tab",
	OpPrevTab:       "prev-tab",
	OpCloseTab:      "close-tab",
	OpToggleSidebar: "toggle-sidebar",
	OpSidebarUp:     "sidebar-up",
	OpSidebarDown:   "sidebar-down",
	OpSidebarOpen:   "sidebar-open",
}

// opsByName is the inverse of opNames.
var opsByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

// String returns the keymap-file name of the operation.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "none"
}

// OpByName resolves a keymap-file operation name.
func OpByName(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}

// Command is one resolved editor action. Rune carries the payload for
// OpInsertRune and OpSearchRune.
type Command struct {
	Op   Op
	Rune rune
}

// IsMotion reports whether the command only moves the cursor. The
// event loop coalesces an unbroken run of these, scrolling the
// viewport only after the run's last motion.
func (c Command) IsMotion() bool {
	switch c.Op {
	case OpMoveLeft, OpMoveRight, OpMoveUp, OpMoveDown,
		OpPageUp, OpPageDown, OpLineStart, OpLineEnd, OpDocStart, OpDocEnd:
		return true
	}
	return false
}
