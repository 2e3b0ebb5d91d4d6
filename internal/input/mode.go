// Package input translates key events into editor commands.
package input

import "fmt"

// Mode is the editor's input mode.
type Mode int

const (
	// ModeNormal is the navigation mode the editor starts in.
	ModeNormal Mode = iota

	// ModeInsert feeds printable keys into the document.
	ModeInsert

	// ModeSearching feeds printable keys into the search pattern.
	ModeSearching
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeSearching:
		return "SEARCH"
	default:
		return "UNKNOWN"
	}
}

// transitions enumerates every legal mode change. The table is total
// over the states: each mode has a defined set of exits, and anything
// outside the table is rejected rather than silently applied.
var transitions = map[Mode][]Mode{
	ModeNormal:    {ModeInsert, ModeSearching},
	ModeInsert:    {ModeNormal},
	ModeSearching: {ModeNormal},
}

// Transition validates a mode change and returns the new mode.
func (m Mode) Transition(to Mode) (Mode, error) {
	if m == to {
		return m, nil
	}
	for _, t := range transitions[m] {
		if t == to {
			return to, nil
		}
	}
	return m, fmt.Errorf("input: no transition %s -> %s", m, to)
}
