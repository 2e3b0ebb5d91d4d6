// Package search implements the in-buffer text search session.
package search

import (
	"sort"
	"unicode"

	"github.com/reditor/reditor/internal/engine/buffer"
)

// Match is one pattern occurrence. Columns are rune indices on the line,
// half-open.
type Match struct {
	Line     int
	StartCol int
	EndCol   int
}

// Snapshot records where the user was when the search began, so a
// cancelled search can put everything back exactly.
type Snapshot struct {
	Cursor  buffer.Position
	TopLine int
	LeftCol int
}

// Source supplies lines to scan. The document buffer implements this.
type Source interface {
	Line(i int) []rune
	LineCount() int
}

// Engine runs one interactive search session at a time. While a session
// is live it owns the pattern, the ordered match list and the selected
// match; the caller feeds it pattern keystrokes and next/prev requests
// and moves the cursor to whatever Current returns.
type Engine struct {
	active   bool
	pattern  []rune
	matches  []Match
	current  int
	snapshot Snapshot
}

// New creates an idle search engine.
func New() *Engine {
	return &Engine{current: -1}
}

// Active reports whether a search session is in progress.
func (e *Engine) Active() bool { return e.active }

// Pattern returns the current pattern text.
func (e *Engine) Pattern() string { return string(e.pattern) }

// Matches returns all matches in document order. The slice is owned by
// the engine.
func (e *Engine) Matches() []Match { return e.matches }

// Start begins a session, remembering the state to restore on cancel.
func (e *Engine) Start(snap Snapshot) {
	e.active = true
	e.pattern = e.pattern[:0]
	e.matches = nil
	e.current = -1
	e.snapshot = snap
}

// Snapshot returns the state captured at Start.
func (e *Engine) Snapshot() Snapshot { return e.snapshot }

// SetPattern replaces the pattern and rescans the whole document. The
// selected match becomes the first one at or after the saved cursor,
// wrapping to the top when everything is behind it.
func (e *Engine) SetPattern(pattern string, src Source) {
	e.pattern = []rune(pattern)
	e.rescan(src)
}

// Append adds one rune to the pattern and rescans.
func (e *Engine) Append(r rune, src Source) {
	e.pattern = append(e.pattern, r)
	e.rescan(src)
}

// DeleteLast removes the final pattern rune and rescans.
func (e *Engine) DeleteLast(src Source) {
	if len(e.pattern) > 0 {
		e.pattern = e.pattern[:len(e.pattern)-1]
	}
	e.rescan(src)
}

// rescan rebuilds the match list from scratch. Incremental maintenance
// is not worth the bookkeeping at interactive pattern lengths.
func (e *Engine) rescan(src Source) {
	e.matches = e.matches[:0]
	if len(e.pattern) == 0 {
		e.current = -1
		return
	}
	pat := foldRunes(e.pattern)
	for i := 0; i < src.LineCount(); i++ {
		line := foldRunes(src.Line(i))
		for start := 0; start+len(pat) <= len(line); start++ {
			if runesEqual(line[start:start+len(pat)], pat) {
				e.matches = append(e.matches, Match{
					Line:     i,
					StartCol: start,
					EndCol:   start + len(pat),
				})
			}
		}
	}
	e.selectFrom(e.snapshot.Cursor)
}

// selectFrom picks the first match at or after p, wrapping to the first
// match overall when none follows.
func (e *Engine) selectFrom(p buffer.Position) {
	if len(e.matches) == 0 {
		e.current = -1
		return
	}
	for i, m := range e.matches {
		if m.Line > p.Line || (m.Line == p.Line && m.StartCol >= p.Col) {
			e.current = i
			return
		}
	}
	e.current = 0
}

// Current returns the selected match.
func (e *Engine) Current() (Match, bool) {
	if e.current < 0 || e.current >= len(e.matches) {
		return Match{}, false
	}
	return e.matches[e.current], true
}

// Next advances to the following match, wrapping past the last one.
func (e *Engine) Next() (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	e.current = (e.current + 1) % len(e.matches)
	return e.matches[e.current], true
}

// Prev steps back to the preceding match, wrapping past the first one.
func (e *Engine) Prev() (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	e.current--
	if e.current < 0 {
		e.current = len(e.matches) - 1
	}
	return e.matches[e.current], true
}

// MatchesOnLine returns the matches that start on line i, for overlay
// rendering. The result aliases the engine's match list.
func (e *Engine) MatchesOnLine(i int) []Match {
	lo := sort.Search(len(e.matches), func(k int) bool { return e.matches[k].Line >= i })
	hi := sort.Search(len(e.matches), func(k int) bool { return e.matches[k].Line > i })
	return e.matches[lo:hi]
}

// Confirm ends the session keeping the current position. The snapshot
// is discarded but the match list survives, so next/prev keep working
// from normal mode until a new search starts.
func (e *Engine) Confirm() {
	e.active = false
	e.snapshot = Snapshot{}
}

// Cancel ends the session and returns the snapshot to restore. The
// caller applies cursor and viewport together, as one unit.
func (e *Engine) Cancel() Snapshot {
	snap := e.snapshot
	e.reset()
	return snap
}

func (e *Engine) reset() {
	e.active = false
	e.pattern = e.pattern[:0]
	e.matches = nil
	e.current = -1
}

// foldRunes lowercases rune by rune, preserving indices. Folding per
// rune keeps match columns aligned with the original line.
func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
