package search

import (
	"reflect"
	"testing"

	"github.com/reditor/reditor/internal/engine/buffer"
)

type docSource struct {
	lines []string
}

func (d docSource) Line(i int) []rune {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return []rune(d.lines[i])
}

func (d docSource) LineCount() int { return len(d.lines) }

func TestSearchIsCaseInsensitive(t *testing.T) {
	src := docSource{lines: []string{"Foo bar", "baz FOO", "foo"}}
	e := New()
	e.Start(Snapshot{})
	e.SetPattern("foo", src)

	want := []Match{
		{Line: 0, StartCol: 0, EndCol: 3},
		{Line: 1, StartCol: 4, EndCol: 7},
		{Line: 2, StartCol: 0, EndCol: 3},
	}
	if !reflect.DeepEqual(e.Matches(), want) {
		t.Fatalf("Matches() = %v, want %v", e.Matches(), want)
	}
}

func TestSelectionStartsAtCursor(t *testing.T) {
	src := docSource{lines: []string{"x", "match", "x", "match", "x"}}
	e := New()
	e.Start(Snapshot{Cursor: buffer.Position{Line: 2}})
	e.SetPattern("match", src)

	m, ok := e.Current()
	if !ok || m.Line != 3 {
		t.Fatalf("Current() = %v %v, want line 3", m, ok)
	}
}

func TestSelectionWrapsWhenAllBehind(t *testing.T) {
	src := docSource{lines: []string{"match", "x", "x"}}
	e := New()
	e.Start(Snapshot{Cursor: buffer.Position{Line: 2}})
	e.SetPattern("match", src)

	m, ok := e.Current()
	if !ok || m.Line != 0 {
		t.Fatalf("Current() = %v %v, want wrap to line 0", m, ok)
	}
}

func TestNextPrevAreCyclic(t *testing.T) {
	// Matches on lines 2, 5 and 9; cursor sits past all of them except
	// by wrap, so the session selects line 2 first.
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "nothing"
	}
	lines[2], lines[5], lines[9] = "hit", "hit", "hit"
	src := docSource{lines: lines}

	e := New()
	e.Start(Snapshot{Cursor: buffer.Position{Line: 9, Col: 1}})
	e.SetPattern("hit", src)

	m, _ := e.Current()
	if m.Line != 2 {
		t.Fatalf("initial selection line %d, want 2 (wrapped)", m.Line)
	}

	order := []int{5, 9, 2, 5}
	for _, wantLine := range order {
		m, ok := e.Next()
		if !ok || m.Line != wantLine {
			t.Fatalf("Next() = %v %v, want line %d", m, ok, wantLine)
		}
	}
	back := []int{2, 9, 5, 2}
	for _, wantLine := range back {
		m, ok := e.Prev()
		if !ok || m.Line != wantLine {
			t.Fatalf("Prev() = %v %v, want line %d", m, ok, wantLine)
		}
	}
}

func TestPatternEditingRescans(t *testing.T) {
	src := docSource{lines: []string{"car cart card"}}
	e := New()
	e.Start(Snapshot{})

	e.Append('c', src)
	e.Append('a', src)
	e.Append('r', src)
	if n := len(e.Matches()); n != 3 {
		t.Fatalf("pattern %q: %d matches, want 3", e.Pattern(), n)
	}

	e.Append('t', src)
	if n := len(e.Matches()); n != 1 {
		t.Fatalf("pattern %q: %d matches, want 1", e.Pattern(), n)
	}

	e.DeleteLast(src)
	if n := len(e.Matches()); n != 3 {
		t.Fatalf("after delete: %d matches, want 3", n)
	}

	e.DeleteLast(src)
	e.DeleteLast(src)
	e.DeleteLast(src)
	if len(e.Matches()) != 0 {
		t.Fatalf("empty pattern should have no matches")
	}
	if _, ok := e.Current(); ok {
		t.Fatal("empty pattern should have no selection")
	}
}

func TestCancelReturnsExactSnapshot(t *testing.T) {
	snap := Snapshot{
		Cursor:  buffer.Position{Line: 7, Col: 3},
		TopLine: 5,
		LeftCol: 2,
	}
	src := docSource{lines: []string{"aaa", "bbb"}}
	e := New()
	e.Start(snap)
	e.SetPattern("bbb", src)
	e.Next()

	got := e.Cancel()
	if got != snap {
		t.Fatalf("Cancel() = %+v, want %+v", got, snap)
	}
	if e.Active() {
		t.Error("engine still active after cancel")
	}
	if len(e.Matches()) != 0 {
		t.Error("matches survive cancel")
	}
}

func TestConfirmKeepsNoSnapshot(t *testing.T) {
	src := docSource{lines: []string{"aaa"}}
	e := New()
	e.Start(Snapshot{Cursor: buffer.Position{Line: 0, Col: 1}})
	e.SetPattern("aaa", src)
	e.Confirm()
	if e.Active() {
		t.Error("engine still active after confirm")
	}
	if len(e.Matches()) != 1 {
		t.Error("confirm should keep the match list for next/prev")
	}
	if _, ok := e.Next(); !ok {
		t.Error("next after confirm should still cycle")
	}
}

func TestMatchesOnLine(t *testing.T) {
	src := docSource{lines: []string{"ab ab", "none", "ab"}}
	e := New()
	e.Start(Snapshot{})
	e.SetPattern("ab", src)

	if got := e.MatchesOnLine(0); len(got) != 2 {
		t.Errorf("line 0: %v", got)
	}
	if got := e.MatchesOnLine(1); len(got) != 0 {
		t.Errorf("line 1: %v", got)
	}
	if got := e.MatchesOnLine(2); len(got) != 1 {
		t.Errorf("line 2: %v", got)
	}
}

func TestOverlappingMatches(t *testing.T) {
	src := docSource{lines: []string{"aaaa"}}
	e := New()
	e.Start(Snapshot{})
	e.SetPattern("aa", src)
	if n := len(e.Matches()); n != 3 {
		t.Fatalf("%d matches, want 3 (every start position)", n)
	}
}
