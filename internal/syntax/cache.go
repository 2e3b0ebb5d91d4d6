package syntax

// LineSource supplies line content to the cache. The document buffer
// implements this.
type LineSource interface {
	// Line returns the runes of line i. Out of range returns nil.
	Line(i int) []rune

	// LineCount returns the number of lines in the document.
	LineCount() int
}

type cacheEntry struct {
	spans []Span
	entry ExitState // state the line was scanned with
	exit  ExitState // state the line ended in
	valid bool
}

// Cache memoizes per-line scan results keyed by line index. Each line's
// scan depends only on its text and the previous line's exit state, so an
// edit invalidates forward from the edited line and the recompute stops
// as soon as a line's entry state matches what it was scanned with. An
// unterminated block comment legitimately cascades to the end of the
// document.
//
// The cache is not synchronized; the event loop is its only caller.
type Cache struct {
	source  LineSource
	profile *Profile
	entries []cacheEntry
	// dirtyFrom is the first line whose cached result may be stale.
	dirtyFrom int
}

// NewCache creates a cache over the given source and language profile.
// A nil profile means every line scans as a single normal span.
func NewCache(source LineSource, profile *Profile) *Cache {
	n := source.LineCount()
	return &Cache{
		source:  source,
		profile: profile,
		entries: make([]cacheEntry, n),
	}
}

// Profile returns the language profile the cache scans with.
func (c *Cache) Profile() *Profile {
	return c.profile
}

// Spans returns the scan result for line i, computing any stale lines at
// or before i first. The returned slice is owned by the cache; callers
// must not mutate it.
func (c *Cache) Spans(i int) []Span {
	if i < 0 || i >= len(c.entries) {
		return nil
	}
	c.ensure(i)
	return c.entries[i].spans
}

// ExitState returns the state line i ends in, computing it if needed.
func (c *Cache) ExitState(i int) ExitState {
	if i < 0 || i >= len(c.entries) {
		return StateNormal
	}
	c.ensure(i)
	return c.entries[i].exit
}

// InvalidateFrom marks line i and everything after it as needing a
// rescan. Lines whose entry state turns out unchanged are kept when the
// cascade reaches them.
func (c *Cache) InvalidateFrom(i int) {
	if i < 0 {
		i = 0
	}
	if i < c.dirtyFrom {
		c.dirtyFrom = i
	}
	if i < len(c.entries) {
		c.entries[i].valid = false
	}
}

// InsertLine makes room for a new line at index i, shifting later
// entries down. The caller still invalidates from the edit point.
func (c *Cache) InsertLine(i int) {
	if i < 0 || i > len(c.entries) {
		return
	}
	c.entries = append(c.entries, cacheEntry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = cacheEntry{}
	c.InvalidateFrom(i)
}

// RemoveLine drops the cache entry for line i, shifting later entries up.
func (c *Cache) RemoveLine(i int) {
	if i < 0 || i >= len(c.entries) {
		return
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	c.InvalidateFrom(i)
}

// ensure makes lines up through i consistent. The walk starts at the
// first possibly-stale line; a line is rescanned only when it is marked
// invalid or its recorded entry state no longer matches the state
// propagated from the line above, so an edit whose exit state settles
// immediately touches nothing below it.
func (c *Cache) ensure(i int) {
	if i < c.dirtyFrom {
		return
	}
	prev := StateNormal
	if c.dirtyFrom > 0 {
		prev = c.entries[c.dirtyFrom-1].exit
	}
	for j := c.dirtyFrom; j < len(c.entries); j++ {
		e := &c.entries[j]
		if !e.valid || e.entry != prev {
			spans, exit := Tokenize(c.source.Line(j), prev, c.profile)
			*e = cacheEntry{spans: spans, entry: prev, exit: exit, valid: true}
		}
		prev = e.exit
		if j >= i {
			c.dirtyFrom = j + 1
			return
		}
	}
	c.dirtyFrom = len(c.entries)
}
