// Package sidebar implements the file-tree panel.
package sidebar

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultWidth is the panel width in columns when visible.
const DefaultWidth = 30

// skipNames are directory entries the tree never shows, beyond hidden
// files.
var skipNames = map[string]bool{
	"target":       true,
	"node_modules": true,
}

// entry is one node of the lazily loaded tree.
type entry struct {
	name     string
	path     string
	isDir    bool
	children []*entry
	loaded   bool
	expanded bool
	depth    int
}

// Row is one visible line of the flattened tree.
type Row struct {
	Name     string
	Path     string
	IsDir    bool
	Depth    int
	Expanded bool
}

// Sidebar is the file tree rooted at the project directory. Children
// load on first expansion; the flattened view is cached and rebuilt
// only after a structural change.
type Sidebar struct {
	root     string
	entries  []*entry
	selected int
	visible  bool
	width    int

	filter string

	flat       []Row
	cacheDirty bool
}

// New builds a sidebar rooted at dir.
func New(dir string) *Sidebar {
	s := &Sidebar{
		root:       dir,
		visible:    true,
		width:      DefaultWidth,
		cacheDirty: true,
	}
	s.entries = readTree(dir, 0)
	return s
}

// readTree lists one directory level: directories first, then files,
// case-insensitively by name, skipping hidden and generated entries.
func readTree(dir string, depth int) []*entry {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	sort.Slice(items, func(i, j int) bool {
		di, dj := items[i].IsDir(), items[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(items[i].Name()) < strings.ToLower(items[j].Name())
	})
	var out []*entry
	for _, item := range items {
		name := item.Name()
		if strings.HasPrefix(name, ".") || skipNames[name] {
			continue
		}
		out = append(out, &entry{
			name:  name,
			path:  filepath.Join(dir, name),
			isDir: item.IsDir(),
			depth: depth,
		})
	}
	return out
}

// Root returns the tree's root directory.
func (s *Sidebar) Root() string { return s.root }

// Visible reports whether the panel is shown.
func (s *Sidebar) Visible() bool { return s.visible }

// Toggle flips the panel's visibility.
func (s *Sidebar) Toggle() { s.visible = !s.visible }

// SetWidth overrides the panel width.
func (s *Sidebar) SetWidth(w int) {
	if w > 0 {
		s.width = w
	}
}

// Width returns the panel's width, zero when hidden.
func (s *Sidebar) Width() int {
	if !s.visible {
		return 0
	}
	return s.width
}

// SelectedIndex returns the index of the selected row.
func (s *Sidebar) SelectedIndex() int { return s.selected }

// Rows returns the flattened visible tree.
func (s *Sidebar) Rows() []Row {
	s.ensureFlat()
	return s.flat
}

// Len returns the number of visible rows.
func (s *Sidebar) Len() int {
	s.ensureFlat()
	return len(s.flat)
}

// SelectNext moves the selection down one row.
func (s *Sidebar) SelectNext() {
	if s.selected+1 < s.Len() {
		s.selected++
	}
}

// SelectPrev moves the selection up one row.
func (s *Sidebar) SelectPrev() {
	if s.selected > 0 {
		s.selected--
	}
}

// Selected returns the selected row.
func (s *Sidebar) Selected() (Row, bool) {
	s.ensureFlat()
	if s.selected < 0 || s.selected >= len(s.flat) {
		return Row{}, false
	}
	return s.flat[s.selected], true
}

// ToggleSelected expands or collapses the selected directory. It does
// nothing for files; opening those is the caller's business.
func (s *Sidebar) ToggleSelected() {
	row, ok := s.Selected()
	if !ok || !row.IsDir {
		return
	}
	if e := findEntry(s.entries, row.Path); e != nil {
		e.expanded = !e.expanded
		if e.expanded && !e.loaded {
			e.children = readTree(e.path, e.depth+1)
			e.loaded = true
		}
		s.cacheDirty = true
	}
}

func findEntry(entries []*entry, path string) *entry {
	for _, e := range entries {
		if e.path == path {
			return e
		}
		if e.isDir && e.expanded {
			if found := findEntry(e.children, path); found != nil {
				return found
			}
		}
	}
	return nil
}

// SetFilter narrows the view to rows whose name contains the query,
// case-insensitively. Collapsed directories are not searched; expand
// them first to include their contents.
func (s *Sidebar) SetFilter(query string) {
	s.filter = query
	s.selected = 0
	s.cacheDirty = true
}

// Filter returns the active filter query.
func (s *Sidebar) Filter() string { return s.filter }

// ClearFilter removes the filter.
func (s *Sidebar) ClearFilter() {
	s.filter = ""
	s.selected = 0
	s.cacheDirty = true
}

// Refresh reloads changed directories from disk, keeping expansion
// state for paths that still exist. The watcher calls MarkStale; the
// next Rows call pays for the reload.
func (s *Sidebar) Refresh() {
	s.entries = reload(s.entries, s.root, 0)
	s.cacheDirty = true
	if s.selected >= s.Len() {
		s.selected = s.Len() - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func reload(old []*entry, dir string, depth int) []*entry {
	fresh := readTree(dir, depth)
	prev := make(map[string]*entry, len(old))
	for _, e := range old {
		prev[e.path] = e
	}
	for _, e := range fresh {
		if p, ok := prev[e.path]; ok && p.isDir == e.isDir && p.expanded {
			e.expanded = true
			e.loaded = true
			e.children = reload(p.children, e.path, depth+1)
		}
	}
	return fresh
}

// MarkStale forces the next Rows call to rebuild the flat cache.
func (s *Sidebar) MarkStale() {
	s.cacheDirty = true
}

func (s *Sidebar) ensureFlat() {
	if !s.cacheDirty {
		return
	}
	s.flat = s.flat[:0]
	if s.filter == "" {
		s.flatten(s.entries)
	} else {
		s.flattenFiltered(s.entries, strings.ToLower(s.filter))
	}
	s.cacheDirty = false
}

func (s *Sidebar) flatten(entries []*entry) {
	for _, e := range entries {
		s.flat = append(s.flat, rowOf(e))
		if e.isDir && e.expanded {
			s.flatten(e.children)
		}
	}
}

func (s *Sidebar) flattenFiltered(entries []*entry, query string) {
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.name), query) {
			s.flat = append(s.flat, rowOf(e))
		}
		if e.isDir && e.expanded {
			s.flattenFiltered(e.children, query)
		}
	}
}

func rowOf(e *entry) Row {
	return Row{
		Name:     e.name,
		Path:     e.path,
		IsDir:    e.isDir,
		Depth:    e.depth,
		Expanded: e.expanded,
	}
}
