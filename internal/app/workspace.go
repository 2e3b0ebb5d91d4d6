package app

import (
	"path/filepath"

	"github.com/reditor/reditor/internal/syntax"
)

// Workspace holds the open documents as an ordered tab list with one
// active tab.
type Workspace struct {
	docs   []*Document
	active int
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{active: -1}
}

// Empty reports whether no documents are open.
func (w *Workspace) Empty() bool { return len(w.docs) == 0 }

// Len returns the number of open documents.
func (w *Workspace) Len() int { return len(w.docs) }

// Active returns the active document, or nil with no tabs open.
func (w *Workspace) Active() *Document {
	if w.active < 0 || w.active >= len(w.docs) {
		return nil
	}
	return w.docs[w.active]
}

// ActiveIndex returns the active tab index, -1 with no tabs open.
func (w *Workspace) ActiveIndex() int { return w.active }

// Documents returns the open documents in tab order.
func (w *Workspace) Documents() []*Document { return w.docs }

// Open opens the file at path in a new tab and activates it. A path
// that is already open just switches to its tab.
func (w *Workspace) Open(path string, reg *syntax.Registry, tabWidth int) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for i, d := range w.docs {
		if d.Buffer().Path() == abs {
			w.active = i
			return d, nil
		}
	}
	doc, err := Open(abs, reg, tabWidth)
	if err != nil {
		return nil, err
	}
	w.docs = append(w.docs, doc)
	w.active = len(w.docs) - 1
	return doc, nil
}

// Attach adds an already-built document as a new active tab.
func (w *Workspace) Attach(doc *Document) {
	w.docs = append(w.docs, doc)
	w.active = len(w.docs) - 1
}

// Close removes the active tab. Closing a dirty document fails with
// ErrUnsavedChanges unless force is set.
func (w *Workspace) Close(force bool) error {
	doc := w.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	if doc.Buffer().Dirty() && !force {
		return ErrUnsavedChanges
	}
	w.docs = append(w.docs[:w.active], w.docs[w.active+1:]...)
	if w.active >= len(w.docs) {
		w.active = len(w.docs) - 1
	}
	return nil
}

// Next activates the following tab, wrapping at the end.
func (w *Workspace) Next() {
	if len(w.docs) > 1 {
		w.active = (w.active + 1) % len(w.docs)
	}
}

// Prev activates the preceding tab, wrapping at the start.
func (w *Workspace) Prev() {
	if len(w.docs) > 1 {
		w.active = (w.active - 1 + len(w.docs)) % len(w.docs)
	}
}

// AnyDirty reports whether any open document has unsaved changes.
func (w *Workspace) AnyDirty() bool {
	for _, d := range w.docs {
		if d.Buffer().Dirty() {
			return true
		}
	}
	return false
}
