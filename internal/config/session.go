package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// maxRecentFiles bounds the recent-files list in the session file.
const maxRecentFiles = 10

// Session is the small piece of state that survives restarts. It is
// stored as JSON next to the config file and is best-effort: a missing
// or corrupt session file just yields an empty session.
type Session struct {
	path   string
	recent []string
}

// OpenSession reads the session file at path, tolerating its absence.
func OpenSession(path string) *Session {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	doc := string(data)
	if !gjson.Valid(doc) {
		return s
	}
	for _, v := range gjson.Get(doc, "recent_files").Array() {
		if f := v.String(); f != "" {
			s.recent = append(s.recent, f)
		}
	}
	return s
}

// SessionPath returns the conventional session file location,
// ~/.config/reditor/session.json.
func SessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "reditor", "session.json")
}

// RecentFiles returns the most recently opened files, newest first.
func (s *Session) RecentFiles() []string {
	out := make([]string, len(s.recent))
	copy(out, s.recent)
	return out
}

// Touch moves path to the front of the recent list.
func (s *Session) Touch(path string) {
	next := make([]string, 0, len(s.recent)+1)
	next = append(next, path)
	for _, f := range s.recent {
		if f != path {
			next = append(next, f)
		}
	}
	if len(next) > maxRecentFiles {
		next = next[:maxRecentFiles]
	}
	s.recent = next
}

// Save writes the session back to disk, creating the parent directory
// if needed.
func (s *Session) Save() error {
	if s.path == "" {
		return nil
	}
	doc := "{}"
	var err error
	if doc, err = sjson.Set(doc, "recent_files", s.recent); err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("session: mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}
