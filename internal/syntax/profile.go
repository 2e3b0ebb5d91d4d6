package syntax

import (
	"path/filepath"
	"strings"
	"sync"
)

// Profile describes how to tokenize one language. Profiles are immutable
// after registration and safe for concurrent reads.
type Profile struct {
	// Name is the display name of the language.
	Name string

	// Extensions are the file extensions (without dot) this profile claims.
	Extensions []string

	// LineComment is the prefix that comments out the rest of a line.
	// Empty means the language has no line comments.
	LineComment string

	// BlockCommentStart and BlockCommentEnd delimit block comments, the
	// only construct that may span lines. Both empty disables them.
	BlockCommentStart string
	BlockCommentEnd   string

	// HasMacros enables `name!` invocations and `#[...]` attributes.
	HasMacros bool

	// HasLifetimes enables `'ident` annotations (disambiguated from
	// character literals by the scanner).
	HasLifetimes bool

	keywords map[string]struct{}
	types    map[string]struct{}
}

// NewProfile creates an empty profile with the given name and extensions.
func NewProfile(name string, extensions ...string) *Profile {
	return &Profile{
		Name:       name,
		Extensions: extensions,
		keywords:   make(map[string]struct{}),
		types:      make(map[string]struct{}),
	}
}

// AddKeywords registers words to classify as keywords.
func (p *Profile) AddKeywords(words ...string) *Profile {
	for _, w := range words {
		p.keywords[w] = struct{}{}
	}
	return p
}

// AddTypes registers words to classify as type names.
func (p *Profile) AddTypes(words ...string) *Profile {
	for _, w := range words {
		p.types[w] = struct{}{}
	}
	return p
}

// WithLineComment sets the line comment prefix.
func (p *Profile) WithLineComment(prefix string) *Profile {
	p.LineComment = prefix
	return p
}

// WithBlockComment sets the block comment delimiters.
func (p *Profile) WithBlockComment(start, end string) *Profile {
	p.BlockCommentStart = start
	p.BlockCommentEnd = end
	return p
}

// WithMacros enables macro and attribute scanning.
func (p *Profile) WithMacros() *Profile {
	p.HasMacros = true
	return p
}

// WithLifetimes enables lifetime annotation scanning.
func (p *Profile) WithLifetimes() *Profile {
	p.HasLifetimes = true
	return p
}

// IsKeyword reports whether the word is a keyword in this language.
func (p *Profile) IsKeyword(word string) bool {
	_, ok := p.keywords[word]
	return ok
}

// IsType reports whether the word is a known type name in this language.
func (p *Profile) IsType(word string) bool {
	_, ok := p.types[word]
	return ok
}

// Registry maps file extensions to language profiles.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]*Profile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]*Profile)}
}

// Register adds a profile under all of its extensions.
func (r *Registry) Register(p *Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range p.Extensions {
		r.byExt[strings.ToLower(ext)] = p
	}
}

// ForExtension returns the profile for a file extension (without dot),
// or nil when the extension is unknown.
func (r *Registry) ForExtension(ext string) *Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byExt[strings.ToLower(ext)]
}

// ForPath returns the profile for a file path based on its extension,
// or nil when the extension is unknown. The choice is made once at open
// time; a buffer keeps its profile for its whole lifetime.
func (r *Registry) ForPath(path string) *Profile {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil
	}
	return r.ForExtension(ext)
}

// defaultRegistry holds the built-in language profiles.
var defaultRegistry = func() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}()

// DefaultRegistry returns the registry preloaded with built-in languages.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
