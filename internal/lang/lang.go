// Package lang maps file extensions to languages and describes, per
// language, the two things the engine needs: how comments look and how
// scopes are delimited.
package lang

import "fmt"

// ScopeStyle selects the scope detection rule for a language.
type ScopeStyle uint8

const (
	// StyleBrace covers languages whose blocks are `{ ... }`.
	StyleBrace ScopeStyle = iota
	// StyleIndent covers languages whose blocks are indentation runs.
	StyleIndent
	// StyleMarker means no structural rule is reliable: non-block
	// directives govern only their own line.
	StyleMarker
)

func (s ScopeStyle) String() string {
	switch s {
	case StyleBrace:
		return "brace"
	case StyleIndent:
		return "indent"
	case StyleMarker:
		return "marker"
	}
	return "unknown"
}

// BlockComment describes one block comment delimiter pair.
type BlockComment struct {
	Open  string
	Close string
	Nests bool
}

// Language describes one language's comment syntax and scoping style.
type Language struct {
	Name          string
	Extensions    []string
	LineComments  []string
	BlockComments []BlockComment
	Style         ScopeStyle
	// StringQuotes lists the quote bytes that open string or char
	// literals; the brace detector skips braces inside them.
	StringQuotes []byte
	// RawStringBacktick enables Go-style `...` raw strings.
	RawStringBacktick bool
}

// Registry resolves language tags and file extensions to languages.
type Registry struct {
	byName map[string]*Language
	byExt  map[string]*Language
	order  []string
}

// NewRegistry returns a registry pre-populated with the built-in
// language table.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*Language),
		byExt:  make(map[string]*Language),
	}
	for i := range builtins {
		// register a copy so config overrides never touch the table
		l := builtins[i]
		r.Register(&l)
	}
	return r
}

// Register adds or replaces a language and its extension mappings.
func (r *Registry) Register(l *Language) {
	if _, exists := r.byName[l.Name]; !exists {
		r.order = append(r.order, l.Name)
	}
	r.byName[l.Name] = l
	for _, ext := range l.Extensions {
		r.byExt[ext] = l
	}
}

// ByName resolves a language tag.
func (r *Registry) ByName(name string) (*Language, bool) {
	l, ok := r.byName[name]
	return l, ok
}

// ByExtension resolves a file extension (with or without leading dot).
func (r *Registry) ByExtension(ext string) (*Language, bool) {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	l, ok := r.byExt[ext]
	return l, ok
}

// Names returns all registered language names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Generic is the best-effort fallback for unknown languages: it
// recognizes the common line comment prefixes and infers nothing about
// structure, so every non-block directive scopes to its own line.
func Generic() *Language {
	return &Language{
		Name:         "generic",
		LineComments: []string{"//", "#", "--", ";"},
		Style:        StyleMarker,
		StringQuotes: []byte{'"', '\''},
	}
}

// UnsupportedError reports a language the registry cannot resolve,
// either by tag or by a file's extension. The caller may still scan
// with Generic(); that policy lives in the driver.
type UnsupportedError struct {
	Tag  string // language tag, when one was forced
	Path string // file whose extension failed to resolve
}

func (e *UnsupportedError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("unsupported language %q", e.Tag)
	}
	return fmt.Sprintf("no language registered for %q", e.Path)
}

var builtins = []Language{
	{
		Name:              "go",
		Extensions:        []string{"go"},
		LineComments:      []string{"//"},
		BlockComments:     []BlockComment{{Open: "/*", Close: "*/"}},
		Style:             StyleBrace,
		StringQuotes:      []byte{'"', '\''},
		RawStringBacktick: true,
	},
	{
		Name:          "rust",
		Extensions:    []string{"rs"},
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{{Open: "/*", Close: "*/", Nests: true}},
		Style:         StyleBrace,
		StringQuotes:  []byte{'"', '\''},
	},
	{
		Name:          "java",
		Extensions:    []string{"java"},
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{{Open: "/*", Close: "*/"}},
		Style:         StyleBrace,
		StringQuotes:  []byte{'"', '\''},
	},
	{
		Name:          "c",
		Extensions:    []string{"c", "h"},
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{{Open: "/*", Close: "*/"}},
		Style:         StyleBrace,
		StringQuotes:  []byte{'"', '\''},
	},
	{
		Name:          "cpp",
		Extensions:    []string{"cc", "cpp", "cxx", "hpp", "hh"},
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{{Open: "/*", Close: "*/"}},
		Style:         StyleBrace,
		StringQuotes:  []byte{'"', '\''},
	},
	{
		Name:          "javascript",
		Extensions:    []string{"js", "jsx", "mjs"},
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{{Open: "/*", Close: "*/"}},
		Style:         StyleBrace,
		StringQuotes:  []byte{'"', '\'', '`'},
	},
	{
		Name:          "typescript",
		Extensions:    []string{"ts", "tsx"},
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{{Open: "/*", Close: "*/"}},
		Style:         StyleBrace,
		StringQuotes:  []byte{'"', '\'', '`'},
	},
	{
		Name:         "python",
		Extensions:   []string{"py", "pyi"},
		LineComments: []string{"#"},
		Style:        StyleIndent,
		StringQuotes: []byte{'"', '\''},
	},
	{
		Name:         "yaml",
		Extensions:   []string{"yaml", "yml"},
		LineComments: []string{"#"},
		Style:        StyleIndent,
		StringQuotes: []byte{'"', '\''},
	},
	{
		Name:         "shell",
		Extensions:   []string{"sh", "bash"},
		LineComments: []string{"#"},
		Style:        StyleMarker,
		StringQuotes: []byte{'"', '\''},
	},
}
