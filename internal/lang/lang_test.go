package lang

import (
	"testing"
)

func TestRegistry_ByExtension(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name  string
		ext   string
		lang  string
		found bool
	}{
		{name: "go", ext: "go", lang: "go", found: true},
		{name: "leading dot accepted", ext: ".go", lang: "go", found: true},
		{name: "python", ext: "py", lang: "python", found: true},
		{name: "cpp header", ext: "hpp", lang: "cpp", found: true},
		{name: "typescript tsx", ext: "tsx", lang: "typescript", found: true},
		{name: "unknown", ext: "zig", found: false},
		{name: "empty", ext: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, ok := r.ByExtension(tt.ext)
			if ok != tt.found {
				t.Fatalf("ByExtension(%q) ok = %v, want %v", tt.ext, ok, tt.found)
			}
			if ok && l.Name != tt.lang {
				t.Errorf("ByExtension(%q) = %q, want %q", tt.ext, l.Name, tt.lang)
			}
		})
	}
}

func TestRegistry_ByName(t *testing.T) {
	r := NewRegistry()

	l, ok := r.ByName("rust")
	if !ok {
		t.Fatal("Expected rust to be registered")
	}
	if len(l.BlockComments) != 1 || !l.BlockComments[0].Nests {
		t.Error("Expected rust block comments to nest")
	}

	if _, ok := r.ByName("cobol"); ok {
		t.Error("Expected unknown name to miss")
	}
}

func TestRegistry_RegisterOverride(t *testing.T) {
	r := NewRegistry()
	custom := &Language{
		Name:         "go",
		Extensions:   []string{"go"},
		LineComments: []string{"//", "//!"},
		Style:        StyleBrace,
	}
	r.Register(custom)

	l, _ := r.ByName("go")
	if len(l.LineComments) != 2 {
		t.Errorf("Expected override to replace the builtin, got %v", l.LineComments)
	}

	// Registration order keeps one entry per name.
	seen := 0
	for _, name := range r.Names() {
		if name == "go" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("Expected exactly one 'go' entry in Names(), got %d", seen)
	}
}

func TestRegistry_IsolatedFromBuiltins(t *testing.T) {
	a := NewRegistry()
	l, _ := a.ByName("go")
	l.LineComments = append(l.LineComments, "###")

	b := NewRegistry()
	fresh, _ := b.ByName("go")
	if len(fresh.LineComments) != 1 {
		t.Error("Expected builtin table to be unaffected by registry mutation")
	}
}

func TestGeneric(t *testing.T) {
	g := Generic()
	if g.Style != StyleMarker {
		t.Errorf("Style = %v, want StyleMarker", g.Style)
	}
	if len(g.LineComments) == 0 {
		t.Error("Expected generic language to recognize line comments")
	}
	if len(g.BlockComments) != 0 {
		t.Error("Generic language must not guess block comment syntax")
	}
}

func TestUnsupportedError(t *testing.T) {
	tagErr := &UnsupportedError{Tag: "cobol"}
	if got := tagErr.Error(); got != `unsupported language "cobol"` {
		t.Errorf("Error() = %q", got)
	}
	pathErr := &UnsupportedError{Path: "data.bin"}
	if got := pathErr.Error(); got != `no language registered for "data.bin"` {
		t.Errorf("Error() = %q", got)
	}
}

func TestScopeStyle_String(t *testing.T) {
	if StyleBrace.String() != "brace" || StyleIndent.String() != "indent" || StyleMarker.String() != "marker" {
		t.Error("unexpected ScopeStyle names")
	}
}
