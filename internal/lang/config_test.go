package lang

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "collab.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindConfig_WalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeConfig(t, root, "")

	got, found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig() error = %v", err)
	}
	if !found {
		t.Fatal("Expected config to be found")
	}
	if got != want {
		t.Errorf("FindConfig() = %q, want %q", got, want)
	}
}

func TestFindConfig_Missing(t *testing.T) {
	_, found, err := FindConfig(t.TempDir())
	if err != nil {
		t.Fatalf("FindConfig() error = %v", err)
	}
	if found {
		t.Error("Expected no config in an empty tree")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[scan]
ignore = ["vendor/*", "*.gen.go"]
jobs = 4

[[language]]
name = "nim"
extensions = ["nim"]
line_comments = ["#"]
style = "indent"

[[language]]
name = "kotlin"
extensions = ["kt"]
line_comments = ["//"]
block_open = "/*"
block_close = "*/"
block_nests = true
style = "brace"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Scan.Jobs != 4 {
		t.Errorf("Scan.Jobs = %d, want 4", cfg.Scan.Jobs)
	}
	if len(cfg.Scan.Ignore) != 2 {
		t.Errorf("Scan.Ignore = %v, want 2 patterns", cfg.Scan.Ignore)
	}

	r := NewRegistry()
	if err := cfg.Apply(r); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	nim, ok := r.ByExtension("nim")
	if !ok {
		t.Fatal("Expected nim to be registered")
	}
	if nim.Style != StyleIndent {
		t.Errorf("nim Style = %v, want StyleIndent", nim.Style)
	}

	kotlin, ok := r.ByName("kotlin")
	if !ok {
		t.Fatal("Expected kotlin to be registered")
	}
	if len(kotlin.BlockComments) != 1 || !kotlin.BlockComments[0].Nests {
		t.Errorf("kotlin BlockComments = %+v, want one nesting pair", kotlin.BlockComments)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing name",
			content: `
[[language]]
extensions = ["x"]
line_comments = ["#"]
`,
		},
		{
			name: "no comment syntax",
			content: `
[[language]]
name = "mystery"
extensions = ["x"]
`,
		},
		{
			name: "block open without close",
			content: `
[[language]]
name = "broken"
line_comments = ["#"]
block_open = "/*"
`,
		},
		{
			name: "unknown style",
			content: `
[[language]]
name = "odd"
line_comments = ["#"]
style = "curly"
`,
		},
		{
			name:    "bad toml",
			content: `[[language`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("Expected LoadConfig to fail")
			}
		})
	}
}

func TestLoadConfigFor_MissingIsNotAnError(t *testing.T) {
	cfg, found, err := LoadConfigFor(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFor() error = %v", err)
	}
	if found || cfg != nil {
		t.Error("Expected no config")
	}
}
