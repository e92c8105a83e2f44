package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_AddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.go", []byte("package main\n"))

	file := fs.Get(id)
	if file.Path != "test.go" {
		t.Errorf("Path = %q, want %q", file.Path, "test.go")
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
	if len(file.LineIdx) != 1 {
		t.Errorf("LineIdx length = %d, want 1", len(file.LineIdx))
	}

	got, ok := fs.GetByPath("test.go")
	if !ok || got.ID != id {
		t.Errorf("GetByPath() = %v, %v, want id %d", got, ok, id)
	}
}

func TestFileSet_HashStableAcrossPaths(t *testing.T) {
	fs := NewFileSet()
	content := []byte("same content")
	a := fs.AddVirtual("a.go", content)
	b := fs.AddVirtual("b.go", content)

	if fs.Get(a).Hash != fs.Get(b).Hash {
		t.Error("Expected equal content to produce equal hashes")
	}
}

func TestFileSet_Resolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.go", []byte("ab\ncd\n"))

	span := Span{File: id, Start: 3, End: 5}
	start, end := fs.Resolve(span)

	if (start != LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v, want {2 1}", start)
	}
	if (end != LineCol{Line: 2, Col: 3}) {
		t.Errorf("end = %+v, want {2 3}", end)
	}
}

func TestFile_OffsetOf(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.go", []byte("ab\ncd\nef"))
	file := fs.Get(id)

	tests := []struct {
		name     string
		pos      LineCol
		expected uint32
		ok       bool
	}{
		{name: "first line first col", pos: LineCol{Line: 1, Col: 1}, expected: 0, ok: true},
		{name: "second line first col", pos: LineCol{Line: 2, Col: 1}, expected: 3, ok: true},
		{name: "third line second col", pos: LineCol{Line: 3, Col: 2}, expected: 7, ok: true},
		{name: "col at line newline", pos: LineCol{Line: 1, Col: 3}, expected: 2, ok: true},
		{name: "zero line rejected", pos: LineCol{Line: 0, Col: 1}, ok: false},
		{name: "zero col rejected", pos: LineCol{Line: 1, Col: 0}, ok: false},
		{name: "line past end rejected", pos: LineCol{Line: 9, Col: 1}, ok: false},
		{name: "col past line end rejected", pos: LineCol{Line: 1, Col: 4}, ok: false},
		{name: "col far past short line rejected", pos: LineCol{Line: 2, Col: 40}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, ok := file.OffsetOf(tt.pos)
			if ok != tt.ok {
				t.Fatalf("OffsetOf(%+v) ok = %v, want %v", tt.pos, ok, tt.ok)
			}
			if ok && off != tt.expected {
				t.Errorf("OffsetOf(%+v) = %d, want %d", tt.pos, off, tt.expected)
			}
		})
	}
}

func TestFile_OffsetOf_RoundTrip(t *testing.T) {
	fs := NewFileSet()
	content := []byte("alpha\nbeta\n\ngamma")
	id := fs.AddVirtual("test.go", content)
	file := fs.Get(id)

	for off := uint32(0); off < uint32(len(content)); off++ {
		pos := fs.PosOf(id, off)
		back, ok := file.OffsetOf(pos)
		if !ok {
			t.Fatalf("OffsetOf(%+v) unexpectedly out of file", pos)
		}
		if back != off {
			t.Errorf("round trip for offset %d: got %d via %+v", off, back, pos)
		}
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.go", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	tests := []struct {
		name     string
		line     uint32
		expected string
	}{
		{name: "first", line: 1, expected: "first"},
		{name: "middle", line: 2, expected: "second"},
		{name: "last without newline", line: 3, expected: "third"},
		{name: "zero line", line: 0, expected: ""},
		{name: "past end", line: 10, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := file.GetLine(tt.line); got != tt.expected {
				t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.expected)
			}
		})
	}
}

func TestFileSet_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.go")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Content = %q, want normalized %q", string(file.Content), "a\nb\n")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("Expected FileNormalizedCRLF flag to be set")
	}
}

func TestFileSet_LoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.go")); err == nil {
		t.Error("Expected error for missing file")
	}
}
