package diagfmt

import (
	"strings"
	"testing"

	"collabscan/internal/driver"
	"collabscan/internal/source"
)

func TestRegionsJSON(t *testing.T) {
	content := "// @collab trust=\"READ_ONLY\" owner=\"core\"\n" +
		"func f() {\n" +
		"\tx()\n" +
		"}\n"

	fs := source.NewFileSet()
	result := driver.ScanContent(fs, "main.go", []byte(content), driver.Options{})
	regions := RegionsJSON(result.Tree, fs)

	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}

	rg := regions[0]
	if rg.Trust != "READ_ONLY" {
		t.Errorf("Trust = %q, want READ_ONLY", rg.Trust)
	}
	if rg.Location.File != "main.go" {
		t.Errorf("File = %q, want main.go", rg.Location.File)
	}
	if rg.Location.StartLine != 2 {
		t.Errorf("StartLine = %d, want 2", rg.Location.StartLine)
	}
	if rg.Parent != -1 || rg.Depth != 0 {
		t.Errorf("Parent/Depth = %d/%d, want -1/0", rg.Parent, rg.Depth)
	}

	// Attribute order follows declaration order.
	if len(rg.Attrs) != 2 || rg.Attrs[0].Key != "trust" || rg.Attrs[1].Key != "owner" {
		t.Errorf("Attrs = %+v", rg.Attrs)
	}
}

func TestDiagnosticsJSON(t *testing.T) {
	content := "// @collab trust=\"NOPE\"\nfunc f() {}\n"

	fs := source.NewFileSet()
	result := driver.ScanContent(fs, "main.go", []byte(content), driver.Options{})
	diags := DiagnosticsJSON(result.Bag, fs)

	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != "DIR2003" {
		t.Errorf("Code = %q, want DIR2003", diags[0].Code)
	}
	if diags[0].Severity != "ERROR" {
		t.Errorf("Severity = %q, want ERROR", diags[0].Severity)
	}
}

func TestWriteFileJSON(t *testing.T) {
	var sb strings.Builder
	err := WriteFileJSON(&sb, FileJSON{
		Path:        "x.go",
		Lang:        "go",
		Regions:     []RegionJSON{},
		Diagnostics: []DiagnosticJSON{},
	})
	if err != nil {
		t.Fatalf("WriteFileJSON() error = %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `"path": "x.go"`) {
		t.Errorf("missing path, got:\n%s", out)
	}
	if !strings.Contains(out, `"regions": []`) {
		t.Errorf("expected empty regions array, got:\n%s", out)
	}
}
