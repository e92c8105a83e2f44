package diag

import (
	"testing"

	"collabscan/internal/source"
)

func TestBag_AddRespectsLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(Diagnostic{Severity: SevWarning, Code: DirSyntax}) {
		t.Error("Expected first Add to succeed")
	}
	if !bag.Add(Diagnostic{Severity: SevWarning, Code: DirSyntax}) {
		t.Error("Expected second Add to succeed")
	}
	if bag.Add(Diagnostic{Severity: SevWarning, Code: DirSyntax}) {
		t.Error("Expected third Add to be dropped")
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestBag_HasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(10)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("Expected empty bag to have neither errors nor warnings")
	}

	bag.Add(Diagnostic{Severity: SevInfo, Code: DirInfo})
	if bag.HasWarnings() {
		t.Error("Info must not count as warning")
	}

	bag.Add(Diagnostic{Severity: SevWarning, Code: LangUnsupported})
	if !bag.HasWarnings() {
		t.Error("Expected HasWarnings after adding a warning")
	}
	if bag.HasErrors() {
		t.Error("Warning must not count as error")
	}

	bag.Add(Diagnostic{Severity: SevError, Code: DirSyntax})
	if !bag.HasErrors() {
		t.Error("Expected HasErrors after adding an error")
	}
}

func TestBag_Sort(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Severity: SevWarning, Code: ScopeNoMatch, Primary: source.Span{File: 0, Start: 50, End: 60}})
	bag.Add(Diagnostic{Severity: SevError, Code: DirSyntax, Primary: source.Span{File: 0, Start: 10, End: 20}})
	bag.Add(Diagnostic{Severity: SevError, Code: DirUnbalancedBlock, Primary: source.Span{File: 0, Start: 10, End: 20}})

	bag.Sort()
	items := bag.Items()

	if items[0].Primary.Start != 10 || items[1].Primary.Start != 10 || items[2].Primary.Start != 50 {
		t.Errorf("Sort() order by start wrong: %v, %v, %v",
			items[0].Primary.Start, items[1].Primary.Start, items[2].Primary.Start)
	}
}

func TestBag_Dedup(t *testing.T) {
	bag := NewBag(10)
	d := Diagnostic{Severity: SevError, Code: DirSyntax, Primary: source.Span{File: 0, Start: 5, End: 6}}
	bag.Add(d)
	bag.Add(d)
	bag.Add(Diagnostic{Severity: SevError, Code: DirSyntax, Primary: source.Span{File: 0, Start: 7, End: 8}})

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Len() after Dedup = %d, want 2", bag.Len())
	}
}

func TestBag_Merge(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Severity: SevError, Code: DirSyntax})

	b := NewBag(1)
	b.Add(Diagnostic{Severity: SevWarning, Code: ScopeNoMatch})

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("Len() after Merge = %d, want 2", a.Len())
	}
}

func TestBagReporter(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	r.Report(DirSyntax, SevError, source.Span{Start: 1, End: 2}, "boom", nil)

	if bag.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", bag.Len())
	}
	got := bag.Items()[0]
	if got.Code != DirSyntax || got.Severity != SevError || got.Message != "boom" {
		t.Errorf("unexpected diagnostic %+v", got)
	}
}

func TestBagReporter_Notes(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	r.Report(DirUnbalancedBlock, SevError, source.Span{Start: 9, End: 10}, "block never closed",
		[]Note{{Span: source.Span{Start: 0, End: 3}, Msg: "opened here"}})

	got := bag.Items()[0]
	if len(got.Notes) != 1 || got.Notes[0].Msg != "opened here" {
		t.Errorf("Notes = %+v, want one 'opened here'", got.Notes)
	}
}

func TestDiagnostic_WithNote(t *testing.T) {
	d := Diagnostic{Severity: SevError, Code: DirUnbalancedBlock, Message: "m"}
	annotated := d.WithNote(source.Span{Start: 1, End: 2}, "a").WithNote(source.Span{Start: 3, End: 4}, "b")

	if len(d.Notes) != 0 {
		t.Error("WithNote must not mutate the receiver")
	}
	if len(annotated.Notes) != 2 || annotated.Notes[0].Msg != "a" || annotated.Notes[1].Msg != "b" {
		t.Errorf("Notes = %+v, want a then b", annotated.Notes)
	}
}

func TestCode_ID(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		expected string
	}{
		{name: "lang prefix", code: LangUnsupported, expected: "LNG1001"},
		{name: "directive prefix", code: DirSyntax, expected: "DIR2001"},
		{name: "scope prefix", code: ScopeNoMatch, expected: "SCP3001"},
		{name: "resolve prefix", code: ResolveOverlap, expected: "RES4001"},
		{name: "io prefix", code: IOLoadFileError, expected: "IO5001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.ID(); got != tt.expected {
				t.Errorf("ID() = %q, want %q", got, tt.expected)
			}
		})
	}
}
