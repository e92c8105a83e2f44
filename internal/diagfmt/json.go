package diagfmt

import (
	"encoding/json"
	"io"

	"collabscan/internal/diag"
	"collabscan/internal/directive"
	"collabscan/internal/resolve"
	"collabscan/internal/source"
)

// LocationJSON is a resolved source location.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary diagnostic location.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// AttrJSON is one effective attribute value.
type AttrJSON struct {
	Key   string   `json:"key"`
	Value string   `json:"value,omitempty"`
	List  []string `json:"list,omitempty"`
}

// RegionJSON is one resolved region.
type RegionJSON struct {
	Location LocationJSON `json:"location"`
	Trust    string       `json:"trust,omitempty"`
	Attrs    []AttrJSON   `json:"attributes,omitempty"`
	Parent   int          `json:"parent"`
	Depth    int          `json:"depth"`
}

// FileJSON groups one file's regions and diagnostics.
type FileJSON struct {
	Path        string           `json:"path"`
	Lang        string           `json:"lang"`
	ContentHash string           `json:"content_hash"`
	Regions     []RegionJSON     `json:"regions"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

func location(fs *source.FileSet, span source.Span) LocationJSON {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	return LocationJSON{
		File:      file.Path,
		StartByte: span.Start,
		EndByte:   span.End,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}

// DiagnosticsJSON converts a bag for serialization.
func DiagnosticsJSON(bag *diag.Bag, fs *source.FileSet) []DiagnosticJSON {
	out := make([]DiagnosticJSON, 0, bag.Len())
	for _, d := range bag.Items() {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: location(fs, d.Primary),
		}
		for _, n := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: location(fs, n.Span)})
		}
		out = append(out, dj)
	}
	return out
}

// RegionsJSON converts a resolved tree for serialization.
func RegionsJSON(tree *resolve.Tree, fs *source.FileSet) []RegionJSON {
	out := make([]RegionJSON, 0, tree.Len())
	for i := range tree.Regions {
		rg := &tree.Regions[i]
		rj := RegionJSON{
			Location: location(fs, rg.Scope),
			Parent:   rg.Parent,
			Depth:    rg.Depth,
		}
		if lvl, ok := rg.Trust(); ok {
			rj.Trust = string(lvl)
		}
		for _, k := range rg.Attrs.Keys() {
			v, _ := rg.Attrs.Get(k)
			if v.IsList {
				rj.Attrs = append(rj.Attrs, AttrJSON{Key: k, List: v.List})
			} else {
				rj.Attrs = append(rj.Attrs, AttrJSON{Key: k, Value: v.Str})
			}
		}
		out = append(out, rj)
	}
	return out
}

// WriteFileJSON emits one file's scan result as indented JSON.
func WriteFileJSON(w io.Writer, fj FileJSON) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fj)
}

// DirectiveJSON is one parsed directive, for the directives dump.
type DirectiveJSON struct {
	Form     string       `json:"form"`
	Location LocationJSON `json:"location"`
	Attrs    []AttrJSON   `json:"attributes,omitempty"`
	Anchor   uint32       `json:"anchor"`
	Trailing bool         `json:"trailing,omitempty"`
	Invalid  bool         `json:"trust_invalid,omitempty"`
}

// DirectivesJSON converts parsed directives for serialization.
func DirectivesJSON(directives []directive.Directive, fs *source.FileSet) []DirectiveJSON {
	out := make([]DirectiveJSON, 0, len(directives))
	for _, d := range directives {
		dj := DirectiveJSON{
			Form:     d.Form.String(),
			Location: location(fs, d.Span),
			Anchor:   d.Anchor,
			Trailing: d.Trailing,
			Invalid:  d.TrustInvalid,
		}
		for _, k := range d.Attrs.Keys() {
			v, _ := d.Attrs.Get(k)
			if v.IsList {
				dj.Attrs = append(dj.Attrs, AttrJSON{Key: k, List: v.List})
			} else {
				dj.Attrs = append(dj.Attrs, AttrJSON{Key: k, Value: v.Str})
			}
		}
		out = append(out, dj)
	}
	return out
}
