// Package directive recognizes @collab annotations inside extracted
// comments and turns them into structured directives: the single-line
// form, runs of adjacent single-line comments merged into one unit,
// and explicit @collab:begin/@collab:end blocks.
package directive

import (
	"collabscan/internal/source"
)

// Form distinguishes how a directive was written in the source.
type Form uint8

const (
	FormSingleLine Form = iota
	FormMultiLineMerged
	FormBlockBegin
	FormBlockEnd
)

func (f Form) String() string {
	switch f {
	case FormSingleLine:
		return "single_line"
	case FormMultiLineMerged:
		return "multi_line_merged"
	case FormBlockBegin:
		return "block_begin"
	case FormBlockEnd:
		return "block_end"
	}
	return "unknown"
}

// Value is one attribute value: a scalar string or an ordered list.
type Value struct {
	Str    string
	List   []string
	IsList bool
}

func (v Value) String() string {
	if v.IsList {
		out := "["
		for i, s := range v.List {
			if i > 0 {
				out += ","
			}
			out += s
		}
		return out + "]"
	}
	return v.Str
}

// AttrSet is an ordered attribute mapping. Keys keep their first-seen
// position; setting an existing key replaces its value (last wins).
type AttrSet struct {
	keys []string
	vals map[string]Value
}

func NewAttrSet() *AttrSet {
	return &AttrSet{vals: make(map[string]Value)}
}

// Set stores a value under key, replacing any previous value.
func (s *AttrSet) Set(key string, v Value) {
	if _, exists := s.vals[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.vals[key] = v
}

// Get looks a key up.
func (s *AttrSet) Get(key string) (Value, bool) {
	v, ok := s.vals[key]
	return v, ok
}

// Keys returns the keys in first-seen order.
func (s *AttrSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *AttrSet) Len() int {
	return len(s.keys)
}

// MergeFrom folds other into s with last-wins semantics; list values
// replace like scalars.
func (s *AttrSet) MergeFrom(other *AttrSet) {
	for _, k := range other.keys {
		s.Set(k, other.vals[k])
	}
}

// Clone returns an independent copy.
func (s *AttrSet) Clone() *AttrSet {
	out := NewAttrSet()
	out.MergeFrom(s)
	return out
}

// Directive is one parsed @collab unit.
type Directive struct {
	Form  Form
	Attrs *AttrSet
	// Span covers the directive's comment text; for merged runs it is
	// the cover of all contributing comments.
	Span source.Span
	// Anchor is the byte offset immediately following the directive's
	// comment, i.e. the start of the line scope detection begins at.
	Anchor uint32
	// AnchorLine is the 1-based line number of Anchor.
	AnchorLine uint32
	// Trailing marks a directive whose comment shares its line with
	// code; such a directive never governs the following declaration
	// and falls back to its own line span.
	Trailing bool
	// TrustInvalid marks a directive whose trust attribute failed
	// validation; the raw value stays in Attrs as an opaque string but
	// must not reach any TrustLevel-typed consumer.
	TrustInvalid bool
	// BlockScope is set on a FormBlockBegin directive once its
	// @collab:end is found: the span between the two anchors.
	BlockScope source.Span
	// Matched is true for a begin directive with a found end.
	Matched bool
}
