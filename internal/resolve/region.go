// Package resolve combines directives and their detected scopes into a
// tree of non-overlapping resolved regions, and answers position
// queries against that tree.
package resolve

import (
	"collabscan/internal/directive"
	"collabscan/internal/source"
	"collabscan/internal/trust"
)

// Region is one resolved governance region: a scope plus its fully
// merged effective attributes and the chain of directives that
// produced them, ordered outer to inner.
type Region struct {
	Scope source.Span
	// Attrs is the effective attribute set, computed once at
	// resolution time: inner directives override outer key-by-key,
	// outer keys not overridden stay in effect.
	Attrs *directive.AttrSet
	// Provenance lists the contributing directives, oldest-declared
	// (outermost) first.
	Provenance []directive.Directive
	// Parent is the arena index of the enclosing region, -1 for roots.
	Parent int
	Depth  int
}

// Trust returns the region's effective trust level. ok is false when
// no valid trust attribute is in effect.
func (rg *Region) Trust() (trust.Level, bool) {
	v, found := rg.Attrs.Get("trust")
	if !found || v.IsList {
		return "", false
	}
	lvl, err := trust.Parse(v.Str)
	if err != nil {
		return "", false
	}
	return lvl, true
}

// Tree is the resolved region tree of one file: a flat arena in
// depth-first order, outer before inner, linked by parent indices.
type Tree struct {
	File    source.FileID
	Regions []Region
}

// Query returns the deepest region containing the byte offset, or
// ok=false when the position is not covered by any region.
func (t *Tree) Query(off uint32) (*Region, bool) {
	found := -1
	for i := range t.Regions {
		if t.Regions[i].Scope.ContainsOffset(off) {
			found = i
		}
	}
	if found < 0 {
		return nil, false
	}
	return &t.Regions[found], true
}

// Len returns the number of resolved regions.
func (t *Tree) Len() int {
	return len(t.Regions)
}
