package resolve

import (
	"sort"

	"collabscan/internal/diag"
	"collabscan/internal/directive"
	"collabscan/internal/source"
)

// Candidate is a directive with its detected scope, ready for
// precedence resolution.
type Candidate struct {
	Directive directive.Directive
	Scope     source.Span
	// Fallback marks an own-line scope, the least specific form.
	Fallback bool
}

// specificity orders syntactic forms for the identical-span tie-break:
// block > single-line > multi-line-merged > fallback-own-line. Lower
// rank is more specific and is resolved as the inner (winning) node.
func (c Candidate) specificity() int {
	switch {
	case c.Fallback:
		return 3
	case c.Directive.Form == directive.FormBlockBegin:
		return 0
	case c.Directive.Form == directive.FormMultiLineMerged:
		return 2
	default:
		return 1
	}
}

// Resolve builds the containment tree for one file's candidates.
// Scopes must be disjoint or properly nested; a pair that overlaps
// without nesting is refused — both candidates are dropped with a
// diagnostic and their positions stay uncovered.
func Resolve(file source.FileID, candidates []Candidate, r diag.Reporter) *Tree {
	if r == nil {
		r = diag.NopReporter{}
	}

	cands := make([]Candidate, len(candidates))
	copy(cands, candidates)

	// Containment order: by start, wider span first, less specific
	// form first so that the more specific of two identical spans
	// becomes the inner node and wins the override.
	sort.SliceStable(cands, func(i, j int) bool {
		si, sj := cands[i].Scope, cands[j].Scope
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		if si.End != sj.End {
			return si.End > sj.End
		}
		return cands[i].specificity() > cands[j].specificity()
	})

	cands = dropOverlapping(cands, r)

	tree := &Tree{File: file}
	type open struct {
		span source.Span
		idx  int
	}
	var stack []open

	for _, c := range cands {
		for len(stack) > 0 && !stack[len(stack)-1].span.Contains(c.Scope) {
			stack = stack[:len(stack)-1]
		}

		parent := -1
		depth := 0
		attrs := directive.NewAttrSet()
		var prov []directive.Directive
		if len(stack) > 0 {
			parent = stack[len(stack)-1].idx
			p := &tree.Regions[parent]
			depth = p.Depth + 1
			attrs.MergeFrom(p.Attrs)
			prov = append(prov, p.Provenance...)
		}
		mergeDirective(attrs, c.Directive)
		prov = append(prov, c.Directive)

		tree.Regions = append(tree.Regions, Region{
			Scope:      c.Scope,
			Attrs:      attrs,
			Provenance: prov,
			Parent:     parent,
			Depth:      depth,
		})
		stack = append(stack, open{span: c.Scope, idx: len(tree.Regions) - 1})
	}

	return tree
}

// mergeDirective folds a directive's attributes into an effective set.
// An invalid trust value is excluded: it is unusable as a TrustLevel,
// so it must not shadow an enclosing region's valid trust.
func mergeDirective(attrs *directive.AttrSet, d directive.Directive) {
	for _, k := range d.Attrs.Keys() {
		if k == "trust" && d.TrustInvalid {
			continue
		}
		v, _ := d.Attrs.Get(k)
		attrs.Set(k, v)
	}
}

// dropOverlapping removes every pair of candidates whose scopes
// overlap without nesting. Input must already be in containment order.
func dropOverlapping(cands []Candidate, r diag.Reporter) []Candidate {
	dropped := make([]bool, len(cands))
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			si, sj := cands[i].Scope, cands[j].Scope
			if sj.Start >= si.End {
				break
			}
			if !si.Overlaps(sj) || si.Contains(sj) || sj.Contains(si) {
				continue
			}
			if !dropped[i] && !dropped[j] {
				r.Report(diag.ResolveOverlap, diag.SevError, si,
					"directive scopes overlap without nesting; both regions are refused",
					[]diag.Note{{Span: sj, Msg: "conflicting scope here"}})
			}
			dropped[i] = true
			dropped[j] = true
		}
	}

	out := cands[:0]
	for i, c := range cands {
		if !dropped[i] {
			out = append(out, c)
		}
	}
	return out
}
