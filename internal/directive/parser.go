package directive

import (
	"fmt"
	"strings"

	"collabscan/internal/comment"
	"collabscan/internal/diag"
	"collabscan/internal/source"
	"collabscan/internal/trust"
)

const (
	marker      = "@collab"
	markerBegin = "@collab:begin"
	markerEnd   = "@collab:end"
)

// Parse recognizes @collab directives in the file's comments, merges
// adjacent single-line runs, and matches begin/end blocks. Malformed
// directives are dropped with a diagnostic; parsing always continues
// to the end of the file.
func Parse(f *source.File, comments []comment.Comment, r diag.Reporter) []Directive {
	if r == nil {
		r = diag.NopReporter{}
	}
	p := &parser{file: f, reporter: r}

	units := p.recognize(comments)
	units = p.mergeRuns(units)
	p.matchBlocks(units)

	out := make([]Directive, 0, len(units))
	for _, u := range units {
		u.Directive.Trailing = !u.ownLine
		out = append(out, u.Directive)
	}
	return out
}

type parser struct {
	file     *source.File
	reporter diag.Reporter
}

// unit pairs a directive with merge bookkeeping.
type unit struct {
	Directive
	startLine uint32
	endLine   uint32
	ownLine   bool // comment has only whitespace before it on its line
	block     bool // carried by a block comment
}

func (p *parser) recognize(comments []comment.Comment) []unit {
	var units []unit
	for _, c := range comments {
		text := strings.TrimSpace(c.Text)
		if !strings.HasPrefix(text, marker) {
			continue
		}
		trimmed := uint32(len(c.Text) - len(strings.TrimLeft(c.Text, " \t")))
		textStart := c.TextStart + trimmed

		var form Form
		var tail string
		var tailOff uint32
		switch {
		case strings.HasPrefix(text, markerBegin) && atWordEnd(text[len(markerBegin):]):
			form = FormBlockBegin
			tail = text[len(markerBegin):]
			tailOff = uint32(len(markerBegin))
		case strings.HasPrefix(text, markerEnd) && atWordEnd(text[len(markerEnd):]):
			form = FormBlockEnd
			tail = ""
			tailOff = uint32(len(markerEnd))
		default:
			rest := text[len(marker):]
			// "@collaborate", "@collab:endgame" or similar is somebody
			// else's marker.
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				continue
			}
			form = FormSingleLine
			tail = rest
			tailOff = uint32(len(marker))
		}

		attrs, serr := parseAttrs(tail)
		if serr != nil {
			at := textStart + tailOff + uint32(serr.off)
			p.reporter.Report(diag.DirSyntax, diag.SevError,
				source.Span{File: p.file.ID, Start: at, End: at + 1},
				fmt.Sprintf("dropping malformed directive: %s", serr.msg), nil)
			continue
		}

		span := source.Span{File: p.file.ID, Start: textStart, End: textStart + uint32(len(text))}
		d := Directive{
			Form:   form,
			Attrs:  attrs,
			Span:   span,
			Anchor: p.lineStartAfter(c.EndLine),
		}
		d.AnchorLine = c.EndLine + 1
		d.TrustInvalid = p.checkTrust(attrs, span)

		units = append(units, unit{
			Directive: d,
			startLine: c.StartLine,
			endLine:   c.EndLine,
			ownLine:   p.ownLine(c),
			block:     c.Block,
		})
	}
	return units
}

// checkTrust validates the trust attribute. The raw value stays in the
// attribute set as an opaque string; the flag keeps it away from any
// TrustLevel-typed consumer.
func (p *parser) checkTrust(attrs *AttrSet, span source.Span) bool {
	v, ok := attrs.Get("trust")
	if !ok {
		return false
	}
	if v.IsList {
		p.reporter.Report(diag.DirInvalidTrust, diag.SevError, span,
			"trust must be a single value, not a list", nil)
		return true
	}
	if !trust.Valid(v.Str) {
		levels := make([]string, 0, 4)
		for _, l := range trust.All() {
			levels = append(levels, string(l))
		}
		p.reporter.Report(diag.DirInvalidTrust, diag.SevError, span,
			fmt.Sprintf("invalid trust value %q (want one of %s)", v.Str, strings.Join(levels, ", ")), nil)
		return true
	}
	return false
}

// mergeRuns folds maximal runs of adjacent own-line single-line
// directives into one multi_line_merged directive. Attribute sets are
// unioned with last-key-wins; the anchor comes from the last comment
// of the run.
func (p *parser) mergeRuns(units []unit) []unit {
	var out []unit
	for i := 0; i < len(units); {
		u := units[i]
		if u.Form != FormSingleLine || u.block || !u.ownLine {
			out = append(out, u)
			i++
			continue
		}

		j := i + 1
		for j < len(units) {
			next := units[j]
			if next.Form != FormSingleLine || next.block || !next.ownLine {
				break
			}
			if next.startLine != units[j-1].endLine+1 {
				break
			}
			j++
		}

		if j-i == 1 {
			out = append(out, u)
			i = j
			continue
		}

		merged := u
		merged.Form = FormMultiLineMerged
		merged.Attrs = u.Attrs.Clone()
		for k := i + 1; k < j; k++ {
			merged.Attrs.MergeFrom(units[k].Attrs)
			merged.Span = merged.Span.Cover(units[k].Span)
		}
		last := units[j-1]
		merged.Anchor = last.Anchor
		merged.AnchorLine = last.AnchorLine
		merged.endLine = last.endLine
		// Validity of the merged trust value is decided by the winner.
		merged.TrustInvalid = false
		if v, ok := merged.Attrs.Get("trust"); ok {
			merged.TrustInvalid = v.IsList || !trust.Valid(v.Str)
		}
		out = append(out, merged)
		i = j
	}
	return out
}

// matchBlocks pairs begin/end directives with strict LIFO nesting and
// reports imbalance. A matched begin gets its explicit scope: from its
// own anchor to the start of the end marker's line.
func (p *parser) matchBlocks(units []unit) {
	var stack []int
	for i := range units {
		switch units[i].Form {
		case FormBlockBegin:
			stack = append(stack, i)
		case FormBlockEnd:
			if len(stack) == 0 {
				p.reporter.Report(diag.DirUnmatchedEnd, diag.SevError, units[i].Span,
					"@collab:end without a matching @collab:begin", nil)
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			begin := &units[top]
			begin.Matched = true
			end := p.lineStart(units[i].startLine)
			// A begin and end on the same line govern nothing.
			if end < begin.Anchor {
				end = begin.Anchor
			}
			begin.BlockScope = source.Span{
				File:  p.file.ID,
				Start: begin.Anchor,
				End:   end,
			}
		}
	}

	// Blocks still open at end-of-file: report at EOF with the open
	// block's start, and leave them unmatched so no region is emitted
	// for their intended scope.
	eof := uint32(len(p.file.Content))
	for _, idx := range stack {
		p.reporter.Report(diag.DirUnbalancedBlock, diag.SevError,
			source.Span{File: p.file.ID, Start: eof, End: eof},
			"@collab:begin is never closed before end of file",
			[]diag.Note{{Span: units[idx].Span, Msg: "block opened here"}})
	}
}

// atWordEnd reports whether a marker's tail is empty or starts with
// whitespace.
func atWordEnd(tail string) bool {
	return tail == "" || tail[0] == ' ' || tail[0] == '\t'
}

// lineStart returns the byte offset where the 1-based line begins.
func (p *parser) lineStart(line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := p.file.LineIdx
	if int(line-2) < len(idx) {
		return idx[line-2] + 1
	}
	return uint32(len(p.file.Content))
}

// lineStartAfter returns the offset of the first byte after the given
// 1-based line, clamped to end-of-file.
func (p *parser) lineStartAfter(line uint32) uint32 {
	return p.lineStart(line + 1)
}

// ownLine reports whether the comment is preceded only by whitespace
// on its starting line. Trailing comments after code never merge and
// never anchor structural scope.
func (p *parser) ownLine(c comment.Comment) bool {
	start := p.lineStart(c.StartLine)
	for off := start; off < c.Span.Start; off++ {
		b := p.file.Content[off]
		if b != ' ' && b != '\t' {
			return false
		}
	}
	return true
}
