// Package scope determines the span of code a directive governs.
// Block directives carry their scope explicitly; everything else is
// inferred per language style: brace matching, indentation blocks, or
// the own-line fallback for languages with no reliable structure.
package scope

import (
	"strings"

	"collabscan/internal/diag"
	"collabscan/internal/directive"
	"collabscan/internal/lang"
	"collabscan/internal/source"
)

// Result is a detected scope. Fallback records that the directive was
// downgraded to its own line span, which ranks last when the resolver
// breaks ties between identical spans.
type Result struct {
	Span     source.Span
	Fallback bool
}

// Detect returns the scope the directive governs. ok is false for
// directives that govern nothing (block ends, unmatched begins).
func Detect(f *source.File, l *lang.Language, d directive.Directive, r diag.Reporter) (Result, bool) {
	if r == nil {
		r = diag.NopReporter{}
	}

	switch d.Form {
	case directive.FormBlockEnd:
		return Result{}, false
	case directive.FormBlockBegin:
		if !d.Matched {
			// Already reported as unbalanced; no region for its
			// intended scope.
			return Result{}, false
		}
		return Result{Span: d.BlockScope}, true
	}

	ls := lines{file: f}

	// A trailing comment never governs the following declaration.
	if d.Trailing {
		return Result{Span: ls.ownLineSpan(d), Fallback: true}, true
	}

	switch l.Style {
	case lang.StyleBrace:
		return detectBrace(f, l, d, ls, r)
	case lang.StyleIndent:
		return detectIndent(l, d, ls)
	default:
		return Result{Span: ls.ownLineSpan(d), Fallback: true}, true
	}
}

// lines provides 1-based line arithmetic over a file.
type lines struct {
	file *source.File
}

func (ls lines) count() uint32 {
	return uint32(len(ls.file.LineIdx)) + 1
}

func (ls lines) start(line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := ls.file.LineIdx
	if int(line-2) < len(idx) {
		return idx[line-2] + 1
	}
	return uint32(len(ls.file.Content))
}

// end returns the offset of the line's terminating newline, or EOF.
func (ls lines) end(line uint32) uint32 {
	idx := ls.file.LineIdx
	if int(line-1) < len(idx) {
		return idx[line-1]
	}
	return uint32(len(ls.file.Content))
}

func (ls lines) text(line uint32) string {
	return string(ls.file.Content[ls.start(line):ls.end(line)])
}

func (ls lines) lineOf(off uint32) uint32 {
	idx := ls.file.LineIdx
	lo, hi := 0, len(idx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if idx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return uint32(lo + 1)
}

func (ls lines) isBlank(line uint32) bool {
	return strings.TrimSpace(ls.text(line)) == ""
}

// indentWidth counts leading spaces and tabs in bytes.
func (ls lines) indentWidth(line uint32) uint32 {
	text := ls.text(line)
	return uint32(len(text) - len(strings.TrimLeft(text, " \t")))
}

// isCommentLine reports whether the line holds nothing but a comment.
func (ls lines) isCommentLine(line uint32, l *lang.Language) bool {
	text := strings.TrimLeft(ls.text(line), " \t")
	for _, prefix := range l.LineComments {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	for _, bc := range l.BlockComments {
		if strings.HasPrefix(text, bc.Open) {
			return true
		}
	}
	return false
}

// nextCodeLine finds the first line at or after from that is neither
// blank nor a pure comment line. ok is false when none exists.
func (ls lines) nextCodeLine(from uint32, l *lang.Language) (uint32, bool) {
	for line := from; line <= ls.count(); line++ {
		if ls.isBlank(line) || ls.isCommentLine(line, l) {
			continue
		}
		return line, true
	}
	return 0, false
}

// ownLineSpan is the explicit-marker fallback: exactly the directive's
// own line span (all lines of a merged run).
func (ls lines) ownLineSpan(d directive.Directive) source.Span {
	startLine := ls.lineOf(d.Span.Start)
	endLine := ls.lineOf(d.Span.End)
	return source.Span{
		File:  ls.file.ID,
		Start: ls.start(startLine),
		End:   ls.end(endLine),
	}
}
