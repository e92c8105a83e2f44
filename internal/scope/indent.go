package scope

import (
	"collabscan/internal/directive"
	"collabscan/internal/lang"
	"collabscan/internal/source"
)

// detectIndent scopes a directive in an indentation-delimited
// language: the next statement after the anchor plus every following
// line with strictly greater indentation. Blank lines inside the block
// are included; trailing blank lines are not.
func detectIndent(l *lang.Language, d directive.Directive, ls lines) (Result, bool) {
	declLine, ok := ls.nextCodeLine(d.AnchorLine, l)
	if !ok {
		return Result{Span: ls.ownLineSpan(d), Fallback: true}, true
	}

	base := ls.indentWidth(declLine)
	last := declLine
	for line := declLine + 1; line <= ls.count(); line++ {
		if ls.isBlank(line) {
			continue
		}
		if ls.indentWidth(line) <= base {
			break
		}
		last = line
	}

	return Result{Span: source.Span{
		File:  ls.file.ID,
		Start: ls.start(declLine),
		End:   ls.end(last),
	}}, true
}
