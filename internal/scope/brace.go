package scope

import (
	"strings"

	"collabscan/internal/diag"
	"collabscan/internal/directive"
	"collabscan/internal/lang"
	"collabscan/internal/source"
)

// detectBrace scopes a directive in a brace-delimited language: skip
// blank and comment lines after the anchor, then take the following
// declaration's header through its matching close brace. Braces inside
// strings, chars, and comments do not count.
func detectBrace(f *source.File, l *lang.Language, d directive.Directive, ls lines, r diag.Reporter) (Result, bool) {
	declLine, ok := ls.nextCodeLine(d.AnchorLine, l)
	if !ok {
		// Nothing follows the anchor; the directive governs only its
		// own line.
		return Result{Span: ls.ownLineSpan(d), Fallback: true}, true
	}

	declStart := ls.start(declLine)
	sc := byteScanner{content: f.Content, lang: l, off: declStart}

	depth := 0
	opened := false
	for !sc.eof() {
		b, code := sc.next()
		if !code {
			continue
		}
		switch b {
		case '{':
			depth++
			opened = true
		case '}':
			if opened {
				depth--
				if depth == 0 {
					return Result{Span: source.Span{File: f.ID, Start: declStart, End: sc.off}}, true
				}
			}
		case ';':
			if !opened {
				// Braceless declaration, e.g. `var x = 5;` — the
				// statement itself is the scope.
				return Result{Span: source.Span{File: f.ID, Start: declStart, End: sc.off}}, true
			}
		case '\n':
			if !opened && ls.isBlank(ls.lineOf(sc.off)) {
				// Header ran into a blank line without ever opening a
				// block: scope is the declaration lines seen so far.
				return Result{Span: source.Span{File: f.ID, Start: declStart, End: sc.off - 1}}, true
			}
		}
	}

	if opened && depth > 0 {
		r.Report(diag.ScopeNoMatch, diag.SevWarning, d.Span,
			"no matching close brace before end of file; directive downgraded to its own line", nil)
		return Result{Span: ls.ownLineSpan(d), Fallback: true}, true
	}

	// EOF without a block: the remainder of the file is the statement.
	return Result{Span: source.Span{File: f.ID, Start: declStart, End: sc.off}}, true
}

// byteScanner walks content and reports which bytes are code, skipping
// over string/char literals and comments wholesale.
type byteScanner struct {
	content []byte
	lang    *lang.Language
	off     uint32
}

func (sc *byteScanner) eof() bool {
	return sc.off >= uint32(len(sc.content))
}

func (sc *byteScanner) hasPrefix(s string) bool {
	end := sc.off + uint32(len(s))
	if end > uint32(len(sc.content)) {
		return false
	}
	return string(sc.content[sc.off:end]) == s
}

// next consumes one unit. code is true when b is a plain code byte;
// skipped literals and comments are consumed silently (code=false).
func (sc *byteScanner) next() (b byte, code bool) {
	for _, bc := range sc.lang.BlockComments {
		if sc.hasPrefix(bc.Open) {
			sc.skipBlockComment(bc)
			return 0, false
		}
	}
	for _, prefix := range sc.lang.LineComments {
		if sc.hasPrefix(prefix) {
			for !sc.eof() && sc.content[sc.off] != '\n' {
				sc.off++
			}
			return 0, false
		}
	}

	b = sc.content[sc.off]
	if sc.isQuote(b) {
		sc.skipString(b)
		return 0, false
	}
	sc.off++
	return b, true
}

func (sc *byteScanner) isQuote(b byte) bool {
	if b == '`' && sc.lang.RawStringBacktick {
		return true
	}
	return strings.IndexByte(string(sc.lang.StringQuotes), b) >= 0
}

func (sc *byteScanner) skipBlockComment(bc lang.BlockComment) {
	sc.off += uint32(len(bc.Open))
	depth := 1
	for !sc.eof() && depth > 0 {
		if bc.Nests && sc.hasPrefix(bc.Open) {
			sc.off += uint32(len(bc.Open))
			depth++
			continue
		}
		if sc.hasPrefix(bc.Close) {
			sc.off += uint32(len(bc.Close))
			depth--
			continue
		}
		sc.off++
	}
}

func (sc *byteScanner) skipString(quote byte) {
	if quote == '`' && sc.lang.RawStringBacktick {
		sc.off++
		for !sc.eof() {
			if sc.content[sc.off] == '`' {
				sc.off++
				return
			}
			sc.off++
		}
		return
	}

	closer := strings.Repeat(string(quote), 3)
	if sc.hasPrefix(closer) {
		sc.off += 3
		for !sc.eof() {
			if sc.hasPrefix(closer) {
				sc.off += 3
				return
			}
			sc.off++
		}
		return
	}

	sc.off++
	for !sc.eof() {
		switch sc.content[sc.off] {
		case '\\':
			sc.off += 2
		case quote:
			sc.off++
			return
		case '\n':
			// Unterminated literal stops at the line end.
			return
		default:
			sc.off++
		}
	}
}
