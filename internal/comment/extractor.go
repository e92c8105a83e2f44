// Package comment extracts the comment spans of a source file, given
// the file's language. It does not interpret comment content; whether
// a comment carries a directive is a later stage's concern.
package comment

import (
	"strings"

	"collabscan/internal/diag"
	"collabscan/internal/lang"
	"collabscan/internal/source"
)

// Comment is one extracted comment.
type Comment struct {
	// Span covers the whole comment including its delimiters.
	Span source.Span
	// Text is the comment body without delimiters, untrimmed.
	Text string
	// TextStart is the byte offset of Text within the file.
	TextStart uint32
	// StartLine and EndLine are 1-based.
	StartLine uint32
	EndLine   uint32
	// Block is true for block-delimited comments.
	Block bool
}

// Extractor yields the comments of one file lazily and in order.
// A fresh Extractor over the same file restarts the sequence.
type Extractor struct {
	cursor   Cursor
	language *lang.Language
	reporter diag.Reporter
	line     uint32 // 1-based line of the cursor position
}

// NewExtractor builds an extractor for the file using the language's
// comment syntax. The reporter may be nil.
func NewExtractor(f *source.File, l *lang.Language, r diag.Reporter) *Extractor {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Extractor{
		cursor:   NewCursor(f),
		language: l,
		reporter: r,
		line:     1,
	}
}

// Next returns the next comment in source order. ok is false at EOF.
func (ex *Extractor) Next() (c Comment, ok bool) {
	for !ex.cursor.EOF() {
		b := ex.cursor.Peek()

		if b == '\n' {
			ex.cursor.Bump()
			ex.line++
			continue
		}

		// Strings first: a comment marker inside a literal is payload.
		if ex.isStringQuote(b) {
			ex.skipString(b)
			continue
		}

		for _, bc := range ex.language.BlockComments {
			if ex.cursor.HasPrefix(bc.Open) {
				return ex.scanBlockComment(bc), true
			}
		}

		for _, prefix := range ex.language.LineComments {
			if ex.cursor.HasPrefix(prefix) {
				return ex.scanLineComment(prefix), true
			}
		}

		ex.cursor.Bump()
	}
	return Comment{}, false
}

// All drains the extractor into a slice.
func (ex *Extractor) All() []Comment {
	var out []Comment
	for {
		c, ok := ex.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func (ex *Extractor) scanLineComment(prefix string) Comment {
	start := ex.cursor.Mark()
	startLine := ex.line
	ex.cursor.EatPrefix(prefix)
	textStart := ex.cursor.Mark()
	for !ex.cursor.EOF() && ex.cursor.Peek() != '\n' {
		ex.cursor.Bump()
	}
	textSpan := ex.cursor.SpanFrom(textStart)
	return Comment{
		Span:      ex.cursor.SpanFrom(start),
		Text:      string(ex.cursor.File.Content[textSpan.Start:textSpan.End]),
		TextStart: textSpan.Start,
		StartLine: startLine,
		EndLine:   startLine,
	}
}

func (ex *Extractor) scanBlockComment(bc lang.BlockComment) Comment {
	start := ex.cursor.Mark()
	startLine := ex.line
	ex.cursor.EatPrefix(bc.Open)
	textStart := ex.cursor.Mark()
	textEnd := textStart

	depth := 1
	for !ex.cursor.EOF() && depth > 0 {
		if bc.Nests && ex.cursor.HasPrefix(bc.Open) {
			ex.cursor.EatPrefix(bc.Open)
			depth++
			continue
		}
		if ex.cursor.HasPrefix(bc.Close) {
			textEnd = ex.cursor.Mark()
			ex.cursor.EatPrefix(bc.Close)
			depth--
			continue
		}
		if ex.cursor.Peek() == '\n' {
			ex.line++
		}
		ex.cursor.Bump()
	}

	span := ex.cursor.SpanFrom(start)
	if depth > 0 {
		textEnd = ex.cursor.Mark()
		ex.reporter.Report(diag.LangUnterminatedComment, diag.SevWarning, span,
			"block comment is not terminated before end of file", nil)
	}
	return Comment{
		Span:      span,
		Text:      string(ex.cursor.File.Content[uint32(textStart):uint32(textEnd)]),
		TextStart: uint32(textStart),
		StartLine: startLine,
		EndLine:   ex.line,
		Block:     true,
	}
}

func (ex *Extractor) isStringQuote(b byte) bool {
	if b == '`' && ex.language.RawStringBacktick {
		return true
	}
	return strings.IndexByte(string(ex.language.StringQuotes), b) >= 0
}

// skipString consumes a string or char literal so its bytes are never
// mistaken for comment markers. Handles backslash escapes, Go-style
// raw backtick strings, and triple-quoted strings.
func (ex *Extractor) skipString(quote byte) {
	if quote == '`' && ex.language.RawStringBacktick {
		ex.cursor.Bump()
		for !ex.cursor.EOF() {
			b := ex.cursor.Bump()
			if b == '\n' {
				ex.line++
			}
			if b == '`' {
				return
			}
		}
		return
	}

	// Triple-quoted form, e.g. Python docstrings.
	if ex.cursor.PeekAt(1) == quote && ex.cursor.PeekAt(2) == quote {
		ex.cursor.Bump()
		ex.cursor.Bump()
		ex.cursor.Bump()
		closer := strings.Repeat(string(quote), 3)
		for !ex.cursor.EOF() {
			if ex.cursor.EatPrefix(closer) {
				return
			}
			if ex.cursor.Bump() == '\n' {
				ex.line++
			}
		}
		return
	}

	ex.cursor.Bump()
	for !ex.cursor.EOF() {
		b := ex.cursor.Bump()
		switch b {
		case '\\':
			ex.cursor.Bump()
		case quote:
			return
		case '\n':
			// Unterminated single-line literal; stop at the line end
			// so a stray quote cannot swallow the rest of the file.
			ex.line++
			return
		}
	}
}
