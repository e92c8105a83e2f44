package directive

import (
	"fmt"
)

// attrLexer scans the attribute tail of a directive: zero or more
// key="value" or key=["a","b"] pairs. Offsets are relative to the
// start of the scanned text so callers can map errors back to spans.
type attrLexer struct {
	text string
	pos  int
}

// syntaxError carries the relative offset of the offending byte.
type syntaxError struct {
	off int
	msg string
}

func (e *syntaxError) Error() string {
	return e.msg
}

// parseAttrs lexes the attribute list. On error the set parsed so far
// is discarded; the whole directive is dropped by the caller.
func parseAttrs(text string) (*AttrSet, *syntaxError) {
	lx := &attrLexer{text: text}
	set := NewAttrSet()

	for {
		lx.skipSpaces()
		if lx.eof() {
			return set, nil
		}

		key, err := lx.scanKey()
		if err != nil {
			return nil, err
		}
		if !lx.eat('=') {
			return nil, &syntaxError{off: lx.pos, msg: fmt.Sprintf("expected '=' after attribute key %q", key)}
		}

		switch {
		case lx.peek() == '"':
			val, err := lx.scanQuoted()
			if err != nil {
				return nil, err
			}
			set.Set(key, Value{Str: val})
		case lx.peek() == '[':
			list, err := lx.scanList()
			if err != nil {
				return nil, err
			}
			set.Set(key, Value{List: list, IsList: true})
		default:
			return nil, &syntaxError{off: lx.pos, msg: fmt.Sprintf("expected quoted value or list after %q=", key)}
		}
	}
}

func (lx *attrLexer) eof() bool {
	return lx.pos >= len(lx.text)
}

func (lx *attrLexer) peek() byte {
	if lx.eof() {
		return 0
	}
	return lx.text[lx.pos]
}

func (lx *attrLexer) eat(b byte) bool {
	if lx.peek() == b {
		lx.pos++
		return true
	}
	return false
}

func (lx *attrLexer) skipSpaces() {
	for !lx.eof() && (lx.text[lx.pos] == ' ' || lx.text[lx.pos] == '\t') {
		lx.pos++
	}
}

func isKeyByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '_' || b == '-'
}

func (lx *attrLexer) scanKey() (string, *syntaxError) {
	start := lx.pos
	for !lx.eof() && isKeyByte(lx.text[lx.pos]) {
		lx.pos++
	}
	if lx.pos == start {
		return "", &syntaxError{off: lx.pos, msg: "expected attribute key"}
	}
	return lx.text[start:lx.pos], nil
}

// scanQuoted reads a double-quoted string with \" and \\ escapes.
func (lx *attrLexer) scanQuoted() (string, *syntaxError) {
	openAt := lx.pos
	lx.pos++ // opening quote
	var out []byte
	for !lx.eof() {
		b := lx.text[lx.pos]
		switch b {
		case '\\':
			if lx.pos+1 < len(lx.text) {
				out = append(out, lx.text[lx.pos+1])
				lx.pos += 2
				continue
			}
			lx.pos++
		case '"':
			lx.pos++
			return string(out), nil
		default:
			out = append(out, b)
			lx.pos++
		}
	}
	return "", &syntaxError{off: openAt, msg: "unterminated quoted value"}
}

// scanList reads ["a","b",...]; empty lists are allowed.
func (lx *attrLexer) scanList() ([]string, *syntaxError) {
	openAt := lx.pos
	lx.pos++ // opening bracket
	out := []string{}
	for {
		lx.skipSpaces()
		if lx.eof() {
			return nil, &syntaxError{off: openAt, msg: "unterminated list value"}
		}
		if lx.eat(']') {
			return out, nil
		}
		if lx.peek() != '"' {
			return nil, &syntaxError{off: lx.pos, msg: "expected quoted string in list"}
		}
		s, err := lx.scanQuoted()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		lx.skipSpaces()
		if lx.eat(',') {
			continue
		}
		if lx.eat(']') {
			return out, nil
		}
		return nil, &syntaxError{off: lx.pos, msg: "expected ',' or ']' in list"}
	}
}
