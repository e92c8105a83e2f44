// Package trust defines the closed set of governance tags a directive
// may assign to a code region. The engine treats each level as an
// opaque policy tag; it never orders or compares them.
package trust

import "fmt"

// Level is one of the four governance tags.
type Level string

const (
	ReadOnly    Level = "READ_ONLY"
	SuggestOnly Level = "SUGGEST_ONLY"
	Supervised  Level = "SUPERVISED"
	Autonomous  Level = "AUTONOMOUS"
)

// Parse validates a raw trust attribute value.
// The raw string is returned untouched on failure so callers can keep
// it as an opaque value in diagnostics.
func Parse(raw string) (Level, error) {
	switch Level(raw) {
	case ReadOnly, SuggestOnly, Supervised, Autonomous:
		return Level(raw), nil
	}
	return "", fmt.Errorf("unknown trust level %q", raw)
}

// Valid reports whether raw names one of the four levels.
func Valid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// All lists the levels in declaration order, for help text and the
// languages/validation surfaces.
func All() []Level {
	return []Level{ReadOnly, SuggestOnly, Supervised, Autonomous}
}
