package trust

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		level Level
		ok    bool
	}{
		{name: "read only", raw: "READ_ONLY", level: ReadOnly, ok: true},
		{name: "suggest only", raw: "SUGGEST_ONLY", level: SuggestOnly, ok: true},
		{name: "supervised", raw: "SUPERVISED", level: Supervised, ok: true},
		{name: "autonomous", raw: "AUTONOMOUS", level: Autonomous, ok: true},
		{name: "lowercase rejected", raw: "read_only", ok: false},
		{name: "unknown rejected", raw: "TRUSTED", ok: false},
		{name: "empty rejected", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Parse(tt.raw)
			if (err == nil) != tt.ok {
				t.Fatalf("Parse(%q) error = %v, want ok=%v", tt.raw, err, tt.ok)
			}
			if tt.ok && lvl != tt.level {
				t.Errorf("Parse(%q) = %v, want %v", tt.raw, lvl, tt.level)
			}
			if Valid(tt.raw) != tt.ok {
				t.Errorf("Valid(%q) = %v, want %v", tt.raw, Valid(tt.raw), tt.ok)
			}
		})
	}
}

func TestAll(t *testing.T) {
	levels := All()
	if len(levels) != 4 {
		t.Fatalf("All() returned %d levels, want 4", len(levels))
	}
	for _, lvl := range levels {
		if !Valid(string(lvl)) {
			t.Errorf("All() produced invalid level %q", lvl)
		}
	}
}
