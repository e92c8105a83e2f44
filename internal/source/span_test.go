package source

import (
	"testing"
)

func TestSpan_Contains(t *testing.T) {
	tests := []struct {
		name     string
		outer    Span
		inner    Span
		expected bool
	}{
		{
			name:     "proper containment",
			outer:    Span{File: 1, Start: 10, End: 50},
			inner:    Span{File: 1, Start: 20, End: 30},
			expected: true,
		},
		{
			name:     "identical spans contain each other",
			outer:    Span{File: 1, Start: 10, End: 50},
			inner:    Span{File: 1, Start: 10, End: 50},
			expected: true,
		},
		{
			name:     "shared start",
			outer:    Span{File: 1, Start: 10, End: 50},
			inner:    Span{File: 1, Start: 10, End: 20},
			expected: true,
		},
		{
			name:     "shared end",
			outer:    Span{File: 1, Start: 10, End: 50},
			inner:    Span{File: 1, Start: 40, End: 50},
			expected: true,
		},
		{
			name:     "partial overlap is not containment",
			outer:    Span{File: 1, Start: 10, End: 50},
			inner:    Span{File: 1, Start: 40, End: 60},
			expected: false,
		},
		{
			name:     "disjoint",
			outer:    Span{File: 1, Start: 10, End: 20},
			inner:    Span{File: 1, Start: 30, End: 40},
			expected: false,
		},
		{
			name:     "different files never contain",
			outer:    Span{File: 1, Start: 10, End: 50},
			inner:    Span{File: 2, Start: 20, End: 30},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Contains(tt.inner); got != tt.expected {
				t.Errorf("Contains() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        Span
		b        Span
		expected bool
	}{
		{
			name:     "partial overlap",
			a:        Span{File: 1, Start: 10, End: 30},
			b:        Span{File: 1, Start: 20, End: 40},
			expected: true,
		},
		{
			name:     "nested spans overlap",
			a:        Span{File: 1, Start: 10, End: 50},
			b:        Span{File: 1, Start: 20, End: 30},
			expected: true,
		},
		{
			name:     "touching spans do not overlap",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 20, End: 30},
			expected: false,
		},
		{
			name:     "disjoint",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 25, End: 30},
			expected: false,
		},
		{
			name:     "different files",
			a:        Span{File: 1, Start: 10, End: 30},
			b:        Span{File: 2, Start: 20, End: 40},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.expected {
				t.Errorf("Overlaps() = %v, want %v", got, tt.expected)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.expected {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_ContainsOffset(t *testing.T) {
	s := Span{File: 1, Start: 10, End: 20}

	tests := []struct {
		name     string
		off      uint32
		expected bool
	}{
		{name: "before start", off: 9, expected: false},
		{name: "at start", off: 10, expected: true},
		{name: "inside", off: 15, expected: true},
		{name: "at end is exclusive", off: 20, expected: false},
		{name: "after end", off: 25, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ContainsOffset(tt.off); got != tt.expected {
				t.Errorf("ContainsOffset(%d) = %v, want %v", tt.off, got, tt.expected)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a        Span
		b        Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained span changes nothing",
			a:        Span{File: 1, Start: 10, End: 50},
			b:        Span{File: 1, Start: 20, End: 30},
			expected: Span{File: 1, Start: 10, End: 50},
		},
		{
			name:     "other file is ignored",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_EmptyAndLen(t *testing.T) {
	empty := Span{File: 1, Start: 10, End: 10}
	if !empty.Empty() {
		t.Error("Expected zero-length span to be empty")
	}
	if empty.Len() != 0 {
		t.Errorf("Len() = %d, want 0", empty.Len())
	}

	full := Span{File: 1, Start: 10, End: 25}
	if full.Empty() {
		t.Error("Expected non-zero span to be non-empty")
	}
	if full.Len() != 15 {
		t.Errorf("Len() = %d, want 15", full.Len())
	}
}
