package record

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGradePoints(t *testing.T) {
	tests := []struct {
		letter string
		want   string
	}{
		{"A+", "4.00"},
		{"A", "4.00"},
		{"A-", "3.70"},
		{"B+", "3.50"},
		{"B", "3.00"},
		{"B-", "2.70"},
		{"C+", "2.50"},
		{"C", "2.00"},
		{"C-", "1.75"},
		{"D", "1.00"},
		{"F", "0.00"},
		{"", "0"},      // not graded yet
		{"E", "0"},     // off the scale
		{"a+", "4.00"}, // normalized
		{" b- ", "2.70"},
	}
	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			if got := GradePoints(tt.letter); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("GradePoints(%q) = %s, want %s", tt.letter, got, tt.want)
			}
		})
	}
}

func TestGradeScale(t *testing.T) {
	scale := GradeScale()
	if len(scale) != 11 {
		t.Fatalf("GradeScale() returned %d entries, want 11", len(scale))
	}
	if scale[0].Letter != "A+" || scale[len(scale)-1].Letter != "F" {
		t.Errorf("GradeScale() out of display order: first %q, last %q", scale[0].Letter, scale[len(scale)-1].Letter)
	}

	// callers get a copy, not the scale itself
	scale[0].Letter = "Z"
	if GradeScale()[0].Letter != "A+" {
		t.Error("GradeScale() exposed the internal scale to mutation")
	}
}
