package record

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rekodihq/rekodi/core"
)

// The grading scale, in display order. Fixed and externally supplied; the
// engine never redesigns it.
var gradeScale = []GradePoint{
	{Letter: "A+", Points: dec("4.00")},
	{Letter: "A", Points: dec("4.00")},
	{Letter: "A-", Points: dec("3.70")},
	{Letter: "B+", Points: dec("3.50")},
	{Letter: "B", Points: dec("3.00")},
	{Letter: "B-", Points: dec("2.70")},
	{Letter: "C+", Points: dec("2.50")},
	{Letter: "C", Points: dec("2.00")},
	{Letter: "C-", Points: dec("1.75")},
	{Letter: "D", Points: dec("1.00")},
	{Letter: "F", Points: dec("0.00")},
}

var gradePoints = func() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(gradeScale))
	for _, gp := range gradeScale {
		m[gp.Letter] = gp.Points
	}
	return m
}()

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type GradePoint struct {
	Letter string          `json:"letter"`
	Points decimal.Decimal `json:"points"`
}

// GradePoints maps a letter grade to its numeric grade point.
// A letter not on the scale - including the empty letter of an enrollment
// that has not been graded yet - resolves to 0.00 while its credits still
// count in the denominator; an ungraded course drags the average toward zero
// instead of being excluded. UI copy must not render that zero as an "F".
func GradePoints(letter string) decimal.Decimal {
	if pts, ok := gradePoints[strings.ToUpper(core.CleanString(letter))]; ok {
		return pts
	}
	return decimal.Zero
}

// GradeScale returns the grading scale for report/UI collaborators.
func GradeScale() []GradePoint {
	scale := make([]GradePoint, len(gradeScale))
	copy(scale, gradeScale)
	return scale
}
