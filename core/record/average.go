package record

import "github.com/shopspring/decimal"

// WeightedAverage computes the credit-weighted grade point average of loads,
// rounded half-up to 2 decimal places, along with the total credits carried.
// Decimal arithmetic is used throughout so that a raw average like 3.675
// rounds to 3.68, which binary floats get wrong.
//
// A zero credit total is the "no courses in scope" sentinel: (0, 0) is
// returned and no division happens.
func WeightedAverage(loads []CourseLoad) (value float64, totalCredits int) {
	var weighted decimal.Decimal
	for _, load := range loads {
		totalCredits += load.Credits
		weighted = weighted.Add(GradePoints(load.Grade).Mul(decimal.NewFromInt(int64(load.Credits))))
	}
	if totalCredits == 0 {
		return 0, 0
	}
	avg := weighted.Div(decimal.NewFromInt(int64(totalCredits))).Round(2)
	value, _ = avg.Float64()
	return value, totalCredits
}
