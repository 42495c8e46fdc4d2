package record

import "testing"

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name        string
		loads       []CourseLoad
		wantValue   float64
		wantCredits int
	}{
		{name: "no courses", loads: nil, wantValue: 0, wantCredits: 0},
		{name: "zero-credit courses only", loads: []CourseLoad{{Credits: 0, Grade: "A"}}, wantValue: 0, wantCredits: 0},
		{name: "single course", loads: []CourseLoad{{Credits: 3, Grade: "B+"}}, wantValue: 3.5, wantCredits: 3},
		{
			name:        "credit weighting",
			loads:       []CourseLoad{{Credits: 3, Grade: "A"}, {Credits: 4, Grade: "B"}}, // 24/7
			wantValue:   3.43,
			wantCredits: 7,
		},
		{
			name:        "half-up rounding on a .675 average",
			loads:       []CourseLoad{{Credits: 9, Grade: "A+"}, {Credits: 3, Grade: "B-"}}, // 44.1/12 = 3.675
			wantValue:   3.68,
			wantCredits: 12,
		},
		{
			name:        "ungraded course weighs zero but keeps its credits",
			loads:       []CourseLoad{{Credits: 3, Grade: "A"}, {Credits: 3, Grade: ""}}, // 12/6
			wantValue:   2,
			wantCredits: 6,
		},
		{
			name:        "unknown letter weighs zero but keeps its credits",
			loads:       []CourseLoad{{Credits: 3, Grade: "A"}, {Credits: 3, Grade: "E"}},
			wantValue:   2,
			wantCredits: 6,
		},
		{
			name:        "all failed",
			loads:       []CourseLoad{{Credits: 3, Grade: "F"}, {Credits: 4, Grade: "F"}},
			wantValue:   0,
			wantCredits: 7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, credits := WeightedAverage(tt.loads)
			if value != tt.wantValue {
				t.Errorf("WeightedAverage() value = %v, want %v", value, tt.wantValue)
			}
			if credits != tt.wantCredits {
				t.Errorf("WeightedAverage() totalCredits = %v, want %v", credits, tt.wantCredits)
			}
		})
	}
}
