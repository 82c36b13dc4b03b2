package model

const (
	MinMark = 0.0
	MaxMark = 100.0
)

// Gradable is anything carrying five marks and a percentage/grade result.
type Gradable interface {
	Marks() [5]*float64
	SetResult(percentage float64, grade string)
}

var gradeThresholds = []struct {
	min   float64
	grade string
}{
	{90, "A"},
	{80, "B"},
	{70, "C"},
	{60, "D"},
}

// CalculatePercentageAndGrade clamps each mark into [0,100] in place, then
// sets the percentage to their mean and the grade from the thresholds.
func CalculatePercentageAndGrade(g Gradable) {
	total := 0.0
	for _, m := range g.Marks() {
		*m = Clamp(*m)
		total += *m
	}
	percentage := total / 5.0
	g.SetResult(percentage, GradeFor(percentage))
}

func Clamp(m float64) float64 {
	if m < MinMark {
		return MinMark
	}
	if m > MaxMark {
		return MaxMark
	}
	return m
}

// GradeFor maps a percentage to a letter grade, highest threshold first.
func GradeFor(percentage float64) string {
	for _, t := range gradeThresholds {
		if percentage >= t.min {
			return t.grade
		}
	}
	return "F"
}
