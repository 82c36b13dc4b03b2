package model

const (
	MaxNameLength   = 50
	MaxBranchLength = 30
)

// Student is a stored student record. Percentage and Grade are derived from
// the five marks and are recomputed on every create and update.
type Student struct {
	Roll       int     `gorm:"primaryKey;autoIncrement:false" json:"roll"`
	Name       string  `gorm:"size:50" json:"name"`
	Age        int     `json:"age"`
	Branch     string  `gorm:"size:30" json:"branch"`
	Mark1      float64 `json:"mark1"`
	Mark2      float64 `json:"mark2"`
	Mark3      float64 `json:"mark3"`
	Mark4      float64 `json:"mark4"`
	Mark5      float64 `json:"mark5"`
	Percentage float64 `gorm:"index" json:"percentage"`
	Grade      string  `gorm:"size:1" json:"grade"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) Marks() [5]*float64 {
	return [5]*float64{&s.Mark1, &s.Mark2, &s.Mark3, &s.Mark4, &s.Mark5}
}

func (s *Student) SetResult(percentage float64, grade string) {
	s.Percentage = percentage
	s.Grade = grade
}

// Normalize truncates the text fields and recomputes percentage and grade.
func (s *Student) Normalize() {
	s.Name = Truncate(s.Name, MaxNameLength)
	s.Branch = Truncate(s.Branch, MaxBranchLength)
	CalculatePercentageAndGrade(s)
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
