package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FlexInt accepts a JSON number or a numeric string. Fractional numbers are
// truncated toward zero.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	v, err := parseFlexInt(data)
	if err != nil {
		return err
	}
	*i = FlexInt(v)
	return nil
}

// ParseInt parses a bare CSV/form value the same way as a JSON string.
func ParseInt(s string) (FlexInt, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, NewValidationError("invalid integer %q", s)
	}
	return FlexInt(v), nil
}

func parseFlexInt(data []byte) (int, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		v, err := ParseInt(s)
		return int(v), err
	}
	raw := string(data)
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, NewValidationError("invalid integer %s", raw)
	}
	return int(math.Trunc(f)), nil
}

// FlexFloat accepts a JSON number or a numeric string. Non-finite values are
// rejected.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseFloat(s)
		if err != nil {
			return err
		}
		*f = v
		return nil
	}
	v, err := ParseFloat(string(data))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func ParseFloat(s string) (FlexFloat, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewValidationError("invalid number %q", s)
	}
	return FlexFloat(v), nil
}

// CreateStudentRequest is the decoded body of a create request. Pointer
// fields distinguish an absent value from a zero one.
type CreateStudentRequest struct {
	Roll   *FlexInt   `json:"roll" validate:"required"`
	Name   *string    `json:"name"`
	Age    *FlexInt   `json:"age"`
	Branch *string    `json:"branch"`
	Mark1  *FlexFloat `json:"mark1"`
	Mark2  *FlexFloat `json:"mark2"`
	Mark3  *FlexFloat `json:"mark3"`
	Mark4  *FlexFloat `json:"mark4"`
	Mark5  *FlexFloat `json:"mark5"`
}

func (r *CreateStudentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return NewValidationError("invalid data: %s", fieldErrors(err))
	}
	return nil
}

// ToModel builds a record with absent fields defaulted to zero values. The
// result is not yet normalized.
func (r *CreateStudentRequest) ToModel() Student {
	s := Student{Roll: int(*r.Roll)}
	fields := UpdateStudentRequest{
		Name: r.Name, Age: r.Age, Branch: r.Branch,
		Mark1: r.Mark1, Mark2: r.Mark2, Mark3: r.Mark3, Mark4: r.Mark4, Mark5: r.Mark5,
	}
	fields.ApplyTo(&s)
	return s
}

// UpdateStudentRequest holds the fields of a partial update. A roll in the
// body is ignored since it cannot change.
type UpdateStudentRequest struct {
	Name   *string    `json:"name"`
	Age    *FlexInt   `json:"age"`
	Branch *string    `json:"branch"`
	Mark1  *FlexFloat `json:"mark1"`
	Mark2  *FlexFloat `json:"mark2"`
	Mark3  *FlexFloat `json:"mark3"`
	Mark4  *FlexFloat `json:"mark4"`
	Mark5  *FlexFloat `json:"mark5"`
}

func (r *UpdateStudentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return NewValidationError("invalid data: %s", fieldErrors(err))
	}
	return nil
}

// ApplyTo copies every supplied field onto s, leaving the rest untouched.
func (r *UpdateStudentRequest) ApplyTo(s *Student) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Age != nil {
		s.Age = int(*r.Age)
	}
	if r.Branch != nil {
		s.Branch = *r.Branch
	}
	marks := s.Marks()
	for i, m := range []*FlexFloat{r.Mark1, r.Mark2, r.Mark3, r.Mark4, r.Mark5} {
		if m != nil {
			*marks[i] = float64(*m)
		}
	}
}

func fieldErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, strings.ToLower(fe.Field())+" is "+fe.Tag())
	}
	return strings.Join(msgs, ", ")
}
