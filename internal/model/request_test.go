package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexInt
		wantErr bool
	}{
		{"number", `101`, 101, false},
		{"negative", `-7`, -7, false},
		{"numeric string", `"102"`, 102, false},
		{"padded string", `" 103 "`, 103, false},
		{"fraction truncates", `20.9`, 20, false},
		{"exponent", `1e2`, 100, false},
		{"word", `"abc"`, 0, true},
		{"fraction string", `"20.5"`, 0, true},
		{"bool", `true`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v FlexInt
			err := json.Unmarshal([]byte(tt.input), &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexFloat
		wantErr bool
	}{
		{"number", `95.5`, 95.5, false},
		{"integer", `88`, 88, false},
		{"numeric string", `"72.25"`, 72.25, false},
		{"word", `"ninety"`, 0, true},
		{"nan string", `"NaN"`, 0, true},
		{"inf string", `"inf"`, 0, true},
		{"object", `{}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v FlexFloat
			err := json.Unmarshal([]byte(tt.input), &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestCreateStudentRequestRequiresRoll(t *testing.T) {
	var req CreateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Asha"}`), &req))

	err := req.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "roll is required")
}

func TestCreateStudentRequestNullRollIsMissing(t *testing.T) {
	var req CreateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"roll":null}`), &req))
	assert.ErrorIs(t, req.Validate(), ErrValidation)
}

func TestCreateStudentRequestToModel(t *testing.T) {
	var req CreateStudentRequest
	body := `{"roll":"7","name":"Asha","age":19,"mark1":80,"mark3":"60"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	s := req.ToModel()
	assert.Equal(t, 7, s.Roll)
	assert.Equal(t, "Asha", s.Name)
	assert.Equal(t, 19, s.Age)
	assert.Equal(t, "", s.Branch)
	assert.Equal(t, 80.0, s.Mark1)
	assert.Equal(t, 0.0, s.Mark2)
	assert.Equal(t, 60.0, s.Mark3)
}

func TestUpdateStudentRequestApplyToKeepsUnsuppliedFields(t *testing.T) {
	s := Student{Roll: 1, Name: "Old", Age: 20, Branch: "Civil", Mark1: 10, Mark2: 20, Mark3: 30, Mark4: 40, Mark5: 50}

	var req UpdateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"roll":99,"branch":"Mechanical","mark2":95}`), &req))
	require.NoError(t, req.Validate())
	req.ApplyTo(&s)

	assert.Equal(t, 1, s.Roll)
	assert.Equal(t, "Old", s.Name)
	assert.Equal(t, 20, s.Age)
	assert.Equal(t, "Mechanical", s.Branch)
	assert.Equal(t, []float64{10, 95, 30, 40, 50}, []float64{s.Mark1, s.Mark2, s.Mark3, s.Mark4, s.Mark5})
}

func TestParseHelpers(t *testing.T) {
	i, err := ParseInt(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, FlexInt(12), i)

	_, err = ParseInt("x")
	assert.ErrorIs(t, err, ErrValidation)

	f, err := ParseFloat("99.5")
	require.NoError(t, err)
	assert.Equal(t, FlexFloat(99.5), f)

	_, err = ParseFloat("")
	assert.ErrorIs(t, err, ErrValidation)
}
