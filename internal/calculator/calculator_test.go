package calculator

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-calculator/internal/apperror"
	"nutrition-calculator/internal/model"
)

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := New(validator.New())
	require.NoError(t, err)
	return c
}

func encode(t *testing.T, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(v))
	return strings.TrimSuffix(buf.String(), "\n")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  model.Input
	}{
		{
			name:  "defaults",
			query: "",
			want:  model.Input{Sex: "male", ActivityLevel: "sedentary", Goal: "maintain"},
		},
		{
			name:  "all values, mixed case",
			query: "age=25&weight=70.5&height=175&sex=FEMALE&activity_level=Very_Active&goal=LOSE",
			want:  model.Input{Age: 25, Weight: 70.5, Height: 175, Sex: "female", ActivityLevel: "very_active", Goal: "lose"},
		},
		{
			name:  "unparseable numbers become zero",
			query: "age=twenty&weight=heavy&height=1.2.3",
			want:  model.Input{Sex: "male", ActivityLevel: "sedentary", Goal: "maintain"},
		},
		{
			name:  "fractional age is not an integer",
			query: "age=25.5&weight=70&height=175",
			want:  model.Input{Weight: 70, Height: 175, Sex: "male", ActivityLevel: "sedentary", Goal: "maintain"},
		},
		{
			name:  "non-finite reals become zero",
			query: "age=30&weight=NaN&height=inf",
			want:  model.Input{Age: 30, Sex: "male", ActivityLevel: "sedentary", Goal: "maintain"},
		},
		{
			name:  "surrounding whitespace is ignored",
			query: "age=+30%20&weight=%2080&height=1e2",
			want:  model.Input{Age: 30, Weight: 80, Height: 100, Sex: "male", ActivityLevel: "sedentary", Goal: "maintain"},
		},
		{
			name:  "present but empty strings are kept",
			query: "sex=&activity_level=&goal=",
			want:  model.Input{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, Parse(q))
		})
	}
}

func TestEvaluate_ReferenceProfile(t *testing.T) {
	c := newCalculator(t)

	res, v := c.Evaluate(model.Input{Age: 25, Weight: 70, Height: 175, Sex: "male", ActivityLevel: "moderate", Goal: "maintain"})
	require.Nil(t, v)
	require.NotNil(t, res)

	assert.Equal(t, `{"success":true,"age":25,"weight_kg":70.0,"height_cm":175.0,"sex":"male",`+
		`"activity_level":"moderate","goal":"maintain","results":{"bmr":1673.8,"tdee_maintenance":2594.3,`+
		`"recommended_calories_for_goal":2594.3,"protein_grams_per_day":"105.0g"},`+
		`"note":"`+Note+`","message":"`+Disclaimer+`"}`, encode(t, res))
}

func TestEvaluate_SexAliases(t *testing.T) {
	c := newCalculator(t)
	base := model.Input{Age: 25, Weight: 70, Height: 175, ActivityLevel: "sedentary", Goal: "maintain"}

	for _, sex := range []string{"male", "m"} {
		in := base
		in.Sex = sex
		res, v := c.Evaluate(in)
		require.Nil(t, v)
		assert.Equal(t, model.Decimal(1673.8), res.Results.BMR, sex)
		assert.Equal(t, sex, res.Sex)
	}
	for _, sex := range []string{"female", "f", "", "other"} {
		in := base
		in.Sex = sex
		res, v := c.Evaluate(in)
		require.Nil(t, v)
		assert.Equal(t, model.Decimal(1507.8), res.Results.BMR, sex)
	}
}

func TestEvaluate_LoseNeverNegative(t *testing.T) {
	c := newCalculator(t)

	// bmr = 10 + 62.5 - 500 - 161 = -588.5
	res, v := c.Evaluate(model.Input{Age: 100, Weight: 1, Height: 10, Sex: "female", ActivityLevel: "sedentary", Goal: "lose"})
	require.Nil(t, v)
	assert.Equal(t, model.Decimal(0), res.Results.RecommendedCalories)
	assert.Equal(t, model.Decimal(-706.2), res.Results.TDEEMaintenance)
	assert.Equal(t, "2.0g", res.Results.ProteinGramsPerDay)
}

func TestEvaluate_Violations(t *testing.T) {
	c := newCalculator(t)
	valid := model.Input{Age: 30, Weight: 80, Height: 180, Sex: "male", ActivityLevel: "light", Goal: "bulk"}

	tests := []struct {
		name     string
		mutate   func(in *model.Input)
		wantKind apperror.Kind
		wantBody string
	}{
		{
			name:     "zero age",
			mutate:   func(in *model.Input) { in.Age = 0 },
			wantKind: apperror.KindInvalidMeasurements,
			wantBody: `{"success":false,"message":"Please provide valid age, weight and height. Example: ?age=19&weight=80&height=175"}`,
		},
		{
			name:     "negative weight",
			mutate:   func(in *model.Input) { in.Weight = -1 },
			wantKind: apperror.KindInvalidMeasurements,
		},
		{
			name:     "zero height",
			mutate:   func(in *model.Input) { in.Height = 0 },
			wantKind: apperror.KindInvalidMeasurements,
		},
		{
			name: "measurements win over everything else",
			mutate: func(in *model.Input) {
				in.Age = 5
				in.Height = 0
				in.ActivityLevel = "couch"
				in.Goal = "cut"
			},
			wantKind: apperror.KindInvalidMeasurements,
		},
		{
			name:     "minor",
			mutate:   func(in *model.Input) { in.Age = 12 },
			wantKind: apperror.KindUnderage,
			wantBody: `{"success":false,"age":12,"message":"This calculation is not recommended for minors (under 13)."}`,
		},
		{
			name: "minor wins over enumerations",
			mutate: func(in *model.Input) {
				in.Age = 1
				in.ActivityLevel = "couch"
			},
			wantKind: apperror.KindUnderage,
			wantBody: `{"success":false,"age":1,"message":"This calculation is not recommended for minors (under 13)."}`,
		},
		{
			name:     "unknown activity level",
			mutate:   func(in *model.Input) { in.ActivityLevel = "couch" },
			wantKind: apperror.KindInvalidActivityLevel,
			wantBody: `{"success":false,"message":"activity_level must be one of ['sedentary', 'light', 'moderate', 'active', 'very_active']"}`,
		},
		{
			name: "activity level wins over goal",
			mutate: func(in *model.Input) {
				in.ActivityLevel = ""
				in.Goal = ""
			},
			wantKind: apperror.KindInvalidActivityLevel,
		},
		{
			name:     "unknown goal",
			mutate:   func(in *model.Input) { in.Goal = "cut" },
			wantKind: apperror.KindInvalidGoal,
			wantBody: `{"success":false,"message":"goal must be 'maintain', 'lose', or 'bulk'"}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)

			res, v := c.Evaluate(in)
			assert.Nil(t, res)
			require.NotNil(t, v)
			assert.Equal(t, tc.wantKind, v.Kind)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, encode(t, Failure(v)))
			}
		})
	}
}

func TestRespond_Idempotent(t *testing.T) {
	c := newCalculator(t)
	q := url.Values{
		"age": {"41"}, "weight": {"93.4"}, "height": {"188.5"},
		"sex": {"M"}, "activity_level": {"active"}, "goal": {"lose"},
	}

	first, in, v := c.Respond(q)
	require.Nil(t, v)
	assert.Equal(t, "m", in.Sex)

	want := encode(t, first)
	for i := 0; i < 10; i++ {
		body, _, _ := c.Respond(q)
		assert.Equal(t, want, encode(t, body))
	}
}

func TestRespond_Failure(t *testing.T) {
	c := newCalculator(t)

	body, in, v := c.Respond(url.Values{"age": {"9"}, "weight": {"30"}, "height": {"130"}})
	require.NotNil(t, v)
	assert.Equal(t, 9, in.Age)

	failure, ok := body.(*model.Failure)
	require.True(t, ok)
	assert.False(t, failure.Success)
	require.NotNil(t, failure.Age)
	assert.Equal(t, 9, *failure.Age)
}
