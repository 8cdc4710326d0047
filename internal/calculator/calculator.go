// Package calculator turns raw calculation parameters into a response body.
// It is shared by the HTTP handler and the command line.
package calculator

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"nutrition-calculator/internal/apperror"
	"nutrition-calculator/internal/model"
	"nutrition-calculator/internal/nutrition"
)

// Query parameter names.
const (
	ParamAge           = "age"
	ParamWeight        = "weight"
	ParamHeight        = "height"
	ParamSex           = "sex"
	ParamActivityLevel = "activity_level"
	ParamGoal          = "goal"
)

// Defaults for parameters that are absent. A parameter that is present but
// empty is not defaulted.
const (
	DefaultSex           = "male"
	DefaultActivityLevel = "sedentary"
	DefaultGoal          = "maintain"
)

const (
	// Note describes how the targets are derived.
	Note = "Protein is based on goal and weight. Calories are adjusted per goal: ~500 kcal deficit for lose, +500 kcal surplus for bulk."
	// Disclaimer is the general nutrition advice returned with every result.
	Disclaimer = "Protein is only one part of balanced nutrition. Whether your goal is weight loss or gain, maintaining calories with quality protein, carbs, and fats is essential."
)

// ActivityLevelValidator accepts known activity levels.
var ActivityLevelValidator = func(fl validator.FieldLevel) bool {
	return nutrition.ActivityLevel(fl.Field().String()).IsValid()
}

// GoalValidator accepts known goals.
var GoalValidator = func(fl validator.FieldLevel) bool {
	return nutrition.Goal(fl.Field().String()).IsValid()
}

// Calculator validates and evaluates calculation requests. It is safe for
// concurrent use.
type Calculator struct {
	validate *validator.Validate
}

// New creates a Calculator with the enumeration validators registered on v.
func New(v *validator.Validate) (*Calculator, error) {
	if err := v.RegisterValidation("activitylevel", ActivityLevelValidator); err != nil {
		return nil, fmt.Errorf("register activitylevel validation: %w", err)
	}
	if err := v.RegisterValidation("goal", GoalValidator); err != nil {
		return nil, fmt.Errorf("register goal validation: %w", err)
	}
	return &Calculator{validate: v}, nil
}

// Parse reads an Input from query parameters. Unparseable numbers become 0.
func Parse(q url.Values) model.Input {
	return model.Input{
		Age:           parseInt(lookup(q, ParamAge, "0")),
		Weight:        parseFloat(lookup(q, ParamWeight, "0")),
		Height:        parseFloat(lookup(q, ParamHeight, "0")),
		Sex:           strings.ToLower(lookup(q, ParamSex, DefaultSex)),
		ActivityLevel: strings.ToLower(lookup(q, ParamActivityLevel, DefaultActivityLevel)),
		Goal:          strings.ToLower(lookup(q, ParamGoal, DefaultGoal)),
	}
}

// Validate returns the violation for in, or nil when in can be evaluated.
func (c *Calculator) Validate(in model.Input) *apperror.Violation {
	return apperror.FromValidation(c.validate.Struct(in))
}

// Evaluate validates in and builds the result. Exactly one of the return
// values is non-nil.
func (c *Calculator) Evaluate(in model.Input) (*model.Result, *apperror.Violation) {
	if v := c.Validate(in); v != nil {
		return nil, v
	}

	level := nutrition.ActivityLevel(in.ActivityLevel)
	goal := nutrition.Goal(in.Goal)
	est := nutrition.Calculate(in.Age, nutrition.ParseSex(in.Sex), in.Weight, in.Height, level, goal)

	return &model.Result{
		Success:       true,
		Age:           in.Age,
		WeightKG:      model.Decimal(in.Weight),
		HeightCM:      model.Decimal(in.Height),
		Sex:           in.Sex,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
		Results: model.Results{
			BMR:                 model.Decimal(est.BMR),
			TDEEMaintenance:     model.Decimal(est.TDEE),
			RecommendedCalories: model.Decimal(est.Calories),
			ProteinGramsPerDay:  nutrition.FormatGrams(est.ProteinGrams),
		},
		Note:    Note,
		Message: Disclaimer,
	}, nil
}

// Respond evaluates q and returns the response body, a *model.Result or a
// *model.Failure, along with the violation if there was one.
func (c *Calculator) Respond(q url.Values) (interface{}, model.Input, *apperror.Violation) {
	in := Parse(q)
	res, v := c.Evaluate(in)
	if v != nil {
		return Failure(v), in, v
	}
	return res, in, nil
}

// Failure builds the response body for a violation.
func Failure(v *apperror.Violation) *model.Failure {
	return &model.Failure{Success: false, Age: v.Age, Message: v.Message}
}

func lookup(q url.Values, key, fallback string) string {
	if !q.Has(key) {
		return fallback
	}
	return q.Get(key)
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
