// Package apperror maps validation failures of a calculation request to the
// single user-facing violation that is reported for it.
package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"nutrition-calculator/internal/nutrition"
)

// Kind classifies a violation. It doubles as the metric and report outcome.
type Kind string

const (
	KindInvalidMeasurements  Kind = "invalid_measurements"
	KindUnderage             Kind = "underage"
	KindInvalidActivityLevel Kind = "invalid_activity_level"
	KindInvalidGoal          Kind = "invalid_goal"
)

// MinimumAge is the youngest age a calculation is given for.
const MinimumAge = 13

var (
	msgInvalidMeasurements = "Please provide valid age, weight and height. Example: ?age=19&weight=80&height=175"
	msgUnderage            = fmt.Sprintf("This calculation is not recommended for minors (under %d).", MinimumAge)
	msgInvalidActivity     = "activity_level must be one of " + quotedList(nutrition.ActivityLevels())
	msgInvalidGoal         = "goal must be 'maintain', 'lose', or 'bulk'"
)

// Violation is a rejected calculation request.
type Violation struct {
	Kind    Kind
	Message string
	// Age is echoed back for KindUnderage only.
	Age *int
}

func (v *Violation) Error() string {
	return v.Message
}

type rule struct {
	rank int
	kind Kind
	msg  string
}

// Keyed by struct namespace and tag. Lower rank wins when several fail.
var rules = map[string]rule{
	"Input.Age.gt":                      {0, KindInvalidMeasurements, msgInvalidMeasurements},
	"Input.Weight.gt":                   {0, KindInvalidMeasurements, msgInvalidMeasurements},
	"Input.Height.gt":                   {0, KindInvalidMeasurements, msgInvalidMeasurements},
	"Input.Age.gte":                     {1, KindUnderage, msgUnderage},
	"Input.ActivityLevel.activitylevel": {2, KindInvalidActivityLevel, msgInvalidActivity},
	"Input.Goal.goal":                   {3, KindInvalidGoal, msgInvalidGoal},
}

// FromValidation converts the error returned by validator.Struct into the
// highest-priority Violation. It returns nil for a nil error. Errors that are
// not validation errors, or unknown rules, are reported as invalid
// measurements.
func FromValidation(err error) *Violation {
	if err == nil {
		return nil
	}

	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return &Violation{Kind: KindInvalidMeasurements, Message: msgInvalidMeasurements}
	}

	var (
		best  *rule
		value interface{}
	)
	for _, e := range validationErr {
		r, ok := rules[e.StructNamespace()+"."+e.Tag()]
		if !ok {
			r = rule{0, KindInvalidMeasurements, msgInvalidMeasurements}
		}
		if best == nil || r.rank < best.rank {
			best = &r
			value = e.Value()
		}
	}
	if best == nil {
		return &Violation{Kind: KindInvalidMeasurements, Message: msgInvalidMeasurements}
	}

	v := &Violation{Kind: best.kind, Message: best.msg}
	if best.kind == KindUnderage {
		if age, ok := value.(int); ok {
			v.Age = &age
		}
	}
	return v
}

// quotedList renders values the way the API has always listed them:
// ['a', 'b', 'c'].
func quotedList[T ~string](values []T) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + string(v) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
