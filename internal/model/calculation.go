// Package model holds the request and response shapes of the calculator API.
package model

import (
	"time"

	"nutrition-calculator/internal/nutrition"
)

// Input is a parsed calculation request. Numeric fields that failed to parse
// are 0; string fields are lower-cased.
type Input struct {
	Age           int     `json:"age" validate:"gt=0,gte=13"`
	Weight        float64 `json:"weight" validate:"gt=0"`
	Height        float64 `json:"height" validate:"gt=0"`
	Sex           string  `json:"sex"`
	ActivityLevel string  `json:"activity_level" validate:"activitylevel"`
	Goal          string  `json:"goal" validate:"goal"`
}

// Decimal is a real number that always encodes with a fractional part.
type Decimal float64

// MarshalJSON implements json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(nutrition.FormatDecimal(float64(d))), nil
}

// Results is the computed block of a successful calculation.
type Results struct {
	BMR                 Decimal `json:"bmr" yaml:"bmr"`
	TDEEMaintenance     Decimal `json:"tdee_maintenance" yaml:"tdee_maintenance"`
	RecommendedCalories Decimal `json:"recommended_calories_for_goal" yaml:"recommended_calories_for_goal"`
	ProteinGramsPerDay  string  `json:"protein_grams_per_day" yaml:"protein_grams_per_day"`
}

// Result is the response body of a successful calculation.
type Result struct {
	Success       bool    `json:"success" yaml:"success"`
	Age           int     `json:"age" yaml:"age"`
	WeightKG      Decimal `json:"weight_kg" yaml:"weight_kg"`
	HeightCM      Decimal `json:"height_cm" yaml:"height_cm"`
	Sex           string  `json:"sex" yaml:"sex"`
	ActivityLevel string  `json:"activity_level" yaml:"activity_level"`
	Goal          string  `json:"goal" yaml:"goal"`
	Results       Results `json:"results" yaml:"results"`
	Note          string  `json:"note" yaml:"note"`
	Message       string  `json:"message" yaml:"message"`
}

// Failure is the response body of a rejected calculation. Age is only set
// for the minimum age rule.
type Failure struct {
	Success bool   `json:"success" yaml:"success"`
	Age     *int   `json:"age,omitempty" yaml:"age,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// CalculationEvent is the anonymous usage record shipped by the reporter.
// It never carries biometric values.
type CalculationEvent struct {
	RequestID     string    `json:"request_id"`
	Timestamp     time.Time `json:"timestamp"`
	Outcome       string    `json:"outcome"`
	ActivityLevel string    `json:"activity_level"`
	Goal          string    `json:"goal"`
}
