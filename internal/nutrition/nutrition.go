// Package nutrition implements the energy and protein estimates behind the
// calculator: Mifflin-St Jeor BMR, activity-scaled TDEE, goal-adjusted
// calorie targets and protein targets.
package nutrition

import "math"

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex maps a lower-cased sex value onto the formula branch. Only
// "male" and "m" select the male branch; everything else is female.
func ParseSex(s string) Sex {
	switch s {
	case "male", "m":
		return Male
	default:
		return Female
	}
}

// ActivityLevel is one of the fixed TDEE activity bands.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

var activityLevels = []ActivityLevel{Sedentary, Light, Moderate, Active, VeryActive}

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

// ActivityLevels returns the valid activity levels, least active first.
func ActivityLevels() []ActivityLevel {
	out := make([]ActivityLevel, len(activityLevels))
	copy(out, activityLevels)
	return out
}

// IsValid reports whether a is a known activity level.
func (a ActivityLevel) IsValid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Multiplier returns the TDEE multiplier for a, or 0 for an unknown level.
func (a ActivityLevel) Multiplier() float64 {
	return activityMultipliers[a]
}

func (a ActivityLevel) String() string {
	return string(a)
}

// Goal is the user's body-weight goal.
type Goal string

const (
	Maintain Goal = "maintain"
	Lose     Goal = "lose"
	Bulk     Goal = "bulk"
)

var goals = []Goal{Maintain, Lose, Bulk}

var proteinMultipliers = map[Goal]float64{
	Maintain: 1.5,
	Lose:     2.0,
	Bulk:     1.5,
}

// CalorieAdjustment is the daily deficit or surplus, in kcal, applied for
// the lose and bulk goals.
const CalorieAdjustment = 500.0

// Goals returns the valid goals.
func Goals() []Goal {
	out := make([]Goal, len(goals))
	copy(out, goals)
	return out
}

// IsValid reports whether g is a known goal.
func (g Goal) IsValid() bool {
	_, ok := proteinMultipliers[g]
	return ok
}

// ProteinMultiplier returns grams of protein per kilogram of body weight.
func (g Goal) ProteinMultiplier() float64 {
	return proteinMultipliers[g]
}

func (g Goal) String() string {
	return string(g)
}

// BMR estimates basal metabolic rate in kcal/day with the Mifflin-St Jeor
// equation.
func BMR(age int, sex Sex, weightKG, heightCM float64) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if sex == Male {
		return base + 5
	}
	return base - 161
}

// TDEE scales bmr by the activity multiplier.
func TDEE(bmr float64, level ActivityLevel) float64 {
	return bmr * level.Multiplier()
}

// TargetCalories adjusts tdee for goal. Only the lose goal is clamped at 0.
func TargetCalories(tdee float64, goal Goal) float64 {
	switch goal {
	case Lose:
		return math.Max(0, tdee-CalorieAdjustment)
	case Bulk:
		return tdee + CalorieAdjustment
	default:
		return tdee
	}
}

// ProteinGrams returns the daily protein target, rounded to 2 decimals.
func ProteinGrams(weightKG float64, goal Goal) float64 {
	return Round(weightKG*goal.ProteinMultiplier(), 2)
}

// Estimate holds every derived value for one set of inputs. BMR, TDEE and
// Calories are rounded to 1 decimal.
type Estimate struct {
	BMR          float64
	TDEE         float64
	Calories     float64
	ProteinGrams float64
}

// Calculate derives the full estimate. Inputs are assumed valid.
func Calculate(age int, sex Sex, weightKG, heightCM float64, level ActivityLevel, goal Goal) Estimate {
	bmr := BMR(age, sex, weightKG, heightCM)
	tdee := TDEE(bmr, level)
	return Estimate{
		BMR:          Round(bmr, 1),
		TDEE:         Round(tdee, 1),
		Calories:     Round(TargetCalories(tdee, goal), 1),
		ProteinGrams: ProteinGrams(weightKG, goal),
	}
}
