package services

import (
	"fmt"
	"math"
	"strings"

	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/models/response_models"
	"schoolmeal/pkg/utils"
)

const (
	DefaultCalories = 2000.0

	MaxGrams       = 5000.0
	MinPortions    = 1
	MaxPortions    = 20
	MaxAdHocMacro  = 10000.0
	MaxCalorieGoal = 10000.0

	unnamedDish = "Unnamed dish"
)

// Profile is a validated set of demographics.
type Profile struct {
	Gender   string
	Age      float64
	Height   float64
	Weight   float64
	Activity float64
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundMacros(m response_models.Macros) response_models.Macros {
	return response_models.Macros{
		Calories: round1(m.Calories),
		Protein:  round1(m.Protein),
		Fat:      round1(m.Fat),
		Carbs:    round1(m.Carbs),
	}
}

// SplitCalories distributes calories 20/30/50 across protein, fat and carbs.
func SplitCalories(calories float64) response_models.Macros {
	calories = round1(calories)
	return response_models.Macros{
		Calories: calories,
		Protein:  round1(calories * 0.20 / 4),
		Fat:      round1(calories * 0.30 / 9),
		Carbs:    round1(calories * 0.50 / 4),
	}
}

func DefaultTargets() response_models.Macros {
	return SplitCalories(DefaultCalories)
}

// BMR is the Mifflin-St Jeor basal metabolic rate.
func BMR(p Profile) float64 {
	base := 10*p.Weight + 6.25*p.Height - 5*p.Age
	if p.Gender == db_models.GenderFemale {
		return base - 161
	}
	return base + 5
}

func ComputeTargets(p Profile) response_models.Macros {
	return SplitCalories(math.Ceil(BMR(p) * p.Activity))
}

func inRange(field string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return utils.NewValidationError(field, fmt.Sprintf("must be between %g and %g", lo, hi))
	}
	return nil
}

// ValidateProfile checks that every demographic is present and in range.
func ValidateProfile(d request_models.Demographics) (Profile, error) {
	gender := strings.ToLower(strings.TrimSpace(d.Gender))
	if gender != db_models.GenderMale && gender != db_models.GenderFemale {
		return Profile{}, utils.NewValidationError("gender", "must be male or female")
	}

	fields := []struct {
		name   string
		value  *float64
		lo, hi float64
	}{
		{"age", d.Age, 0, 18},
		{"height", d.Height, 50, 250},
		{"weight", d.Weight, 3, 150},
		{"activity", d.Activity, 1.2, 2.0},
	}
	for _, f := range fields {
		if f.value == nil {
			return Profile{}, utils.NewValidationError(f.name, "is required")
		}
		if err := inRange(f.name, *f.value, f.lo, f.hi); err != nil {
			return Profile{}, err
		}
	}

	return Profile{
		Gender:   gender,
		Age:      *d.Age,
		Height:   *d.Height,
		Weight:   *d.Weight,
		Activity: *d.Activity,
	}, nil
}

func hasDemographics(d request_models.Demographics) bool {
	return d.Gender != "" || d.Age != nil || d.Height != nil || d.Weight != nil || d.Activity != nil
}

// ScaleFood resolves the macros one intake of item contributes.
// School items count per portion; normal items are listed per 100 g.
func ScaleFood(item *db_models.FoodItem, grams *float64, portions *int) (response_models.Macros, map[string]interface{}, error) {
	listed := response_models.Macros{
		Calories: item.Calories,
		Protein:  item.Protein,
		Fat:      item.Fat,
		Carbs:    item.Carbs,
	}

	if item.Type == db_models.FoodTypeSchool {
		n := 1
		if portions != nil {
			n = *portions
		}
		if n < MinPortions || n > MaxPortions {
			return response_models.Macros{}, nil, utils.NewValidationError("portions", fmt.Sprintf("must be between %d and %d", MinPortions, MaxPortions))
		}
		f := float64(n)
		return roundMacros(response_models.Macros{
			Calories: listed.Calories * f,
			Protein:  listed.Protein * f,
			Fat:      listed.Fat * f,
			Carbs:    listed.Carbs * f,
		}), map[string]interface{}{"portions": n}, nil
	}

	if grams == nil {
		return response_models.Macros{}, nil, utils.NewValidationError("grams", "is required for this food")
	}
	g := *grams
	if math.IsNaN(g) || math.IsInf(g, 0) || g <= 0 || g > MaxGrams {
		return response_models.Macros{}, nil, utils.NewValidationError("grams", fmt.Sprintf("must be greater than 0 and at most %g", MaxGrams))
	}
	ratio := g / 100
	return roundMacros(response_models.Macros{
		Calories: listed.Calories * ratio,
		Protein:  listed.Protein * ratio,
		Fat:      listed.Fat * ratio,
		Carbs:    listed.Carbs * ratio,
	}), map[string]interface{}{"grams": g}, nil
}

// ValidateAdHoc checks macros entered by hand or taken from a photo estimate.
func ValidateAdHoc(a request_models.AdHocIntake) (string, response_models.Macros, error) {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"calories", a.Calories},
		{"protein", a.Protein},
		{"fat", a.Fat},
		{"carbs", a.Carbs},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 || f.value > MaxAdHocMacro {
			return "", response_models.Macros{}, utils.NewValidationError(f.name, fmt.Sprintf("must be between 0 and %g", MaxAdHocMacro))
		}
	}

	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = unnamedDish
	}

	return name, roundMacros(response_models.Macros{
		Calories: a.Calories,
		Protein:  a.Protein,
		Fat:      a.Fat,
		Carbs:    a.Carbs,
	}), nil
}
