package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/models/response_models"
	"schoolmeal/pkg/utils"
)

func TestComputeTargets_MifflinStJeor(t *testing.T) {
	boy := Profile{Gender: "male", Age: 10, Height: 140, Weight: 35, Activity: 1.55}
	assert.Equal(t, 1180.0, BMR(boy))
	assert.Equal(t, response_models.Macros{Calories: 1829, Protein: 91.5, Fat: 61, Carbs: 228.6}, ComputeTargets(boy))

	girl := boy
	girl.Gender = "female"
	assert.Equal(t, 1014.0, BMR(girl))
	assert.Equal(t, 1572.0, ComputeTargets(girl).Calories)

	assert.Equal(t, ComputeTargets(boy), ComputeTargets(boy))
}

func TestDefaultTargets(t *testing.T) {
	assert.Equal(t, response_models.Macros{Calories: 2000, Protein: 100, Fat: 66.7, Carbs: 250}, DefaultTargets())
}

func TestValidateProfile(t *testing.T) {
	valid := request_models.Demographics{
		Gender:   "Female",
		Age:      ptr(12.0),
		Height:   ptr(150.0),
		Weight:   ptr(40.0),
		Activity: ptr(1.2),
	}

	p, err := ValidateProfile(valid)
	require.NoError(t, err)
	assert.Equal(t, "female", p.Gender)

	edges := valid
	edges.Age, edges.Height, edges.Weight, edges.Activity = ptr(0.0), ptr(250.0), ptr(3.0), ptr(2.0)
	_, err = ValidateProfile(edges)
	assert.NoError(t, err)

	cases := map[string]func(d *request_models.Demographics){
		"age above 18":       func(d *request_models.Demographics) { d.Age = ptr(18.5) },
		"negative age":       func(d *request_models.Demographics) { d.Age = ptr(-1.0) },
		"height below 50":    func(d *request_models.Demographics) { d.Height = ptr(49.9) },
		"weight above 150":   func(d *request_models.Demographics) { d.Weight = ptr(150.1) },
		"activity below 1.2": func(d *request_models.Demographics) { d.Activity = ptr(1.1) },
		"activity NaN":       func(d *request_models.Demographics) { d.Activity = ptr(math.NaN()) },
		"missing weight":     func(d *request_models.Demographics) { d.Weight = nil },
		"bad gender":         func(d *request_models.Demographics) { d.Gender = "x" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := valid
			mutate(&d)
			_, err := ValidateProfile(d)
			var vErr *utils.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestScaleFood(t *testing.T) {
	school := &db_models.FoodItem{Type: db_models.FoodTypeSchool, Calories: 500, Protein: 20, Fat: 15, Carbs: 60}
	normal := &db_models.FoodItem{Type: db_models.FoodTypeNormal, Calories: 200, Protein: 10, Fat: 5, Carbs: 25}

	m, details, err := ScaleFood(school, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, response_models.Macros{Calories: 500, Protein: 20, Fat: 15, Carbs: 60}, m)
	assert.Equal(t, 1, details["portions"])

	// grams are ignored for school portions
	m, _, err = ScaleFood(school, ptr(37.0), nil)
	require.NoError(t, err)
	assert.Equal(t, 500.0, m.Calories)

	m, details, err = ScaleFood(normal, ptr(50.0), nil)
	require.NoError(t, err)
	assert.Equal(t, response_models.Macros{Calories: 100, Protein: 5, Fat: 2.5, Carbs: 12.5}, m)
	assert.Equal(t, 50.0, details["grams"])

	m, _, err = ScaleFood(normal, ptr(200.0), nil)
	require.NoError(t, err)
	assert.Equal(t, 400.0, m.Calories)

	m, _, err = ScaleFood(normal, ptr(MaxGrams), nil)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, m.Calories)

	for _, g := range []float64{-5, 0, 5000.1, math.Inf(1), math.NaN()} {
		_, _, err := ScaleFood(normal, ptr(g), nil)
		assert.ErrorIs(t, err, utils.ErrValidation, "grams=%v", g)
	}
}

func TestValidateAdHoc(t *testing.T) {
	name, m, err := ValidateAdHoc(request_models.AdHocIntake{Name: " Borscht ", Calories: 180.26, Protein: 6, Fat: 7.04, Carbs: 22})
	require.NoError(t, err)
	assert.Equal(t, "Borscht", name)
	assert.Equal(t, response_models.Macros{Calories: 180.3, Protein: 6, Fat: 7, Carbs: 22}, m)

	name, _, err = ValidateAdHoc(request_models.AdHocIntake{})
	require.NoError(t, err)
	assert.Equal(t, "Unnamed dish", name)

	for _, bad := range []request_models.AdHocIntake{
		{Calories: -0.1},
		{Protein: 10000.5},
		{Fat: math.Inf(1)},
		{Carbs: math.NaN()},
	} {
		_, _, err := ValidateAdHoc(bad)
		assert.ErrorIs(t, err, utils.ErrValidation)
	}
}

func TestCycleSlot(t *testing.T) {
	start := mustDay(t, "2025-01-01")

	cases := []struct {
		date      string
		week, day int
	}{
		{"2025-01-01", 1, 3},
		{"2025-01-07", 1, 2},
		{"2025-01-08", 2, 3},
		{"2025-01-12", 2, 7},
		{"2025-01-15", 1, 3},
		{"2024-12-31", 2, 2},
		{"2024-12-25", 2, 3},
		{"2024-12-18", 1, 3},
	}
	for _, tc := range cases {
		week, day := CycleSlot(mustDay(t, tc.date), start)
		assert.Equal(t, tc.week, week, tc.date)
		assert.Equal(t, tc.day, day, tc.date)
	}
}
