package response_models

import "time"

type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Fat:      m.Fat + o.Fat,
		Carbs:    m.Carbs + o.Carbs,
	}
}

func (m Macros) Sub(o Macros) Macros {
	return Macros{
		Calories: m.Calories - o.Calories,
		Protein:  m.Protein - o.Protein,
		Fat:      m.Fat - o.Fat,
		Carbs:    m.Carbs - o.Carbs,
	}
}

type IntakeEventResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	FoodID    *string   `json:"food_id,omitempty"`
	Name      string    `json:"name"`
	Macros    Macros    `json:"macros"`
	Source    string    `json:"source"`
	EatenAt   time.Time `json:"eaten_at"`
}

type DailySummary struct {
	StudentID string                `json:"student_id"`
	Day       string                `json:"day"`
	Target    Macros                `json:"target"`
	Consumed  Macros                `json:"consumed"`
	Remaining Macros                `json:"remaining"`
	Events    []IntakeEventResponse `json:"events"`
}

type DayBucket struct {
	Day       string                `json:"day"`
	Consumed  Macros                `json:"consumed"`
	Remaining Macros                `json:"remaining"`
	Events    []IntakeEventResponse `json:"events"`
}

type RangeSummary struct {
	StudentID string      `json:"student_id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Target    Macros      `json:"target"`
	Days      []DayBucket `json:"days"`
	Total     Macros      `json:"total"`
}

type RemainingResponse struct {
	StudentID string   `json:"student_id"`
	Day       string   `json:"day"`
	Remaining Macros   `json:"remaining"`
	Eaten     []string `json:"eaten"`
	Cached    bool     `json:"cached"`
}

type ChildOverview struct {
	Student StudentResponse `json:"student"`
	Today   DailySummary    `json:"today"`
}
