package request_models

type Demographics struct {
	Gender   string   `json:"gender"`
	Age      *float64 `json:"age"`
	Height   *float64 `json:"height"`
	Weight   *float64 `json:"weight"`
	Activity *float64 `json:"activity"`
}

type AddChildRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Demographics
	City   string `json:"city"`
	School string `json:"school"`
	Grade  string `json:"grade"`
}

// RecalculateTargetsRequest holds either demographics or an explicit calorie override.
type RecalculateTargetsRequest struct {
	Demographics
	Calories *float64 `json:"calories"`
}
