package response_models

type LoginResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}

type StudentResponse struct {
	ID        string   `json:"id"`
	Login     string   `json:"login"`
	Name      string   `json:"name,omitempty"`
	Target    Macros   `json:"target"`
	Gender    string   `json:"gender,omitempty"`
	Age       *float64 `json:"age,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Activity  *float64 `json:"activity,omitempty"`
	ParentID  *string  `json:"parent_id,omitempty"`
	IsTeacher bool     `json:"is_teacher"`
	City      string   `json:"city,omitempty"`
	School    string   `json:"school,omitempty"`
	Grade     string   `json:"grade,omitempty"`
}
