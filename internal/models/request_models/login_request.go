package request_models

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest covers self-registration. Students are added by their parent instead.
type RegisterRequest struct {
	Role     string `json:"role" binding:"required,oneof=parent cook teacher"`
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	City     string `json:"city"`
	School   string `json:"school"`
	Grade    string `json:"grade"`
}

type CreateAdminRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}
