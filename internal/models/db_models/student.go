package db_models

import "github.com/google/uuid"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Student is the subject whose intake is tracked. Teachers are students with IsTeacher set.
type Student struct {
	BaseModel
	Login        string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"size:120"`

	// Daily targets
	Calories float64 `gorm:"not null"`
	Protein  float64 `gorm:"not null"`
	Fat      float64 `gorm:"not null"`
	Carbs    float64 `gorm:"not null"`

	// Demographics used only to recompute targets
	Gender   string `gorm:"size:10"`
	Age      *float64
	Height   *float64
	Weight   *float64
	Activity *float64

	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	IsTeacher bool
	City      string `gorm:"size:100"`
	School    string `gorm:"size:200"`
	Grade     string `gorm:"size:20"`
}
