package db_models

import "github.com/google/uuid"

type FoodType string

const (
	// FoodTypeSchool is a fixed school portion; its macros are counted as listed.
	FoodTypeSchool FoodType = "school"
	// FoodTypeNormal lists macros per 100 g and is scaled by grams eaten.
	FoodTypeNormal FoodType = "normal"
)

type FoodItem struct {
	BaseModel
	Name     string   `gorm:"size:120;not null"`
	Calories float64  `gorm:"not null"`
	Protein  float64  `gorm:"not null"`
	Fat      float64  `gorm:"not null"`
	Carbs    float64  `gorm:"not null"`
	Type     FoodType `gorm:"size:20;not null;index"`
	Barcode  *string  `gorm:"size:64;uniqueIndex"`
	Image    string   `gorm:"size:250"`

	// Slot in the two-week school menu rotation
	Week *int
	Day  *int

	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}
