package db_models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type IntakeSource string

const (
	IntakeSourceCatalog  IntakeSource = "catalog"
	IntakeSourceEstimate IntakeSource = "estimate"
	IntakeSourceManual   IntakeSource = "manual"
)

var ErrIntakeImmutable = errors.New("intake events are append-only")

// IntakeEvent is one immutable record of food eaten, with macros already resolved.
type IntakeEvent struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	StudentID uuid.UUID    `gorm:"type:uuid;not null;index:idx_intake_student_eaten,priority:1"`
	FoodID    *uuid.UUID   `gorm:"type:uuid;index"`
	Name      string       `gorm:"size:200;not null"`
	Calories  float64      `gorm:"not null"`
	Protein   float64      `gorm:"not null"`
	Fat       float64      `gorm:"not null"`
	Carbs     float64      `gorm:"not null"`
	Source    IntakeSource `gorm:"size:20;not null"`
	Details   datatypes.JSON
	EatenAt   int64 `gorm:"not null;index:idx_intake_student_eaten,priority:2"`
	CreatedAt int64 `gorm:"autoCreateTime"`
}

func (IntakeEvent) TableName() string {
	return "intake_events"
}

func (e *IntakeEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EatenAt == 0 {
		e.EatenAt = time.Now().Unix()
	}
	return nil
}

func (e *IntakeEvent) BeforeUpdate(tx *gorm.DB) error {
	return ErrIntakeImmutable
}

func (e *IntakeEvent) BeforeDelete(tx *gorm.DB) error {
	return ErrIntakeImmutable
}
