package db_models

import "github.com/google/uuid"

type Parent struct {
	BaseModel
	Login        string    `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string    `gorm:"size:120"`
	Children     []Student `gorm:"foreignKey:ParentID"`
}

type Cook struct {
	BaseModel
	Login        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	City         string `gorm:"size:100"`
	School       string `gorm:"size:200"`
}

// Admin accounts are created by the master admin, which is seeded from config.
type Admin struct {
	BaseModel
	Login        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsMaster     bool
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
}
