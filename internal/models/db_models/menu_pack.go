package db_models

import (
	"fmt"

	"github.com/google/uuid"
)

var weekdayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// MenuPack groups the school menu for one (week, day) slot of the two-week rotation.
type MenuPack struct {
	BaseModel
	Week      int             `gorm:"not null;uniqueIndex:idx_menu_pack_slot"`
	Day       int             `gorm:"not null;uniqueIndex:idx_menu_pack_slot"`
	CreatedBy *uuid.UUID      `gorm:"type:uuid"`
	Entries   []MenuPackEntry `gorm:"foreignKey:PackID"`
}

func (p MenuPack) Name() string {
	day, ok := weekdayNames[p.Day]
	if !ok {
		day = fmt.Sprintf("Day %d", p.Day)
	}
	return fmt.Sprintf("Week %d, %s", p.Week, day)
}

type MenuPackEntry struct {
	BaseModel
	PackID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FoodID   uuid.UUID `gorm:"type:uuid;not null"`
	Ord      int       `gorm:"not null"`
	IsActive bool      `gorm:"not null"`
	Food     FoodItem  `gorm:"foreignKey:FoodID"`
}
