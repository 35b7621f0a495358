package models

import (
	"time"

	"gorm.io/gorm"
)

type PropertyType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TypeName    string `gorm:"size:100;uniqueIndex" json:"type_name"`
	Description string `gorm:"size:255" json:"description"`
	// Default number of apartment units for properties of this type.
	UnitCount int `gorm:"column:unit_count" json:"unit_count"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
