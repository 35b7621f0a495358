package models

import (
	"time"

	"gorm.io/gorm"
)

type ApartmentType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TypeName    string `gorm:"size:100;uniqueIndex" json:"type_name"`
	Description string `gorm:"size:255" json:"description"`
	Status      string `gorm:"size:20;default:active" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
