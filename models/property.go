package models

import (
	"time"

	"gorm.io/gorm"
)

// Property is read-only inside this service: apartments are created under it,
// but properties themselves are managed elsewhere. PropertyTypeUnit is the
// capacity ceiling — the maximum number of active apartments the property may host.
type Property struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	PropertyCode     string `gorm:"column:property_code;uniqueIndex;size:50" json:"property_code"`
	PropertyName     string `gorm:"size:255" json:"property_name"`
	PropertyTypeID   *uint  `gorm:"column:property_type_id" json:"property_type_id,omitempty"`
	PropertyTypeUnit int    `gorm:"column:property_type_unit" json:"property_type_unit"`
	Address          string `gorm:"type:text" json:"address"`
	Status           string `gorm:"size:20;default:active" json:"status"`

	PropertyType PropertyType `gorm:"foreignKey:PropertyTypeID" json:"property_type,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
