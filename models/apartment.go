package models

import (
	"time"
)

// ApartmentStatus is the two-state lifecycle of an apartment row.
// The wire format carries it as the strings "0"/"1"; coercion happens once at
// the controller boundary via ParseApartmentStatus.
type ApartmentStatus int

const (
	ApartmentInactive ApartmentStatus = 0
	ApartmentActive   ApartmentStatus = 1
)

// ParseApartmentStatus coerces the wire value. Only "0" and "1" are accepted.
func ParseApartmentStatus(s string) (ApartmentStatus, bool) {
	switch s {
	case "0":
		return ApartmentInactive, true
	case "1":
		return ApartmentActive, true
	}
	return ApartmentInactive, false
}

// Occupancy states. New apartments always start vacant.
const (
	OccupancyVacant   = "vacant"
	OccupancyOccupied = "occupied"
)

type Apartment struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	ApartmentCode     string          `gorm:"column:apartment_code;uniqueIndex;size:100" json:"apartment_code"`
	PropertyCode      string          `gorm:"column:property_code;index;size:50" json:"property_code"`
	AgentCode         *string         `gorm:"column:agent_code;size:50" json:"agent_code,omitempty"`
	ApartmentTypeID   uint            `gorm:"column:apartment_type_id" json:"apartment_type_id"`
	ApartmentTypeUnit int             `gorm:"column:apartment_type_unit" json:"apartment_type_unit"`
	ApartmentNumber   int             `gorm:"column:apartment_number" json:"apartment_number"`
	RentAmount        float64         `gorm:"column:rent_amount" json:"rent_amount"`
	SecurityDeposit   float64         `gorm:"column:security_deposit" json:"security_deposit"`
	OccupancyStatus   string          `gorm:"column:occupancy_status;size:20;default:vacant" json:"occupancy_status"`
	Status            ApartmentStatus `gorm:"column:status;default:1" json:"status"`
	CreatedBy         string          `gorm:"column:created_by;size:50" json:"created_by"`
	LastUpdatedBy     string          `gorm:"column:last_updated_by;size:50" json:"last_updated_by"`

	ApartmentType ApartmentType `gorm:"foreignKey:ApartmentTypeID" json:"apartment_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
