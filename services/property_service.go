package services

import (
	"errors"
	"fmt"
	"strings"

	"rentease-backend/models"
	"rentease-backend/utils"

	"gorm.io/gorm"
)

// PropertyService is read-only: properties are managed by a separate admin
// flow, this service only answers the questions the apartment workflow asks.
type PropertyService struct {
	DB *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

type PropertyCapacity struct {
	PropertyCode      string `json:"property_code"`
	TotalCapacity     int    `json:"total_capacity"`
	ActiveApartments  int    `json:"active_apartments"`
	RemainingCapacity int    `json:"remaining_capacity"`
}

// List returns active properties with their type preloaded, for the admin
// form's property dropdown.
func (s *PropertyService) List() ([]models.Property, error) {
	var properties []models.Property
	if err := s.DB.Preload("PropertyType").
		Where("status = ?", "active").
		Order("property_code ASC").
		Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}
	return properties, nil
}

// Capacity summarizes how many apartment slots a property has left. This is a
// plain read — the authoritative check happens under lock inside
// ApartmentService.Create.
func (s *PropertyService) Capacity(propertyCode string) (*PropertyCapacity, error) {
	code := strings.TrimSpace(propertyCode)

	var property models.Property
	if err := s.DB.Where("property_code = ? AND status = ?", code, "active").
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: property not found or inactive", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}

	total := property.PropertyTypeUnit
	if total < 0 {
		total = 0
	}

	var active int64
	if err := s.DB.Model(&models.Apartment{}).
		Where("property_code = ? AND status = ?", property.PropertyCode, models.ApartmentActive).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}

	remaining := total - int(active)
	if remaining < 0 {
		remaining = 0
	}
	return &PropertyCapacity{
		PropertyCode:      property.PropertyCode,
		TotalCapacity:     total,
		ActiveApartments:  int(active),
		RemainingCapacity: remaining,
	}, nil
}
