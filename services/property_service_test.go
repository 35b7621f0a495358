package services

import (
	"testing"

	"rentease-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestPropertyCapacity(t *testing.T) {
	db := setupTestDB(t)
	apartments := NewApartmentService(db)
	properties := NewPropertyService(db)

	seedProperty(t, db, "PROP-PCAP", 3)
	apartmentType := seedApartmentType(t, db)

	capacity, err := properties.Capacity("PROP-PCAP")
	assert.NoError(t, err)
	assert.Equal(t, 3, capacity.TotalCapacity)
	assert.Equal(t, 0, capacity.ActiveApartments)
	assert.Equal(t, 3, capacity.RemainingCapacity)

	_, err = apartments.Create(createInput("PROP-PCAP", apartmentType.ID), superAdmin)
	assert.NoError(t, err)

	capacity, err = properties.Capacity("PROP-PCAP")
	assert.NoError(t, err)
	assert.Equal(t, 1, capacity.ActiveApartments)
	assert.Equal(t, 2, capacity.RemainingCapacity)
}

func TestPropertyCapacityNotFound(t *testing.T) {
	db := setupTestDB(t)
	properties := NewPropertyService(db)

	_, err := properties.Capacity("PROP-NONE")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPropertyListActiveOnly(t *testing.T) {
	db := setupTestDB(t)
	properties := NewPropertyService(db)

	seedProperty(t, db, "PROP-LIVE", 5)
	inactive := seedProperty(t, db, "PROP-DEAD", 5)
	assert.NoError(t, db.Model(&inactive).Update("status", "inactive").Error)

	list, err := properties.List()
	assert.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, "PROP-LIVE", list[0].PropertyCode)
	}
}
