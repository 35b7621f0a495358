package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 3, 14, hour, min, sec, 0, time.UTC)
}

func TestGenerateApartmentCode(t *testing.T) {
	code := GenerateApartmentCode("P1", 5, "2", at(14, 5, 9))
	assert.Equal(t, "P1-APT005-2-140509", code)
}

func TestGenerateApartmentCodeNormalizesNumber(t *testing.T) {
	code := GenerateApartmentCode("PROP-0001", 12, "a-1b!", at(9, 0, 1))
	assert.Equal(t, "PROP-0001-APT012-A1B-090001", code)
}

func TestGenerateApartmentCodeOmitsEmptyNumber(t *testing.T) {
	// Nothing survives normalization -> the segment is dropped entirely.
	assert.Equal(t, "P1-APT010-235959", GenerateApartmentCode("P1", 10, "", at(23, 59, 59)))
	assert.Equal(t, "P1-APT010-235959", GenerateApartmentCode("P1", 10, "--!", at(23, 59, 59)))
}

func TestGenerateApartmentCodePadsUnitNumber(t *testing.T) {
	assert.Equal(t, "P1-APT001-7-000000", GenerateApartmentCode("P1", 1, "7", at(0, 0, 0)))
	assert.Equal(t, "P1-APT999-7-000000", GenerateApartmentCode("P1", 999, "7", at(0, 0, 0)))
}

func TestPropertyCodePattern(t *testing.T) {
	assert.True(t, PropertyCodePattern.MatchString("PROP-0001"))
	assert.True(t, PropertyCodePattern.MatchString("abc_123"))
	assert.False(t, PropertyCodePattern.MatchString(""))
	assert.False(t, PropertyCodePattern.MatchString("abc"))          // too short
	assert.False(t, PropertyCodePattern.MatchString("has space"))   // illegal char
	assert.False(t, PropertyCodePattern.MatchString("p#roperty01")) // illegal char
}
