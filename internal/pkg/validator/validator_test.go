package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("1001"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("1001"))
	assert.True(t, IsNumeric("0"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("10a1"))
	assert.False(t, IsNumeric("-5"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-01-03")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("03-01-2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidClock(t *testing.T) {
	assert.True(t, IsValidClock("00:00"))
	assert.True(t, IsValidClock("09:30"))
	assert.True(t, IsValidClock("23:59"))
	assert.False(t, IsValidClock("24:00"))
	assert.False(t, IsValidClock("12:60"))
	assert.False(t, IsValidClock("9:30"))
	assert.False(t, IsValidClock("12:30:00"))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "code", Message: "code is required"},
		{Field: "date", Message: "date must be YYYY-MM-DD"},
	}

	assert.Equal(t, "code: code is required; date: date must be YYYY-MM-DD", errs.Error())
	assert.Equal(t, map[string]string{
		"code": "code is required",
		"date": "date must be YYYY-MM-DD",
	}, errs.ToMap())
}

func TestIsInSlice(t *testing.T) {
	shifts := []string{"administrative", "day_station", "night_station"}
	assert.True(t, IsInSlice("day_station", shifts))
	assert.False(t, IsInSlice("24/24", shifts))
}
