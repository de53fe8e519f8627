package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidClockTime(t *testing.T) {
	assert.True(t, IsValidClockTime("08:00"))
	assert.True(t, IsValidClockTime("23:59"))
	assert.True(t, IsValidClockTime("00:00"))
	assert.False(t, IsValidClockTime("24:00"))
	assert.False(t, IsValidClockTime("8:00"))
	assert.False(t, IsValidClockTime("08:60"))
	assert.False(t, IsValidClockTime("0800"))
	assert.False(t, IsValidClockTime(""))
}

func TestNormalizeClockTime(t *testing.T) {
	assert.Equal(t, "08:00", NormalizeClockTime("8:0"))
	assert.Equal(t, "08:05", NormalizeClockTime("8:5"))
	assert.Equal(t, "12:30", NormalizeClockTime("12:30"))
	// Non clock-like input passes through untouched.
	assert.Equal(t, "abc", NormalizeClockTime("abc"))
	assert.Equal(t, "a:b", NormalizeClockTime("a:b"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-06-10")
	assert.True(t, ok)

	_, ok = IsValidDate("10/06/2024")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "user_id", Message: "user_id is required"},
	}

	m := errs.ToMap()
	assert.Equal(t, "date is required", m["date"])
	assert.Equal(t, "user_id is required", m["user_id"])
	assert.Contains(t, errs.Error(), "date: date is required")
}
