package sighting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestValidateMinimalInput(t *testing.T) {
	result := Validate(&Input{FilePath: "/photos/cardinal.jpg"})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateRequiresFilePath(t *testing.T) {
	result := Validate(&Input{Species: "Northern Cardinal"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "filePath is required")
}

func TestValidateCoordinateBounds(t *testing.T) {
	tests := []struct {
		name  string
		lat   *float64
		lon   *float64
		valid bool
	}{
		{"nil coordinates", nil, nil, true},
		{"zero zero", ptr(0), ptr(0), true},
		{"latitude at north pole", ptr(90), ptr(0), true},
		{"latitude at south pole", ptr(-90), ptr(0), true},
		{"longitude at antimeridian", ptr(0), ptr(180), true},
		{"longitude at negative antimeridian", ptr(0), ptr(-180), true},
		{"latitude just above bound", ptr(90.0001), ptr(0), false},
		{"latitude just below bound", ptr(-90.0001), ptr(0), false},
		{"longitude just above bound", ptr(0), ptr(180.0001), false},
		{"longitude just below bound", ptr(0), ptr(-180.0001), false},
		{"NaN latitude", ptr(math.NaN()), ptr(0), false},
		{"NaN longitude", ptr(0), ptr(math.NaN()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(&Input{
				FilePath:  "/photos/test.jpg",
				Latitude:  tt.lat,
				Longitude: tt.lon,
			})
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}

func TestValidateDatetime(t *testing.T) {
	for _, value := range []string{
		"2024-05-12T06:30:00Z",
		"2024-05-12T06:30:00",
		"2024-05-12T06:30",
		"2024-05-12 06:30:00",
		"2024-05-12",
		"", // empty datetime is allowed
	} {
		result := Validate(&Input{FilePath: "/photos/test.jpg", Datetime: value})
		assert.True(t, result.Valid, "datetime %q should validate", value)
	}

	result := Validate(&Input{FilePath: "/photos/test.jpg", Datetime: "not a date"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "datetime must be a valid date")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	result := Validate(&Input{
		Datetime:  "yesterday-ish",
		Latitude:  ptr(120),
		Longitude: ptr(-200),
	})
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 4, "every violated rule should be reported")
}

func TestParseDatetime(t *testing.T) {
	parsed, ok := ParseDatetime("2024-05-12T06:30")
	require.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, 6, parsed.Hour())

	_, ok = ParseDatetime("")
	assert.False(t, ok)

	_, ok = ParseDatetime("12/05/2024")
	assert.False(t, ok)
}
