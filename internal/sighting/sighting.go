// Package sighting defines the photo sighting record, its validation rules
// and the coordinate normalizer applied to user input before storage.
package sighting

import "time"

// Sighting represents a single bird observation tied to a photo.
type Sighting struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FilePath  string    `gorm:"not null" json:"filePath"`
	Species   string    `gorm:"index:idx_sightings_species" json:"species"`
	Datetime  string    `gorm:"index:idx_sightings_datetime" json:"datetime"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName ensures GORM uses the expected table name.
func (Sighting) TableName() string {
	return "sightings"
}

// Input carries the editable fields of a sighting. The zero value is a valid
// empty record apart from FilePath, which validation requires to be set.
type Input struct {
	FilePath  string   `json:"filePath"`
	Species   string   `json:"species"`
	Datetime  string   `json:"datetime"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     string   `json:"notes"`
}

// Record builds a Sighting from an input, leaving the backend-assigned
// fields (ID, CreatedAt, UpdatedAt) to the storage layer.
func (in *Input) Record() Sighting {
	return Sighting{
		FilePath:  in.FilePath,
		Species:   in.Species,
		Datetime:  in.Datetime,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Notes:     in.Notes,
	}
}

// Datetime layouts accepted for user-entered observation times, checked in
// order. Observation time is independent of any file-system timestamp.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDatetime parses a sighting datetime string. The second return value
// reports whether the string was non-empty and parseable.
func ParseDatetime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
