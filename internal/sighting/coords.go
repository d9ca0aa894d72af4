package sighting

import (
	"strconv"
	"strings"

	"github.com/perchlog/perchlog/internal/errors"
)

// ParseCoordinate converts a user-entered coordinate string to a number.
// Empty or blank input maps to nil. Range checking is left to Validate,
// which must run after normalization.
func ParseCoordinate(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.Newf("invalid coordinate %q: %w", s, err).
			Component("sighting").
			Category(errors.CategoryValidation).
			Build()
	}
	return &v, nil
}

// NormalizeCoordinates converts a latitude/longitude string pair to numeric
// form, mapping blank inputs to nil.
func NormalizeCoordinates(lat, lon string) (latitude, longitude *float64, err error) {
	latitude, err = ParseCoordinate(lat)
	if err != nil {
		return nil, nil, err
	}
	longitude, err = ParseCoordinate(lon)
	if err != nil {
		return nil, nil, err
	}
	return latitude, longitude, nil
}
