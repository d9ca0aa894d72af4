package sighting

import (
	"fmt"
	"math"
)

// Coordinate bounds for valid GPS positions.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Result is the outcome of validating an input. Errors lists every violated
// rule so a caller can present the complete list at once.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks an input against the record schema rules. It never
// fails fast; all violations are collected.
func Validate(in *Input) Result {
	var errs []string

	if in.FilePath == "" {
		errs = append(errs, "filePath is required")
	}

	if in.Datetime != "" {
		if _, ok := ParseDatetime(in.Datetime); !ok {
			errs = append(errs, "datetime must be a valid date")
		}
	}

	if in.Latitude != nil && !inRange(*in.Latitude, MinLatitude, MaxLatitude) {
		errs = append(errs, fmt.Sprintf("latitude must be null or a number between %g and %g", MinLatitude, MaxLatitude))
	}

	if in.Longitude != nil && !inRange(*in.Longitude, MinLongitude, MaxLongitude) {
		errs = append(errs, fmt.Sprintf("longitude must be null or a number between %g and %g", MinLongitude, MaxLongitude))
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// inRange rejects NaN explicitly: NaN fails every comparison, so without the
// check it would slip through the bounds test.
func inRange(v, minVal, maxVal float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= minVal && v <= maxVal
}
