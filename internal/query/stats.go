package query

import (
	"github.com/perchlog/perchlog/internal/sighting"
)

// Stats contains the derived statistics shown on the journal and heatmap
// views.
type Stats struct {
	Total         int    // total number of sightings
	UniqueSpecies int    // distinct non-empty species count
	ActiveDays    int    // distinct days with at least one sighting
	BestDay       string // day with the maximum sighting count
	BestDayCount  int    // sighting count on the best day
}

// Summarize computes the derived statistics for a collection.
func Summarize(sightings []sighting.Sighting) Stats {
	counts := DailyCounts(sightings)

	stats := Stats{
		Total:         len(sightings),
		UniqueSpecies: len(UniqueSpecies(sightings)),
		ActiveDays:    len(counts),
	}
	for day, count := range counts {
		if count > stats.BestDayCount || (count == stats.BestDayCount && day > stats.BestDay) {
			stats.BestDay = day
			stats.BestDayCount = count
		}
	}
	return stats
}

// Intensity is the ordinal activity level used to color a calendar heatmap
// cell.
type Intensity string

const (
	IntensityEmpty   Intensity = "empty"
	IntensityLow     Intensity = "low"
	IntensityMedium  Intensity = "medium"
	IntensityHigh    Intensity = "high"
	IntensityHighest Intensity = "highest"
)

// IntensityFor maps a per-day sighting count to its intensity band. The
// banding is a fixed step function.
func IntensityFor(count int) Intensity {
	switch {
	case count == 0:
		return IntensityEmpty
	case count == 1:
		return IntensityLow
	case count <= 3:
		return IntensityMedium
	case count <= 6:
		return IntensityHigh
	default:
		return IntensityHighest
	}
}
