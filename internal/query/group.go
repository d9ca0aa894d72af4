package query

import (
	"sort"

	"github.com/perchlog/perchlog/internal/sighting"
)

// NoDateKey is the bucket for sightings whose datetime is missing or does
// not parse.
const NoDateKey = "no-date"

// dayKeyLayout formats a local calendar day.
const dayKeyLayout = "2006-01-02"

// DayGroup is the bucket of sightings sharing a local calendar day.
type DayGroup struct {
	Day       string
	Sightings []sighting.Sighting
}

// DayKey derives the local calendar day of a sighting, or NoDateKey when the
// datetime is missing or unparseable.
func DayKey(s *sighting.Sighting) string {
	t, ok := sighting.ParseDatetime(s.Datetime)
	if !ok {
		return NoDateKey
	}
	return t.Format(dayKeyLayout)
}

// GroupByDay buckets sightings by local calendar day. Within a day the order
// follows the pre-group sort (datetime descending); groups are ordered by
// day descending with the no-date bucket always last.
func GroupByDay(sightings []sighting.Sighting) []DayGroup {
	sorted := make([]sighting.Sighting, len(sightings))
	copy(sorted, sightings)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := sighting.ParseDatetime(sorted[i].Datetime)
		tj, _ := sighting.ParseDatetime(sorted[j].Datetime)
		return ti.After(tj)
	})

	buckets := make(map[string][]sighting.Sighting)
	var order []string
	for i := range sorted {
		key := DayKey(&sorted[i])
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], sorted[i])
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i] == NoDateKey {
			return false
		}
		if order[j] == NoDateKey {
			return true
		}
		return order[i] > order[j]
	})

	groups := make([]DayGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, DayGroup{Day: key, Sightings: buckets[key]})
	}
	return groups
}

// DailyCounts counts sightings per local calendar day. Undated records are
// not counted; the calendar heatmap has no cell for them.
func DailyCounts(sightings []sighting.Sighting) map[string]int {
	counts := make(map[string]int)
	for i := range sightings {
		key := DayKey(&sightings[i])
		if key == NoDateKey {
			continue
		}
		counts[key]++
	}
	return counts
}
