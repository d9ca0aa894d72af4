// Package seed provides deterministic fixture sightings so a fresh fallback
// store does not greet the user with an empty journal. Seeding only happens
// through an explicit call, never as a side effect of a read.
package seed

import (
	"time"

	"github.com/perchlog/perchlog/internal/datastore"
	"github.com/perchlog/perchlog/internal/sighting"
)

// fixture describes one sample sighting at a fixed day offset from the
// reference time.
type fixture struct {
	filePath  string
	species   string
	daysAgo   int
	latitude  float64
	longitude float64
	notes     string
}

var fixtures = []fixture{
	{"robin-photo-1.jpg", "American Robin", 0, 40.7128, -74.0060,
		"Beautiful robin spotted in Central Park this morning. Very active and vocal."},
	{"cardinal-photo.jpg", "Northern Cardinal", 0, 40.7589, -73.9851,
		"Bright red male cardinal at the bird feeder."},
	{"bluejay-photo.jpg", "Blue Jay", 1, 40.7505, -73.9934,
		"Loud and intelligent Blue Jay caching acorns for winter."},
	{"sparrow-photo.jpg", "House Sparrow", 1, 40.7282, -74.0776,
		"Small flock of sparrows feeding on scattered seeds."},
	{"hawk-photo.jpg", "Red-tailed Hawk", 2, 40.7831, -73.9712,
		"Magnificent Red-tailed Hawk perched on a tall oak tree, scanning for prey."},
	{"finch-photo.jpg", "American Goldfinch", 3, 40.7411, -74.0106,
		"Bright yellow goldfinch feeding on thistle seeds."},
	{"woodpecker-photo.jpg", "Downy Woodpecker", 3, 40.7614, -73.9776,
		"Small woodpecker drumming on dead tree branch."},
	{"crow-photo.jpg", "American Crow", 7, 40.7320, -74.0052,
		"Intelligent crow observed using tools to extract insects."},
}

// Fixtures builds the sample sightings with datetimes anchored to the given
// reference time, so the generated set is deterministic for a fixed ref.
func Fixtures(ref time.Time) []sighting.Input {
	inputs := make([]sighting.Input, 0, len(fixtures))
	for _, f := range fixtures {
		lat, lon := f.latitude, f.longitude
		inputs = append(inputs, sighting.Input{
			FilePath:  f.filePath,
			Species:   f.species,
			Datetime:  ref.AddDate(0, 0, -f.daysAgo).Format(time.RFC3339),
			Latitude:  &lat,
			Longitude: &lon,
			Notes:     f.notes,
		})
	}
	return inputs
}

// Ensure seeds the store with the fixtures when it is empty. It returns the
// number of records inserted, which is 0 when the store already has data.
func Ensure(store datastore.Interface, ref time.Time) (int, error) {
	existing, err := store.GetAll()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	inserted := 0
	for _, input := range Fixtures(ref) {
		if _, err := store.Insert(&input); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
