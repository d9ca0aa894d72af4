// Package query implements the pure filtering, grouping and statistics
// functions every view derives its data from. Nothing in this package
// performs I/O; all functions are deterministic over their input slice.
package query

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/perchlog/perchlog/internal/sighting"
)

// Filters holds the field-level filter state. Zero values mean inactive.
type Filters struct {
	Species        string
	DateFrom       string
	DateTo         string
	Location       string
	HasCoordinates bool
	HasNotes       bool
}

// active reports whether any filter is set.
func (f Filters) active() bool {
	return f.Species != "" || f.DateFrom != "" || f.DateTo != "" ||
		f.Location != "" || f.HasCoordinates || f.HasNotes
}

// Matches reports whether a sighting matches a free-text term: a
// case-insensitive substring test against species, notes or file path,
// OR-combined.
func Matches(s *sighting.Sighting, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Species), needle) ||
		strings.Contains(strings.ToLower(s.Notes), needle) ||
		strings.Contains(strings.ToLower(s.FilePath), needle)
}

// Apply filters a collection by a free-text term and the field filters. All
// active predicates combine with logical AND. A blank term is inactive,
// matching the store-level blank-search contract.
func Apply(sightings []sighting.Sighting, term string, filters Filters) []sighting.Sighting {
	term = strings.TrimSpace(term)
	if term == "" && !filters.active() {
		return sightings
	}

	matched := make([]sighting.Sighting, 0, len(sightings))
	for i := range sightings {
		s := &sightings[i]
		if !Matches(s, term) {
			continue
		}
		if !matchesSpecies(s, filters.Species) {
			continue
		}
		if !matchesDateRange(s, filters.DateFrom, filters.DateTo) {
			continue
		}
		if !matchesLocation(s, filters.Location) {
			continue
		}
		if filters.HasCoordinates && (s.Latitude == nil || s.Longitude == nil) {
			continue
		}
		if filters.HasNotes && strings.TrimSpace(s.Notes) == "" {
			continue
		}
		matched = append(matched, *s)
	}
	return matched
}

func matchesSpecies(s *sighting.Sighting, species string) bool {
	if species == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Species), strings.ToLower(species))
}

// matchesDateRange checks an inclusive range. DateTo is extended to the end
// of its local day so a same-day sighting at any hour still matches.
// Records without a parseable datetime fail any active date filter.
func matchesDateRange(s *sighting.Sighting, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	t, ok := sighting.ParseDatetime(s.Datetime)
	if !ok {
		return false
	}
	if from != "" {
		if start, ok := sighting.ParseDatetime(from); ok && t.Before(start) {
			return false
		}
	}
	if to != "" {
		if end, ok := sighting.ParseDatetime(to); ok {
			endOfDay := time.Date(end.Year(), end.Month(), end.Day(),
				23, 59, 59, int(999*time.Millisecond), end.Location())
			if t.After(endOfDay) {
				return false
			}
		}
	}
	return true
}

// matchesLocation checks the location filter against notes or the
// stringified coordinates.
func matchesLocation(s *sighting.Sighting, location string) bool {
	if location == "" {
		return true
	}
	if s.Notes != "" && strings.Contains(strings.ToLower(s.Notes), strings.ToLower(location)) {
		return true
	}
	if s.Latitude != nil && strings.Contains(formatCoordinate(*s.Latitude), location) {
		return true
	}
	if s.Longitude != nil && strings.Contains(formatCoordinate(*s.Longitude), location) {
		return true
	}
	return false
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// UniqueSpecies returns the sorted distinct non-blank species names, used
// for filter dropdowns and autocomplete suggestions.
func UniqueSpecies(sightings []sighting.Sighting) []string {
	seen := make(map[string]struct{})
	var species []string
	for i := range sightings {
		name := strings.TrimSpace(sightings[i].Species)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		species = append(species, name)
	}
	sort.Strings(species)
	return species
}
