// Package suggest provides species name suggestions for autocomplete. The
// suggestion list is a UI convenience only; storage never enforces it.
package suggest

import (
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/perchlog/perchlog/internal/datastore"
	"github.com/perchlog/perchlog/internal/query"
)

// builtinSpecies are offered even before any sightings exist.
var builtinSpecies = []string{
	"American Crow",
	"American Goldfinch",
	"American Robin",
	"Barn Swallow",
	"Black-capped Chickadee",
	"Blue Jay",
	"Carolina Wren",
	"Cedar Waxwing",
	"Common Grackle",
	"Dark-eyed Junco",
	"Downy Woodpecker",
	"Eastern Bluebird",
	"European Starling",
	"Great Blue Heron",
	"House Finch",
	"House Sparrow",
	"Mourning Dove",
	"Northern Cardinal",
	"Northern Mockingbird",
	"Red-tailed Hawk",
	"Red-winged Blackbird",
	"Song Sparrow",
	"Tufted Titmouse",
	"White-breasted Nuthatch",
}

const speciesCacheKey = "species"

// Service answers species suggestions from the distinct stored species
// merged with the builtin list. The merged list is cached briefly so
// keystroke-driven lookups do not rescan the store.
type Service struct {
	store datastore.Interface
	cache *cache.Cache
}

// New creates a suggestion service over the given store.
func New(store datastore.Interface) *Service {
	return &Service{
		store: store,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Species returns the suggestions matching the given partial input as a
// case-insensitive substring. An empty input returns the full list.
func (s *Service) Species(partial string) ([]string, error) {
	all, err := s.allSpecies()
	if err != nil {
		return nil, err
	}
	if partial == "" {
		return all, nil
	}

	needle := strings.ToLower(partial)
	var matched []string
	for _, name := range all {
		if strings.Contains(strings.ToLower(name), needle) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// Invalidate drops the cached species list, for callers that just inserted
// a sighting with a new species.
func (s *Service) Invalidate() {
	s.cache.Delete(speciesCacheKey)
}

func (s *Service) allSpecies() ([]string, error) {
	if cached, found := s.cache.Get(speciesCacheKey); found {
		return cached.([]string), nil
	}

	sightings, err := s.store.GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(builtinSpecies))
	merged := make([]string, 0, len(builtinSpecies))
	for _, name := range append(query.UniqueSpecies(sightings), builtinSpecies...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	sort.Strings(merged)

	s.cache.Set(speciesCacheKey, merged, cache.DefaultExpiration)
	return merged, nil
}
