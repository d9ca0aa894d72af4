package datastore

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/perchlog/perchlog/internal/conf"
	"github.com/perchlog/perchlog/internal/errors"
	"github.com/perchlog/perchlog/internal/sighting"
)

// FileStore implements Interface with the whole collection held as one JSON
// array in a single file. Every mutating call decodes, rewrites and encodes
// the array; O(n) per operation is acceptable at fallback scale.
type FileStore struct {
	Settings *conf.Settings

	mu sync.Mutex
}

// path returns the collection file location.
func (store *FileStore) path() string {
	return store.Settings.Output.File.Path
}

// Open ensures the collection file's directory exists and that an existing
// file decodes cleanly.
func (store *FileStore) Open() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if dir := filepath.Dir(store.path()); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Newf("failed to create fallback store directory: %w", err).
				Component("datastore").
				Category(errors.CategoryFileIO).
				Context("path", dir).
				Build()
		}
	}

	_, err := store.load()
	return err
}

// Close is a no-op; the file is not held open between operations.
func (store *FileStore) Close() error {
	return nil
}

// load reads and decodes the collection. A missing file is an empty
// collection, not an error.
func (store *FileStore) load() ([]sighting.Sighting, error) {
	data, err := os.ReadFile(store.path())
	if err != nil {
		if os.IsNotExist(err) {
			return []sighting.Sighting{}, nil
		}
		return nil, errors.Newf("reading fallback store: %w", err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			Context("path", store.path()).
			Build()
	}
	if len(data) == 0 {
		return []sighting.Sighting{}, nil
	}

	var sightings []sighting.Sighting
	if err := json.Unmarshal(data, &sightings); err != nil {
		return nil, errors.Newf("decoding fallback store: %w", err).
			Component("datastore").
			Category(errors.CategorySerialization).
			Context("path", store.path()).
			Build()
	}
	return sightings, nil
}

// save encodes the collection and replaces the file atomically so a failed
// write never corrupts the previous state.
func (store *FileStore) save(sightings []sighting.Sighting) error {
	data, err := json.MarshalIndent(sightings, "", "  ")
	if err != nil {
		return errors.Newf("encoding fallback store: %w", err).
			Component("datastore").
			Category(errors.CategorySerialization).
			Build()
	}

	tmpPath := store.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return errors.Newf("writing fallback store: %w", err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			Context("path", tmpPath).
			Build()
	}
	if err := os.Rename(tmpPath, store.path()); err != nil {
		return errors.Newf("replacing fallback store: %w", err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			Context("path", store.path()).
			Build()
	}
	return nil
}

// compositeID builds an id from the current time plus a random component,
// unique enough for inserts landing within the same millisecond under
// single-user access.
func compositeID() int64 {
	return time.Now().UnixMilli()*1000 + rand.Int63n(1000)
}

// Insert appends a new sighting and rewrites the collection.
func (store *FileStore) Insert(input *sighting.Input) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	sightings, err := store.load()
	if err != nil {
		return 0, err
	}

	record := input.Record()
	record.ID = compositeID()
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	sightings = append(sightings, record)
	if err := store.save(sightings); err != nil {
		return 0, err
	}
	return record.ID, nil
}

// GetAll returns the collection under the same ordering contract as the
// SQLite backend: datetime descending, created_at descending on ties.
func (store *FileStore) GetAll() ([]sighting.Sighting, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	sightings, err := store.load()
	if err != nil {
		return nil, err
	}
	sortSightings(sightings)
	return sightings, nil
}

// Get scans for a sighting by id. A missing id yields (nil, nil).
func (store *FileStore) Get(id int64) (*sighting.Sighting, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	sightings, err := store.load()
	if err != nil {
		return nil, err
	}
	for i := range sightings {
		if sightings[i].ID == id {
			return &sightings[i], nil
		}
	}
	return nil, nil
}

// Update replaces the editable fields of the matching record and bumps its
// updated_at. The returned count is 0 when the id does not exist.
func (store *FileStore) Update(id int64, input *sighting.Input) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	sightings, err := store.load()
	if err != nil {
		return 0, err
	}
	for i := range sightings {
		if sightings[i].ID != id {
			continue
		}
		sightings[i].FilePath = input.FilePath
		sightings[i].Species = input.Species
		sightings[i].Datetime = input.Datetime
		sightings[i].Latitude = input.Latitude
		sightings[i].Longitude = input.Longitude
		sightings[i].Notes = input.Notes
		sightings[i].UpdatedAt = time.Now()
		if err := store.save(sightings); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return 0, nil
}

// Delete removes the matching record. The returned count is 0 when the id
// does not exist.
func (store *FileStore) Delete(id int64) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	sightings, err := store.load()
	if err != nil {
		return 0, err
	}
	for i := range sightings {
		if sightings[i].ID != id {
			continue
		}
		sightings = append(sightings[:i], sightings[i+1:]...)
		if err := store.save(sightings); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return 0, nil
}

// Search filters by case-insensitive substring over species or notes. A
// blank term returns the full set.
func (store *FileStore) Search(term string) ([]sighting.Sighting, error) {
	if strings.TrimSpace(term) == "" {
		return store.GetAll()
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	sightings, err := store.load()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matched := make([]sighting.Sighting, 0, len(sightings))
	for i := range sightings {
		s := &sightings[i]
		if strings.Contains(strings.ToLower(s.Species), needle) ||
			strings.Contains(strings.ToLower(s.Notes), needle) {
			matched = append(matched, *s)
		}
	}
	sortSightings(matched)
	return matched, nil
}

// sortSightings orders records by datetime descending with created_at
// descending on ties. Datetime is compared as a string, matching what the
// SQL ORDER BY does with the TEXT column, so undated records settle last in
// creation order.
func sortSightings(sightings []sighting.Sighting) {
	sort.SliceStable(sightings, func(i, j int) bool {
		if sightings[i].Datetime != sightings[j].Datetime {
			return sightings[i].Datetime > sightings[j].Datetime
		}
		return sightings[i].CreatedAt.After(sightings[j].CreatedAt)
	})
}
