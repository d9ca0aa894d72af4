package datastore

import (
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/perchlog/perchlog/internal/conf"
	"github.com/perchlog/perchlog/internal/errors"
	"github.com/perchlog/perchlog/internal/sighting"
)

// sightingOrder is the shared ordering contract of both backends.
const sightingOrder = "datetime DESC, created_at DESC"

// SQLiteStore implements Interface using an embedded SQLite database.
type SQLiteStore struct {
	Settings *conf.Settings
	DB       *gorm.DB
}

// Open sets up the SQLite database connection and runs the schema bootstrap.
// The bootstrap is idempotent and safe to run on every launch.
func (store *SQLiteStore) Open() error {
	path := store.Settings.Output.SQLite.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Newf("failed to create database directory: %w", err).
				Component("datastore").
				Category(errors.CategoryFileIO).
				Context("path", dir).
				Build()
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: createGormLogger()})
	if err != nil {
		return errors.Newf("failed to open SQLite database: %w", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("path", path).
			Build()
	}

	// AutoMigrate creates the sightings table if absent, plus the secondary
	// indexes on datetime and species declared in the model tags.
	if err := db.AutoMigrate(&sighting.Sighting{}); err != nil {
		return errors.Newf("failed to migrate SQLite database: %w", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("path", path).
			Build()
	}

	store.DB = db
	if store.Settings.Debug {
		getLogger().Debug("SQLite database connection initialized", "path", path)
	}
	return nil
}

// Close releases the underlying database connection. The handle is opened
// once at process start and closed once at shutdown.
func (store *SQLiteStore) Close() error {
	if store.DB == nil {
		return errors.NewStd("database connection is not initialized")
	}
	sqlDB, err := store.DB.DB()
	if err != nil {
		return errors.Newf("failed to retrieve generic DB object: %w", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return sqlDB.Close()
}

// Insert stores a new sighting and returns its assigned id.
func (store *SQLiteStore) Insert(input *sighting.Input) (int64, error) {
	record := input.Record()
	if err := store.DB.Create(&record).Error; err != nil {
		return 0, errors.Newf("saving sighting: %w", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("file_path", input.FilePath).
			Build()
	}
	return record.ID, nil
}

// GetAll retrieves all sightings ordered by datetime descending with
// created_at descending breaking ties.
func (store *SQLiteStore) GetAll() ([]sighting.Sighting, error) {
	var sightings []sighting.Sighting
	if result := store.DB.Order(sightingOrder).Find(&sightings); result.Error != nil {
		return nil, errors.Newf("error getting all sightings: %w", result.Error).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return sightings, nil
}

// Get retrieves a sighting by its id. A missing id yields (nil, nil).
func (store *SQLiteStore) Get(id int64) (*sighting.Sighting, error) {
	var record sighting.Sighting
	err := store.DB.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Newf("getting sighting with ID %d: %w", id, err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return &record, nil
}

// Update replaces all editable fields of a sighting and bumps updated_at.
// The returned count is 0 when the id does not exist.
func (store *SQLiteStore) Update(id int64, input *sighting.Input) (int64, error) {
	// A map update writes nil coordinates as NULL, which a struct update
	// would skip as zero values.
	result := store.DB.Model(&sighting.Sighting{}).Where("id = ?", id).Updates(map[string]any{
		"file_path": input.FilePath,
		"species":   input.Species,
		"datetime":  input.Datetime,
		"latitude":  input.Latitude,
		"longitude": input.Longitude,
		"notes":     input.Notes,
	})
	if result.Error != nil {
		return 0, errors.Newf("updating sighting with ID %d: %w", id, result.Error).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return result.RowsAffected, nil
}

// Delete removes a sighting by id. The returned count is 0 when the id does
// not exist.
func (store *SQLiteStore) Delete(id int64) (int64, error) {
	result := store.DB.Delete(&sighting.Sighting{}, id)
	if result.Error != nil {
		return 0, errors.Newf("deleting sighting with ID %d: %w", id, result.Error).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return result.RowsAffected, nil
}

// Search performs a case-insensitive substring match against species or
// notes. A blank term returns the full set.
func (store *SQLiteStore) Search(term string) ([]sighting.Sighting, error) {
	if strings.TrimSpace(term) == "" {
		return store.GetAll()
	}

	pattern := "%" + term + "%"
	var sightings []sighting.Sighting
	err := store.DB.Where("species LIKE ? OR notes LIKE ?", pattern, pattern).
		Order(sightingOrder).
		Find(&sightings).Error
	if err != nil {
		return nil, errors.Newf("error searching sightings: %w", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("term", term).
			Build()
	}
	return sightings, nil
}
