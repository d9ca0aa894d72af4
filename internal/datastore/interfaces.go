// interfaces.go: this code defines the interface for the storage backends
package datastore

import (
	"github.com/perchlog/perchlog/internal/conf"
	"github.com/perchlog/perchlog/internal/errors"
	"github.com/perchlog/perchlog/internal/sighting"
)

// Interface abstracts the underlying persistence implementation. Both the
// SQLite backend and the JSON file fallback satisfy it with identical
// semantics:
//
//   - GetAll and Search return records ordered by datetime descending, ties
//     broken by created_at descending, so undated records settle in creation
//     order with the most recent first.
//   - Get returns (nil, nil) for a missing id; not-found is not an error.
//   - Update and Delete report the number of affected records and return
//     (0, nil) for a missing id.
//   - Search matches a case-insensitive substring against species OR notes;
//     a blank term returns the full set.
type Interface interface {
	Open() error
	Close() error
	Insert(input *sighting.Input) (int64, error)
	GetAll() ([]sighting.Sighting, error)
	Get(id int64) (*sighting.Sighting, error)
	Update(id int64, input *sighting.Input) (int64, error)
	Delete(id int64) (int64, error)
	Search(term string) ([]sighting.Sighting, error)
}

// New creates a store instance based on the provided settings. Callers that
// want automatic fallback behavior should use a Resolver instead.
func New(settings *conf.Settings) (Interface, error) {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}, nil
	case settings.Output.File.Enabled:
		return &FileStore{Settings: settings}, nil
	default:
		return nil, errors.Newf("no storage backend enabled in settings").
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Build()
	}
}
