package datastore

import (
	"sync"
	"time"

	"github.com/perchlog/perchlog/internal/conf"
)

// Resolver decides once per process which backend answers the storage
// interface. The SQLite backend is probed with a bounded retry loop; if it
// never comes up the resolver commits to the file fallback for the rest of
// the session. All consumers share the single resolution.
type Resolver struct {
	Settings *conf.Settings

	once  sync.Once
	store Interface
	err   error
}

// NewResolver creates a resolver for the given settings.
func NewResolver(settings *conf.Settings) *Resolver {
	return &Resolver{Settings: settings}
}

// Resolve returns the resolved store, probing backends on the first call.
func (r *Resolver) Resolve() (Interface, error) {
	r.once.Do(r.resolve)
	return r.store, r.err
}

// Close closes the resolved store, if any. Safe to call before Resolve.
func (r *Resolver) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

func (r *Resolver) resolve() {
	log := getLogger()

	if r.Settings.Output.SQLite.Enabled && !r.Settings.Output.File.Enabled {
		interval := r.Settings.Resolver.Interval
		if interval <= 0 {
			interval = 500 * time.Millisecond
		}
		attempts := r.Settings.Resolver.MaxAttempts
		if attempts <= 0 {
			attempts = 6
		}

		var lastErr error
		for attempt := 1; attempt <= attempts; attempt++ {
			store := &SQLiteStore{Settings: r.Settings}
			if err := store.Open(); err == nil {
				if attempt > 1 {
					log.Info("SQLite backend became available", "attempt", attempt)
				}
				r.store = store
				return
			} else {
				lastErr = err
			}
			if attempt < attempts {
				time.Sleep(interval)
			}
		}
		log.Warn("SQLite backend unavailable, falling back to file store",
			"attempts", attempts, "error", lastErr)
	}

	fallback := &FileStore{Settings: r.Settings}
	if err := fallback.Open(); err != nil {
		r.err = err
		return
	}
	r.store = fallback
}
