package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchlog/perchlog/internal/conf"
	"github.com/perchlog/perchlog/internal/datastore"
	"github.com/perchlog/perchlog/internal/sighting"
)

func createStore(t *testing.T) datastore.Interface {
	t.Helper()
	settings := &conf.Settings{}
	settings.Output.File.Enabled = true
	settings.Output.File.Path = t.TempDir() + "/sightings.json"

	store, err := datastore.New(settings)
	require.NoError(t, err)
	require.NoError(t, store.Open())
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestFixturesAreDeterministic(t *testing.T) {
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first := Fixtures(ref)
	second := Fixtures(ref)
	require.Len(t, first, 8)
	assert.Equal(t, first, second)

	// Datetimes are anchored to the reference day.
	assert.Equal(t, ref.Format(time.RFC3339), first[0].Datetime)
	assert.Equal(t, ref.AddDate(0, 0, -7).Format(time.RFC3339), first[7].Datetime)

	// Every fixture passes validation.
	for i := range first {
		result := sighting.Validate(&first[i])
		assert.True(t, result.Valid, "fixture %d: %v", i, result.Errors)
	}
}

func TestEnsureSeedsEmptyStore(t *testing.T) {
	store := createStore(t)
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	inserted, err := Ensure(store, ref)
	require.NoError(t, err)
	assert.Equal(t, 8, inserted)

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestEnsureSkipsNonEmptyStore(t *testing.T) {
	store := createStore(t)
	_, err := store.Insert(&sighting.Input{FilePath: "/photos/existing.jpg"})
	require.NoError(t, err)

	inserted, err := Ensure(store, time.Now())
	require.NoError(t, err)
	assert.Zero(t, inserted, "seeding must never touch a store with data")

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
