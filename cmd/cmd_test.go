package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchlog/perchlog/internal/conf"
	"github.com/perchlog/perchlog/internal/datastore"
)

// newTestContext builds a command context over a temporary file-backed store.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	settings := &conf.Settings{}
	settings.Output.File.Enabled = true
	settings.Output.File.Path = t.TempDir() + "/sightings.json"

	ctx := &Context{
		Settings: settings,
		Resolver: datastore.NewResolver(settings),
	}
	t.Cleanup(func() {
		assert.NoError(t, ctx.Resolver.Close())
	})
	return ctx
}

// run executes the CLI with the given arguments and returns stdout.
func run(t *testing.T, ctx *Context, args ...string) (string, error) {
	t.Helper()
	root := RootCommand(ctx)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	ctx := newTestContext(t)

	out, err := run(t, ctx, "add", "/photos/cardinal.jpg",
		"--species", "Northern Cardinal",
		"--datetime", "2024-01-15T08:30:00",
		"--lat", "40.7829", "--lon", "-73.9654",
		"--notes", "At the feeder")
	require.NoError(t, err)
	assert.Contains(t, out, "Added sighting")

	out, err = run(t, ctx, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Northern Cardinal")
	assert.Contains(t, out, "2024-01-15")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	ctx := newTestContext(t)

	_, err := run(t, ctx, "add", "/photos/bad.jpg", "--lat", "123.4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")

	// Nothing was stored.
	out, err := run(t, ctx, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sightings found.")
}

func TestImportSkipsNonImages(t *testing.T) {
	ctx := newTestContext(t)

	out, err := run(t, ctx, "import", "/photos/owl.jpg", "/photos/notes.txt", "/photos/jay.PNG")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 photo(s), skipped 1")
}

func TestSearchCommand(t *testing.T) {
	ctx := newTestContext(t)

	_, err := run(t, ctx, "add", "/photos/heron.jpg", "--species", "Great Blue Heron")
	require.NoError(t, err)

	out, err := run(t, ctx, "search", "heron")
	require.NoError(t, err)
	assert.Contains(t, out, "Great Blue Heron")

	out, err = run(t, ctx, "search", "penguin")
	require.NoError(t, err)
	assert.Contains(t, out, "No matches.")
}

func TestDeleteCommand(t *testing.T) {
	ctx := newTestContext(t)

	out, err := run(t, ctx, "add", "/photos/wren.jpg", "--species", "Carolina Wren")
	require.NoError(t, err)

	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 3)
	id := fields[2]

	out, err = run(t, ctx, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted sighting")

	out, err = run(t, ctx, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "No sighting with id")

	_, err = run(t, ctx, "delete", "not-a-number")
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	ctx := newTestContext(t)

	out, err := run(t, ctx, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 8 sample sightings.")

	out, err = run(t, ctx, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")
}

func TestStatsCommand(t *testing.T) {
	ctx := newTestContext(t)

	_, err := run(t, ctx, "seed")
	require.NoError(t, err)

	out, err := run(t, ctx, "stats", "--days")
	require.NoError(t, err)
	assert.Contains(t, out, "Sightings:      8")
	assert.Contains(t, out, "Unique species: 8")
	assert.Contains(t, out, "Best day:")
	assert.Contains(t, out, "Intensity")
}

func TestConfigFlagOverridesSettings(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := "datapath: " + dir + "\noutput:\n  sqlite:\n    enabled: false\n  file:\n    enabled: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	settings := &conf.Settings{}
	ctx := &Context{
		Settings: settings,
		Resolver: datastore.NewResolver(settings),
	}
	t.Cleanup(func() {
		assert.NoError(t, ctx.Resolver.Close())
	})

	out, err := run(t, ctx, "--config", configPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sightings found.")

	assert.True(t, ctx.Settings.Output.File.Enabled)
	assert.Equal(t, filepath.Join(dir, "sightings.json"), ctx.Settings.Output.File.Path)
}

func TestSpeciesCommand(t *testing.T) {
	ctx := newTestContext(t)

	out, err := run(t, ctx, "species", "chickadee")
	require.NoError(t, err)
	assert.Contains(t, out, "Black-capped Chickadee")

	out, err = run(t, ctx, "species", "archaeopteryx")
	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions.")
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("kääpiötikka ", 10)
	cut := truncate(long, 16)
	assert.True(t, utf8.ValidString(cut), "truncation must not split a rune")
	assert.Equal(t, 16, utf8.RuneCountInString(cut))
	assert.True(t, strings.HasSuffix(cut, "…"))

	// Exactly at the limit stays untouched.
	exact := strings.Repeat("ö", 16)
	assert.Equal(t, exact, truncate(exact, 16))
}

func TestIsImagePath(t *testing.T) {
	assert.True(t, IsImagePath("/photos/owl.jpg"))
	assert.True(t, IsImagePath("/photos/owl.JPEG"))
	assert.True(t, IsImagePath("owl.webp"))
	assert.False(t, IsImagePath("/photos/owl.raw"))
	assert.False(t, IsImagePath("/photos/owl"))
	assert.False(t, IsImagePath("notes.txt"))
}
