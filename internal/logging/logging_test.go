package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchlog/perchlog/internal/conf"
)

func TestInitAndSetLevel(t *testing.T) {
	Init()

	require.NotNil(t, Structured())
	require.NotNil(t, HumanReadable())

	ctx := context.Background()
	assert.False(t, Structured().Enabled(ctx, slog.LevelDebug))

	SetLevel(slog.LevelDebug)
	assert.True(t, Structured().Enabled(ctx, slog.LevelDebug))
	assert.True(t, HumanReadable().Enabled(ctx, slog.LevelDebug), "both loggers share the level")

	SetLevel(slog.LevelInfo)
}

func TestForService(t *testing.T) {
	Init()
	logger := ForService("datastore")
	require.NotNil(t, logger)
}

func TestInitFileLoggingRoutesServiceLoggers(t *testing.T) {
	Init()

	settings := &conf.Settings{}
	settings.Main.Log.Enabled = true
	settings.Main.Log.Rotation = conf.RotationDaily
	settings.Main.Log.Path = filepath.Join(t.TempDir(), "logs", "perchlog.log")

	require.NoError(t, InitFileLogging(settings))

	ForService("datastore").Info("backend resolved", "backend", "sqlite")
	require.NoError(t, CloseFileLogging())

	data, err := os.ReadFile(settings.Main.Log.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"datastore"`)
	assert.Contains(t, string(data), "backend resolved")
}

func TestInitFileLoggingDisabledIsNoOp(t *testing.T) {
	settings := &conf.Settings{}
	settings.Main.Log.Enabled = false
	settings.Main.Log.Path = filepath.Join(t.TempDir(), "perchlog.log")

	require.NoError(t, InitFileLogging(settings))
	require.NoError(t, CloseFileLogging())

	_, err := os.Stat(settings.Main.Log.Path)
	assert.True(t, os.IsNotExist(err), "no log file without file logging")
}

func TestNewFileLoggerCreatesDirectory(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	logPath := filepath.Join(t.TempDir(), "logs", "service.log")
	logger, closeFunc, err := NewFileLogger(logPath, "test", slog.LevelInfo)
	require.NoError(t, err)
	require.NotNil(t, logger)
	t.Cleanup(func() {
		assert.NoError(t, closeFunc())
	})

	logger.Info("journal opened")

	_, err = os.Stat(filepath.Dir(logPath))
	assert.NoError(t, err, "log directory should be created")
}
