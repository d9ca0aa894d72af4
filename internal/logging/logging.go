// Package logging sets up the structured and human-readable loggers for the
// application and provides rotated file loggers for individual services.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/perchlog/perchlog/internal/conf"
)

var structuredLogger *slog.Logger
var humanReadableLogger *slog.Logger
var defaultLevel = new(slog.LevelVar)

// Set when file logging is enabled; service loggers then write to the
// rotated log file instead of stdout.
var fileHandler slog.Handler
var fileClose func() error

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

// Add trace and fatal level names.
var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

// replaceLevelNames customizes level labels for the custom levels.
func replaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}
		a.Value = slog.StringValue(levelLabel)
	}
	return a
}

// Init initializes the logging system with structured and human-readable loggers.
// It configures JSON output for structured logs and Text output for human-readable logs.
func Init() {
	defaultLevel.Set(slog.LevelInfo)

	structuredHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       defaultLevel,
		ReplaceAttr: replaceLevelNames,
	})
	structuredLogger = slog.New(structuredHandler)

	humanReadableHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       defaultLevel,
		ReplaceAttr: replaceLevelNames,
	})
	humanReadableLogger = slog.New(humanReadableHandler)

	slog.SetDefault(structuredLogger)
}

// SetLevel sets the minimum logging level for both loggers.
func SetLevel(level slog.Level) {
	defaultLevel.Set(level)
}

// Structured returns the structured JSON logger.
func Structured() *slog.Logger {
	return structuredLogger
}

// HumanReadable returns the human-readable text logger.
func HumanReadable() *slog.Logger {
	return humanReadableLogger
}

// InitFileLogging routes service loggers to a rotated log file at the
// configured path. A disabled log config is a no-op; ForService then keeps
// writing to stdout.
func InitFileLogging(settings *conf.Settings) error {
	if !settings.Main.Log.Enabled {
		return nil
	}
	handler, closeFunc, err := newRotatingHandler(settings.Main.Log, settings.Main.Log.Path, defaultLevel)
	if err != nil {
		return err
	}
	fileHandler = handler
	fileClose = closeFunc
	return nil
}

// CloseFileLogging closes the rotated log file writer, if one was set up.
func CloseFileLogging() error {
	if fileClose == nil {
		return nil
	}
	err := fileClose()
	fileHandler = nil
	fileClose = nil
	return err
}

// ForService returns a structured logger with a service attribute attached.
// When file logging is active the records go to the rotated log file.
func ForService(serviceName string) *slog.Logger {
	if fileHandler != nil {
		return slog.New(fileHandler).With("service", serviceName)
	}
	if structuredLogger == nil {
		return slog.Default().With("service", serviceName)
	}
	return structuredLogger.With("service", serviceName)
}

// --- Convenience functions using the default logger ---

// Debug logs a debug message using the default slog logger.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message using the default slog logger.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message using the default slog logger.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message using the default slog logger.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// Fatal logs a fatal message using the custom Fatal level and then exits.
func Fatal(msg string, args ...any) {
	slog.Log(context.TODO(), LevelFatal, msg, args...)
	os.Exit(1)
}

// Trace logs a trace message using the custom Trace level.
func Trace(msg string, args ...any) {
	slog.Log(context.TODO(), LevelTrace, msg, args...)
}

// newRotatingHandler builds a JSON handler writing to filePath with
// lumberjack rotation driven by the given log configuration.
func newRotatingHandler(logConf conf.LogConfig, filePath string, level slog.Leveler) (slog.Handler, func() error, error) {
	// lumberjack doesn't create directories
	logDir := filepath.Dir(filePath)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	logWriter := &lumberjack.Logger{
		Filename: filePath,
		Compress: false,
	}

	maxSizeMB := 100
	maxBackups := 3
	maxAge := 28 // days

	configMaxSizeMB := int(logConf.MaxSize / (1024 * 1024))
	if configMaxSizeMB > 0 {
		maxSizeMB = configMaxSizeMB
	}

	switch logConf.Rotation {
	case conf.RotationDaily:
		maxAge = 1
		maxBackups = 30
	case conf.RotationWeekly:
		maxAge = 7
		maxBackups = 4
	case conf.RotationSize:
		// size-based values already set above
	default:
		slog.Warn("Unknown log rotation type in config, using size-based defaults", "configuredType", logConf.Rotation)
	}

	logWriter.MaxSize = maxSizeMB
	logWriter.MaxBackups = maxBackups
	logWriter.MaxAge = maxAge

	handler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})

	return handler, logWriter.Close, nil
}

// NewFileLogger creates a slog.Logger writing JSON logs to filePath using
// lumberjack for rotation based on the main log configuration. All records
// carry a service attribute. Returns the logger and a function to close the
// underlying writer.
func NewFileLogger(filePath, serviceName string, level slog.Leveler) (*slog.Logger, func() error, error) {
	handler, closeFunc, err := newRotatingHandler(conf.Setting().Main.Log, filePath, level)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(handler).With("service", serviceName), closeFunc, nil
}
