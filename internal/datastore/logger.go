// Package datastore provides persistence for photo sightings behind a single
// storage interface with two interchangeable backends.
package datastore

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm/logger"

	"github.com/perchlog/perchlog/internal/logging"
)

var (
	datastoreLogger *slog.Logger
	loggerOnce      sync.Once
)

// getLogger returns the package logger, initializing it on first use.
func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		datastoreLogger = logging.ForService("datastore")
	})
	return datastoreLogger
}

// slogWriter adapts a slog.Logger to gorm's logger.Writer interface.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.logger.Warn(fmt.Sprintf(format, args...))
}

// createGormLogger configures and returns a new GORM logger instance backed
// by the package slog logger.
func createGormLogger() logger.Interface {
	return logger.New(
		slogWriter{logger: getLogger()},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
