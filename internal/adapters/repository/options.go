package repository

import (
	"time"

	"github.com/bootyhunt/server/pkg/logger"
)

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithPath sets the database file path. Empty keeps the default private
// in-memory database.
func WithPath(path string) Option {
	return func(s *SQLiteStore) {
		s.path = path
	}
}

// WithBusyTimeout bounds how long a statement waits for the serialized
// connection before failing with a busy error.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.busyTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *SQLiteStore) {
		if log != nil {
			s.log = log
		}
	}
}
