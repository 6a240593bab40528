package repository

import (
	"github.com/okian/scoutdesk/pkg/logger"
)

// Option applies a configuration option to a store.
type Option func(*storeOptions)

type storeOptions struct {
	log          logger.Logger
	maxOpenConns int
	instrument   bool
}

func defaultOptions() storeOptions {
	return storeOptions{maxOpenConns: 1, instrument: true}
}

// WithLogger sets the logger used for schema and lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(o *storeOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMaxOpenConns caps SQLite connections. SQLite serializes writers, so
// values above one only help concurrent readers.
func WithMaxOpenConns(n int) Option {
	return func(o *storeOptions) {
		if n > 0 {
			o.maxOpenConns = n
		}
	}
}

// WithInstrumentation toggles per-call latency metrics in Open.
func WithInstrumentation(enabled bool) Option {
	return func(o *storeOptions) {
		o.instrument = enabled
	}
}
