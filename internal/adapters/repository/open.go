package repository

import (
	"context"
	"fmt"
)

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open builds the Store named by driver. path is only used by sqlite.
func Open(ctx context.Context, driver, path string, opts ...Option) (Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		s   Store
		err error
	)
	switch driver {
	case DriverMemory:
		s = NewMemoryStore()
	case DriverSQLite:
		s, err = NewSQLiteStore(ctx, path, opts...)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if o.instrument {
		s = Instrument(s)
	}
	return s, nil
}
