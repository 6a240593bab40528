package config

import (
	"context"
	"fmt"
	"os"

	"github.com/knadh/koanf/providers/file"
)

// Watch reloads the configuration whenever the SCOUT_CONFIG file changes
// and passes every valid result to onChange. Invalid edits are reported
// through onError and otherwise ignored. Without SCOUT_CONFIG there is
// nothing to watch and Watch returns immediately.
//
// The watch stops when ctx is done.
func Watch(ctx context.Context, onChange func(*Config), onError func(error)) error {
	path := os.Getenv(envFileVar)
	if path == "" {
		return nil
	}
	f := file.Provider(path)
	err := f.Watch(func(_ any, err error) {
		if err == nil {
			var cfg *Config
			if cfg, err = Load(ctx); err == nil {
				onChange(cfg)
				return
			}
		}
		if onError != nil {
			onError(err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: watch %s: %w", ErrLoadConfig, path, err)
	}
	go func() {
		<-ctx.Done()
		_ = f.Unwatch()
	}()
	return nil
}
