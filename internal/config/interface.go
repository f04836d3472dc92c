package config

import "context"

// Loader is the interface for a format-specific configuration loader. Load
// reads every configuration file reachable from the given paths and merges
// them into a single model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
