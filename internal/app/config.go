package app

import "errors"

// Config holds everything an App instance needs to start.
type Config struct {
	ConfigPath string // .hcl file or directory of .hcl files

	Listen    string // optional override of the configured bind address
	LogFormat string
	LogLevel  string
	ProbeURL  string // when set, the binary runs a probe instead of serving
}

// NewConfig validates the raw CLI values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && cfg.ProbeURL == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
