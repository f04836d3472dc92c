// Package config defines the format-agnostic configuration model for the
// bridge and the loader interface a format-specific implementation (see the
// hcl package) must satisfy.
package config
