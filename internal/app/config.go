package app

import (
	"rollcall/internal/manifest"
	"rollcall/internal/metrics"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Silent suppresses all log output
	Silent bool

	// Manifest location (optional). May name a single manifest file or a
	// directory of manifest files. When empty, the application starts from
	// an empty manifest and definitions are supplied programmatically.
	ManifestPath string

	// Loaded service manifest. Populated during bootstrap; pre-populating
	// it skips manifest loading entirely.
	Manifest *manifest.Manifest

	// Metrics receives validation and resolution events (optional).
	// Nil disables recording.
	Metrics *metrics.Metrics
}

// NewConfig creates a new application configuration
func NewConfig(debug, silent bool, manifestPath string) *Config {
	return &Config{
		Debug:        debug,
		Silent:       silent,
		ManifestPath: manifestPath,
	}
}
