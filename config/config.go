// Package config provides configuration management for depot.
// It handles loading and validating configuration from YAML/JSON files
// and environment variables.
package config

// AppConfig represents the complete application configuration
type AppConfig struct {
	Repository RepositoryConfig `koanf:"repository"`
	Log        LogConfig        `koanf:"log"`
}

// RepositoryConfig holds the repository location
type RepositoryConfig struct {
	// BaseDir may be left empty: connection validation is then skipped
	// and per-operation calls fail until a base directory is supplied.
	BaseDir string `koanf:"base_dir"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
