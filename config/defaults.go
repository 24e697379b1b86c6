package config

// DefaultAppConfig returns an AppConfig struct with sensible default values
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Repository: RepositoryConfig{
			BaseDir: "",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
