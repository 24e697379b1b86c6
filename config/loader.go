package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// LoadConfig loads configuration from multiple sources with strict priority:
// 1. Environment variables (highest priority)
// 2. Config file (depot.yaml or depot.json)
// 3. Defaults (lowest priority)
func LoadConfig() (AppConfig, error) {
	return LoadConfigFromFile("")
}

// LoadConfigFromFile loads configuration from multiple sources with a specific config file:
// 1. Environment variables (highest priority)
// 2. Specified config file or default config files
// 3. Defaults (lowest priority)
func LoadConfigFromFile(configFilePath string) (AppConfig, error) {
	k := koanf.New(".")

	// Load default configuration first
	defaultCfg := DefaultAppConfig()
	if err := k.Load(structs.Provider(defaultCfg, "koanf"), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load default config: %w", err)
	}

	// Load from config file
	if configFilePath != "" {
		// Use specified config file
		if _, err := os.Stat(configFilePath); err != nil {
			return AppConfig{}, fmt.Errorf("specified config file %s not found: %w", configFilePath, err)
		}

		if err := k.Load(file.Provider(configFilePath), parserFor(configFilePath)); err != nil {
			return AppConfig{}, fmt.Errorf("failed to load config file %s: %w", configFilePath, err)
		}
	} else {
		// Load from default config files if they exist
		configFiles := []string{"depot.yaml", "depot.yml", "depot.json"}
		for _, configFile := range configFiles {
			if _, err := os.Stat(configFile); err == nil {
				if err := k.Load(file.Provider(configFile), parserFor(configFile)); err != nil {
					return AppConfig{}, fmt.Errorf("failed to load config file %s: %w", configFile, err)
				}
				break
			}
		}
	}

	// Load environment variables with DEPOT_ prefix; "__" separates the
	// section from the key so that underscore keys survive the mapping
	// (DEPOT_REPOSITORY__BASE_DIR -> repository.base_dir).
	if err := k.Load(env.Provider("DEPOT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "DEPOT_")), "__", ".")
	}), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Unmarshal into config struct
	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := validateConfig(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// parserFor picks the koanf parser matching the config file extension.
func parserFor(path string) koanf.Parser {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return yaml.Parser()
	}
	return json.Parser()
}

// validateConfig validates that configuration fields carry recognized values.
// An empty repository.base_dir is legal: it is the degraded test mode in
// which only connection open/close succeed.
func validateConfig(cfg *AppConfig) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, console", cfg.Log.Format)
	}

	return nil
}
