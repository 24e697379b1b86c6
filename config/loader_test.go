package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromFile("")
	if err != nil {
		t.Fatalf("LoadConfigFromFile: %v", err)
	}

	if cfg.Repository.BaseDir != "" {
		t.Errorf("Repository.BaseDir = %q, want empty default", cfg.Repository.BaseDir)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "console" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "console")
	}
}

func TestLoadConfig_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depot.yaml")
	content := "repository:\n  base_dir: /var/lib/depot\nlog:\n  level: debug\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile: %v", err)
	}

	if cfg.Repository.BaseDir != "/var/lib/depot" {
		t.Errorf("Repository.BaseDir = %q, want %q", cfg.Repository.BaseDir, "/var/lib/depot")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DEPOT_REPOSITORY__BASE_DIR", "/srv/artifacts")
	t.Setenv("DEPOT_LOG__LEVEL", "warn")

	cfg, err := LoadConfigFromFile("")
	if err != nil {
		t.Fatalf("LoadConfigFromFile: %v", err)
	}

	if cfg.Repository.BaseDir != "/srv/artifacts" {
		t.Errorf("Repository.BaseDir = %q, want %q", cfg.Repository.BaseDir, "/srv/artifacts")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		valid bool
	}{
		{
			name:  "unknown log level",
			env:   map[string]string{"DEPOT_LOG__LEVEL": "trace"},
			valid: false,
		},
		{
			name:  "unknown log format",
			env:   map[string]string{"DEPOT_LOG__FORMAT": "logfmt"},
			valid: false,
		},
		{
			name:  "empty basedir is legal",
			env:   map[string]string{},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfigFromFile("")
			if tt.valid && err != nil {
				t.Errorf("LoadConfigFromFile = %v, want success", err)
			}
			if !tt.valid && err == nil {
				t.Error("LoadConfigFromFile succeeded, want validation error")
			}
		})
	}
}
