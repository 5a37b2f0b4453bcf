package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
	if cfg.Source.Lat != 9.91850 || cfg.Source.Lng != 76.25580 {
		t.Errorf("Expected default coordinates, got %v,%v", cfg.Source.Lat, cfg.Source.Lng)
	}
	if cfg.Controller.TopRatedThreshold != 4.5 {
		t.Errorf("Expected threshold 4.5, got %v", cfg.Controller.TopRatedThreshold)
	}
	if cfg.Controller.RefetchOnReconnect {
		t.Error("Expected reconnect refetch off by default")
	}
}

func TestLoadConfigFile_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  lat: 12.5
  sections: [2, 3]
  timeout: 5s
controller:
  top_rated_threshold: 4.0
  refetch_on_reconnect: true
search:
  mode: fuzzy
`)

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}

	if cfg.Source.Lat != 12.5 {
		t.Errorf("Expected lat 12.5, got %v", cfg.Source.Lat)
	}
	if cfg.Source.Lng != 76.25580 {
		t.Errorf("Expected default lng to survive, got %v", cfg.Source.Lng)
	}
	if len(cfg.Source.Sections) != 2 || cfg.Source.Sections[0] != 2 || cfg.Source.Sections[1] != 3 {
		t.Errorf("Expected sections [2 3], got %v", cfg.Source.Sections)
	}
	if cfg.Source.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.Source.Timeout)
	}
	if cfg.Controller.TopRatedThreshold != 4.0 || !cfg.Controller.RefetchOnReconnect {
		t.Errorf("Unexpected controller config: %+v", cfg.Controller)
	}
	if cfg.Search.Mode != SearchModeFuzzy {
		t.Errorf("Expected fuzzy mode, got %q", cfg.Search.Mode)
	}
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "search:\n  mode: substring\n")
	t.Setenv("TIFFIN_SEARCH_MODE", "fuzzy")
	t.Setenv("TIFFIN_CONTROLLER_VEG_LABEL", "Pure Veg")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if cfg.Search.Mode != SearchModeFuzzy {
		t.Errorf("Expected env to override mode, got %q", cfg.Search.Mode)
	}
	if cfg.Controller.VegLabel != "Pure Veg" {
		t.Errorf("Expected env veg label, got %q", cfg.Controller.VegLabel)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"threshold too high", "controller:\n  top_rated_threshold: 7\n", "top_rated_threshold"},
		{"one section", "source:\n  sections: [1]\n", "exactly two"},
		{"negative section", "source:\n  sections: [-1, 4]\n", "negative"},
		{"unknown mode", "search:\n  mode: regex\n", "search.mode"},
		{"empty url", "source:\n  url: \"\"\n", "source.url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFile(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfigFile_MalformedYAML(t *testing.T) {
	_, err := LoadConfigFile(writeConfig(t, "source: [unclosed\n"))
	if err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestValidate_ClampsGridColumns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.GridColumns = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.UI.GridColumns != 1 {
		t.Errorf("Expected grid columns clamped to 1, got %d", cfg.UI.GridColumns)
	}
}
