package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// getEnv treats empty as unset, so clearing is enough.
	for _, key := range []string{"ENV", "SERVER_ADDR", "SWEEP_SCHEDULE", "TIMEZONE", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.ServerAddr != ":3000" {
		t.Errorf("ServerAddr = %q, want :3000", cfg.ServerAddr)
	}
	if cfg.SweepSchedule != "@daily" {
		t.Errorf("SweepSchedule = %q, want @daily", cfg.SweepSchedule)
	}
	if !cfg.IsDev() {
		t.Errorf("IsDev() = false for default env")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SWEEP_SCHEDULE", "0 3 * * *")
	t.Setenv("TIMEZONE", "America/New_York")

	cfg := Load()
	if cfg.IsDev() {
		t.Errorf("IsDev() = true for production env")
	}
	if cfg.SweepSchedule != "0 3 * * *" {
		t.Errorf("SweepSchedule = %q", cfg.SweepSchedule)
	}
	if got := cfg.Location().String(); got != "America/New_York" {
		t.Errorf("Location() = %q, want America/New_York", got)
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	if cfg.Location() != time.Local {
		t.Errorf("invalid timezone should fall back to local")
	}

	cfg = &Config{}
	if cfg.Location() != time.Local {
		t.Errorf("empty timezone should fall back to local")
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
		cfg, err := LoadYAMLConfig()
		if err != nil {
			t.Fatalf("LoadYAMLConfig() error = %v", err)
		}
		if cfg != nil {
			t.Errorf("LoadYAMLConfig() = %+v, want nil", cfg)
		}
	})

	t.Run("parses categories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `tracked_category:
  name: New Stock
categories:
  - slug: clearance
    name: Clearance
  - slug: preorder
    name: Pre-Order
`
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv("CONFIG_FILE", path)

		cfg, err := LoadYAMLConfig()
		if err != nil {
			t.Fatalf("LoadYAMLConfig() error = %v", err)
		}
		if cfg.TrackedCategory.Name != "New Stock" {
			t.Errorf("TrackedCategory.Name = %q", cfg.TrackedCategory.Name)
		}
		if len(cfg.Categories) != 2 || cfg.Categories[0].Slug != "clearance" {
			t.Errorf("Categories = %+v", cfg.Categories)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("categories: [notclosed"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv("CONFIG_FILE", path)

		if _, err := LoadYAMLConfig(); err == nil {
			t.Errorf("LoadYAMLConfig() error = nil for malformed yaml")
		}
	})
}
