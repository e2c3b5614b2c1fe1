package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Platforms.Deezer.BaseURL != "https://api.deezer.com" {
		t.Errorf("unexpected deezer base url: %s", config.Platforms.Deezer.BaseURL)
	}
	if config.Platforms.Deezer.RateLimit <= 0 {
		t.Error("expected a positive deezer rate limit")
	}
	if config.Cache.TTLHours != 24 {
		t.Errorf("expected 24h cache ttl, got %d", config.Cache.TTLHours)
	}
	if config.Server.Port == 0 {
		t.Error("expected a default server port")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		content := `
[server]
host = "0.0.0.0"
port = 9000

[cache]
path = ":memory:"
ttl_hours = 1

[platforms.deezer]
base_url = "http://localhost:1234"
rate_limit = 2.5
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Server.Port != 9000 {
			t.Errorf("expected port 9000, got %d", config.Server.Port)
		}
		if config.Platforms.Deezer.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %f", config.Platforms.Deezer.RateLimit)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Malformed File", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(path, []byte("[[[not toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed file")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := LoadConfig(path); err != nil {
		t.Errorf("generated config should parse: %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when config already exists")
	}
}
