package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Listen != "localhost:8765" {
		t.Errorf("listen = %q", cfg.Server.Listen)
	}
	if cfg.Network.Name != "testnet" {
		t.Errorf("network = %q", cfg.Network.Name)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  listen: \"127.0.0.1:9000\"\nnetwork:\n  name: public\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Listen != "127.0.0.1:9000" {
		t.Errorf("listen = %q", cfg.Server.Listen)
	}
	if cfg.Network.Name != "public" {
		t.Errorf("network = %q", cfg.Network.Name)
	}
	// Untouched values keep their defaults.
	if cfg.API.DirectoryTimeoutMS != 1000 {
		t.Errorf("directory timeout = %d", cfg.API.DirectoryTimeoutMS)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("STELLARAW_LISTEN", "0.0.0.0:7777")
	t.Setenv("STELLARAW_NETWORK", "public")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Listen != "0.0.0.0:7777" {
		t.Errorf("listen = %q", cfg.Server.Listen)
	}
	if cfg.Network.Name != "public" {
		t.Errorf("network = %q", cfg.Network.Name)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen", func(c *Config) { c.Server.Listen = "" }},
		{"bad path", func(c *Config) { c.Server.Path = "ws" }},
		{"bad network", func(c *Config) { c.Network.Name = "mainnet" }},
		{"bad horizon url", func(c *Config) { c.API.HorizonURL = "horizon.stellar.org" }},
		{"zero scrape timeout", func(c *Config) { c.API.ScrapeTimeoutMS = 0 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tt.name)
		}
	}
}
