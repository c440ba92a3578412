package infra

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every setting of the daemon. Values from the YAML file are
// overridden by environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Listen string `yaml:"listen"` // host:port for the WebSocket endpoint
		Path   string `yaml:"path"`   // URL path the client dials, default "/ws"
	} `yaml:"server"`

	Network struct {
		// Stellar network segment used by the explorer endpoints
		// ("public" or "testnet").
		Name string `yaml:"name"`
	} `yaml:"network"`

	API struct {
		HorizonURL    string `yaml:"horizon_url"`
		ExpertAPIURL  string `yaml:"expert_api_url"`
		ExpertSiteURL string `yaml:"expert_site_url"`

		ResolveTimeoutMS   int `yaml:"resolve_timeout_ms"`
		MarketTimeoutMS    int `yaml:"market_timeout_ms"`
		DirectoryTimeoutMS int `yaml:"directory_timeout_ms"`
		FlagsTimeoutMS     int `yaml:"flags_timeout_ms"`
		ScrapeTimeoutMS    int `yaml:"scrape_timeout_ms"`
		MetadataTimeoutMS  int `yaml:"metadata_timeout_ms"`
		TomlTimeoutMS      int `yaml:"toml_timeout_ms"`
	} `yaml:"api"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration the daemon runs with when no
// config file is present. The daemon must start with zero local files.
func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "stellaraw-daemon"
	cfg.App.Version = "dev"
	cfg.Server.Listen = "localhost:8765"
	cfg.Server.Path = "/ws"
	cfg.Network.Name = "testnet"
	cfg.API.HorizonURL = "https://horizon.stellar.org"
	cfg.API.ExpertAPIURL = "https://api.stellar.expert/explorer"
	cfg.API.ExpertSiteURL = "https://stellar.expert/explorer"
	cfg.API.ResolveTimeoutMS = 2000
	cfg.API.MarketTimeoutMS = 3000
	cfg.API.DirectoryTimeoutMS = 1000
	cfg.API.FlagsTimeoutMS = 1000
	cfg.API.ScrapeTimeoutMS = 1000
	cfg.API.MetadataTimeoutMS = 5000
	cfg.API.TomlTimeoutMS = 5000
	cfg.Logging.Level = "info"
	return &cfg
}

// LoadConfig reads and parses the config file, then applies environment
// overrides and validates the result. A missing file is not an error: the
// defaults are used so the daemon can run without any local setup.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server listen address is required")
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("server path must start with '/': %s", c.Server.Path)
	}
	if c.Network.Name != "public" && c.Network.Name != "testnet" {
		return fmt.Errorf("network must be 'public' or 'testnet': %s", c.Network.Name)
	}
	for name, url := range map[string]string{
		"horizon_url":     c.API.HorizonURL,
		"expert_api_url":  c.API.ExpertAPIURL,
		"expert_site_url": c.API.ExpertSiteURL,
	} {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return fmt.Errorf("invalid %s: %s", name, url)
		}
	}
	if c.API.ScrapeTimeoutMS <= 0 || c.API.FlagsTimeoutMS <= 0 {
		return fmt.Errorf("fetch timeouts must be positive")
	}
	return nil
}

// Timeout converts a millisecond config value into a duration, falling back
// to the given default when unset.
func Timeout(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// overrideWithEnv applies environment variables over file values.
func overrideWithEnv(cfg *Config) {
	if listen := os.Getenv("STELLARAW_LISTEN"); listen != "" {
		cfg.Server.Listen = listen
	}
	if network := os.Getenv("STELLARAW_NETWORK"); network != "" {
		cfg.Network.Name = network
	}
	if level := os.Getenv("STELLARAW_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// GetPlatformUserAgent generates a browser-like User-Agent string based on
// the current OS. The explorer's HTML endpoint rejects obvious bots, so the
// scrape fallback presents itself as a desktop browser.
func GetPlatformUserAgent() string {
	chromeVer := "120.0.0.0"

	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36", chromeVer)
	case "linux":
		linuxArch := "x86_64"
		if runtime.GOARCH == "arm64" {
			linuxArch = "aarch64"
		}
		return fmt.Sprintf("Mozilla/5.0 (X11; Linux %s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36", linuxArch, chromeVer)
	case "darwin":
		return fmt.Sprintf("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36", chromeVer)
	default:
		return "Mozilla/5.0 (compatible; StellarAW/1.0; +https://github.com/hkanpak21/StellarAW)"
	}
}
