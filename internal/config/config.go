package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFredBaseURL is the FRED series observations endpoint.
const DefaultFredBaseURL = "https://api.stlouisfed.org/fred/series/observations"

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Fred struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"fred"`
	Fallback struct {
		Path       string `yaml:"path"`
		ReloadCron string `yaml:"reload_cron"`
	} `yaml:"fallback"`
	Probe struct {
		Cron string `yaml:"cron"`
	} `yaml:"probe"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.listen_addr":   "LISTEN_ADDR",
	"fred.base_url":        "FRED_BASE_URL",
	"fred.api_key":         "FRED_API_KEY",
	"fallback.path":        "FALLBACK_PATH",
	"fallback.reload_cron": "FALLBACK_RELOAD_CRON",
	"probe.cron":           "PROBE_CRON",
	"database.sqlite_path": "SQLITE_PATH",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
	"proxy":                "HTTPS_PROXY",
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	env, err := newEnv()
	if err != nil {
		return nil, err
	}
	overlay(env, "server.listen_addr", &cfg.Server.ListenAddr)
	overlay(env, "fred.base_url", &cfg.Fred.BaseURL)
	overlay(env, "fred.api_key", &cfg.Fred.APIKey)
	overlay(env, "fallback.path", &cfg.Fallback.Path)
	overlay(env, "fallback.reload_cron", &cfg.Fallback.ReloadCron)
	overlay(env, "probe.cron", &cfg.Probe.Cron)
	overlay(env, "database.sqlite_path", &cfg.Database.SQLitePath)
	overlay(env, "log.level", &cfg.Log.Level)
	overlay(env, "log.format", &cfg.Log.Format)
	overlay(env, "proxy", &cfg.Proxy)

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":3000"
	}
	if cfg.Fred.BaseURL == "" {
		cfg.Fred.BaseURL = DefaultFredBaseURL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	return cfg, nil
}

func newEnv() (*viper.Viper, error) {
	v := viper.New()
	for key, name := range envBindings {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", name, err)
		}
	}
	v.AutomaticEnv()
	return v, nil
}

func overlay(env *viper.Viper, key string, dst *string) {
	if v := strings.TrimSpace(env.GetString(key)); v != "" {
		*dst = v
	}
}

// Validate checks that all required fields are set. The FRED API key is not
// required here: fetches without it fail individually and the dashboard
// serves fallback data.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if c.Fred.BaseURL == "" {
		return fmt.Errorf("fred.base_url is required")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if c.Fallback.ReloadCron != "" {
		if _, err := parser.Parse(c.Fallback.ReloadCron); err != nil {
			return fmt.Errorf("fallback.reload_cron: %w", err)
		}
	}
	if c.Probe.Cron != "" {
		if _, err := parser.Parse(c.Probe.Cron); err != nil {
			return fmt.Errorf("probe.cron: %w", err)
		}
	}
	return nil
}

// HasAPIKey reports whether a FRED credential is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.Fred.APIKey) != ""
}
