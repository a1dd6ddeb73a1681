package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Resume  ResumeConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host       string
	Port       int
	AdminToken string // protects /exports; empty disables the endpoint
}

type StorageConfig struct {
	DataDir       string
	RecordExports bool
}

type ResumeConfig struct {
	DefaultLocale   string
	FallbackLocale  string
	ProfilePath     string // empty uses the bundled profile
	ProjectsPath    string
	LocalesDir      string // empty uses the bundled catalogs
	LayoutPath      string // TOML layout overrides
	OutputDir       string
	ProfileCacheTTL int // seconds
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 4100,
		},
		Storage: StorageConfig{
			DataDir:       defaultDataDir(),
			RecordExports: true,
		},
		Resume: ResumeConfig{
			DefaultLocale:   "pt-BR",
			FallbackLocale:  "pt-BR",
			OutputDir:       ".",
			ProfileCacheTTL: 60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file at ConfigFilePath and applies
// FOLIO_* environment overrides on top. Secrets come from the environment only.
func Load() (Config, error) {
	return loadWith(newFileBackend(ConfigFilePath()))
}

func loadFromPath(path string) (Config, error) {
	return loadWith(newFileBackend(path))
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port %d out of range", c.Server.Port)
	}
	if strings.TrimSpace(c.Resume.DefaultLocale) == "" {
		return fmt.Errorf("invalid config: resume.default_locale must not be empty")
	}
	if strings.TrimSpace(c.Resume.FallbackLocale) == "" {
		return fmt.Errorf("invalid config: resume.fallback_locale must not be empty")
	}
	if c.Resume.ProfileCacheTTL < 0 {
		return fmt.Errorf("invalid config: resume.profile_cache_ttl must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid config: log.level %q (want debug, info, warn or error)", c.Log.Level)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
