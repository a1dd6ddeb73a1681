package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.host", typ: kString, env: "FOLIO_SERVER_HOST",
		apply:   func(cfg *Config, v any) { cfg.Server.Host = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.Host },
	},
	{
		key: "server.port", typ: kInt, env: "FOLIO_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.admin_token", typ: kString, env: "FOLIO_ADMIN_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.AdminToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.AdminToken },
	},
	{
		key: "storage.data_dir", typ: kString, env: "FOLIO_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "storage.record_exports", typ: kBool, env: "FOLIO_STORAGE_RECORD_EXPORTS",
		apply:   func(cfg *Config, v any) { cfg.Storage.RecordExports = v.(bool) },
		extract: func(cfg Config) any { return cfg.Storage.RecordExports },
	},
	{
		key: "resume.default_locale", typ: kString, env: "FOLIO_DEFAULT_LOCALE",
		apply:   func(cfg *Config, v any) { cfg.Resume.DefaultLocale = v.(string) },
		extract: func(cfg Config) any { return cfg.Resume.DefaultLocale },
	},
	{
		key: "resume.fallback_locale", typ: kString, env: "FOLIO_FALLBACK_LOCALE",
		apply:   func(cfg *Config, v any) { cfg.Resume.FallbackLocale = v.(string) },
		extract: func(cfg Config) any { return cfg.Resume.FallbackLocale },
	},
	{
		key: "resume.profile_path", typ: kString, env: "FOLIO_PROFILE_PATH",
		apply:   func(cfg *Config, v any) { cfg.Resume.ProfilePath = v.(string) },
		extract: func(cfg Config) any { return cfg.Resume.ProfilePath },
	},
	{
		key: "resume.projects_path", typ: kString, env: "FOLIO_PROJECTS_PATH",
		apply:   func(cfg *Config, v any) { cfg.Resume.ProjectsPath = v.(string) },
		extract: func(cfg Config) any { return cfg.Resume.ProjectsPath },
	},
	{
		key: "resume.locales_dir", typ: kString, env: "FOLIO_LOCALES_DIR",
		apply:   func(cfg *Config, v any) { cfg.Resume.LocalesDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Resume.LocalesDir },
	},
	{
		key: "resume.layout_path", typ: kString, env: "FOLIO_LAYOUT_PATH",
		apply:   func(cfg *Config, v any) { cfg.Resume.LayoutPath = v.(string) },
		extract: func(cfg Config) any { return cfg.Resume.LayoutPath },
	},
	{
		key: "resume.output_dir", typ: kString, env: "FOLIO_OUTPUT_DIR",
		apply:   func(cfg *Config, v any) { cfg.Resume.OutputDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Resume.OutputDir },
	},
	{
		key: "resume.profile_cache_ttl", typ: kInt, env: "FOLIO_PROFILE_CACHE_TTL",
		apply:   func(cfg *Config, v any) { cfg.Resume.ProfileCacheTTL = v.(int) },
		extract: func(cfg Config) any { return cfg.Resume.ProfileCacheTTL },
	},
	{
		key: "log.level", typ: kString, env: "FOLIO_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kBool:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok && v != "" {
				if bv, err := strconv.ParseBool(v); err == nil {
					s.apply(cfg, bv)
				} else {
					fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from config key %s=%q: %v. Using default value.\n", s.key, v, err)
				}
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.apply(cfg, b)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
