package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// clearEnv blanks every FOLIO_* override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		t.Setenv(s.env, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 4100 {
		t.Errorf("Server.Port = %d, want 4100", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != filepath.Join("/tmp/xdg-data", "folio") {
		t.Errorf("Storage.DataDir = %q", cfg.Storage.DataDir)
	}
	if !cfg.Storage.RecordExports {
		t.Error("Storage.RecordExports = false, want true")
	}
	if cfg.Resume.DefaultLocale != "pt-BR" || cfg.Resume.FallbackLocale != "pt-BR" {
		t.Errorf("locales = %q/%q, want pt-BR/pt-BR", cfg.Resume.DefaultLocale, cfg.Resume.FallbackLocale)
	}
	if cfg.Resume.ProfilePath != "" || cfg.Resume.LocalesDir != "" {
		t.Error("profile and locales paths should default to bundled data")
	}
	if cfg.Resume.ProfileCacheTTL != 60 {
		t.Errorf("ProfileCacheTTL = %d, want 60", cfg.Resume.ProfileCacheTTL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Addr() != "127.0.0.1:4100" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestFileValues(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `{
  "server.port": 8081,
  "resume.default_locale": "en",
  "resume.layout_path": "/etc/folio/layout.toml",
  "storage.record_exports": false
}`)

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Resume.DefaultLocale != "en" {
		t.Errorf("DefaultLocale = %q, want en", cfg.Resume.DefaultLocale)
	}
	if cfg.Resume.LayoutPath != "/etc/folio/layout.toml" {
		t.Errorf("LayoutPath = %q", cfg.Resume.LayoutPath)
	}
	if cfg.Storage.RecordExports {
		t.Error("RecordExports = true, want false")
	}
}

func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `{"server.port": 8081, "log.level": "warn"}`)

	t.Setenv("FOLIO_SERVER_PORT", "9090")
	t.Setenv("FOLIO_LOG_LEVEL", "debug")
	t.Setenv("FOLIO_STORAGE_RECORD_EXPORTS", "false")

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Storage.RecordExports {
		t.Error("RecordExports = true, want false")
	}
}

func TestInvalidEnvKeepsValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOLIO_SERVER_PORT", "not-a-number")

	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 4100 {
		t.Errorf("Server.Port = %d, want default 4100", cfg.Server.Port)
	}
}

func TestAdminTokenFromEnvOnly(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `{"server.admin_token": "from-file"}`)

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.AdminToken != "" {
		t.Errorf("AdminToken = %q, secrets must not be read from the file", cfg.Server.AdminToken)
	}

	t.Setenv("FOLIO_ADMIN_TOKEN", "s3cret")
	cfg, err = loadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.AdminToken != "s3cret" {
		t.Errorf("AdminToken = %q, want s3cret", cfg.Server.AdminToken)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"port out of range", `{"server.port": 70000}`, "server.port"},
		{"empty locale", `{"resume.default_locale": "  "}`, "default_locale"},
		{"negative ttl", `{"resume.profile_cache_ttl": -1}`, "profile_cache_ttl"},
		{"bad log level", `{"log.level": "loud"}`, "log.level"},
		{"fractional int", `{"server.port": 80.5}`, "server.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := loadFromPath(writeTempConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestMalformedFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := loadFromPath(writeTempConfig(t, `{not json`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 4100 {
		t.Errorf("Server.Port = %d, want 4100", cfg.Server.Port)
	}
}

func TestSetKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	b := newFileBackend(path)

	if err := setKey(b, "server.port", "5000"); err != nil {
		t.Fatalf("setKey port: %v", err)
	}
	if err := setKey(b, "resume.default_locale", "en"); err != nil {
		t.Fatalf("setKey locale: %v", err)
	}
	if err := setKey(b, "storage.record_exports", "no"); err == nil {
		t.Error("expected error for invalid bool")
	}
	if err := setKey(b, "storage.record_exports", "false"); err != nil {
		t.Fatalf("setKey bool: %v", err)
	}
	if err := setKey(b, "server.port", "abc"); err == nil {
		t.Error("expected error for invalid int")
	}
	if err := setKey(b, "server.admin_token", "x"); err == nil {
		t.Error("expected error for secret key")
	}
	if err := setKey(b, "nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Server.Port != 5000 || cfg.Resume.DefaultLocale != "en" || cfg.Storage.RecordExports {
		t.Errorf("reloaded config = %+v", cfg)
	}
}

func TestShowAllHidesSecrets(t *testing.T) {
	cfg := defaults()
	cfg.Server.AdminToken = "hidden"
	for _, ki := range ShowAll(cfg) {
		if ki.Key == "server.admin_token" || ki.Value == "hidden" {
			t.Errorf("secret leaked: %+v", ki)
		}
	}
	if len(ShowAll(cfg)) != len(ValidKeys()) {
		t.Errorf("ShowAll and ValidKeys disagree: %d vs %d", len(ShowAll(cfg)), len(ValidKeys()))
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	if got := ConfigFilePath(); got != filepath.Join("/tmp/cfg", "folio", "config.json") {
		t.Errorf("ConfigFilePath() = %q", got)
	}
}
