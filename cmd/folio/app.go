package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kalambet/folio/internal/config"
	"github.com/kalambet/folio/internal/export"
	"github.com/kalambet/folio/internal/i18n"
	"github.com/kalambet/folio/internal/layout"
	"github.com/kalambet/folio/internal/profile"
	"github.com/kalambet/folio/internal/storage"
)

// app bundles what every résumé-producing command needs.
type app struct {
	cfg      config.Config
	catalog  *i18n.Catalog
	profiles *profile.Manager
	layout   layout.Config
	store    *storage.Store // nil when export recording is off
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg.Log.Level)
	return cfg, nil
}

func setupLogging(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func newApp(cfg config.Config) (*app, error) {
	cat, err := i18n.LoadDir(cfg.Resume.LocalesDir, cfg.Resume.FallbackLocale)
	if err != nil {
		return nil, fmt.Errorf("loading locales: %w", err)
	}

	src := profile.FileSource{
		ProfilePath:  cfg.Resume.ProfilePath,
		ProjectsPath: cfg.Resume.ProjectsPath,
	}
	profiles := profile.NewManagerWithTTL(src, time.Duration(cfg.Resume.ProfileCacheTTL)*time.Second)
	if _, err := profiles.GetProfile(); err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	lc, err := layout.LoadConfig(cfg.Resume.LayoutPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, catalog: cat, profiles: profiles, layout: lc}
	if cfg.Storage.RecordExports {
		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		a.store = store
	}
	return a, nil
}

func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		printWarning("closing storage: %v", err)
	}
}

func (a *app) options(channel string) export.Options {
	opts := export.Options{
		Profiles: a.profiles,
		Catalog:  a.catalog,
		Layout:   a.layout,
		Channel:  channel,
	}
	if a.store != nil {
		opts.Recorder = a.store
	}
	return opts
}
