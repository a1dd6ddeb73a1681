// Package export runs the résumé pipeline for a caller: it resolves the
// locale, collects the Document, lays it out and records the outcome.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/folio/internal/i18n"
	"github.com/kalambet/folio/internal/layout"
	"github.com/kalambet/folio/internal/profile"
	"github.com/kalambet/folio/internal/resume"
	"github.com/kalambet/folio/internal/storage"
)

// ErrGenerationInProgress is returned when Generate is called on a Generator
// that is already producing a document.
var ErrGenerationInProgress = errors.New("resume generation already in progress")

const defaultErrorMessage = "Error generating CV. Please try again."

// GenerationError is a failed generation. Message is the localized text meant
// for the end user; Err carries the cause.
type GenerationError struct {
	Locale  string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating %s resume: %v", e.Locale, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ProfileSource supplies the profile. Implemented by profile.Manager.
type ProfileSource interface {
	GetProfile() (profile.Profile, error)
}

// Recorder persists export outcomes. Implemented by storage.Store.
type Recorder interface {
	SaveExport(e storage.Export) error
}

// Options configures a Generator.
type Options struct {
	Profiles  ProfileSource
	Catalog   *i18n.Catalog
	Layout    layout.Config
	Collector *resume.Collector
	Recorder  Recorder // optional
	Channel   string   // recorded with each export, defaults to "cli"
	Now       func() time.Time

	// LocaleSuffix appends the locale to generated filenames.
	LocaleSuffix bool
}

// Result is a successful generation.
type Result struct {
	ID       string
	Locale   string
	Filename string
	Model    resume.Document
	PDF      *layout.Document
}

// Generator produces résumé PDFs. Only one Generate runs at a time per
// Generator; separate Generators share no mutable state.
type Generator struct {
	opts       Options
	generating atomic.Bool
}

// New creates a Generator, filling defaults for unset options.
func New(opts Options) *Generator {
	if opts.Collector == nil {
		opts.Collector = resume.NewCollector()
	}
	if opts.Layout == (layout.Config{}) {
		opts.Layout = layout.DefaultConfig()
	}
	if opts.Channel == "" {
		opts.Channel = "cli"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{opts: opts}
}

// Generating reports whether a Generate call is in flight.
func (g *Generator) Generating() bool {
	return g.generating.Load()
}

// Catalog returns the translation catalog the Generator resolves locales with.
func (g *Generator) Catalog() *i18n.Catalog {
	return g.opts.Catalog
}

// Collect resolves locale and builds the Document Model without laying it out.
func (g *Generator) Collect(ctx context.Context, locale string) (resume.Document, error) {
	if err := ctx.Err(); err != nil {
		return resume.Document{}, err
	}
	resolved, err := g.opts.Catalog.Resolve(locale)
	if err != nil {
		return resume.Document{}, err
	}
	p, err := g.opts.Profiles.GetProfile()
	if err != nil {
		return resume.Document{}, err
	}
	return g.opts.Collector.Collect(resolved, p, g.opts.Catalog.Lookup(resolved)), nil
}

// Generate runs the whole pipeline for locale. Unknown locales are returned as
// i18n.ErrUnknownLocale; any failure after that is a *GenerationError and no
// partial document is returned.
func (g *Generator) Generate(ctx context.Context, locale string) (*Result, error) {
	if !g.generating.CompareAndSwap(false, true) {
		return nil, ErrGenerationInProgress
	}
	defer g.generating.Store(false)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolved, err := g.opts.Catalog.Resolve(locale)
	if err != nil {
		return nil, err
	}

	start := g.opts.Now()
	rec := storage.Export{
		ID:        uuid.NewString(),
		CreatedAt: start,
		Locale:    resolved,
		Channel:   g.opts.Channel,
	}

	res, err := g.generate(resolved)
	rec.DurationMS = g.opts.Now().Sub(start).Milliseconds()
	if err != nil {
		rec.Status = storage.StatusFailed
		rec.Error = err.Error()
		g.record(rec)
		slog.Error("resume generation failed", "locale", resolved, "channel", g.opts.Channel, "error", err)
		return nil, &GenerationError{
			Locale:  resolved,
			Message: i18n.Text(g.opts.Catalog.Lookup(resolved), "resume.error", defaultErrorMessage),
			Err:     err,
		}
	}

	res.ID = rec.ID
	rec.Status = storage.StatusCompleted
	rec.Filename = res.Filename
	rec.Pages = res.PDF.PageCount()
	rec.SizeBytes = int64(res.PDF.Size())
	g.record(rec)
	slog.Info("resume exported", "locale", resolved, "channel", g.opts.Channel,
		"pages", rec.Pages, "bytes", rec.SizeBytes, "duration_ms", rec.DurationMS)
	return res, nil
}

func (g *Generator) generate(locale string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("panic while building document: %v", r)
		}
	}()

	p, err := g.opts.Profiles.GetProfile()
	if err != nil {
		return nil, err
	}
	model := g.opts.Collector.Collect(locale, p, g.opts.Catalog.Lookup(locale))
	doc, err := layout.Build(model, g.opts.Layout)
	if err != nil {
		return nil, err
	}
	suffix := ""
	if g.opts.LocaleSuffix {
		suffix = locale
	}
	return &Result{
		Locale:   locale,
		Filename: Filename(p, suffix),
		Model:    model,
		PDF:      doc,
	}, nil
}

func (g *Generator) record(e storage.Export) {
	if g.opts.Recorder == nil {
		return
	}
	if err := g.opts.Recorder.SaveExport(e); err != nil {
		slog.Warn("recording export failed", "id", e.ID, "error", err)
	}
}

// Filename returns "<First>_<Last>_CV.pdf", with "_<locale>" before the
// extension when locale is set.
func Filename(p profile.Profile, locale string) string {
	base := strings.Join(strings.Fields(p.FullName()), "_")
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, base)
	if base == "" {
		base = "CV"
	} else {
		base += "_CV"
	}
	if locale != "" {
		base += "_" + locale
	}
	return base + ".pdf"
}
