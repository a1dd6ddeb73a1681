package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Saved is a document written to disk by ExportAll.
type Saved struct {
	*Result
	Path string
}

// ExportAll generates one PDF per locale concurrently and writes each into
// dir. Every locale gets its own Generator, so the builds share no state.
// Locales are resolved first and duplicates dropped, so "pt" and "pt-BR"
// produce one file. When more than one locale remains the filenames carry a
// locale suffix.
func ExportAll(ctx context.Context, opts Options, locales []string, dir string) ([]Saved, error) {
	locales, err := uniqueLocales(opts, locales)
	if err != nil {
		return nil, err
	}
	if len(locales) == 0 {
		return nil, nil
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	opts.LocaleSuffix = len(locales) > 1

	results := make([]Saved, len(locales))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, locale := range locales {
		g.Go(func() error {
			res, err := New(opts).Generate(gCtx, locale)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, res.Filename)
			if err := res.PDF.Save(path); err != nil {
				return err
			}
			results[i] = Saved{Result: res, Path: path}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func uniqueLocales(opts Options, requested []string) ([]string, error) {
	seen := make(map[string]bool, len(requested))
	var out []string
	for _, l := range requested {
		resolved, err := opts.Catalog.Resolve(l)
		if err != nil {
			return nil, err
		}
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		out = append(out, resolved)
	}
	return out, nil
}
