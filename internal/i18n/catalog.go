package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// ErrUnknownLocale is returned when no catalog can serve a requested locale.
var ErrUnknownLocale = errors.New("unknown locale")

//go:embed locales/*.json
var bundled embed.FS

// Catalog holds the flattened translations of every loaded locale.
type Catalog struct {
	fallback string

	mu      sync.RWMutex
	entries map[string]map[string]string
	matcher language.Matcher
	names   []string
}

// NewCatalog creates an empty catalog. fallback is the locale consulted last
// in every lookup chain.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{
		fallback: fallback,
		entries:  make(map[string]map[string]string),
	}
}

// LoadBundled returns a catalog with the embedded en and pt-BR translations.
func LoadBundled(fallback string) (*Catalog, error) {
	c := NewCatalog(fallback)
	if err := c.addFS(bundled, "locales"); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadDir reads every <locale>.json file in dir. An empty dir yields the
// bundled catalogs.
func LoadDir(dir, fallback string) (*Catalog, error) {
	if dir == "" {
		return LoadBundled(fallback)
	}
	c := NewCatalog(fallback)
	if err := c.addFS(os.DirFS(dir), "."); err != nil {
		return nil, fmt.Errorf("loading locales from %s: %w", dir, err)
	}
	if len(c.Locales()) == 0 {
		return nil, fmt.Errorf("no locale files in %s", dir)
	}
	return c, nil
}

func (c *Catalog) addFS(fsys fs.FS, dir string) error {
	files, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(dir, "*.json")))
	if err != nil {
		return err
	}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		locale := strings.TrimSuffix(filepath.Base(name), ".json")
		if err := c.Add(locale, data); err != nil {
			return err
		}
	}
	return nil
}

// Add parses a nested JSON document and registers it under locale, merging
// over any keys already present. Arrays are addressed by index, so
// {"months": ["Jan"]} yields the key "months.0".
func (c *Catalog) Add(locale string, data []byte) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("locale %q: %w", locale, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return fmt.Errorf("parsing %s catalog: %w", locale, err)
	}
	if _, ok := tree.(map[string]any); !ok {
		return fmt.Errorf("parsing %s catalog: top level must be an object", locale)
	}

	name := tag.String()
	c.mu.Lock()
	defer c.mu.Unlock()
	// Maps handed out by Lookup are never written again; merges go into a copy.
	prev := c.entries[name]
	flat := make(map[string]string, len(prev))
	for k, v := range prev {
		flat[k] = v
	}
	flatten("", tree, flat)
	c.entries[name] = flat
	c.rebuildMatcher()
	return nil
}

func flatten(prefix string, node any, out map[string]string) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			flatten(join(k), child, out)
		}
	case []any:
		for i, child := range v {
			flatten(join(strconv.Itoa(i)), child, out)
		}
	case string:
		out[prefix] = v
	case json.Number:
		out[prefix] = v.String()
	case bool:
		out[prefix] = strconv.FormatBool(v)
	}
}

// rebuildMatcher must be called with mu held.
func (c *Catalog) rebuildMatcher() {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	// The fallback locale goes first so the matcher prefers it on weak matches.
	for i, n := range names {
		if n == c.fallback && i > 0 {
			copy(names[1:i+1], names[:i])
			names[0] = n
			break
		}
	}
	tags := make([]language.Tag, len(names))
	for i, n := range names {
		tags[i] = language.Make(n)
	}
	c.names = names
	c.matcher = language.NewMatcher(tags)
}

// Locales lists the loaded locale names in sorted order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.entries))
	for name := range c.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the locale consulted last in lookup chains.
func (c *Catalog) Fallback() string { return c.fallback }

// Resolve maps a requested locale to a loaded one: exact match first, then the
// closest loaded locale according to x/text language matching.
func (c *Catalog) Resolve(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.entries[tag.String()]; ok {
		return tag.String(), nil
	}
	if c.matcher == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	return c.names[idx], nil
}

// Negotiate picks a loaded locale for an Accept-Language header, returning
// the fallback locale when nothing matches.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.matcher == nil {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.names[idx]
}

// chain returns the catalogs consulted for locale: the exact locale, its base
// language, then the fallback locale. Must be called with mu held.
func (c *Catalog) chain(locale string) []map[string]string {
	var names []string
	if tag, err := language.Parse(locale); err == nil {
		names = append(names, tag.String())
		if base, conf := tag.Base(); conf != language.No {
			names = append(names, base.String())
		}
	}
	names = append(names, c.fallback)

	seen := make(map[string]bool, len(names))
	var out []map[string]string
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if m, ok := c.entries[n]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Lookup binds the catalog to a locale. The result sees the catalog as it was
// at the time of the call; later Adds do not affect it.
func (c *Catalog) Lookup(locale string) Lookup {
	c.mu.RLock()
	chain := c.chain(locale)
	c.mu.RUnlock()
	return LookupFunc(func(key string) (string, bool) {
		for _, m := range chain {
			if v, ok := m[key]; ok {
				return v, true
			}
		}
		return "", false
	})
}

// Translate resolves key for locale, echoing the key back when it is missing.
func (c *Catalog) Translate(locale, key string) string {
	if v, ok := c.Lookup(locale).Lookup(key); ok {
		return v
	}
	return key
}
