package layout

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned by Validate and LoadConfig for unusable layouts.
var ErrInvalidConfig = errors.New("invalid layout config")

// Margins are in page units (millimetres).
type Margins struct {
	Top    float64 `toml:"top" json:"top"`
	Bottom float64 `toml:"bottom" json:"bottom"`
	Left   float64 `toml:"left" json:"left"`
	Right  float64 `toml:"right" json:"right"`
}

// FontSizes are in points.
type FontSizes struct {
	Name         float64 `toml:"name" json:"name"`
	SectionTitle float64 `toml:"section_title" json:"sectionTitle"`
	Body         float64 `toml:"body" json:"body"`
	Small        float64 `toml:"small" json:"small"`
}

// Config describes the page geometry and typography of the résumé.
type Config struct {
	PageWidth   float64   `toml:"page_width" json:"pageWidth"`
	PageHeight  float64   `toml:"page_height" json:"pageHeight"`
	Margins     Margins   `toml:"margins" json:"margins"`
	AccentColor string    `toml:"accent_color" json:"accentColor"`
	FontSizes   FontSizes `toml:"font_sizes" json:"fontSizes"`
}

// DefaultConfig returns an A4 layout with 20 mm margins.
func DefaultConfig() Config {
	return Config{
		PageWidth:   210,
		PageHeight:  297,
		Margins:     Margins{Top: 20, Bottom: 20, Left: 20, Right: 20},
		AccentColor: "#2563eb",
		FontSizes:   FontSizes{Name: 20, SectionTitle: 13, Body: 10, Small: 9},
	}
}

// LoadConfig reads a TOML layout file. Keys absent from the file keep their
// DefaultConfig values. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading layout %s: %w", path, err)
	}
	cfg, err = ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects layouts that cannot hold any content.
func (c Config) Validate() error {
	m := c.Margins
	f := c.FontSizes
	for _, v := range []float64{c.PageWidth, c.PageHeight, m.Top, m.Bottom, m.Left, m.Right,
		f.Name, f.SectionTitle, f.Body, f.Small} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: dimensions must be finite numbers", ErrInvalidConfig)
		}
	}
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %gx%g", ErrInvalidConfig, c.PageWidth, c.PageHeight)
	}
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 {
		return fmt.Errorf("%w: margins must not be negative", ErrInvalidConfig)
	}
	if c.PageWidth-m.Left-m.Right <= 0 {
		return fmt.Errorf("%w: margins leave no content width", ErrInvalidConfig)
	}
	if c.PageHeight-m.Top-m.Bottom <= 0 {
		return fmt.Errorf("%w: margins leave no content height", ErrInvalidConfig)
	}
	if f.Name <= 0 || f.SectionTitle <= 0 || f.Body <= 0 || f.Small <= 0 {
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalidConfig)
	}
	if _, err := ParseColor(c.AccentColor); err != nil {
		return err
	}
	return nil
}

// ContentWidth is the usable horizontal space between the side margins.
func (c Config) ContentWidth() float64 {
	return c.PageWidth - c.Margins.Left - c.Margins.Right
}

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B int
}

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: accent color %q", ErrInvalidConfig, hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: accent color %q", ErrInvalidConfig, hex)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}
