package profile

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/profile.json data/featured_projects.json
var sampleFS embed.FS

// ErrUnsupportedFormat is returned for profile files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported profile format")

// Sample returns the bundled profile together with its featured projects.
func Sample() (Profile, error) {
	raw, err := sampleFS.ReadFile("data/profile.json")
	if err != nil {
		return Profile{}, fmt.Errorf("reading bundled profile: %w", err)
	}
	p, err := Parse(raw, ".json")
	if err != nil {
		return Profile{}, err
	}
	raw, err = sampleFS.ReadFile("data/featured_projects.json")
	if err != nil {
		return Profile{}, fmt.Errorf("reading bundled projects: %w", err)
	}
	projects, err := ParseProjects(raw, ".json")
	if err != nil {
		return Profile{}, err
	}
	p.Projects = projects
	return p, nil
}

// LoadFile reads a profile from disk. The format is picked by extension.
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	p, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// LoadProjectsFile reads a standalone featured-projects list.
func LoadProjectsFile(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading projects %s: %w", path, err)
	}
	projects, err := ParseProjects(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("projects %s: %w", path, err)
	}
	return projects, nil
}

// Parse decodes a profile document. ext is a file extension such as ".yaml".
func Parse(data []byte, ext string) (Profile, error) {
	var p Profile
	if err := decode(data, ext, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return p, nil
}

// ParseProjects decodes a featured-projects list.
func ParseProjects(data []byte, ext string) ([]Project, error) {
	var projects []Project
	if err := decode(data, ext, &projects); err != nil {
		return nil, fmt.Errorf("parsing projects: %w", err)
	}
	return projects, nil
}

func decode(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Source loads a Profile from wherever it lives.
type Source interface {
	Load() (Profile, error)
}

// FileSource loads the profile from files on disk, falling back to the bundled
// sample for any path left empty.
type FileSource struct {
	ProfilePath  string
	ProjectsPath string
}

// Load implements Source.
func (s FileSource) Load() (Profile, error) {
	var (
		p   Profile
		err error
	)
	if s.ProfilePath == "" {
		p, err = Sample()
	} else {
		p, err = LoadFile(s.ProfilePath)
	}
	if err != nil {
		return Profile{}, err
	}
	if s.ProjectsPath != "" {
		projects, err := LoadProjectsFile(s.ProjectsPath)
		if err != nil {
			return Profile{}, err
		}
		p.Projects = projects
	}
	return p, nil
}
