package profile

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Manager provides cached access to the profile behind a Source. Callers
// always receive a deep copy, so the cached value is never shared.
type Manager struct {
	source Source
	clock  Clock
	ttl    time.Duration

	mu       sync.RWMutex
	cached   *Profile
	cachedAt time.Time
}

// NewManager creates a Manager with a 60-second cache TTL.
func NewManager(source Source) *Manager {
	return &Manager{
		source: source,
		clock:  realClock{},
		ttl:    60 * time.Second,
	}
}

// NewManagerWithTTL creates a Manager that reloads the source every ttl.
func NewManagerWithTTL(source Source, ttl time.Duration) *Manager {
	return NewManagerWithClock(source, realClock{}, ttl)
}

// NewManagerWithClock creates a Manager with a custom clock (for testing).
func NewManagerWithClock(source Source, clock Clock, ttl time.Duration) *Manager {
	return &Manager{
		source: source,
		clock:  clock,
		ttl:    ttl,
	}
}

// GetProfile returns the profile from cache, reloading it from the source
// once the TTL has expired.
func (m *Manager) GetProfile() (Profile, error) {
	// Fast path: read lock for cache hit.
	m.mu.RLock()
	if m.cached != nil && m.clock.Now().Before(m.cachedAt.Add(m.ttl)) {
		p := deepCopyProfile(m.cached)
		m.mu.RUnlock()
		return p, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock.
	if m.cached != nil && m.clock.Now().Before(m.cachedAt.Add(m.ttl)) {
		return deepCopyProfile(m.cached), nil
	}

	p, err := m.source.Load()
	if err != nil {
		return Profile{}, fmt.Errorf("loading profile: %w", err)
	}
	m.cached = &p
	m.cachedAt = m.clock.Now()
	return deepCopyProfile(&p), nil
}

// Invalidate drops the cached profile so the next read hits the source.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.cached = nil
	m.mu.Unlock()
}

// GetSummary returns a one-paragraph description of the profile, used as
// MCP server instructions.
func (m *Manager) GetSummary() (string, error) {
	p, err := m.GetProfile()
	if err != nil {
		return "", fmt.Errorf("getting profile for summary: %w", err)
	}
	return summarize(p), nil
}

func summarize(p Profile) string {
	var parts []string
	if name := p.FullName(); name != "" {
		if p.Headline != "" {
			parts = append(parts, fmt.Sprintf("Résumé of %s (%s).", name, p.Headline))
		} else {
			parts = append(parts, fmt.Sprintf("Résumé of %s.", name))
		}
	}
	if n := len(p.Positions); n > 0 {
		latest := p.Positions[0]
		parts = append(parts, fmt.Sprintf("%d positions, most recent at %s.", n, latest.CompanyName))
	}
	if len(p.Skills) > 0 {
		names := make([]string, len(p.Skills))
		for i, s := range p.Skills {
			names[i] = s.Name
		}
		parts = append(parts, fmt.Sprintf("Skills: %s.", strings.Join(names, ", ")))
	}
	if n := len(p.Projects); n > 0 {
		parts = append(parts, fmt.Sprintf("%d featured projects.", n))
	}
	if len(parts) == 0 {
		return "Profile: not yet configured."
	}
	return strings.Join(parts, " ")
}

func deepCopyProfile(p *Profile) Profile {
	if p == nil {
		return Profile{}
	}
	cp := *p

	if p.Positions != nil {
		cp.Positions = make([]Position, len(p.Positions))
		copy(cp.Positions, p.Positions)
	}
	if p.Skills != nil {
		cp.Skills = make([]Skill, len(p.Skills))
		copy(cp.Skills, p.Skills)
	}
	if p.Educations != nil {
		cp.Educations = make([]Education, len(p.Educations))
		copy(cp.Educations, p.Educations)
	}
	if p.Certifications != nil {
		cp.Certifications = make([]Certification, len(p.Certifications))
		copy(cp.Certifications, p.Certifications)
	}
	if p.Projects != nil {
		cp.Projects = make([]Project, len(p.Projects))
		for i, proj := range p.Projects {
			cp.Projects[i] = proj
			if proj.Techs != nil {
				cp.Projects[i].Techs = make([]string, len(proj.Techs))
				copy(cp.Projects[i].Techs, proj.Techs)
			}
		}
	}
	return cp
}
