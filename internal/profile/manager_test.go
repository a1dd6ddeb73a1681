package profile

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// --- Mock source ---

type mockSource struct {
	mu      sync.Mutex
	profile Profile
	err     error

	loadCalls int
}

func (m *mockSource) Load() (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls++
	if m.err != nil {
		return Profile{}, m.err
	}
	return deepCopyProfile(&m.profile), nil
}

func (m *mockSource) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// --- Mock clock ---

type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// --- Tests ---

func testProfile() Profile {
	return Profile{
		FirstName: "Ana",
		LastName:  "Souza",
		Headline:  "Backend Engineer",
		Positions: []Position{{Title: "Engineer", CompanyName: "Acme"}},
		Skills:    []Skill{{Name: "Go"}, {Name: "SQL"}},
		Projects:  []Project{{Name: "Tool", Techs: []string{"Go"}}},
	}
}

func TestGetProfile_Empty(t *testing.T) {
	mgr := NewManager(&mockSource{})

	p, err := mgr.GetProfile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FullName() != "" {
		t.Errorf("expected empty name, got %q", p.FullName())
	}
	if len(p.Positions) != 0 {
		t.Errorf("expected no positions, got %v", p.Positions)
	}
}

func TestGetProfile_SourceError(t *testing.T) {
	boom := errors.New("disk on fire")
	mgr := NewManager(&mockSource{err: boom})

	_, err := mgr.GetProfile()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestGetProfile_ReturnsCopy(t *testing.T) {
	mgr := NewManager(&mockSource{profile: testProfile()})

	p1, err := mgr.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	p1.Positions[0].Title = "mutated"
	p1.Projects[0].Techs[0] = "mutated"

	p2, err := mgr.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p2.Positions[0].Title != "Engineer" {
		t.Errorf("cached position mutated: %q", p2.Positions[0].Title)
	}
	if p2.Projects[0].Techs[0] != "Go" {
		t.Errorf("cached techs mutated: %q", p2.Projects[0].Techs[0])
	}
}

func TestGetSummary_Empty(t *testing.T) {
	mgr := NewManager(&mockSource{})

	summary, err := mgr.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary error: %v", err)
	}
	if summary == "" {
		t.Error("expected non-empty summary for empty profile")
	}
}

func TestGetSummary_Full(t *testing.T) {
	mgr := NewManager(&mockSource{profile: testProfile()})

	summary, err := mgr.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary error: %v", err)
	}
	for _, want := range []string{"Ana Souza", "Backend Engineer", "Acme", "Go, SQL", "1 featured projects"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q: %s", want, summary)
		}
	}
}

func TestCacheTTL(t *testing.T) {
	src := &mockSource{profile: testProfile()}
	clock := &mockClock{now: time.Now()}
	mgr := NewManagerWithClock(src, clock, 60*time.Second)

	mgr.GetProfile()
	mgr.GetProfile()

	if calls := src.calls(); calls != 1 {
		t.Errorf("expected 1 source call (cache hit on second), got %d", calls)
	}
}

func TestCacheExpiry(t *testing.T) {
	src := &mockSource{profile: testProfile()}
	clock := &mockClock{now: time.Now()}
	ttl := 60 * time.Second
	mgr := NewManagerWithClock(src, clock, ttl)

	mgr.GetProfile()

	// Advance past TTL
	clock.Advance(ttl + time.Second)

	mgr.GetProfile()

	if calls := src.calls(); calls != 2 {
		t.Errorf("expected 2 source calls (cache expired), got %d", calls)
	}
}

func TestInvalidate(t *testing.T) {
	src := &mockSource{profile: testProfile()}
	mgr := NewManager(src)

	mgr.GetProfile()
	mgr.Invalidate()
	mgr.GetProfile()

	if calls := src.calls(); calls != 2 {
		t.Errorf("expected 2 source calls after invalidate, got %d", calls)
	}
}

func TestConcurrentGetProfile(t *testing.T) {
	src := &mockSource{profile: testProfile()}
	mgr := NewManager(src)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := mgr.GetProfile(); err != nil {
				t.Errorf("GetProfile error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls := src.calls(); calls != 1 {
		t.Errorf("expected a single source load, got %d", calls)
	}
}
