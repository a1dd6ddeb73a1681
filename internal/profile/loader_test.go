package profile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSample(t *testing.T) {
	p, err := Sample()
	if err != nil {
		t.Fatalf("Sample error: %v", err)
	}
	if p.FullName() != "Marina Duarte Alves" {
		t.Errorf("name = %q", p.FullName())
	}
	if len(p.Positions) != 5 {
		t.Errorf("expected 5 positions, got %d", len(p.Positions))
	}
	if len(p.Projects) != 4 {
		t.Errorf("expected 4 projects, got %d", len(p.Projects))
	}
	if !p.Positions[0].End.Ongoing() {
		t.Error("expected first position to be ongoing")
	}
	for _, pos := range p.Positions {
		if _, ok := CompanyKey(pos, DefaultCompanyKeys); !ok {
			t.Errorf("no company key for %q", pos.CompanyName)
		}
	}
	for _, proj := range p.Projects {
		if _, ok := ProjectKey(proj, DefaultProjectKeys); !ok {
			t.Errorf("no project key for %q", proj.Name)
		}
	}
}

const jsonProfile = `{
  "firstName": "Ana",
  "lastName": "Souza",
  "geo": {"full": "Recife, Brazil"},
  "position": [
    {"title": "Engineer", "companyName": "Acme", "start": {"year": 2020, "month": 1}, "end": {"year": 0, "month": 0}, "employmentType": "Full-time", "description": "- one\n- two"}
  ],
  "skills": [{"name": "Go"}],
  "featuredProjects": [{"key": "tool", "name": "Tool", "description": "d", "techs": ["Go"]}]
}`

const yamlProfile = `
firstName: Ana
lastName: Souza
geo:
  full: Recife, Brazil
position:
  - title: Engineer
    companyName: Acme
    start: {year: 2020, month: 1}
    end: {year: 0, month: 0}
    employmentType: Full-time
    description: "- one\n- two"
skills:
  - name: Go
featuredProjects:
  - key: tool
    name: Tool
    description: d
    techs: [Go]
`

func TestParse_JSONAndYAMLEquivalent(t *testing.T) {
	fromJSON, err := Parse([]byte(jsonProfile), ".json")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	fromYAML, err := Parse([]byte(yamlProfile), ".yaml")
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !reflect.DeepEqual(fromJSON, fromYAML) {
		t.Errorf("profiles differ:\njson: %+v\nyaml: %+v", fromJSON, fromYAML)
	}
	if fromJSON.Projects[0].Key != "tool" {
		t.Errorf("explicit key lost: %+v", fromJSON.Projects[0])
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`{"firstName": "Ana", "nickname": "x"}`), ".json")
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("a = 1"), ".toml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.yml")
	projectsPath := filepath.Join(dir, "projects.json")
	if err := os.WriteFile(profilePath, []byte(yamlProfile), 0o644); err != nil {
		t.Fatal(err)
	}
	projects := `[{"name": "Other", "description": "x", "techs": []}]`
	if err := os.WriteFile(projectsPath, []byte(projects), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := FileSource{ProfilePath: profilePath}.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(p.Projects) != 1 || p.Projects[0].Name != "Tool" {
		t.Errorf("expected inline projects, got %+v", p.Projects)
	}

	p, err = FileSource{ProfilePath: profilePath, ProjectsPath: projectsPath}.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(p.Projects) != 1 || p.Projects[0].Name != "Other" {
		t.Errorf("expected projects file to win, got %+v", p.Projects)
	}
}

func TestFileSource_DefaultsToSample(t *testing.T) {
	p, err := FileSource{}.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if p.FirstName != "Marina" {
		t.Errorf("expected bundled sample, got %q", p.FirstName)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestCompanyKey_ExplicitWins(t *testing.T) {
	keys := map[string]string{"Acme": "acme"}
	if k, ok := CompanyKey(Position{CompanyName: "Acme", Key: "custom"}, keys); !ok || k != "custom" {
		t.Errorf("got %q, %v", k, ok)
	}
	if k, ok := CompanyKey(Position{CompanyName: "Acme"}, keys); !ok || k != "acme" {
		t.Errorf("got %q, %v", k, ok)
	}
	if _, ok := CompanyKey(Position{CompanyName: "Unknown"}, keys); ok {
		t.Error("expected no key for unknown company")
	}
}
