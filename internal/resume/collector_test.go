package resume

import (
	"reflect"
	"testing"

	"github.com/kalambet/folio/internal/i18n"
	"github.com/kalambet/folio/internal/profile"
)

func sample(t *testing.T) profile.Profile {
	t.Helper()
	p, err := profile.Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	return p
}

func TestCollect_Identity(t *testing.T) {
	doc := NewCollector().Collect("en", sample(t), bundledLookup(t, "en"))

	if doc.Name != "Marina Duarte Alves" {
		t.Errorf("name = %q", doc.Name)
	}
	if doc.Headline == "" {
		t.Error("empty headline")
	}
	if doc.Locale != "en" {
		t.Errorf("locale = %q", doc.Locale)
	}
	want := Contact{
		Location: "Brasília, Federal District, Brazil",
		Email:    "marina.alves.dev@example.com",
		LinkedIn: "https://linkedin.com/in/marinaduartealves",
		GitHub:   "https://github.com/marinaalves",
	}
	if doc.Contact != want {
		t.Errorf("contact = %+v", doc.Contact)
	}
}

func TestCollect_PreservesCardinality(t *testing.T) {
	p := sample(t)
	for _, locale := range []string{"en", "pt-BR"} {
		doc := NewCollector().Collect(locale, p, bundledLookup(t, locale))
		if len(doc.Experience) != len(p.Positions) {
			t.Errorf("%s: experience %d != %d", locale, len(doc.Experience), len(p.Positions))
		}
		if len(doc.Education) != len(p.Educations) {
			t.Errorf("%s: education %d != %d", locale, len(doc.Education), len(p.Educations))
		}
		if len(doc.Certifications) != len(p.Certifications) {
			t.Errorf("%s: certifications %d != %d", locale, len(doc.Certifications), len(p.Certifications))
		}
		if len(doc.Projects) != len(p.Projects) {
			t.Errorf("%s: projects %d != %d", locale, len(doc.Projects), len(p.Projects))
		}
		for i, pos := range p.Positions {
			if doc.Experience[i].Company != pos.CompanyName {
				t.Errorf("%s: order changed at %d", locale, i)
			}
		}
	}
}

func TestCollect_Translations(t *testing.T) {
	p := sample(t)

	en := NewCollector().Collect("en", p, bundledLookup(t, "en"))
	if en.Experience[0].Title != "Systems Analyst" {
		t.Errorf("en title = %q", en.Experience[0].Title)
	}
	if en.Experience[0].EndDate != "Present" {
		t.Errorf("en end date = %q", en.Experience[0].EndDate)
	}
	if en.Experience[0].StartDate != "Jun 2024" {
		t.Errorf("en start date = %q", en.Experience[0].StartDate)
	}
	if en.Experience[3].EmploymentType != "Part-time" {
		t.Errorf("en employment type = %q", en.Experience[3].EmploymentType)
	}
	if en.Projects[0].Name != "Medvia Calculators" {
		t.Errorf("en project name = %q", en.Projects[0].Name)
	}
	if en.SectionTitles == nil || en.SectionTitles.Skills != "Technical Skills" {
		t.Errorf("en section titles = %+v", en.SectionTitles)
	}
	if en.Certifications[0].Date != "Aug 2024" {
		t.Errorf("en cert date = %q", en.Certifications[0].Date)
	}

	pt := NewCollector().Collect("pt-BR", p, bundledLookup(t, "pt-BR"))
	if pt.Experience[0].EndDate != "Presente" {
		t.Errorf("pt end date = %q", pt.Experience[0].EndDate)
	}
	if pt.Experience[3].EmploymentType != "Meio período" {
		t.Errorf("pt employment type = %q", pt.Experience[3].EmploymentType)
	}
	if pt.Certifications[0].Date != "Ago 2024" {
		t.Errorf("pt cert date = %q", pt.Certifications[0].Date)
	}
	if pt.SectionTitles == nil || pt.SectionTitles.Experience != "Experiência Profissional" {
		t.Errorf("pt section titles = %+v", pt.SectionTitles)
	}
	if pt.Summary == "" || pt.Summary == en.Summary {
		t.Errorf("expected a distinct pt summary, got %q", pt.Summary)
	}
}

func TestCollect_FallbackToSource(t *testing.T) {
	p := profile.Profile{
		FirstName: "Ana",
		LastName:  "Souza",
		Positions: []profile.Position{
			{Title: "Mapped", CompanyName: "Acme", EmploymentType: "Full-time", Description: "- source bullet"},
			{Title: "Unmapped", CompanyName: "Nowhere", EmploymentType: "Seasonal", Description: "- kept"},
			{Key: "explicit", Title: "Explicit", CompanyName: "Other"},
		},
		Projects: []profile.Project{
			{Name: "Proj", Description: "source desc", Techs: []string{"Go"}},
			{Name: "Loose", Description: "loose desc"},
		},
	}
	lookup := i18n.Map{
		"data.positions.acme.title":              "Translated",
		"data.positions.acme.description":        "",
		"data.positions.explicit.title":          "Explicit Translated",
		"experience.employmentType.Full-time":    "Integral",
		"data.featuredProjects.proj.name":        "",
		"data.featuredProjects.proj.description": "translated desc",
	}
	c := &Collector{
		CompanyKeys: map[string]string{"Acme": "acme"},
		ProjectKeys: map[string]string{"Proj": "proj"},
	}
	doc := c.Collect("xx", p, lookup)

	if got := doc.Experience[0]; got.Title != "Translated" || len(got.Description) != 0 || got.EmploymentType != "Integral" {
		t.Errorf("mapped entry = %+v", got)
	}
	if got := doc.Experience[1]; got.Title != "Unmapped" || !reflect.DeepEqual(got.Description, []string{"kept"}) || got.EmploymentType != "Seasonal" {
		t.Errorf("unmapped entry = %+v", got)
	}
	if got := doc.Experience[2].Title; got != "Explicit Translated" {
		t.Errorf("explicit key entry title = %q", got)
	}
	// A found empty translation is used as is.
	if got := doc.Projects[0]; got.Name != "" || got.Description != "translated desc" {
		t.Errorf("project = %+v", got)
	}
	if got := doc.Projects[1]; got.Name != "Loose" || got.Description != "loose desc" {
		t.Errorf("unmapped project = %+v", got)
	}
	if doc.SectionTitles != nil {
		t.Errorf("expected nil section titles, got %+v", doc.SectionTitles)
	}
	if doc.Summary != "" {
		t.Errorf("expected empty summary, got %q", doc.Summary)
	}
}

func TestCollect_PartialSectionTitles(t *testing.T) {
	doc := NewCollector().Collect("xx", profile.Profile{}, i18n.Map{"resume.sections.skills": "Habilidades"})
	if doc.SectionTitles == nil {
		t.Fatal("expected section titles")
	}
	if doc.SectionTitles.Skills != "Habilidades" {
		t.Errorf("skills = %q", doc.SectionTitles.Skills)
	}
	if doc.SectionTitles.Education != "Education" {
		t.Errorf("education should fall back to English, got %q", doc.SectionTitles.Education)
	}
}

func TestCollect_EmptyProfile(t *testing.T) {
	doc := NewCollector().Collect("en", profile.Profile{}, nil)
	if doc.Contact != (Contact{}) {
		t.Errorf("expected empty contact, got %+v", doc.Contact)
	}
	if FormatContactLine(doc.Contact) != "" {
		t.Error("expected empty contact line")
	}
	if len(doc.Experience) != 0 || len(doc.Skills) != 0 {
		t.Errorf("expected empty lists, got %+v", doc)
	}
}

func TestCollect_Idempotent(t *testing.T) {
	p := sample(t)
	l := bundledLookup(t, "pt-BR")
	c := NewCollector()
	a := c.Collect("pt-BR", p, l)
	b := c.Collect("pt-BR", p, l)
	if !reflect.DeepEqual(a, b) {
		t.Error("two collections with identical inputs differ")
	}
}

func TestCollect_DoesNotAliasSource(t *testing.T) {
	p := sample(t)
	doc := NewCollector().Collect("en", p, bundledLookup(t, "en"))
	doc.Projects[0].Techs[0] = "mutated"
	if p.Projects[0].Techs[0] == "mutated" {
		t.Error("document shares tech slice with the profile")
	}
}
