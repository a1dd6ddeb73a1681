package resume

import (
	"github.com/kalambet/folio/internal/i18n"
	"github.com/kalambet/folio/internal/profile"
)

const (
	keySummary        = "data.summary"
	keyPositionPrefix = "data.positions."
	keyProjectPrefix  = "data.featuredProjects."
	keySectionPrefix  = "resume.sections."
)

// Collector builds Documents. CompanyKeys and ProjectKeys map source names to
// the stable identities used in translation keys; entries without a mapping
// (and without an explicit key) pass through untranslated.
type Collector struct {
	CompanyKeys map[string]string
	ProjectKeys map[string]string
}

// NewCollector returns a Collector using the bundled key maps.
func NewCollector() *Collector {
	return &Collector{
		CompanyKeys: profile.DefaultCompanyKeys,
		ProjectKeys: profile.DefaultProjectKeys,
	}
}

// Collect produces a Document for locale from p. It is deterministic: the
// same inputs always yield structurally equal Documents. Every output list has
// the same length and order as its source list.
func (c *Collector) Collect(locale string, p profile.Profile, lookup i18n.Lookup) Document {
	if lookup == nil {
		lookup = i18n.Empty
	}
	doc := Document{
		Locale:   locale,
		Name:     p.FullName(),
		Headline: p.Headline,
		Summary:  i18n.Text(lookup, keySummary, ""),
		Contact: Contact{
			Location: p.Geo.Full,
			Email:    p.Email,
			LinkedIn: linkedInURL(p.Username),
			GitHub:   p.GitHubURL,
		},
		Experience:     make([]Experience, len(p.Positions)),
		Skills:         make([]string, len(p.Skills)),
		Education:      make([]Education, len(p.Educations)),
		Certifications: make([]Certification, len(p.Certifications)),
		Projects:       make([]Project, len(p.Projects)),
		SectionTitles:  sectionTitles(lookup),
	}

	for i, pos := range p.Positions {
		doc.Experience[i] = c.experience(pos, lookup)
	}
	for i, s := range p.Skills {
		doc.Skills[i] = s.Name
	}
	for i, edu := range p.Educations {
		doc.Education[i] = Education{
			Institution:  edu.SchoolName,
			Degree:       edu.Degree,
			FieldOfStudy: edu.FieldOfStudy,
			StartYear:    edu.Start.Year,
			EndYear:      edu.End.Year,
			Grade:        edu.Grade,
		}
	}
	for i, cert := range p.Certifications {
		doc.Certifications[i] = Certification{
			Name:      cert.Name,
			Authority: cert.Authority,
			Date:      FormatDate(cert.Start.Year, cert.Start.Month, lookup),
		}
	}
	for i, proj := range p.Projects {
		doc.Projects[i] = c.project(proj, lookup)
	}
	return doc
}

func (c *Collector) experience(pos profile.Position, lookup i18n.Lookup) Experience {
	title := pos.Title
	description := ParseDescription(pos.Description)

	if key, ok := profile.CompanyKey(pos, c.CompanyKeys); ok {
		if v, ok := lookup.Lookup(keyPositionPrefix + key + ".title"); ok {
			title = v
		}
		if v, ok := lookup.Lookup(keyPositionPrefix + key + ".description"); ok {
			description = ParseDescription(v)
		}
	}

	employmentType := pos.EmploymentType
	if pos.EmploymentType != "" {
		employmentType = i18n.Text(lookup, keyEmploymentType+pos.EmploymentType, pos.EmploymentType)
	}

	return Experience{
		Title:          title,
		Company:        pos.CompanyName,
		Location:       pos.Location,
		StartDate:      FormatDate(pos.Start.Year, pos.Start.Month, lookup),
		EndDate:        FormatDate(pos.End.Year, pos.End.Month, lookup),
		EmploymentType: employmentType,
		Description:    description,
	}
}

func (c *Collector) project(proj profile.Project, lookup i18n.Lookup) Project {
	out := Project{
		Name:        proj.Name,
		Description: proj.Description,
		Techs:       append([]string(nil), proj.Techs...),
	}
	if key, ok := profile.ProjectKey(proj, c.ProjectKeys); ok {
		if v, ok := lookup.Lookup(keyProjectPrefix + key + ".name"); ok {
			out.Name = v
		}
		if v, ok := lookup.Lookup(keyProjectPrefix + key + ".description"); ok {
			out.Description = v
		}
	}
	return out
}

// sectionTitles resolves the six headings. Missing or blank headings fall back
// to the English default individually; nil means none resolved at all.
func sectionTitles(lookup i18n.Lookup) *SectionTitles {
	titles := DefaultSectionTitles()
	resolved := false
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"summary", &titles.Summary},
		{"experience", &titles.Experience},
		{"skills", &titles.Skills},
		{"education", &titles.Education},
		{"certifications", &titles.Certifications},
		{"projects", &titles.Projects},
	} {
		if v, ok := lookup.Lookup(keySectionPrefix + f.key); ok && v != "" {
			*f.dst = v
			resolved = true
		}
	}
	if !resolved {
		return nil
	}
	return &titles
}

func linkedInURL(username string) string {
	if username == "" {
		return ""
	}
	return "https://linkedin.com/in/" + username
}
