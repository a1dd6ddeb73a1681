// Package resume turns a Profile into the locale-resolved Document the
// layout package renders.
package resume

// Document is the layout-agnostic, locale-resolved résumé content. It is
// built fresh for every export and never mutated afterwards.
type Document struct {
	Locale         string          `json:"locale"`
	Name           string          `json:"name"`
	Headline       string          `json:"headline"`
	Summary        string          `json:"summary"`
	Contact        Contact         `json:"contact"`
	Experience     []Experience    `json:"experience"`
	Skills         []string        `json:"skills"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	SectionTitles  *SectionTitles  `json:"sectionTitles,omitempty"`
}

// Contact fields are either non-empty or "".
type Contact struct {
	Location string `json:"location"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type Experience struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	EmploymentType string   `json:"employmentType"`
	Description    []string `json:"description"`
}

type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear"`
	EndYear      int    `json:"endYear"`
	Grade        string `json:"grade,omitempty"`
}

type Certification struct {
	Name      string `json:"name"`
	Authority string `json:"authority"`
	Date      string `json:"date"`
}

type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Techs       []string `json:"techs"`
}

// SectionTitles are the localized section headings. A nil *SectionTitles on a
// Document means the built-in English headings apply.
type SectionTitles struct {
	Summary        string `json:"summary"`
	Experience     string `json:"experience"`
	Skills         string `json:"skills"`
	Education      string `json:"education"`
	Certifications string `json:"certifications"`
	Projects       string `json:"projects"`
}

// DefaultSectionTitles returns the built-in English headings.
func DefaultSectionTitles() SectionTitles {
	return SectionTitles{
		Summary:        "Professional Summary",
		Experience:     "Professional Experience",
		Skills:         "Technical Skills",
		Education:      "Education",
		Certifications: "Certifications",
		Projects:       "Featured Projects",
	}
}
