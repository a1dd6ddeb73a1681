package profile

// Profile is the static work-history dataset a résumé is generated from.
// It is read-only input: nothing downstream mutates a Profile it was handed.
type Profile struct {
	FirstName      string          `json:"firstName" yaml:"firstName"`
	LastName       string          `json:"lastName" yaml:"lastName"`
	Headline       string          `json:"headline" yaml:"headline"`
	Username       string          `json:"username" yaml:"username"` // LinkedIn handle
	Email          string          `json:"email" yaml:"email"`
	GitHubURL      string          `json:"githubUrl" yaml:"githubUrl"`
	Geo            Geo             `json:"geo" yaml:"geo"`
	Positions      []Position      `json:"position" yaml:"position"`
	Skills         []Skill         `json:"skills" yaml:"skills"`
	Educations     []Education     `json:"educations" yaml:"educations"`
	Certifications []Certification `json:"certifications" yaml:"certifications"`
	Projects       []Project       `json:"featuredProjects" yaml:"featuredProjects"`
}

// Geo holds the location the profile advertises.
type Geo struct {
	Full string `json:"full" yaml:"full"`
}

// YearMonth is a partial date. Year 0 marks an ongoing period.
type YearMonth struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"` // 1-indexed
}

// Ongoing reports whether the date denotes "present".
func (d YearMonth) Ongoing() bool { return d.Year == 0 }

// Position is a single work-history entry.
type Position struct {
	Key            string    `json:"key,omitempty" yaml:"key,omitempty"`
	Title          string    `json:"title" yaml:"title"`
	CompanyName    string    `json:"companyName" yaml:"companyName"`
	Location       string    `json:"location" yaml:"location"`
	Start          YearMonth `json:"start" yaml:"start"`
	End            YearMonth `json:"end" yaml:"end"`
	EmploymentType string    `json:"employmentType" yaml:"employmentType"`
	Description    string    `json:"description" yaml:"description"` // "- " prefixed lines
}

type Skill struct {
	Name string `json:"name" yaml:"name"`
}

type Education struct {
	SchoolName   string    `json:"schoolName" yaml:"schoolName"`
	Degree       string    `json:"degree" yaml:"degree"`
	FieldOfStudy string    `json:"fieldOfStudy" yaml:"fieldOfStudy"`
	Start        YearMonth `json:"start" yaml:"start"`
	End          YearMonth `json:"end" yaml:"end"`
	Grade        string    `json:"grade,omitempty" yaml:"grade,omitempty"`
}

type Certification struct {
	Name      string    `json:"name" yaml:"name"`
	Authority string    `json:"authority" yaml:"authority"`
	Start     YearMonth `json:"start" yaml:"start"`
}

// Project is a featured portfolio project.
type Project struct {
	Key         string   `json:"key,omitempty" yaml:"key,omitempty"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Techs       []string `json:"techs" yaml:"techs"`
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
