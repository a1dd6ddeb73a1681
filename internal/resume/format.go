package resume

import (
	"strconv"
	"strings"

	"github.com/kalambet/folio/internal/i18n"
)

const (
	keyPresent        = "resume.present"
	keyMonthPrefix    = "experience.months."
	keyEmploymentType = "experience.employmentType."
)

var englishMonths = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatDate renders a year/month pair as "<month abbreviation> <year>".
// Year 0 is the ongoing sentinel and renders the localized "present" label
// whatever the month. A month outside 1..12 renders the year alone.
func FormatDate(year, month int, lookup i18n.Lookup) string {
	if year == 0 {
		return i18n.Text(lookup, keyPresent, "Present")
	}
	y := strconv.Itoa(year)
	if month < 1 || month > 12 {
		return y
	}
	abbr := i18n.Text(lookup, keyMonthPrefix+strconv.Itoa(month-1), englishMonths[month-1])
	return abbr + " " + y
}

// FormatContactLine joins the non-empty contact fields with " | " in the
// order location, email, LinkedIn, GitHub.
func FormatContactLine(c Contact) string {
	parts := make([]string, 0, 4)
	for _, v := range [...]string{c.Location, c.Email, c.LinkedIn, c.GitHub} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

// ParseDescription splits a free-text block into bullet strings. Only the
// "- " marker is stripped; lines that end up empty are dropped.
func ParseDescription(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// JoinSkills renders the skills block.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}
