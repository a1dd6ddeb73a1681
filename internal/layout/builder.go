// Package layout renders a résumé Document into a paginated PDF with a hard
// two-page cap.
package layout

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/kalambet/folio/internal/resume"
)

const (
	maxPages           = 2
	sectionSpacing     = 10.0
	itemSpacing        = 5.0
	lineHeightFactor   = 1.4
	ptPerMM            = 2.835
	separatorThickness = 0.5
	separatorGap       = 4.0
	headerGap          = 2.0
	titleExtra         = 6.0
	bulletIndent       = 4.0

	fontFamily  = "Helvetica"
	styleBold   = "B"
	styleItalic = "I"
	styleNormal = ""

	bulletPrefix       = "•  "
	continuationPrefix = "   "
)

// Build lays doc out according to cfg. Content that does not fit within two
// pages is dropped silently; only invalid configuration or a failure inside
// the PDF writer produce an error.
func Build(doc resume.Document, cfg Config) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := newEngine(cfg)
	e.pdf.SetTitle(doc.Name, true)
	e.pdf.SetAuthor(doc.Name, true)
	e.pdf.SetCreator("folio", false)

	e.header(doc)
	e.summary(doc)
	e.experience(doc)
	e.skills(doc)
	e.education(doc)
	e.certifications(doc)
	e.projects(doc)

	pages := e.pdf.PageCount()
	var buf bytes.Buffer
	if err := e.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return &Document{data: buf.Bytes(), pages: pages}, nil
}

// engine owns the PDF writer and the vertical cursor. Each block is placed at
// the cursor, which then advances by the block height.
type engine struct {
	pdf          *gofpdf.Fpdf
	cfg          Config
	accent       RGB
	tr           func(string) string
	contentWidth float64
	maxY         float64
	y            float64
}

func newEngine(cfg Config) *engine {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	pdf.SetMargins(cfg.Margins.Left, cfg.Margins.Top, cfg.Margins.Right)
	pdf.SetAutoPageBreak(false, cfg.Margins.Bottom)
	pdf.AddPage()
	pdf.SetFont(fontFamily, styleNormal, cfg.FontSizes.Body)

	accent, _ := ParseColor(cfg.AccentColor) // validated by Build
	return &engine{
		pdf:          pdf,
		cfg:          cfg,
		accent:       accent,
		tr:           pdf.UnicodeTranslatorFromDescriptor(""),
		contentWidth: cfg.ContentWidth(),
		maxY:         cfg.PageHeight - cfg.Margins.Bottom,
		y:            cfg.Margins.Top,
	}
}

func lineHeight(size float64) float64 {
	return size * lineHeightFactor / ptPerMM
}

// ensure reports whether a block of height h can be placed, starting a new
// page when the current one is full. It returns false once the page cap is
// reached.
func (e *engine) ensure(h float64) bool {
	if e.y+h <= e.maxY {
		return true
	}
	if e.pdf.PageCount() >= maxPages {
		return false
	}
	e.pdf.AddPage()
	e.y = e.cfg.Margins.Top
	return true
}

func (e *engine) font(style string, size float64) {
	e.pdf.SetFont(fontFamily, style, size)
}

// The draw helpers take text already translated to the core font code page.

func (e *engine) textLeft(s string, x float64) {
	e.pdf.Text(x, e.y, s)
}

func (e *engine) textRight(s string) {
	x := e.cfg.PageWidth - e.cfg.Margins.Right - e.pdf.GetStringWidth(s)
	e.pdf.Text(x, e.y, s)
}

func (e *engine) textCenter(s string) {
	x := e.cfg.PageWidth/2 - e.pdf.GetStringWidth(s)/2
	e.pdf.Text(x, e.y, s)
}

// line draws a single unwrapped line after checking it fits.
func (e *engine) line(s string, style string, size float64) bool {
	h := lineHeight(e.cfg.FontSizes.Body)
	if !e.ensure(h) {
		return false
	}
	e.font(style, size)
	e.textLeft(e.tr(s), e.cfg.Margins.Left)
	e.y += lineHeight(size)
	return true
}

// paragraph wraps text to the content width and places it line by line.
func (e *engine) paragraph(text string, style string, size float64) bool {
	e.font(style, size)
	h := lineHeight(size)
	for _, l := range e.wrap(e.tr(text), e.contentWidth) {
		if !e.ensure(h) {
			return false
		}
		e.textLeft(l, e.cfg.Margins.Left)
		e.y += h
	}
	return true
}

// wrap breaks s into lines no wider than width using the current font. It
// honours explicit newlines, breaks on spaces and splits words that are wider
// than a full line. Empty input yields one empty line.
func (e *engine) wrap(s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.FieldsFunc(para, isBreak)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for _, w := range words {
			candidate := w
			if cur != "" {
				candidate = cur + " " + w
			}
			if e.pdf.GetStringWidth(candidate) <= width {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			for e.pdf.GetStringWidth(w) > width {
				n := e.fitPrefix(w, width)
				lines = append(lines, w[:n])
				w = w[n:]
			}
			cur = w
		}
		lines = append(lines, cur)
	}
	return lines
}

// isBreak matches only ASCII blanks; the text is single-byte encoded and must
// not be decoded as UTF-8 looking for other spaces.
func isBreak(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

// fitPrefix returns the length of the longest prefix of s that fits in width,
// and at least 1 so wrapping always makes progress. s is single-byte encoded.
func (e *engine) fitPrefix(s string, width float64) int {
	n := 1
	for n < len(s) && e.pdf.GetStringWidth(s[:n+1]) <= width {
		n++
	}
	return n
}

func (e *engine) separator() {
	e.pdf.SetDrawColor(e.accent.R, e.accent.G, e.accent.B)
	e.pdf.SetLineWidth(separatorThickness)
	e.pdf.Line(e.cfg.Margins.Left, e.y, e.cfg.PageWidth-e.cfg.Margins.Right, e.y)
	e.y += separatorGap
}

// sectionTitle draws an accent-coloured heading followed by a rule.
func (e *engine) sectionTitle(title string) bool {
	h := lineHeight(e.cfg.FontSizes.SectionTitle)
	if !e.ensure(h + titleExtra) {
		return false
	}
	e.font(styleBold, e.cfg.FontSizes.SectionTitle)
	e.pdf.SetTextColor(e.accent.R, e.accent.G, e.accent.B)
	e.textLeft(e.tr(title), e.cfg.Margins.Left)
	e.y += h
	e.separator()

	e.pdf.SetTextColor(0, 0, 0)
	e.font(styleNormal, e.cfg.FontSizes.Body)
	return true
}

func titles(doc resume.Document) resume.SectionTitles {
	if doc.SectionTitles != nil {
		return *doc.SectionTitles
	}
	return resume.DefaultSectionTitles()
}

func (e *engine) header(doc resume.Document) {
	e.pdf.SetTextColor(0, 0, 0)
	e.font(styleBold, e.cfg.FontSizes.Name)
	e.textCenter(e.tr(doc.Name))
	e.y += lineHeight(e.cfg.FontSizes.Name)

	e.font(styleNormal, e.cfg.FontSizes.Small)
	h := lineHeight(e.cfg.FontSizes.Small)
	for _, l := range e.wrap(e.tr(resume.FormatContactLine(doc.Contact)), e.contentWidth) {
		e.textCenter(l)
		e.y += h
	}
	e.y += headerGap
}

func (e *engine) summary(doc resume.Document) bool {
	if doc.Summary == "" {
		return true
	}
	if !e.sectionTitle(titles(doc).Summary) {
		return false
	}
	if !e.paragraph(doc.Summary, styleNormal, e.cfg.FontSizes.Body) {
		return false
	}
	e.y += sectionSpacing
	return true
}

func (e *engine) experience(doc resume.Document) bool {
	if len(doc.Experience) == 0 {
		return true
	}
	if !e.sectionTitle(titles(doc).Experience) {
		return false
	}
	body := e.cfg.FontSizes.Body
	h := lineHeight(body)
	for i, entry := range doc.Experience {
		if !e.ensure(h) {
			return false
		}
		e.pdf.SetTextColor(0, 0, 0)
		e.font(styleBold, body)
		e.textLeft(e.tr(entry.Title), e.cfg.Margins.Left)
		e.font(styleNormal, body)
		e.textRight(e.tr(entry.StartDate + " - " + entry.EndDate))
		e.y += h

		if !e.line(entry.Company, styleNormal, body) {
			return false
		}
		if entry.EmploymentType != "" {
			if !e.line(entry.EmploymentType, styleNormal, e.cfg.FontSizes.Small) {
				return false
			}
		}

		x := e.cfg.Margins.Left + bulletIndent
		for _, item := range entry.Description {
			e.font(styleNormal, body)
			for j, l := range e.wrap(e.tr(item), e.contentWidth-bulletIndent) {
				if !e.ensure(h) {
					return false
				}
				prefix := continuationPrefix
				if j == 0 {
					prefix = bulletPrefix
				}
				e.textLeft(e.tr(prefix)+l, x)
				e.y += h
			}
		}

		if i < len(doc.Experience)-1 {
			e.y += itemSpacing
		}
	}
	e.y += sectionSpacing
	return true
}

func (e *engine) skills(doc resume.Document) bool {
	if len(doc.Skills) == 0 {
		return true
	}
	if !e.sectionTitle(titles(doc).Skills) {
		return false
	}
	if !e.paragraph(resume.JoinSkills(doc.Skills), styleNormal, e.cfg.FontSizes.Body) {
		return false
	}
	e.y += sectionSpacing
	return true
}

func (e *engine) education(doc resume.Document) bool {
	if len(doc.Education) == 0 {
		return true
	}
	if !e.sectionTitle(titles(doc).Education) {
		return false
	}
	body := e.cfg.FontSizes.Body
	h := lineHeight(body)
	for i, entry := range doc.Education {
		e.pdf.SetTextColor(0, 0, 0)
		if !e.line(entry.Institution, styleBold, body) {
			return false
		}

		if !e.ensure(h) {
			return false
		}
		e.font(styleNormal, body)
		e.textLeft(e.tr(entry.Degree+" — "+entry.FieldOfStudy), e.cfg.Margins.Left)
		e.textRight(strconv.Itoa(entry.StartYear) + " - " + strconv.Itoa(entry.EndYear))
		e.y += h

		if entry.Grade != "" {
			if !e.line(entry.Grade, styleNormal, e.cfg.FontSizes.Small) {
				return false
			}
		}

		if i < len(doc.Education)-1 {
			e.y += itemSpacing
		}
	}
	e.y += sectionSpacing
	return true
}

func (e *engine) certifications(doc resume.Document) bool {
	if len(doc.Certifications) == 0 {
		return true
	}
	if !e.sectionTitle(titles(doc).Certifications) {
		return false
	}
	body := e.cfg.FontSizes.Body
	for i, entry := range doc.Certifications {
		e.pdf.SetTextColor(0, 0, 0)
		if !e.line(entry.Name, styleBold, body) {
			return false
		}
		if !e.line(entry.Authority+" — "+entry.Date, styleNormal, body) {
			return false
		}
		if i < len(doc.Certifications)-1 {
			e.y += itemSpacing
		}
	}
	e.y += sectionSpacing
	return true
}

// projects is the last section, so no trailing section spacing follows it.
func (e *engine) projects(doc resume.Document) bool {
	if len(doc.Projects) == 0 {
		return true
	}
	if !e.sectionTitle(titles(doc).Projects) {
		return false
	}
	body := e.cfg.FontSizes.Body
	for i, entry := range doc.Projects {
		e.pdf.SetTextColor(0, 0, 0)
		if !e.line(entry.Name, styleBold, body) {
			return false
		}
		if !e.paragraph(entry.Description, styleNormal, body) {
			return false
		}
		if len(entry.Techs) > 0 {
			if !e.line(strings.Join(entry.Techs, ", "), styleItalic, e.cfg.FontSizes.Small) {
				return false
			}
		}
		if i < len(doc.Projects)-1 {
			e.y += itemSpacing
		}
	}
	return true
}
