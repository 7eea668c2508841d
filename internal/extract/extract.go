// Package extract pulls structured profile data out of plain résumé text.
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/spigell/resumelyze/internal/lexical"
	"github.com/spigell/resumelyze/internal/sections"
)

const (
	contactWindow     = 2000
	maxSkills         = 40
	maxEntries        = 10
	maxEducation      = 5
	maxListItems      = 10
	summarySentences  = 3
	maxNameLength     = 50
	maxHeadlineLength = 80
)

// Profile is the structured form of a résumé.
type Profile struct {
	FullName       string      `json:"full_name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Location       string      `json:"location"`
	LinkedInURL    string      `json:"linkedin_url"`
	Headline       string      `json:"headline"`
	Skills         []string    `json:"skills"`
	Experience     []Entry     `json:"experience"`
	Projects       []Entry     `json:"projects"`
	Education      []Education `json:"education"`
	Certifications []string    `json:"certifications"`
	Languages      []string    `json:"languages"`
	Summary        string      `json:"summary"`
}

// Entry is one job or project.
type Entry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is one degree or school.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	GPA         string `json:"gpa"`
}

// Extractor builds profiles. The zero value is not usable; use New.
type Extractor struct {
	newID func() string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithIDs replaces the entry ID generator.
func WithIDs(f func() string) Option {
	return func(e *Extractor) { e.newID = f }
}

// New creates an extractor that labels entries with short random IDs.
func New(opts ...Option) *Extractor {
	e := &Extractor{newID: shortID}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Extract parses text into a profile.
func (e *Extractor) Extract(text string) *Profile {
	secs := sections.Segment(text)
	header := secs.Get(sections.Header)
	window := text
	if len(window) > contactWindow {
		window = window[:contactWindow]
	}

	p := &Profile{
		FullName:       extractName(header),
		Email:          lexical.FindEmail(window),
		Phone:          lexical.FindPhone(header),
		Location:       extractLocation(header),
		LinkedInURL:    linkedInURL(lexical.FindLinkedIn(window)),
		Headline:       extractHeadline(header, secs.Get(sections.Experience)),
		Skills:         extractSkills(secs.Get(sections.Skills), text),
		Experience:     e.parseEntries(secs.Get(sections.Experience)),
		Projects:       e.parseEntries(secs.Get(sections.Projects)),
		Education:      e.parseEducation(secs.Get(sections.Education)),
		Certifications: extractCertifications(secs.Get(sections.Certifications)),
		Languages:      extractLanguages(secs.Get(sections.Languages)),
	}
	p.Summary = buildSummary(secs, p.FullName, p.Headline)
	return p
}

func linkedInURL(found string) string {
	if found == "" || strings.HasPrefix(found, "http") {
		return found
	}
	return "https://" + found
}

var (
	contactLine    = regexp.MustCompile(`(?i)@|http|linkedin|github|\d{5,}|[+]?\d[\d\s\-()]{6,}`)
	headlineNoise  = regexp.MustCompile(`(?i)@|http|linkedin|github|\d{5,}`)
	phoneOnly      = regexp.MustCompile(`^[+\d\s\-()]+$`)
	locationNoise  = regexp.MustCompile(`(?i)\d{4}|@|http|linkedin|github`)
	yearLike       = regexp.MustCompile(`\d{4}`)
	locationRegexp = regexp.MustCompile(`[A-Z][a-zA-Z .'-]+,\s*[A-Z]{2}(?:\s+\d{5})?|[A-Z][a-zA-Z .'-]+,\s*[A-Z][a-z]{2,}|[A-Z][a-zA-Z .'-]+,\s*[A-Z][a-zA-Z .'-]+`)
)

var titleKeywords = []string{
	"developer", "engineer", "manager", "analyst", "designer",
	"architect", "consultant", "specialist", "intern", "lead",
	"director", "scientist", "coordinator", "officer", "student",
	"professional", "freelance", "full stack", "front end",
	"back end", "full-stack", "front-end", "back-end", "devops",
	"administrator", "technician", "researcher", "professor",
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// extractName picks the first short header line that reads like a personal name.
func extractName(header string) string {
	checked := 0
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if checked++; checked > 4 {
			break
		}
		if utf8.RuneCountInString(line) > maxNameLength || contactLine.MatchString(line) {
			continue
		}
		if containsAny(strings.ToLower(line), titleKeywords) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 5 {
			continue
		}
		if capitalizedWords(words) {
			return line
		}
	}
	return ""
}

// capitalizedWords reports whether every purely alphabetic word starts upper case.
func capitalizedWords(words []string) bool {
	for _, w := range words {
		alpha := true
		for _, r := range w {
			if !unicode.IsLetter(r) {
				alpha = false
				break
			}
		}
		if !alpha {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(w); !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func extractLocation(header string) string {
	for _, candidate := range locationRegexp.FindAllString(header, -1) {
		candidate = strings.TrimSpace(candidate)
		if locationNoise.MatchString(candidate) {
			continue
		}
		if utf8.RuneCountInString(candidate) > 5 {
			return candidate
		}
	}
	return ""
}

// extractHeadline prefers a descriptive header line and falls back to the
// first dateless line of the experience section.
func extractHeadline(header, experience string) string {
	lines := strings.Split(header, "\n")
	for i := 1; i < len(lines) && i < 5; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || utf8.RuneCountInString(line) > maxHeadlineLength {
			continue
		}
		if headlineNoise.MatchString(line) || phoneOnly.MatchString(line) {
			continue
		}
		if loc := locationRegexp.FindStringIndex(line); loc != nil && loc[0] == 0 {
			continue
		}
		if n := len(strings.Fields(line)); n >= 2 && n <= 10 {
			return line
		}
	}

	if experience == "" {
		return ""
	}
	lines = strings.Split(experience, "\n")
	for i := 0; i < len(lines) && i < 5; i++ {
		line := strings.TrimSpace(lines[i])
		if line != "" && utf8.RuneCountInString(line) < 60 && !yearLike.MatchString(line) {
			return line
		}
	}
	return ""
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// firstSentences returns the first n sentences of text joined by spaces.
func firstSentences(text string, n int) string {
	text = strings.TrimSpace(text)
	var out []string
	for len(out) < n && text != "" {
		loc := sentenceEnd.FindStringIndex(text)
		if loc == nil {
			out = append(out, text)
			break
		}
		out = append(out, strings.TrimRightFunc(text[:loc[1]], unicode.IsSpace))
		text = text[loc[1]:]
	}
	return strings.Join(out, " ")
}

func buildSummary(secs *sections.Map, name, headline string) string {
	if summary := secs.Get(sections.Summary); summary != "" {
		return firstSentences(summary, summarySentences)
	}

	var parts []string
	if name != "" {
		parts = append(parts, name)
	}
	if headline != "" {
		parts = append(parts, "is a "+headline)
	}
	for _, line := range strings.Split(secs.Get(sections.Experience), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, "with experience including "+line)
			break
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
