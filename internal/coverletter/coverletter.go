// Package coverletter drafts a cover letter from a résumé and a job description.
package coverletter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/resumelyze/internal/lexical"
	"github.com/spigell/resumelyze/internal/sections"
)

// Tone selects the opening and closing of a letter.
type Tone string

const (
	Professional   Tone = "professional"
	Creative       Tone = "creative"
	Conversational Tone = "conversational"
)

const (
	DefaultCompany = "your company"
	DefaultRole    = "this position"

	keywordCount     = 15
	minHighlightText = 30
	minHighlightLine = 20
	maxHighlight     = 200
	minToolkit       = 3
)

// Tones lists the supported tones in display order.
func Tones() []Tone {
	return []Tone{Professional, Creative, Conversational}
}

// ParseTone normalises s. Empty and unknown tones become Professional.
func ParseTone(s string) Tone {
	t := Tone(cases.Lower(language.English).String(strings.TrimSpace(s)))
	for _, known := range Tones() {
		if t == known {
			return t
		}
	}
	return Professional
}

// Request holds the inputs for a letter. Empty company and role use generic wording.
type Request struct {
	Resume         string
	JobDescription string
	Tone           string
	Company        string
	Role           string
}

// Letter is a drafted cover letter.
type Letter struct {
	Text      string `json:"cover_letter"`
	Tone      Tone   `json:"tone"`
	WordCount int    `json:"word_count"`
}

type template struct {
	opener  string
	closing string
}

var templates = map[Tone]template{
	Professional: {
		opener:  "I am writing to express my strong interest in the %[1]s position at %[2]s.",
		closing: "\n\nI would welcome the opportunity to discuss how my experience can benefit %[2]s. I look forward to hearing from you.\n\nSincerely,\n[Your Name]",
	},
	Creative: {
		opener:  "When I saw the %[1]s opening at %[2]s, I knew my unique combination of skills made this a perfect fit.",
		closing: "\n\nI'd love to share more about how I can bring value to %[2]s. Let's connect!\n\nBest regards,\n[Your Name]",
	},
	Conversational: {
		opener:  "I was excited to find the %[1]s role at %[2]s, as it aligns perfectly with my experience and career goals.",
		closing: "\n\nI'd be thrilled to chat about how I can contribute to %[2]s's goals. Looking forward to connecting!\n\nWarm regards,\n[Your Name]",
	},
}

// Build drafts a letter. Skills named in both documents lead the body; when
// none overlap the job description's own top keywords are used.
func Build(req Request) Letter {
	company := strings.TrimSpace(req.Company)
	if company == "" {
		company = DefaultCompany
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = DefaultRole
	}
	tone := ParseTone(req.Tone)
	tmpl := templates[tone]

	jdKeywords := lexical.ExtractKeywords(req.JobDescription, keywordCount)
	matching := matchingKeywords(jdKeywords, lexical.ExtractKeywords(req.Resume, keywordCount))

	top := matching
	if len(top) == 0 {
		top = jdKeywords
	}

	var b strings.Builder
	fmt.Fprintf(&b, tmpl.opener, role, company)
	fmt.Fprintf(&b, "\n\nWith expertise in %s, I bring a proven ability to deliver results in fast-paced environments. "+
		"My background closely matches your requirements, and I'm particularly drawn to the opportunity to contribute to %s's mission.",
		strings.Join(top[:min(4, len(top))], ", "), company)

	if h := highlight(sections.Segment(req.Resume).Get(sections.Experience)); h != "" {
		fmt.Fprintf(&b, "\n\nIn my recent experience, %s. This experience has equipped me with the skills needed to excel in this role.", h)
	}

	if len(matching) >= minToolkit {
		fmt.Fprintf(&b, "\n\nMy technical toolkit, including %s, directly addresses the key requirements outlined in your job description.",
			strings.Join(matching[:minToolkit], ", "))
	}

	fmt.Fprintf(&b, tmpl.closing, role, company)

	text := b.String()
	return Letter{Text: text, Tone: tone, WordCount: len(strings.Fields(text))}
}

func matchingKeywords(jd, resume []string) []string {
	have := make(map[string]struct{}, len(resume))
	for _, kw := range resume {
		have[kw] = struct{}{}
	}
	var out []string
	for _, kw := range jd {
		if _, ok := have[kw]; ok {
			out = append(out, kw)
		}
	}
	return out
}

// highlight returns the first substantial experience line without its
// bullet marker or final period. Lines that start lower case are lowered
// throughout so they read as part of the sentence.
func highlight(experience string) string {
	if len(experience) <= minHighlightText {
		return ""
	}
	for _, line := range strings.Split(experience, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minHighlightLine {
			continue
		}
		line = strings.TrimLeft(line, "•-*▪►‣ \t")
		if r := []rune(line); len(r) > maxHighlight {
			line = string(r[:maxHighlight])
		}
		line = strings.TrimRight(strings.TrimSpace(line), ".")
		if line == "" {
			continue
		}
		if first, _ := utf8.DecodeRuneInString(line); !unicode.IsUpper(first) {
			line = cases.Lower(language.English).String(line)
		}
		return line
	}
	return ""
}
