package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/resumelyze/internal/scoring"
	"github.com/spigell/resumelyze/internal/sections"
)

// signals are the component results the report texts are written from.
type signals struct {
	jdMatch     int
	ats         scoring.ATSResult
	sections    map[sections.Kind]scoring.SectionScore
	named       int
	readability int
	density     float64
	verbScore   int
	quantScore  int
	cliches     int
	missing     []string
}

func (s signals) contactComplete() bool {
	return s.ats.Contact.Email && s.ats.Contact.Phone
}

// feedback lists strengths, weaknesses and action items in a fixed order.
// Lists are not capped here.
func (s signals) feedback() (strengths, weaknesses, actions []string) {
	strengths, weaknesses, actions = []string{}, []string{}, []string{}

	switch {
	case s.jdMatch >= 70:
		strengths = append(strengths, "Strong alignment with job description requirements")
	case s.jdMatch >= 50:
		strengths = append(strengths, "Moderate keyword match with the job description")
	default:
		weaknesses = append(weaknesses, "Low alignment with job requirements: tailor your resume to this specific role")
	}

	switch {
	case s.ats.Score >= 75:
		strengths = append(strengths, "Good ATS compatibility: your resume should parse well")
	case s.ats.Score < 50:
		weaknesses = append(weaknesses, "Poor ATS compatibility: use standard section headers and formatting")
	}

	if s.contactComplete() {
		strengths = append(strengths, "Complete contact information present")
	} else {
		weaknesses = append(weaknesses, "Incomplete contact information (missing email or phone)")
		actions = append(actions, "Add both email and phone number at the top of your resume")
	}

	for _, kind := range sections.Standard() {
		sec, ok := s.sections[kind]
		if !ok {
			continue
		}
		switch {
		case sec.Score >= 75:
			strengths = append(strengths, fmt.Sprintf("Strong %s section", kind))
		case sec.Score < 40:
			weaknesses = append(weaknesses, fmt.Sprintf("%s section needs significant improvement", kind.Title()))
		}
	}

	switch {
	case s.readability >= 75:
		strengths = append(strengths, "Clear and readable writing style")
	case s.readability < 50:
		weaknesses = append(weaknesses, "Readability could be improved: use shorter, clearer sentences")
	}

	switch {
	case s.density >= 0.5:
		strengths = append(strengths, "Excellent keyword coverage from the job description")
	case s.density < 0.2 && len(s.missing) > 0:
		actions = append(actions, "Add missing keywords: "+strings.Join(capList(s.missing, 5), ", "))
	}

	switch {
	case s.verbScore >= 70:
		strengths = append(strengths, "Good use of strong action verbs")
	case s.verbScore < 40:
		weaknesses = append(weaknesses, "Weak action verbs: replace 'managed', 'helped' with stronger alternatives")
		actions = append(actions, "Start bullet points with powerful action verbs like Led, Architected, Delivered")
	}

	switch {
	case s.quantScore >= 70:
		strengths = append(strengths, "Well-quantified achievements with specific metrics")
	case s.quantScore < 40:
		weaknesses = append(weaknesses, "Lacks quantified achievements: add numbers, percentages, and metrics")
		actions = append(actions, "Quantify at least 50% of your bullet points with specific metrics")
	}

	switch {
	case s.cliches == 0:
		strengths = append(strengths, "No overused clichés detected")
	case s.cliches >= 5:
		weaknesses = append(weaknesses, fmt.Sprintf("Found %d clichés: replace with specific achievements", s.cliches))
		actions = append(actions, "Remove clichés like 'results-driven' and replace with concrete examples")
	}

	if s.named >= 4 {
		strengths = append(strengths, "Well-organized resume with clear sections")
	} else {
		weaknesses = append(weaknesses, "Resume needs more defined sections")
		actions = append(actions, "Add standard sections: Summary, Skills, Experience, Education")
	}

	if !s.ats.Contact.LinkedIn {
		actions = append(actions, "Add your LinkedIn profile URL")
	}

	if len(s.missing) > 0 && len(actions) < feedbackListLimit {
		actions = append(actions, "Incorporate these JD keywords: "+strings.Join(capList(s.missing, 4), ", "))
	}

	return strengths, weaknesses, actions
}

func matchLevel(jdMatch int) string {
	switch {
	case jdMatch >= 75:
		return "excellent"
	case jdMatch >= 55:
		return "good"
	case jdMatch >= 35:
		return "moderate"
	default:
		return "weak"
	}
}

func (s signals) profileSummary(grade string) string {
	contact := "incomplete"
	if s.contactComplete() {
		contact = "complete"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overall Grade: %s. ", grade)
	fmt.Fprintf(&b, "The resume shows %s alignment (%d%%) with the job description. ", matchLevel(s.jdMatch), s.jdMatch)
	fmt.Fprintf(&b, "ATS compatibility score is %d/100. ", s.ats.Score)
	fmt.Fprintf(&b, "The resume has %d identifiable sections with %s contact information. ", s.named, contact)
	fmt.Fprintf(&b, "Readability score is %d/100 with %d%% keyword coverage. ",
		s.readability, int(math.Round(s.density*100)))

	switch {
	case s.jdMatch < 50:
		b.WriteString("Consider significantly tailoring this resume for the specific job requirements.")
	case s.jdMatch < 70:
		b.WriteString("Fine-tune the resume by incorporating more JD-specific language and keywords.")
	default:
		b.WriteString("The resume is well-targeted for this role.")
	}

	return b.String()
}

func (s signals) formattingFeedback() string {
	issues := s.ats.Issues
	switch {
	case len(issues) == 0 && s.named >= 4:
		return "Resume formatting is clean with well-organized sections. Good ATS compatibility."
	case s.named < 3:
		return "Use standard section headers (Summary, Skills, Experience, Education, Projects) " +
			"for optimal ATS compatibility. Consider a cleaner format with consistent formatting."
	case len(issues) == 0:
		return "Formatting is acceptable."
	default:
		return "Formatting is acceptable. Issues: " + strings.Join(capList(issues, 3), "; ") + "."
	}
}
