package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/resumelyze/internal/lexical"
	"github.com/spigell/resumelyze/internal/scoring"
	"github.com/spigell/resumelyze/internal/sections"
)

func strongSignals() signals {
	return signals{
		jdMatch: 80,
		ats: scoring.ATSResult{
			Score:   82,
			Contact: lexical.Contact{Email: true, Phone: true, LinkedIn: true},
		},
		sections: map[sections.Kind]scoring.SectionScore{
			sections.Skills:  {Score: 90},
			sections.Summary: {Score: 20},
		},
		named:       5,
		readability: 80,
		density:     0.6,
		verbScore:   75,
		quantScore:  85,
	}
}

func TestFeedbackStrongResume(t *testing.T) {
	t.Parallel()

	strengths, weaknesses, actions := strongSignals().feedback()

	assert.Equal(t, []string{
		"Strong alignment with job description requirements",
		"Good ATS compatibility: your resume should parse well",
		"Complete contact information present",
		"Strong skills section",
		"Clear and readable writing style",
		"Excellent keyword coverage from the job description",
		"Good use of strong action verbs",
		"Well-quantified achievements with specific metrics",
		"No overused clichés detected",
		"Well-organized resume with clear sections",
	}, strengths)
	assert.Equal(t, []string{"Summary section needs significant improvement"}, weaknesses)
	assert.Empty(t, actions)
}

func TestFeedbackWeakResume(t *testing.T) {
	t.Parallel()

	s := signals{
		jdMatch:     30,
		ats:         scoring.ATSResult{Score: 40},
		named:       2,
		readability: 40,
		density:     0.1,
		verbScore:   30,
		quantScore:  20,
		cliches:     6,
		missing:     []string{"go", "kafka", "grpc", "redis", "helm", "terraform"},
	}
	strengths, weaknesses, actions := s.feedback()

	assert.Empty(t, strengths)
	assert.Contains(t, weaknesses, "Found 6 clichés: replace with specific achievements")
	assert.Equal(t, "Add both email and phone number at the top of your resume", actions[0])
	assert.Equal(t, "Add missing keywords: go, kafka, grpc, redis, helm", actions[1])
	assert.Contains(t, actions, "Add your LinkedIn profile URL")
	assert.NotContains(t, actions, "Incorporate these JD keywords: go, kafka, grpc, redis")
}

func TestProfileSummary(t *testing.T) {
	t.Parallel()

	s := strongSignals()
	s.jdMatch = 60
	assert.Equal(t,
		"Overall Grade: B+. The resume shows good alignment (60%) with the job description. "+
			"ATS compatibility score is 82/100. The resume has 5 identifiable sections with complete contact information. "+
			"Readability score is 80/100 with 60% keyword coverage. "+
			"Fine-tune the resume by incorporating more JD-specific language and keywords.",
		s.profileSummary("B+"))

	for score, want := range map[int]string{75: "excellent", 55: "good", 35: "moderate", 34: "weak"} {
		assert.Equal(t, want, matchLevel(score), score)
	}
}

func TestFormattingFeedback(t *testing.T) {
	t.Parallel()

	s := strongSignals()
	assert.Equal(t, "Resume formatting is clean with well-organized sections. Good ATS compatibility.", s.formattingFeedback())

	s.ats.Issues = []string{"a", "b", "c", "d"}
	assert.Equal(t, "Formatting is acceptable. Issues: a; b; c.", s.formattingFeedback())

	s.named = 2
	assert.Contains(t, s.formattingFeedback(), "Use standard section headers")
}
