package feedback

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phrases(cs []Cliche) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Phrase)
	}
	return out
}

func TestDictionarySize(t *testing.T) {
	t.Parallel()

	assert.GreaterOrEqual(t, len(clicheDictionary), 70)

	seen := make(map[string]bool)
	for _, e := range clicheDictionary {
		assert.False(t, seen[e.phrase], "duplicate phrase %q", e.phrase)
		seen[e.phrase] = true
	}
	for _, p := range clichePatterns {
		assert.True(t, seen[p.phrase], "pattern phrase %q has no suggestion", p.phrase)
	}
}

func TestDetectClichesReportsOnce(t *testing.T) {
	t.Parallel()

	text := "RESPONSIBLE FOR billing. Responsible for payroll.\n" +
		"Results-driven engineer, results-driven leader. responsible   for audits."

	got := DetectCliches(text)
	assert.Equal(t, []string{"responsible for", "results-driven"}, phrases(got))
	assert.Equal(t, "Replace with a specific achievement that demonstrates measurable results", got[1].Suggestion)
}

func TestDetectClichesInflections(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Comfortable wearing many hats":       "wear many hats",
		"Always thinking outside box":         "think outside the box",
		"Moved the needle on retention":       "move the needle",
		"Goes above and beyond for customers": "go above and beyond",
		"Helped to with onboarding":           "helped with",
	}

	for text, want := range tests {
		t.Run(want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, []string{want}, phrases(DetectCliches(text)))
		})
	}
}

func TestDetectClichesWordBoundaries(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DetectCliches("Leveraged Kafka to build dynamically scaled pipelines"))
	assert.Equal(t, []string{"leverage"}, phrases(DetectCliches("We leverage Kafka")))
	// Phrases longer than two words match as substrings.
	assert.Equal(t, []string{"excellent communication skills"}, phrases(DetectCliches("excellent communication skillset")))
}

func TestAnalyzeVerbs(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"• Was responsible for the billing service",
		"- Led migration to Kubernetes",
		"- Led hiring for the platform team",
		"1. Worked on payments",
		"Architected event pipeline",
		"Some plain sentence",
	}, "\n")

	got := AnalyzeVerbs(text)
	assert.Equal(t, []string{"was responsible for", "worked on"}, got.WeakVerbs)
	assert.Equal(t, []string{"led", "architected"}, got.StrongVerbs)
	assert.Equal(t, 60, got.Score)
	assert.Equal(t, []string{
		"Replace 'was responsible for' with 'led' or 'owned'",
		"Replace 'worked on' with 'developed' or 'built'",
	}, got.Suggestions)
}

func TestAnalyzeVerbsEdgeCases(t *testing.T) {
	t.Parallel()

	none := AnalyzeVerbs("Python\nSQL")
	assert.Equal(t, noVerbScore, none.Score)
	assert.Len(t, none.Suggestions, 1)

	weakOnly := AnalyzeVerbs("- Helped customers\n- Used Terraform")
	assert.Equal(t, 20, weakOnly.Score)
	assert.Contains(t, weakOnly.Suggestions, "Try to start every bullet point with a strong action verb")

	// "improved" is a weak opener even though it is also a strong verb.
	improved := AnalyzeVerbs("Improved latency")
	assert.Equal(t, []string{"improved"}, improved.WeakVerbs)
	assert.Empty(t, improved.StrongVerbs)
}

func TestAnalyzeQuantificationHalfQuantified(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 1; i <= 5; i++ {
		lines = append(lines, fmt.Sprintf("- Cut cloud spend on cluster %c by %d%% this year", 'a'+rune(i), i*10))
		lines = append(lines, fmt.Sprintf("- Maintained the internal wiki pages for group %c", 'a'+rune(i)))
	}

	got := AnalyzeQuantification(strings.Join(lines, "\n"))
	assert.Equal(t, 5, got.Quantified)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, 85, got.Score)

	var excerpts int
	for _, s := range got.Suggestions {
		if strings.HasPrefix(s, "Add metrics to: ") {
			excerpts++
		}
	}
	assert.Equal(t, 3, excerpts)
	assert.Contains(t, got.Suggestions, "Great job quantifying your achievements! Keep it up.")
}

func TestAnalyzeQuantificationNoBullets(t *testing.T) {
	t.Parallel()

	got := AnalyzeQuantification("SKILLS\nGo")
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, noBulletScore, got.Score)
	assert.Len(t, got.Suggestions, 1)
}

func TestIsQuantified(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"Improved conversion by 50%":         true,
		"Saved $1.2M annually":               true,
		"Made the build 3x faster":           true,
		"Mentored 4 engineers":               true,
		"Served 1,200,000 requests":          true,
		"Ranked top 5 in the region":         true,
		"Wrote documentation for the API":    false,
		"Owned release process for the team": false,
	}
	for line, want := range tests {
		assert.Equal(t, want, IsQuantified(line), line)
	}
}

func TestIsHeaderLine(t *testing.T) {
	t.Parallel()

	assert.True(t, isHeaderLine("WORK EXPERIENCE"))
	assert.True(t, isHeaderLine("Skills:"))
	assert.False(t, isHeaderLine("Built services in Go"))
	assert.False(t, isHeaderLine("123 456"))
}

func TestSuggestImprovements(t *testing.T) {
	t.Parallel()

	resume := strings.Join([]string{
		"EXPERIENCE",
		"- Worked on the internal billing system.",
		"- Managed a small support team for two years",
		"- Reduced p99 latency by 40% across 12 services",
		"short line",
	}, "\n")

	got := SuggestImprovements(resume, []string{"kubernetes", "billing"}, DefaultImprovements)
	require.Len(t, got, 2)

	assert.Equal(t, Improvement{
		Original: "Worked on the internal billing system.",
		Improved: "Developed the internal billing system, resulting in [X]% improvement in [metric]",
		Reason:   "Upgraded to a stronger action verb; added measurable impact; consider incorporating: kubernetes",
	}, got[0])

	assert.Equal(t, "Orchestrated a small support team for two years, impacting a team of [X] members", got[1].Improved)
	assert.Equal(t, "Upgraded to a stronger action verb; added team size quantification; consider incorporating: kubernetes, billing", got[1].Reason)
}

func TestSuggestImprovementsDiscardsSingleHintWithoutRewrite(t *testing.T) {
	t.Parallel()

	got := SuggestImprovements("- Architected 3 payment services in Go", []string{"python"}, DefaultImprovements)
	assert.Empty(t, got)

	got = SuggestImprovements("- Worked on the internal billing system.\n- Fixed the flaky deploy pipeline", nil, 1)
	assert.Len(t, got, 1)
}

func TestWeakVerbLeadsCoverEveryPhrase(t *testing.T) {
	t.Parallel()

	require.Len(t, weakVerbLeads, len(weakVerbs))
	for weak := range weakVerbs {
		line := strings.ToUpper(strings.Join(strings.Fields(weak), "  ")) + " the reporting pipeline"
		assert.True(t, weakVerbLeads[weak].MatchString(line), weak)
		assert.False(t, weakVerbLeads[weak].MatchString("Later "+weak), weak)
	}
}
