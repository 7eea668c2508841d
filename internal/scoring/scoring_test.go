package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resumelyze/internal/scoring/model"
	"github.com/spigell/resumelyze/internal/sections"
	"github.com/spigell/resumelyze/internal/semantic"
)

// linearFor builds a model whose coefficients follow the declared directions.
func linearFor(names []string, directions []int, intercept float64) *model.Linear {
	m := &model.Linear{Name: "test", Intercept: intercept}
	for i, name := range names {
		m.Features = append(m.Features, model.Feature{Name: name, Direction: directions[i]})
		m.Scaler.Mean = append(m.Scaler.Mean, 0)
		m.Scaler.Scale = append(m.Scaler.Scale, 1)
		m.Coefficients = append(m.Coefficients, 2*float64(directions[i]))
	}
	return m
}

func TestStrategySelection(t *testing.T) {
	t.Parallel()

	atsNames, atsDirs := ATSFeatureNames()
	secNames, secDirs := SectionFeatureNames()
	gradeNames, gradeDirs := GradeFeatureNames()

	assert.Equal(t, StrategyRules, NewATSScorer(nil).Strategy())
	assert.Equal(t, StrategyTrained, NewATSScorer(linearFor(atsNames, atsDirs, 50)).Strategy())
	assert.Equal(t, StrategyRules, NewATSScorer(linearFor(gradeNames, gradeDirs, 50)).Strategy())

	assert.Equal(t, StrategyRules, NewSectionScorer(nil).Strategy())
	assert.Equal(t, StrategyTrained, NewSectionScorer(linearFor(secNames, secDirs, 50)).Strategy())

	assert.Equal(t, StrategyRules, NewGrader(nil).Strategy())
	assert.Equal(t, StrategyTrained, NewGrader(linearFor(gradeNames, gradeDirs, 0)).Strategy())
}

func TestRuleATSAllocation(t *testing.T) {
	t.Parallel()

	s := NewATSScorer(nil)

	assert.Equal(t, 6, s.Score(ATSFeatures{}))
	assert.Equal(t, 14, s.Score(ATSFeatures{Email: true}))

	full := ATSFeatures{
		Email: true, Phone: true, LinkedIn: true, GitHub: true,
		StandardSections: 5, KeywordDensity: 1,
		Words: 500, Bullets: 25, Quantifiers: 15,
	}
	assert.Equal(t, 100, s.Score(full))
}

func TestATSMonotonicity(t *testing.T) {
	t.Parallel()

	names, dirs := ATSFeatureNames()
	base := ATSFeatures{
		StandardSections: 2, KeywordDensity: 0.2,
		Words: 150, Bullets: 2, Quantifiers: 1, SpecialChars: 3,
	}
	improvements := map[string]func(ATSFeatures) ATSFeatures{
		"email":       func(f ATSFeatures) ATSFeatures { f.Email = true; return f },
		"phone":       func(f ATSFeatures) ATSFeatures { f.Phone = true; return f },
		"linkedin":    func(f ATSFeatures) ATSFeatures { f.LinkedIn = true; return f },
		"github":      func(f ATSFeatures) ATSFeatures { f.GitHub = true; return f },
		"sections":    func(f ATSFeatures) ATSFeatures { f.StandardSections++; return f },
		"density":     func(f ATSFeatures) ATSFeatures { f.KeywordDensity += 0.3; return f },
		"words":       func(f ATSFeatures) ATSFeatures { f.Words += 200; return f },
		"bullets":     func(f ATSFeatures) ATSFeatures { f.Bullets += 5; return f },
		"numbers":     func(f ATSFeatures) ATSFeatures { f.Quantifiers += 6; return f },
		"no specials": func(f ATSFeatures) ATSFeatures { f.SpecialChars = 0; return f },
	}

	for _, scorer := range []*ATSScorer{NewATSScorer(nil), NewATSScorer(linearFor(names, dirs, 40))} {
		for name, improve := range improvements {
			assert.GreaterOrEqual(t, scorer.Score(improve(base)), scorer.Score(base), "%s/%s", scorer.Strategy(), name)
		}

		withTables := base
		withTables.Tables = true
		assert.LessOrEqual(t, scorer.Score(withTables), scorer.Score(base), scorer.Strategy())
	}
}

func TestATSEvaluate(t *testing.T) {
	t.Parallel()

	resume := strings.Join([]string{
		"Jane Doe",
		"jane@example.com | (555) 123-4567",
		"Summary",
		"Backend engineer focused on data platforms.",
		"Skills",
		"Python, SQL, Kafka",
		"Experience",
		"- Led migration of 12 services",
		"Education",
		"BSc Computer Science",
	}, "\n")
	secs := sections.Segment(resume)

	res := NewATSScorer(nil).Evaluate(resume, secs, 0.5)

	assert.True(t, res.Contact.Email)
	assert.True(t, res.Contact.Phone)
	assert.True(t, res.SectionHeadingsValid)
	assert.True(t, res.CleanFormatting)
	assert.Contains(t, res.Recommendations, "Add your LinkedIn profile URL")
	assert.Contains(t, res.Issues, "Resume may be too short")
	assert.NotContains(t, res.Issues, "Missing email address")
	assert.InDelta(t, 0.5, res.KeywordDensity, 1e-9)

	bare := NewATSScorer(nil).Evaluate("just some words", sections.Segment("just some words"), 0)
	assert.False(t, bare.SectionHeadingsValid)
	assert.Contains(t, bare.Issues, "Missing email address")
	assert.Contains(t, bare.Issues, "Missing standard sections: summary, skills, experience, education")
	assert.Contains(t, bare.Issues, "Low keyword alignment with job description")
	assert.Less(t, bare.Score, res.Score)
}

func TestSectionScoreAbsentSection(t *testing.T) {
	t.Parallel()

	got := NewSectionScorer(nil).Score(sections.Summary, "  tiny \n ", 0.9, []string{"python"})
	assert.Equal(t, absentSectionScore, got.Score)
	assert.Equal(t, "Your summary section is missing or too brief. "+
		"Add detailed, relevant content aligned with the job description.", got.Suggestion)
}

func TestSectionScoreRange(t *testing.T) {
	t.Parallel()

	s := NewSectionScorer(nil)
	text := "- Built internal tooling for the finance team\n- Maintained reports"
	got := s.Score(sections.Experience, text, 0, []string{"kubernetes"})

	assert.GreaterOrEqual(t, got.Score, minSectionScore)
	assert.LessOrEqual(t, got.Score, 100)
	assert.True(t, strings.HasPrefix(got.Suggestion, "Needs work: "), got.Suggestion)
	assert.Contains(t, got.Suggestion, "quantify your achievements")
}

func TestSectionMonotonicity(t *testing.T) {
	t.Parallel()

	names, dirs := SectionFeatureNames()
	base := SectionFeatures{
		Kind: sections.Experience, Similarity: 0.3, KeywordDensity: 0.2,
		Words: 80, Bullets: 2, Numbers: 1, ActionVerbs: 1, LengthFit: 0.8,
	}
	improvements := map[string]func(SectionFeatures) SectionFeatures{
		"similarity": func(f SectionFeatures) SectionFeatures { f.Similarity += 0.2; return f },
		"density":    func(f SectionFeatures) SectionFeatures { f.KeywordDensity += 0.2; return f },
		"bullets":    func(f SectionFeatures) SectionFeatures { f.Bullets += 3; return f },
		"numbers":    func(f SectionFeatures) SectionFeatures { f.Numbers += 3; return f },
		"verbs":      func(f SectionFeatures) SectionFeatures { f.ActionVerbs += 3; return f },
		"length":     func(f SectionFeatures) SectionFeatures { f.LengthFit = 1; return f },
	}

	for _, strategy := range []SectionStrategy{RuleSection{}, TrainedSection{t: newTrained(linearFor(names, dirs, 30), names, dirs)}} {
		for _, kind := range []sections.Kind{sections.Experience, sections.Summary, sections.Skills, sections.Projects} {
			b := base
			b.Kind = kind
			for name, improve := range improvements {
				assert.GreaterOrEqual(t, strategy.Score(improve(b)), strategy.Score(b), "%s/%s/%s", strategy.Name(), kind, name)
			}
		}
	}
}

func TestSectionSuggestion(t *testing.T) {
	t.Parallel()

	strong := SectionFeatures{
		Kind: sections.Experience, Similarity: 1, KeywordDensity: 1,
		Words: 300, Bullets: 15, Numbers: 9, ActionVerbs: 9, LengthFit: 1,
	}
	assert.InDelta(t, 100, RuleSection{}.Score(strong), 1e-9)
	assert.Equal(t, "Excellent experience section, well-aligned with the job description.",
		sectionSuggestion(strong, 100))

	fair := SectionFeatures{
		Kind: sections.Skills, Similarity: 0.6, KeywordDensity: 0.35,
		Words: 40, LengthFit: 1,
	}
	assert.Equal(t, "Good start, but add technical skills mentioned in the job description.",
		sectionSuggestion(fair, 60))

	plain := SectionFeatures{Kind: sections.Education, Similarity: 0.5, KeywordDensity: 0.5, Words: 40, LengthFit: 1}
	assert.Equal(t, "Good start, but fine-tune your education by matching the JD's language more closely.",
		sectionSuggestion(plain, 70))
	assert.Equal(t, "Needs work: significantly strengthen your education with more relevant content.",
		sectionSuggestion(plain, 40))
}

func TestLengthFit(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, lengthFit(sections.Summary, 100), 1e-9)
	assert.InDelta(t, 0.5, lengthFit(sections.Summary, 25), 1e-9)
	assert.InDelta(t, 0.1, lengthFit(sections.Summary, 1), 1e-9)
	assert.InDelta(t, 0.5, lengthFit(sections.Summary, 1000), 1e-9)
	assert.InDelta(t, 1.0, lengthFit(sections.Other("hobbies"), 200), 1e-9)
}

func TestCountActionVerbs(t *testing.T) {
	t.Parallel()

	text := "- Led the platform team\n• Built CI pipelines\n3. Helped with audits\nOptimized, then shipped"
	assert.Equal(t, 3, countActionVerbs(text))
}

func TestLetterGrade(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		100: "A+", 95: "A+", 94: "A", 90: "A", 85: "A-", 84: "B+",
		75: "B", 70: "B-", 65: "C+", 60: "C", 55: "C-", 50: "D+",
		45: "D", 44: "F", 0: "F",
	}
	for score, want := range tests {
		assert.Equal(t, want, LetterGrade(score), score)
	}
}

func TestGradeRank(t *testing.T) {
	t.Parallel()

	prev := -1
	for score := 0; score <= 100; score++ {
		rank, ok := GradeRank(LetterGrade(score))
		require.True(t, ok, score)
		assert.GreaterOrEqual(t, rank, prev, score)
		prev = rank
	}

	top, _ := GradeRank("A+")
	assert.Equal(t, 11, top)

	_, ok := GradeRank("E")
	assert.False(t, ok)
}

func TestGrade(t *testing.T) {
	t.Parallel()

	all := func(score int) map[sections.Kind]int {
		m := make(map[sections.Kind]int)
		for _, kind := range sections.Standard() {
			m[kind] = score
		}
		return m
	}

	in := GradeInput{
		JDMatch: 80, ATS: 70, SectionScores: all(60),
		Readability: 50, VerbScore: 60, QuantScore: 40,
		Cliches: 2, KeywordDensity: 0.5,
	}
	g := NewGrader(nil).Grade(in)
	assert.Equal(t, 65, g.Score)
	assert.Equal(t, "C+", g.Letter)
	assert.Equal(t, 100, g.Completeness)

	perfect := GradeInput{
		JDMatch: 100, ATS: 100, SectionScores: all(100),
		Readability: 100, VerbScore: 100, QuantScore: 100, KeywordDensity: 1,
	}
	assert.Equal(t, Grade{Letter: "A+", Score: 100, Completeness: 100}, NewGrader(nil).Grade(perfect))
}

func TestGradeMonotonicity(t *testing.T) {
	t.Parallel()

	names, dirs := GradeFeatureNames()
	base := GradeInput{JDMatch: 40, ATS: 40, Readability: 40, VerbScore: 40, QuantScore: 40, Cliches: 3, KeywordDensity: 0.2}

	for _, g := range []*Grader{NewGrader(nil), NewGrader(linearFor(names, dirs, 0))} {
		better := base
		better.Cliches = 0
		assert.GreaterOrEqual(t, g.Grade(better).Score, g.Grade(base).Score, g.Strategy())

		better = base
		better.JDMatch = 90
		assert.GreaterOrEqual(t, g.Grade(better).Score, g.Grade(base).Score, g.Strategy())
	}
}

func TestCompleteness(t *testing.T) {
	t.Parallel()

	scores := map[sections.Kind]int{
		sections.Summary:    15,
		sections.Skills:     21,
		sections.Experience: 80,
		sections.Education:  20,
		sections.Projects:   55,
	}
	assert.Equal(t, 60, Completeness(scores))
	assert.Zero(t, Completeness(nil))
}

func TestJDMatch(t *testing.T) {
	t.Parallel()

	got := JDMatch(semantic.Comparison{
		Full: 0.8,
		Sections: map[sections.Kind]float64{
			sections.Skills:     0.6,
			sections.Experience: 0.4,
		},
	})
	assert.Equal(t, 65, got)

	assert.Equal(t, 50, JDMatch(semantic.Comparison{Full: 0.5}))
	assert.Zero(t, JDMatch(semantic.Comparison{}))
}

func TestTrainedPredictionsAreClamped(t *testing.T) {
	t.Parallel()

	names, dirs := GradeFeatureNames()
	g := NewGrader(linearFor(names, dirs, 0))
	require.Equal(t, StrategyTrained, g.Strategy())

	got := g.Grade(GradeInput{JDMatch: 100, ATS: 100, Readability: 100})
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, "A+", got.Letter)
}
