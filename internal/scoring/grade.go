package scoring

import (
	"math"

	"github.com/spigell/resumelyze/internal/scoring/model"
	"github.com/spigell/resumelyze/internal/sections"
)

// Sections scoring above this count towards completeness.
const completeSectionScore = 20

var (
	gradeFeatureNames = []string{
		"jd_match", "ats_score", "section_average", "readability",
		"verb_score", "quantification_score", "cliche_score",
		"keyword_density", "completeness",
	}
	gradeDirections = []int{1, 1, 1, 1, 1, 1, 1, 1, 1}
	gradeWeights    = []float64{0.20, 0.15, 0.20, 0.10, 0.10, 0.10, 0.05, 0.05, 0.05}
)

var gradeLetters = []struct {
	min    int
	letter string
}{
	{95, "A+"}, {90, "A"}, {85, "A-"},
	{80, "B+"}, {75, "B"}, {70, "B-"},
	{65, "C+"}, {60, "C"}, {55, "C-"},
	{50, "D+"}, {45, "D"},
}

// GradeFeatureNames returns the feature schema a trained grade model must declare.
func GradeFeatureNames() ([]string, []int) {
	return append([]string(nil), gradeFeatureNames...), append([]int(nil), gradeDirections...)
}

// LetterGrade maps a 0-100 score to a letter grade.
func LetterGrade(score int) string {
	for _, g := range gradeLetters {
		if score >= g.min {
			return g.letter
		}
	}
	return "F"
}

// GradeRank orders letter grades, higher is better and F ranks 0. ok is
// false for a letter LetterGrade never returns.
func GradeRank(letter string) (rank int, ok bool) {
	if letter == "F" {
		return 0, true
	}
	for i, g := range gradeLetters {
		if g.letter == letter {
			return len(gradeLetters) - i, true
		}
	}
	return 0, false
}

// GradeInput carries the component results the grade is built from.
type GradeInput struct {
	JDMatch        int
	ATS            int
	SectionScores  map[sections.Kind]int
	Readability    int
	VerbScore      int
	QuantScore     int
	Cliches        int
	KeywordDensity float64
}

// GradeFeatures is the grader's input vector.
type GradeFeatures struct {
	JDMatch        float64
	ATS            float64
	SectionAverage float64
	Readability    float64
	VerbScore      float64
	QuantScore     float64
	ClicheScore    float64
	KeywordDensity float64
	Completeness   float64
}

// Completeness is the share of standard sections that score above 20, as a percentage.
func Completeness(scores map[sections.Kind]int) int {
	standard := sections.Standard()
	n := 0
	for _, kind := range standard {
		if s, ok := scores[kind]; ok && s > completeSectionScore {
			n++
		}
	}
	return int(math.Round(float64(n) / float64(len(standard)) * 100))
}

// BuildGradeFeatures derives grader features. The section average runs over
// the standard sections that were scored.
func BuildGradeFeatures(in GradeInput) GradeFeatures {
	var sum float64
	var n int
	for _, kind := range sections.Standard() {
		if s, ok := in.SectionScores[kind]; ok {
			sum += float64(s)
			n++
		}
	}
	var avg float64
	if n > 0 {
		avg = sum / float64(n)
	}

	return GradeFeatures{
		JDMatch:        float64(in.JDMatch),
		ATS:            float64(in.ATS),
		SectionAverage: avg,
		Readability:    float64(in.Readability),
		VerbScore:      float64(in.VerbScore),
		QuantScore:     float64(in.QuantScore),
		ClicheScore:    math.Max(0, 100-8*float64(in.Cliches)),
		KeywordDensity: clamp(in.KeywordDensity, 0, 1) * 100,
		Completeness:   float64(Completeness(in.SectionScores)),
	}
}

// Vector returns the features in GradeFeatureNames order.
func (f GradeFeatures) Vector() []float64 {
	return []float64{
		f.JDMatch, f.ATS, f.SectionAverage, f.Readability, f.VerbScore,
		f.QuantScore, f.ClicheScore, f.KeywordDensity, f.Completeness,
	}
}

// GradeStrategy turns grade features into a raw score.
type GradeStrategy interface {
	Name() string
	Score(f GradeFeatures) float64
}

// RuleGrade is a fixed weighted mean of the components.
type RuleGrade struct{}

func (RuleGrade) Name() string { return StrategyRules }

func (RuleGrade) Score(f GradeFeatures) float64 {
	var score float64
	for i, v := range f.Vector() {
		score += v * gradeWeights[i]
	}
	return score
}

// TrainedGrade scores with a regression model.
type TrainedGrade struct {
	t *trained
}

func (TrainedGrade) Name() string { return StrategyTrained }

func (s TrainedGrade) Score(f GradeFeatures) float64 {
	if y, ok := s.t.predict(f); ok {
		return y
	}
	return RuleGrade{}.Score(f)
}

// Grade is the overall verdict.
type Grade struct {
	Letter       string
	Score        int
	Completeness int
}

// Grader produces the overall grade.
type Grader struct {
	strategy GradeStrategy
}

// NewGrader uses m when it is non-nil and fits the grade schema, rules otherwise.
func NewGrader(m *model.Linear) *Grader {
	if t := newTrained(m, gradeFeatureNames, gradeDirections); t != nil {
		return &Grader{strategy: TrainedGrade{t: t}}
	}
	return &Grader{strategy: RuleGrade{}}
}

// Strategy returns the name of the selected strategy.
func (g *Grader) Strategy() string {
	return g.strategy.Name()
}

// Grade computes the overall score, its letter and section completeness.
func (g *Grader) Grade(in GradeInput) Grade {
	f := BuildGradeFeatures(in)
	score := toScore(g.strategy.Score(f), 0, 100)
	return Grade{
		Letter:       LetterGrade(score),
		Score:        score,
		Completeness: int(f.Completeness),
	}
}
