package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/resumelyze/internal/lexical"
	"github.com/spigell/resumelyze/internal/scoring/model"
	"github.com/spigell/resumelyze/internal/sections"
)

const (
	// Sections with fewer non-whitespace characters than this are treated as absent.
	minSectionContent  = 10
	absentSectionScore = 15
	minSectionScore    = 5
	excellentSection   = 80
	passableSection    = 50
)

var (
	sectionFeatureNames = []string{
		"similarity", "keyword_density", "words", "bullets", "numbers",
		"action_verbs", "length_fit",
		"is_summary", "is_skills", "is_experience", "is_education", "is_projects",
	}
	sectionDirections = []int{1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0}

	lineMarker = regexp.MustCompile(`^[\s•\-*\d.)]+`)

	strongActionVerbs = map[string]struct{}{}
)

func init() {
	for _, v := range strings.Fields(`
		achieved architected automated built championed coached consolidated created
		decreased delivered designed developed directed drove eliminated engineered
		established exceeded executed expanded generated grew headed implemented
		improved increased influenced initiated innovated integrated introduced launched
		led leveraged maximized mentored modernized negotiated optimized orchestrated
		overhauled partnered pioneered produced propelled raised redesigned reduced
		revamped scaled secured simplified spearheaded streamlined strengthened
		surpassed transformed unified`) {
		strongActionVerbs[v] = struct{}{}
	}
}

type wordBand struct{ min, max int }

var optimalWords = map[sections.Kind]wordBand{
	sections.Summary:    {50, 150},
	sections.Skills:     {30, 200},
	sections.Experience: {100, 600},
	sections.Education:  {30, 200},
	sections.Projects:   {50, 400},
}

var defaultWords = wordBand{30, 300}

// SectionFeatureNames returns the feature schema a trained section model must declare.
func SectionFeatureNames() ([]string, []int) {
	return append([]string(nil), sectionFeatureNames...), append([]int(nil), sectionDirections...)
}

// SectionFeatures describe one résumé section relative to the job description.
type SectionFeatures struct {
	Kind           sections.Kind
	Similarity     float64
	KeywordDensity float64
	Words          int
	Bullets        int
	Numbers        int
	ActionVerbs    int
	LengthFit      float64
}

// BuildSectionFeatures measures a section. similarity is its semantic
// similarity to the job description.
func BuildSectionFeatures(kind sections.Kind, text string, similarity float64, jdKeywords []string) SectionFeatures {
	_, _, density := lexical.KeywordOverlap(text, jdKeywords)
	words := len(strings.Fields(text))

	return SectionFeatures{
		Kind:           kind,
		Similarity:     clamp(similarity, 0, 1),
		KeywordDensity: density,
		Words:          words,
		Bullets:        lexical.CountBullets(text),
		Numbers:        lexical.CountNumbers(text),
		ActionVerbs:    countActionVerbs(text),
		LengthFit:      lengthFit(kind, words),
	}
}

func countActionVerbs(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(lineMarker.ReplaceAllString(line, ""))
		if len(fields) == 0 {
			continue
		}
		if _, ok := strongActionVerbs[strings.ToLower(strings.Trim(fields[0], ",.;:"))]; ok {
			n++
		}
	}
	return n
}

// lengthFit is 1 inside the optimal band, degrading below it and well above it.
func lengthFit(kind sections.Kind, words int) float64 {
	band, ok := optimalWords[kind]
	if !ok {
		band = defaultWords
	}
	w := float64(words)
	switch {
	case words < band.min:
		return math.Max(0.1, w/float64(band.min))
	case w > float64(band.max)*1.5:
		return math.Max(0.5, float64(band.max)/w)
	}
	return 1
}

func (f SectionFeatures) scaledWords() float64   { return math.Min(float64(f.Words)/100, 10) }
func (f SectionFeatures) scaledBullets() float64 { return math.Min(float64(f.Bullets)/3, 5) }
func (f SectionFeatures) scaledNumbers() float64 { return math.Min(float64(f.Numbers)/3, 5) }
func (f SectionFeatures) scaledVerbs() float64   { return math.Min(float64(f.ActionVerbs)/3, 5) }

// Vector returns the features in SectionFeatureNames order.
func (f SectionFeatures) Vector() []float64 {
	return []float64{
		f.Similarity,
		f.KeywordDensity,
		f.scaledWords(),
		f.scaledBullets(),
		f.scaledNumbers(),
		f.scaledVerbs(),
		f.LengthFit,
		boolFeature(f.Kind == sections.Summary),
		boolFeature(f.Kind == sections.Skills),
		boolFeature(f.Kind == sections.Experience),
		boolFeature(f.Kind == sections.Education),
		boolFeature(f.Kind == sections.Projects),
	}
}

// SectionStrategy turns section features into a raw score.
type SectionStrategy interface {
	Name() string
	Score(f SectionFeatures) float64
}

// RuleSection allocates similarity 40, keyword density 25, section-specific
// structure 20 and length fit 15 points.
type RuleSection struct{}

func (RuleSection) Name() string { return StrategyRules }

func (RuleSection) Score(f SectionFeatures) float64 {
	ws, bs, ns, vs := f.scaledWords(), f.scaledBullets(), f.scaledNumbers(), f.scaledVerbs()

	var structure float64
	switch f.Kind {
	case sections.Experience:
		structure = math.Min(bs*2, 8) + math.Min(ns*2, 6) + math.Min(vs*2, 6)
	case sections.Skills:
		structure = math.Min(ws*2, 10) + f.KeywordDensity*10
	case sections.Summary:
		structure = math.Min(f.LengthFit*10, 10) + math.Min(vs*2, 5) + math.Min(ns*2, 5)
	case sections.Education:
		structure = math.Min(ws*3, 10) + math.Min(ns*2, 5) + 5
	case sections.Projects:
		structure = math.Min(bs*2, 6) + math.Min(ns*2, 6) + math.Min(vs*2, 8)
	default:
		structure = math.Min(ws*2, 10) + math.Min(f.LengthFit*5, 10)
	}

	return f.Similarity*40 + f.KeywordDensity*25 + structure + f.LengthFit*15
}

// TrainedSection scores with a regression model.
type TrainedSection struct {
	t *trained
}

func (TrainedSection) Name() string { return StrategyTrained }

func (s TrainedSection) Score(f SectionFeatures) float64 {
	if y, ok := s.t.predict(f); ok {
		return y
	}
	return RuleSection{}.Score(f)
}

// SectionScore is the score and advice for one section.
type SectionScore struct {
	Score      int    `json:"score"`
	Suggestion string `json:"suggestion"`
}

// SectionScorer scores résumé sections.
type SectionScorer struct {
	strategy SectionStrategy
}

// NewSectionScorer uses m when it is non-nil and fits the section schema, rules otherwise.
func NewSectionScorer(m *model.Linear) *SectionScorer {
	if t := newTrained(m, sectionFeatureNames, sectionDirections); t != nil {
		return &SectionScorer{strategy: TrainedSection{t: t}}
	}
	return &SectionScorer{strategy: RuleSection{}}
}

// Strategy returns the name of the selected strategy.
func (s *SectionScorer) Strategy() string {
	return s.strategy.Name()
}

// Score rates a section and suggests how to improve it.
func (s *SectionScorer) Score(kind sections.Kind, text string, similarity float64, jdKeywords []string) SectionScore {
	if !SectionPresent(text) {
		msg := fmt.Sprintf("Your %s section is missing or too brief. "+
			"Add detailed, relevant content aligned with the job description.", kind)
		return SectionScore{Score: absentSectionScore, Suggestion: msg}
	}

	f := BuildSectionFeatures(kind, text, similarity, jdKeywords)
	score := toScore(s.strategy.Score(f), minSectionScore, 100)

	return SectionScore{Score: score, Suggestion: sectionSuggestion(f, score)}
}

// SectionPresent reports whether a section has enough content to be scored
// on its merits.
func SectionPresent(text string) bool {
	return contentLength(text) >= minSectionContent
}

func contentLength(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func sectionSuggestion(f SectionFeatures, score int) string {
	name := f.Kind.String()
	if score >= excellentSection {
		return fmt.Sprintf("Excellent %s section, well-aligned with the job description.", name)
	}

	var tips []string
	if f.Similarity < 0.4 {
		tips = append(tips, fmt.Sprintf("tailor your %s more closely to the job description language", name))
	}
	if f.KeywordDensity < 0.3 {
		tips = append(tips, "incorporate more relevant keywords from the JD")
	}
	if f.Kind == sections.Experience || f.Kind == sections.Projects {
		if f.scaledBullets() < 1 {
			tips = append(tips, "use bullet points for each responsibility/achievement")
		}
		if f.scaledNumbers() < 1 {
			tips = append(tips, "quantify your achievements with specific metrics (%, $, numbers)")
		}
		if f.scaledVerbs() < 1 {
			tips = append(tips, "start bullet points with strong action verbs (Led, Architected, Optimized)")
		}
	}
	if f.Kind == sections.Summary && f.scaledWords() < 0.5 {
		tips = append(tips, "expand your summary to 3-4 sentences highlighting your key qualifications")
	}
	if f.Kind == sections.Skills && f.KeywordDensity < 0.4 {
		tips = append(tips, "add technical skills mentioned in the job description")
	}
	if f.LengthFit < 0.5 {
		tips = append(tips, fmt.Sprintf("adjust the length of your %s section", name))
	}

	if len(tips) == 0 {
		if score < passableSection {
			tips = append(tips, fmt.Sprintf("significantly strengthen your %s with more relevant content", name))
		} else {
			tips = append(tips, fmt.Sprintf("fine-tune your %s by matching the JD's language more closely", name))
		}
	}

	prefix := "Needs work: "
	if score >= passableSection {
		prefix = "Good start, but "
	}
	return prefix + strings.Join(tips, "; ") + "."
}
