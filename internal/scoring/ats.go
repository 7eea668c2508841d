package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/resumelyze/internal/lexical"
	"github.com/spigell/resumelyze/internal/scoring/model"
	"github.com/spigell/resumelyze/internal/sections"
)

var (
	atsFeatureNames = []string{
		"has_email", "has_phone", "has_linkedin", "has_github",
		"standard_sections", "extra_sections", "keyword_density",
		"log_words", "log_bullets", "quantifiers",
		"has_tables", "has_images", "special_chars",
	}
	atsDirections = []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, -1, -1}
)

// Sections an ATS expects to find by name.
var requiredSections = []sections.Kind{
	sections.Summary, sections.Skills, sections.Experience, sections.Education,
}

// ATSFeatureNames returns the feature schema a trained ATS model must declare.
func ATSFeatureNames() ([]string, []int) {
	return append([]string(nil), atsFeatureNames...), append([]int(nil), atsDirections...)
}

// ATSFeatures are the signals an applicant tracking system reacts to.
type ATSFeatures struct {
	Email            bool
	Phone            bool
	LinkedIn         bool
	GitHub           bool
	StandardSections int
	ExtraSections    int
	KeywordDensity   float64
	Words            int
	Bullets          int
	Quantifiers      int
	Tables           bool
	ImageRefs        bool
	SpecialChars     int
}

// BuildATSFeatures collects ATS signals from a résumé. density is the JD
// keyword density of the résumé.
func BuildATSFeatures(resume string, secs *sections.Map, density float64) ATSFeatures {
	contact := lexical.DetectContact(resume)
	format := lexical.DetectFormatting(resume)

	standard := 0
	for _, kind := range sections.Standard() {
		if secs.Has(kind) {
			standard++
		}
	}

	return ATSFeatures{
		Email:            contact.Email,
		Phone:            contact.Phone,
		LinkedIn:         contact.LinkedIn,
		GitHub:           contact.GitHub,
		StandardSections: standard,
		ExtraSections:    max(secs.Named()-standard, 0),
		KeywordDensity:   clamp(density, 0, 1),
		Words:            len(strings.Fields(resume)),
		Bullets:          lexical.CountBullets(resume),
		Quantifiers:      lexical.CountNumbers(secs.Get(sections.Experience)),
		Tables:           format.Tables,
		ImageRefs:        format.ImageRefs,
		SpecialChars:     format.SpecialChars,
	}
}

// Vector returns the features in ATSFeatureNames order.
func (f ATSFeatures) Vector() []float64 {
	return []float64{
		boolFeature(f.Email),
		boolFeature(f.Phone),
		boolFeature(f.LinkedIn),
		boolFeature(f.GitHub),
		float64(f.StandardSections),
		float64(f.ExtraSections),
		f.KeywordDensity,
		math.Log1p(float64(f.Words)),
		math.Log1p(float64(f.Bullets)),
		math.Min(float64(f.Quantifiers)/3, 10),
		boolFeature(f.Tables),
		boolFeature(f.ImageRefs),
		math.Min(float64(f.SpecialChars)/10, 10),
	}
}

// ATSStrategy turns ATS features into a raw score.
type ATSStrategy interface {
	Name() string
	Score(f ATSFeatures) float64
}

// RuleATS allocates contact 20, sections 25, keywords 25, quantification 10,
// bullets 10, formatting 5 and length 5 points.
type RuleATS struct{}

func (RuleATS) Name() string { return StrategyRules }

func (RuleATS) Score(f ATSFeatures) float64 {
	var score float64

	if f.Email {
		score += 8
	}
	if f.Phone {
		score += 6
	}
	if f.LinkedIn {
		score += 4
	}
	if f.GitHub {
		score += 2
	}

	score += 5 * float64(min(f.StandardSections, 5))
	score += 25 * clamp(f.KeywordDensity, 0, 1)
	score += math.Min(math.Min(float64(f.Quantifiers)/3, 10)*2, 10)
	score += math.Min(math.Min(float64(f.Bullets)/5, 10)*2, 10)

	if !f.Tables {
		score += 2
	}
	if !f.ImageRefs {
		score += 2
	}
	score += math.Max(0, 1-float64(f.SpecialChars)/25)

	switch {
	case f.Words >= 300:
		score += 5
	case f.Words >= 200:
		score += 3
	default:
		score++
	}

	return score
}

// TrainedATS scores with a regression model.
type TrainedATS struct {
	t *trained
}

func (TrainedATS) Name() string { return StrategyTrained }

func (s TrainedATS) Score(f ATSFeatures) float64 {
	if y, ok := s.t.predict(f); ok {
		return y
	}
	return RuleATS{}.Score(f)
}

// ATSResult is the detailed ATS assessment.
type ATSResult struct {
	Score                int
	Contact              lexical.Contact
	CleanFormatting      bool
	SectionHeadingsValid bool
	KeywordDensity       float64
	Issues               []string
	Recommendations      []string
}

// ATSScorer evaluates résumés for ATS compatibility.
type ATSScorer struct {
	strategy ATSStrategy
}

// NewATSScorer uses m when it is non-nil and fits the ATS schema, rules otherwise.
func NewATSScorer(m *model.Linear) *ATSScorer {
	if t := newTrained(m, atsFeatureNames, atsDirections); t != nil {
		return &ATSScorer{strategy: TrainedATS{t: t}}
	}
	return &ATSScorer{strategy: RuleATS{}}
}

// Strategy returns the name of the selected strategy.
func (s *ATSScorer) Strategy() string {
	return s.strategy.Name()
}

// Score returns the clamped score for a feature set.
func (s *ATSScorer) Score(f ATSFeatures) int {
	return toScore(s.strategy.Score(f), 0, 100)
}

// Evaluate scores a résumé and lists its ATS issues.
func (s *ATSScorer) Evaluate(resume string, secs *sections.Map, density float64) ATSResult {
	f := BuildATSFeatures(resume, secs, density)
	contact := lexical.DetectContact(resume)

	result := ATSResult{
		Score:           s.Score(f),
		Contact:         contact,
		CleanFormatting: !f.Tables && !f.ImageRefs,
		KeywordDensity:  f.KeywordDensity,
		Issues:          []string{},
		Recommendations: []string{},
	}

	if !contact.Email {
		result.Issues = append(result.Issues, "Missing email address")
		result.Recommendations = append(result.Recommendations, "Add a professional email address at the top")
	}
	if !contact.Phone {
		result.Issues = append(result.Issues, "Missing phone number")
		result.Recommendations = append(result.Recommendations, "Include your phone number for recruiter contact")
	}
	if !contact.LinkedIn {
		result.Recommendations = append(result.Recommendations, "Add your LinkedIn profile URL")
	}

	var missing []string
	for _, kind := range requiredSections {
		if !secs.Has(kind) {
			missing = append(missing, kind.String())
		}
	}
	result.SectionHeadingsValid = len(missing) == 0
	if len(missing) > 0 {
		list := strings.Join(missing, ", ")
		result.Issues = append(result.Issues, fmt.Sprintf("Missing standard sections: %s", list))
		result.Recommendations = append(result.Recommendations, fmt.Sprintf("Add these sections: %s", list))
	}

	if f.KeywordDensity < 0.3 {
		result.Issues = append(result.Issues, "Low keyword alignment with job description")
		result.Recommendations = append(result.Recommendations, "Incorporate more keywords from the job description")
	}
	if f.Bullets < 5 {
		result.Recommendations = append(result.Recommendations, "Use more bullet points to improve ATS readability")
	}
	if f.Tables || f.ImageRefs {
		result.Issues = append(result.Issues, "Tables or images detected")
		result.Recommendations = append(result.Recommendations, "Replace tables and images with plain text")
	}

	switch {
	case f.Words < 200:
		result.Issues = append(result.Issues, "Resume may be too short")
		result.Recommendations = append(result.Recommendations, "Expand your experience and skills sections")
	case f.Words > 1200:
		result.Recommendations = append(result.Recommendations, "Consider condensing, most ATS prefer 1-2 pages")
	}

	return result
}
