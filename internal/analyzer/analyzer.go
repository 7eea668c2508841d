// Package analyzer assembles the full résumé report from the segmenter,
// the lexical and semantic signals, the scorers and the feedback passes.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/ai"
	"github.com/spigell/resumelyze/internal/feedback"
	"github.com/spigell/resumelyze/internal/lexical"
	"github.com/spigell/resumelyze/internal/logger"
	"github.com/spigell/resumelyze/internal/metrics"
	"github.com/spigell/resumelyze/internal/modelstore"
	"github.com/spigell/resumelyze/internal/report"
	"github.com/spigell/resumelyze/internal/roles"
	"github.com/spigell/resumelyze/internal/scoring"
	"github.com/spigell/resumelyze/internal/sections"
)

var (
	// ErrInvalidInput is returned for inputs rejected before the pipeline runs.
	ErrInvalidInput = errors.New("invalid input")
	// ErrResumeTooShort is returned when the résumé is below the minimum length.
	ErrResumeTooShort = fmt.Errorf("%w: resume is too short", ErrInvalidInput)
	// ErrJobDescriptionTooShort is returned when the job description is below the minimum length.
	ErrJobDescriptionTooShort = fmt.Errorf("%w: job description is too short", ErrInvalidInput)
)

// Defaults for Options.
const (
	DefaultMinResumeLength  = 50
	DefaultMinJDLength      = 10
	DefaultKeywordThreshold = 0.55
	DefaultMaxImprovements  = feedback.DefaultImprovements
)

const (
	jdKeywordCount       = 40
	jdBigramCount        = 20
	mergedKeywordLimit   = 20
	reportedKeywordLimit = 15
	feedbackListLimit    = 6
	reportedClicheLimit  = 10
	reportedRoleLimit    = 5

	skillsListLimit        = 20
	minSkillsResumeLength  = 20
	skillsRoleNotSpecified = "Not specified"

	aiFallbackComponent = "ai"
	densityPrecision    = 1000
)

// Options are the tunable thresholds of an analysis.
type Options struct {
	MinResumeLength  int
	MinJDLength      int
	KeywordThreshold float64
	MaxImprovements  int
}

// Analyzer runs analyses. It holds no per-request state and is safe for
// concurrent use.
type Analyzer struct {
	store    *modelstore.Store
	opts     Options
	logger   *zap.Logger
	metrics  *metrics.Metrics
	enhancer ai.Enhancer
	newID    func() string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// WithEnhancer enables the hybrid mode.
func WithEnhancer(e ai.Enhancer) Option {
	return func(a *Analyzer) { a.enhancer = e }
}

// WithOptions overrides the thresholds. Zero fields keep their defaults.
func WithOptions(o Options) Option {
	return func(a *Analyzer) {
		if o.MinResumeLength > 0 {
			a.opts.MinResumeLength = o.MinResumeLength
		}
		if o.MinJDLength > 0 {
			a.opts.MinJDLength = o.MinJDLength
		}
		if o.KeywordThreshold > 0 {
			a.opts.KeywordThreshold = o.KeywordThreshold
		}
		if o.MaxImprovements > 0 {
			a.opts.MaxImprovements = o.MaxImprovements
		}
	}
}

// New creates an Analyzer backed by store.
func New(store *modelstore.Store, opts ...Option) *Analyzer {
	a := &Analyzer{
		store: store,
		opts: Options{
			MinResumeLength:  DefaultMinResumeLength,
			MinJDLength:      DefaultMinJDLength,
			KeywordThreshold: DefaultKeywordThreshold,
			MaxImprovements:  DefaultMaxImprovements,
		},
		logger: zap.NewNop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) validate(resume, jd string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(resume)); n < a.opts.MinResumeLength {
		return fmt.Errorf("%w: %d characters, need at least %d", ErrResumeTooShort, n, a.opts.MinResumeLength)
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(jd)); n < a.opts.MinJDLength {
		return fmt.Errorf("%w: %d characters, need at least %d", ErrJobDescriptionTooShort, n, a.opts.MinJDLength)
	}
	return nil
}

// Analyze scores resume against jd. Only input validation fails the call;
// degraded capabilities lower confidence instead.
func (a *Analyzer) Analyze(ctx context.Context, resume, jd string) (*report.ScoreBreakdown, error) {
	if err := a.validate(resume, jd); err != nil {
		return nil, err
	}

	start := time.Now()
	id := a.newID()
	log := a.logger.With(logger.AnalysisFields(id, "")...)

	result := a.analyzeLocally(ctx, resume, jd, log)
	result.AnalysisID = id

	if a.enhancer != nil {
		assessment, err := a.enhancer.Assess(ctx, resume, jd)
		if err != nil {
			log.Warn("ai enhancement failed, using local result", zap.Error(err))
			a.metrics.Fallback(aiFallbackComponent)
			result.AnalysisMode = report.ModeAIFallback
		} else {
			merge(result, assessment)
		}
	}

	elapsed := time.Since(start)
	a.metrics.ObserveAnalysis(result.AnalysisMode, result.OverallGrade, elapsed)
	log.Info("analysis complete",
		zap.String(logger.FieldAnalysisMode, result.AnalysisMode),
		zap.Int("jd_match", result.JDMatch),
		zap.Int("ats_score", result.ATSScore),
		zap.String("grade", result.OverallGrade),
		zap.Duration("duration", elapsed),
	)

	return result, nil
}

func (a *Analyzer) analyzeLocally(ctx context.Context, resume, jd string, log *zap.Logger) *report.ScoreBreakdown {
	secs := sections.Segment(resume)
	jdKeywords := lexical.ExtractKeywords(jd, jdKeywordCount)

	exactFound, exactMissing, density := lexical.KeywordOverlap(resume, jdKeywords)
	exactFound, exactMissing = mergeBigrams(resume, lexical.ExtractNgrams(jd, 2, jdBigramCount), exactFound, exactMissing)

	readability := lexical.Readability(resume)

	engine := a.store.Engine()
	comparison := engine.Compare(ctx, resume, jd, secs)
	jdMatch := scoring.JDMatch(comparison)

	semFound, _ := engine.KeywordMatches(ctx, resume, exactMissing, a.opts.KeywordThreshold)
	allFound := capList(dedupe(append(append([]string{}, exactFound...), semFound...)), mergedKeywordLimit)
	allMissing := capList(subtract(exactMissing, semFound), mergedKeywordLimit)

	log.Debug("keywords matched",
		zap.Int("jd_keywords", len(jdKeywords)),
		zap.Int("exact_found", len(exactFound)),
		zap.Int("semantic_found", len(semFound)),
		zap.Float64("density", density),
	)

	ats := a.store.ATS().Evaluate(resume, secs, density)

	sectionScorer := a.store.Sections()
	sectionScores := make(map[sections.Kind]scoring.SectionScore, len(sections.Standard()))
	for _, kind := range sections.Standard() {
		sectionScores[kind] = sectionScorer.Score(kind, secs.Get(kind), comparison.Sections[kind], jdKeywords)
	}

	cliches := feedback.DetectCliches(resume)
	verbs := feedback.AnalyzeVerbs(resume)
	quant := feedback.AnalyzeQuantification(resume)
	improvements := feedback.SuggestImprovements(resume, jdKeywords, a.opts.MaxImprovements)

	grade := a.store.Grader().Grade(scoring.GradeInput{
		JDMatch:        jdMatch,
		ATS:            ats.Score,
		SectionScores:  gradeSectionScores(secs, sectionScores),
		Readability:    readability,
		VerbScore:      verbs.Score,
		QuantScore:     quant.Score,
		Cliches:        len(cliches),
		KeywordDensity: density,
	})

	sig := signals{
		jdMatch:     jdMatch,
		ats:         ats,
		sections:    sectionScores,
		named:       secs.Named(),
		readability: readability,
		density:     density,
		verbScore:   verbs.Score,
		quantScore:  quant.Score,
		cliches:     len(cliches),
		missing:     allMissing,
	}
	strengths, weaknesses, actions := sig.feedback()

	roundedDensity := roundDensity(density)

	return &report.ScoreBreakdown{
		JDMatch:            jdMatch,
		ATSScore:           ats.Score,
		MissingKeywords:    capList(allMissing, reportedKeywordLimit),
		FoundKeywords:      capList(allFound, reportedKeywordLimit),
		SectionScores:      sectionScores,
		ProfileSummary:     sig.profileSummary(grade.Letter),
		Strengths:          capList(strengths, feedbackListLimit),
		Weaknesses:         capList(weaknesses, feedbackListLimit),
		ActionItems:        capList(actions, feedbackListLimit),
		KeywordDensity:     roundedDensity,
		ReadabilityScore:   readability,
		FormattingFeedback: sig.formattingFeedback(),
		RecommendedRoles:   capList(roles.Recommend(resume), reportedRoleLimit),
		AnalysisMode:       report.ModeLocal,

		Cliches:                capList(cliches, reportedClicheLimit),
		ActionVerbAnalysis:     verbs,
		QuantificationAnalysis: quant,
		ATSDetailed: report.ATSDetailed{
			OverallScore:         ats.Score,
			HasEmail:             ats.Contact.Email,
			HasPhone:             ats.Contact.Phone,
			HasLinkedIn:          ats.Contact.LinkedIn,
			HasCleanFormatting:   ats.CleanFormatting,
			SectionHeadingsValid: ats.SectionHeadingsValid,
			KeywordDensity:       roundedDensity,
			Issues:               ats.Issues,
			Recommendations:      ats.Recommendations,
		},
		ContentImprovements: improvements,

		SectionCompleteness: grade.Completeness,
		OverallGrade:        grade.Letter,
	}
}

// gradeSectionScores keeps the scores of sections the résumé actually has.
// Absent sections still appear in the report but stay out of the grade.
func gradeSectionScores(secs *sections.Map, scores map[sections.Kind]scoring.SectionScore) map[sections.Kind]int {
	out := make(map[sections.Kind]int, len(scores))
	for kind, s := range scores {
		if scoring.SectionPresent(secs.Get(kind)) {
			out[kind] = s.Score
		}
	}
	return out
}

// mergeBigrams adds job description bigrams to the exact keyword lists by
// substring presence in the résumé.
func mergeBigrams(resume string, bigrams, found, missing []string) ([]string, []string) {
	lower := strings.ToLower(resume)
	inFound := toSet(found)
	inMissing := toSet(missing)
	for _, bg := range bigrams {
		present := strings.Contains(lower, bg)
		switch {
		case present && !inFound[bg]:
			found = append(found, bg)
			inFound[bg] = true
		case !present && !inMissing[bg]:
			missing = append(missing, bg)
			inMissing[bg] = true
		}
	}
	return found, missing
}

func roundDensity(d float64) float64 {
	return math.Round(d*densityPrecision) / densityPrecision
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func subtract(items, remove []string) []string {
	drop := toSet(remove)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !drop[item] {
			out = append(out, item)
		}
	}
	return out
}

func capList[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
