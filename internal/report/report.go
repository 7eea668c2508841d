// Package report defines the serialized result of an analysis.
//
// Field names and value ranges are a compatibility surface for consumers:
// scores are integers in [0,100] and keyword density is a float in [0,1].
package report

import (
	"github.com/spigell/resumelyze/internal/feedback"
	"github.com/spigell/resumelyze/internal/roles"
	"github.com/spigell/resumelyze/internal/scoring"
	"github.com/spigell/resumelyze/internal/sections"
)

// Analysis modes.
const (
	ModeLocal      = "local"
	ModeHybrid     = "hybrid"
	ModeAIFallback = "local (AI fallback)"
)

// ATSDetailed is the itemised ATS check.
type ATSDetailed struct {
	OverallScore         int      `json:"overall_score"`
	HasEmail             bool     `json:"has_email"`
	HasPhone             bool     `json:"has_phone"`
	HasLinkedIn          bool     `json:"has_linkedin"`
	HasCleanFormatting   bool     `json:"has_clean_formatting"`
	SectionHeadingsValid bool     `json:"section_headings_valid"`
	KeywordDensity       float64  `json:"keyword_density"`
	Issues               []string `json:"issues"`
	Recommendations      []string `json:"recommendations"`
}

// ScoreBreakdown is the full result of one analysis. It is built once and
// not modified after it is returned.
type ScoreBreakdown struct {
	AnalysisID string `json:"analysis_id"`

	JDMatch         int                                    `json:"jd_match"`
	ATSScore        int                                    `json:"ats_score"`
	MissingKeywords []string                               `json:"missing_keywords"`
	FoundKeywords   []string                               `json:"found_keywords"`
	SectionScores   map[sections.Kind]scoring.SectionScore `json:"section_scores"`

	ProfileSummary string   `json:"profile_summary"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	ActionItems    []string `json:"action_items"`

	KeywordDensity     float64  `json:"keyword_density"`
	ReadabilityScore   int      `json:"readability_score"`
	FormattingFeedback string   `json:"formatting_feedback"`
	RecommendedRoles   []string `json:"recommended_roles"`
	AnalysisMode       string   `json:"analysis_mode"`

	Cliches                []feedback.Cliche       `json:"cliches"`
	ActionVerbAnalysis     feedback.VerbAnalysis   `json:"action_verb_analysis"`
	QuantificationAnalysis feedback.Quantification `json:"quantification_analysis"`
	ATSDetailed            ATSDetailed             `json:"ats_detailed"`
	ContentImprovements    []feedback.Improvement  `json:"content_improvements"`

	SectionCompleteness int    `json:"section_completeness"`
	OverallGrade        string `json:"overall_grade"`
}

// SkillsResult is the categorised skill match between a job description and a résumé.
type SkillsResult struct {
	Role              string                `json:"role"`
	HardSkills        []roles.SkillCategory `json:"hard_skills"`
	SoftSkills        []string              `json:"soft_skills"`
	MissingFromResume []string              `json:"missing_from_resume"`
	MatchingInResume  []string              `json:"matching_in_resume"`
}
