// Package ai declares the optional hosted enhancement pass of an analysis.
package ai

import (
	"context"
)

// SectionAssessment is a hosted model's verdict on one résumé section.
type SectionAssessment struct {
	Score      int    `mapstructure:"score"`
	Suggestion string `mapstructure:"suggestion"`
}

// Assessment is a hosted model's evaluation of a résumé against a job
// description. Scores are clamped to [0,100] by the provider.
type Assessment struct {
	JDMatch            int                          `mapstructure:"jd_match"`
	ATSScore           int                          `mapstructure:"ats_score"`
	MissingKeywords    []string                     `mapstructure:"missing_keywords"`
	FoundKeywords      []string                     `mapstructure:"found_keywords"`
	SectionScores      map[string]SectionAssessment `mapstructure:"section_scores"`
	ProfileSummary     string                       `mapstructure:"profile_summary"`
	Strengths          []string                     `mapstructure:"strengths"`
	Weaknesses         []string                     `mapstructure:"weaknesses"`
	ActionItems        []string                     `mapstructure:"action_items"`
	KeywordDensity     float64                      `mapstructure:"keyword_density"`
	ReadabilityScore   *int                         `mapstructure:"readability_score"`
	FormattingFeedback string                       `mapstructure:"formatting_feedback"`
	RecommendedRoles   []string                     `mapstructure:"recommended_roles"`

	Raw string `mapstructure:"-"`
}

// Enhancer produces an independent assessment that is merged with the local one.
type Enhancer interface {
	Assess(ctx context.Context, resume, jobDescription string) (*Assessment, error)
	Model() string
}
