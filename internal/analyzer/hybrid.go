package analyzer

import (
	"strings"

	"github.com/spigell/resumelyze/internal/ai"
	"github.com/spigell/resumelyze/internal/report"
	"github.com/spigell/resumelyze/internal/scoring"
	"github.com/spigell/resumelyze/internal/sections"
)

// merge folds an AI assessment into the local result. Numeric scores are
// averaged, keyword lists are unioned and the AI texts replace the local ones
// when present. Grade, completeness and the feedback passes stay local.
func merge(local *report.ScoreBreakdown, remote *ai.Assessment) {
	local.JDMatch = (local.JDMatch + remote.JDMatch) / 2
	local.ATSScore = (local.ATSScore + remote.ATSScore) / 2

	readability := local.ReadabilityScore
	if remote.ReadabilityScore != nil {
		readability = *remote.ReadabilityScore
	}
	local.ReadabilityScore = (local.ReadabilityScore + readability) / 2

	local.FoundKeywords = capList(union(local.FoundKeywords, remote.FoundKeywords), mergedKeywordLimit)
	local.MissingKeywords = capList(
		subtract(union(local.MissingKeywords, remote.MissingKeywords), local.FoundKeywords),
		mergedKeywordLimit,
	)

	if remote.KeywordDensity > 0 {
		local.KeywordDensity = roundDensity(remote.KeywordDensity)
	}
	local.ATSDetailed.OverallScore = local.ATSScore
	local.ATSDetailed.KeywordDensity = local.KeywordDensity

	local.SectionScores = mergeSections(local.SectionScores, remote.SectionScores)

	local.ProfileSummary = preferText(remote.ProfileSummary, local.ProfileSummary)
	local.FormattingFeedback = preferText(remote.FormattingFeedback, local.FormattingFeedback)
	local.Strengths = preferList(remote.Strengths, local.Strengths, feedbackListLimit)
	local.Weaknesses = preferList(remote.Weaknesses, local.Weaknesses, feedbackListLimit)
	local.ActionItems = preferList(remote.ActionItems, local.ActionItems, feedbackListLimit)
	local.RecommendedRoles = preferList(remote.RecommendedRoles, local.RecommendedRoles, reportedRoleLimit)

	local.AnalysisMode = report.ModeHybrid
}

// mergeSections averages every section known to either side, counting a
// missing side as zero.
func mergeSections(local map[sections.Kind]scoring.SectionScore, remote map[string]ai.SectionAssessment) map[sections.Kind]scoring.SectionScore {
	byKind := make(map[sections.Kind]ai.SectionAssessment, len(remote))
	for name, sec := range remote {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		byKind[sections.Parse(name)] = sec
	}

	out := make(map[sections.Kind]scoring.SectionScore, len(local)+len(byKind))
	for kind, l := range local {
		r := byKind[kind]
		out[kind] = scoring.SectionScore{
			Score:      (l.Score + r.Score) / 2,
			Suggestion: preferText(r.Suggestion, l.Suggestion),
		}
	}
	for kind, r := range byKind {
		if _, ok := local[kind]; ok {
			continue
		}
		out[kind] = scoring.SectionScore{Score: r.Score / 2, Suggestion: strings.TrimSpace(r.Suggestion)}
	}
	return out
}

// union keeps the order of a, then appends unseen items of b, lowercased.
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, item := range list {
			item = strings.ToLower(strings.TrimSpace(item))
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func preferText(preferred, fallback string) string {
	if p := strings.TrimSpace(preferred); p != "" {
		return p
	}
	return fallback
}

func preferList(preferred, fallback []string, limit int) []string {
	var cleaned []string
	for _, item := range preferred {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) == 0 {
		return fallback
	}
	return capList(cleaned, limit)
}
