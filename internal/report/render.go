package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spigell/resumelyze/internal/sections"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Write renders v in the named format. Text rendering is only defined for
// *ScoreBreakdown; other values are always written as JSON.
func Write(w io.Writer, format string, v any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatText:
		b, ok := v.(*ScoreBreakdown)
		if !ok {
			return Write(w, FormatJSON, v)
		}
		return WriteText(w, b)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	t.printf("\n%s:\n", title)
	for _, item := range items {
		t.printf("  - %s\n", item)
	}
}

// WriteText renders a human-readable summary of b.
func WriteText(w io.Writer, b *ScoreBreakdown) error {
	t := &textWriter{w: w}

	t.printf("Grade %s  JD match %d%%  ATS %d/100  Readability %d/100  Keywords %.0f%%\n",
		b.OverallGrade, b.JDMatch, b.ATSScore, b.ReadabilityScore, b.KeywordDensity*100)
	t.printf("Mode: %s  Completeness: %d%%\n\n", b.AnalysisMode, b.SectionCompleteness)
	t.printf("%s\n", b.ProfileSummary)

	if len(b.SectionScores) > 0 {
		t.printf("\nSections:\n")
		for _, kind := range orderedKinds(b) {
			s := b.SectionScores[kind]
			t.printf("  %-14s %3d  %s\n", kind.Title(), s.Score, s.Suggestion)
		}
	}

	t.list("Found keywords", b.FoundKeywords)
	t.list("Missing keywords", b.MissingKeywords)
	t.list("Strengths", b.Strengths)
	t.list("Weaknesses", b.Weaknesses)
	t.list("Action items", b.ActionItems)

	if len(b.Cliches) > 0 {
		t.printf("\nClichés:\n")
		for _, c := range b.Cliches {
			t.printf("  - %q: %s\n", c.Phrase, c.Suggestion)
		}
	}

	t.printf("\nAction verbs: %d/100\n", b.ActionVerbAnalysis.Score)
	t.printf("Quantified bullets: %d of %d (%d/100)\n",
		b.QuantificationAnalysis.Quantified, b.QuantificationAnalysis.Total, b.QuantificationAnalysis.Score)

	if len(b.ContentImprovements) > 0 {
		t.printf("\nSuggested rewrites:\n")
		for _, imp := range b.ContentImprovements {
			t.printf("  - %s\n    => %s\n    (%s)\n", imp.Original, imp.Improved, imp.Reason)
		}
	}

	t.list("Recommended roles", b.RecommendedRoles)
	t.printf("\nFormatting: %s\n", b.FormattingFeedback)

	return t.err
}

// orderedKinds lists standard sections first, then any others by name.
func orderedKinds(b *ScoreBreakdown) []sections.Kind {
	out := make([]sections.Kind, 0, len(b.SectionScores))
	seen := make(map[sections.Kind]bool, len(b.SectionScores))
	for _, kind := range sections.Standard() {
		if _, ok := b.SectionScores[kind]; ok {
			out = append(out, kind)
			seen[kind] = true
		}
	}

	var rest []sections.Kind
	for kind := range b.SectionScores {
		if !seen[kind] {
			rest = append(rest, kind)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].String() < rest[j].String() })

	return append(out, rest...)
}
