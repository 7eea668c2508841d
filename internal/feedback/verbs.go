package feedback

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	maxVerbsReported   = 10
	maxVerbSuggestions = 6
	noVerbScore        = 30
)

var bulletMarker = regexp.MustCompile(`^[\s•\-*\d.)]+`)

// Weak opening phrases and their stronger alternatives, best first.
var weakVerbs = map[string][]string{
	"managed":             {"orchestrated", "directed", "spearheaded", "oversaw"},
	"helped":              {"facilitated", "enabled", "contributed to", "supported"},
	"worked":              {"collaborated", "partnered", "executed", "delivered"},
	"worked on":           {"developed", "built", "engineered", "crafted"},
	"did":                 {"executed", "accomplished", "completed", "delivered"},
	"made":                {"created", "produced", "constructed", "developed"},
	"used":                {"leveraged", "utilized", "applied", "employed"},
	"got":                 {"secured", "obtained", "acquired", "earned"},
	"was responsible for": {"led", "owned", "drove", "managed"},
	"was in charge of":    {"directed", "led", "supervised", "headed"},
	"handled":             {"managed", "processed", "coordinated", "oversaw"},
	"showed":              {"demonstrated", "illustrated", "presented", "proved"},
	"tried":               {"pursued", "attempted", "explored", "investigated"},
	"ran":                 {"administered", "operated", "directed", "managed"},
	"looked at":           {"analyzed", "evaluated", "assessed", "reviewed"},
	"checked":             {"audited", "verified", "validated", "inspected"},
	"set up":              {"established", "configured", "launched", "initialized"},
	"put together":        {"assembled", "compiled", "organized", "composed"},
	"came up with":        {"devised", "formulated", "conceived", "designed"},
	"went through":        {"reviewed", "analyzed", "processed", "examined"},
	"took care of":        {"managed", "administered", "maintained", "handled"},
	"talked to":           {"consulted", "engaged", "communicated with", "advised"},
	"changed":             {"transformed", "revamped", "modified", "restructured"},
	"fixed":               {"resolved", "remediated", "corrected", "repaired"},
	"started":             {"initiated", "launched", "pioneered", "established"},
	"ended":               {"concluded", "finalized", "completed", "terminated"},
	"improved":            {"enhanced", "elevated", "refined", "advanced"},
	"increased":           {"amplified", "boosted", "expanded", "accelerated"},
	"decreased":           {"reduced", "minimized", "curtailed", "lowered"},
	"assisted":            {"supported", "aided", "facilitated", "contributed"},
	"participated":        {"contributed", "engaged in", "played a key role in"},
	"communicated":        {"presented", "articulated", "conveyed", "briefed"},
	"learned":             {"mastered", "acquired expertise in", "developed proficiency in"},
}

var strongVerbs = wordSet(`
	accelerated accomplished achieved acquired adapted administered advanced advocated
	amplified analyzed appointed approved architected assembled assessed attained
	audited authored automated balanced boosted budgeted built calculated captured
	centralized championed clarified coached collaborated compiled composed
	conceptualized conducted configured consolidated constructed consulted converted
	coordinated crafted cultivated customized debugged decentralized decreased defined
	delegated delivered deployed designed devised diagnosed digitized directed
	discovered documented doubled drove earned edited educated elevated eliminated
	empowered enabled encouraged engineered enhanced established evaluated examined
	exceeded executed expanded expedited experimented fabricated facilitated finalized
	forecasted formalized formulated founded generated governed grew guided halved
	headed identified illustrated implemented improved incorporated increased
	influenced initiated innovated inspected installed instituted integrated
	introduced invented investigated launched led leveraged licensed maintained mapped
	marketed maximized mediated mentored merged migrated minimized mobilized
	modernized modified monitored motivated navigated negotiated normalized obtained
	onboarded operated optimized orchestrated organized originated outperformed
	overhauled oversaw partnered piloted pioneered planned presented prioritized
	produced programmed projected promoted proposed prototyped provisioned published
	raised ranked reconciled redesigned reduced refactored refined reformed regulated
	remodeled renegotiated reorganized replaced reported researched resolved
	restructured revamped reviewed revitalized revolutionized scaled scheduled secured
	simplified solved spearheaded specified standardized steered streamlined
	strengthened structured succeeded supervised surpassed synthesized systematized
	targeted tested traced trained transitioned transformed translated tripled
	troubleshot uncovered unified upgraded validated visualized`)

func wordSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// VerbAnalysis rates the verbs that open résumé lines.
type VerbAnalysis struct {
	Score       int      `json:"score"`
	WeakVerbs   []string `json:"weak_verbs"`
	StrongVerbs []string `json:"strong_verbs"`
	Suggestions []string `json:"suggestions"`
}

// matchWeakVerb returns the longest weak phrase among the first three words.
func matchWeakVerb(words []string) string {
	for n := min(3, len(words)); n > 0; n-- {
		phrase := strings.Join(words[:n], " ")
		if _, ok := weakVerbs[phrase]; ok {
			return phrase
		}
	}
	return ""
}

// AnalyzeVerbs classifies the opening verb of every line. Each distinct verb
// counts once. A line opening with a weak phrase never counts as strong.
func AnalyzeVerbs(text string) VerbAnalysis {
	result := VerbAnalysis{WeakVerbs: []string{}, StrongVerbs: []string{}, Suggestions: []string{}}
	seenWeak := make(map[string]struct{})
	seenStrong := make(map[string]struct{})

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(strings.ToLower(bulletMarker.ReplaceAllString(line, "")))
		if len(words) == 0 {
			continue
		}

		if weak := matchWeakVerb(words); weak != "" {
			if _, ok := seenWeak[weak]; !ok {
				seenWeak[weak] = struct{}{}
				result.WeakVerbs = append(result.WeakVerbs, weak)
				alt := weakVerbs[weak]
				result.Suggestions = append(result.Suggestions, fmt.Sprintf("Replace '%s' with '%s' or '%s'", weak, alt[0], alt[1]))
			}
			continue
		}

		first := words[0]
		if _, ok := strongVerbs[first]; !ok {
			continue
		}
		if _, ok := seenStrong[first]; !ok {
			seenStrong[first] = struct{}{}
			result.StrongVerbs = append(result.StrongVerbs, first)
		}
	}

	total := len(result.WeakVerbs) + len(result.StrongVerbs)
	if total == 0 {
		result.Score = noVerbScore
		result.Suggestions = append(result.Suggestions,
			"Start bullet points with strong action verbs like 'Led', 'Architected', 'Delivered'")
	} else {
		ratio := float64(len(result.StrongVerbs)) / float64(total)
		result.Score = int(math.Round(ratio*80 + 20))
	}

	if len(result.StrongVerbs) == 0 && len(result.WeakVerbs) > 0 {
		result.Suggestions = append(result.Suggestions, "Try to start every bullet point with a strong action verb")
	}

	result.WeakVerbs = capList(result.WeakVerbs, maxVerbsReported)
	result.StrongVerbs = capList(result.StrongVerbs, maxVerbsReported)
	result.Suggestions = capList(result.Suggestions, maxVerbSuggestions)
	return result
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
