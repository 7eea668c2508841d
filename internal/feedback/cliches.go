// Package feedback turns a résumé into concrete writing advice: overused
// phrases, weak verbs, unquantified achievements and rewritten bullets.
package feedback

import (
	"fmt"
	"regexp"
	"strings"
)

// Cliche is an overused phrase found in a résumé with advice on replacing it.
type Cliche struct {
	Phrase     string `json:"phrase"`
	Suggestion string `json:"suggestion"`
}

type clicheEntry struct {
	phrase     string
	suggestion string
	pattern    *regexp.Regexp
}

var clicheDictionary = []clicheEntry{
	// Self-descriptors.
	{phrase: "results-driven", suggestion: "Replace with a specific achievement that demonstrates measurable results"},
	{phrase: "results-oriented", suggestion: "Show results through quantified accomplishments instead"},
	{phrase: "self-motivated", suggestion: "Describe an initiative you took independently with measurable outcome"},
	{phrase: "self-starter", suggestion: "Give an example of a project you initiated on your own"},
	{phrase: "self-driven", suggestion: "Show a goal you set for yourself and what it produced"},
	{phrase: "hard worker", suggestion: "Replace with specific examples of dedication (e.g., 'Completed X ahead of schedule')"},
	{phrase: "hardworking", suggestion: "Show work ethic through quantified achievements, not adjectives"},
	{phrase: "go-getter", suggestion: "Describe a proactive achievement with specific impact"},
	{phrase: "goal-oriented", suggestion: "Name a goal you hit and the number that proves it"},
	{phrase: "detail-oriented", suggestion: "Show attention to detail through a specific quality achievement"},
	{phrase: "team player", suggestion: "Describe a specific cross-functional collaboration and its outcome"},
	{phrase: "team-oriented", suggestion: "Mention a concrete team achievement with your role in it"},
	{phrase: "people person", suggestion: "Describe a relationship you built and what it enabled"},
	{phrase: "go-to person", suggestion: "Say what colleagues relied on you for and how often"},
	{phrase: "dynamic", suggestion: "Replace with a specific example of adaptability"},
	{phrase: "passionate", suggestion: "Show passion through concrete actions and achievements"},
	{phrase: "passionate about", suggestion: "Demonstrate passion through specific accomplishments in that area"},
	{phrase: "enthusiastic", suggestion: "Replace with evidence of enthusiasm through achievements"},
	{phrase: "highly motivated", suggestion: "Describe what motivated you and the outcome it produced"},
	{phrase: "proactive", suggestion: "Give an example of anticipating a problem and solving it"},
	{phrase: "innovative", suggestion: "Describe a specific innovation you introduced and its impact"},
	{phrase: "innovative thinker", suggestion: "Describe a creative solution you implemented with measurable results"},
	{phrase: "strategic thinker", suggestion: "Show strategic thinking through a specific decision and outcome"},
	{phrase: "think outside the box", suggestion: "Describe a creative solution you designed with specific results"},
	{phrase: "thought leader", suggestion: "Reference published articles, talks, or initiatives that show expertise"},
	{phrase: "dedicated professional", suggestion: "Let tenure and results show dedication instead of stating it"},
	{phrase: "customer-focused", suggestion: "Cite a customer metric you moved, such as retention or satisfaction"},
	{phrase: "works well under pressure", suggestion: "Describe a deadline or incident you handled and its outcome"},

	// Vague duty descriptions.
	{phrase: "responsible for", suggestion: "Start with an action verb: what did you actually DO?"},
	{phrase: "responsibilities included", suggestion: "Replace with 'Led', 'Managed', 'Built', or another strong action verb"},
	{phrase: "duties included", suggestion: "Replace with action verbs describing what you accomplished"},
	{phrase: "worked on", suggestion: "Specify your exact contribution: what did you build, improve, or deliver?"},
	{phrase: "helped with", suggestion: "Specify your role: Did you design, build, test, review, lead?"},
	{phrase: "assisted with", suggestion: "Clarify your specific contribution and its impact"},
	{phrase: "involved in", suggestion: "Specify your role and contribution to the project"},
	{phrase: "participated in", suggestion: "Describe your specific contribution and the outcome"},
	{phrase: "was tasked with", suggestion: "Use an action verb: Led, Developed, Implemented instead"},
	{phrase: "dealt with", suggestion: "Replace with specific action: Resolved, Negotiated, Managed"},

	// Unsupported claims.
	{phrase: "excellent communication skills", suggestion: "Provide an example: 'Presented to C-suite stakeholders' or 'Wrote documentation used by 50+ engineers'"},
	{phrase: "strong communication", suggestion: "Give a concrete example of effective communication"},
	{phrase: "excellent interpersonal skills", suggestion: "Describe a relationship-building achievement"},
	{phrase: "strong work ethic", suggestion: "Demonstrate through achievements, not self-description"},
	{phrase: "proven track record", suggestion: "Replace with the actual track record and cite specific outcomes"},
	{phrase: "track record of success", suggestion: "List the successes themselves with numbers"},
	{phrase: "proven ability", suggestion: "Show the ability through a concrete example with metrics"},
	{phrase: "extensive experience", suggestion: "Specify years and key achievements in that experience"},
	{phrase: "significant experience", suggestion: "Quantify: '8+ years leading teams of 10-15 engineers'"},
	{phrase: "vast experience", suggestion: "Replace with specific years, technologies, and achievements"},
	{phrase: "strong background", suggestion: "Detail the background with specifics"},
	{phrase: "well-versed", suggestion: "List specific technologies and experience level"},
	{phrase: "proficient in", suggestion: "Show proficiency through projects and achievements, not claims"},
	{phrase: "expert in", suggestion: "Back up expertise with certifications, years, or notable projects"},
	{phrase: "seasoned professional", suggestion: "Replace with specific experience details and achievements"},
	{phrase: "go above and beyond", suggestion: "Describe a specific instance with measurable impact"},
	{phrase: "wear many hats", suggestion: "List specific roles/skills you've demonstrated"},
	{phrase: "hit the ground running", suggestion: "Describe your onboarding speed with a specific example"},
	{phrase: "fast learner", suggestion: "Prove it: 'Learned X technology and delivered Y feature within 2 weeks'"},
	{phrase: "quick learner", suggestion: "Provide an example of rapid skill acquisition with tangible results"},

	// Corporate buzzwords.
	{phrase: "managed a team", suggestion: "Specify team size and what you delivered: 'Led 8 engineers to ship X'"},
	{phrase: "worked with cross-functional teams", suggestion: "Name the teams and the joint outcome"},
	{phrase: "synergy", suggestion: "Describe the specific collaboration and outcome"},
	{phrase: "leverage", suggestion: "Use a more specific verb: 'utilized', 'applied', 'integrated'"},
	{phrase: "paradigm shift", suggestion: "Describe the change you made and its measurable impact"},
	{phrase: "value-add", suggestion: "Describe the specific value with metrics"},
	{phrase: "best practices", suggestion: "Name the specific practices you implemented"},
	{phrase: "best-in-class", suggestion: "Cite the benchmark or comparison that supports this claim"},
	{phrase: "cutting-edge", suggestion: "Name the specific technologies"},
	{phrase: "state-of-the-art", suggestion: "Name the specific technologies or methods"},
	{phrase: "next-generation", suggestion: "Describe what makes it next-gen"},
	{phrase: "world-class", suggestion: "Replace with specific quality metrics or comparisons"},
	{phrase: "bottom line", suggestion: "Use specific financial metrics instead"},
	{phrase: "move the needle", suggestion: "Quantify the exact impact: 'Increased revenue by 15%'"},
	{phrase: "stakeholder management", suggestion: "Describe specific stakeholder interactions and outcomes"},
}

// Inflected forms of dictionary phrases. Checked before the dictionary.
var clichePatterns = []struct {
	pattern *regexp.Regexp
	phrase  string
}{
	{regexp.MustCompile(`(?i)\bresponsible\s+for\b`), "responsible for"},
	{regexp.MustCompile(`(?i)\bduties\s+included\b`), "duties included"},
	{regexp.MustCompile(`(?i)\bresponsibilities\s+included\b`), "responsibilities included"},
	{regexp.MustCompile(`(?i)\bworked\s+on\b`), "worked on"},
	{regexp.MustCompile(`(?i)\bhelped\s+(?:to\s+)?(?:with|in)\b`), "helped with"},
	{regexp.MustCompile(`(?i)\bassisted\s+(?:with|in)\b`), "assisted with"},
	{regexp.MustCompile(`(?i)\binvolved\s+in\b`), "involved in"},
	{regexp.MustCompile(`(?i)\bparticipated\s+in\b`), "participated in"},
	{regexp.MustCompile(`(?i)\bproven\s+track\s+record\b`), "proven track record"},
	{regexp.MustCompile(`(?i)\bthink(?:ing)?\s+outside\s+(?:the\s+)?box\b`), "think outside the box"},
	{regexp.MustCompile(`(?i)\bgo(?:es|ing)?\s+above\s+and\s+beyond\b`), "go above and beyond"},
	{regexp.MustCompile(`(?i)\bwear(?:s|ing)?\s+many\s+hats\b`), "wear many hats"},
	{regexp.MustCompile(`(?i)\bhit(?:ting)?\s+the\s+ground\s+running\b`), "hit the ground running"},
	{regexp.MustCompile(`(?i)\bmove(?:d|s|ing)?\s+the\s+needle\b`), "move the needle"},
	{regexp.MustCompile(`(?i)\bpassionate\s+about\b`), "passionate about"},
	{regexp.MustCompile(`(?i)\bextensive\s+experience\b`), "extensive experience"},
}

var clicheSuggestions = map[string]string{}

func init() {
	for i := range clicheDictionary {
		e := &clicheDictionary[i]
		clicheSuggestions[e.phrase] = e.suggestion
		// Short phrases match on word boundaries; longer ones as substrings.
		if len(strings.Fields(e.phrase)) <= 2 {
			e.pattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.phrase) + `\b`)
		}
	}
}

// DetectCliches lists every overused phrase in text once, inflection
// patterns first, then dictionary order.
func DetectCliches(text string) []Cliche {
	found := []Cliche{}
	seen := make(map[string]struct{})
	lower := strings.ToLower(text)

	report := func(phrase string) {
		suggestion, ok := clicheSuggestions[phrase]
		if !ok {
			suggestion = fmt.Sprintf("Replace '%s' with a specific, measurable achievement", phrase)
		}
		found = append(found, Cliche{Phrase: phrase, Suggestion: suggestion})
		seen[phrase] = struct{}{}
	}

	for _, p := range clichePatterns {
		if _, ok := seen[p.phrase]; ok {
			continue
		}
		if p.pattern.MatchString(text) {
			report(p.phrase)
		}
	}

	for _, e := range clicheDictionary {
		if _, ok := seen[e.phrase]; ok {
			continue
		}
		var hit bool
		if e.pattern != nil {
			hit = e.pattern.MatchString(text)
		} else {
			hit = strings.Contains(lower, e.phrase)
		}
		if hit {
			report(e.phrase)
		}
	}

	return found
}
