package feedback

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultImprovements is the usual number of rewritten bullets.
	DefaultImprovements = 5

	minImprovableLine  = 20
	minImprovableClean = 15
	keywordWindow      = 5
	maxKeywordHints    = 2
	maxMissingKeywords = 3
)

var (
	hasDigit = regexp.MustCompile(`\d`)

	// weakVerbLeads matches each weak verb phrase at the start of a line.
	weakVerbLeads = map[string]*regexp.Regexp{}
)

func init() {
	for weak := range weakVerbs {
		parts := strings.Fields(weak)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		weakVerbLeads[weak] = regexp.MustCompile(`(?i)^` + strings.Join(parts, `\s+`))
	}
}

// Placeholders appended to lines without numbers, by topic. First match wins.
var placeholders = []struct {
	words  []string
	suffix string
	issue  string
}{
	{[]string{"team"}, ", impacting a team of [X] members", "added team size quantification"},
	{[]string{"project", "feature", "system", "application"}, ", resulting in [X]% improvement in [metric]", "added measurable impact"},
	{[]string{"process", "workflow", "efficiency"}, ", reducing [time/cost] by [X]%", "added efficiency metric"},
	{[]string{"revenue", "sales", "growth", "customer"}, ", generating $[X] in additional [revenue/savings]", "added financial impact"},
}

const (
	genericPlaceholder = ", achieving [X]% [relevant metric]"
	genericIssue       = "added quantification placeholder"
)

// Improvement is a suggested rewrite of one résumé line.
type Improvement struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}

// SuggestImprovements rewrites up to limit weak lines of the résumé. Only
// the first few job description keywords are considered for hints.
func SuggestImprovements(resume string, jdKeywords []string, limit int) []Improvement {
	out := []Improvement{}
	if limit <= 0 {
		return out
	}

	for _, line := range strings.Split(strings.TrimSpace(resume), "\n") {
		if len(out) >= limit {
			break
		}

		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < minImprovableLine || isHeaderLine(line) {
			continue
		}
		clean := cleanBullet(line)
		if utf8.RuneCountInString(clean) < minImprovableClean {
			continue
		}

		if imp, ok := improveLine(clean, jdKeywords); ok {
			out = append(out, imp)
		}
	}

	return out
}

func improveLine(original string, jdKeywords []string) (Improvement, bool) {
	lower := strings.ToLower(original)
	words := strings.Fields(lower)
	if len(words) == 0 {
		return Improvement{}, false
	}

	var issues []string
	improved := original

	if weak := matchWeakVerb(words); weak != "" {
		replacement := capitalize(weakVerbs[weak][0])
		improved = weakVerbLeads[weak].ReplaceAllLiteralString(improved, replacement)
		issues = append(issues, "upgraded to a stronger action verb")
	}

	if !hasDigit.MatchString(original) {
		improved = strings.TrimRight(improved, ".")
		suffix, issue := genericPlaceholder, genericIssue
	topics:
		for _, p := range placeholders {
			for _, w := range p.words {
				if strings.Contains(lower, w) {
					suffix, issue = p.suffix, p.issue
					break topics
				}
			}
		}
		improved += suffix
		issues = append(issues, issue)
	}

	var missing []string
	for _, kw := range jdKeywords[:min(keywordWindow, len(jdKeywords))] {
		if !strings.Contains(lower, kw) {
			missing = append(missing, kw)
		}
	}
	if len(missing) > 0 && len(missing) <= maxMissingKeywords {
		issues = append(issues, "consider incorporating: "+strings.Join(missing[:min(maxKeywordHints, len(missing))], ", "))
	}

	if len(issues) == 0 || (improved == original && len(issues) < 2) {
		return Improvement{}, false
	}

	return Improvement{
		Original: original,
		Improved: improved,
		Reason:   capitalize(strings.Join(issues, "; ")),
	}, true
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
