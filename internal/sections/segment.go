package sections

import (
	"regexp"
	"strings"
)

// maxHeaderLength bounds the trimmed length of a line that may act as a section header.
const maxHeaderLength = 60

type headerPattern struct {
	re   *regexp.Regexp
	kind Kind
}

// Checked in order; the first match wins.
var headerPatterns = []headerPattern{
	{regexp.MustCompile(`(?i)^(?:professional\s+)?summary\b`), Summary},
	{regexp.MustCompile(`(?i)^(?:career\s+)?objective\b`), Summary},
	{regexp.MustCompile(`(?i)^(?:about\s+me|profile)\s*(?::|$)`), Summary},
	{regexp.MustCompile(`(?i)^(?:technical\s+)?skills?\b`), Skills},
	{regexp.MustCompile(`(?i)^(?:core\s+)?competenc`), Skills},
	{regexp.MustCompile(`(?i)^technolog`), Skills},
	{regexp.MustCompile(`(?i)^(?:work\s+)?experience\b`), Experience},
	{regexp.MustCompile(`(?i)^(?:professional\s+)?experience\b`), Experience},
	{regexp.MustCompile(`(?i)^employment\b`), Experience},
	{regexp.MustCompile(`(?i)^(?:work\s+)?history\b`), Experience},
	{regexp.MustCompile(`(?i)^education\b`), Education},
	{regexp.MustCompile(`(?i)^academic\b`), Education},
	{regexp.MustCompile(`(?i)^qualifications?\b`), Education},
	{regexp.MustCompile(`(?i)^projects?\b`), Projects},
	{regexp.MustCompile(`(?i)^(?:personal|key)\s+projects?\b`), Projects},
	{regexp.MustCompile(`(?i)^certifications?\b`), Certifications},
	{regexp.MustCompile(`(?i)^(?:licenses?|credentials?)\b`), Certifications},
	{regexp.MustCompile(`(?i)^achievements?\b`), Achievements},
	{regexp.MustCompile(`(?i)^awards?\b`), Achievements},
	{regexp.MustCompile(`(?i)^languages?\b`), Languages},
	{regexp.MustCompile(`(?i)^interests?\b`), Interests},
	{regexp.MustCompile(`(?i)^hobbies?\b`), Interests},
	{regexp.MustCompile(`(?i)^volunteer`), Volunteer},
	{regexp.MustCompile(`(?i)^publications?\b`), Publications},
	{regexp.MustCompile(`(?i)^references?\b`), References},
}

// MatchHeader reports the section kind a single line opens, if any.
func MatchHeader(line string) (Kind, bool) {
	stripped := strings.TrimSpace(line)
	if stripped == "" || len(stripped) >= maxHeaderLength {
		return Kind{}, false
	}
	for _, p := range headerPatterns {
		if p.re.MatchString(stripped) {
			return p.kind, true
		}
	}
	return Kind{}, false
}

// Segment splits résumé text into sections.
//
// Lines before the first recognised header belong to Header. Header lines
// themselves are consumed, except for inline content after a colon
// ("Skills: Go, SQL"), which becomes the first line of the new section.
// A section heading that repeats appends to the earlier text of that kind.
func Segment(text string) *Map {
	m := newMap()
	current := Header
	var pending []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(pending, "\n"))
		pending = pending[:0]
		if content == "" {
			return
		}
		m.append(current, content)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		kind, ok := MatchHeader(line)
		if !ok {
			pending = append(pending, line)
			continue
		}

		flush()
		current = kind
		if inline := inlineContent(line); inline != "" {
			pending = append(pending, inline)
		}
	}
	flush()

	return m
}

func inlineContent(line string) string {
	idx := strings.Index(line, ":")
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}
