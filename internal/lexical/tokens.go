// Package lexical holds the stateless text features used by the scorers:
// tokens, keywords, n-grams, contact details, bullets and readability.
package lexical

import (
	"regexp"
	"sort"
	"strings"
)

const (
	minTokenLength   = 2
	maxTokenLength   = 30
	minKeywordLength = 3
)

var tokenPattern = regexp.MustCompile(`[a-z][a-z+#.]*`)

var stopWords = toSet(
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from",
	"had", "has", "have", "he", "her", "his", "how", "i", "if", "in", "into",
	"is", "it", "its", "just", "me", "more", "my", "no", "nor", "not", "of",
	"on", "or", "our", "out", "own", "per", "she", "so", "some", "than",
	"that", "the", "their", "them", "then", "there", "these", "they", "this",
	"those", "through", "to", "too", "under", "up", "very", "was", "we",
	"were", "what", "when", "where", "which", "while", "who", "whom", "why",
	"will", "with", "would", "you", "your", "also", "can", "could", "do",
	"does", "may", "might", "shall", "should", "such", "about", "above",
	"after", "again", "all", "already", "among", "any", "because", "been",
	"before", "below", "between", "both", "did", "doing", "each", "few",
	"get", "got", "here", "new", "now", "only", "other", "over", "same",
	"still", "use", "used", "using", "well", "work", "working", "etc",
	"one", "two", "first", "last", "many", "much", "must", "need", "since",
)

// Keyword is a ranked term with its frequency.
type Keyword struct {
	Term  string
	Count int
}

// IsStopWord reports whether the lowercase token carries no keyword value.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// Tokenize lowercases text and returns word tokens. A token starts with a
// letter and may carry internal '+', '#' or '.' so "c++" and "node.js" survive.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	matches := tokenPattern.FindAllStringIndex(lower, -1)
	tokens := make([]string, 0, len(matches))

	for _, loc := range matches {
		start, end := loc[0], loc[1]
		if start > 0 && isWordByte(lower[start-1]) {
			continue
		}
		if end < len(lower) && isWordByte(lower[end]) {
			continue
		}

		token := strings.TrimRight(lower[start:end], ".")
		if len(token) < minTokenLength || len(token) > maxTokenLength {
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens
}

// Keywords ranks the content tokens of text by descending frequency.
// Ties keep the order of first occurrence.
func Keywords(text string) []Keyword {
	return rank(contentTokens(text))
}

// ExtractKeywords returns the topN most frequent content tokens.
func ExtractKeywords(text string, topN int) []string {
	return terms(Keywords(text), topN)
}

// ExtractNgrams joins n consecutive content tokens and returns the topK most frequent.
func ExtractNgrams(text string, n, topK int) []string {
	if n <= 0 {
		return nil
	}

	filtered := contentTokens(text)
	if len(filtered) < n {
		return nil
	}

	grams := make([]string, 0, len(filtered)-n+1)
	for i := 0; i+n <= len(filtered); i++ {
		grams = append(grams, strings.Join(filtered[i:i+n], " "))
	}

	return terms(rank(grams), topK)
}

// KeywordOverlap checks which keywords occur in text, case-insensitively.
// Duplicate keywords are considered once. Density is found/unique keywords,
// and 0 when there are no keywords.
func KeywordOverlap(text string, keywords []string) (found, missing []string, density float64) {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{}, len(keywords))
	found = []string{}
	missing = []string{}

	for _, kw := range keywords {
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}

		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	if len(seen) == 0 {
		return found, missing, 0
	}
	return found, missing, float64(len(found)) / float64(len(seen))
}

func contentTokens(text string) []string {
	tokens := Tokenize(text)
	filtered := tokens[:0]
	for _, t := range tokens {
		if len(t) < minKeywordLength || IsStopWord(t) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func rank(items []string) []Keyword {
	index := make(map[string]int, len(items))
	ranked := make([]Keyword, 0, len(items))
	for _, item := range items {
		if i, ok := index[item]; ok {
			ranked[i].Count++
			continue
		}
		index[item] = len(ranked)
		ranked = append(ranked, Keyword{Term: item, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

func terms(ranked []Keyword, limit int) []string {
	if limit < 0 {
		limit = 0
	}
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	out := make([]string, len(ranked))
	for i, kw := range ranked {
		out[i] = kw.Term
	}
	return out
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
