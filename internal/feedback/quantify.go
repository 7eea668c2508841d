package feedback

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	noBulletScore        = 20
	maxQuantSuggestions  = 5
	maxUnquantifiedShown = 3
	minContentLine       = 20
	excerptLength        = 80
)

var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+(?:\.\d+)?%`),
	regexp.MustCompile(`\$[\d,]+(?:\.\d+)?(?:\s*[KMBkmb])?\b`),
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?x\b`),
	regexp.MustCompile(`(?i)\b\d+\+?\s*(?:users?|customers?|clients?|employees?|people|engineers?|developers?|members?)\b`),
	regexp.MustCompile(`(?i)\b\d+\+?\s*(?:projects?|applications?|features?|products?|services?|systems?)\b`),
	regexp.MustCompile(`(?i)\b\d+\+?\s*(?:years?|months?|weeks?|days?|hours?)\b`),
	regexp.MustCompile(`(?i)\b(?:increased|decreased|reduced|improved|grew|boosted|cut|saved|generated)\s+(?:by\s+)?\d+`),
	regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+\b`),
	regexp.MustCompile(`(?i)\b(?:top|bottom)\s+\d+%?`),
	regexp.MustCompile(`\b\d+\s*(?:to|[-–])\s*\d+\b`),
}

var bulletLine = regexp.MustCompile(`^[•\-*\d.)]+\s+\S`)

var headerWords = wordSet(`summary skills experience education projects
	certifications achievements awards objective profile qualifications
	references interests`)

// Quantification reports how many achievement lines carry a metric.
type Quantification struct {
	Score       int      `json:"score"`
	Quantified  int      `json:"quantified_bullets"`
	Total       int      `json:"total_bullets"`
	Suggestions []string `json:"suggestions"`
}

// IsQuantified reports whether line contains a percentage, amount, count or
// other metric.
func IsQuantified(line string) bool {
	for _, p := range metricPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// AnalyzeQuantification counts bullets and substantial non-header lines and
// checks which of them are quantified.
func AnalyzeQuantification(text string) Quantification {
	var bullets []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if bulletLine.MatchString(line) || (utf8.RuneCountInString(line) > minContentLine && !isHeaderLine(line)) {
			bullets = append(bullets, line)
		}
	}

	result := Quantification{Total: len(bullets), Suggestions: []string{}}
	var unquantified []string
	for _, b := range bullets {
		if IsQuantified(b) {
			result.Quantified++
			continue
		}
		unquantified = append(unquantified, b)
	}

	if result.Total == 0 {
		result.Score = noBulletScore
	} else {
		ratio := float64(result.Quantified) / float64(result.Total)
		result.Score = int(math.Round(math.Min(100, ratio*150+10)))
	}

	switch {
	case result.Quantified == 0:
		result.Suggestions = append(result.Suggestions,
			"Add numbers and metrics to your achievements: quantified bullets are 40% more likely to catch a recruiter's attention")
	case float64(result.Quantified) < float64(result.Total)*0.3:
		result.Suggestions = append(result.Suggestions,
			"Try to quantify at least 50% of your bullet points with specific numbers, percentages, or dollar amounts")
	}

	shown := 0
	for _, b := range unquantified {
		if shown == maxUnquantifiedShown {
			break
		}
		clean := cleanBullet(b)
		if utf8.RuneCountInString(clean) <= 15 {
			continue
		}
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("Add metrics to: \"%s...\" How many? How much? What %% improvement?", truncate(clean, excerptLength)))
		shown++
	}

	if result.Total > 0 && float64(result.Quantified)/float64(result.Total) >= 0.5 {
		result.Suggestions = append(result.Suggestions, "Great job quantifying your achievements! Keep it up.")
	}

	result.Suggestions = capList(result.Suggestions, maxQuantSuggestions)
	return result
}

func cleanBullet(line string) string {
	return strings.TrimSpace(bulletMarker.ReplaceAllString(strings.TrimSpace(line), ""))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// isHeaderLine reports whether a line looks like a section title.
func isHeaderLine(line string) bool {
	line = strings.TrimSpace(line)
	n := utf8.RuneCountInString(line)
	if n > 50 {
		return false
	}
	if isUpper(line) && n < 40 {
		return true
	}
	_, ok := headerWords[strings.TrimRight(strings.ToLower(line), ":")]
	return ok
}

// isUpper reports whether s has letters and all of them are upper case.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
