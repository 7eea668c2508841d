package lexical

import (
	"math"
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phonePattern    = regexp.MustCompile(`\+?\(?\d(?:[ .\-()]{0,2}\d)+`)
	digitGroup      = regexp.MustCompile(`\d+`)
	yearPattern     = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	yearRange       = regexp.MustCompile(`^(?:19|20)\d{2}\s*-\s*(?:19|20)\d{2}$`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	gitHubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	websitePattern  = regexp.MustCompile(`(?i)https?://[\w.-]+\.\w+(?:/[\w./-]*)?`)

	bulletPattern   = regexp.MustCompile(`(?m)^[ \t]*[•\-*\x{2022}\x{25CF}\x{25CB}\x{2023}\x{2043}►▪▸‣]`)
	numberedPattern = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)

	numberPattern      = regexp.MustCompile(`\b\d+[%+]?`)
	tablePattern       = regexp.MustCompile(`\t.*\t.*\t`)
	imageRefPattern    = regexp.MustCompile(`(?i)\.(?:png|jpe?g|gif|svg|bmp)\b`)
	specialCharPattern = regexp.MustCompile(`[^\w\s.,:;!?\-()/@#$%&*+='"{}\[\]<>]`)
	sentenceSplitter   = regexp.MustCompile(`[.!?]+`)
)

const (
	minPhoneDigits      = 7
	maxPhoneDigits      = 15
	nationalPhoneDigits = 10
	minSentenceLength   = 6
	longWordLength      = 8
	idealSentenceLength = 16.0
)

// Contact flags which kinds of contact details a document carries.
type Contact struct {
	Email    bool `json:"has_email"`
	Phone    bool `json:"has_phone"`
	LinkedIn bool `json:"has_linkedin"`
	GitHub   bool `json:"has_github"`
	Website  bool `json:"has_website"`
}

// DetectContact checks text for an email, phone number, professional network
// profile, code-hosting profile and website.
func DetectContact(text string) Contact {
	return Contact{
		Email:    emailPattern.MatchString(text),
		Phone:    FindPhone(text) != "",
		LinkedIn: linkedInPattern.MatchString(text),
		GitHub:   gitHubPattern.MatchString(text),
		Website:  websitePattern.MatchString(text),
	}
}

// FindEmail returns the first email address in text.
func FindEmail(text string) string {
	return emailPattern.FindString(text)
}

// FindLinkedIn returns the first professional network profile reference in text.
func FindLinkedIn(text string) string {
	return linkedInPattern.FindString(text)
}

// FindPhone returns the first run of 7 to 15 digits, allowing single
// separators between digit groups. Year ranges are not phone numbers, and
// trailing groups are dropped from a run that is too long or that continues
// with a year after a full national number.
func FindPhone(text string) string {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		if yearRange.MatchString(candidate) {
			continue
		}
		if phone := trimPhone(candidate); phone != "" {
			return phone
		}
	}
	return ""
}

func trimPhone(candidate string) string {
	groups := digitGroup.FindAllStringIndex(candidate, -1)
	digits := 0
	for _, g := range groups {
		digits += g[1] - g[0]
	}

	n := len(groups)
	for n > 1 {
		last := candidate[groups[n-1][0]:groups[n-1][1]]
		tooLong := digits > maxPhoneDigits
		trailingYear := digits-len(last) >= nationalPhoneDigits && yearPattern.MatchString(last)
		if !tooLong && !trailingYear {
			break
		}
		digits -= len(last)
		n--
	}

	if n == 0 || digits < minPhoneDigits || digits > maxPhoneDigits {
		return ""
	}
	return strings.TrimSpace(candidate[:groups[n-1][1]])
}

// CountBullets counts lines that start with a bullet glyph or "1." / "1)" numbering.
func CountBullets(text string) int {
	return len(bulletPattern.FindAllStringIndex(text, -1)) + len(numberedPattern.FindAllStringIndex(text, -1))
}

// CountNumbers counts standalone numbers, including "40%" and "10+".
func CountNumbers(text string) int {
	return len(numberPattern.FindAllStringIndex(text, -1))
}

// Formatting describes layout signals that tend to break résumé parsers.
type Formatting struct {
	Tables       bool
	ImageRefs    bool
	SpecialChars int
}

// DetectFormatting looks for tab-aligned tables, image references and unusual symbols.
func DetectFormatting(text string) Formatting {
	return Formatting{
		Tables:       tablePattern.MatchString(text),
		ImageRefs:    imageRefPattern.MatchString(text),
		SpecialChars: len(specialCharPattern.FindAllStringIndex(text, -1)),
	}
}

// Clean reports whether neither tables nor image references were found.
func (f Formatting) Clean() bool {
	return !f.Tables && !f.ImageRefs
}

// Readability scores text from 0 to 100. Sentences near sixteen words score
// best; long words and very short documents pull the score down.
// Text without sentences or words scores 50.
func Readability(text string) int {
	words := Tokenize(text)

	sentences := 0
	for _, s := range sentenceSplitter.Split(text, -1) {
		if len(strings.TrimSpace(s)) >= minSentenceLength {
			sentences++
		}
	}

	if sentences == 0 || len(words) == 0 {
		return 50
	}

	avg := float64(len(words)) / float64(sentences)
	long := 0
	for _, w := range words {
		if len(w) > longWordLength {
			long++
		}
	}
	longShare := float64(long) / float64(len(words))

	sentenceScore := math.Max(0, 100-math.Abs(avg-idealSentenceLength)*4)
	wordScore := math.Max(0, 100-longShare*200)
	lengthScore := math.Min(100, float64(len(words))/3)

	score := int(math.Round(sentenceScore*0.4 + wordScore*0.3 + lengthScore*0.3))
	if score > 100 {
		score = 100
	}
	return score
}
