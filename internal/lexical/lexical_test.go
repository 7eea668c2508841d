package lexical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "lowercases", input: "Go Developer", want: []string{"go", "developer"}},
		{name: "keeps internal symbols", input: "C++ and C# with Node.js.", want: []string{"c++", "and", "c#", "with", "node.js"}},
		{name: "drops single letters", input: "a b cd", want: []string{"cd"}},
		{name: "skips words glued to digits", input: "python3 3d sql", want: []string{"sql"}},
		{name: "empty", input: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestExtractKeywordsRanksByFrequencyThenFirstOccurrence(t *testing.T) {
	t.Parallel()

	text := "kafka python sql python kafka docker python"
	assert.Equal(t, []string{"python", "kafka", "sql", "docker"}, ExtractKeywords(text, 10))
	assert.Equal(t, []string{"python", "kafka"}, ExtractKeywords(text, 2))
	assert.Empty(t, ExtractKeywords(text, 0))

	kws := Keywords(text)
	require.Len(t, kws, 4)
	assert.Equal(t, Keyword{Term: "python", Count: 3}, kws[0])
}

func TestExtractKeywordsFiltersStopWordsAndShortTokens(t *testing.T) {
	t.Parallel()

	got := ExtractKeywords("We need the go and ml engineers with Kubernetes", 10)
	assert.Equal(t, []string{"engineers", "kubernetes"}, got)
}

func TestExtractNgrams(t *testing.T) {
	t.Parallel()

	text := "machine learning pipelines, machine learning models"
	got := ExtractNgrams(text, 2, 2)
	assert.Equal(t, []string{"machine learning", "learning pipelines"}, got)
	assert.Nil(t, ExtractNgrams("single", 2, 5))
	assert.Nil(t, ExtractNgrams(text, 0, 5))
}

func TestKeywordOverlap(t *testing.T) {
	t.Parallel()

	keywords := []string{"python", "SQL", "leadership", "python"}
	found, missing, density := KeywordOverlap("Python and sql developer", keywords)

	assert.Equal(t, []string{"python", "SQL"}, found)
	assert.Equal(t, []string{"leadership"}, missing)
	assert.InDelta(t, 2.0/3.0, density, 1e-9)

	union := append(append([]string{}, found...), missing...)
	assert.ElementsMatch(t, []string{"python", "SQL", "leadership"}, union)
}

func TestKeywordOverlapEmptyKeywords(t *testing.T) {
	t.Parallel()

	found, missing, density := KeywordOverlap("anything", nil)
	assert.Empty(t, found)
	assert.Empty(t, missing)
	assert.Zero(t, density)
}

func TestDetectContact(t *testing.T) {
	t.Parallel()

	text := "jane@example.com | (555) 123-4567\nlinkedin.com/in/jane-doe github.com/jane https://jane.dev"
	c := DetectContact(text)
	assert.Equal(t, Contact{Email: true, Phone: true, LinkedIn: true, GitHub: true, Website: true}, c)

	assert.Equal(t, Contact{}, DetectContact("no contact here, call 12345"))
	assert.Equal(t, "(555) 123-4567", FindPhone(text))
}

func TestFindPhone(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Acme Corp, 2019 - 2023":              "",
		"Acme Corp, 2019-2023":                "",
		"Phone 555 123 4567 2019 2021 2022":   "555 123 4567",
		"+44 (20) 7946 0958 | London":         "+44 (20) 7946 0958",
		"call +1 555-123-4567 today":          "+1 555-123-4567",
		"ticket 12345":                        "",
		"Tel: 555.123.4567  Worked 2015-2019": "555.123.4567",
	}
	for text, want := range cases {
		assert.Equal(t, want, FindPhone(text), text)
	}
	assert.False(t, DetectContact("Acme Corp, 2019 - 2023").Phone)
}

func TestCountBullets(t *testing.T) {
	t.Parallel()

	text := "- one\n• two\n* three\n1. four\n2) five\nplain line\n10.5 percent"
	assert.Equal(t, 5, CountBullets(text))
	assert.Zero(t, CountBullets(""))
}

func TestCountNumbers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, CountNumbers("Cut costs 40% for 10+ teams over 3 quarters"))
	assert.Zero(t, CountNumbers("no digits"))
}

func TestDetectFormatting(t *testing.T) {
	t.Parallel()

	f := DetectFormatting("Name\tRole\tYear\tCity\nsee photo.png ✓")
	assert.True(t, f.Tables)
	assert.True(t, f.ImageRefs)
	assert.Equal(t, 1, f.SpecialChars)
	assert.False(t, f.Clean())
	assert.True(t, DetectFormatting("plain text").Clean())
}

func TestReadability(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, Readability(""))
	assert.Equal(t, 50, Readability("   "))

	short := "Built services."
	long := strings.Repeat("Built reliable services for payments teams across regions daily. ", 40)
	assert.Less(t, Readability(short), Readability(long))

	for _, text := range []string{short, long, "x"} {
		score := Readability(text)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestReadabilityPenalizesLongWords(t *testing.T) {
	t.Parallel()

	plain := strings.Repeat("We ship code fast and fix bugs as a team every week now. ", 20)
	dense := strings.Repeat("Comprehensive infrastructure orchestration necessitates sophisticated architectural considerations everywhere. ", 20)
	assert.Greater(t, Readability(plain), Readability(dense))
}
