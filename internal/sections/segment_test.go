package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane@example.com | +1 555 123 4567

Professional Summary
Backend engineer building data platforms.

Technical Skills
Go, Python, SQL

Work Experience
- Built ingestion pipelines in Go
- Reduced latency by 40%

Education
BSc Computer Science, 2018`

func TestSegment(t *testing.T) {
	t.Parallel()

	m := Segment(sampleResume)

	require.Equal(t, []Kind{Header, Summary, Skills, Experience, Education}, m.Kinds())
	assert.Equal(t, "Jane Doe\njane@example.com | +1 555 123 4567", m.Get(Header))
	assert.Equal(t, "Backend engineer building data platforms.", m.Get(Summary))
	assert.Equal(t, "Go, Python, SQL", m.Get(Skills))
	assert.Equal(t, "- Built ingestion pipelines in Go\n- Reduced latency by 40%", m.Get(Experience))
	assert.Equal(t, "BSc Computer Science, 2018", m.Get(Education))
	assert.Equal(t, 4, m.Named())
}

func TestSegmentWithoutHeaders(t *testing.T) {
	t.Parallel()

	m := Segment("just some text\nwith no headings at all")

	require.Equal(t, []Kind{Header}, m.Kinds())
	assert.Equal(t, "just some text\nwith no headings at all", m.Get(Header))
}

func TestSegmentEmpty(t *testing.T) {
	t.Parallel()

	m := Segment("   \n\n")
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "", m.Get(Summary))
	assert.False(t, m.Has(Header))
}

func TestSegmentInlineHeaderContent(t *testing.T) {
	t.Parallel()

	m := Segment("Skills: Python, SQL\nExperience\n- Did things")

	assert.Equal(t, "Python, SQL", m.Get(Skills))
	assert.Equal(t, "- Did things", m.Get(Experience))
}

func TestSegmentLongLineIsNotHeader(t *testing.T) {
	t.Parallel()

	long := "Experience " + strings.Repeat("with distributed systems ", 3)
	m := Segment(long)

	require.Equal(t, []Kind{Header}, m.Kinds())
}

func TestSegmentRepeatedHeaderAppends(t *testing.T) {
	t.Parallel()

	m := Segment("Skills\nGo\nEducation\nMSc\nSkills\nRust")

	require.Equal(t, []Kind{Skills, Education}, m.Kinds())
	assert.Equal(t, "Go\nRust", m.Get(Skills))
}

func TestSegmentSpecificPatternsWin(t *testing.T) {
	t.Parallel()

	cases := map[string]Kind{
		"TECHNICAL SKILLS":        Skills,
		"Core Competencies":       Skills,
		"Professional Experience": Experience,
		"Key Projects":            Projects,
		"Career Objective":        Summary,
		"Licenses":                Certifications,
		"Awards":                  Achievements,
		"Hobbies":                 Interests,
		"Volunteering":            Volunteer,
	}
	for line, want := range cases {
		got, ok := MatchHeader(line)
		require.True(t, ok, line)
		assert.Equal(t, want, got, line)
	}
}

func TestSegmentProfileHeading(t *testing.T) {
	t.Parallel()

	m := Segment("Jane Doe\nProfile-driven engineer who ships data platforms\nProfile: Backend engineer\nSkills\nGo")

	assert.Equal(t, "Jane Doe\nProfile-driven engineer who ships data platforms", m.Get(Header))
	assert.Equal(t, "Backend engineer", m.Get(Summary))

	for _, line := range []string{"PROFILE", "About Me", "Profile:"} {
		got, ok := MatchHeader(line)
		require.True(t, ok, line)
		assert.Equal(t, Summary, got, line)
	}
	_, ok := MatchHeader("Profile-driven engineer")
	assert.False(t, ok)
}

func TestSegmentKeepsEveryContentLine(t *testing.T) {
	t.Parallel()

	m := Segment(sampleResume)

	var rebuilt []string
	for _, text := range m.Texts() {
		rebuilt = append(rebuilt, strings.Split(text, "\n")...)
	}

	var want []string
	for _, line := range strings.Split(sampleResume, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, ok := MatchHeader(line); ok {
			continue
		}
		want = append(want, line)
	}

	var got []string
	for _, line := range rebuilt {
		if strings.TrimSpace(line) != "" {
			got = append(got, line)
		}
	}
	assert.Equal(t, want, got)
}

func TestSegmentIsIdempotent(t *testing.T) {
	t.Parallel()

	m := Segment(sampleResume)
	for _, kind := range m.Kinds() {
		if kind == Header {
			continue
		}
		again := Segment(kind.Title() + "\n" + m.Get(kind))
		require.Equal(t, []Kind{kind}, again.Kinds())
		assert.Equal(t, m.Get(kind), again.Get(kind))
	}
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Header, Kind{})
	assert.Equal(t, Skills, Parse(" Skills "))
	assert.True(t, Other("Patents").IsOther())
	assert.Equal(t, "patents", Other("Patents").String())
	assert.Equal(t, Education, Other("education"))
	assert.True(t, Experience.IsStandard())
	assert.False(t, Certifications.IsStandard())
	assert.Equal(t, "Experience", Experience.Title())

	text, err := Projects.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "projects", string(text))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("summary")))
	assert.Equal(t, Summary, k)
	assert.Error(t, k.UnmarshalText([]byte(" ")))
}
