package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomySize(t *testing.T) {
	t.Parallel()

	assert.Len(t, taxonomy, 29)
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "ranked by hits",
			text: "Python developer with Django, Flask and pandas; SQL and Airflow ETL pipelines",
			want: []string{"Python Developer", "Data Engineer", "Backend Developer"},
		},
		{
			name: "ties keep declaration order",
			text: "SQL, Tableau, ETL",
			want: []string{"Data Engineer", "Data Analyst"},
		},
		{
			name: "single hits do not qualify",
			text: "Pastry chef",
			want: Fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Recommend(tt.text))
		})
	}
}

func TestRecommendCapsAtFive(t *testing.T) {
	t.Parallel()

	text := "react redux typescript css html node express django flask python pandas numpy " +
		"java spring gradle docker kubernetes terraform aws azure gcp sql etl spark"
	assert.Len(t, Recommend(text), maxRoles)
}

func TestRecommendFallbackIsCopied(t *testing.T) {
	t.Parallel()

	got := Recommend("")
	got[0] = "changed"
	assert.Equal(t, "Software Developer", Fallback[0])
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	jd := "Python and Kubernetes engineers. Good communication; Go is a plus. SQL and Redis."
	got := Categorize([]string{"python", "kubernetes", "leadership"}, jd)

	assert.Equal(t, []SkillCategory{
		{Category: "Programming Languages", Skills: []string{"python", "go"}},
		{Category: "Cloud & DevOps", Skills: []string{"kubernetes"}},
		{Category: "Databases", Skills: []string{"sql", "redis"}},
	}, got)
}

func TestCategorizeMatchesWholeTokens(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Categorize(nil, "Good engineers with great attitude"))
	assert.Equal(t, []SkillCategory{{Category: "Programming Languages", Skills: []string{"c++"}}},
		Categorize(nil, "Modern C++ required"))
}

func TestSoftSkills(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"communication", "leadership", "mentoring"},
		SoftSkills("Strong leadership and communication, mentoring juniors"))
	assert.Empty(t, SoftSkills("Kubernetes"))
}
