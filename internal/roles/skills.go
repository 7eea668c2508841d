package roles

import (
	"strings"

	"github.com/spigell/resumelyze/internal/lexical"
)

const (
	maxSkillsPerCategory = 10
	maxSoftSkills        = 10
)

// SkillCategory groups job description skills under a heading.
type SkillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

type category struct {
	name  string
	terms []string
}

var categories = []category{
	{"Programming Languages", []string{"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust", "ruby", "php", "swift", "kotlin", "scala", "r", "matlab"}},
	{"Frameworks & Libraries", []string{"react", "angular", "vue", "nextjs", "django", "flask", "spring", "express", "fastapi", "rails", "laravel", "svelte", "pytorch", "tensorflow"}},
	{"Cloud & DevOps", []string{"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins", "ci", "cd", "devops", "serverless", "lambda"}},
	{"Databases", []string{"sql", "nosql", "mongodb", "postgresql", "mysql", "redis", "elasticsearch", "dynamodb", "cassandra", "firebase"}},
	{"Tools & Platforms", []string{"git", "github", "gitlab", "jira", "confluence", "figma", "vscode", "linux", "unix", "bash"}},
	{"Data & ML", []string{"machine", "learning", "deep", "nlp", "ai", "data", "analytics", "tableau", "pandas", "numpy", "spark", "hadoop"}},
}

var softSkills = []string{
	"communication", "leadership", "teamwork", "collaboration", "problem solving",
	"critical thinking", "time management", "adaptability", "creativity", "attention to detail",
	"project management", "negotiation", "decision making", "strategic thinking",
	"conflict resolution", "mentoring", "coaching", "presentation", "analytical",
	"organizational", "interpersonal", "self-motivated", "initiative",
}

// Categorize files keywords and job description terms under skill
// categories. Terms match whole tokens of the job description, so "go" is
// not found inside "good". Categories without skills are omitted.
func Categorize(keywords []string, jd string) []SkillCategory {
	tokens := make(map[string]struct{})
	for _, tok := range lexical.Tokenize(jd) {
		tokens[tok] = struct{}{}
	}

	out := []SkillCategory{}
	for _, c := range categories {
		terms := make(map[string]struct{}, len(c.terms))
		for _, t := range c.terms {
			terms[t] = struct{}{}
		}

		seen := make(map[string]struct{})
		var skills []string
		add := func(s string) {
			if _, ok := seen[s]; ok {
				return
			}
			seen[s] = struct{}{}
			skills = append(skills, s)
		}

		for _, kw := range keywords {
			if _, ok := terms[strings.ToLower(kw)]; ok {
				add(strings.ToLower(kw))
			}
		}
		for _, t := range c.terms {
			if _, ok := tokens[t]; ok {
				add(t)
			}
		}

		if len(skills) > 0 {
			out = append(out, SkillCategory{Category: c.name, Skills: skills[:min(maxSkillsPerCategory, len(skills))]})
		}
	}
	return out
}

// SoftSkills lists the soft skills a job description mentions.
func SoftSkills(jd string) []string {
	lower := strings.ToLower(jd)
	out := []string{}
	for _, s := range softSkills {
		if strings.Contains(lower, s) {
			out = append(out, s)
			if len(out) == maxSoftSkills {
				break
			}
		}
	}
	return out
}
