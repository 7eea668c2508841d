// Package roles suggests job titles for a résumé and sorts job description
// skills into categories.
package roles

import (
	"sort"
	"strings"
)

const (
	minRoleHits = 2
	maxRoles    = 5
)

// Fallback is returned when no role reaches the hit threshold.
var Fallback = []string{"Software Developer", "IT Professional"}

type role struct {
	title    string
	keywords []string
}

// Declaration order breaks ties.
var taxonomy = []role{
	{"Frontend Developer", []string{"react", "angular", "vue", "javascript", "typescript", "css", "html", "frontend", "ui"}},
	{"Backend Developer", []string{"node", "express", "django", "flask", "spring", "api", "backend", "server", "microservice"}},
	{"Full Stack Developer", []string{"full stack", "fullstack", "frontend", "backend", "react", "node"}},
	{"Python Developer", []string{"python", "django", "flask", "fastapi", "pandas", "numpy"}},
	{"Java Developer", []string{"java", "spring", "hibernate", "maven", "gradle", "jvm"}},
	{"React Developer", []string{"react", "redux", "next.js", "nextjs", "jsx", "react native"}},
	{"Node.js Developer", []string{"node.js", "nodejs", "express", "npm", "typescript"}},
	{"Data Scientist", []string{"data science", "machine learning", "pandas", "numpy", "matplotlib", "jupyter", "statistics"}},
	{"ML Engineer", []string{"machine learning", "deep learning", "tensorflow", "pytorch", "nlp", "computer vision", "ml ops"}},
	{"Data Engineer", []string{"data pipeline", "etl", "spark", "hadoop", "airflow", "data warehouse", "sql"}},
	{"Data Analyst", []string{"data analysis", "excel", "tableau", "power bi", "sql", "visualization", "analytics"}},
	{"DevOps Engineer", []string{"devops", "ci/cd", "docker", "kubernetes", "terraform", "ansible", "jenkins", "aws"}},
	{"Cloud Engineer", []string{"aws", "azure", "gcp", "cloud", "serverless", "lambda", "ec2", "s3"}},
	{"Site Reliability Engineer", []string{"sre", "reliability", "monitoring", "kubernetes", "incident", "on-call"}},
	{"iOS Developer", []string{"ios", "swift", "objective-c", "xcode", "swiftui", "cocoa"}},
	{"Android Developer", []string{"android", "kotlin", "java", "android studio", "gradle"}},
	{"Mobile Developer", []string{"mobile", "react native", "flutter", "ionic", "xamarin"}},
	{"UI/UX Designer", []string{"ui", "ux", "figma", "sketch", "design", "wireframe", "prototype", "user research"}},
	{"Product Manager", []string{"product management", "roadmap", "stakeholder", "agile", "user stories", "prd"}},
	{"Project Manager", []string{"project management", "pmp", "scrum master", "agile", "gantt", "jira"}},
	{"QA Engineer", []string{"testing", "qa", "test automation", "selenium", "cypress", "jest", "quality assurance"}},
	{"Security Engineer", []string{"security", "penetration testing", "vulnerability", "soc", "siem", "cybersecurity"}},
	{"Database Administrator", []string{"database", "dba", "postgresql", "mysql", "oracle", "mongodb", "sql server"}},
	{"Systems Administrator", []string{"system admin", "linux", "windows server", "active directory", "vmware"}},
	{"Technical Writer", []string{"technical writing", "documentation", "api docs", "user guide"}},
	{"Solutions Architect", []string{"architecture", "solutions architect", "system design", "enterprise", "cloud architect"}},
	{"Blockchain Developer", []string{"blockchain", "solidity", "ethereum", "smart contract", "web3", "defi"}},
	{"AI Engineer", []string{"artificial intelligence", "llm", "gpt", "transformer", "nlp", "computer vision"}},
	{"Embedded Systems Engineer", []string{"embedded", "firmware", "rtos", "c/c++", "microcontroller", "iot"}},
}

// Recommend returns up to five roles whose keywords appear at least twice
// in text, most hits first.
func Recommend(text string) []string {
	lower := strings.ToLower(text)

	type hit struct {
		title string
		count int
	}
	var hits []hit
	for _, r := range taxonomy {
		n := 0
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				n++
			}
		}
		if n >= minRoleHits {
			hits = append(hits, hit{title: r.title, count: n})
		}
	}

	if len(hits) == 0 {
		return append([]string(nil), Fallback...)
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].count > hits[j].count })

	out := make([]string, 0, maxRoles)
	for _, h := range hits[:min(maxRoles, len(hits))] {
		out = append(out, h.title)
	}
	return out
}
