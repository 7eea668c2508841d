package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var knownSkills = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby",
	"go", "golang", "rust", "swift", "kotlin", "php", "scala", "perl",
	"matlab", "dart", "lua", "haskell", "elixir", "clojure", "groovy",
	"objective-c", "assembly", "fortran", "visual basic", "vba",
	"html", "css", "sass", "scss", "less", "tailwind", "tailwindcss",
	"bootstrap", "react", "react.js", "reactjs", "angular", "angularjs",
	"vue", "vue.js", "vuejs", "svelte", "next.js", "nextjs", "nuxt.js",
	"gatsby", "jquery", "webpack", "vite", "babel", "redux", "zustand",
	"material ui", "material-ui", "chakra ui", "ant design", "shadcn",
	"node.js", "nodejs", "express", "express.js", "fastapi", "django",
	"flask", "spring", "spring boot", "rails", "ruby on rails", "laravel",
	"asp.net", ".net", "nestjs", "gin", "fiber", "actix",
	"sql", "mysql", "postgresql", "postgres", "mongodb", "redis", "sqlite",
	"oracle", "dynamodb", "cassandra", "couchdb", "neo4j", "elasticsearch",
	"mariadb", "firebase", "supabase", "firestore", "cockroachdb",
	"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s",
	"terraform", "ansible", "jenkins", "github actions", "ci/cd", "cicd",
	"nginx", "apache", "linux", "unix", "bash", "shell", "powershell",
	"heroku", "vercel", "netlify", "cloudflare",
	"machine learning", "deep learning", "nlp", "natural language processing",
	"computer vision", "tensorflow", "pytorch", "keras", "scikit-learn",
	"pandas", "numpy", "scipy", "matplotlib", "seaborn", "plotly",
	"jupyter", "spark", "hadoop", "airflow", "kafka", "data engineering",
	"data science", "data analysis", "data visualization", "tableau",
	"power bi", "looker", "snowflake", "databricks", "dbt",
	"llm", "langchain", "openai", "hugging face", "transformers",
	"react native", "flutter", "android", "ios", "swiftui", "jetpack compose",
	"ionic", "xamarin",
	"git", "github", "gitlab", "bitbucket", "jira", "confluence", "slack",
	"figma", "sketch", "adobe xd", "photoshop", "illustrator",
	"postman", "swagger", "graphql", "rest api", "restful", "grpc",
	"websocket", "oauth", "jwt",
	"jest", "mocha", "chai", "cypress", "selenium", "playwright",
	"pytest", "unittest", "junit", "testng", "rspec",
	"leadership", "communication", "teamwork", "problem solving",
	"problem-solving", "critical thinking", "project management",
	"agile", "scrum", "kanban", "time management", "mentoring",
}

// Boundaries are explicit so that skills ending in symbols ("c++", "c#") still match.
var knownSkillPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(knownSkills))
	for i, s := range knownSkills {
		out[i] = regexp.MustCompile(`(?:^|[^a-z0-9_])` + regexp.QuoteMeta(s) + `(?:$|[^a-z0-9_])`)
	}
	return out
}()

var (
	skillLabel    = regexp.MustCompile(`^[A-Za-z\s&/]+:\s*`)
	skillSplit    = regexp.MustCompile(`[,;|•·\t]+`)
	languageSplit = regexp.MustCompile(`[,;|•·\t]+`)
	proficiency   = regexp.MustCompile(`\s*[(\-–:].{0,20}$`)

	dateRange = regexp.MustCompile(`(?i)(?:` +
		`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*\d{4}` +
		`\s*[-–—]\s*` +
		`(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*\d{4}|present|current)` +
		`|\d{1,2}/\d{4}\s*[-–—]\s*(?:\d{1,2}/\d{4}|present|current)` +
		`|\d{4}\s*[-–—]\s*(?:\d{4}|present|current)` +
		`)`)
	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	gpaPattern  = regexp.MustCompile(`(?i)(?:GPA|CGPA)[:\s]*(\d+\.?\d*)\s*/?\s*(\d+\.?\d*)?`)
	bullet      = regexp.MustCompile(`^\s*[•\-*●○‣⁃►▪▸]\s*`)
)

var roleKeywords = []string{
	"engineer", "developer", "manager", "intern", "analyst",
	"designer", "lead", "architect", "consultant", "director",
	"specialist", "coordinator", "associate", "scientist", "officer",
	"administrator", "technician", "researcher", "assistant",
}

var degreeKeywords = []string{
	"bachelor", "master", "phd", "ph.d", "doctor", "associate",
	"diploma", "b.s.", "b.a.", "m.s.", "m.a.", "b.tech", "m.tech",
	"b.e.", "m.e.", "bsc", "msc", "mba", "bba", "b.com", "m.com",
	"degree", "certification", "honours", "honors",
}

// dedupe keeps the first occurrence of each case-insensitive value longer
// than one character and returns at most limit values.
func dedupe(items []string, fold bool, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, s := range items {
		key := strings.TrimSpace(s)
		if fold {
			key = strings.ToLower(key)
		}
		if _, ok := seen[key]; ok || utf8.RuneCountInString(key) <= 1 {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

// extractSkills reads the listed skills and adds known skills mentioned anywhere in text.
func extractSkills(section, text string) []string {
	var found []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = skillLabel.ReplaceAllString(line, "")
		for _, chunk := range skillSplit.Split(line, -1) {
			s := strings.TrimSpace(strings.Trim(strings.TrimSpace(chunk), "-*"))
			if n := utf8.RuneCountInString(s); n > 1 && n < 50 {
				found = append(found, s)
			}
		}
	}

	listed := make(map[string]struct{}, len(found))
	for _, s := range found {
		listed[strings.ToLower(s)] = struct{}{}
	}
	lower := strings.ToLower(text)
	for i, skill := range knownSkills {
		if _, ok := listed[skill]; ok {
			continue
		}
		if knownSkillPatterns[i].MatchString(lower) {
			if len(skill) <= 3 {
				skill = strings.ToUpper(skill)
			}
			found = append(found, skill)
		}
	}

	return dedupe(found, true, maxSkills)
}

func (e *Extractor) newEntry() *Entry {
	return &Entry{ID: e.newID()}
}

func appendText(dst *string, sep, s string) {
	if *dst == "" {
		*dst = s
		return
	}
	*dst += sep + s
}

// parseEntries turns an experience or projects section into entries.
// Short lines name the role and company, date ranges give the duration, and
// bullets and long lines form the description.
func (e *Extractor) parseEntries(section string) []Entry {
	if section == "" {
		return []Entry{}
	}

	var (
		entries []Entry
		current *Entry
		pending []string
	)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		if current == nil {
			current = e.newEntry()
		}
		for _, line := range pending {
			switch {
			case current.Duration == "" && dateRange.MatchString(line):
				current.Duration = dateRange.FindString(line)
				rest := strings.Trim(dateRange.ReplaceAllString(line, ""), " |-–—,")
				if rest == "" {
					continue
				}
				if current.Role == "" {
					current.Role = rest
				} else if current.Company == "" {
					current.Company = rest
				}
			case current.Role == "":
				current.Role = line
			case current.Company == "":
				current.Company = line
			}
		}
		pending = pending[:0]
	}

	for _, line := range strings.Split(section, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		isBullet := bullet.MatchString(line)
		isShort := len(stripped) < 80 && !isBullet

		switch {
		case isBullet:
			flush()
			if current != nil {
				appendText(&current.Description, "; ", bullet.ReplaceAllString(stripped, ""))
			}
		case isShort && dateRange.MatchString(stripped):
			pending = append(pending, stripped)
			flush()
		case isShort:
			if current != nil && current.Description != "" {
				entries = append(entries, *current)
				current = nil
				pending = pending[:0]
			}
			pending = append(pending, stripped)
		default:
			flush()
			if current != nil {
				appendText(&current.Description, " ", stripped)
			}
		}
	}
	flush()
	if current != nil {
		entries = append(entries, *current)
	}

	for i := range entries {
		company, role := strings.ToLower(entries[i].Company), strings.ToLower(entries[i].Role)
		if containsAny(company, roleKeywords) && !containsAny(role, roleKeywords) {
			entries[i].Company, entries[i].Role = entries[i].Role, entries[i].Company
		}
	}

	if entries == nil {
		return []Entry{}
	}
	return entries[:min(maxEntries, len(entries))]
}

func lastYear(line string) string {
	years := yearPattern.FindAllString(line, -1)
	if len(years) == 0 {
		return ""
	}
	return years[len(years)-1]
}

func gpa(line string) string {
	if m := gpaPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// parseEducation groups degree, institution, year and GPA lines into entries.
func (e *Extractor) parseEducation(section string) []Education {
	var (
		entries []Education
		current *Education
	)

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || bullet.MatchString(line) {
			continue
		}

		hasDegree := containsAny(strings.ToLower(line), degreeKeywords)
		year, grade := lastYear(line), gpa(line)
		yearOrGPAOnly := !hasDegree && (year != "" || grade != "") && len(line) < 40

		fill := func(ed *Education) {
			if ed.Year == "" {
				ed.Year = year
			}
			if ed.GPA == "" {
				ed.GPA = grade
			}
		}

		switch {
		case hasDegree:
			if current != nil && current.Degree != "" {
				entries = append(entries, *current)
				current = nil
			}
			if current == nil {
				current = &Education{ID: e.newID()}
			}
			current.Degree = line
			if year != "" {
				current.Year = year
			}
			if grade != "" {
				current.GPA = grade
			}
		case current != nil && yearOrGPAOnly:
			fill(current)
		case current != nil && current.Institution == "":
			current.Institution = line
			fill(current)
		default:
			if current != nil {
				entries = append(entries, *current)
			}
			current = &Education{ID: e.newID(), Institution: line, Year: year, GPA: grade}
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}

	if entries == nil {
		return []Education{}
	}
	return entries[:min(maxEducation, len(entries))]
}

func extractCertifications(section string) []string {
	var certs []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(bullet.ReplaceAllString(line, ""))
		if utf8.RuneCountInString(line) > 3 {
			certs = append(certs, line)
		}
	}
	return dedupe(certs, false, maxListItems)
}

func extractLanguages(section string) []string {
	var langs []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(bullet.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		for _, chunk := range languageSplit.Split(line, -1) {
			s := strings.TrimSpace(proficiency.ReplaceAllString(strings.TrimSpace(chunk), ""))
			if n := utf8.RuneCountInString(s); n > 1 && n < 30 {
				langs = append(langs, s)
			}
		}
	}
	return dedupe(langs, false, maxListItems)
}
