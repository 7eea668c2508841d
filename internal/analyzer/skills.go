package analyzer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/coverletter"
	"github.com/spigell/resumelyze/internal/lexical"
	"github.com/spigell/resumelyze/internal/report"
	"github.com/spigell/resumelyze/internal/roles"
)

// ScoreSkills categorises the skills a job description asks for and, when a
// résumé is given, which of them it covers. The résumé is optional.
func (a *Analyzer) ScoreSkills(ctx context.Context, jd, resume, role string) (*report.SkillsResult, error) {
	if n := utf8.RuneCountInString(strings.TrimSpace(jd)); n < a.opts.MinJDLength {
		return nil, fmt.Errorf("%w: %d characters, need at least %d", ErrJobDescriptionTooShort, n, a.opts.MinJDLength)
	}

	jdKeywords := lexical.ExtractKeywords(jd, jdKeywordCount)

	matching := []string{}
	missing := jdKeywords
	if len(resume) > minSkillsResumeLength {
		found, exactMissing, _ := lexical.KeywordOverlap(resume, jdKeywords)
		semFound, _ := a.store.Engine().KeywordMatches(ctx, resume, exactMissing, a.opts.KeywordThreshold)
		matching = dedupe(append(append([]string{}, found...), semFound...))
		missing = subtract(exactMissing, semFound)
	}

	if role = strings.TrimSpace(role); role == "" {
		role = skillsRoleNotSpecified
	}

	a.logger.Debug("skills scored",
		zap.Int("jd_keywords", len(jdKeywords)),
		zap.Int("matching", len(matching)),
		zap.Int("missing", len(missing)),
	)

	return &report.SkillsResult{
		Role:              role,
		HardSkills:        roles.Categorize(jdKeywords, jd),
		SoftSkills:        roles.SoftSkills(jd),
		MissingFromResume: capList(missing, skillsListLimit),
		MatchingInResume:  capList(matching, skillsListLimit),
	}, nil
}

// CoverLetter drafts a cover letter from the résumé and job description.
func (a *Analyzer) CoverLetter(req coverletter.Request) (*coverletter.Letter, error) {
	if err := a.validate(req.Resume, req.JobDescription); err != nil {
		return nil, err
	}

	letter := coverletter.Build(req)
	a.logger.Debug("cover letter built",
		zap.String("tone", string(letter.Tone)),
		zap.Int("words", letter.WordCount),
	)
	return &letter, nil
}
