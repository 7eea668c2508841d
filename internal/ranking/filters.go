package ranking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/scoring"
)

// toggle carries the enabled state shared by every filter.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type failedAnalysisFilter struct {
	toggle
}

// NewFailedAnalysis creates a filter that removes résumés whose analysis failed.
func NewFailedAnalysis() Filter {
	return &failedAnalysisFilter{}
}

func (f *failedAnalysisFilter) Name() string { return "failed_analysis" }

func (f *failedAnalysisFilter) Validate(*Config) error { return nil }

func (f *failedAnalysisFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	for _, item := range c.Items {
		if item.Report == nil {
			deps.Logger.Warn("résumé could not be analysed",
				zap.String("resume", item.Name),
				zap.String("error", item.Error),
			)
		}
	}
	excluded := c.Exclude(func(item *Candidate) bool { return item.Report == nil })

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *failedAnalysisFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes résumés listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if f.path == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded, err := LoadExcluded(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded résumés from file: %w", err)
	}

	removed := c.Exclude(excluded.Matches)
	if len(removed) > 0 {
		deps.Logger.Info("excluding résumés based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_resumes", removed),
			zap.Int("resumes_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type minimumScoreFilter struct {
	toggle
	minimum int
}

// NewMinimumScore creates a filter that removes résumés with a JD match
// below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinimumScore
	}
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum score must be within [0,100], got %d", f.minimum)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if f.minimum == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(item *Candidate) bool {
		return item.Report == nil || item.Report.JDMatch < f.minimum
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding résumés below the minimum score",
			zap.Int("minimum_score", f.minimum),
			zap.Strings("excluded_resumes", excluded),
			zap.Int("resumes_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.minimum)},
	}
}

type minimumGradeFilter struct {
	toggle
	grade string
	rank  int
}

// NewMinimumGrade creates a filter that removes résumés graded below the
// configured letter.
func NewMinimumGrade() Filter {
	return &minimumGradeFilter{}
}

func (f *minimumGradeFilter) Name() string { return "minimum_grade" }

func (f *minimumGradeFilter) Validate(cfg *Config) error {
	f.grade, f.rank = "", 0
	if cfg == nil {
		return nil
	}

	f.grade = strings.ToUpper(strings.TrimSpace(cfg.MinimumGrade))
	if f.grade == "" {
		return nil
	}

	rank, ok := scoring.GradeRank(f.grade)
	if !ok {
		return fmt.Errorf("unknown grade %q", cfg.MinimumGrade)
	}
	f.rank = rank
	return nil
}

func (f *minimumGradeFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if f.grade == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(item *Candidate) bool {
		if item.Report == nil {
			return true
		}
		rank, _ := scoring.GradeRank(item.Report.OverallGrade)
		return rank < f.rank
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding résumés below the minimum grade",
			zap.String("minimum_grade", f.grade),
			zap.Strings("excluded_resumes", excluded),
			zap.Int("resumes_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumGradeFilter) Status() Status {
	details := map[string]string{}
	if f.grade != "" {
		details["minimum_grade"] = f.grade
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type requiredKeywordsFilter struct {
	toggle
	keywords []string
}

// NewRequiredKeywords creates a filter that keeps only résumés mentioning
// every configured keyword.
func NewRequiredKeywords() Filter {
	return &requiredKeywordsFilter{}
}

func (f *requiredKeywordsFilter) Name() string { return "required_keywords" }

func (f *requiredKeywordsFilter) Validate(cfg *Config) error {
	f.keywords = nil
	if cfg == nil {
		return nil
	}
	for _, kw := range cfg.RequiredKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			f.keywords = append(f.keywords, kw)
		}
	}
	if len(cfg.RequiredKeywords) > 0 && len(f.keywords) == 0 {
		return errors.New("required keywords are all blank")
	}
	return nil
}

func (f *requiredKeywordsFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if len(f.keywords) == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(item *Candidate) bool {
		return !mentionsAll(item, f.keywords)
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding résumés missing required keywords",
			zap.Strings("required_keywords", f.keywords),
			zap.Strings("excluded_resumes", excluded),
			zap.Int("resumes_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *requiredKeywordsFilter) Status() Status {
	details := map[string]string{}
	if len(f.keywords) > 0 {
		details["required_keywords"] = strings.Join(f.keywords, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

// mentionsAll checks the résumé text first and falls back to the found
// keywords of the report, which include semantic matches.
func mentionsAll(c *Candidate, keywords []string) bool {
	text := strings.ToLower(c.Resume)
	found := make(map[string]bool)
	if c.Report != nil {
		for _, kw := range c.Report.FoundKeywords {
			found[strings.ToLower(kw)] = true
		}
	}
	for _, kw := range keywords {
		if !found[kw] && !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
