package ranking

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spigell/resumelyze/internal/report"
	"github.com/spigell/resumelyze/internal/scoring"
)

// Missing keywords shown per row of the text table.
const textMissingLimit = 5

// Candidate is one analysed résumé.
type Candidate struct {
	Rank   int                    `json:"rank,omitempty"`
	Name   string                 `json:"name"`
	Path   string                 `json:"path,omitempty"`
	Resume string                 `json:"-"`
	Report *report.ScoreBreakdown `json:"report,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Candidates is an ordered list of analysed résumés.
type Candidates struct {
	Items []*Candidate `json:"items"`
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// Names lists candidate names in order.
func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		names = append(names, item.Name)
	}
	return names
}

// FindByName returns the first candidate called name, or nil.
func (c *Candidates) FindByName(name string) *Candidate {
	for _, item := range c.Items {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// Exclude removes every candidate drop reports true for and returns their
// names. The order of the remaining candidates is kept.
func (c *Candidates) Exclude(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, item := range c.Items {
		if drop(item) {
			excluded = append(excluded, item.Name)
			continue
		}
		kept = append(kept, item)
	}
	clear(c.Items[len(kept):])
	c.Items = kept
	return excluded
}

// Sort orders candidates best first and numbers them from 1. Candidates are
// compared by grade, then JD match, then ATS score, then name. Failed
// analyses go last.
func (c *Candidates) Sort() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		a, b := c.Items[i], c.Items[j]
		if (a.Report == nil) != (b.Report == nil) {
			return a.Report != nil
		}
		if a.Report == nil {
			return a.Name < b.Name
		}

		ga, _ := scoring.GradeRank(a.Report.OverallGrade)
		gb, _ := scoring.GradeRank(b.Report.OverallGrade)
		switch {
		case ga != gb:
			return ga > gb
		case a.Report.JDMatch != b.Report.JDMatch:
			return a.Report.JDMatch > b.Report.JDMatch
		case a.Report.ATSScore != b.Report.ATSScore:
			return a.Report.ATSScore > b.Report.ATSScore
		default:
			return a.Name < b.Name
		}
	})

	for i, item := range c.Items {
		item.Rank = i + 1
	}
}

// ToExcluded converts every candidate into an exclude-file entry.
func (c *Candidates) ToExcluded() *Excluded {
	excluded := &Excluded{}
	now := time.Now().UTC()
	for _, item := range c.Items {
		entry := &ExcludedResume{
			Name:       item.Name,
			Path:       item.Path,
			ExcludedAt: now,
		}
		if item.Report != nil {
			entry.Grade = item.Report.OverallGrade
		}
		excluded.Items = append(excluded.Items, entry)
	}
	return excluded
}

// DumpToTmpFile writes the candidates as JSON to a new temporary file and
// returns its name.
func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// WriteText renders the ranking as an aligned table.
func (c *Candidates) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tGRADE\tJD MATCH\tATS\tRESUME\tMISSING KEYWORDS")
	for _, item := range c.Items {
		if item.Report == nil {
			fmt.Fprintf(tw, "%d\t-\t-\t-\t%s\t%s\n", item.Rank, item.Name, item.Error)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d%%\t%d\t%s\t%s\n",
			item.Rank, item.Report.OverallGrade, item.Report.JDMatch, item.Report.ATSScore,
			item.Name, strings.Join(capped(item.Report.MissingKeywords, textMissingLimit), ", "))
	}
	return tw.Flush()
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
