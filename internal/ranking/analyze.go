package ranking

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resumelyze/internal/analyzer"
	"github.com/spigell/resumelyze/internal/report"
)

// Analyzer scores one résumé against a job description.
type Analyzer interface {
	Analyze(ctx context.Context, resume, jobDescription string) (*report.ScoreBreakdown, error)
}

// Document is a résumé to rank.
type Document struct {
	Name string
	Path string
	Text string
}

// ReadDocuments loads résumé files, naming each after its base file name.
func ReadDocuments(paths []string) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read résumé: %w", err)
		}
		docs = append(docs, Document{
			Name: filepath.Base(path),
			Path: path,
			Text: string(data),
		})
	}
	return docs, nil
}

// Analyze runs a against every document with at most workers analyses in
// flight. Workers below 1 means one per CPU. A document rejected by input
// validation becomes a candidate with an error; a job description that is
// too short or a cancelled context fails the whole run. Candidates keep the
// order of docs.
func Analyze(ctx context.Context, a Analyzer, jobDescription string, docs []Document, workers int, logger *zap.Logger) (*Candidates, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	items := make([]*Candidate, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		g.Go(func() error {
			candidate := &Candidate{Name: doc.Name, Path: doc.Path, Resume: doc.Text}
			items[i] = candidate

			result, err := a.Analyze(ctx, doc.Text, jobDescription)
			switch {
			case errors.Is(err, analyzer.ErrJobDescriptionTooShort):
				return err
			case errors.Is(err, analyzer.ErrInvalidInput):
				candidate.Error = err.Error()
				return nil
			case err != nil:
				return fmt.Errorf("analyse %s: %w", doc.Name, err)
			}

			candidate.Report = result
			logger.Debug("résumé analysed",
				zap.String("resume", doc.Name),
				zap.Int("jd_match", result.JDMatch),
				zap.String("grade", result.OverallGrade),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Candidates{Items: items}
	logger.Info("résumés analysed",
		zap.Int("count", c.Len()),
		zap.Int("workers", workers),
		zap.Strings("resumes", c.Names()),
	)

	return c, nil
}
