package semantic

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/sections"
)

// DefaultKeywordThreshold is the similarity above which a keyword counts as present.
const DefaultKeywordThreshold = 0.55

// FallbackRecorder is notified when the primary embedder fails and the local one is used.
type FallbackRecorder interface {
	Fallback(component string)
}

// Engine compares text spans through an embedder. When the primary embedder
// fails the whole batch is re-encoded with the local hashing embedder.
type Engine struct {
	primary  Embedder
	fallback Embedder
	logger   *zap.Logger
	recorder FallbackRecorder
}

// Comparison holds the similarities of one résumé against one job description.
type Comparison struct {
	Full     float64
	Sections map[sections.Kind]float64
}

// NewEngine creates an engine. A nil primary uses the local embedder directly.
func NewEngine(primary Embedder, logger *zap.Logger, recorder FallbackRecorder) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	fallback := NewHashEmbedder(DefaultDimensions)
	if primary == nil {
		primary = fallback
	}
	return &Engine{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		recorder: recorder,
	}
}

// Model returns the name of the primary embedding model.
func (e *Engine) Model() string {
	return e.primary.Model()
}

// Encode embeds texts in a single batch.
func (e *Engine) Encode(ctx context.Context, texts []string) [][]float32 {
	if len(texts) == 0 {
		return nil
	}

	vecs, err := e.primary.Embed(ctx, texts)
	if err == nil && len(vecs) != len(texts) {
		err = fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(texts))
	}
	if err == nil || e.primary == e.fallback {
		return vecs
	}

	e.logger.Warn("embedding failed, using local embedder",
		zap.String("model", e.primary.Model()),
		zap.Int("texts", len(texts)),
		zap.Error(err),
	)
	if e.recorder != nil {
		e.recorder.Fallback("embedding")
	}

	// The hashing embedder does not fail.
	vecs, _ = e.fallback.Embed(ctx, texts)
	return vecs
}

// Pair returns the similarity of two spans. Empty input scores 0 without encoding.
func (e *Engine) Pair(ctx context.Context, a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	vecs := e.Encode(ctx, []string{a, b})
	return Similarity(vecs[0], vecs[1])
}

// Compare scores the résumé and each of its sections against the job
// description using one encoding batch.
func (e *Engine) Compare(ctx context.Context, resume, jd string, secs *sections.Map) Comparison {
	result := Comparison{Sections: make(map[sections.Kind]float64)}
	if strings.TrimSpace(jd) == "" {
		return result
	}

	batch := []string{jd}
	resumeIdx := -1
	if strings.TrimSpace(resume) != "" {
		resumeIdx = len(batch)
		batch = append(batch, resume)
	}

	kinds := make([]sections.Kind, 0, secs.Len())
	for _, kind := range secs.Kinds() {
		text := secs.Get(kind)
		if strings.TrimSpace(text) == "" {
			result.Sections[kind] = 0
			continue
		}
		kinds = append(kinds, kind)
		batch = append(batch, text)
	}
	if len(batch) == 1 {
		return result
	}

	vecs := e.Encode(ctx, batch)
	jdVec := vecs[0]

	if resumeIdx > 0 {
		result.Full = Similarity(vecs[resumeIdx], jdVec)
	}

	offset := len(batch) - len(kinds)
	for i, kind := range kinds {
		result.Sections[kind] = Similarity(vecs[offset+i], jdVec)
	}

	return result
}

// KeywordMatches reports which keywords are conceptually present in text:
// a keyword is found when the similarity between its own embedding and the
// embedding of the whole text exceeds threshold.
func (e *Engine) KeywordMatches(ctx context.Context, text string, keywords []string, threshold float64) (found, missing []string) {
	found = []string{}
	missing = []string{}
	if len(keywords) == 0 {
		return found, missing
	}
	if strings.TrimSpace(text) == "" {
		return found, append(missing, keywords...)
	}

	batch := make([]string, 0, len(keywords)+1)
	batch = append(batch, text)
	batch = append(batch, keywords...)
	vecs := e.Encode(ctx, batch)

	for i, kw := range keywords {
		if strings.TrimSpace(kw) != "" && Similarity(vecs[0], vecs[i+1]) > threshold {
			found = append(found, kw)
			continue
		}
		missing = append(missing, kw)
	}
	return found, missing
}
