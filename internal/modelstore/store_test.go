package modelstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resumelyze/internal/scoring"
	"github.com/spigell/resumelyze/internal/scoring/model"
	"github.com/spigell/resumelyze/internal/semantic"
)

type recorder struct {
	mu         sync.Mutex
	components []string
}

func (r *recorder) Fallback(component string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components = append(r.components, component)
}

func writeModel(t *testing.T, dir, name string, names []string, dirs []int) {
	t.Helper()

	m := model.Linear{Name: name, Version: "test", Intercept: 50}
	for i, n := range names {
		m.Features = append(m.Features, model.Feature{Name: n, Direction: dirs[i]})
		m.Scaler.Mean = append(m.Scaler.Mean, 0)
		m.Scaler.Scale = append(m.Scaler.Scale, 1)
		m.Coefficients = append(m.Coefficients, float64(dirs[i]))
	}

	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), data, 0o600))
}

func TestRulesWithoutModelDir(t *testing.T) {
	t.Parallel()

	s := New("")
	assert.Equal(t, scoring.StrategyRules, s.ATS().Strategy())
	assert.Equal(t, scoring.StrategyRules, s.Sections().Strategy())
	assert.Equal(t, scoring.StrategyRules, s.Grader().Strategy())
	assert.Equal(t, "local-hash", s.Engine().Model())
}

func TestLoadsTrainedModels(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names, dirs := scoring.ATSFeatureNames()
	writeModel(t, dir, ATSModel, names, dirs)

	s := New(dir)
	assert.Equal(t, scoring.StrategyTrained, s.ATS().Strategy())
	// Missing files fall back quietly.
	assert.Equal(t, scoring.StrategyRules, s.Grader().Strategy())
}

func TestRejectedModelFallsBackToRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names, dirs := scoring.GradeFeatureNames()
	// A grade model in the section slot does not fit the section schema.
	writeModel(t, dir, SectionModel, names, dirs)
	require.NoError(t, os.WriteFile(filepath.Join(dir, GradeModel+".yaml"), []byte("features: ["), 0o600))

	core, logs := observer.New(zapcore.WarnLevel)
	rec := &recorder{}
	s := New(dir, WithLogger(zap.New(core)), WithRecorder(rec))

	assert.Equal(t, scoring.StrategyRules, s.Sections().Strategy())
	assert.Equal(t, scoring.StrategyRules, s.Grader().Strategy())
	assert.Equal(t, []string{"model_section", "model_grade"}, rec.components)
	assert.Equal(t, 2, logs.FilterMessage("trained model rejected, using rules").Len())
}

func TestHandlesAreBuiltOnce(t *testing.T) {
	t.Parallel()

	var built atomic.Int32
	s := New("", WithEmbedder(func() (semantic.Embedder, error) {
		built.Add(1)
		return semantic.NewHashEmbedder(32), nil
	}))

	var wg sync.WaitGroup
	engines := make([]*semantic.Engine, 16)
	scorers := make([]*scoring.ATSScorer, 16)
	for i := range engines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engines[i] = s.Engine()
			scorers[i] = s.ATS()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), built.Load())
	for i := range engines {
		assert.Same(t, engines[0], engines[i])
		assert.Same(t, scorers[0], scorers[i])
	}
}

func TestEmbedderFactoryFailure(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := New("", WithRecorder(rec), WithEmbedder(func() (semantic.Embedder, error) {
		return nil, errors.New("no credentials")
	}))

	assert.Equal(t, "local-hash", s.Engine().Model())
	assert.Equal(t, []string{"embedder"}, rec.components)
}

func TestStatusAndWarmup(t *testing.T) {
	t.Parallel()

	s := New("")
	assert.Equal(t, Status{Embedder: "pending", ATS: "pending", Section: "pending", Grade: "pending"}, s.Status())

	s.Warmup(context.Background())
	assert.Equal(t, Status{
		Embedder: "local-hash",
		ATS:      scoring.StrategyRules,
		Section:  scoring.StrategyRules,
		Grade:    scoring.StrategyRules,
	}, s.Status())
}
