// Package modelstore owns the process-wide model handles. Each handle is
// built on first use, exactly once, and shared read-only afterwards.
package modelstore

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/scoring"
	"github.com/spigell/resumelyze/internal/scoring/model"
	"github.com/spigell/resumelyze/internal/semantic"
)

// Model file names inside the model directory.
const (
	ATSModel     = "ats"
	SectionModel = "section"
	GradeModel   = "grade"
)

// EmbedderFactory builds the primary embedder.
type EmbedderFactory func() (semantic.Embedder, error)

// Store lazily constructs the embedding engine and the scorers.
type Store struct {
	dir        string
	dimensions int
	factory    EmbedderFactory
	logger     *zap.Logger
	recorder   semantic.FallbackRecorder

	engineOnce  sync.Once
	engine      *semantic.Engine
	atsOnce     sync.Once
	ats         *scoring.ATSScorer
	sectionOnce sync.Once
	section     *scoring.SectionScorer
	gradeOnce   sync.Once
	grader      *scoring.Grader

	loaded struct {
		engine, ats, section, grade atomic.Bool
	}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEmbedder sets the factory for the primary embedder. Without one the
// local hashing embedder is used.
func WithEmbedder(f EmbedderFactory) Option {
	return func(s *Store) { s.factory = f }
}

// WithDimensions sets the vector size of the local embedder.
func WithDimensions(n int) Option {
	return func(s *Store) { s.dimensions = n }
}

// WithRecorder sets the receiver of fallback events.
func WithRecorder(r semantic.FallbackRecorder) Option {
	return func(s *Store) { s.recorder = r }
}

// New creates a store reading trained models from dir. An empty dir means
// every scorer uses rules.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:        dir,
		dimensions: semantic.DefaultDimensions,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the shared similarity engine.
func (s *Store) Engine() *semantic.Engine {
	s.engineOnce.Do(func() {
		var primary semantic.Embedder = semantic.NewHashEmbedder(s.dimensions)
		if s.factory != nil {
			e, err := s.factory()
			switch {
			case err != nil:
				s.logger.Warn("embedder unavailable, using local embedder", zap.Error(err))
				s.fallback("embedder")
			case e != nil:
				primary = e
			}
		}
		s.engine = semantic.NewEngine(primary, s.logger, s.recorder)
		s.loaded.engine.Store(true)
		s.logger.Debug("embedding engine ready", zap.String("model", primary.Model()))
	})
	return s.engine
}

// ATS returns the shared ATS scorer.
func (s *Store) ATS() *scoring.ATSScorer {
	s.atsOnce.Do(func() {
		names, dirs := scoring.ATSFeatureNames()
		s.ats = scoring.NewATSScorer(s.load(ATSModel, names, dirs))
		s.loaded.ats.Store(true)
	})
	return s.ats
}

// Sections returns the shared section scorer.
func (s *Store) Sections() *scoring.SectionScorer {
	s.sectionOnce.Do(func() {
		names, dirs := scoring.SectionFeatureNames()
		s.section = scoring.NewSectionScorer(s.load(SectionModel, names, dirs))
		s.loaded.section.Store(true)
	})
	return s.section
}

// Grader returns the shared grader.
func (s *Store) Grader() *scoring.Grader {
	s.gradeOnce.Do(func() {
		names, dirs := scoring.GradeFeatureNames()
		s.grader = scoring.NewGrader(s.load(GradeModel, names, dirs))
		s.loaded.grade.Store(true)
	})
	return s.grader
}

// load returns nil when the model is absent or unusable; the caller then
// falls back to rules.
func (s *Store) load(name string, names []string, dirs []int) *model.Linear {
	if s.dir == "" {
		return nil
	}

	path := filepath.Join(s.dir, name+".yaml")
	m, err := model.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no trained model, using rules", zap.String("model", name), zap.String("path", path))
		return nil
	}
	if err == nil {
		err = m.Compatible(names, dirs)
	}
	if err != nil {
		s.logger.Warn("trained model rejected, using rules", zap.String("model", name), zap.Error(err))
		s.fallback("model_" + name)
		return nil
	}

	s.logger.Info("trained model loaded", zap.String("model", name), zap.String("version", m.Version))
	return m
}

func (s *Store) fallback(component string) {
	if s.recorder != nil {
		s.recorder.Fallback(component)
	}
}

// Warmup builds every handle and runs one encoding so the first analysis
// does not pay the load cost.
func (s *Store) Warmup(ctx context.Context) {
	s.Engine().Encode(ctx, []string{"warmup"})
	s.ATS()
	s.Sections()
	s.Grader()
}

// Status describes each handle: "pending" until first use, then the
// strategy or embedding model in use.
type Status struct {
	Embedder string `json:"embedder"`
	ATS      string `json:"ats"`
	Section  string `json:"section"`
	Grade    string `json:"grade"`
}

const statusPending = "pending"

// Status reports which handles are live without loading any of them.
func (s *Store) Status() Status {
	st := Status{Embedder: statusPending, ATS: statusPending, Section: statusPending, Grade: statusPending}
	if s.loaded.engine.Load() {
		st.Embedder = s.engine.Model()
	}
	if s.loaded.ats.Load() {
		st.ATS = s.ats.Strategy()
	}
	if s.loaded.section.Load() {
		st.Section = s.section.Strategy()
	}
	if s.loaded.grade.Load() {
		st.Grade = s.grader.Strategy()
	}
	return st
}
