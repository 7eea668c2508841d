// Package scoring combines lexical and semantic signals into 0-100 scores.
//
// Every scorer picks a strategy once, at construction: a trained linear model
// when one is supplied and matches the scorer's feature vector, otherwise the
// fixed rule allocation. Both strategies are non-decreasing in every
// positive-signal feature.
package scoring

import (
	"math"

	"github.com/spigell/resumelyze/internal/scoring/model"
)

// Strategy names reported by scorers.
const (
	StrategyRules   = "rules"
	StrategyTrained = "trained"
)

// vectorizer is a feature set that can feed a trained model.
type vectorizer interface {
	Vector() []float64
}

// trained wraps a validated model for one feature schema.
type trained struct {
	model *model.Linear
}

// newTrained returns nil when m is nil or does not fit the schema.
func newTrained(m *model.Linear, names []string, directions []int) *trained {
	if m == nil || m.Compatible(names, directions) != nil {
		return nil
	}
	return &trained{model: m}
}

func (t *trained) predict(f vectorizer) (float64, bool) {
	y, err := t.model.Predict(f.Vector())
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	return y, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// toScore rounds and clamps v to an integer score within [lo, hi].
func toScore(v float64, lo, hi int) int {
	return int(math.Round(clamp(v, float64(lo), float64(hi))))
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
