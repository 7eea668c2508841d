// Package semantic turns text into vectors and compares them.
package semantic

import (
	"context"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/spigell/resumelyze/internal/lexical"
)

// DefaultDimensions matches the vector size of common sentence encoders.
const DefaultDimensions = 384

// Embedder encodes texts into fixed-length vectors, one per input, in input order.
// Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}

// HashEmbedder is a local embedder based on signed feature hashing of word
// unigrams and character trigrams. It needs no model files and never fails.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder creates a hashing embedder with the given vector size.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashEmbedder{dims: dims}
}

func (h *HashEmbedder) Model() string { return "local-hash" }

// Dimensions returns the vector size.
func (h *HashEmbedder) Dimensions() int { return h.dims }

func (h *HashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = h.embed(text)
	}
	return out, nil
}

const (
	wordWeight    = 1.0
	trigramWeight = 0.5
)

func (h *HashEmbedder) embed(text string) []float32 {
	vec := make([]float64, h.dims)

	for _, token := range lexical.Tokenize(text) {
		if lexical.IsStopWord(token) {
			continue
		}
		h.add(vec, "w:"+token, wordWeight)

		padded := "^" + token + "$"
		for i := 0; i+3 <= len(padded); i++ {
			h.add(vec, "t:"+padded[i:i+3], trigramWeight)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}

	out := make([]float32, h.dims)
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out
}

func (h *HashEmbedder) add(vec []float64, feature string, weight float64) {
	sum := xxhash.Sum64String(feature)
	idx := int(sum % uint64(h.dims))
	if sum>>63 == 1 {
		weight = -weight
	}
	vec[idx] += weight
}

// Similarity returns the cosine similarity of two vectors clamped to [0, 1].
// Empty, zero or mismatched vectors score 0.
func Similarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, sim))
}
