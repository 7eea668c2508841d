package gemini

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultEmbeddingModel = "gemini-embedding-001"
	maxEmbedBatch         = 100
)

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder encodes texts with the Gemini embedding endpoint.
type Embedder struct {
	models     contentEmbedder
	model      string
	dimensions int
	logger     *zap.Logger
}

// NewEmbedder creates an Embedder. A positive dimensions truncates the
// returned vectors to that size on the server side.
func NewEmbedder(ctx context.Context, apiKey, model string, dimensions int, logger *zap.Logger) (*Embedder, error) {
	client, err := newClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{
		models:     client.Models,
		model:      model,
		dimensions: dimensions,
		logger:     logger,
	}, nil
}

func (e *Embedder) Model() string { return e.model }

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	config := &genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"}
	if e.dimensions > 0 {
		config.OutputDimensionality = genai.Ptr(int32(e.dimensions))
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxEmbedBatch {
		batch := texts[start:min(start+maxEmbedBatch, len(texts))]

		contents := make([]*genai.Content, len(batch))
		for i, text := range batch {
			contents[i] = &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: text}},
			}
		}

		resp, err := e.models.EmbedContent(ctx, e.model, contents, config)
		if err != nil {
			return nil, fmt.Errorf("embed content: %w", err)
		}
		if resp == nil || len(resp.Embeddings) != len(batch) {
			got := 0
			if resp != nil {
				got = len(resp.Embeddings)
			}
			return nil, fmt.Errorf("embed content: expected %d embeddings, got %d", len(batch), got)
		}

		for _, emb := range resp.Embeddings {
			if emb == nil {
				return nil, fmt.Errorf("embed content: empty embedding")
			}
			out = append(out, emb.Values)
		}
	}

	e.logger.Debug("gemini embeddings computed",
		zap.Int("texts", len(texts)),
		zap.Int("dimensions", e.dimensions),
	)

	return out, nil
}
