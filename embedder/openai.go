package embedder

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/smallnest/ragpipe"
)

const (
	// DefaultEmbeddingModel is the model used when none is configured
	DefaultEmbeddingModel = "text-embedding-3-small"
	// DefaultEmbeddingDimension is the output dimension of the default model
	DefaultEmbeddingDimension = 1536
)

// OpenAIConfig configures an OpenAIEmbedder
type OpenAIConfig struct {
	// APIKey is required; construction fails without it
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for proxies or compatible providers
	BaseURL string
	// Model is the embedding model identifier
	Model string
	// Dimension is the expected output dimension, fixed per model
	Dimension int
}

// OpenAIEmbedder implements ragpipe.Embedder using the OpenAI embeddings API
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
}

var _ ragpipe.Embedder = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder creates an OpenAI-backed embedder. A missing API key
// is a configuration error and fails here rather than on first use.
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, ragpipe.ErrMissingAPIKey
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}
	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = DefaultEmbeddingDimension
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		dimension: dimension,
	}, nil
}

// EmbedDocument embeds a single text
func (e *OpenAIEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data for model %s", e.model)
	}

	return resp.Data[0].Embedding, nil
}

// EmbedDocuments embeds multiple texts in a single request
func (e *OpenAIEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d entries, expected %d", len(resp.Data), len(texts))
	}

	// The API documents Data as index-ordered, but map by Index to be safe
	vectors := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding response index %d out of range", data.Index)
		}
		vectors[data.Index] = data.Embedding
	}
	return vectors, nil
}

// GetDimension returns the configured embedding dimension
func (e *OpenAIEmbedder) GetDimension() int {
	return e.dimension
}
