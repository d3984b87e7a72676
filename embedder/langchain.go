package embedder

import (
	"context"

	"github.com/smallnest/ragpipe"
	"github.com/tmc/langchaingo/embeddings"
)

// LangChainEmbedder adapts langchaingo's embeddings.Embedder to the
// ragpipe.Embedder interface, so any provider langchaingo supports can
// feed the ingestion pipeline.
type LangChainEmbedder struct {
	embedder  embeddings.Embedder
	dimension int
}

var _ ragpipe.Embedder = (*LangChainEmbedder)(nil)

// NewLangChainEmbedder creates a new adapter for langchaingo embedders.
// The dimension must be supplied because langchaingo embedders don't
// expose it directly.
func NewLangChainEmbedder(embedder embeddings.Embedder, dimension int) *LangChainEmbedder {
	return &LangChainEmbedder{
		embedder:  embedder,
		dimension: dimension,
	}
}

// EmbedDocument embeds a single text using the underlying langchaingo embedder
func (l *LangChainEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	embedding, err := l.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	result := make([]float32, len(embedding))
	for i, val := range embedding {
		result[i] = float32(val)
	}
	return result, nil
}

// EmbedDocuments embeds multiple texts using the underlying langchaingo embedder
func (l *LangChainEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := l.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}

	result := make([][]float32, len(vectors))
	for i, vector := range vectors {
		result[i] = make([]float32, len(vector))
		for j, val := range vector {
			result[i][j] = float32(val)
		}
	}
	return result, nil
}

// GetDimension returns the embedding dimension
func (l *LangChainEmbedder) GetDimension() int {
	return l.dimension
}
