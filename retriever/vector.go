package retriever

import (
	"context"
	"fmt"

	"github.com/smallnest/ragpipe"
	"github.com/smallnest/ragpipe/log"
)

// DefaultTopK is the number of results returned when none is configured
const DefaultTopK = 4

// Retriever answers text queries against a vector store by embedding
// the query and running a similarity search.
type Retriever struct {
	embedder       ragpipe.Embedder
	store          ragpipe.VectorStore
	topK           int
	scoreThreshold float64
	logger         log.Logger
}

// Option configures a Retriever
type Option func(*Retriever)

// WithTopK sets how many results Retrieve returns
func WithTopK(k int) Option {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithScoreThreshold drops results scoring below the threshold
func WithScoreThreshold(threshold float64) Option {
	return func(r *Retriever) {
		r.scoreThreshold = threshold
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetriever creates a retriever over an embedder and a vector store
func NewRetriever(embedder ragpipe.Embedder, store ragpipe.VectorStore, opts ...Option) *Retriever {
	r := &Retriever{
		embedder: embedder,
		store:    store,
		topK:     DefaultTopK,
		logger:   log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns the configured number of most similar items for the query
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]ragpipe.SearchResult, error) {
	return r.RetrieveWithK(ctx, query, r.topK)
}

// RetrieveWithK returns up to k most similar items for the query.
// A query whose embedding degrades to a zero vector cannot rank
// anything, so it yields no results rather than an arbitrary ranking.
func (r *Retriever) RetrieveWithK(ctx context.Context, query string, k int) ([]ragpipe.SearchResult, error) {
	vector, err := r.embedder.EmbedDocument(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	if ragpipe.IsZeroVector(vector) {
		r.logger.Warn("query embedding is a zero vector, returning no results")
		return []ragpipe.SearchResult{}, nil
	}

	results, err := r.store.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	if r.scoreThreshold > 0 {
		filtered := results[:0]
		for _, res := range results {
			if res.Score >= r.scoreThreshold {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}
	return results, nil
}
