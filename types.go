package ragpipe

import (
	"context"
	"math"
	"time"
)

// Document represents a unit of source text flowing through the pipeline
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	Embedding []float32      `json:"embedding,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
}

// Chunk is a bounded contiguous piece of a document, the unit of embedding
// and retrieval. Index is the 0-based position in the split output, which
// matches document order. Chunks are not mutated after creation.
type Chunk struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// Splitter partitions text into chunks suitable for embedding.
//
// Splitters never fail: degenerate input (empty or all-whitespace text)
// maps to a single empty chunk, which callers must treat as "nothing to
// index".
type Splitter interface {
	// SplitText splits raw text into ordered chunks.
	SplitText(text string) []Chunk

	// SplitDocuments splits each document into chunk documents, carrying
	// the parent metadata plus chunk_index/chunk_total/parent_id.
	SplitDocuments(docs []Document) []Document
}

// Embedder converts text into fixed-dimension vectors.
type Embedder interface {
	// EmbedDocument embeds a single text.
	EmbedDocument(ctx context.Context, text string) ([]float32, error)

	// EmbedDocuments embeds multiple texts, preserving input order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// GetDimension returns the embedding dimension.
	GetDimension() int
}

// Item is an entry persisted in a vector store: the chunk text, its
// embedding and the source metadata attached at ingestion time.
type Item struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Vector   []float32      `json:"vector"`
	Metadata map[string]any `json:"metadata"`
}

// SearchResult is a vector store match with its similarity score.
type SearchResult struct {
	Item  Item    `json:"item"`
	Score float64 `json:"score"`
}

// VectorStore persists (id, content, vector, metadata) tuples and supports
// similarity search by vector.
type VectorStore interface {
	// Upsert inserts or replaces items by ID.
	Upsert(ctx context.Context, items []Item) error

	// Search returns the top-k items by cosine similarity to the query vector.
	Search(ctx context.Context, vector []float32, k int) ([]SearchResult, error)

	// Delete removes items by ID. Missing IDs are not an error.
	Delete(ctx context.Context, ids []string) error

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)
}

// ZeroVector returns an all-zero vector of the given dimension. The zero
// vector is the sentinel for "no embedding produced".
func ZeroVector(dim int) []float32 {
	return make([]float32, dim)
}

// IsZeroVector reports whether every component of v is zero.
func IsZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Mismatched lengths or zero-norm vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float32
	for i := 0; i < len(a); i++ {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return float64(dotProduct) / (math.Sqrt(float64(normA)) * math.Sqrt(float64(normB)))
}
