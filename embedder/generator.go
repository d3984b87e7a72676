package embedder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smallnest/ragpipe"
	"github.com/smallnest/ragpipe/log"
)

const (
	// DefaultMaxRetries is the number of attempts made per text before
	// degrading to a zero vector
	DefaultMaxRetries = 3
	// DefaultTruncateLimit is the maximum text length (in characters) sent
	// to the embedding provider; longer texts are truncated, not rejected
	DefaultTruncateLimit = 8000
	// DefaultBatchSize is the number of texts embedded per group in batch mode
	DefaultBatchSize = 5
	// DefaultBatchPause is the delay inserted between groups in batch mode
	DefaultBatchPause = time.Second
)

// RetryPolicy controls how embedding attempts are retried.
// Backoff receives the 0-based attempt index of the attempt that just
// failed and returns how long to wait before the next one.
type RetryPolicy struct {
	MaxRetries int
	Backoff    func(attempt int) time.Duration
}

// DefaultRetryPolicy returns the standard policy: 3 attempts with
// exponential backoff of 2^attempt seconds between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: DefaultMaxRetries,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
}

// GeneratorConfig configures a Generator
type GeneratorConfig struct {
	// Retry controls attempts and backoff per text
	Retry RetryPolicy
	// TruncateLimit is the maximum number of characters submitted per text
	TruncateLimit int
	// BatchSize is the group size for batch embedding
	BatchSize int
	// BatchPause is the delay between groups; 0 disables the pause
	BatchPause time.Duration
	// Logger receives degradation warnings; defaults to the package logger
	Logger log.Logger
}

// DefaultGeneratorConfig returns the default generator configuration
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Retry:         DefaultRetryPolicy(),
		TruncateLimit: DefaultTruncateLimit,
		BatchSize:     DefaultBatchSize,
		BatchPause:    DefaultBatchPause,
	}
}

// EmbedStatus tags the outcome of embedding a single text
type EmbedStatus int

const (
	// EmbedOk means the provider returned a vector
	EmbedOk EmbedStatus = iota
	// EmbedSkipped means the text was empty and no call was made
	EmbedSkipped
	// EmbedFailed means every attempt failed and the vector degraded to zero
	EmbedFailed
)

// String returns the string representation of EmbedStatus
func (s EmbedStatus) String() string {
	switch s {
	case EmbedOk:
		return "ok"
	case EmbedSkipped:
		return "skipped"
	case EmbedFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// EmbedResult is the tagged outcome for one input text. Skipped and
// Failed results still carry a zero vector so callers that index
// blindly keep working; Status makes the degradation observable.
type EmbedResult struct {
	Index  int
	Vector []float32
	Status EmbedStatus
	Err    error
}

// Generator wraps an embedding client with the degradation policy used
// during ingestion: empty texts are skipped, long texts are truncated,
// failing texts are retried with backoff and finally degrade to a zero
// vector instead of failing the batch.
type Generator struct {
	client ragpipe.Embedder
	cfg    GeneratorConfig
	logger log.Logger
}

var _ ragpipe.Embedder = (*Generator)(nil)

// NewGenerator creates a Generator on top of an embedding client.
// Zero-valued config fields fall back to defaults, except BatchPause
// where 0 means no pause.
func NewGenerator(client ragpipe.Embedder, cfg GeneratorConfig) *Generator {
	if cfg.Retry.MaxRetries <= 0 {
		cfg.Retry.MaxRetries = DefaultMaxRetries
	}
	if cfg.Retry.Backoff == nil {
		cfg.Retry.Backoff = DefaultRetryPolicy().Backoff
	}
	if cfg.TruncateLimit <= 0 {
		cfg.TruncateLimit = DefaultTruncateLimit
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.GetDefaultLogger()
	}

	return &Generator{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// EmbedText embeds a single text. It never fails: empty input and
// exhausted retries both yield a zero vector of the configured
// dimension, with exhaustion additionally logged at warn level.
func (g *Generator) EmbedText(ctx context.Context, text string) []float32 {
	res := g.embedOne(ctx, 0, text)
	return res.Vector
}

// EmbedBatch embeds texts in groups. Empty texts are filtered out
// before processing, so the output may be shorter than the input.
// Within a group each text is embedded individually; a fixed pause is
// inserted between groups. Output order follows filtered input order.
func (g *Generator) EmbedBatch(ctx context.Context, texts []string) [][]float32 {
	vectors := make([][]float32, 0, len(texts))
	embedded := 0
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if embedded > 0 && embedded%g.cfg.BatchSize == 0 {
			sleepCtx(ctx, g.cfg.BatchPause)
		}
		res := g.embedOne(ctx, embedded, text)
		vectors = append(vectors, res.Vector)
		embedded++
	}
	return vectors
}

// EmbedBatchResults embeds texts like EmbedBatch but returns one tagged
// result per input, including the empty texts as Skipped entries. The
// output always has the same length as the input, with Index mapping
// each result back to its position.
func (g *Generator) EmbedBatchResults(ctx context.Context, texts []string) []EmbedResult {
	results := make([]EmbedResult, 0, len(texts))
	embedded := 0
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			results = append(results, EmbedResult{
				Index:  i,
				Vector: ragpipe.ZeroVector(g.GetDimension()),
				Status: EmbedSkipped,
			})
			continue
		}
		if embedded > 0 && embedded%g.cfg.BatchSize == 0 {
			sleepCtx(ctx, g.cfg.BatchPause)
		}
		res := g.embedOne(ctx, i, text)
		results = append(results, res)
		embedded++
	}
	return results
}

// EmbedDocument implements ragpipe.Embedder. It applies the degradation
// policy, so the returned error is always nil.
func (g *Generator) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return g.EmbedText(ctx, text), nil
}

// EmbedDocuments implements ragpipe.Embedder using EmbedBatch semantics:
// empty texts are dropped, so the output may be shorter than the input.
func (g *Generator) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return g.EmbedBatch(ctx, texts), nil
}

// GetDimension returns the embedding dimension of the underlying client
func (g *Generator) GetDimension() int {
	return g.client.GetDimension()
}

// embedOne applies the full degradation policy to a single text: skip
// empties without a call, truncate, then run the retry loop
func (g *Generator) embedOne(ctx context.Context, index int, text string) EmbedResult {
	if strings.TrimSpace(text) == "" {
		return EmbedResult{
			Index:  index,
			Vector: ragpipe.ZeroVector(g.GetDimension()),
			Status: EmbedSkipped,
		}
	}

	text = truncate(text, g.cfg.TruncateLimit)

	var lastErr error
	for attempt := 0; attempt < g.cfg.Retry.MaxRetries; attempt++ {
		vector, err := g.client.EmbedDocument(ctx, text)
		if err == nil {
			return EmbedResult{Index: index, Vector: vector, Status: EmbedOk}
		}
		lastErr = err
		g.logger.Debug("embedding attempt %d/%d failed: %v", attempt+1, g.cfg.Retry.MaxRetries, err)
		if attempt < g.cfg.Retry.MaxRetries-1 {
			sleepCtx(ctx, g.cfg.Retry.Backoff(attempt))
		}
	}

	g.logger.Warn("embedding degraded to zero vector after %d attempts: %v", g.cfg.Retry.MaxRetries, lastErr)
	return EmbedResult{
		Index:  index,
		Vector: ragpipe.ZeroVector(g.GetDimension()),
		Status: EmbedFailed,
		Err:    fmt.Errorf("embedding failed after %d attempts: %w", g.cfg.Retry.MaxRetries, lastErr),
	}
}

// truncate limits text to the given number of characters
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// sleepCtx sleeps for d, returning early if ctx is done
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
