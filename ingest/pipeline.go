package ingest

import (
	"context"
	"fmt"
	"maps"

	"github.com/smallnest/ragpipe"
	"github.com/smallnest/ragpipe/embedder"
	"github.com/smallnest/ragpipe/log"
)

// BatchEmbedder is the embedding surface the pipeline needs: tagged
// batch results so ingestion stats can distinguish ok, skipped and
// degraded chunks. *embedder.Generator satisfies it.
type BatchEmbedder interface {
	EmbedBatchResults(ctx context.Context, texts []string) []embedder.EmbedResult
	GetDimension() int
}

// Stats summarizes one ingestion run.
//
// Indexed counts chunks written to the store, including degraded ones;
// Failed counts the subset written with a zero vector after exhausted
// retries; Skipped counts empty chunks that were dropped.
type Stats struct {
	Chunks  int
	Indexed int
	Skipped int
	Failed  int
}

// Pipeline wires a splitter, an embedding generator and a vector store
// into a single ingestion flow. One degraded chunk never aborts the
// run: failures are absorbed into Stats and logged.
type Pipeline struct {
	splitter ragpipe.Splitter
	embedder BatchEmbedder
	store    ragpipe.VectorStore
	logger   log.Logger
}

// NewPipeline creates an ingestion pipeline. A nil logger falls back to
// the package-level default.
func NewPipeline(splitter ragpipe.Splitter, embedder BatchEmbedder, store ragpipe.VectorStore, logger log.Logger) *Pipeline {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	return &Pipeline{
		splitter: splitter,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// IngestText splits text into chunks, embeds them and upserts them into
// the vector store. Chunk IDs are "{source}-chunk-{index}" and each
// item carries {source, chunk_number} metadata, so re-ingesting the
// same source replaces its previous chunks.
func (p *Pipeline) IngestText(ctx context.Context, source, text string) (*Stats, error) {
	return p.ingest(ctx, source, text, nil)
}

// IngestDocuments ingests multiple documents, using each document's ID
// as its source and propagating its metadata onto the stored items.
// Stats are aggregated across documents.
func (p *Pipeline) IngestDocuments(ctx context.Context, docs []ragpipe.Document) (*Stats, error) {
	total := &Stats{}
	for _, doc := range docs {
		stats, err := p.ingest(ctx, doc.ID, doc.Content, doc.Metadata)
		if stats != nil {
			total.Chunks += stats.Chunks
			total.Indexed += stats.Indexed
			total.Skipped += stats.Skipped
			total.Failed += stats.Failed
		}
		if err != nil {
			return total, fmt.Errorf("failed to ingest document %s: %w", doc.ID, err)
		}
	}
	return total, nil
}

func (p *Pipeline) ingest(ctx context.Context, source, text string, metadata map[string]any) (*Stats, error) {
	chunks := p.splitter.SplitText(text)

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	results := p.embedder.EmbedBatchResults(ctx, texts)

	stats := &Stats{Chunks: len(chunks)}
	items := make([]ragpipe.Item, 0, len(results))
	for _, res := range results {
		if res.Status == embedder.EmbedSkipped {
			stats.Skipped++
			continue
		}
		if res.Status == embedder.EmbedFailed {
			stats.Failed++
			p.logger.Warn("chunk %d of %s degraded to zero vector: %v", res.Index, source, res.Err)
		}

		itemMeta := make(map[string]any, len(metadata)+2)
		maps.Copy(itemMeta, metadata)
		itemMeta["source"] = source
		itemMeta["chunk_number"] = res.Index

		items = append(items, ragpipe.Item{
			ID:       fmt.Sprintf("%s-chunk-%d", source, res.Index),
			Content:  chunks[res.Index].Text,
			Vector:   res.Vector,
			Metadata: itemMeta,
		})
	}

	if len(items) > 0 {
		if err := p.store.Upsert(ctx, items); err != nil {
			return stats, fmt.Errorf("failed to upsert chunks for %s: %w", source, err)
		}
		stats.Indexed = len(items)
	}

	p.logger.Info("ingested %s: %d chunks, %d indexed, %d skipped, %d degraded",
		source, stats.Chunks, stats.Indexed, stats.Skipped, stats.Failed)
	return stats, nil
}
