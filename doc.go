// ragpipe - Document Ingestion Pipeline for RAG in Go
//
// ragpipe provides the building blocks for turning raw documents into
// searchable vector collections: text splitters with overlap control,
// embedding generation with retry/backoff and graceful degradation, and
// vector store backends for persistence and similarity search.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/ragpipe
//
// Basic ingestion:
//
//	package main
//
//	import (
//		"context"
//		"log"
//		"os"
//
//		"github.com/smallnest/ragpipe/embedder"
//		"github.com/smallnest/ragpipe/ingest"
//		"github.com/smallnest/ragpipe/splitter"
//		"github.com/smallnest/ragpipe/vectorstore"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		client, err := embedder.NewOpenAIEmbedder(embedder.OpenAIConfig{
//			APIKey: os.Getenv("OPENAI_API_KEY"),
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		gen := embedder.NewGenerator(client, embedder.DefaultGeneratorConfig())
//		store := vectorstore.NewMemoryStore(gen.GetDimension())
//		sp := splitter.NewWindowSplitter(splitter.WithChunkSize(1000), splitter.WithChunkOverlap(200))
//
//		pipeline := ingest.NewPipeline(sp, gen, store, nil)
//		stats, _ := pipeline.IngestText(ctx, "https://example.com/doc", "some long text...")
//		log.Printf("indexed %d chunks", stats.Indexed)
//	}
//
// # Components
//
// splitter/
// Window and separator based chunkers plus a markdown heading-aware
// splitter. Splitters are pure functions over their input and never fail;
// degenerate input produces a single empty chunk.
//
// embedder/
// The Generator wraps any embedding client with truncation, retry with
// exponential backoff, and zero-vector degradation so that one failing
// text never blocks a batch. Clients are provided for the OpenAI API and
// for langchaingo embedders, plus a Redis-backed caching decorator.
//
// vectorstore/
// In-memory, pgvector (PostgreSQL) and SQLite stores behind a common
// VectorStore interface.
//
// ingest/
// The Pipeline glues a splitter, a generator and a store together:
// chunk, embed, upsert, with per-chunk status accounting.
//
// retriever/
// Query-side helper: embed the query and search the store with top-k and
// score threshold filtering.
//
// loader/
// Text file and HTML document loaders producing Documents ready for
// ingestion.
//
// # Degradation Model
//
// Chunking never raises for malformed input. Transient embedding failures
// are retried and then absorbed into an all-zero vector with a logged
// warning, so an ingestion run completes for all chunks even when some
// embeddings silently degrade. Callers that need to observe degradation
// programmatically should use the tagged results returned by
// Generator.EmbedBatchResults.
package ragpipe // import "github.com/smallnest/ragpipe"
