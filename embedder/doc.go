// Package embedder turns text into fixed-length vectors for similarity
// search, with the degradation policy the ingestion pipeline depends on.
//
// # Components
//
//   - OpenAIEmbedder: a thin client for the OpenAI embeddings API. The
//     API key is validated at construction time.
//   - LangChainEmbedder: adapts any langchaingo embeddings.Embedder.
//   - RedisCache: a caching decorator keyed by content hash, so
//     re-ingesting unchanged documents skips the provider.
//   - Generator: wraps any of the above with retry, truncation,
//     batching and zero-vector degradation.
//
// # Degradation Model
//
// The Generator never fails an ingestion batch over one bad chunk:
//
//   - Empty or whitespace-only text yields a zero vector with no
//     provider call.
//   - Text longer than the truncation limit is cut, not rejected.
//   - A failing call is retried with exponential backoff (2^attempt
//     between attempts). After the last attempt the text degrades to a
//     zero vector and a warning is logged.
//
// Because a zero vector is ambiguous (empty input and exhausted retries
// look identical), EmbedBatchResults returns tagged results carrying an
// EmbedStatus of ok, skipped or failed per input. EmbedText and
// EmbedBatch keep the plain zero-vector contract for callers that
// branch on it.
//
// # Example
//
//	client, err := embedder.NewOpenAIEmbedder(embedder.OpenAIConfig{
//		APIKey: os.Getenv("OPENAI_API_KEY"),
//	})
//	if err != nil {
//		panic(err)
//	}
//
//	gen := embedder.NewGenerator(client, embedder.DefaultGeneratorConfig())
//	vectors := gen.EmbedBatch(ctx, texts)
package embedder
