// Package vectorstore provides ragpipe.VectorStore implementations:
//
//   - MemoryStore: in-memory map, for tests and small corpora
//   - PgvectorStore: PostgreSQL with the pgvector extension, for
//     production deployments
//   - SQLiteStore: a single SQLite file with in-process similarity,
//     for local tools
//
// All stores share upsert-by-ID semantics and cosine-similarity search
// ordered by descending score.
package vectorstore
