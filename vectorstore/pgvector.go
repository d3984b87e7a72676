package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smallnest/ragpipe"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PgvectorStore implements ragpipe.VectorStore using PostgreSQL with the
// pgvector extension.
type PgvectorStore struct {
	pool      DBPool
	tableName string
	dimension int
}

var _ ragpipe.VectorStore = (*PgvectorStore)(nil)

// PgvectorOptions configuration for Postgres connection
type PgvectorOptions struct {
	ConnString string
	TableName  string // Default "embeddings"
	Dimension  int
}

// NewPgvectorStore creates a new pgvector-backed store
func NewPgvectorStore(ctx context.Context, opts PgvectorOptions) (*PgvectorStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "embeddings"
	}

	return &PgvectorStore{
		pool:      pool,
		tableName: tableName,
		dimension: opts.Dimension,
	}, nil
}

// NewPgvectorStoreWithPool creates a store with an existing pool
// Useful for testing with mocks
func NewPgvectorStoreWithPool(pool DBPool, tableName string, dimension int) *PgvectorStore {
	if tableName == "" {
		tableName = "embeddings"
	}
	return &PgvectorStore{
		pool:      pool,
		tableName: tableName,
		dimension: dimension,
	}
}

// InitSchema creates the extension and table if they don't exist
func (s *PgvectorStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding vector(%d)
		);
	`, s.tableName, s.dimension)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PgvectorStore) Close() {
	s.pool.Close()
}

// Upsert inserts or replaces items by ID
func (s *PgvectorStore) Upsert(ctx context.Context, items []ragpipe.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, metadata, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding
	`, s.tableName)

	for _, item := range items {
		if len(item.Vector) != s.dimension {
			return ragpipe.ErrInvalidDimension
		}

		metadataJSON, err := json.Marshal(item.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}

		_, err = s.pool.Exec(ctx, query,
			item.ID,
			item.Content,
			metadataJSON,
			vectorLiteral(item.Vector),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
		}
	}
	return nil
}

// Search returns the k nearest items by cosine distance
func (s *PgvectorStore) Search(ctx context.Context, vector []float32, k int) ([]ragpipe.SearchResult, error) {
	query := fmt.Sprintf(`
		SELECT id, content, metadata, 1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, vectorLiteral(vector), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	var results []ragpipe.SearchResult
	for rows.Next() {
		var item ragpipe.Item
		var metadataJSON []byte
		var score float64

		if err := rows.Scan(&item.ID, &item.Content, &metadataJSON, &score); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &item.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}

		results = append(results, ragpipe.SearchResult{Item: item, Score: score})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}

	return results, nil
}

// Delete removes items by ID
func (s *PgvectorStore) Delete(ctx context.Context, ids []string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", s.tableName)
	_, err := s.pool.Exec(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	return nil
}

// Count returns the number of stored items
func (s *PgvectorStore) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tableName)

	var count int
	if err := s.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// vectorLiteral formats a vector in pgvector's text representation
func vectorLiteral(vector []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
