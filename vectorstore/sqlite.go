package vectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/smallnest/ragpipe"
)

// SQLiteStore implements ragpipe.VectorStore on a single SQLite file.
// Vectors are stored as JSON and similarity is computed in process, so
// it suits local tools and corpora up to a few tens of thousands of
// items rather than large deployments.
type SQLiteStore struct {
	db        *sql.DB
	tableName string
	dimension int
}

var _ ragpipe.VectorStore = (*SQLiteStore)(nil)

// SQLiteOptions configuration for the SQLite store
type SQLiteOptions struct {
	Path      string // Database file path, ":memory:" for in-memory
	TableName string // Default "embeddings"
	Dimension int
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed store
func NewSQLiteStore(opts SQLiteOptions) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "embeddings"
	}

	store := &SQLiteStore{
		db:        db,
		tableName: tableName,
		dimension: opts.Dimension,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata TEXT,
			embedding TEXT NOT NULL
		)
	`, s.tableName)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Upsert inserts or replaces items by ID
func (s *SQLiteStore) Upsert(ctx context.Context, items []ragpipe.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, metadata, embedding)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			content = excluded.content,
			metadata = excluded.metadata,
			embedding = excluded.embedding
	`, s.tableName)

	for _, item := range items {
		if len(item.Vector) != s.dimension {
			return ragpipe.ErrInvalidDimension
		}

		metadataJSON, err := json.Marshal(item.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		embeddingJSON, err := json.Marshal(item.Vector)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding: %w", err)
		}

		_, err = s.db.ExecContext(ctx, query, item.ID, item.Content, string(metadataJSON), string(embeddingJSON))
		if err != nil {
			return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
		}
	}
	return nil
}

// Search scans all items and returns the k most similar by cosine similarity
func (s *SQLiteStore) Search(ctx context.Context, vector []float32, k int) ([]ragpipe.SearchResult, error) {
	if k <= 0 {
		return []ragpipe.SearchResult{}, nil
	}

	query := fmt.Sprintf("SELECT id, content, metadata, embedding FROM %s", s.tableName)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	var results []ragpipe.SearchResult
	for rows.Next() {
		var item ragpipe.Item
		var metadataJSON, embeddingJSON string

		if err := rows.Scan(&item.ID, &item.Content, &metadataJSON, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}

		if err := json.Unmarshal([]byte(embeddingJSON), &item.Vector); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedding for %s: %w", item.ID, err)
		}
		if metadataJSON != "" {
			if err := json.Unmarshal([]byte(metadataJSON), &item.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata for %s: %w", item.ID, err)
			}
		}

		results = append(results, ragpipe.SearchResult{
			Item:  item,
			Score: ragpipe.CosineSimilarity(vector, item.Vector),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Delete removes items by ID
func (s *SQLiteStore) Delete(ctx context.Context, ids []string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete item %s: %w", id, err)
		}
	}
	return nil
}

// Count returns the number of stored items
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tableName)

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}
