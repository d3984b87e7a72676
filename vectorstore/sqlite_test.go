package vectorstore

import (
	"context"
	"testing"

	"github.com/smallnest/ragpipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteFixture(t *testing.T) *SQLiteStore {
	store, err := NewSQLiteStore(SQLiteOptions{Path: ":memory:", Dimension: 3})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert and count", func(t *testing.T) {
		store := newSQLiteFixture(t)

		err := store.Upsert(ctx, []ragpipe.Item{
			{ID: "a", Content: "alpha", Vector: []float32{1, 0, 0}, Metadata: map[string]any{"source": "doc1"}},
			{ID: "b", Content: "beta", Vector: []float32{0, 1, 0}},
		})
		require.NoError(t, err)

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Upsert replaces by ID", func(t *testing.T) {
		store := newSQLiteFixture(t)

		require.NoError(t, store.Upsert(ctx, []ragpipe.Item{
			{ID: "a", Content: "old", Vector: []float32{1, 0, 0}},
		}))
		require.NoError(t, store.Upsert(ctx, []ragpipe.Item{
			{ID: "a", Content: "new", Vector: []float32{0, 1, 0}},
		}))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Upsert rejects wrong dimension", func(t *testing.T) {
		store := newSQLiteFixture(t)

		err := store.Upsert(ctx, []ragpipe.Item{
			{ID: "a", Vector: []float32{1, 0}},
		})
		assert.ErrorIs(t, err, ragpipe.ErrInvalidDimension)
	})

	t.Run("Search orders by cosine similarity and round-trips metadata", func(t *testing.T) {
		store := newSQLiteFixture(t)

		require.NoError(t, store.Upsert(ctx, []ragpipe.Item{
			{ID: "x", Content: "x axis", Vector: []float32{1, 0, 0}, Metadata: map[string]any{"source": "doc1"}},
			{ID: "y", Content: "y axis", Vector: []float32{0, 1, 0}},
			{ID: "xy", Content: "diagonal", Vector: []float32{1, 1, 0}},
		}))

		results, err := store.Search(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "x", results[0].Item.ID)
		assert.Equal(t, map[string]any{"source": "doc1"}, results[0].Item.Metadata)
		assert.Equal(t, "xy", results[1].Item.ID)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("Delete removes items", func(t *testing.T) {
		store := newSQLiteFixture(t)

		require.NoError(t, store.Upsert(ctx, []ragpipe.Item{
			{ID: "a", Vector: []float32{1, 0, 0}},
			{ID: "b", Vector: []float32{0, 1, 0}},
		}))
		require.NoError(t, store.Delete(ctx, []string{"a"}))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
