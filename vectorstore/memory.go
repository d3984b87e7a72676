package vectorstore

import (
	"context"
	"sort"
	"sync"

	"github.com/smallnest/ragpipe"
)

// MemoryStore is an in-memory vector store backed by a map. It is safe
// for concurrent use and intended for tests, examples and small corpora.
type MemoryStore struct {
	mu        sync.RWMutex
	items     map[string]ragpipe.Item
	order     []string
	dimension int
}

var _ ragpipe.VectorStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store for vectors of the
// given dimension.
func NewMemoryStore(dimension int) *MemoryStore {
	return &MemoryStore{
		items:     make(map[string]ragpipe.Item),
		dimension: dimension,
	}
}

// Upsert inserts or replaces items by ID
func (s *MemoryStore) Upsert(ctx context.Context, items []ragpipe.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if len(item.Vector) != s.dimension {
			return ragpipe.ErrInvalidDimension
		}
		if _, exists := s.items[item.ID]; !exists {
			s.order = append(s.order, item.ID)
		}
		s.items[item.ID] = item
	}
	return nil
}

// Search returns the k items most similar to the query vector, scored
// by cosine similarity in descending order. Items that share a score
// keep insertion order.
func (s *MemoryStore) Search(ctx context.Context, vector []float32, k int) ([]ragpipe.SearchResult, error) {
	if k <= 0 {
		return []ragpipe.SearchResult{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]ragpipe.SearchResult, 0, len(s.items))
	for _, id := range s.order {
		item := s.items[id]
		results = append(results, ragpipe.SearchResult{
			Item:  item,
			Score: ragpipe.CosineSimilarity(vector, item.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Delete removes items by ID; unknown IDs are ignored
func (s *MemoryStore) Delete(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, exists := s.items[id]; !exists {
			continue
		}
		delete(s.items, id)
		for i, ordered := range s.order {
			if ordered == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Count returns the number of stored items
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// Get returns an item by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (ragpipe.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return ragpipe.Item{}, ragpipe.ErrNotFound
	}
	return item, nil
}
