package splitter

import (
	"fmt"
	"maps"

	"github.com/smallnest/ragpipe"
)

// chunkDocuments applies a splitter to each document and wraps the
// resulting chunks as documents. Chunk IDs follow the "{parent}-chunk-{n}"
// convention used by the ingestion pipeline. Empty chunks (the degenerate
// single-empty-chunk output) contribute nothing to index.
func chunkDocuments(s ragpipe.Splitter, docs []ragpipe.Document) []ragpipe.Document {
	var result []ragpipe.Document

	for _, doc := range docs {
		chunks := s.SplitText(doc.Content)

		var kept []ragpipe.Chunk
		for _, chunk := range chunks {
			if chunk.Text == "" {
				continue
			}
			kept = append(kept, chunk)
		}

		for i, chunk := range kept {
			metadata := make(map[string]any)
			maps.Copy(metadata, doc.Metadata)

			metadata["chunk_index"] = i
			metadata["chunk_total"] = len(kept)
			metadata["parent_id"] = doc.ID

			result = append(result, ragpipe.Document{
				ID:        fmt.Sprintf("%s-chunk-%d", doc.ID, i),
				Content:   chunk.Text,
				Metadata:  metadata,
				CreatedAt: doc.CreatedAt,
				UpdatedAt: doc.UpdatedAt,
			})
		}
	}

	return result
}
