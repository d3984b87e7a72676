package splitter

import (
	"strings"

	"github.com/smallnest/ragpipe"
)

// DefaultSeparator is the default paragraph separator.
const DefaultSeparator = "\n\n"

// SeparatorSplitter splits text on a separator and greedily packs the parts
// into chunks up to the configured size. Parts that exceed the chunk size
// on their own are re-split with a sliding window.
type SeparatorSplitter struct {
	separator    string
	chunkSize    int
	chunkOverlap int
	window       *WindowSplitter
}

// SeparatorSplitterOption configures the SeparatorSplitter
type SeparatorSplitterOption func(*SeparatorSplitter)

// WithSeparator sets the separator to split on
func WithSeparator(separator string) SeparatorSplitterOption {
	return func(s *SeparatorSplitter) {
		s.separator = separator
	}
}

// WithSeparatorChunkSize sets the maximum chunk size in characters
func WithSeparatorChunkSize(size int) SeparatorSplitterOption {
	return func(s *SeparatorSplitter) {
		s.chunkSize = size
	}
}

// WithSeparatorChunkOverlap sets the overlap used when an oversized part
// falls back to window splitting
func WithSeparatorChunkOverlap(overlap int) SeparatorSplitterOption {
	return func(s *SeparatorSplitter) {
		s.chunkOverlap = overlap
	}
}

// NewSeparatorSplitter creates a new SeparatorSplitter
func NewSeparatorSplitter(opts ...SeparatorSplitterOption) *SeparatorSplitter {
	s := &SeparatorSplitter{
		separator:    DefaultSeparator,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize <= 0 {
		s.chunkSize = DefaultChunkSize
	}
	if s.separator == "" {
		s.separator = DefaultSeparator
	}

	s.window = NewWindowSplitter(
		WithChunkSize(s.chunkSize),
		WithChunkOverlap(s.chunkOverlap),
	)

	return s
}

// SplitText splits text on the separator and packs the parts into chunks.
// Output order matches input part order. Empty or all-whitespace input
// yields a single empty chunk.
func (s *SeparatorSplitter) SplitText(text string) []ragpipe.Chunk {
	if strings.TrimSpace(text) == "" {
		return []ragpipe.Chunk{{Text: "", Index: 0}}
	}

	if len([]rune(text)) <= s.chunkSize {
		return []ragpipe.Chunk{{Text: text, Index: 0}}
	}

	var parts []string
	for _, part := range strings.Split(text, s.separator) {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return []ragpipe.Chunk{{Text: "", Index: 0}}
	}

	allFit := true
	for _, part := range parts {
		if len([]rune(part)) > s.chunkSize {
			allFit = false
			break
		}
	}

	if allFit {
		chunks := make([]ragpipe.Chunk, len(parts))
		for i, part := range parts {
			chunks[i] = ragpipe.Chunk{Text: part, Index: i}
		}
		return chunks
	}

	var texts []string
	var acc string

	flush := func() {
		if acc != "" {
			texts = append(texts, acc)
			acc = ""
		}
	}

	for _, part := range parts {
		if len([]rune(part)) > s.chunkSize {
			// Oversized part bypasses the accumulator and is re-split
			// with the sliding window.
			flush()
			for _, sub := range s.window.SplitText(part) {
				if sub.Text != "" {
					texts = append(texts, sub.Text)
				}
			}
			continue
		}

		if acc == "" {
			acc = part
			continue
		}

		if len([]rune(acc))+len([]rune(s.separator))+len([]rune(part)) > s.chunkSize {
			flush()
			acc = part
		} else {
			acc += s.separator + part
		}
	}
	flush()

	chunks := make([]ragpipe.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = ragpipe.Chunk{Text: t, Index: i}
	}

	return chunks
}

// SplitDocuments splits documents into chunk documents
func (s *SeparatorSplitter) SplitDocuments(docs []ragpipe.Document) []ragpipe.Document {
	return chunkDocuments(s, docs)
}

var _ ragpipe.Splitter = (*SeparatorSplitter)(nil)
