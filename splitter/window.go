package splitter

import (
	"strings"

	"github.com/smallnest/ragpipe"
)

const (
	// DefaultChunkSize is the default maximum chunk size in characters.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the default overlap between consecutive chunks.
	DefaultChunkOverlap = 200

	// minWindowStep is the safety floor for the window advance so the
	// loop always terminates in O(len/step) iterations.
	minWindowStep = 100
)

// WindowSplitter splits text with a fixed-size sliding window. Consecutive
// chunks overlap by the configured overlap, clamped to at most half the
// chunk size so the window always moves forward.
type WindowSplitter struct {
	chunkSize    int
	chunkOverlap int
}

// WindowSplitterOption configures the WindowSplitter
type WindowSplitterOption func(*WindowSplitter)

// WithChunkSize sets the maximum chunk size in characters
func WithChunkSize(size int) WindowSplitterOption {
	return func(s *WindowSplitter) {
		s.chunkSize = size
	}
}

// WithChunkOverlap sets the overlap between consecutive chunks
func WithChunkOverlap(overlap int) WindowSplitterOption {
	return func(s *WindowSplitter) {
		s.chunkOverlap = overlap
	}
}

// NewWindowSplitter creates a new WindowSplitter
func NewWindowSplitter(opts ...WindowSplitterOption) *WindowSplitter {
	s := &WindowSplitter{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize <= 0 {
		s.chunkSize = DefaultChunkSize
	}
	if s.chunkOverlap < 0 {
		s.chunkOverlap = 0
	}

	return s
}

// EffectiveOverlap returns the overlap actually applied: the configured
// overlap clamped to half the chunk size.
func (s *WindowSplitter) EffectiveOverlap() int {
	return min(s.chunkOverlap, s.chunkSize/2)
}

// SplitText splits text into overlapping window chunks. Empty or
// all-whitespace input yields a single empty chunk, never an error.
func (s *WindowSplitter) SplitText(text string) []ragpipe.Chunk {
	if strings.TrimSpace(text) == "" {
		return []ragpipe.Chunk{{Text: "", Index: 0}}
	}

	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []ragpipe.Chunk{{Text: text, Index: 0}}
	}

	step := s.chunkSize - s.EffectiveOverlap()
	if step < minWindowStep {
		step = minWindowStep
	}

	var chunks []ragpipe.Chunk
	for pos := 0; pos < len(runes); pos += step {
		end := pos + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		piece := string(runes[pos:end])
		if strings.TrimSpace(piece) == "" {
			continue
		}

		chunks = append(chunks, ragpipe.Chunk{Text: piece, Index: len(chunks)})
	}

	return chunks
}

// SplitDocuments splits documents into chunk documents
func (s *WindowSplitter) SplitDocuments(docs []ragpipe.Document) []ragpipe.Document {
	return chunkDocuments(s, docs)
}

var _ ragpipe.Splitter = (*WindowSplitter)(nil)
