package splitter

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/smallnest/ragpipe"
)

// DefaultHeadingLevel is the heading level markdown documents are split at.
const DefaultHeadingLevel = 2

// MarkdownSplitter splits markdown documents at headings so that chunk
// boundaries follow the document structure. Sections that still exceed the
// chunk size are re-split with a sliding window; documents without usable
// headings fall back to separator splitting.
type MarkdownSplitter struct {
	chunkSize    int
	chunkOverlap int
	headingLevel int
	window       *WindowSplitter
	fallback     *SeparatorSplitter
}

// MarkdownSplitterOption configures the MarkdownSplitter
type MarkdownSplitterOption func(*MarkdownSplitter)

// WithHeadingLevel sets the heading level to split at (sections start at
// headings of this level or above)
func WithHeadingLevel(level int) MarkdownSplitterOption {
	return func(s *MarkdownSplitter) {
		s.headingLevel = level
	}
}

// WithMarkdownChunkSize sets the maximum chunk size in characters
func WithMarkdownChunkSize(size int) MarkdownSplitterOption {
	return func(s *MarkdownSplitter) {
		s.chunkSize = size
	}
}

// WithMarkdownChunkOverlap sets the overlap used when an oversized section
// falls back to window splitting
func WithMarkdownChunkOverlap(overlap int) MarkdownSplitterOption {
	return func(s *MarkdownSplitter) {
		s.chunkOverlap = overlap
	}
}

// NewMarkdownSplitter creates a new MarkdownSplitter
func NewMarkdownSplitter(opts ...MarkdownSplitterOption) *MarkdownSplitter {
	s := &MarkdownSplitter{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		headingLevel: DefaultHeadingLevel,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize <= 0 {
		s.chunkSize = DefaultChunkSize
	}
	if s.headingLevel < 1 {
		s.headingLevel = DefaultHeadingLevel
	}

	s.window = NewWindowSplitter(
		WithChunkSize(s.chunkSize),
		WithChunkOverlap(s.chunkOverlap),
	)
	s.fallback = NewSeparatorSplitter(
		WithSeparatorChunkSize(s.chunkSize),
		WithSeparatorChunkOverlap(s.chunkOverlap),
	)

	return s
}

// SplitText splits markdown text into heading-delimited chunks
func (s *MarkdownSplitter) SplitText(text string) []ragpipe.Chunk {
	if strings.TrimSpace(text) == "" {
		return []ragpipe.Chunk{{Text: "", Index: 0}}
	}

	if len([]rune(text)) <= s.chunkSize {
		return []ragpipe.Chunk{{Text: text, Index: 0}}
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(text))

	var sections []string
	var cur strings.Builder
	sawHeading := false

	flush := func() {
		sec := strings.TrimSpace(cur.String())
		cur.Reset()
		if sec != "" {
			sections = append(sections, sec)
		}
	}

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Heading:
			if entering {
				title := nodeText(n)
				if n.Level <= s.headingLevel {
					sawHeading = true
					flush()
					cur.WriteString(title)
					cur.WriteString("\n\n")
				} else {
					// Deeper headings stay inside the current section.
					cur.WriteString("\n")
					cur.WriteString(title)
					cur.WriteString("\n\n")
				}
				return ast.SkipChildren
			}
		case *ast.Text:
			if entering {
				cur.Write(n.Literal)
			}
		case *ast.Code:
			if entering {
				cur.Write(n.Literal)
			}
		case *ast.CodeBlock:
			if entering {
				cur.Write(n.Literal)
			}
		case *ast.Paragraph:
			if !entering {
				cur.WriteString("\n\n")
			}
		case *ast.ListItem:
			if !entering {
				cur.WriteString("\n")
			}
		}
		return ast.GoToNext
	})
	flush()

	if !sawHeading {
		return s.fallback.SplitText(text)
	}

	var texts []string
	for _, sec := range sections {
		if len([]rune(sec)) > s.chunkSize {
			for _, sub := range s.window.SplitText(sec) {
				if sub.Text != "" {
					texts = append(texts, sub.Text)
				}
			}
		} else {
			texts = append(texts, sec)
		}
	}

	if len(texts) == 0 {
		return []ragpipe.Chunk{{Text: "", Index: 0}}
	}

	chunks := make([]ragpipe.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = ragpipe.Chunk{Text: t, Index: i}
	}

	return chunks
}

// SplitDocuments splits documents into chunk documents
func (s *MarkdownSplitter) SplitDocuments(docs []ragpipe.Document) []ragpipe.Document {
	return chunkDocuments(s, docs)
}

// nodeText collects the literal text beneath a node
func nodeText(node ast.Node) string {
	var buf strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if entering {
			switch t := n.(type) {
			case *ast.Text:
				buf.Write(t.Literal)
			case *ast.Code:
				buf.Write(t.Literal)
			}
		}
		return ast.GoToNext
	})
	return buf.String()
}

var _ ragpipe.Splitter = (*MarkdownSplitter)(nil)
