package loader

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/smallnest/ragpipe"
)

// HTMLLoader loads an HTML page as one plain-text document: script,
// style and navigation elements are dropped, the remaining markup is
// stripped and whitespace is normalized.
type HTMLLoader struct {
	reader   io.Reader
	source   string
	metadata map[string]any
	policy   *bluemonday.Policy
}

// HTMLLoaderOption configures the HTMLLoader
type HTMLLoaderOption func(*HTMLLoader)

// WithSource sets the source identifier (URL or path) used for the
// document ID and metadata. Without it a random ID is generated.
func WithSource(source string) HTMLLoaderOption {
	return func(l *HTMLLoader) {
		l.source = source
	}
}

// WithHTMLMetadata sets additional metadata for the loaded document
func WithHTMLMetadata(metadata map[string]any) HTMLLoaderOption {
	return func(l *HTMLLoader) {
		maps.Copy(l.metadata, metadata)
	}
}

// NewHTMLLoader creates a loader reading HTML from r
func NewHTMLLoader(r io.Reader, opts ...HTMLLoaderOption) *HTMLLoader {
	l := &HTMLLoader{
		reader:   r,
		metadata: make(map[string]any),
		policy:   bluemonday.StrictPolicy(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewHTMLFileLoader creates a loader reading HTML from a file
func NewHTMLFileLoader(filePath string, opts ...HTMLLoaderOption) (*HTMLLoader, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	opts = append([]HTMLLoaderOption{WithSource(filePath)}, opts...)
	return NewHTMLLoader(strings.NewReader(string(content)), opts...), nil
}

// Load parses the HTML and returns one plain-text document
func (l *HTMLLoader) Load(ctx context.Context) ([]ragpipe.Document, error) {
	doc, err := goquery.NewDocumentFromReader(l.reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	bodyHTML, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("failed to extract body: %w", err)
	}

	text := normalizeText(l.policy.Sanitize(bodyHTML))

	metadata := make(map[string]any)
	maps.Copy(metadata, l.metadata)
	metadata["type"] = "html"
	if title != "" {
		metadata["title"] = title
	}

	id := l.source
	if id == "" {
		id = fmt.Sprintf("html-%s", uuid.NewString())
	} else {
		metadata["source"] = l.source
	}

	now := time.Now()
	return []ragpipe.Document{{
		ID:        id,
		Content:   text,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}}, nil
}

// normalizeText trims each line and collapses runs of blank lines into
// a single paragraph break
func normalizeText(text string) string {
	lines := strings.Split(text, "\n")

	var b strings.Builder
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				b.WriteString("\n\n")
				blank = true
			}
			continue
		}
		if !blank {
			b.WriteString("\n")
		}
		b.WriteString(line)
		blank = false
	}

	return strings.TrimSpace(b.String())
}
