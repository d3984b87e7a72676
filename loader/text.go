package loader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smallnest/ragpipe"
)

// TextLoader loads a single text file as one document
type TextLoader struct {
	filePath string
	metadata map[string]any
}

// TextLoaderOption configures the TextLoader
type TextLoaderOption func(*TextLoader)

// WithMetadata sets additional metadata for loaded documents
func WithMetadata(metadata map[string]any) TextLoaderOption {
	return func(l *TextLoader) {
		maps.Copy(l.metadata, metadata)
	}
}

// NewTextLoader creates a new TextLoader
func NewTextLoader(filePath string, opts ...TextLoaderOption) *TextLoader {
	l := &TextLoader{
		filePath: filePath,
		metadata: make(map[string]any),
	}

	l.metadata["source"] = filePath
	l.metadata["type"] = "text"

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads the file into a single document. The document ID is
// derived from the file path, so reloading the same file yields the
// same ID and re-ingestion replaces rather than duplicates.
func (l *TextLoader) Load(ctx context.Context) ([]ragpipe.Document, error) {
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", l.filePath, err)
	}

	metadata := make(map[string]any)
	maps.Copy(metadata, l.metadata)

	now := time.Now()
	doc := ragpipe.Document{
		ID:        fmt.Sprintf("text-%s", l.filePath),
		Content:   string(content),
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return []ragpipe.Document{doc}, nil
}

// DirectoryLoader loads every matching file in a directory as a document
type DirectoryLoader struct {
	dirPath    string
	extensions map[string]bool
	metadata   map[string]any
}

// DirectoryLoaderOption configures the DirectoryLoader
type DirectoryLoaderOption func(*DirectoryLoader)

// WithExtensions restricts loading to the given file extensions
// (including the dot, e.g. ".txt")
func WithExtensions(extensions ...string) DirectoryLoaderOption {
	return func(l *DirectoryLoader) {
		l.extensions = make(map[string]bool, len(extensions))
		for _, ext := range extensions {
			l.extensions[strings.ToLower(ext)] = true
		}
	}
}

// WithDirectoryMetadata sets additional metadata for loaded documents
func WithDirectoryMetadata(metadata map[string]any) DirectoryLoaderOption {
	return func(l *DirectoryLoader) {
		maps.Copy(l.metadata, metadata)
	}
}

// NewDirectoryLoader creates a loader over a directory. By default it
// loads .txt and .md files.
func NewDirectoryLoader(dirPath string, opts ...DirectoryLoaderOption) *DirectoryLoader {
	l := &DirectoryLoader{
		dirPath:    dirPath,
		extensions: map[string]bool{".txt": true, ".md": true},
		metadata:   make(map[string]any),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads every matching file, one document per file, in directory order
func (l *DirectoryLoader) Load(ctx context.Context) ([]ragpipe.Document, error) {
	entries, err := os.ReadDir(l.dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", l.dirPath, err)
	}

	var documents []ragpipe.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !l.extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		path := filepath.Join(l.dirPath, entry.Name())
		fileLoader := NewTextLoader(path, WithMetadata(l.metadata))
		docs, err := fileLoader.Load(ctx)
		if err != nil {
			return nil, err
		}
		documents = append(documents, docs...)
	}

	return documents, nil
}
