package loader

import (
	"context"

	"github.com/smallnest/ragpipe"
)

// Loader loads documents from a source for ingestion
type Loader interface {
	Load(ctx context.Context) ([]ragpipe.Document, error)
}
