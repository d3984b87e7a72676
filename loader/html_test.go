package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Release Notes</title>
  <style>body { color: red; }</style>
</head>
<body>
  <nav>Home | About</nav>
  <h1>Version 2.0</h1>
  <p>This release adds <strong>vector search</strong>.</p>
  <script>trackPageView();</script>
  <footer>Copyright 2026</footer>
</body>
</html>`

func TestHTMLLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("Markup and non-content elements are stripped", func(t *testing.T) {
		docs, err := NewHTMLLoader(strings.NewReader(samplePage)).Load(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Contains(t, doc.Content, "Version 2.0")
		assert.Contains(t, doc.Content, "vector search")
		assert.NotContains(t, doc.Content, "<p>")
		assert.NotContains(t, doc.Content, "trackPageView")
		assert.NotContains(t, doc.Content, "color: red")
		assert.NotContains(t, doc.Content, "Copyright")
	})

	t.Run("Title lands in metadata", func(t *testing.T) {
		docs, err := NewHTMLLoader(strings.NewReader(samplePage)).Load(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Release Notes", docs[0].Metadata["title"])
		assert.Equal(t, "html", docs[0].Metadata["type"])
	})

	t.Run("Source becomes the document ID", func(t *testing.T) {
		docs, err := NewHTMLLoader(strings.NewReader(samplePage),
			WithSource("https://example.com/notes")).Load(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "https://example.com/notes", docs[0].ID)
		assert.Equal(t, "https://example.com/notes", docs[0].Metadata["source"])
	})

	t.Run("Without a source a random ID is generated", func(t *testing.T) {
		docs, err := NewHTMLLoader(strings.NewReader(samplePage)).Load(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.True(t, strings.HasPrefix(docs[0].ID, "html-"))
		assert.Greater(t, len(docs[0].ID), len("html-"))
	})
}

func TestNormalizeText(t *testing.T) {
	in := "  first line  \n\n\n\n  second line \n third \n\n"
	assert.Equal(t, "first line\n\nsecond line\nthird", normalizeText(in))
}
