package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownSplitter(t *testing.T) {
	t.Run("Empty text returns single empty chunk", func(t *testing.T) {
		s := NewMarkdownSplitter()
		chunks := s.SplitText("")
		require.Len(t, chunks, 1)
		assert.Equal(t, "", chunks[0].Text)
	})

	t.Run("Short document returns single chunk", func(t *testing.T) {
		s := NewMarkdownSplitter(WithMarkdownChunkSize(500))
		text := "# Title\n\nA short document."
		chunks := s.SplitText(text)
		require.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0].Text)
	})

	t.Run("Document is split at headings", func(t *testing.T) {
		s := NewMarkdownSplitter(WithMarkdownChunkSize(80))

		text := "# Guide\n\nIntro paragraph for the guide.\n\n" +
			"## Install\n\nRun the installer and wait.\n\n" +
			"## Configure\n\nEdit the config file by hand.\n"

		chunks := s.SplitText(text)
		require.Len(t, chunks, 3)
		assert.True(t, strings.HasPrefix(chunks[0].Text, "Guide"))
		assert.Contains(t, chunks[0].Text, "Intro paragraph")
		assert.True(t, strings.HasPrefix(chunks[1].Text, "Install"))
		assert.Contains(t, chunks[1].Text, "Run the installer")
		assert.True(t, strings.HasPrefix(chunks[2].Text, "Configure"))
		assert.Contains(t, chunks[2].Text, "config file")
	})

	t.Run("Deeper headings stay inside their section", func(t *testing.T) {
		s := NewMarkdownSplitter(WithMarkdownChunkSize(120), WithHeadingLevel(2))

		text := "## Topic\n\nSome topic text here.\n\n" +
			"### Detail\n\nDetail text belongs to the topic.\n\n" +
			"## Next\n\nNext section text goes here to pad length.\n"

		chunks := s.SplitText(text)
		require.Len(t, chunks, 2)
		assert.Contains(t, chunks[0].Text, "Detail")
		assert.Contains(t, chunks[0].Text, "Detail text belongs")
		assert.True(t, strings.HasPrefix(chunks[1].Text, "Next"))
	})

	t.Run("Oversized section falls back to window splitting", func(t *testing.T) {
		s := NewMarkdownSplitter(WithMarkdownChunkSize(100), WithMarkdownChunkOverlap(0))

		text := "## Big\n\n" + strings.Repeat("long section body text ", 20) + "\n\n" +
			"## Small\n\nTiny section.\n"

		chunks := s.SplitText(text)
		assert.Greater(t, len(chunks), 2)
		assert.True(t, strings.HasPrefix(chunks[len(chunks)-1].Text, "Small"))
	})

	t.Run("No headings falls back to separator splitting", func(t *testing.T) {
		s := NewMarkdownSplitter(WithMarkdownChunkSize(50))
		fallback := NewSeparatorSplitter(WithSeparatorChunkSize(50), WithSeparatorChunkOverlap(DefaultChunkOverlap))

		text := strings.Repeat("plain paragraph without structure.\n\n", 5)
		assert.Equal(t, fallback.SplitText(text), s.SplitText(text))
	})

	t.Run("Splitting is idempotent", func(t *testing.T) {
		s := NewMarkdownSplitter(WithMarkdownChunkSize(80))
		text := "## A\n\naaaa aaaa aaaa.\n\n## B\n\nbbbb bbbb bbbb.\n\n## C\n\ncccc cccc cccc.\n"
		assert.Equal(t, s.SplitText(text), s.SplitText(text))
	})
}
