package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads file content as one document", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello\nworld"), 0644))

		docs, err := NewTextLoader(path).Load(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)

		assert.Equal(t, "text-"+path, docs[0].ID)
		assert.Equal(t, "hello\nworld", docs[0].Content)
		assert.Equal(t, path, docs[0].Metadata["source"])
		assert.Equal(t, "text", docs[0].Metadata["type"])
	})

	t.Run("Extra metadata is merged", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

		docs, err := NewTextLoader(path, WithMetadata(map[string]any{"lang": "en"})).Load(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "en", docs[0].Metadata["lang"])
	})

	t.Run("Missing file returns an error", func(t *testing.T) {
		_, err := NewTextLoader("/nonexistent/file.txt").Load(ctx)
		assert.Error(t, err)
	})
}

func TestDirectoryLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads matching files only", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("beta"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "c.bin"), []byte{0x00}, 0644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

		docs, err := NewDirectoryLoader(dir).Load(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 2)

		contents := []string{docs[0].Content, docs[1].Content}
		assert.ElementsMatch(t, []string{"alpha", "beta"}, contents)
	})

	t.Run("Custom extensions override the default", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.rst"), []byte("beta"), 0644))

		docs, err := NewDirectoryLoader(dir, WithExtensions(".rst")).Load(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "beta", docs[0].Content)
	})

	t.Run("Missing directory returns an error", func(t *testing.T) {
		_, err := NewDirectoryLoader("/nonexistent/dir").Load(ctx)
		assert.Error(t, err)
	})
}
