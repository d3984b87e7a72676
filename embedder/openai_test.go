package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smallnest/ragpipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIEmbedder(t *testing.T) {
	t.Run("Missing API key fails at construction", func(t *testing.T) {
		_, err := NewOpenAIEmbedder(OpenAIConfig{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ragpipe.ErrMissingAPIKey)
	})

	t.Run("Defaults are applied", func(t *testing.T) {
		e, err := NewOpenAIEmbedder(OpenAIConfig{APIKey: "test-key"})
		require.NoError(t, err)
		assert.Equal(t, DefaultEmbeddingModel, e.model)
		assert.Equal(t, DefaultEmbeddingDimension, e.GetDimension())
	})

	t.Run("Config overrides defaults", func(t *testing.T) {
		e, err := NewOpenAIEmbedder(OpenAIConfig{
			APIKey:    "test-key",
			Model:     "text-embedding-3-large",
			Dimension: 3072,
		})
		require.NoError(t, err)
		assert.Equal(t, "text-embedding-3-large", e.model)
		assert.Equal(t, 3072, e.GetDimension())
	})
}

// embeddingsHandler serves a minimal embeddings API response, echoing
// one fixed vector per input.
func embeddingsHandler(t *testing.T, vector []float32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type entry struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		}
		resp := struct {
			Object string  `json:"object"`
			Data   []entry `json:"data"`
			Model  string  `json:"model"`
		}{Object: "list", Model: req.Model}

		for i := range req.Input {
			resp.Data = append(resp.Data, entry{Object: "embedding", Index: i, Embedding: vector})
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func TestOpenAIEmbedder_EmbedDocument(t *testing.T) {
	want := []float32{0.1, 0.2, 0.3}
	srv := httptest.NewServer(embeddingsHandler(t, want))
	defer srv.Close()

	e, err := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL + "/v1",
		Dimension: 3,
	})
	require.NoError(t, err)

	vec, err := e.EmbedDocument(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, want, vec)
}

func TestOpenAIEmbedder_EmbedDocuments(t *testing.T) {
	want := []float32{0.5, 0.5}
	srv := httptest.NewServer(embeddingsHandler(t, want))
	defer srv.Close()

	e, err := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL + "/v1",
		Dimension: 2,
	})
	require.NoError(t, err)

	vectors, err := e.EmbedDocuments(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for _, vec := range vectors {
		assert.Equal(t, want, vec)
	}

	empty, err := e.EmbedDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOpenAIEmbedder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e, err := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
	})
	require.NoError(t, err)

	_, err = e.EmbedDocument(context.Background(), "hello")
	assert.Error(t, err)
}
