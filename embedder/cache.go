package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallnest/ragpipe"
	"github.com/smallnest/ragpipe/log"
)

// RedisCacheOptions configuration for the embedding cache
type RedisCacheOptions struct {
	Prefix string        // Key prefix, default "ragpipe:"
	TTL    time.Duration // Expiration for cached vectors, default 0 (no expiration)
	Logger log.Logger
}

// RedisCache wraps an Embedder with a Redis-backed vector cache keyed by
// content hash. Re-ingesting unchanged documents skips the provider
// entirely. Cache failures are never fatal: a read error falls through
// to the provider, a write error is logged and dropped.
type RedisCache struct {
	inner  ragpipe.Embedder
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger log.Logger
}

var _ ragpipe.Embedder = (*RedisCache)(nil)

// NewRedisCache creates a caching embedder on top of an existing one
func NewRedisCache(client *redis.Client, inner ragpipe.Embedder, opts RedisCacheOptions) *RedisCache {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "ragpipe:"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetDefaultLogger()
	}

	return &RedisCache{
		inner:  inner,
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
		logger: logger,
	}
}

func (c *RedisCache) vectorKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%sembedding:%x", c.prefix, sum)
}

// EmbedDocument embeds a single text, serving repeats from the cache
func (c *RedisCache) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	key := c.vectorKey(text)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var vector []float32
		if err := json.Unmarshal(data, &vector); err == nil {
			return vector, nil
		}
		c.logger.Debug("dropping malformed cached embedding for key %s", key)
	} else if err != redis.Nil {
		c.logger.Debug("embedding cache read failed, falling through: %v", err)
	}

	vector, err := c.inner.EmbedDocument(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vector); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("embedding cache write failed: %v", err)
		}
	}
	return vector, nil
}

// EmbedDocuments embeds multiple texts, caching each one individually
func (c *RedisCache) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, err := c.EmbedDocument(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

// GetDimension returns the embedding dimension of the wrapped embedder
func (c *RedisCache) GetDimension() int {
	return c.inner.GetDimension()
}
