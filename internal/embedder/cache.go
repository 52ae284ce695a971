package embedder

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 10000

// Cache is an LRU of embeddings keyed by content hash. The interactive
// semantic mode embeds the query on every keystroke, so revisited
// queries (backspacing, retyping) resolve here instead of hitting the
// provider again.
type Cache struct {
	entries *lru.Cache[string, *Embedding]
}

// NewCache creates a cache holding up to maxLen embeddings. Non-positive
// sizes fall back to the default.
func NewCache(maxLen int) *Cache {
	if maxLen <= 0 {
		maxLen = defaultCacheSize
	}
	entries, err := lru.New[string, *Embedding](maxLen)
	if err != nil {
		entries, _ = lru.New[string, *Embedding](defaultCacheSize)
	}
	return &Cache{entries: entries}
}

// Get returns the embedding stored under hash. The vector is a copy, so
// callers cannot mutate the cached value through it.
func (c *Cache) Get(hash string) (*Embedding, bool) {
	emb, ok := c.entries.Get(hash)
	if !ok {
		return nil, false
	}

	out := *emb
	out.Vector = make([]float32, len(emb.Vector))
	copy(out.Vector, emb.Vector)
	return &out, true
}

// Set stores an embedding under hash, evicting the least recently used
// entry when full.
func (c *Cache) Set(hash string, emb *Embedding) {
	c.entries.Add(hash, emb)
}

// Size returns the number of cached embeddings.
func (c *Cache) Size() int {
	return c.entries.Len()
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.entries.Purge()
}

// hashText derives the cache key for a text.
func hashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
