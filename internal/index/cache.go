// ABOUTME: Process-lifetime cache for the keyword index
// ABOUTME: First successful load wins; Reload swaps the whole object atomically
package index

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/taxonomy"
)

// Cache is the acquire-or-build accessor for the keyword index. Get is
// safe for concurrent first calls: population happens under a mutex with
// a double-check, and readers go through an atomic pointer, so a racing
// caller either sees nil and waits for the lock or sees a fully built
// index. Reload follows replace-whole-object semantics.
type Cache struct {
	path                string
	embeddingConfigured bool
	source              func() ([]taxonomy.Entry, error)

	mu      sync.Mutex
	current atomic.Pointer[models.KeywordIndex]
}

// NewCache creates a cache over the index file at path.
// embeddingConfigured declares the caller's intent to use embeddings;
// it decides between degraded synthesis and a hard error when the
// persisted index is missing or has no vectors.
func NewCache(path string, embeddingConfigured bool) *Cache {
	return &Cache{
		path:                path,
		embeddingConfigured: embeddingConfigured,
		source:              taxonomy.Default,
	}
}

// NewCacheWithSource overrides the taxonomy source used for degraded
// synthesis. Used by tests and custom-taxonomy deployments.
func NewCacheWithSource(path string, embeddingConfigured bool, source func() ([]taxonomy.Entry, error)) *Cache {
	return &Cache{path: path, embeddingConfigured: embeddingConfigured, source: source}
}

// Get returns the cached index, loading it on first call. A failed load
// is not cached; the next caller retries.
func (c *Cache) Get() (*models.KeywordIndex, error) {
	if idx := c.current.Load(); idx != nil {
		return idx, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.current.Load(); idx != nil {
		return idx, nil
	}

	idx, err := c.load()
	if err != nil {
		return nil, err
	}
	c.current.Store(idx)
	return idx, nil
}

// Reload re-reads the index file and replaces the cached object. Called
// after an offline rebuild (directly or via the file watcher).
func (c *Cache) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, err := c.load()
	if err != nil {
		return err
	}
	c.current.Store(idx)
	return nil
}

func (c *Cache) load() (*models.KeywordIndex, error) {
	idx, err := Load(c.path)
	switch {
	case err == nil:
		// Loaded. An index without embeddings is only acceptable when no
		// embedding credential is configured; otherwise the caller's
		// intent to use embeddings cannot be honored.
		if c.embeddingConfigured && !idx.HasEmbeddings() {
			return nil, fmt.Errorf("keyword index %s has no embeddings but an embedding credential is configured; rebuild it with `keywords build`", c.path)
		}
		return idx, nil

	case os.IsNotExist(err):
		if c.embeddingConfigured {
			return nil, fmt.Errorf("keyword index not found at %s; build it with `keywords build`", c.path)
		}
		// No index and no credential: synthesize a lexical-only index
		// straight from the taxonomy source.
		entries, srcErr := c.source()
		if srcErr != nil {
			return nil, fmt.Errorf("loading taxonomy for degraded index: %w", srcErr)
		}
		return BuildDegraded(entries), nil

	default:
		return nil, fmt.Errorf("loading keyword index: %w", err)
	}
}
