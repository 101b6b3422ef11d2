// ABOUTME: Tests for the keyword index cache
// ABOUTME: Covers first-load-wins, reload, degraded synthesis and fatal errors
package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/taxonomy"
)

func stubSource() ([]taxonomy.Entry, error) {
	return []taxonomy.Entry{
		{Keyword: "fitness", Path: []string{"Health", "Fitness"}},
		{Keyword: "yoga", Path: []string{"Health", "Yoga"}},
	}, nil
}

func TestCache_GetLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyword_index.json")
	if err := Save(path, sampleIndex()); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	cache := NewCache(path, true)

	first, err := cache.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	second, err := cache.Get()
	if err != nil {
		t.Fatalf("second Get error: %v", err)
	}
	if first != second {
		t.Error("Get should return the same cached object until Reload")
	}
}

func TestCache_FailedLoadNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyword_index.json")
	cache := NewCache(path, true)

	if _, err := cache.Get(); err == nil {
		t.Fatal("expected error for a missing index with a credential configured")
	}

	// The file appears; the next Get retries and succeeds.
	if err := Save(path, sampleIndex()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := cache.Get(); err != nil {
		t.Fatalf("Get after index appeared: %v", err)
	}
}

func TestCache_MissingIndexWithCredential(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "nope.json"), true)

	_, err := cache.Get()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "keywords build") {
		t.Errorf("error %q should direct the user to the build command", err)
	}
}

func TestCache_DegradedSynthesis(t *testing.T) {
	cache := NewCacheWithSource(filepath.Join(t.TempDir(), "nope.json"), false, stubSource)

	idx, err := cache.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(idx.Keywords) != 2 {
		t.Fatalf("got %d keywords, want 2 from the taxonomy source", len(idx.Keywords))
	}
	if idx.HasEmbeddings() {
		t.Error("synthesized index must not report embeddings")
	}
}

func TestCache_EmbeddinglessIndexWithCredential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyword_index.json")
	entries, _ := stubSource()
	if err := Save(path, BuildDegraded(entries)); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	cache := NewCache(path, true)

	_, err := cache.Get()
	if err == nil {
		t.Fatal("expected error for an embeddingless index with a credential configured")
	}
	if !strings.Contains(err.Error(), "no embeddings") {
		t.Errorf("error %q should name the missing embeddings", err)
	}
}

func TestCache_EmbeddinglessIndexWithoutCredential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyword_index.json")
	entries, _ := stubSource()
	if err := Save(path, BuildDegraded(entries)); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	cache := NewCache(path, false)

	if _, err := cache.Get(); err != nil {
		t.Fatalf("Get error: %v", err)
	}
}

func TestCache_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyword_index.json")
	if err := Save(path, sampleIndex()); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	cache := NewCache(path, true)
	before, err := cache.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	updated := sampleIndex()
	updated.Keywords = updated.Keywords[:1]
	if err := Save(path, updated); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := cache.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	after, err := cache.Get()
	if err != nil {
		t.Fatalf("Get after Reload: %v", err)
	}
	if after == before {
		t.Error("Reload should replace the cached object")
	}
	if len(after.Keywords) != 1 {
		t.Errorf("reloaded index has %d keywords, want 1", len(after.Keywords))
	}
}

func TestCache_ReloadFailureKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keyword_index.json")
	if err := Save(path, sampleIndex()); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	cache := NewCache(path, true)
	before, err := cache.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	// Corrupt the file; Reload must fail and leave the cache intact.
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("corrupting index: %v", err)
	}
	if err := cache.Reload(); err == nil {
		t.Fatal("expected Reload to fail on a corrupt index")
	}

	after, err := cache.Get()
	if err != nil {
		t.Fatalf("Get after failed Reload: %v", err)
	}
	if after != before {
		t.Error("failed Reload must not replace the cached index")
	}
}
