// ABOUTME: Tests for the index file watcher
// ABOUTME: Verifies hot reload on rebuild and shutdown on context cancel
package index

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_ReloadsOnRebuild(t *testing.T) {
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := Watch(ctx, path, cache); err != nil {
		t.Fatalf("Watch error: %v", err)
	}

	updated := sampleIndex()
	updated.Keywords = updated.Keywords[:1]
	if err := Save(path, updated); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		after, err := cache.Get()
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if after != before && len(after.Keywords) == 1 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("cache was not reloaded after the index file changed")
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := Watch(ctx, path, cache); err != nil {
		t.Fatalf("Watch error: %v", err)
	}

	if err := Save(filepath.Join(dir, "other.json"), sampleIndex()); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	after, err := cache.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if after != before {
		t.Error("a change to an unrelated file must not trigger a reload")
	}
}
