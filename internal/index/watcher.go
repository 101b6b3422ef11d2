// ABOUTME: File watcher that hot-reloads the index cache after offline rebuilds
// ABOUTME: Watches the index file's directory and swaps the cache on change
package index

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Cache whenever the index file is rewritten by an
// external build. The store writes via temp file + rename, so a single
// Create/Write event marks a complete index.
type Watcher struct {
	watcher *fsnotify.Watcher
	cache   *Cache
	path    string
}

// Watch starts watching the cache's index file until ctx is cancelled.
func Watch(ctx context.Context, path string, cache *Cache) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: rename-based replacement swaps
	// the inode out from under a file-level watch.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{watcher: fw, cache: cache, path: path}
	go w.run(ctx)
	return w, nil
}

func (w *Watcher) run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.cache.Reload(); err != nil {
				log.Printf("Warning: keyword index reload failed: %v", err)
				continue
			}
			log.Printf("Keyword index reloaded from %s", w.path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: index watcher error: %v", err)
		}
	}
}
