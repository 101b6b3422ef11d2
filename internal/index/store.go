// ABOUTME: Flat-file persistence for the keyword index
// ABOUTME: Loads and saves the serialized index with atomic writes
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
)

// Load reads a persisted keyword index from path.
func Load(path string) (*models.KeywordIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var idx models.KeywordIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing keyword index %s: %w", path, err)
	}
	if len(idx.Keywords) == 0 {
		return nil, fmt.Errorf("keyword index %s contains no keywords", path)
	}
	for i, e := range idx.Keywords {
		if e.Keyword == "" {
			return nil, fmt.Errorf("keyword index %s: entry %d has an empty keyword", path, i)
		}
	}
	return &idx, nil
}

// Save writes the index to path via a temp file and rename, so a reader
// (or the file watcher) never observes a partially written index.
func Save(path string, idx *models.KeywordIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding keyword index: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".keyword_index-*.json")
	if err != nil {
		return fmt.Errorf("creating temp index file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing keyword index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp index file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing keyword index: %w", err)
	}
	return nil
}
