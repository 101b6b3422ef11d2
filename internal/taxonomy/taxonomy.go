// ABOUTME: Taxonomy source for the keyword index
// ABOUTME: Ships an embedded default taxonomy and loads external ones
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed taxonomy.json
var defaultTaxonomy []byte

// Entry is one taxonomy keyword with its breadcrumb path, root to leaf.
type Entry struct {
	Keyword string   `json:"keyword"`
	Path    []string `json:"path"`
}

// Default returns the embedded taxonomy.
func Default() ([]Entry, error) {
	return parse(defaultTaxonomy)
}

// LoadFile reads a taxonomy from a JSON file with the same shape as the
// embedded default: a flat array of {keyword, path} objects.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("taxonomy is empty")
	}

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.Keyword == "" {
			return nil, fmt.Errorf("taxonomy entry %d has an empty keyword", i)
		}
		if len(e.Path) == 0 {
			return nil, fmt.Errorf("taxonomy entry %q has an empty path", e.Keyword)
		}
		if _, dup := seen[e.Keyword]; dup {
			return nil, fmt.Errorf("duplicate taxonomy keyword %q", e.Keyword)
		}
		seen[e.Keyword] = struct{}{}
	}
	return entries, nil
}
