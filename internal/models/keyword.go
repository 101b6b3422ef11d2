// ABOUTME: Keyword taxonomy models for the matching index
// ABOUTME: Defines KeywordEntry, KeywordIndex and the allowed-keyword projection
package models

// KeywordEntry is one taxonomy keyword with its breadcrumb path and
// embedding vector. Entries are immutable once the index is loaded.
type KeywordEntry struct {
	Keyword   string    `json:"keyword"`
	Path      []string  `json:"path"`
	Embedding []float64 `json:"embedding"`
}

// KeywordIndex is the in-memory taxonomy index. It is built offline,
// loaded read-only, and replaced wholesale on rebuild.
type KeywordIndex struct {
	Keywords            []KeywordEntry `json:"keywords"`
	EmbeddingProvider   string         `json:"embedding_provider,omitempty"`
	EmbeddingModel      string         `json:"embedding_model,omitempty"`
	EmbeddingDimensions int            `json:"embedding_dimensions,omitempty"`
}

// HasEmbeddings reports whether at least one entry carries a non-empty
// embedding vector. An index built without an embedding credential has
// none and can only serve lexical matching.
func (idx *KeywordIndex) HasEmbeddings() bool {
	for _, e := range idx.Keywords {
		if len(e.Embedding) > 0 {
			return true
		}
	}
	return false
}

// AllowedSet projects the index onto the closed set of allowed keywords.
// Must be regenerated whenever the index is replaced.
func (idx *KeywordIndex) AllowedSet() map[string]struct{} {
	allowed := make(map[string]struct{}, len(idx.Keywords))
	for _, e := range idx.Keywords {
		allowed[e.Keyword] = struct{}{}
	}
	return allowed
}
