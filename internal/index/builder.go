// ABOUTME: Offline index construction from a taxonomy source
// ABOUTME: Batch-embeds keywords and records provider/model/dimension metadata
package index

import (
	"context"
	"fmt"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/llm"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/taxonomy"
)

// embedBatchSize keeps requests under provider input limits.
const embedBatchSize = 100

// Build embeds every taxonomy keyword and assembles the index, annotated
// with the provider, model and dimension it was built with. Entry order
// follows the taxonomy source.
func Build(ctx context.Context, entries []taxonomy.Entry, embedder llm.Embedder) (*models.KeywordIndex, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("taxonomy has no entries")
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Keyword
	}

	vectors := make([][]float64, 0, len(entries))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding keywords %d-%d: %w", start, end-1, err)
		}
		vectors = append(vectors, batch...)
	}

	dimensions := len(vectors[0])
	keywords := make([]models.KeywordEntry, len(entries))
	for i, e := range entries {
		if len(vectors[i]) != dimensions {
			return nil, fmt.Errorf("embedding for %q has %d dimensions, expected %d", e.Keyword, len(vectors[i]), dimensions)
		}
		keywords[i] = models.KeywordEntry{
			Keyword:   e.Keyword,
			Path:      e.Path,
			Embedding: vectors[i],
		}
	}

	return &models.KeywordIndex{
		Keywords:            keywords,
		EmbeddingProvider:   string(embedder.Provider()),
		EmbeddingModel:      embedder.EmbeddingModel(),
		EmbeddingDimensions: dimensions,
	}, nil
}

// BuildDegraded assembles an index with empty embeddings from the
// taxonomy source alone. Similarity search is unavailable against it;
// only the lexical fallback can serve queries.
func BuildDegraded(entries []taxonomy.Entry) *models.KeywordIndex {
	keywords := make([]models.KeywordEntry, len(entries))
	for i, e := range entries {
		keywords[i] = models.KeywordEntry{
			Keyword:   e.Keyword,
			Path:      e.Path,
			Embedding: []float64{},
		}
	}
	return &models.KeywordIndex{Keywords: keywords}
}
