// ABOUTME: Cosine similarity and top-K ranking over the keyword index
// ABOUTME: Enforces dimension-consistency invariants before any ranking
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
)

var (
	// ErrDimensionMismatch means two vectors being compared are not in
	// the same embedding space (different provider/model).
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrInconsistentIndex means the index holds embeddings of differing
	// lengths and must be rejected wholesale.
	ErrInconsistentIndex = errors.New("inconsistent keyword index")
	// ErrIndexHasNoEmbeddings means the index was built without an
	// embedding credential and cannot serve similarity queries.
	ErrIndexHasNoEmbeddings = errors.New("keyword index has no embeddings")
)

// Cosine returns the cosine similarity of two equal-length vectors.
// A zero vector is maximally dissimilar to everything, including itself:
// the result is exactly 0 rather than NaN.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	return cosine(a, b), nil
}

// cosine assumes len(a) == len(b).
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopSimilar ranks every index entry by cosine similarity to query and
// returns the top min(topN, entry count) entries, most similar first.
// Ties keep the original index order (the sort is stable), so rankings
// are reproducible across runs.
//
// The taxonomy is bounded at hundreds of entries, so this is a linear
// scan plus a full sort; no ANN structure is warranted at that scale.
func TopSimilar(query []float64, idx *models.KeywordIndex, topN int) ([]models.KeywordEntry, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("topN must be positive, got %d", topN)
	}
	if !idx.HasEmbeddings() {
		return nil, fmt.Errorf("%w: rebuild the index with an embedding credential", ErrIndexHasNoEmbeddings)
	}

	// Expected dimension: declared on the index if present, otherwise
	// inferred from the first non-empty entry. The per-entry check below
	// catches an index that disagrees with the inference.
	expected := idx.EmbeddingDimensions
	if expected <= 0 {
		for _, e := range idx.Keywords {
			if len(e.Embedding) > 0 {
				expected = len(e.Embedding)
				break
			}
		}
	}

	if len(query) != expected {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d", ErrDimensionMismatch, len(query), expected)
	}

	for _, e := range idx.Keywords {
		if len(e.Embedding) != expected {
			return nil, fmt.Errorf("%w: entry %q has %d dimensions, expected %d", ErrInconsistentIndex, e.Keyword, len(e.Embedding), expected)
		}
	}

	type scored struct {
		entry models.KeywordEntry
		score float64
	}
	ranked := make([]scored, len(idx.Keywords))
	for i, e := range idx.Keywords {
		ranked[i] = scored{entry: e, score: cosine(query, e.Embedding)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	top := make([]models.KeywordEntry, topN)
	for i := range top {
		top[i] = ranked[i].entry
	}
	return top, nil
}
