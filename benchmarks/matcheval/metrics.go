// ABOUTME: Quality metrics for keyword matching benchmark scenarios
// ABOUTME: Deterministic precision/recall scoring against ground-truth keyword sets
package matcheval

import (
	"fmt"
	"strings"
)

// Scorer computes matching-quality scores for benchmark scenarios
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Recall computes the fraction of expected keywords present in the
// returned list (0.0-1.0), with a detail string naming what is missing.
func (s *Scorer) Recall(returned, expected []string) (float64, string) {
	if len(expected) == 0 {
		return 1.0, "no expected keywords"
	}

	returnedSet := toSet(returned)
	missing := []string{}
	for _, want := range expected {
		if _, ok := returnedSet[want]; !ok {
			missing = append(missing, want)
		}
	}

	score := float64(len(expected)-len(missing)) / float64(len(expected))
	if len(missing) > 0 {
		return score, fmt.Sprintf("missing: %s", strings.Join(missing, ", "))
	}
	return score, "all expected keywords returned"
}

// Precision computes the fraction of returned keywords that are expected
// (0.0-1.0), with a detail string naming the extras.
func (s *Scorer) Precision(returned, expected []string) (float64, string) {
	if len(returned) == 0 {
		return 0.0, "no keywords returned"
	}

	expectedSet := toSet(expected)
	extras := []string{}
	for _, got := range returned {
		if _, ok := expectedSet[got]; !ok {
			extras = append(extras, got)
		}
	}

	score := float64(len(returned)-len(extras)) / float64(len(returned))
	if len(extras) > 0 {
		return score, fmt.Sprintf("extra: %s", strings.Join(extras, ", "))
	}
	return score, "every returned keyword was expected"
}

// ForbiddenHits returns the forbidden keywords that leaked into the
// returned list. An empty result means the scenario is clean.
func (s *Scorer) ForbiddenHits(returned, forbidden []string) []string {
	returnedSet := toSet(returned)
	hits := []string{}
	for _, bad := range forbidden {
		if _, ok := returnedSet[bad]; ok {
			hits = append(hits, bad)
		}
	}
	return hits
}

func toSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	return set
}
