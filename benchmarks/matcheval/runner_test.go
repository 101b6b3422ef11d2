// ABOUTME: Tests for the matching-quality benchmark suite
// ABOUTME: Runs the built-in scenarios and checks aggregate score floors
package matcheval

import (
	"context"
	"testing"
)

func TestScorer(t *testing.T) {
	s := NewScorer()

	recall, _ := s.Recall([]string{"a", "b", "x"}, []string{"a", "b", "c"})
	if got := recall; got < 0.66 || got > 0.67 {
		t.Errorf("Recall = %v, want 2/3", got)
	}

	precision, _ := s.Precision([]string{"a", "b", "x"}, []string{"a", "b", "c"})
	if got := precision; got < 0.66 || got > 0.67 {
		t.Errorf("Precision = %v, want 2/3", got)
	}

	if hits := s.ForbiddenHits([]string{"a", "b"}, []string{"b", "z"}); len(hits) != 1 || hits[0] != "b" {
		t.Errorf("ForbiddenHits = %v, want [b]", hits)
	}

	if recall, _ := s.Recall([]string{"a"}, nil); recall != 1.0 {
		t.Errorf("Recall with no expectations = %v, want 1.0", recall)
	}
	if precision, _ := s.Precision(nil, []string{"a"}); precision != 0.0 {
		t.Errorf("Precision with no returns = %v, want 0.0", precision)
	}
}

func TestDefaultScenarios(t *testing.T) {
	runner := NewRunner(t.TempDir(), testing.Verbose())

	report, err := runner.RunAll(context.Background(), DefaultScenarios())
	if err != nil {
		t.Fatalf("RunAll error: %v", err)
	}

	for _, result := range report.Results {
		if !result.Passed {
			t.Errorf("scenario %s failed: recall %.2f (%s), forbidden %v, returned %v",
				result.ID, result.Recall, result.RecallDetail, result.ForbiddenHits, result.Keywords)
		}
	}
	if !report.AllPassed {
		t.Error("expected every scenario to pass")
	}
	if report.AvgRecall != 1.0 {
		t.Errorf("AvgRecall = %.2f, want 1.0", report.AvgRecall)
	}
	if report.AvgPrecision < 0.7 {
		t.Errorf("AvgPrecision = %.2f, want at least 0.7", report.AvgPrecision)
	}
}
