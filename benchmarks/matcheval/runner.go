// ABOUTME: Benchmark runner for keyword matching quality scenarios
// ABOUTME: Runs the matcher in lexical mode over the embedded taxonomy and scores results
package matcheval

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/matcher"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/taxonomy"
)

// Result holds the scores for one executed scenario.
type Result struct {
	ID            string
	Name          string
	Keywords      []string
	Recall        float64
	RecallDetail  string
	Precision     float64
	PrecDetail    string
	ForbiddenHits []string
	Passed        bool
}

// Report aggregates the results of a benchmark run.
type Report struct {
	Results      []Result
	AvgRecall    float64
	AvgPrecision float64
	AllPassed    bool
}

// Runner executes benchmark scenarios against a lexical-mode matcher so
// runs are deterministic and credential-free.
type Runner struct {
	matcher *matcher.Matcher
	scorer  *Scorer
	verbose bool
}

// NewRunner creates a benchmark runner over the embedded taxonomy.
// workDir holds the (never created) index path; pass a temp directory.
func NewRunner(workDir string, verbose bool) *Runner {
	cfg := &config.Config{
		ShortlistSize:  30,
		MinKeywords:    1,
		MaxKeywords:    10,
		DirectCountMin: 1,
		DirectCountMax: 50,
		Timeout:        10 * time.Second,
	}
	cache := index.NewCacheWithSource(filepath.Join(workDir, "keyword_index.json"), false, taxonomy.Default)

	return &Runner{
		matcher: matcher.NewWithClients(cfg, cache, nil, nil, nil),
		scorer:  NewScorer(),
		verbose: verbose,
	}
}

// RunScenario executes one scenario and scores the outcome. A scenario
// passes when every expected keyword is returned and no forbidden one is.
func (r *Runner) RunScenario(ctx context.Context, s Scenario) (Result, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", s.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", s.Description)
	}

	match, err := r.matcher.Match(ctx, models.MatchRequest{Description: s.Description, Count: s.Count})
	if err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", s.ID, err)
	}

	recall, recallDetail := r.scorer.Recall(match.Keywords, s.Expected)
	precision, precDetail := r.scorer.Precision(match.Keywords, s.Expected)
	hits := r.scorer.ForbiddenHits(match.Keywords, s.Forbidden)

	result := Result{
		ID:            s.ID,
		Name:          s.Name,
		Keywords:      match.Keywords,
		Recall:        recall,
		RecallDetail:  recallDetail,
		Precision:     precision,
		PrecDetail:    precDetail,
		ForbiddenHits: hits,
		Passed:        recall == 1.0 && len(hits) == 0,
	}

	if r.verbose {
		fmt.Printf("Returned: %v\n", result.Keywords)
		fmt.Printf("Recall:    %.2f (%s)\n", result.Recall, result.RecallDetail)
		fmt.Printf("Precision: %.2f (%s)\n", result.Precision, result.PrecDetail)
		if len(hits) > 0 {
			fmt.Printf("FORBIDDEN: %v\n", hits)
		}
		fmt.Printf("Passed: %v\n", result.Passed)
	}
	return result, nil
}

// RunAll executes every scenario and aggregates a report.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) (*Report, error) {
	report := &Report{AllPassed: true}

	var recallSum, precisionSum float64
	for _, s := range scenarios {
		result, err := r.RunScenario(ctx, s)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, result)
		recallSum += result.Recall
		precisionSum += result.Precision
		if !result.Passed {
			report.AllPassed = false
		}
	}

	if n := len(report.Results); n > 0 {
		report.AvgRecall = recallSum / float64(n)
		report.AvgPrecision = precisionSum / float64(n)
	}

	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("SUMMARY: %d scenarios, avg recall %.2f, avg precision %.2f, all passed: %v\n",
			len(report.Results), report.AvgRecall, report.AvgPrecision, report.AllPassed)
	}
	return report, nil
}
