// ABOUTME: CLI command to match a description against the taxonomy
// ABOUTME: Supports direct truncation and LLM-refined matching
package commands

import (
	"encoding/json"
	"fmt"
	"log"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/matcher"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/usage"
)

var (
	matchRefine   bool
	matchCount    int
	matchProvider string
)

// NewMatchCmd creates the match command.
func NewMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <description>",
		Short: "Match a description to taxonomy keywords",
		Long: `Match a free-text description against the keyword taxonomy.

The description is embedded and ranked against the keyword index; the
shortlist is either truncated directly or refined by a generation
provider and validated against the taxonomy. Without any AI credential
the command degrades to lexical matching.

Examples:
  keywords match "a recipe blog about sourdough baking"
  keywords match --refine "B2B SaaS marketing analytics dashboard"
  keywords match --count 5 --format json "travel vlog from Patagonia"`,
		Args: cobra.ExactArgs(1),
		RunE: runMatch,
	}

	cmd.Flags().BoolVar(&matchRefine, "refine", false, "Refine the shortlist with a generation provider")
	cmd.Flags().IntVar(&matchCount, "count", 0, "Keyword count for direct matching (0 = configured default)")
	cmd.Flags().StringVar(&matchProvider, "provider", "", "Pin the generation provider (openai, groq, gemini)")

	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if matchCount != 0 {
		if err := validatePositiveInt(matchCount, "count"); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	recorder, closeRecorder := openRecorder(cfg)
	defer closeRecorder()

	cache := index.NewCache(cfg.IndexPath, cfg.EmbeddingConfigured())
	m, err := matcher.New(cfg, cache, recorder)
	if err != nil {
		return fmt.Errorf("initializing matcher: %w", err)
	}

	result, err := m.Match(cmd.Context(), models.MatchRequest{
		Description: args[0],
		Refine:      matchRefine,
		Count:       matchCount,
		Provider:    matchProvider,
	})
	if err != nil {
		return fmt.Errorf("matching: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Method: %s  Shortlist: %d  Validated: %d\n\n",
			result.Method, result.ShortlistSize, result.ValidatedCount)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tKEYWORD\n")
	for i, kw := range result.Keywords {
		fmt.Fprintf(w, "%d\t%s\n", i+1, kw)
	}
	return w.Flush()
}

// openRecorder opens the persistent usage store, falling back to an
// in-memory counter when the database is unavailable.
func openRecorder(cfg *config.Config) (usage.Recorder, func()) {
	store, err := usage.OpenBoltStore(cfg.UsageDBPath)
	if err != nil {
		if !quiet {
			log.Printf("Warning: usage database unavailable, counting in memory: %v", err)
		}
		return usage.NewCounter(), func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: closing usage database: %v", err)
		}
	}
}
