// ABOUTME: CLI command to build the keyword index offline
// ABOUTME: Embeds the taxonomy and writes the flat serialized index
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/llm"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/taxonomy"
)

var (
	buildTaxonomyPath string
	buildOutputPath   string
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the keyword index",
		Long: `Build the keyword index by embedding every taxonomy keyword.

Requires an embedding credential (OPENAI_API_KEY or GEMINI_API_KEY).
The index is written atomically; a running MCP server picks up the new
index without a restart.

Examples:
  keywords build
  keywords build --taxonomy my_taxonomy.json --out data/keyword_index.json`,
		RunE: runBuild,
	}

	cmd.Flags().StringVar(&buildTaxonomyPath, "taxonomy", "", "Taxonomy JSON file (default: embedded taxonomy)")
	cmd.Flags().StringVar(&buildOutputPath, "out", "", "Output path (default: configured index path)")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	embedder, err := llm.ResolveEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("resolving embedding provider: %w", err)
	}
	if embedder == nil {
		return fmt.Errorf("building the index requires an embedding credential; set OPENAI_API_KEY or GEMINI_API_KEY")
	}

	entries, err := loadTaxonomy(buildTaxonomyPath)
	if err != nil {
		return err
	}

	if verbose {
		log.Printf("Embedding %d keywords with %s/%s", len(entries), embedder.Provider(), embedder.EmbeddingModel())
	}

	idx, err := index.Build(cmd.Context(), entries, embedder)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	outPath := buildOutputPath
	if outPath == "" {
		outPath = cfg.IndexPath
	}
	if err := index.Save(outPath, idx); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Built index with %d keywords (%d dimensions) at %s\n",
			len(idx.Keywords), idx.EmbeddingDimensions, outPath)
	}
	return nil
}

func loadTaxonomy(path string) ([]taxonomy.Entry, error) {
	if path == "" {
		entries, err := taxonomy.Default()
		if err != nil {
			return nil, fmt.Errorf("loading embedded taxonomy: %w", err)
		}
		return entries, nil
	}
	entries, err := taxonomy.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy %s: %w", path, err)
	}
	return entries, nil
}
