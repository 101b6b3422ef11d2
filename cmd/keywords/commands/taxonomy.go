// ABOUTME: CLI command to list the taxonomy keywords
// ABOUTME: Shows each allowed keyword with its breadcrumb path
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
)

// NewTaxonomyCmd creates the taxonomy command.
func NewTaxonomyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "List the allowed taxonomy keywords",
		Long: `List every keyword the matcher can return, with its path.

Reads the built index when present, otherwise the embedded taxonomy.

Examples:
  keywords taxonomy
  keywords taxonomy --format json`,
		RunE: runTaxonomy,
	}
	return cmd
}

func runTaxonomy(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Listing never needs embeddings; fall back to the embedded taxonomy
	// even when a credential is configured but the index is not built yet.
	cache := index.NewCache(cfg.IndexPath, false)
	idx, err := cache.Get()
	if err != nil {
		return fmt.Errorf("loading keyword index: %w", err)
	}

	if outputFormat == "json" {
		type entry struct {
			Keyword string   `json:"keyword"`
			Path    []string `json:"path"`
		}
		entries := make([]entry, len(idx.Keywords))
		for i, e := range idx.Keywords {
			entries[i] = entry{Keyword: e.Keyword, Path: e.Path}
		}
		jsonData, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KEYWORD\tPATH\n")
	for _, e := range idx.Keywords {
		fmt.Fprintf(w, "%s\t%s\n", truncate(e.Keyword, 40), strings.Join(e.Path, " > "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d keywords\n", len(idx.Keywords))
	}
	return nil
}
