// ABOUTME: CLI command to display recorded provider usage
// ABOUTME: Shows call and token counters for billing display, with reset
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/usage"
)

// NewUsageCmd creates the usage command.
func NewUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show provider usage counters",
		Long: `Show recorded generation-provider usage: calls, failures and
token counts per provider/model, aggregated across runs.

Examples:
  keywords usage
  keywords usage --format json`,
		RunE: runUsage,
	}

	cmd.AddCommand(newUsageResetCmd())
	return cmd
}

func runUsage(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := usage.OpenBoltStore(cfg.UsageDBPath)
	if err != nil {
		return fmt.Errorf("opening usage database: %w", err)
	}
	defer store.Close()

	snapshot := store.Snapshot()

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if snapshot.TotalCalls == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No usage recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PROVIDER/MODEL\tCALLS\tFAILURES\tPROMPT TOK\tCOMPLETION TOK\n")

	keys := make([]string, 0, len(snapshot.ByProvider))
	for k := range snapshot.ByProvider {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pu := snapshot.ByProvider[k]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", k, pu.Calls, pu.Failures, pu.PromptTokens, pu.CompletionTokens)
	}
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t%d\t%d\n",
		snapshot.TotalCalls, snapshot.TotalFailures, snapshot.TotalPromptTokens, snapshot.TotalCompletionTokens)
	return w.Flush()
}

func newUsageResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset usage counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			store, err := usage.OpenBoltStore(cfg.UsageDBPath)
			if err != nil {
				return fmt.Errorf("opening usage database: %w", err)
			}
			defer store.Close()

			if err := store.Reset(); err != nil {
				return fmt.Errorf("resetting usage counters: %w", err)
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Usage counters reset.")
			}
			return nil
		},
	}
}
