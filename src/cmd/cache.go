package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached response",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := responseCache.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s cache\n", cacheConfig().Backend)
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := responseCache.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read cache stats: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Backend:\t%s\n", stats.Backend)
		if stats.Backend == "file" {
			fmt.Fprintf(w, "Directory:\t%s\n", cacheConfig().Dir)
		}
		fmt.Fprintf(w, "Entries:\t%d\n", stats.Keys)
		fmt.Fprintf(w, "Size:\t%s\n", formatBytes(stats.Bytes))
		return w.Flush()
	},
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}
