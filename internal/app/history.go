package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently finished books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := client.FetchReadingHistory(cmd.Context(), limit, offset)
			if len(entries) == 0 {
				warn("No finished books found.")
				return nil
			}

			for _, e := range entries {
				line := fmt.Sprintf("  %s  %s — %s",
					e.FinishedAt.Format("2006-01-02"), e.Title, e.Author)
				if e.Rating > 0 {
					line += color.YellowString("  ★ %.1f", e.Rating)
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of entries to skip")
	return cmd
}
