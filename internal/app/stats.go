package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize your finished books",
		Long: `Summarize finished books: count, total pages, and average rating.

Examples:
  hardcoverctl stats               All-time totals
  hardcoverctl stats --year 2026   Totals for one calendar year`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var yearPtr *int
			if cmd.Flags().Changed("year") {
				yearPtr = &year
			}

			stats := client.FetchReadingStats(cmd.Context(), yearPtr)
			if stats == nil {
				warn("Could not fetch reading stats.")
				return nil
			}

			if yearPtr != nil {
				header("Reading stats for %d", *yearPtr)
			} else {
				header("All-time reading stats")
			}
			printField("finished", fmt.Sprintf("%d books", stats.BooksFinished))
			printField("pages", fmt.Sprintf("%d", stats.Pages))
			if stats.AverageRating > 0 {
				printField("avg rating", fmt.Sprintf("%.2f", stats.AverageRating))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Restrict to a calendar year")
	return cmd
}
