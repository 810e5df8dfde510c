package cli

import (
	"fmt"

	"github.com/alexanderramin/contrack/internal/cli/formatter"
	"github.com/alexanderramin/contrack/internal/repository"
	"github.com/alexanderramin/contrack/internal/stats"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the contraction history, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history := app.Tracker.History()
			if asJSON {
				raw, err := repository.EncodeHistory(history)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), raw)
				return nil
			}

			shown := history
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			out := formatter.FormatHistory(shown, app.now())
			if len(shown) < len(history) {
				out += formatter.Dim(fmt.Sprintf("… %d older not shown", len(history)-len(shown))) + "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most N entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored JSON form")

	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	var trend bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show count, average duration, and average interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSummary(app.Tracker.Summarize()))
			if trend {
				window := app.Config.ChartWindow
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatTrend(stats.Series(app.Tracker.History(), window)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trend, "trend", false, "Also chart the most recent contractions")

	return cmd
}
