package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "timer",
		Aliases: []string{"tui"},
		Short:   "Open the interactive timer",
		Long: `Open the full-screen timer. Space starts and stops a contraction;
the rest of the history can be added to, edited, and deleted from here.

A contraction in progress lives only in this session and is discarded on
exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

// runTUI runs the bubbletea program until the user quits. Elapsed ticks
// from the tracker are forwarded to the program as messages.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())

	app.Tracker.OnTick(func(elapsed time.Duration) {
		p.Send(elapsedMsg{elapsed: elapsed})
	})
	defer app.Tracker.OnTick(nil)

	_, err := p.Run()
	return err
}
