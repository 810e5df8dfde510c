package cli

import (
	"time"

	"github.com/alexanderramin/contrack/internal/config"
	"github.com/alexanderramin/contrack/internal/service"
	"github.com/spf13/cobra"
)

// App holds everything CLI commands and the TUI need.
type App struct {
	Tracker service.EventTracker
	Config  config.Config

	// Now anchors relative and time-of-day flag values. Defaults to time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. A bare invocation
	// opens the TUI only when this returns true.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "contrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "contrack",
		Short:         "Contraction timer and history tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newTimerCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newListCmd(app),
		newSummaryCmd(app),
		newClearCmd(app),
	)

	return root
}
