package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/contrack/internal/cli/formatter"
	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	start := newTimeValue(app.now)
	end := newTimeValue(app.now)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a contraction after the fact",
		Long: `Record a contraction with explicit times. Omit --end to record an
open-ended entry.

Times accept "2006-01-02 15:04[:05]", RFC3339, a time of day such as
"14:05", "now", or a negative offset such as "-10m".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Tracker.Add(context.Background(), start.t, end.ptr())
			if e == nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvent("Added", e))
			return persistError(err)
		},
	}

	cmd.Flags().Var(start, "start", "Start time")
	cmd.Flags().Var(end, "end", "End time (omit for an open-ended entry)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	start := newTimeValue(app.now)
	end := newTimeValue(app.now)
	var open bool

	cmd := &cobra.Command{
		Use:   "edit <id|#>",
		Short: "Change the times of a recorded contraction",
		Long: `Change the times of a recorded contraction. Flags that are not given
keep their current value; --open clears the end time.

The history keeps its order after an edit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if open && end.set {
				return fmt.Errorf("--open and --end are mutually exclusive")
			}
			current, err := resolveEvent(app.Tracker.History(), args[0])
			if err != nil {
				return err
			}

			newStart := current.StartTime
			if start.set {
				newStart = start.t
			}
			newEnd := current.EndTime
			switch {
			case open:
				newEnd = nil
			case end.set:
				newEnd = end.ptr()
			}

			e, err := app.Tracker.Edit(context.Background(), current.ID, newStart, newEnd)
			if e == nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvent("Updated", e))
			return persistError(err)
		},
	}

	cmd.Flags().Var(start, "start", "New start time")
	cmd.Flags().Var(end, "end", "New end time")
	cmd.Flags().BoolVar(&open, "open", false, "Clear the end time")

	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|#>",
		Aliases: []string{"delete"},
		Short:   "Delete one recorded contraction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEvent(app.Tracker.History(), args[0])
			if err != nil {
				return err
			}
			err = app.Tracker.Delete(context.Background(), e.ID)
			if err != nil && !isPersistError(err) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("Deleted"), formatter.Bold(formatter.ShortID(e.ID)))
			return persistError(err)
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the entire history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to clear history without --yes")
				}
				confirmed := false
				if err := wizardConfirm("Clear all contraction history?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			n := len(app.Tracker.History())
			if err := app.Tracker.ClearAll(context.Background()); err != nil {
				return persistError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d contractions\n", formatter.StyleGreen.Render("Cleared"), n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

// persistError marks a storage failure that happened after the tracker had
// already applied the change in memory.
func persistError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("change applied but not saved: %w", err)
}

// isPersistError reports whether err came from storage rather than from
// validation or lookup.
func isPersistError(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrValidation)
}
