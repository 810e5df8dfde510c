package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/contrack/internal/cli/formatter"
	"github.com/alexanderramin/contrack/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// trackerChangedMsg reports a finished tracker mutation. The appModel shows
// the output and refreshes every view.
type trackerChangedMsg struct {
	output string
}

func errorOutput(err error) string {
	return formatter.StyleRed.Render("Error: ") + err.Error()
}

// changed builds the result message. A storage error after a successful
// change is appended as a warning; any other error replaces the output.
func changed(output string, err error) tea.Msg {
	switch {
	case err == nil:
	case isPersistError(err) && output != "":
		output += "\n" + errorOutput(persistError(err))
	default:
		output = errorOutput(err)
	}
	return trackerChangedMsg{output: output}
}

// toggleTrackingCmd starts or stops the active event. Tracker calls run
// inside the returned Cmd, off the event loop, so tick delivery can never
// wait on them.
func toggleTrackingCmd(state *SharedState) tea.Cmd {
	tracker := state.App.Tracker
	return func() tea.Msg {
		ctx := context.Background()
		if tracker.State() == domain.TrackingActive {
			e, err := tracker.Stop(ctx)
			if e == nil {
				return changed("", err)
			}
			return changed(fmt.Sprintf("%s %s", formatter.StyleGreen.Render("Stopped"),
				formatter.FormatDuration(e.DurationSeconds)), err)
		}
		tracker.Start(ctx)
		return changed(formatter.StyleRed.Render("Contraction started"), nil)
	}
}

// newAddEventView collects times for a manual entry.
func newAddEventView(state *SharedState) View {
	app := state.App
	values := newEventFormValues(nil, app.now())
	form := wizardEventTimes(values, app.now)

	done := func() tea.Cmd {
		return func() tea.Msg { return applyAddEvent(app, values) }
	}
	return newWizardView(state, "Add Contraction", form, done)
}

func applyAddEvent(app *App, values *eventFormValues) tea.Msg {
	start, end, err := values.times(app.now())
	if err != nil {
		return changed("", err)
	}
	e, err := app.Tracker.Add(context.Background(), start, end)
	if e == nil {
		return changed("", err)
	}
	return changed(formatter.FormatEvent("Added", e), err)
}

// newEditEventView edits the times of e in place.
func newEditEventView(state *SharedState, e *domain.Event) View {
	app := state.App
	values := newEventFormValues(e, app.now())
	form := wizardEventTimes(values, app.now)
	id := e.ID

	done := func() tea.Cmd {
		return func() tea.Msg { return applyEditEvent(app, id, values) }
	}
	return newWizardView(state, "Edit Contraction", form, done)
}

func applyEditEvent(app *App, id string, values *eventFormValues) tea.Msg {
	start, end, err := values.times(app.now())
	if err != nil {
		return changed("", err)
	}
	updated, err := app.Tracker.Edit(context.Background(), id, start, end)
	if updated == nil {
		return changed("", err)
	}
	return changed(formatter.FormatEvent("Updated", updated), err)
}

// newDeleteEventView asks before deleting e.
func newDeleteEventView(state *SharedState, e *domain.Event) View {
	confirmed := false
	prompt := fmt.Sprintf("Delete contraction started %s?", formatter.FormatInstant(&e.StartTime))
	form := wizardConfirm(prompt, &confirmed)
	app := state.App
	id := e.ID

	done := func() tea.Cmd {
		return func() tea.Msg { return applyDeleteEvent(app, id, confirmed) }
	}
	return newWizardView(state, "Delete Contraction", form, done)
}

func applyDeleteEvent(app *App, id string, confirmed bool) tea.Msg {
	if !confirmed {
		return cmdOutputMsg{output: formatter.Dim("Cancelled.")}
	}
	err := app.Tracker.Delete(context.Background(), id)
	if err != nil && !isPersistError(err) {
		return changed("", err)
	}
	return changed(formatter.StyleGreen.Render("Deleted ")+formatter.ShortID(id), err)
}

// newClearAllView asks before wiping the history and any active event.
func newClearAllView(state *SharedState) View {
	confirmed := false
	form := wizardConfirm("Clear all contraction history?", &confirmed)
	app := state.App

	done := func() tea.Cmd {
		return func() tea.Msg { return applyClearAll(app, confirmed) }
	}
	return newWizardView(state, "Clear History", form, done)
}

func applyClearAll(app *App, confirmed bool) tea.Msg {
	if !confirmed {
		return cmdOutputMsg{output: formatter.Dim("Cancelled.")}
	}
	err := app.Tracker.ClearAll(context.Background())
	return changed(formatter.StyleGreen.Render("History cleared"), err)
}
