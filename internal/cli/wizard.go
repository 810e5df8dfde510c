package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/contrack/internal/cli/formatter"
	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// contrackHuhTheme returns a custom huh theme using the Gruvbox palette.
func contrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// eventFormValues backs the add and edit forms.
type eventFormValues struct {
	Start      string
	IncludeEnd bool
	End        string
}

// newEventFormValues pre-fills the form from e, or from now for a new entry.
func newEventFormValues(e *domain.Event, now time.Time) *eventFormValues {
	if e == nil {
		return &eventFormValues{
			Start:      now.Local().Format(formatter.InputLayout),
			IncludeEnd: true,
		}
	}
	v := &eventFormValues{Start: e.StartTime.Local().Format(formatter.InputLayout)}
	if e.EndTime != nil {
		v.IncludeEnd = true
		v.End = e.EndTime.Local().Format(formatter.InputLayout)
	}
	return v
}

// times parses the form values. The end is nil when IncludeEnd is off.
func (v *eventFormValues) times(now time.Time) (time.Time, *time.Time, error) {
	start, err := parseTimeInput(v.Start, now)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("start: %w", err)
	}
	if !v.IncludeEnd {
		return start, nil, nil
	}
	end, err := parseTimeInput(v.End, now)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("end: %w", err)
	}
	return start, &end, nil
}

// wizardEventTimes creates the start/end form shared by add and edit.
// The end field is skipped when the user opts out of an end time.
func wizardEventTimes(v *eventFormValues, now func() time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start Time").
				Placeholder(formatter.InputLayout).
				Value(&v.Start).
				Validate(validateTimeInput(now, true)),
			huh.NewConfirm().
				Title("Include end time?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.IncludeEnd),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("End Time").
				Placeholder(formatter.InputLayout).
				Value(&v.End).
				Validate(validateTimeInput(now, true)),
		).WithHideFunc(func() bool { return !v.IncludeEnd }),
	).WithTheme(contrackHuhTheme()).WithShowHelp(false)
}

// validateTimeInput checks that s parses as an instant.
func validateTimeInput(now func() time.Time, required bool) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			if required {
				return fmt.Errorf("enter a time")
			}
			return nil
		}
		_, err := parseTimeInput(s, now())
		return err
	}
}

// wizardConfirm creates a yes/no form.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(contrackHuhTheme()).WithShowHelp(false)
}
