package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/contrack/internal/cli/formatter"
	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// trackerView is the home screen: stopwatch, summary line, and the
// history with a movable cursor.
type trackerView struct {
	state   *SharedState
	history []*domain.Event
	summary domain.Summary
	cursor  int
}

func newTrackerView(state *SharedState) *trackerView {
	v := &trackerView{state: state}
	v.reload()
	return v
}

func (v *trackerView) ID() ViewID    { return ViewTracker }
func (v *trackerView) Title() string { return "Timer" }

func (v *trackerView) ShortHelp() []key.Binding {
	toggle := "start"
	if v.state.App.Tracker.State() == domain.TrackingActive {
		toggle = "stop"
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", toggle)),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trend")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *trackerView) Init() tea.Cmd { return nil }

// reload snapshots the tracker and keeps the cursor in range.
func (v *trackerView) reload() {
	v.history = v.state.App.Tracker.History()
	v.summary = v.state.App.Tracker.Summarize()
	if v.cursor >= len(v.history) {
		v.cursor = len(v.history) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *trackerView) selected() *domain.Event {
	if v.cursor < 0 || v.cursor >= len(v.history) {
		return nil
	}
	return v.history[v.cursor]
}

func (v *trackerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "s":
			return v, toggleTrackingCmd(v.state)
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.history)-1 {
				v.cursor++
			}
		case "a":
			return v, pushView(newAddEventView(v.state))
		case "e", "enter":
			if e := v.selected(); e != nil {
				return v, pushView(newEditEventView(v.state, e))
			}
		case "d", "x":
			if e := v.selected(); e != nil {
				return v, pushView(newDeleteEventView(v.state, e))
			}
		case "c":
			return v, pushView(newClearAllView(v.state))
		case "t":
			return v, pushView(newTrendView(v.state))
		case "r":
			v.reload()
		}
	}
	return v, nil
}

func (v *trackerView) View() string {
	var b strings.Builder
	tracker := v.state.App.Tracker

	b.WriteString(formatter.FormatTimer(tracker.State(), v.state.Elapsed))
	b.WriteString("\n")
	b.WriteString(formatter.FormatSummaryLine(v.summary))
	b.WriteString("\n\n")

	if len(v.history) == 0 {
		b.WriteString(formatter.Dim("No contractions recorded yet. Press space to start your first one."))
		return b.String()
	}

	b.WriteString(formatter.Header(fmt.Sprintf("History (%d)", len(v.history))))
	b.WriteString("\n")
	b.WriteString(v.renderRows())
	return b.String()
}

// visibleWindow returns the slice bounds of rows that fit the content area,
// keeping the cursor in view.
func (v *trackerView) visibleWindow() (int, int) {
	// Timer box, summary line, and history header take 12 lines.
	rows := v.state.ContentHeight() - 12
	if rows < 3 {
		rows = 3
	}
	if len(v.history) <= rows {
		return 0, len(v.history)
	}
	start := v.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(v.history) {
		end = len(v.history)
		start = end - rows
	}
	return start, end
}

func (v *trackerView) renderRows() string {
	now := v.state.App.now()
	from, to := v.visibleWindow()

	headers := []string{"", "#", "START", "END", "DURATION", "WHEN"}
	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		e := v.history[i]
		marker := " "
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("›")
		}
		duration := formatter.FormatDuration(e.DurationSeconds)
		if e.DurationSeconds == nil {
			duration = formatter.StyleYellow.Render(duration)
		}
		rows = append(rows, []string{
			marker,
			formatter.Dim(strconv.Itoa(len(v.history) - i)),
			formatter.FormatInstant(&e.StartTime),
			formatter.FormatInstant(e.EndTime),
			duration,
			formatter.Dim(formatter.HumanTimestamp(e.StartTime, now)),
		})
	}
	return formatter.RenderTable(headers, rows, 1, 4)
}
