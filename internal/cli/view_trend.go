package cli

import (
	"github.com/alexanderramin/contrack/internal/cli/formatter"
	"github.com/alexanderramin/contrack/internal/stats"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// trendView shows the summary box and duration/interval charts in a
// scrollable viewport.
type trendView struct {
	state *SharedState
	vp    viewport.Model
}

func newTrendView(state *SharedState) *trendView {
	vp := viewport.New(state.Width, state.ContentHeight())
	vp.MouseWheelEnabled = true
	v := &trendView{state: state, vp: vp}
	v.reload()
	return v
}

func (v *trendView) ID() ViewID    { return ViewTrend }
func (v *trendView) Title() string { return "Trend" }

func (v *trendView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *trendView) Init() tea.Cmd { return nil }

func (v *trendView) reload() {
	app := v.state.App
	trend := stats.Series(app.Tracker.History(), app.Config.ChartWindow)
	content := formatter.FormatSummary(app.Tracker.Summarize()) + "\n\n" + formatter.FormatTrend(trend)
	v.vp.SetContent(content)
}

func (v *trendView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil
	case refreshViewMsg:
		v.reload()
		return v, nil
	case tea.KeyMsg:
		if msg.String() == "r" {
			v.reload()
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *trendView) View() string {
	return v.vp.View()
}
