package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/alexanderramin/contrack/internal/stats"
)

// FormatHistory renders the history table, most recent first. Row numbers
// count down so the oldest event is #1.
func FormatHistory(events []*domain.Event, now time.Time) string {
	if len(events) == 0 {
		return Dim("No contractions recorded yet. Start tracking your first one!") + "\n"
	}

	headers := []string{"#", "ID", "START", "END", "DURATION", "WHEN"}
	rows := make([][]string, 0, len(events))
	for i, e := range events {
		duration := FormatDuration(e.DurationSeconds)
		if e.DurationSeconds == nil {
			duration = StyleYellow.Render(duration)
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(len(events) - i)),
			TruncID(e.ID),
			FormatInstant(&e.StartTime),
			FormatInstant(e.EndTime),
			duration,
			Dim(HumanTimestamp(e.StartTime, now)),
		})
	}
	title := fmt.Sprintf("Contraction History (%d)", len(events))
	return Header(title) + "\n" + RenderTable(headers, rows, 0, 4)
}

// FormatEvent renders a one-line confirmation for a single event.
func FormatEvent(verb string, e *domain.Event) string {
	if e == nil {
		return ""
	}
	parts := []string{
		StyleGreen.Render(verb),
		Bold(ShortID(e.ID)),
		Dim("start") + " " + FormatInstant(&e.StartTime),
	}
	if e.EndTime != nil {
		parts = append(parts, Dim("end")+" "+FormatInstant(e.EndTime))
	}
	parts = append(parts, Dim("duration")+" "+FormatDuration(e.DurationSeconds))
	return strings.Join(parts, "  ") + "\n"
}

// FormatSummary renders the four summary cards as labelled rows.
func FormatSummary(s domain.Summary) string {
	interval := "N/A"
	if s.AverageIntervalSeconds > 0 {
		interval = FormatSeconds(s.AverageIntervalSeconds)
	}
	last := Dim("none yet")
	if s.MostRecentCompleted != nil {
		last = FormatInstant(&s.MostRecentCompleted.StartTime) + Dim(" for ") + FormatDuration(s.MostRecentCompleted.DurationSeconds)
	}

	rows := [][2]string{
		{"Total", strconv.Itoa(s.TotalCount)},
		{"Avg duration", FormatSeconds(s.AverageDurationSeconds)},
		{"Avg interval", interval},
		{"Last", last},
		{"Progress", ProgressBadge(s.Progress())},
	}
	var b strings.Builder
	for i, r := range rows {
		b.WriteString(Dim(fmt.Sprintf("%-14s", r[0])) + " " + r[1])
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return RenderBox("Summary", b.String())
}

// FormatSummaryLine is the compact one-line form of the summary.
func FormatSummaryLine(s domain.Summary) string {
	interval := "N/A"
	if s.AverageIntervalSeconds > 0 {
		interval = FormatSeconds(s.AverageIntervalSeconds)
	}
	return fmt.Sprintf("%s %d   %s %s   %s %s",
		Dim("total"), s.TotalCount,
		Dim("avg duration"), FormatSeconds(s.AverageDurationSeconds),
		Dim("avg interval"), interval)
}

// FormatTimer renders the stopwatch panel.
func FormatTimer(state domain.TrackingState, elapsed time.Duration) string {
	clock := StyleBold.Render(FormatClock(elapsed))
	status := StateIndicator(state)
	hint := Dim("press space to start")
	if state == domain.TrackingActive {
		clock = StyleRed.Bold(true).Render(FormatClock(elapsed))
		hint = StyleYellow.Render("Contraction in progress...")
	}
	return RenderBox("Contraction Timer", clock+"   "+status+"\n"+hint)
}

// trendBarWidth is the maximum bar length in the trend chart.
const trendBarWidth = 30

// FormatTrend renders duration and interval bars for the recent window,
// oldest first.
func FormatTrend(t stats.Trend) string {
	if len(t.Durations) == 0 {
		return Dim("No completed contractions to chart.") + "\n"
	}

	var maxDur float64
	for _, p := range t.Durations {
		if float64(p.DurationSeconds) > maxDur {
			maxDur = float64(p.DurationSeconds)
		}
	}
	var maxInt float64
	for _, p := range t.Intervals {
		if p.IntervalMinutes > maxInt {
			maxInt = p.IntervalMinutes
		}
	}

	var b strings.Builder
	b.WriteString(Header("Duration") + "\n")
	for _, p := range t.Durations {
		b.WriteString(fmt.Sprintf("%3d %s  %s %s\n",
			p.Index, Dim(p.StartTime.Local().Format("15:04")),
			RenderBar(float64(p.DurationSeconds), maxDur, trendBarWidth, BarDuration),
			strconv.Itoa(p.DurationSeconds)+"s"))
	}
	if len(t.Intervals) > 0 {
		b.WriteString("\n" + Header("Interval") + "\n")
		for _, p := range t.Intervals {
			b.WriteString(fmt.Sprintf("%3d %s  %s %s\n",
				p.Index, Dim(p.StartTime.Local().Format("15:04")),
				RenderBar(p.IntervalMinutes, maxInt, trendBarWidth, BarInterval),
				strconv.FormatFloat(p.IntervalMinutes, 'f', 1, 64)+" min"))
		}
	}
	return b.String()
}
