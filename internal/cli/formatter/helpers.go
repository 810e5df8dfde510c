package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	// ClockLayout is how wall-clock instants are shown in tables.
	ClockLayout = "15:04:05"
	// InputLayout is the editable form of an instant in forms.
	InputLayout = "2006-01-02 15:04:05"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatSeconds renders a duration in whole seconds as "4m 05s", "45s", or
// "1h 02m". Zero renders as "N/A", matching how averages with no data are
// shown.
func FormatSeconds(secs float64) string {
	total := int(math.Round(secs))
	if total == 0 {
		return "N/A"
	}
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	switch {
	case h > 0:
		return fmt.Sprintf("%s%dh %02dm", sign, h, m)
	case m > 0:
		return fmt.Sprintf("%s%dm %02ds", sign, m, s)
	default:
		return fmt.Sprintf("%s%ds", sign, s)
	}
}

// FormatDuration renders an optional stored duration. Nil means the event
// has no end yet.
func FormatDuration(secs *int) string {
	if secs == nil {
		return "In progress"
	}
	if *secs == 0 {
		return "0s"
	}
	return FormatSeconds(float64(*secs))
}

// FormatClock renders elapsed time as a stopwatch "MM:SS". Minutes keep
// growing past 59.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatInstant renders t in local time as HH:MM:SS, or "N/A" for nil.
func FormatInstant(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Local().Format(ClockLayout)
}

// HumanTimestamp returns a relative description such as "3 minutes ago".
func HumanTimestamp(t, now time.Time) string {
	if now.Sub(t) < time.Minute && now.Sub(t) >= 0 {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// ShortID returns the first 8 characters of an ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
