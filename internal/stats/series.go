package stats

import (
	"math"
	"time"

	"github.com/alexanderramin/contrack/internal/domain"
)

// DurationPoint is one bar of the duration trend.
type DurationPoint struct {
	Index           int
	StartTime       time.Time
	DurationSeconds int
}

// IntervalPoint is the gap, in minutes rounded to one decimal, between an
// event and the one before it.
type IntervalPoint struct {
	Index           int
	StartTime       time.Time
	IntervalMinutes float64
}

// Trend is the chart-ready view of the most recent completed events,
// oldest first.
type Trend struct {
	Durations []DurationPoint
	Intervals []IntervalPoint
}

// Series takes the window most recent completed events and lays them out
// chronologically. Indices are 1-based; interval points start at 2.
func Series(history []*domain.Event, window int) Trend {
	completed := Completed(history)
	if window > 0 && len(completed) > window {
		completed = completed[:window]
	}

	chrono := make([]*domain.Event, len(completed))
	for i, e := range completed {
		chrono[len(completed)-1-i] = e
	}

	var trend Trend
	for i, e := range chrono {
		trend.Durations = append(trend.Durations, DurationPoint{
			Index:           i + 1,
			StartTime:       e.StartTime,
			DurationSeconds: *e.DurationSeconds,
		})
		if i == 0 {
			continue
		}
		minutes := e.StartTime.Sub(chrono[i-1].StartTime).Minutes()
		trend.Intervals = append(trend.Intervals, IntervalPoint{
			Index:           i + 1,
			StartTime:       e.StartTime,
			IntervalMinutes: math.Round(minutes*10) / 10,
		})
	}
	return trend
}
