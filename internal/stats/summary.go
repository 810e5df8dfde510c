// Package stats derives read-only figures from a history snapshot.
// Nothing here mutates its input.
package stats

import (
	"sort"

	"github.com/alexanderramin/contrack/internal/domain"
)

// Summarize computes the summary over completed events in history order.
// Intervals are taken between adjacent completed events, so an open-ended
// entry between two completed ones does not break the pair. A history that
// is not sorted by start time can produce a negative average interval.
func Summarize(history []*domain.Event) domain.Summary {
	completed := Completed(history)
	if len(completed) == 0 {
		return domain.Summary{}
	}

	var totalDuration int
	for _, e := range completed {
		totalDuration += *e.DurationSeconds
	}

	var avgInterval float64
	if len(completed) > 1 {
		var totalInterval float64
		for i := 0; i < len(completed)-1; i++ {
			totalInterval += completed[i].StartTime.Sub(completed[i+1].StartTime).Seconds()
		}
		avgInterval = totalInterval / float64(len(completed)-1)
	}

	return domain.Summary{
		TotalCount:             len(completed),
		AverageDurationSeconds: float64(totalDuration) / float64(len(completed)),
		AverageIntervalSeconds: avgInterval,
		MostRecentCompleted:    completed[0].Clone(),
	}
}

// Completed returns the completed events of history, order preserved.
func Completed(history []*domain.Event) []*domain.Event {
	var out []*domain.Event
	for _, e := range history {
		if e.Completed() {
			out = append(out, e)
		}
	}
	return out
}

// SortByStartDesc orders events most recent start first. Equal start
// times keep their relative order.
func SortByStartDesc(events []*domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.After(events[j].StartTime)
	})
}

// IsSortedByStartDesc reports whether start times are non-increasing.
func IsSortedByStartDesc(events []*domain.Event) bool {
	for i := 1; i < len(events); i++ {
		if events[i].StartTime.After(events[i-1].StartTime) {
			return false
		}
	}
	return true
}
