package stats

import (
	"testing"
	"time"

	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/alexanderramin/contrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_Empty(t *testing.T) {
	trend := Series(nil, 20)
	assert.Empty(t, trend.Durations)
	assert.Empty(t, trend.Intervals)
}

func TestSeries_ChronologicalWithIntervals(t *testing.T) {
	history := testutil.NewTestHistory(base, 0, 5*time.Minute, 12*time.Minute+30*time.Second)

	trend := Series(history, 20)
	require.Len(t, trend.Durations, 3)
	require.Len(t, trend.Intervals, 2)

	assert.Equal(t, 1, trend.Durations[0].Index)
	assert.Equal(t, base, trend.Durations[0].StartTime)
	assert.Equal(t, 60, trend.Durations[0].DurationSeconds)

	assert.Equal(t, 2, trend.Intervals[0].Index)
	assert.Equal(t, 5.0, trend.Intervals[0].IntervalMinutes)
	assert.Equal(t, 7.5, trend.Intervals[1].IntervalMinutes)
}

func TestSeries_WindowKeepsMostRecent(t *testing.T) {
	history := testutil.NewTestHistory(base, 0, time.Minute, 2*time.Minute, 3*time.Minute)

	trend := Series(history, 2)
	require.Len(t, trend.Durations, 2)
	assert.Equal(t, base.Add(2*time.Minute), trend.Durations[0].StartTime)
	assert.Equal(t, base.Add(3*time.Minute), trend.Durations[1].StartTime)
}

func TestSeries_IgnoresOpenEvents(t *testing.T) {
	history := []*domain.Event{
		testutil.NewTestEvent(base.Add(time.Hour), testutil.WithOpenEnd()),
		testutil.NewTestEvent(base),
	}
	trend := Series(history, 0)
	assert.Len(t, trend.Durations, 1)
	assert.Empty(t, trend.Intervals)
}
