package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func TestNewEvent_Completed(t *testing.T) {
	e, err := NewEvent("e1", testNow, timePtr(testNow.Add(42*time.Second)))
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)
	require.NotNil(t, e.DurationSeconds)
	assert.Equal(t, 42, *e.DurationSeconds)
	assert.True(t, e.Completed())
}

func TestNewEvent_OpenEnded(t *testing.T) {
	e, err := NewEvent("e1", testNow, nil)
	require.NoError(t, err)
	assert.Nil(t, e.EndTime)
	assert.Nil(t, e.DurationSeconds)
	assert.False(t, e.Completed())
}

func TestNewEvent_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   *time.Time
		field string
	}{
		{"missing start", time.Time{}, nil, "start_time"},
		{"end equals start", testNow, timePtr(testNow), "end_time"},
		{"end before start", testNow, timePtr(testNow.Add(-time.Minute)), "end_time"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEvent("x", tc.start, tc.end)
			assert.Nil(t, e)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestSetTimes_FailureLeavesEventUnchanged(t *testing.T) {
	e, err := NewEvent("e1", testNow, timePtr(testNow.Add(time.Minute)))
	require.NoError(t, err)

	err = e.SetTimes(testNow, timePtr(testNow.Add(-time.Minute)))
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, testNow, e.StartTime)
	assert.Equal(t, 60, *e.DurationSeconds)
}

func TestSetTimes_ClearsEnd(t *testing.T) {
	e, err := NewEvent("e1", testNow, timePtr(testNow.Add(time.Minute)))
	require.NoError(t, err)

	require.NoError(t, e.SetTimes(testNow.Add(time.Hour), nil))
	assert.Nil(t, e.EndTime)
	assert.Nil(t, e.DurationSeconds)
}

func TestDurationSeconds_Rounding(t *testing.T) {
	assert.Equal(t, 1, DurationSeconds(testNow, testNow.Add(1499*time.Millisecond)))
	assert.Equal(t, 2, DurationSeconds(testNow, testNow.Add(1500*time.Millisecond)))
	assert.Equal(t, 0, DurationSeconds(testNow, testNow.Add(-5*time.Second)), "skew is floored")
}

func TestClone_IsDeep(t *testing.T) {
	e, err := NewEvent("e1", testNow, timePtr(testNow.Add(time.Minute)))
	require.NoError(t, err)

	c := e.Clone()
	*c.DurationSeconds = 1
	*c.EndTime = testNow

	assert.Equal(t, 60, *e.DurationSeconds)
	assert.Equal(t, testNow.Add(time.Minute), *e.EndTime)
	assert.Nil(t, (*Event)(nil).Clone())
}

func TestElapsed_FlooredAtZero(t *testing.T) {
	e := &Event{StartTime: testNow}
	assert.Equal(t, 90*time.Second, e.Elapsed(testNow.Add(90*time.Second)))
	assert.Equal(t, time.Duration(0), e.Elapsed(testNow.Add(-time.Second)))
}

func TestSummaryProgress(t *testing.T) {
	assert.Equal(t, ProgressReady, Summary{}.Progress())
	assert.Equal(t, ProgressActive, Summary{TotalCount: 3}.Progress())
}
