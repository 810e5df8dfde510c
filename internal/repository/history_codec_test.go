package repository

import (
	"testing"
	"time"

	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/alexanderramin/contrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)

func TestEncodeHistory_WireShape(t *testing.T) {
	events := []*domain.Event{
		testutil.NewTestEvent(base.Add(time.Minute), testutil.WithEventID("b"), testutil.WithOpenEnd()),
		testutil.NewTestEvent(base, testutil.WithEventID("a"), testutil.WithDuration(42*time.Second)),
	}

	raw, err := EncodeHistory(events)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"b","startTime":"2025-03-15T08:01:00.000Z","endTime":null,"durationSeconds":null},
		{"id":"a","startTime":"2025-03-15T08:00:00.000Z","endTime":"2025-03-15T08:00:42.000Z","durationSeconds":42}
	]`, raw)
}

func TestEncodeHistory_Empty(t *testing.T) {
	raw, err := EncodeHistory(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDecodeHistory_RestoresTypedInstants(t *testing.T) {
	events := []*domain.Event{
		testutil.NewTestEvent(base.Add(5*time.Minute), testutil.WithEventID("b")),
		testutil.NewTestEvent(base, testutil.WithEventID("a"), testutil.WithOpenEnd()),
	}
	raw, err := EncodeHistory(events)
	require.NoError(t, err)

	decoded, err := DecodeHistory(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.True(t, decoded[0].StartTime.Equal(base.Add(5*time.Minute)))
	require.NotNil(t, decoded[0].EndTime)
	assert.True(t, decoded[0].EndTime.After(decoded[0].StartTime))
	assert.Equal(t, 60, *decoded[0].DurationSeconds)
	assert.Nil(t, decoded[1].EndTime)
	assert.Nil(t, decoded[1].DurationSeconds)
}

func TestDecodeHistory_AcceptsOffsetsAndNoFraction(t *testing.T) {
	raw := `[{"id":"x","startTime":"2025-03-15T10:00:00+02:00","endTime":"2025-03-15T08:01:30Z","durationSeconds":1}]`

	decoded, err := DecodeHistory(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, base, decoded[0].StartTime)
	assert.Equal(t, 90, *decoded[0].DurationSeconds, "stored duration is recomputed")
}

func TestDecodeHistory_EmptyValues(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[]"} {
		decoded, err := DecodeHistory(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Empty(t, decoded)
	}
}

func TestDecodeHistory_Corrupt(t *testing.T) {
	decoded, err := DecodeHistory(`{not json`)
	require.Error(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestDecodeHistory_DropsInvalidEntries(t *testing.T) {
	raw := `[
		{"id":"ok","startTime":"2025-03-15T08:00:00.000Z","endTime":null,"durationSeconds":null},
		{"id":"","startTime":"2025-03-15T08:00:00.000Z"},
		{"id":"nostart","startTime":""},
		{"id":"badtime","startTime":"yesterday"},
		{"id":"backwards","startTime":"2025-03-15T08:00:00.000Z","endTime":"2025-03-15T07:00:00.000Z","durationSeconds":5},
		{"id":"ok","startTime":"2025-03-15T09:00:00.000Z"}
	]`

	decoded, err := DecodeHistory(raw)
	require.Error(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "ok", decoded[0].ID)
	assert.Contains(t, err.Error(), "entry 1: missing id")
	assert.Contains(t, err.Error(), "duplicate id")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
