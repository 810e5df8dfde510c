package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeInput(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)
	now := time.Date(2025, 3, 15, 9, 30, 0, 0, loc)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"now", "now", now},
		{"now any case", " NOW ", now},
		{"offset minutes", "-5m", now.Add(-5 * time.Minute)},
		{"offset compound", "-1h30m", now.Add(-90 * time.Minute)},
		{"rfc3339", "2025-03-15T06:00:00Z", time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC)},
		{"rfc3339 nano", "2025-03-15T06:00:00.250Z", time.Date(2025, 3, 15, 6, 0, 0, 250e6, time.UTC)},
		{"local with seconds", "2025-03-14 23:10:05", time.Date(2025, 3, 14, 23, 10, 5, 0, loc)},
		{"local minutes", "2025-03-14 23:10", time.Date(2025, 3, 14, 23, 10, 0, 0, loc)},
		{"local with T", "2025-03-14T23:10", time.Date(2025, 3, 14, 23, 10, 0, 0, loc)},
		{"clock", "08:15", time.Date(2025, 3, 15, 8, 15, 0, 0, loc)},
		{"clock with seconds", "08:15:42", time.Date(2025, 3, 15, 8, 15, 42, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeInput(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseTimeInput_Errors(t *testing.T) {
	now := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

	for _, in := range []string{"", "   ", "-5 minutes", "tomorrow", "25:99", "2025-13-01 10:00"} {
		_, err := parseTimeInput(in, now)
		assert.Error(t, err, "input %q", in)
	}
}

func TestTimeValue(t *testing.T) {
	now := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)
	v := newTimeValue(func() time.Time { return now })

	assert.Equal(t, "time", v.Type())
	assert.Equal(t, "", v.String())
	assert.Nil(t, v.ptr())

	require.NoError(t, v.Set("-1m"))
	assert.True(t, v.set)
	assert.Equal(t, "2025-03-15T09:29:00Z", v.String())

	p := v.ptr()
	require.NotNil(t, p)
	*p = p.Add(time.Hour)
	assert.True(t, v.t.Equal(now.Add(-time.Minute)), "ptr returns a copy")
}

func TestTimeValue_SetErrorKeepsUnset(t *testing.T) {
	v := newTimeValue(time.Now)

	assert.Error(t, v.Set("not a time"))
	assert.False(t, v.set)
	assert.Nil(t, v.ptr())
}
