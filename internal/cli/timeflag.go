package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Accepted absolute layouts, tried in order. Layouts without a zone are
// read in local time.
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	localLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
	clockLayouts = []string{"15:04:05", "15:04"}
)

// parseTimeInput reads a user-supplied instant. Besides absolute layouts it
// accepts "now", a time of day on now's date, and a negative offset such as
// "-5m" or "-1h30m".
func parseTimeInput(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if strings.EqualFold(s, "now") {
		return now, nil
	}
	if strings.HasPrefix(s, "-") {
		d, err := time.ParseDuration(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid offset %q: %w", s, err)
		}
		return now.Add(d), nil
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	loc := now.Location()
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			y, m, d := now.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (try \"2006-01-02 15:04\", \"15:04\", or \"-5m\")", s)
}

// timeValue is a pflag.Value holding an instant parsed by parseTimeInput.
type timeValue struct {
	t   time.Time
	set bool
	now func() time.Time
}

var _ pflag.Value = (*timeValue)(nil)

func newTimeValue(now func() time.Time) *timeValue {
	return &timeValue{now: now}
}

func (v *timeValue) String() string {
	if !v.set {
		return ""
	}
	return v.t.Format(time.RFC3339)
}

func (v *timeValue) Set(s string) error {
	t, err := parseTimeInput(s, v.now())
	if err != nil {
		return err
	}
	v.t = t
	v.set = true
	return nil
}

func (v *timeValue) Type() string { return "time" }

// ptr returns the parsed instant, or nil when the flag was not given.
func (v *timeValue) ptr() *time.Time {
	if !v.set {
		return nil
	}
	t := v.t
	return &t
}
