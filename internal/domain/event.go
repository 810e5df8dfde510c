package domain

import (
	"math"
	"time"
)

// Event is one recorded start/end pair. EndTime and DurationSeconds are
// either both set or both nil.
type Event struct {
	ID              string
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds *int
}

// NewEvent validates the instants and builds an Event with its derived
// duration. end may be nil for an open-ended entry.
func NewEvent(id string, start time.Time, end *time.Time) (*Event, error) {
	e := &Event{ID: id}
	if err := e.SetTimes(start, end); err != nil {
		return nil, err
	}
	return e, nil
}

// SetTimes replaces both instants and recomputes the duration. The event is
// left untouched when validation fails.
func (e *Event) SetTimes(start time.Time, end *time.Time) error {
	if err := ValidateTimes(start, end); err != nil {
		return err
	}
	e.StartTime = start
	if end == nil {
		e.EndTime = nil
		e.DurationSeconds = nil
		return nil
	}
	endCopy := *end
	d := DurationSeconds(start, endCopy)
	e.EndTime = &endCopy
	e.DurationSeconds = &d
	return nil
}

// Completed reports whether the event has a derived duration.
func (e *Event) Completed() bool {
	return e.DurationSeconds != nil
}

// Clone returns a deep copy so callers cannot reach tracker-owned pointers.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	if e.EndTime != nil {
		end := *e.EndTime
		c.EndTime = &end
	}
	if e.DurationSeconds != nil {
		d := *e.DurationSeconds
		c.DurationSeconds = &d
	}
	return &c
}

// Elapsed returns the time since StartTime, floored at zero.
func (e *Event) Elapsed(now time.Time) time.Duration {
	d := now.Sub(e.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// ValidateTimes enforces a non-zero start and, when end is given, an end
// strictly after the start.
func ValidateTimes(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return &ValidationError{Field: "start_time", Reason: "start time is required"}
	}
	if end != nil && !end.After(start) {
		return &ValidationError{Field: "end_time", Reason: "end time must be after start time"}
	}
	return nil
}

// DurationSeconds rounds end-start to whole seconds. Clock skew can make
// the difference negative, so the result is floored at zero.
func DurationSeconds(start, end time.Time) int {
	secs := int(math.Round(end.Sub(start).Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}

// CloneEvents deep-copies a slice of events.
func CloneEvents(events []*Event) []*Event {
	out := make([]*Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}
