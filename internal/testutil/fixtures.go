package testutil

import (
	"time"

	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/google/uuid"
)

// Event options
type EventOption func(*domain.Event)

// WithDuration closes the event d after its start.
func WithDuration(d time.Duration) EventOption {
	return func(e *domain.Event) {
		end := e.StartTime.Add(d)
		secs := domain.DurationSeconds(e.StartTime, end)
		e.EndTime = &end
		e.DurationSeconds = &secs
	}
}

// WithOpenEnd leaves the event without an end time.
func WithOpenEnd() EventOption {
	return func(e *domain.Event) {
		e.EndTime = nil
		e.DurationSeconds = nil
	}
}

func WithEventID(id string) EventOption {
	return func(e *domain.Event) {
		e.ID = id
	}
}

// NewTestEvent builds a completed 60s event starting at start unless
// options say otherwise.
func NewTestEvent(start time.Time, opts ...EventOption) *domain.Event {
	e := &domain.Event{
		ID:        uuid.New().String(),
		StartTime: start,
	}
	WithDuration(time.Minute)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestHistory builds completed events at base+offset for each offset,
// returned most recent first.
func NewTestHistory(base time.Time, offsets ...time.Duration) []*domain.Event {
	events := make([]*domain.Event, len(offsets))
	for i, off := range offsets {
		events[len(offsets)-1-i] = NewTestEvent(base.Add(off))
	}
	return events
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
