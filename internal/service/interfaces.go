package service

import (
	"context"
	"time"

	"github.com/alexanderramin/contrack/internal/domain"
)

// EventTracker is the surface the presentation layer drives. Accessors
// return copies; mutating them has no effect on the tracker.
type EventTracker interface {
	Start(ctx context.Context) *domain.Event
	Stop(ctx context.Context) (*domain.Event, error)
	Add(ctx context.Context, start time.Time, end *time.Time) (*domain.Event, error)
	Edit(ctx context.Context, id string, start time.Time, end *time.Time) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error

	History() []*domain.Event
	ActiveEvent() *domain.Event
	State() domain.TrackingState
	Elapsed() time.Duration
	Summarize() domain.Summary

	// OnTick registers fn to receive the elapsed time of the active event
	// while tracking. Passing nil removes it.
	OnTick(fn TickFunc)
	Close()
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}
