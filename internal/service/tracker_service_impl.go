package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/alexanderramin/contrack/internal/repository"
	"github.com/alexanderramin/contrack/internal/stats"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTickInterval is the cadence of elapsed-time ticks while tracking.
const DefaultTickInterval = time.Second

// Tracker owns the event history and the single active event. All methods
// are safe for concurrent use; each runs to completion under one lock.
//
// Mutations update memory first and then persist the full history. A
// persistence error is returned to the caller but the in-memory change is
// kept.
type Tracker struct {
	mu      sync.Mutex
	history []*domain.Event
	active  *domain.Event

	repo     repository.HistoryRepo
	clock    Clock
	newID    func() string
	logger   zerolog.Logger
	observer UseCaseObserver

	tickInterval time.Duration
	onTick       TickFunc
	ticker       *elapsedTicker
}

var _ EventTracker = (*Tracker)(nil)

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

func WithClock(c Clock) TrackerOption {
	return func(t *Tracker) { t.clock = c }
}

func WithIDGenerator(fn func() string) TrackerOption {
	return func(t *Tracker) { t.newID = fn }
}

func WithLogger(l zerolog.Logger) TrackerOption {
	return func(t *Tracker) { t.logger = l }
}

func WithObserver(o UseCaseObserver) TrackerOption {
	return func(t *Tracker) { t.observer = useCaseObserverOrNoop([]UseCaseObserver{o}) }
}

func WithTickInterval(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.tickInterval = d
		}
	}
}

// NewTracker loads the stored history and returns an idle tracker. An
// unreadable history is logged and replaced by whatever could be salvaged.
func NewTracker(ctx context.Context, repo repository.HistoryRepo, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		repo:         repo,
		clock:        SystemClock,
		newID:        func() string { return uuid.New().String() },
		logger:       zerolog.Nop(),
		observer:     NoopUseCaseObserver{},
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(t)
	}

	history, err := repo.Load(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Int("recovered", len(history)).Msg("stored history unreadable, continuing with recovered entries")
	}
	if history == nil {
		history = []*domain.Event{}
	}
	t.history = history
	return t
}

// now samples the clock at the precision the wire format keeps.
func (t *Tracker) now() time.Time {
	return t.clock.Now().Round(0).Truncate(time.Millisecond)
}

func (t *Tracker) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	t.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// Start opens the active event. While already tracking it is a no-op and
// returns the existing active event.
func (t *Tracker) Start(ctx context.Context) *domain.Event {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { t.observe(ctx, "start", startedAt, nil, fields) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		fields["noop"] = true
		return t.active.Clone()
	}

	t.active = &domain.Event{ID: t.newID(), StartTime: t.now()}
	fields["event_id"] = t.active.ID
	if t.onTick != nil {
		t.ticker = startElapsedTicker(t.tickInterval, t.clock, t.active.StartTime, t.onTick)
	}
	return t.active.Clone()
}

// Stop closes the active event and prepends it to the history. While idle
// it is a no-op and returns nil, nil.
func (t *Tracker) Stop(ctx context.Context) (event *domain.Event, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { t.observe(ctx, "stop", startedAt, err, fields) }()

	t.mu.Lock()
	if t.active == nil {
		t.mu.Unlock()
		fields["noop"] = true
		return nil, nil
	}

	completed := t.active
	end := t.now()
	secs := domain.DurationSeconds(completed.StartTime, end)
	// A skewed clock can put end at or before the start.
	if !end.After(completed.StartTime) {
		end = completed.StartTime.Add(time.Millisecond)
		secs = 0
	}
	completed.EndTime = &end
	completed.DurationSeconds = &secs

	t.history = append([]*domain.Event{completed}, t.history...)
	t.active = nil
	tk := t.ticker
	t.ticker = nil
	snapshot := domain.CloneEvents(t.history)
	event = completed.Clone()
	t.mu.Unlock()

	tk.stop()

	fields["event_id"] = event.ID
	fields["duration_seconds"] = secs
	if err = t.repo.Save(ctx, snapshot); err != nil {
		return event, err
	}
	return event, nil
}

// Add records a manual, possibly backdated, event and re-sorts the history
// by start time, most recent first.
func (t *Tracker) Add(ctx context.Context, start time.Time, end *time.Time) (event *domain.Event, err error) {
	startedAt := time.Now()
	fields := map[string]any{"open_ended": end == nil}
	defer func() { t.observe(ctx, "add", startedAt, err, fields) }()

	start, end, err = normalizeInstants(start, end)
	if err != nil {
		return nil, err
	}
	e, err := domain.NewEvent(t.newID(), start, end)
	if err != nil {
		return nil, err
	}
	fields["event_id"] = e.ID

	t.mu.Lock()
	t.history = append(t.history, e)
	stats.SortByStartDesc(t.history)
	snapshot := domain.CloneEvents(t.history)
	t.mu.Unlock()

	if err = t.repo.Save(ctx, snapshot); err != nil {
		return e.Clone(), err
	}
	return e.Clone(), nil
}

// Edit replaces the instants of the event with the given id in place. The
// history is not re-sorted, so an edited start time can leave it out of
// order.
func (t *Tracker) Edit(ctx context.Context, id string, start time.Time, end *time.Time) (event *domain.Event, err error) {
	startedAt := time.Now()
	fields := map[string]any{"event_id": id}
	defer func() { t.observe(ctx, "edit", startedAt, err, fields) }()

	t.mu.Lock()
	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		return nil, fmt.Errorf("editing %s: %w", id, domain.ErrNotFound)
	}
	if start, end, err = normalizeInstants(start, end); err != nil {
		t.mu.Unlock()
		return nil, err
	}
	if err = t.history[idx].SetTimes(start, end); err != nil {
		t.mu.Unlock()
		return nil, err
	}
	event = t.history[idx].Clone()
	ordered := stats.IsSortedByStartDesc(t.history)
	snapshot := domain.CloneEvents(t.history)
	t.mu.Unlock()

	fields["out_of_order"] = !ordered
	if !ordered {
		t.logger.Debug().Str("event_id", id).Msg("history no longer ordered by start time after edit")
	}

	if err = t.repo.Save(ctx, snapshot); err != nil {
		return event, err
	}
	return event, nil
}

// Delete removes the event with the given id from the history. An unknown
// id changes nothing and is reported as domain.ErrNotFound. The active
// event is never reachable from here.
func (t *Tracker) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"event_id": id}
	defer func() { t.observe(ctx, "delete", startedAt, err, fields) }()

	t.mu.Lock()
	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		return fmt.Errorf("deleting %s: %w", id, domain.ErrNotFound)
	}
	t.history = append(t.history[:idx:idx], t.history[idx+1:]...)
	snapshot := domain.CloneEvents(t.history)
	t.mu.Unlock()

	return t.repo.Save(ctx, snapshot)
}

// ClearAll empties the history and discards the active event without
// recording it.
func (t *Tracker) ClearAll(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { t.observe(ctx, "clear-all", startedAt, err, fields) }()

	t.mu.Lock()
	fields["removed"] = len(t.history)
	fields["discarded_active"] = t.active != nil
	t.history = []*domain.Event{}
	t.active = nil
	tk := t.ticker
	t.ticker = nil
	t.mu.Unlock()

	tk.stop()

	return t.repo.Save(ctx, []*domain.Event{})
}

// History returns a copy of the history, most recent first.
func (t *Tracker) History() []*domain.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.CloneEvents(t.history)
}

// ActiveEvent returns a copy of the active event, or nil while idle.
func (t *Tracker) ActiveEvent() *domain.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active.Clone()
}

func (t *Tracker) State() domain.TrackingState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return domain.TrackingActive
	}
	return domain.TrackingIdle
}

// Summarize computes fresh statistics over the current history.
func (t *Tracker) Summarize() domain.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.Summarize(t.history)
}

// Elapsed returns the running time of the active event, or zero while idle.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return 0
	}
	return t.active.Elapsed(t.clock.Now())
}

// OnTick replaces the tick listener. A change while tracking restarts the
// ticker with the new listener.
func (t *Tracker) OnTick(fn TickFunc) {
	t.mu.Lock()
	t.onTick = fn
	old := t.ticker
	t.ticker = nil
	if fn != nil && t.active != nil {
		t.ticker = startElapsedTicker(t.tickInterval, t.clock, t.active.StartTime, fn)
	}
	t.mu.Unlock()

	old.stop()
}

// Close releases the tick resource. The tracker stays usable but no tick
// listener remains registered.
func (t *Tracker) Close() {
	t.OnTick(nil)
}

func (t *Tracker) indexOf(id string) int {
	for i, e := range t.history {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// normalizeInstants validates start and end as given and then truncates
// them to milliseconds. A valid end that truncates onto the start is kept
// one millisecond after it.
func normalizeInstants(start time.Time, end *time.Time) (time.Time, *time.Time, error) {
	if err := domain.ValidateTimes(start, end); err != nil {
		return time.Time{}, nil, err
	}
	start = start.Round(0).Truncate(time.Millisecond)
	if end == nil {
		return start, nil, nil
	}
	e := end.Round(0).Truncate(time.Millisecond)
	if !e.After(start) {
		e = start.Add(time.Millisecond)
	}
	return start, &e, nil
}
