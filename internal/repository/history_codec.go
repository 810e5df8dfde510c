package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/goccy/go-json"
)

// wireEvent is the stored shape of one event. Field names and the null
// markers are part of the on-disk format and must not change.
type wireEvent struct {
	ID              string  `json:"id"`
	StartTime       string  `json:"startTime"`
	EndTime         *string `json:"endTime"`
	DurationSeconds *int    `json:"durationSeconds"`
}

// EncodeHistory serializes events in order.
func EncodeHistory(events []*domain.Event) (string, error) {
	wire := make([]wireEvent, 0, len(events))
	for _, e := range events {
		wire = append(wire, wireEvent{
			ID:              e.ID,
			StartTime:       formatInstant(e.StartTime),
			EndTime:         formatNullableInstant(e.EndTime),
			DurationSeconds: e.DurationSeconds,
		})
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encoding history: %w", err)
	}
	return string(data), nil
}

// DecodeHistory parses a stored history back into typed events, keeping the
// stored order. Durations are recomputed from the instants.
//
// A value that is not a JSON array yields no events and an error. Entries
// that are individually invalid (missing id or start, unparsable instant,
// end not after start, duplicate id) are dropped, and the returned error
// lists them alongside the surviving events.
func DecodeHistory(raw string) ([]*domain.Event, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []*domain.Event{}, nil
	}

	var wire []wireEvent
	if err := json.Unmarshal([]byte(trimmed), &wire); err != nil {
		return []*domain.Event{}, fmt.Errorf("decoding history: %w", err)
	}

	events := make([]*domain.Event, 0, len(wire))
	seen := make(map[string]bool, len(wire))
	var errs []error
	for i, w := range wire {
		e, err := decodeEvent(w)
		if err == nil && seen[e.ID] {
			err = fmt.Errorf("duplicate id %q", e.ID)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		seen[e.ID] = true
		events = append(events, e)
	}
	return events, errors.Join(errs...)
}

func decodeEvent(w wireEvent) (*domain.Event, error) {
	if w.ID == "" {
		return nil, errors.New("missing id")
	}
	if w.StartTime == "" {
		return nil, errors.New("missing startTime")
	}
	start, err := parseInstant(w.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parsing startTime: %w", err)
	}

	if w.EndTime == nil || *w.EndTime == "" {
		return domain.NewEvent(w.ID, start, nil)
	}
	endTime, err := parseInstant(*w.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parsing endTime: %w", err)
	}
	return domain.NewEvent(w.ID, start, &endTime)
}
