package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/contrack/internal/domain"
)

// KVHistoryRepo stores the whole history as one encoded value under key.
type KVHistoryRepo struct {
	store KVStore
	key   string
}

// NewKVHistoryRepo creates a HistoryRepo over store.
func NewKVHistoryRepo(store KVStore, key string) *KVHistoryRepo {
	return &KVHistoryRepo{store: store, key: key}
}

func (r *KVHistoryRepo) Load(ctx context.Context) ([]*domain.Event, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return []*domain.Event{}, fmt.Errorf("loading history: %w", err)
	}
	if !ok {
		return []*domain.Event{}, nil
	}
	events, err := DecodeHistory(raw)
	if err != nil {
		return events, fmt.Errorf("loading history: %w", err)
	}
	return events, nil
}

func (r *KVHistoryRepo) Save(ctx context.Context, events []*domain.Event) error {
	raw, err := EncodeHistory(events)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
