package repository

import (
	"context"

	"github.com/alexanderramin/contrack/internal/domain"
)

// KVStore is the persistence transport: named values serialized as text.
// Get reports ok=false for a key that was never written.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// HistoryRepo loads and saves the ordered event history.
//
// Load always returns a usable history. A non-nil error means the stored
// value was unreadable in whole or in part and the history was degraded
// (possibly to empty); callers log it and carry on.
type HistoryRepo interface {
	Load(ctx context.Context) ([]*domain.Event, error)
	Save(ctx context.Context, events []*domain.Event) error
}
