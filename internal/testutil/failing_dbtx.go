package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/contrack/internal/db"
)

// FailOnNthExec wraps a DBTX and injects Err on the Nth ExecContext call.
// Calls are counted starting at 1. Reads pass through untouched.
type FailOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	FailOn int32
	Err    error
}

// NewFailOnNthExec wraps inner so that the failOn-th exec returns err.
func NewFailOnNthExec(inner db.DBTX, failOn int32, err error) *FailOnNthExec {
	return &FailOnNthExec{DBTX: inner, FailOn: failOn, Err: err}
}

func (f *FailOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
