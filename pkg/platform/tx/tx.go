package tx

import (
	"context"
	"database/sql"
	"sync"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Execer is the subset of *sql.DB and *sql.Tx that stores write through.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ExecerFrom returns the transaction carried by ctx, or db when there is none.
func ExecerFrom(ctx context.Context, db *sql.DB) Execer {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}

type serialKey struct{}

// Serial runs functions one at a time. In-memory stores have no
// transactions, so whole units of work are serialized instead.
type Serial struct {
	mu sync.Mutex
}

func (s *Serial) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(serialKey{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, serialKey{}, struct{}{}))
}
