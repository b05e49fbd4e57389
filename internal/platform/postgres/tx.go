package postgres

import (
	"context"
	"database/sql"
	"time"

	dErrors "punchclock/pkg/domain-errors"
	txcontext "punchclock/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// TxRunner runs a function inside one database transaction. Stores built
// with txcontext.ExecerFrom join it through the context.
type TxRunner struct {
	db      *sql.DB
	timeout time.Duration
}

func NewTxRunner(db *sql.DB, timeout time.Duration) *TxRunner {
	return &TxRunner{db: db, timeout: timeout}
}

func (t *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	// Nested calls reuse the outer transaction.
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}
