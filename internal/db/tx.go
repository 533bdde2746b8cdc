package db

import "context"

// WithTx runs fn inside a transaction on q. The transaction commits when fn
// returns nil and rolls back otherwise.
func WithTx(ctx context.Context, q Querier, fn func(tx Querier) error) error {
	tx, err := q.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
