package store

import "context"

// RunInTx runs fn in one transaction, handing ctx through so request-scoped
// values reach the statements inside
func RunInTx(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
