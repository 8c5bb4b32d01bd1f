package port

import "context"

// TxFn is a function that runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager is the unit of work. ExecTx commits only if fn returns nil;
// repositories called with the ctx passed to fn join the transaction.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
