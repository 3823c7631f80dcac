package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by stores that need a database transaction to make
// a read-check-write sequence atomic. The in-process stores serialize writes under a
// mutex instead and do not implement it.
type TransactionManager interface {
	// InTx runs fn in one transaction, committing when fn returns nil.
	InTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
