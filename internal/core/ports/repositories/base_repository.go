package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management.
// Every occupancy or balance recomputation runs inside one of these
// transactions together with the write that triggered it.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction; it is a no-op on a finished transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}
