// Package txmanager runs functions inside serializable transactions over
// the metrics-wrapped database, propagating the transaction through
// context for repositories. Serialization conflicts are retried with a
// bounded linear backoff.
package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/usluga-market/MPB-BookingService/pkg/dbmetrics"
	"github.com/usluga-market/MPB-BookingService/pkg/retry"
)

// TxBeginner starts metrics-aware transactions.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager executes functions in serializable transactions.
type TransactionManager struct {
	db     TxBeginner
	policy retry.Policy
}

// NewTransactionManager creates a manager with the default retry policy.
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, policy: retry.DefaultPolicy}
}

// DoSerializable runs fn inside a serializable transaction. The
// transaction is stored in the context passed to fn, so repository calls
// made with that context join it automatically. Transient failures
// (serialization conflicts, deadlocks, statement timeouts) restart the
// whole transaction up to the policy limit.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.policy.Do(ctx, func(ctx context.Context) error {
		tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return fmt.Errorf("txmanager: begin transaction: %w", err)
		}

		txCtx := dbmetrics.WithTransaction(ctx, tx)

		if err := fn(txCtx); err != nil {
			_ = tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("txmanager: commit transaction: %w", err)
		}
		return nil
	})
}
