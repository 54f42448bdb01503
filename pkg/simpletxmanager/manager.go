// Package simpletxmanager is the txmanager counterpart for a plain
// *sql.DB, used when metrics are disabled.
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/usluga-market/MPB-BookingService/pkg/dbmetrics"
	"github.com/usluga-market/MPB-BookingService/pkg/retry"
)

// TransactionManager executes functions in serializable transactions
// over an unwrapped database handle.
type TransactionManager struct {
	db     *sql.DB
	policy retry.Policy
}

// NewTransactionManager creates a manager with the default retry policy.
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db, policy: retry.DefaultPolicy}
}

// DoSerializable runs fn inside a serializable transaction, retrying
// transient failures. See txmanager.DoSerializable for semantics.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.policy.Do(ctx, func(ctx context.Context) error {
		tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
		}

		txCtx := dbmetrics.WithTransaction(ctx, tx)

		if err := fn(txCtx); err != nil {
			_ = tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
		}
		return nil
	})
}
