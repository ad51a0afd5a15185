package postgres

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
)

type ctxKey string

const txKey ctxKey = "tx"

type txState struct {
	tx  *sqlx.Tx
	seq atomic.Int64
}

type TransactionManager struct {
	db *sqlx.DB
}

func NewTransactionManager(db *sqlx.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	txCtx := context.WithValue(ctx, txKey, &txState{tx: tx})

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// WithSavepoint runs fn inside a savepoint on the transaction carried by ctx.
// A failure rolls back only fn's writes; flushed work from earlier savepoints
// in the same transaction survives until the batch commit. Outside a
// transaction it degrades to a plain transaction.
func (tm *TransactionManager) WithSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	state, _ := ctx.Value(txKey).(*txState)
	if state == nil {
		return tm.WithTransaction(ctx, fn)
	}

	// Savepoint names must only be unique within their transaction.
	name := fmt.Sprintf("sp_%d", state.seq.Add(1))

	if _, err := state.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := state.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return fmt.Errorf("rollback to savepoint: %v: %w", rbErr, err)
		}
		return err
	}

	if _, err := state.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	state, _ := ctx.Value(txKey).(*txState)
	if state == nil {
		return nil
	}
	return state.tx
}

func GetExecutor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
