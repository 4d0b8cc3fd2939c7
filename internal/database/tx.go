package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxManager handles the execution of functions within a database transaction.
type TxManager interface {
	// Run executes fn within a transaction. fn receives the transaction as a SQLClient;
	// statements issued through it commit or roll back together.
	Run(ctx context.Context, fn func(ctx context.Context, client SQLClient) error) error
}

type txManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) TxManager {
	return &txManager{db: db}
}

// Run starts a transaction. If fn returns nil, it commits.
// If fn returns an error or panics, it rolls back.
func (tm *txManager) Run(ctx context.Context, fn func(ctx context.Context, txClient SQLClient) error) (err error) {
	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			if commitErr := tx.Commit(); commitErr != nil {
				err = fmt.Errorf("failed to commit transaction: %w", commitErr)
			}
		}
	}()

	err = fn(ctx, tx)
	return err
}
