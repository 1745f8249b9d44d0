package repository

import (
    "context"

    "github.com/jmoiron/sqlx"
)

type ctxKey string

const txKey ctxKey = "tx"

type TransactionManager struct {
    db *sqlx.DB
}

func NewTransactionManager(db *sqlx.DB) *TransactionManager {
    return &TransactionManager{db: db}
}

// WithTransaction commits when fn returns nil and rolls back otherwise,
// including when fn panics.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
    tx, err := tm.db.BeginTxx(ctx, nil)
    if err != nil {
        return err
    }

    defer func() {
        if p := recover(); p != nil {
            _ = tx.Rollback()
            panic(p)
        }
    }()

    txCtx := context.WithValue(ctx, txKey, tx)
    if err := fn(txCtx); err != nil {
        _ = tx.Rollback()
        return err
    }

    return tx.Commit()
}

func GetTxFromContext(ctx context.Context) *sqlx.Tx {
    tx, _ := ctx.Value(txKey).(*sqlx.Tx)
    return tx
}

// GetExecutor returns the transaction bound to ctx, or db when there is none.
func GetExecutor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
    if tx := GetTxFromContext(ctx); tx != nil {
        return tx
    }
    return db
}
