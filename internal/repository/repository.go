package repository

import (
	"context"
	"database/sql"
)

// DBTX *sqlx.DB와 *sqlx.Tx를 함께 다루기 위한 인터페이스
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
