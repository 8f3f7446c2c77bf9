// Package postgres содержит реализации репозиториев на PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
// Ему же удовлетворяет pgxmock в тестах.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// uniqueViolationCode - код ошибки Postgres для нарушения уникального ограничения.
const uniqueViolationCode = "23505"
