package db

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx that repositories use.
// Repositories receive a Querier so the same call can run inside or outside a transaction.
type Querier interface {
	BeginFunc(ctx context.Context, f func(pgx.Tx) error) error
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
