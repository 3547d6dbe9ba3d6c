package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/viniapp/viniapp-node/internal/log"
)

// Storage defines the postgres storage
type Storage struct {
	Pgx *pgxpool.Pool
}

// NewStorage creates and returns a new Pgx storage connection
func NewStorage(ctx context.Context, connectionString string) (*Storage, error) {
	pgxConn, err := pgxpool.Connect(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &Storage{
		Pgx: pgxConn,
	}, nil
}

// Ping checks the database connection. Used by the health endpoint.
func (s *Storage) Ping(ctx context.Context) error {
	return s.Pgx.Ping(ctx)
}

// Close all connections to database
func (s *Storage) Close(ctx context.Context) error {
	log.Info(ctx, "pgx is closing connection")
	s.Pgx.Close()
	return nil
}
