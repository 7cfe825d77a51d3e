package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"dating-backend/internal/repository"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Store handles database operations for users, date suggestions and credentials
type Store struct {
	db *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// New connects to PostgreSQL, checks the connection and applies the schema
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithPool wraps an existing pool. The schema is not applied.
func NewWithPool(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Close closes the pool
func (s *Store) Close(_ context.Context) error {
	s.db.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
