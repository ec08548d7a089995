// =============================================================================
// FILE: internal/repository/repository.go
// PURPOSE: Shared pieces of the data access layer
// =============================================================================
//
// REPOSITORY PATTERN:
// Services never see SQL. They call methods such as GetByID, FindAll, Create,
// Update and Delete on an interface, and the PostgreSQL implementation lives
// behind it. Tests swap in in-memory implementations of the same interfaces.
//
// Every write is a single SQL statement, so each mutation is atomic on its own.
// =============================================================================

package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// =============================================================================
// CUSTOM ERRORS
// =============================================================================

// ErrNotFound indicates the requested resource doesn't exist
var ErrNotFound = errors.New("resource not found")

// ErrInvalidReference indicates a foreign key pointed at a missing row
var ErrInvalidReference = errors.New("referenced resource does not exist")

// foreignKeyViolation is the PostgreSQL SQLSTATE for foreign_key_violation
const foreignKeyViolation = "23503"

// DBTX is the subset of *pgxpool.Pool the repositories use.
// *pgxpool.Pool, *pgx.Conn and pgx.Tx all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql is a squirrel builder emitting $1, $2 placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// translateError maps driver errors onto the repository sentinels
func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrInvalidReference
	}

	return err
}
