// Package database provides the PostgreSQL access layer for Cloud Notes.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database unreachable or the call timed out
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrDuplicate) {
//	    // Handle the constraint violation
//	}
//
// Repositories never surface raw driver errors; Translate maps them onto the
// sentinels above at the storage boundary.
package database

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the
	// database, including timeouts. Transient from the client's perspective.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Querier is the subset of pgxpool.Pool the repositories depend on. A
// pgx.Tx satisfies it too, so repository methods can run inside a
// transaction without change.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Translate maps a pgx error onto the package sentinels. The original error
// is wrapped so the driver detail stays available for logging, but callers
// match on the sentinel only.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return wrap(ErrDuplicate, err)
		case pgerrcode.IsConnectionException(pgErr.Code):
			return wrap(ErrConnection, err)
		}
		return wrap(ErrQuery, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return wrap(ErrConnection, err)
	}

	return wrap(ErrQuery, err)
}

type wrappedError struct {
	sentinel error
	cause    error
}

func wrap(sentinel, cause error) error {
	return &wrappedError{sentinel: sentinel, cause: cause}
}

func (e *wrappedError) Error() string { return e.sentinel.Error() + ": " + e.cause.Error() }

func (e *wrappedError) Is(target error) bool { return target == e.sentinel }

func (e *wrappedError) Unwrap() error { return e.cause }
